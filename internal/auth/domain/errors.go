package domain

import "errors"

var (
	// ErrEmailTaken 邮箱已注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 邮箱或密码不正确
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrNotPendingApproval 用户不在待审批状态
	ErrNotPendingApproval = errors.New("user is not pending approval")
	// ErrSessionExpired 会话不存在或已过期
	ErrSessionExpired = errors.New("session expired")
)
