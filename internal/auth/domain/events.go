package domain

import "time"

// 认证事件主题
const (
	UserRegisteredEventType = "auth.user.registered"
	UserLoggedInEventType   = "auth.user.loggedin"
	VendorApprovedEventType = "auth.vendor.approved"
)

// UserRegisteredEvent 用户注册事件
type UserRegisteredEvent struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// UserLoggedInEvent 用户登录事件
type UserLoggedInEvent struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// VendorApprovedEvent 商家审批通过事件
type VendorApprovedEvent struct {
	UserID     uint      `json:"user_id"`
	ApprovedBy uint      `json:"approved_by"`
	Timestamp  time.Time `json:"timestamp"`
}
