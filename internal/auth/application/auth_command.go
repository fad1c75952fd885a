package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/security"
	"github.com/wyfcoding/storefront/internal/auth/domain"
)

const sessionTTL = 24 * time.Hour

// RegisterCommand 注册命令
type RegisterCommand struct {
	Email    string
	Name     string
	Password string
	Role     domain.UserRole
}

// LoginCommand 登录命令
type LoginCommand struct {
	Email    string
	Password string
}

// AuthCommandService 认证命令服务
type AuthCommandService struct {
	repo        domain.UserRepository
	sessionRepo domain.SessionRepository
	publisher   domain.EventPublisher
}

// NewAuthCommandService 创建认证命令服务实例
func NewAuthCommandService(
	repo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	publisher domain.EventPublisher,
) *AuthCommandService {
	return &AuthCommandService{
		repo:        repo,
		sessionRepo: sessionRepo,
		publisher:   publisher,
	}
}

// Register 处理用户注册
func (s *AuthCommandService) Register(ctx context.Context, cmd RegisterCommand) (uint, error) {
	hash, err := security.HashPassword(cmd.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *domain.User
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByEmail(txCtx, cmd.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailTaken
		}

		user = domain.NewUser(cmd.Email, cmd.Name, hash, cmd.Role)
		if err := s.repo.Save(txCtx, user); err != nil {
			return err
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.UserRegisteredEvent{
			UserID:    user.ID,
			Email:     user.Email,
			Role:      user.Role,
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.UserRegisteredEventType, cmd.Email, event)
	})
	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// Login 处理用户登录，成功后签发会话令牌。
func (s *AuthCommandService) Login(ctx context.Context, cmd LoginCommand) (string, int64, error) {
	user, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return "", 0, err
	}
	if user == nil || !security.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", 0, domain.ErrInvalidCredentials
	}

	if s.publisher != nil {
		event := domain.UserLoggedInEvent{
			UserID:    user.ID,
			Email:     user.Email,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.UserLoggedInEventType, cmd.Email, event)
	}

	now := time.Now()
	session := &domain.AuthSession{
		Token:     idgen.GenShortID(32),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return "", 0, err
	}

	return session.Token, session.ExpiresAt.Unix(), nil
}

// Logout 注销会话
func (s *AuthCommandService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// ApproveVendor 管理员审批商家/分销商
func (s *AuthCommandService) ApproveVendor(ctx context.Context, userID, approvedBy uint) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if user.Approved || (user.Role != domain.RoleVendor && user.Role != domain.RoleDistributor) {
			return domain.ErrNotPendingApproval
		}

		user.Approve()
		if err := s.repo.Save(txCtx, user); err != nil {
			return err
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.VendorApprovedEvent{
			UserID:     user.ID,
			ApprovedBy: approvedBy,
			Timestamp:  time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.VendorApprovedEventType, user.Email, event)
	})
}
