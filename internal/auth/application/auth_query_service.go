package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/auth/domain"
)

// UserDTO 用户视图
type UserDTO struct {
	ID       uint            `json:"id"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
	Approved bool            `json:"approved"`
}

// AuthQueryService 认证查询服务
type AuthQueryService struct {
	repo        domain.UserRepository
	sessionRepo domain.SessionRepository
}

// NewAuthQueryService 创建认证查询服务实例
func NewAuthQueryService(repo domain.UserRepository, sessionRepo domain.SessionRepository) *AuthQueryService {
	return &AuthQueryService{repo: repo, sessionRepo: sessionRepo}
}

// GetUser 按 ID 获取用户
func (s *AuthQueryService) GetUser(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserDTO(user), nil
}

// ValidateToken 校验会话令牌，过期或不存在返回 ErrSessionExpired。
func (s *AuthQueryService) ValidateToken(ctx context.Context, token string) (*domain.AuthSession, error) {
	session, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// ListPendingVendors 分页列出待审批的商家/分销商
func (s *AuthQueryService) ListPendingVendors(ctx context.Context, offset, limit int) ([]*UserDTO, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	users, total, err := s.repo.ListPendingVendors(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, total, nil
}

func toUserDTO(u *domain.User) *UserDTO {
	return &UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Approved: u.Approved,
	}
}
