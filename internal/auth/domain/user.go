package domain

import "time"

// UserRole 用户角色
type UserRole string

const (
	RoleCustomer    UserRole = "CUSTOMER"
	RoleVendor      UserRole = "VENDOR"
	RoleAdmin       UserRole = "ADMIN"
	RoleDistributor UserRole = "DISTRIBUTOR"
)

// User 用户账户。
// 商家（VENDOR）注册后需要管理员审批通过才能上架商品。
type User struct {
	ID           uint      `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Approved     bool      `json:"approved"`
}

// NewUser 创建用户，默认买家角色。
// 买家和管理员无需审批，商家/分销商待审批。
func NewUser(email, name, passwordHash string, role UserRole) *User {
	if role == "" {
		role = RoleCustomer
	}
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		Approved:     role == RoleCustomer || role == RoleAdmin,
	}
}

// CanSell 是否允许管理商品目录
func (u *User) CanSell() bool {
	return (u.Role == RoleVendor || u.Role == RoleAdmin) && u.Approved
}

// Approve 管理员审批通过
func (u *User) Approve() {
	u.Approved = true
}
