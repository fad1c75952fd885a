package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUserDefaults(t *testing.T) {
	u := NewUser("jo@example.com", "Jo", "hash", "")
	assert.Equal(t, RoleCustomer, u.Role)
	assert.True(t, u.Approved)
	assert.False(t, u.CanSell())
}

func TestNewVendorRequiresApproval(t *testing.T) {
	u := NewUser("shop@example.com", "Shop", "hash", RoleVendor)
	assert.False(t, u.Approved)
	assert.False(t, u.CanSell())

	u.Approve()
	assert.True(t, u.CanSell())
}

func TestAdminCanSellImmediately(t *testing.T) {
	u := NewUser("admin@example.com", "Admin", "hash", RoleAdmin)
	assert.True(t, u.Approved)
	assert.True(t, u.CanSell())
}

func TestDistributorCannotSell(t *testing.T) {
	u := NewUser("dist@example.com", "Dist", "hash", RoleDistributor)
	u.Approve()
	assert.False(t, u.CanSell())
}

func TestSessionExpiry(t *testing.T) {
	live := &AuthSession{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, live.IsExpired())

	dead := &AuthSession{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, dead.IsExpired())
}
