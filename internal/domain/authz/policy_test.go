package authz

import (
	"testing"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func ptr(v uint64) *uint64 { return &v }

func TestCanListAll(t *testing.T) {
	assert.True(t, CanListAll(entity.RoleAdmin))
	assert.False(t, CanListAll(entity.RoleFinance))
}

func TestCanView(t *testing.T) {
	testCases := []struct {
		name     string
		role     entity.Role
		actor    uint64
		owner    *uint64
		expected bool
	}{
		{"Admin sees any record", entity.RoleAdmin, 1, ptr(2), true},
		{"Admin sees orphaned record", entity.RoleAdmin, 1, nil, true},
		{"Finance sees own record", entity.RoleFinance, 2, ptr(2), true},
		{"Finance cannot see another profile's record", entity.RoleFinance, 1, ptr(2), false},
		{"Finance cannot see orphaned record", entity.RoleFinance, 2, nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CanView(tc.role, tc.actor, tc.owner))
		})
	}
}

func TestCanAccessReceipt(t *testing.T) {
	// Same rule as CanView across the board
	assert.True(t, CanAccessReceipt(entity.RoleAdmin, 1, ptr(2)))
	assert.True(t, CanAccessReceipt(entity.RoleFinance, 2, ptr(2)))
	assert.False(t, CanAccessReceipt(entity.RoleFinance, 1, ptr(2)))
}

func TestAdminOnlyPredicates(t *testing.T) {
	assert.True(t, CanViewStats(entity.RoleAdmin))
	assert.False(t, CanViewStats(entity.RoleFinance))

	assert.True(t, CanUpdateRole(entity.RoleAdmin))
	assert.False(t, CanUpdateRole(entity.RoleFinance))

	assert.True(t, CanListUsers(entity.RoleAdmin))
	assert.False(t, CanListUsers(entity.RoleFinance))
}
