// Package authz centralizes the role and ownership rules as pure predicates.
// Every entry point (list, detail, receipt download, stats, role changes)
// calls these instead of checking roles inline, so the visibility rule cannot
// drift between endpoints.
package authz

import (
	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
)

// CanListAll reports whether the role may see every transaction
func CanListAll(role entity.Role) bool {
	return role == entity.RoleAdmin
}

// CanView reports whether the actor may see a transaction owned by the given
// profile. A nil owner means the recording profile was deleted; only an admin
// can still see such records.
func CanView(role entity.Role, actorProfileID uint64, ownerProfileID *uint64) bool {
	if role == entity.RoleAdmin {
		return true
	}
	return ownerProfileID != nil && *ownerProfileID == actorProfileID
}

// CanAccessReceipt applies the same rule as CanView. Kept as its own
// predicate so the receipt-download boundary reads as a policy decision.
func CanAccessReceipt(role entity.Role, actorProfileID uint64, ownerProfileID *uint64) bool {
	return CanView(role, actorProfileID, ownerProfileID)
}

// CanViewStats reports whether the role may see aggregate statistics
func CanViewStats(role entity.Role) bool {
	return role == entity.RoleAdmin
}

// CanUpdateRole reports whether the actor's role may change another profile's role
func CanUpdateRole(actorRole entity.Role) bool {
	return actorRole == entity.RoleAdmin
}

// CanListUsers reports whether the role may list all user accounts
func CanListUsers(role entity.Role) bool {
	return role == entity.RoleAdmin
}
