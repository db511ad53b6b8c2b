package persistence

import (
	"context"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user and profile data
type UserRepository interface {
	// CreateUser saves a new user account and fills in its generated ID
	//
	// Possible errors:
	// - ErrDuplicateUser: If the username or email is already taken
	// - ErrDatabaseConnection: If database connection fails
	CreateUser(ctx context.Context, user *entity.User) error

	// CreateProfile saves the profile attached to a user. Registration calls
	// this through the unit of work in the same transaction as CreateUser so
	// a user can never exist without its profile.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	CreateProfile(ctx context.Context, profile *entity.Profile) error

	// GetByID retrieves a user with its profile by user ID
	//
	// Possible errors:
	// - ErrUserNotFound: If no user with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetProfileByUserID retrieves the profile attached to the given user
	//
	// Possible errors:
	// - ErrProfileNotFound: If the user has no profile
	// - ErrDatabaseConnection: If database connection fails
	GetProfileByUserID(ctx context.Context, userID uint64) (*entity.Profile, error)

	// UpdateUser updates the mutable account fields of a user
	//
	// Possible errors:
	// - ErrUserNotFound: If no user with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	UpdateUser(ctx context.Context, user *entity.User) error

	// UpdateProfile updates the mutable non-role fields of a profile
	//
	// Possible errors:
	// - ErrProfileNotFound: If no profile with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	UpdateProfile(ctx context.Context, profile *entity.Profile) error

	// UpdateRoleByUserID overwrites the role on the profile attached to the
	// given user. Only reachable behind the admin-only policy check.
	//
	// Possible errors:
	// - ErrProfileNotFound: If the user has no profile
	// - ErrDatabaseConnection: If database connection fails
	UpdateRoleByUserID(ctx context.Context, userID uint64, role entity.Role) error

	// ListWithProfiles returns all users with their profiles attached
	ListWithProfiles(ctx context.Context) ([]*entity.User, error)

	// AdminExists reports whether any profile holds the ADMIN role.
	// Used by the startup seed.
	AdminExists(ctx context.Context) (bool, error)
}
