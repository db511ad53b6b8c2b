package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements the user persistence port using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *UserRepository) userToModel(user *entity.User) model.User {
	return model.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func (r *UserRepository) modelToUser(m *model.User) *entity.User {
	user := &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Profile != nil {
		user.Profile = r.modelToProfile(m.Profile)
	}
	return user
}

func (r *UserRepository) profileToModel(profile *entity.Profile) model.Profile {
	return model.Profile{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Role:        string(profile.Role),
		PhoneNumber: profile.PhoneNumber,
	}
}

func (r *UserRepository) modelToProfile(m *model.Profile) *entity.Profile {
	return &entity.Profile{
		ID:          m.ID,
		UserID:      m.UserID,
		Role:        entity.Role(m.Role),
		PhoneNumber: m.PhoneNumber,
	}
}

// CreateUser saves a new user account and fills in its generated ID
func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	userModel := r.userToModel(user)

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate user detected", map[string]any{"username": user.Username})
			return errs.ErrDuplicateUser
		}
		r.logger.Error("Failed to create user", map[string]any{
			"username": user.Username,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	user.ID = userModel.ID

	r.logger.Info("User created successfully", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// CreateProfile saves the profile attached to a user
func (r *UserRepository) CreateProfile(ctx context.Context, profile *entity.Profile) error {
	profileModel := r.profileToModel(profile)

	result := r.db.WithContext(ctx).Create(&profileModel)
	if result.Error != nil {
		r.logger.Error("Failed to create profile", map[string]any{
			"user_id": profile.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	profile.ID = profileModel.ID
	return nil
}

// GetByID retrieves a user with its profile by user ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Preload("Profile").
		First(&userModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		r.logger.Error("Failed to get user", map[string]any{
			"user_id": id,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToUser(&userModel), nil
}

// GetProfileByUserID retrieves the profile attached to the given user
func (r *UserRepository) GetProfileByUserID(ctx context.Context, userID uint64) (*entity.Profile, error) {
	var profileModel model.Profile
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProfileNotFound
		}
		r.logger.Error("Failed to get profile", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToProfile(&profileModel), nil
}

// UpdateUser updates the mutable account fields of a user
func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"updated_at": user.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update user", map[string]any{
			"user_id": user.ID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// UpdateProfile updates the mutable non-role fields of a profile
func (r *UserRepository) UpdateProfile(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"phone_number": profile.PhoneNumber,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update profile", map[string]any{
			"profile_id": profile.ID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrProfileNotFound
	}
	return nil
}

// UpdateRoleByUserID overwrites the role on the profile attached to the given user
func (r *UserRepository) UpdateRoleByUserID(ctx context.Context, userID uint64, role entity.Role) error {
	result := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("role", string(role))

	if result.Error != nil {
		r.logger.Error("Failed to update role", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrProfileNotFound
	}

	r.logger.Info("Role updated", map[string]any{
		"user_id": userID,
		"role":    string(role),
	})
	return nil
}

// ListWithProfiles returns all users with their profiles attached
func (r *UserRepository) ListWithProfiles(ctx context.Context) ([]*entity.User, error) {
	var models []model.User
	result := r.db.WithContext(ctx).
		Preload("Profile").
		Order("username").
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Failed to list users", map[string]any{"error": result.Error.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, r.modelToUser(&models[i]))
	}
	return users, nil
}

// AdminExists reports whether any profile holds the ADMIN role
func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("role = ?", string(entity.RoleAdmin)).
		Count(&count)

	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count > 0, nil
}
