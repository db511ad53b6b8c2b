package user

import (
	"context"

	"github.com/wanjiru-dev/church-ledger/internal/domain/authz"
	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/external"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/persistence"
)

// Service owns registration, profile access, and role assignment
type Service struct {
	uow          persistence.UnitOfWork
	repo         persistence.UserRepository
	hasher       external.PasswordHasher
	policy       external.PasswordPolicy
	timeProvider core.TimeProvider
	logger       core.Logger
}

// NewService creates a user service
func NewService(
	uow persistence.UnitOfWork,
	repo persistence.UserRepository,
	hasher external.PasswordHasher,
	policy external.PasswordPolicy,
	timeProvider core.TimeProvider,
	logger core.Logger,
) *Service {
	return &Service{
		uow:          uow,
		repo:         repo,
		hasher:       hasher,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetProfile returns the actor's own account with its profile attached
func (s *Service) GetProfile(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	return s.repo.GetByID(ctx, actor.UserID)
}

// UpdateProfileInput carries the self-service profile fields. Role is
// deliberately absent; it changes only through UpdateRole.
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

// UpdateProfile updates the actor's own non-role fields
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput, actor entity.Actor) (*entity.User, error) {
	user, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.UpdatedAt = s.timeProvider.Now()
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if user.Profile != nil {
		user.Profile.PhoneNumber = input.PhoneNumber
		if err := s.repo.UpdateProfile(ctx, user.Profile); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// ListUsers returns all accounts with profiles. Admin only.
func (s *Service) ListUsers(ctx context.Context, actor entity.Actor) ([]*entity.User, error) {
	if !authz.CanListUsers(actor.Role) {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListWithProfiles(ctx)
}

// UpdateRole overwrites the role on the target user's profile. Admin only.
func (s *Service) UpdateRole(ctx context.Context, targetUserID uint64, newRole string, actor entity.Actor) (*entity.Profile, error) {
	if !authz.CanUpdateRole(actor.Role) {
		return nil, errs.ErrForbidden
	}
	if !entity.IsValidRole(newRole) {
		return nil, errs.NewValidationError("role", errs.ErrInvalidRole)
	}

	if err := s.repo.UpdateRoleByUserID(ctx, targetUserID, entity.Role(newRole)); err != nil {
		return nil, err
	}

	s.logger.Info("Role updated", map[string]any{
		"target_user_id": targetUserID,
		"new_role":       newRole,
		"actor_user_id":  actor.UserID,
	})

	return s.repo.GetProfileByUserID(ctx, targetUserID)
}
