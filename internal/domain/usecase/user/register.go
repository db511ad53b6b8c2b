package user

import (
	"context"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
)

// RegisterInput carries the registration request fields. Password2 must
// repeat Password exactly.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Password2   string
	PhoneNumber string
	Role        string
}

// Register creates a user together with its profile inside one transaction.
// A blank role defaults to FINANCE so new accounts start with the narrower
// visibility.
//
// Possible errors:
// - ErrPasswordMismatch: If the two password fields differ
// - ErrWeakPassword: If the password fails the strength policy
// - ErrDuplicateUser: If the username or email is already taken
// - ErrInvalidRole: If a role is given and is not ADMIN or FINANCE
func (s *Service) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if input.Password != input.Password2 {
		return nil, errs.NewValidationError("password2", errs.ErrPasswordMismatch)
	}
	if err := s.policy.Validate(input.Password); err != nil {
		return nil, errs.NewValidationError("password", err)
	}

	role := entity.RoleFinance
	if input.Role != "" {
		role = entity.Role(input.Role)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("Password hashing failed", map[string]any{"error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(input.Username, input.Email, input.FirstName, input.LastName, hash, role, s.timeProvider)
	if err != nil {
		return nil, err
	}
	user.Profile.PhoneNumber = input.PhoneNumber

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	repo := s.uow.GetUserRepository(txCtx)
	if err := repo.CreateUser(txCtx, user); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	user.Profile.UserID = user.ID
	if err := repo.CreateProfile(txCtx, user.Profile); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Profile.Role),
	})

	return user, nil
}

func (s *Service) rollback(ctx context.Context) {
	if err := s.uow.Rollback(ctx); err != nil {
		s.logger.Warn("Rollback failed", map[string]any{"error": err.Error()})
	}
}
