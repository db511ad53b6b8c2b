package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
)

func newTestService() (*Service, *mockUserRepo, *mockUnitOfWork, *mockHasher, *mockPolicy) {
	repo := &mockUserRepo{}
	uow := &mockUnitOfWork{repo: repo}
	hasher := &mockHasher{}
	policy := &mockPolicy{}
	clock := fixedClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(uow, repo, hasher, policy, clock, stubLogger{})
	return svc, repo, uow, hasher, policy
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:    "mary.w",
		Email:       "mary@example.com",
		FirstName:   "Mary",
		LastName:    "Wanjiru",
		Password:    "s3cure-pass",
		Password2:   "s3cure-pass",
		PhoneNumber: "+254700111222",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and profile in one transaction", func(t *testing.T) {
		svc, repo, uow, hasher, policy := newTestService()

		policy.On("Validate", "s3cure-pass").Return(nil)
		hasher.On("Hash", "s3cure-pass").Return("$2a$hash", nil)
		uow.On("Begin", mock.Anything).Return(nil)
		repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.User).ID = 7
			}).Return(nil)
		repo.On("CreateProfile", mock.Anything, mock.AnythingOfType("*entity.Profile")).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)

		user, err := svc.Register(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, uint64(7), user.ID)
		assert.Equal(t, "$2a$hash", user.PasswordHash)
		require.NotNil(t, user.Profile)
		assert.Equal(t, entity.RoleFinance, user.Profile.Role)
		assert.Equal(t, uint64(7), user.Profile.UserID)
		assert.Equal(t, "+254700111222", user.Profile.PhoneNumber)
		uow.AssertCalled(t, "Commit", mock.Anything)
	})

	t.Run("rejects mismatched passwords before touching storage", func(t *testing.T) {
		svc, repo, uow, _, _ := newTestService()

		input := validInput()
		input.Password2 = "different"

		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, errs.ErrPasswordMismatch)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		svc, _, _, _, policy := newTestService()

		policy.On("Validate", "s3cure-pass").Return(errs.ErrWeakPassword)

		_, err := svc.Register(ctx, validInput())
		assert.ErrorIs(t, err, errs.ErrWeakPassword)
	})

	t.Run("explicit admin role is honoured", func(t *testing.T) {
		svc, repo, uow, hasher, policy := newTestService()

		policy.On("Validate", mock.Anything).Return(nil)
		hasher.On("Hash", mock.Anything).Return("h", nil)
		uow.On("Begin", mock.Anything).Return(nil)
		repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
		repo.On("CreateProfile", mock.Anything, mock.Anything).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)

		input := validInput()
		input.Role = "ADMIN"

		user, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, user.Profile.Role)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		svc, _, _, hasher, policy := newTestService()

		policy.On("Validate", mock.Anything).Return(nil)
		hasher.On("Hash", mock.Anything).Return("h", nil)

		input := validInput()
		input.Role = "SUPERUSER"

		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, errs.ErrInvalidRole)
	})

	t.Run("duplicate user rolls back", func(t *testing.T) {
		svc, repo, uow, hasher, policy := newTestService()

		policy.On("Validate", mock.Anything).Return(nil)
		hasher.On("Hash", mock.Anything).Return("h", nil)
		uow.On("Begin", mock.Anything).Return(nil)
		repo.On("CreateUser", mock.Anything, mock.Anything).Return(errs.ErrDuplicateUser)
		uow.On("Rollback", mock.Anything).Return(nil)

		_, err := svc.Register(ctx, validInput())
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
		uow.AssertCalled(t, "Rollback", mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("profile failure rolls back the user too", func(t *testing.T) {
		svc, repo, uow, hasher, policy := newTestService()

		policy.On("Validate", mock.Anything).Return(nil)
		hasher.On("Hash", mock.Anything).Return("h", nil)
		uow.On("Begin", mock.Anything).Return(nil)
		repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
		repo.On("CreateProfile", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
		uow.On("Rollback", mock.Anything).Return(nil)

		_, err := svc.Register(ctx, validInput())
		require.Error(t, err)
		uow.AssertCalled(t, "Rollback", mock.Anything)
	})

	t.Run("hashing failure is reported as internal error", func(t *testing.T) {
		svc, _, uow, hasher, policy := newTestService()

		policy.On("Validate", mock.Anything).Return(nil)
		hasher.On("Hash", mock.Anything).Return("", errors.New("entropy source unavailable"))

		_, err := svc.Register(ctx, validInput())
		assert.ErrorIs(t, err, errs.ErrInternalServer)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
