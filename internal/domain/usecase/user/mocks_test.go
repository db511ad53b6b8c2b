package user

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/persistence"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) CreateProfile(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetProfileByUserID(ctx context.Context, userID uint64) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*entity.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateRoleByUserID(ctx context.Context, userID uint64, role entity.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *mockUserRepo) ListWithProfiles(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) AdminExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type mockUnitOfWork struct {
	mock.Mock
	repo *mockUserRepo
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return ctx, args.Error(0)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return m.repo
}

func (m *mockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return nil
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(hash, password string) bool {
	args := m.Called(hash, password)
	return args.Bool(0)
}

type mockPolicy struct {
	mock.Mock
}

func (m *mockPolicy) Validate(password string) error {
	args := m.Called(password)
	return args.Error(0)
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func (f fixedClock) Since(t time.Time) time.Duration {
	return f.now.Sub(t)
}

func (f fixedClock) WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

type stubLogger struct{}

func (stubLogger) Debug(msg string, fields map[string]any) {}
func (stubLogger) Info(msg string, fields map[string]any)  {}
func (stubLogger) Warn(msg string, fields map[string]any)  {}
func (stubLogger) Error(msg string, fields map[string]any) {}
func (stubLogger) Flush() error                            { return nil }
