package migration

import (
	"context"

	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/persistence"
	userUseCase "github.com/wanjiru-dev/church-ledger/internal/domain/usecase/user"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/config"
)

// SeedAdmin creates the bootstrap treasurer account on first start. Without
// it a fresh deployment has nobody who can assign roles. Skipped when an
// admin already exists or when no seed password is configured.
func SeedAdmin(
	ctx context.Context,
	repo persistence.UserRepository,
	userService *userUseCase.Service,
	cfg config.SeedConfig,
	logger coreport.Logger,
) error {
	if cfg.AdminPassword == "" {
		logger.Info("No seed admin password configured, skipping admin seed", nil)
		return nil
	}

	exists, err := repo.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug("Admin account already present, skipping admin seed", nil)
		return nil
	}

	_, err = userService.Register(ctx, userUseCase.RegisterInput{
		Username:  cfg.AdminUsername,
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		Password2: cfg.AdminPassword,
		Role:      "ADMIN",
	})
	if err != nil {
		logger.Error("Failed to seed admin account", map[string]any{
			"username": cfg.AdminUsername,
			"error":    err.Error(),
		})
		return err
	}

	logger.Info("Seed admin account created", map[string]any{
		"username": cfg.AdminUsername,
	})
	return nil
}
