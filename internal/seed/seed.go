package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/auth/password"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/config"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/identity"
)

const (
	defaultAdminEmail    = "admin@credcar.local"
	defaultAdminPassword = "admin"
)

// EnsureDefaultAdmin creates the bootstrap administrator when no admin
// exists yet. Disabled in production unless explicitly opted in.
func EnsureDefaultAdmin(ctx context.Context, db *gorm.DB, genID *snowflake.Node, cfg config.Config, log *zap.Logger) error {
	if !cfg.Bootstrap.EnsureDefaultAdmin {
		return nil
	}
	if cfg.IsProduction() {
		log.Warn("default admin bootstrap requested in production, skipping")
		return nil
	}

	var existing identity.User
	err := db.WithContext(ctx).First(&existing, "role = ?", "admin").Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &identity.User{
		ID:           genID.Generate(),
		Name:         "Administrador",
		Email:        defaultAdminEmail,
		PasswordHash: &hash,
		Role:         "admin",
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	log.Info("default admin created",
		zap.String("email", defaultAdminEmail),
		zap.String("user_id", admin.ID.String()),
	)
	return nil
}
