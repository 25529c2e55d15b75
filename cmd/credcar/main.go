package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/audit"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/authorization"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/client"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/clock"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/commission"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/config"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/contract"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/events"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/migration"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/observability/logger"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/observability/tracing"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/seed"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/server"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/storage"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/template"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/db"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		db.Module,
		clock.Module,
		events.Module,
		storage.Module,

		fx.Provide(newSnowflakeNode),
		fx.Invoke(runMigrations),
		fx.Invoke(bootstrap),

		authorization.Module,
		audit.Module,
		client.Module,
		consortium.Module,
		commission.Module,
		template.Module,
		signature.Module,
		contract.Module,

		server.Module,
	).Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func runMigrations(conn *gorm.DB, log *zap.Logger) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	if err := migration.RunMigrations(sqlDB); err != nil {
		return err
	}
	log.Info("database migrations applied")
	return nil
}

func bootstrap(conn *gorm.DB, genID *snowflake.Node, cfg config.Config, log *zap.Logger) error {
	return seed.EnsureDefaultAdmin(context.Background(), conn, genID, cfg, log)
}
