package storage

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/config"
)

var Module = fx.Module("storage",
	fx.Provide(func(cfg config.Config, log *zap.Logger) *LocalStore {
		return NewLocalStore(cfg.StorageDir, cfg.PublicOrigin, log)
	}),
	fx.Provide(func(store *LocalStore) BlobStore {
		return store
	}),
)
