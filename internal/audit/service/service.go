package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/observability/logger"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry domain.Entry) error {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return nil
	}

	row := &domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorRole:  strings.TrimSpace(entry.ActorRole),
		Action:     action,
		TargetType: strings.TrimSpace(entry.TargetType),
		Metadata:   datatypes.JSONMap(logger.MaskJSON(entry.Metadata)),
		CreatedAt:  time.Now().UTC(),
	}
	if row.Metadata == nil {
		row.Metadata = datatypes.JSONMap{}
	}
	if id := strings.TrimSpace(entry.ActorID); id != "" {
		row.ActorID = &id
	}
	if id := strings.TrimSpace(entry.TargetID); id != "" {
		row.TargetID = &id
	}
	if ip := strings.TrimSpace(entry.IPAddress); ip != "" {
		row.IPAddress = &ip
	}

	if err := s.repo.Insert(ctx, s.db, row); err != nil {
		s.log.Warn("audit insert failed", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.AuditLog, error) {
	return s.repo.List(ctx, s.db, filter)
}
