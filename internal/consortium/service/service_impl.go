package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/domain"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("consortium.service"),
		genID: p.GenID,
	}
}

func (s *Service) CreateGroup(ctx context.Context, req domain.CreateGroupRequest) (*domain.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	record := &domain.Group{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) ListGroups(ctx context.Context) ([]domain.Group, error) {
	var groups []domain.Group
	if err := s.db.WithContext(ctx).Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *Service) GetGroup(ctx context.Context, id string) (*domain.Group, error) {
	groupID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidGroupID
	}

	var record domain.Group
	if err := s.db.WithContext(ctx).First(&record, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *Service) CreateQuota(ctx context.Context, req domain.CreateQuotaRequest) (*domain.Quota, error) {
	group, err := s.GetGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, domain.ErrInvalidNumber
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&domain.Quota{}).
		Where("group_id = ? AND number = ?", group.ID, number).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, domain.ErrDuplicateNumber
	}

	now := time.Now().UTC()
	record := &domain.Quota{
		ID:        s.genID.Generate(),
		GroupID:   group.ID,
		Number:    number,
		Status:    domain.QuotaAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) ListQuotas(ctx context.Context, req domain.ListQuotasRequest) ([]domain.Quota, error) {
	tx := s.db.WithContext(ctx).Model(&domain.Quota{})
	if raw := strings.TrimSpace(req.GroupID); raw != "" {
		groupID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidGroupID
		}
		tx = tx.Where("group_id = ?", groupID)
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var quotas []domain.Quota
	if err := tx.Order("number").Find(&quotas).Error; err != nil {
		return nil, err
	}
	return quotas, nil
}

func (s *Service) GetQuota(ctx context.Context, id string) (*domain.Quota, error) {
	quotaID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidQuotaID
	}

	var record domain.Quota
	if err := s.db.WithContext(ctx).First(&record, "id = ?", quotaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuotaNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Reserve is a compare-and-set: only an available quota can be taken, so two
// contracts racing for the same quota cannot both succeed.
func (s *Service) Reserve(ctx context.Context, quotaID, contractID snowflake.ID) error {
	result := s.db.WithContext(ctx).Model(&domain.Quota{}).
		Where("id = ? AND status = ?", quotaID, domain.QuotaAvailable).
		Updates(map[string]any{
			"status":      domain.QuotaReserved,
			"contract_id": contractID,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.GetQuota(ctx, quotaID.String()); err != nil {
			return err
		}
		return domain.ErrQuotaUnavailable
	}
	return nil
}

func (s *Service) Release(ctx context.Context, quotaID, contractID snowflake.ID) error {
	result := s.db.WithContext(ctx).Model(&domain.Quota{}).
		Where("id = ? AND contract_id = ?", quotaID, contractID).
		Updates(map[string]any{
			"status":      domain.QuotaAvailable,
			"contract_id": nil,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuotaNotHeld
	}
	return nil
}

func (s *Service) Occupy(ctx context.Context, quotaID, contractID snowflake.ID) error {
	result := s.db.WithContext(ctx).Model(&domain.Quota{}).
		Where("id = ? AND contract_id = ? AND status = ?", quotaID, contractID, domain.QuotaReserved).
		Updates(map[string]any{
			"status":     domain.QuotaOccupied,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuotaNotHeld
	}
	return nil
}
