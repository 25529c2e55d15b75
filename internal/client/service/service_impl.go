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

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/client/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/db/pagination"
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
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	document := digitsOnly(req.CpfCnpj)
	if document != "" && len(document) != 11 && len(document) != 14 {
		return nil, domain.ErrInvalidDocument
	}

	now := time.Now().UTC()
	record := &domain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		CpfCnpj:   document,
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	tx := s.db.WithContext(ctx).Model(&domain.Client{})
	if search := strings.TrimSpace(req.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR cpf_cnpj LIKE ?", pattern, "%"+digitsOnly(search)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return domain.ListResponse{}, err
	}

	limit := req.Limit()
	if cursor := req.Cursor(); cursor > 0 {
		tx = tx.Where("id > ?", cursor)
	}

	var clients []domain.Client
	if err := tx.Order("id").Limit(limit + 1).Find(&clients).Error; err != nil {
		return domain.ListResponse{}, err
	}

	resp := domain.ListResponse{Clients: clients}
	resp.TotalSize = total
	if len(clients) > limit {
		resp.Clients = clients[:limit]
		resp.NextPageToken = pagination.EncodeToken(int64(clients[limit-1].ID))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var record domain.Client
	if err := s.db.WithContext(ctx).First(&record, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Client, error) {
	record, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		record.Name = name
	}
	if req.Email != nil {
		record.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		record.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CpfCnpj != nil {
		document := digitsOnly(*req.CpfCnpj)
		if document != "" && len(document) != 11 && len(document) != 14 {
			return nil, domain.ErrInvalidDocument
		}
		record.CpfCnpj = document
	}
	if req.Address != nil {
		record.Address = strings.TrimSpace(*req.Address)
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func digitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}
