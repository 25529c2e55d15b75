package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/domain"
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
		log:   p.Log.Named("commission.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CommissionTable, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Percentage < 0 || req.Percentage > 100 {
		return nil, domain.ErrInvalidPercentage
	}
	formula := strings.TrimSpace(req.Formula)
	if formula != "" {
		if _, err := govaluate.NewEvaluableExpression(formula); err != nil {
			return nil, domain.ErrInvalidFormula
		}
	}

	now := time.Now().UTC()
	record := &domain.CommissionTable{
		ID:             s.genID.Generate(),
		Name:           name,
		Percentage:     req.Percentage,
		PaymentDetails: strings.TrimSpace(req.PaymentDetails),
		Formula:        formula,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context) ([]domain.CommissionTable, error) {
	var tables []domain.CommissionTable
	if err := s.db.WithContext(ctx).Order("name").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.CommissionTable, error) {
	tableID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var record domain.CommissionTable
	if err := s.db.WithContext(ctx).First(&record, "id = ?", tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Preview computes the representative commission for a contract total. A
// formula, when present, receives `total` and `percentual` (both in reais)
// and must evaluate to the commission in reais.
func (s *Service) Preview(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewResponse, error) {
	table, err := s.GetByID(ctx, req.TableID)
	if err != nil {
		return nil, err
	}

	totalReais := float64(req.TotalAmount) / 100.0
	commissionReais := totalReais * table.Percentage / 100.0

	if table.Formula != "" {
		expression, err := govaluate.NewEvaluableExpression(table.Formula)
		if err != nil {
			return nil, domain.ErrInvalidFormula
		}
		result, err := expression.Evaluate(map[string]any{
			"total":      totalReais,
			"percentual": table.Percentage,
		})
		if err != nil {
			return nil, domain.ErrInvalidFormula
		}
		value, ok := result.(float64)
		if !ok {
			return nil, domain.ErrInvalidFormula
		}
		commissionReais = value
	}

	return &domain.PreviewResponse{
		TableID:          table.ID.String(),
		TotalAmount:      req.TotalAmount,
		CommissionAmount: int64(math.Round(commissionReais * 100)),
		Percentage:       table.Percentage,
	}, nil
}
