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

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/cache"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/template/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/repository"
)

const templateCacheTTL = 5 * time.Minute

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  repository.Repository[domain.ContractTemplate]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.ContractTemplate]

	// byID caches template rows on the contract-expansion hot path.
	byID *cache.TTLCache[snowflake.ID, domain.ContractTemplate]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("template.service"),
		genID: p.GenID,
		repo:  p.Repo,
		byID:  cache.NewTTLCache[snowflake.ID, domain.ContractTemplate](),
	}
}

func (s *Service) Create(ctx context.Context, authorID string, req domain.CreateRequest) (*domain.ContractTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	visibility, err := parseVisibility(req.Visibility)
	if err != nil {
		return nil, err
	}
	author, err := snowflake.ParseString(strings.TrimSpace(authorID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	taken, err := s.nameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrNameTaken
	}

	now := time.Now().UTC()
	record := &domain.ContractTemplate{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
		Visibility:  visibility,
		AuthorID:    author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.ContractTemplate, error) {
	filter := map[string]any{}
	if !req.IncludeAdminOnly {
		filter["visibility"] = domain.VisibilityAll
	}
	return s.repo.Find(ctx, filter, repository.WithOrder("name"))
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.ContractTemplate, error) {
	templateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	if cached, ok := s.byID.Get(templateID); ok {
		return &cached, nil
	}

	record, err := s.fetch(ctx, templateID)
	if err != nil {
		return nil, err
	}

	s.byID.Set(templateID, *record, templateCacheTTL)
	return record, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.ContractTemplate, error) {
	templateID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	record, err := s.fetch(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		if name != record.Name {
			taken, err := s.nameTaken(ctx, name, record.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrNameTaken
			}
			record.Name = name
		}
	}
	if req.Description != nil {
		record.Description = strings.TrimSpace(*req.Description)
	}
	if req.Content != nil {
		record.Content = *req.Content
	}
	if req.Visibility != nil {
		visibility, err := parseVisibility(*req.Visibility)
		if err != nil {
			return nil, err
		}
		record.Visibility = visibility
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.byID.Delete(record.ID)
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	templateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}
	if _, err := s.fetch(ctx, templateID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, map[string]any{"id": templateID}); err != nil {
		return err
	}
	s.byID.Delete(templateID)
	return nil
}

// fetch reads through to the database, bypassing the cache, for mutations.
func (s *Service) fetch(ctx context.Context, id snowflake.ID) (*domain.ContractTemplate, error) {
	record, err := s.repo.FindOne(ctx, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *Service) nameTaken(ctx context.Context, name string, excludeID snowflake.ID) (bool, error) {
	existing, err := s.repo.FindOne(ctx, map[string]any{"name": name})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}

func parseVisibility(raw string) (domain.Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(domain.VisibilityAll):
		return domain.VisibilityAll, nil
	case string(domain.VisibilityAdmin):
		return domain.VisibilityAdmin, nil
	default:
		return "", domain.ErrInvalidVisibility
	}
}
