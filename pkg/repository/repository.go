package repository

import (
	"context"

	"gorm.io/gorm"
)

// Option customizes a find query.
type Option func(*gorm.DB) *gorm.DB

// WithLimit caps the number of returned rows.
func WithLimit(limit int) Option {
	return func(tx *gorm.DB) *gorm.DB {
		if limit > 0 {
			return tx.Limit(limit)
		}
		return tx
	}
}

// WithOrder applies an ORDER BY clause.
func WithOrder(order string) Option {
	return func(tx *gorm.DB) *gorm.DB {
		if order != "" {
			return tx.Order(order)
		}
		return tx
	}
}

// WithCursor continues a keyset scan after the given row id.
func WithCursor(afterID int64) Option {
	return func(tx *gorm.DB) *gorm.DB {
		if afterID > 0 {
			return tx.Where("id > ?", afterID)
		}
		return tx
	}
}

// Repository is a thin generic store over gorm for one model type.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	Delete(ctx context.Context, filter map[string]any) error
	FindOne(ctx context.Context, filter map[string]any) (*T, error)
	Find(ctx context.Context, filter map[string]any, opts ...Option) ([]T, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to the shared connection.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *store[T]) Save(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Save(record).Error
}

func (s *store[T]) Delete(ctx context.Context, filter map[string]any) error {
	var model T
	return s.db.WithContext(ctx).Where(filter).Delete(&model).Error
}

func (s *store[T]) FindOne(ctx context.Context, filter map[string]any) (*T, error) {
	var record T
	if err := s.db.WithContext(ctx).Where(filter).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *store[T]) Find(ctx context.Context, filter map[string]any, opts ...Option) ([]T, error) {
	tx := s.db.WithContext(ctx).Where(filter)
	for _, opt := range opts {
		tx = opt(tx)
	}
	var records []T
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *store[T]) Count(ctx context.Context, filter map[string]any) (int64, error) {
	var model T
	var total int64
	if err := s.db.WithContext(ctx).Model(&model).Where(filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
