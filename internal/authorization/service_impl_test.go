package authorization

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAuthorizeAllowsAdminApproval(t *testing.T) {
	db := setupAuthzTestDB(t)
	insertUser(t, db, 10, "admin")

	svc := newTestService(t, db)

	if err := svc.Authorize(context.Background(), "user:10", ObjectContract, ActionContractApprove); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
}

func TestAuthorizeDeniesRepresentativeApproval(t *testing.T) {
	db := setupAuthzTestDB(t)
	insertUser(t, db, 11, "representative")

	svc := newTestService(t, db)

	err := svc.Authorize(context.Background(), "user:11", ObjectContract, ActionContractApprove)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAuthorizeAllowsRepresentativeEdit(t *testing.T) {
	db := setupAuthzTestDB(t)
	insertUser(t, db, 12, "representative")

	svc := newTestService(t, db)

	if err := svc.Authorize(context.Background(), "user:12", ObjectContract, ActionContractEdit); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
}

func TestAuthorizeDeniesUnknownUser(t *testing.T) {
	db := setupAuthzTestDB(t)

	svc := newTestService(t, db)

	err := svc.Authorize(context.Background(), "user:99", ObjectContract, ActionContractEdit)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAuthorizeSystem(t *testing.T) {
	db := setupAuthzTestDB(t)

	svc := newTestService(t, db)

	if err := svc.Authorize(context.Background(), "system", ObjectContract, ActionContractApprove); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	enforcer, err := NewEnforcer(db)
	if err != nil {
		t.Fatalf("new enforcer: %v", err)
	}
	return &ServiceImpl{
		db:       db,
		log:      zap.NewNop(),
		enforcer: enforcer,
	}
}

func setupAuthzTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create users: %v", err)
	}
	return db
}

func insertUser(t *testing.T, db *gorm.DB, userID int64, role string) {
	t.Helper()
	if err := db.Exec(
		`INSERT INTO users (id, role) VALUES (?, ?)`,
		userID,
		role,
	).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
}
