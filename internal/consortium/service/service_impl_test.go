package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/domain"
)

func TestCreateQuotaRejectsDuplicateNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	group := mustGroup(t, svc, "Veículos")

	if _, err := svc.CreateQuota(ctx, domain.CreateQuotaRequest{GroupID: group.ID.String(), Number: "007"}); err != nil {
		t.Fatalf("create quota: %v", err)
	}
	_, err := svc.CreateQuota(ctx, domain.CreateQuotaRequest{GroupID: group.ID.String(), Number: "007"})
	if !errors.Is(err, domain.ErrDuplicateNumber) {
		t.Fatalf("expected duplicate number, got %v", err)
	}
}

func TestReserveTakesQuotaExactlyOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	quota := mustQuota(t, svc, "001")

	if err := svc.Reserve(ctx, quota.ID, 500); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if err := svc.Reserve(ctx, quota.ID, 501); !errors.Is(err, domain.ErrQuotaUnavailable) {
		t.Fatalf("expected unavailable on second reserve, got %v", err)
	}

	got, err := svc.GetQuota(ctx, quota.ID.String())
	if err != nil {
		t.Fatalf("get quota: %v", err)
	}
	if got.Status != domain.QuotaReserved || got.ContractID == nil || *got.ContractID != 500 {
		t.Fatalf("quota must stay with the first contract: %+v", got)
	}
}

func TestReserveUnknownQuota(t *testing.T) {
	svc := newTestService(t)

	err := svc.Reserve(context.Background(), 42, 500)
	if !errors.Is(err, domain.ErrQuotaNotFound) {
		t.Fatalf("expected quota not found, got %v", err)
	}
}

func TestReleaseRequiresHoldingContract(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	quota := mustQuota(t, svc, "002")

	if err := svc.Reserve(ctx, quota.ID, 500); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := svc.Release(ctx, quota.ID, 999); !errors.Is(err, domain.ErrQuotaNotHeld) {
		t.Fatalf("expected not held for wrong contract, got %v", err)
	}
	if err := svc.Release(ctx, quota.ID, 500); err != nil {
		t.Fatalf("release by holder: %v", err)
	}

	got, err := svc.GetQuota(ctx, quota.ID.String())
	if err != nil {
		t.Fatalf("get quota: %v", err)
	}
	if got.Status != domain.QuotaAvailable || got.ContractID != nil {
		t.Fatalf("quota not back in the pool: %+v", got)
	}
}

func TestOccupyOnlyFromReserved(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	quota := mustQuota(t, svc, "003")

	if err := svc.Occupy(ctx, quota.ID, 500); !errors.Is(err, domain.ErrQuotaNotHeld) {
		t.Fatalf("expected not held before reserve, got %v", err)
	}
	if err := svc.Reserve(ctx, quota.ID, 500); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := svc.Occupy(ctx, quota.ID, 500); err != nil {
		t.Fatalf("occupy: %v", err)
	}

	got, err := svc.GetQuota(ctx, quota.ID.String())
	if err != nil {
		t.Fatalf("get quota: %v", err)
	}
	if got.Status != domain.QuotaOccupied {
		t.Fatalf("expected occupied, got %s", got.Status)
	}
}

func TestListQuotasFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	group := mustGroup(t, svc, "Imóveis")
	first, err := svc.CreateQuota(ctx, domain.CreateQuotaRequest{GroupID: group.ID.String(), Number: "100"})
	if err != nil {
		t.Fatalf("create quota: %v", err)
	}
	if _, err := svc.CreateQuota(ctx, domain.CreateQuotaRequest{GroupID: group.ID.String(), Number: "101"}); err != nil {
		t.Fatalf("create quota: %v", err)
	}
	if err := svc.Reserve(ctx, first.ID, 500); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	available, err := svc.ListQuotas(ctx, domain.ListQuotasRequest{
		GroupID: group.ID.String(),
		Status:  string(domain.QuotaAvailable),
	})
	if err != nil {
		t.Fatalf("list quotas: %v", err)
	}
	if len(available) != 1 || available[0].Number != "101" {
		t.Fatalf("unexpected available quotas: %+v", available)
	}
}

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Group{}, &domain.Quota{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func mustGroup(t *testing.T, svc domain.Service, name string) *domain.Group {
	t.Helper()
	group, err := svc.CreateGroup(context.Background(), domain.CreateGroupRequest{Name: name})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group
}

func mustQuota(t *testing.T, svc domain.Service, number string) *domain.Quota {
	t.Helper()
	group := mustGroup(t, svc, "Grupo "+number)
	quota, err := svc.CreateQuota(context.Background(), domain.CreateQuotaRequest{
		GroupID: group.ID.String(),
		Number:  number,
	})
	if err != nil {
		t.Fatalf("create quota: %v", err)
	}
	return quota
}
