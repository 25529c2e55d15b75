package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/client/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/db/pagination"
)

func TestCreateNormalizesDocument(t *testing.T) {
	svc := newTestService(t)

	record, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:    "Maria Silva",
		Email:   "Maria@Example.COM",
		CpfCnpj: "123.456.789-00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.CpfCnpj != "12345678900" {
		t.Fatalf("document not normalized: %q", record.CpfCnpj)
	}
	if record.Email != "maria@example.com" {
		t.Fatalf("email not lowered: %q", record.Email)
	}
}

func TestCreateRejectsBadDocument(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:    "João",
		CpfCnpj: "123.456",
	})
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Fatalf("expected invalid document, got %v", err)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "   "})
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}
}

func TestListSearchMatchesNameAndDocument(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustCreate(t, svc, "Maria Silva", "123.456.789-00")
	mustCreate(t, svc, "João Souza", "987.654.321-00")

	byName, err := svc.List(ctx, domain.ListRequest{Search: "maria"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if len(byName.Clients) != 1 || byName.Clients[0].Name != "Maria Silva" {
		t.Fatalf("unexpected name match: %+v", byName.Clients)
	}

	byDoc, err := svc.List(ctx, domain.ListRequest{Search: "987.654"})
	if err != nil {
		t.Fatalf("list by document: %v", err)
	}
	if len(byDoc.Clients) != 1 || byDoc.Clients[0].Name != "João Souza" {
		t.Fatalf("unexpected document match: %+v", byDoc.Clients)
	}
}

func TestListPaginates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		mustCreate(t, svc, name, "")
	}

	first, err := svc.List(ctx, domain.ListRequest{Pagination: pagination.Pagination{PageSize: 2}})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Clients) != 2 || first.TotalSize != 3 || first.NextPageToken == "" {
		t.Fatalf("unexpected first page: %d clients, total %d, token %q",
			len(first.Clients), first.TotalSize, first.NextPageToken)
	}

	second, err := svc.List(ctx, domain.ListRequest{
		Pagination: pagination.Pagination{PageSize: 2, PageToken: first.NextPageToken},
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Clients) != 1 || second.NextPageToken != "" {
		t.Fatalf("unexpected second page: %d clients, token %q",
			len(second.Clients), second.NextPageToken)
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	record := mustCreate(t, svc, "Maria Silva", "123.456.789-00")

	phone := " (11) 99999-0000 "
	updated, err := svc.Update(ctx, domain.UpdateRequest{ID: record.ID.String(), Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "(11) 99999-0000" {
		t.Fatalf("phone not trimmed: %q", updated.Phone)
	}
	if updated.Name != "Maria Silva" || updated.CpfCnpj != "12345678900" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Client{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func mustCreate(t *testing.T, svc domain.Service, name, document string) *domain.Client {
	t.Helper()
	record, err := svc.Create(context.Background(), domain.CreateRequest{Name: name, CpfCnpj: document})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return record
}
