package server

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/domain"
	auditrepository "github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/repository"
	auditservice "github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/service"
	clientdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/client/domain"
	clientservice "github.com/thekiqdev/CredCar-Finance-sub001/internal/client/service"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/clock"
	commissiondomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/domain"
	commissionservice "github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/service"
	consortiumdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/domain"
	consortiumservice "github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/service"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/config"
	contractdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/domain"
	contractservice "github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/service"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/events"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/identity"
	sigdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/render"
	sigservice "github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/service"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/storage"
	templatedomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/template/domain"
	templateservice "github.com/thekiqdev/CredCar-Finance-sub001/internal/template/service"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/repository"
)

const pageTestTemplate = `<h1>Contrato de {{CLIENTE_NOME}}</h1>
[SIGNATURE id="cliente" name="{{CLIENTE_NOME}}" cpf=""]`

var pageTestPNG = []byte("\x89PNG\r\n\x1a\nstroke-bytes")

type pageHarness struct {
	engine     *gin.Engine
	contract   *contractdomain.Contract
	contracts  contractdomain.Service
	signatures sigdomain.Service
	rep        identity.Actor
}

type uploadPart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func TestSubmitSignPageSignsAndSubmits(t *testing.T) {
	h := newPageHarness(t)

	body, contentType := signFlowBody(t, map[string]string{
		"name":     "Maria Silva",
		"cpf":      "123.456.789-00",
		"doc_type": "cnh",
	},
		uploadPart{"document", "cnh.jpg", "image/jpeg", []byte("jpeg-bytes")},
		uploadPart{"signature", "signature.png", "image/png", pageTestPNG},
	)

	resp := h.post(t, body, contentType)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	slot, err := h.signatures.GetSlot(context.Background(), "cliente")
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	if slot.Status != sigdomain.SlotSigned || slot.ImageURL == "" {
		t.Fatalf("slot not signed by the flow: %+v", slot)
	}
	if slot.SignerCPF != "123.456.789-00" && slot.SignerCPF != "12345678900" {
		t.Errorf("signer cpf not recorded: %q", slot.SignerCPF)
	}

	record, err := h.contracts.GetByID(context.Background(), h.rep, h.contract.ID.String())
	if err != nil {
		t.Fatalf("get contract: %v", err)
	}
	if record.Status != contractdomain.StatusUnderReview {
		t.Fatalf("expected under_review after the flow, got %s", record.Status)
	}

	docs, err := h.signatures.ListDocuments(context.Background(), h.contract.ID)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 1 || docs[0].DocType != "cnh" {
		t.Fatalf("identity document not stored: %+v", docs)
	}
}

func TestSubmitSignPageRequiresSignature(t *testing.T) {
	h := newPageHarness(t)

	body, contentType := signFlowBody(t, map[string]string{
		"name":     "Maria Silva",
		"doc_type": "rg",
	},
		uploadPart{"document", "rg.png", "image/png", []byte("rg-bytes")},
	)

	resp := h.post(t, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a signature, got %d", resp.Code)
	}

	slot, err := h.signatures.GetSlot(context.Background(), "cliente")
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	if slot.Status != sigdomain.SlotPending {
		t.Fatalf("slot must stay pending, got %s", slot.Status)
	}
	record, err := h.contracts.GetByID(context.Background(), h.rep, h.contract.ID.String())
	if err != nil {
		t.Fatalf("get contract: %v", err)
	}
	if record.Status != contractdomain.StatusPending {
		t.Fatalf("contract must stay pending, got %s", record.Status)
	}
}

func TestSubmitSignPageRequiresName(t *testing.T) {
	h := newPageHarness(t)

	body, contentType := signFlowBody(t, map[string]string{"doc_type": "rg"},
		uploadPart{"document", "rg.png", "image/png", []byte("rg-bytes")},
		uploadPart{"signature", "signature.png", "image/png", pageTestPNG},
	)

	resp := h.post(t, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a name, got %d", resp.Code)
	}
}

func (h *pageHarness) post(t *testing.T, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sign/"+h.contract.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	h.engine.ServeHTTP(resp, req)
	return resp
}

func signFlowBody(t *testing.T, fields map[string]string, files ...uploadPart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("write field %s: %v", field, err)
		}
	}
	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			`form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part %s: %v", file.field, err)
		}
		if _, err := part.Write(file.data); err != nil {
			t.Fatalf("write part %s: %v", file.field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func newPageHarness(t *testing.T) *pageHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&contractdomain.Contract{},
		&sigdomain.SignatureSlot{},
		&sigdomain.UploadedDocument{},
		&clientdomain.Client{},
		&consortiumdomain.Group{},
		&consortiumdomain.Quota{},
		&commissiondomain.CommissionTable{},
		&templatedomain.ContractTemplate{},
		&auditdomain.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS contract_events (
			id INTEGER PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload TEXT NOT NULL DEFAULT '{}',
			dedupe_key TEXT UNIQUE,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create contract_events: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	log := zap.NewNop()
	cfg := config.Config{PublicOrigin: "http://localhost:8080"}
	fixed := clock.Fixed{At: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)}
	outbox := events.NewOutbox(db, node)
	blobs := storage.NewLocalStore(t.TempDir(), cfg.PublicOrigin, log)

	clients := clientservice.NewService(clientservice.ServiceParam{DB: db, Log: log, GenID: node})
	consortium := consortiumservice.NewService(consortiumservice.ServiceParam{DB: db, Log: log, GenID: node})
	commissions := commissionservice.NewService(commissionservice.ServiceParam{DB: db, Log: log, GenID: node})
	templates := templateservice.NewService(templateservice.ServiceParam{
		Log:   log,
		GenID: node,
		Repo:  repository.ProvideStore[templatedomain.ContractTemplate](db),
	})
	audit := auditservice.NewService(auditservice.ServiceParam{DB: db, Log: log, GenID: node, Repo: auditrepository.Provide()})
	signatures := sigservice.NewService(sigservice.ServiceParam{
		Config: cfg, DB: db, Log: log, GenID: node, Clock: fixed, Blobs: blobs, Outbox: outbox,
	})
	contracts := contractservice.NewService(contractservice.ServiceParam{
		DB:          db,
		Log:         log,
		GenID:       node,
		Clock:       fixed,
		Outbox:      outbox,
		Audit:       audit,
		Signatures:  signatures,
		Renderer:    render.NewHTMLRenderer(),
		Templates:   templates,
		Clients:     clients,
		Consortium:  consortium,
		Commissions: commissions,
	})

	server := &Server{
		cfg:           cfg,
		log:           log,
		db:            db,
		clientSvc:     clients,
		consortiumSvc: consortium,
		commissionSvc: commissions,
		templateSvc:   templates,
		contractSvc:   contracts,
		signatureSvc:  signatures,
		blobs:         blobs,
		signLimiter:   newSigningThrottle(100, time.Minute),
	}
	engine := gin.New()
	server.RegisterRoutes(engine)

	h := &pageHarness{
		engine:     engine,
		contracts:  contracts,
		signatures: signatures,
		rep:        identity.Actor{UserID: 100, Role: "representative"},
	}

	ctx := context.Background()
	admin := identity.Actor{UserID: 1, Role: "admin"}
	tpl, err := templates.Create(ctx, admin.UserID.String(), templatedomain.CreateRequest{
		Name:    "Contrato Padrão",
		Content: pageTestTemplate,
	})
	if err != nil {
		t.Fatalf("seed template: %v", err)
	}
	client, err := clients.Create(ctx, clientdomain.CreateRequest{Name: "Maria Silva", CpfCnpj: "12345678900"})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	table, err := commissions.Create(ctx, commissiondomain.CreateRequest{Name: "Tabela A", Percentage: 1.5})
	if err != nil {
		t.Fatalf("seed table: %v", err)
	}
	h.contract, err = contracts.Create(ctx, h.rep, contractdomain.CreateRequest{
		TemplateID:        tpl.ID.String(),
		ClientID:          client.ID.String(),
		CommissionTableID: table.ID.String(),
		TotalAmount:       5_000_000,
		Installments:      60,
	})
	if err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	if !strings.Contains(h.contract.Content, `[SIGNATURE id="cliente"`) {
		t.Fatalf("seed contract missing the signature token:\n%s", h.contract.Content)
	}
	return h
}
