package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/authorization"
	clientdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/client/domain"
	commissiondomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/config"
	consortiumdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/domain"
	contractdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/observability/logger"
	sigdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/storage"
	templatedomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/template/domain"
)

type ServerParam struct {
	fx.In

	Config        config.Config
	Log           *zap.Logger
	DB            *gorm.DB
	AuthzSvc      authorization.Service
	ClientSvc     clientdomain.Service
	ConsortiumSvc consortiumdomain.Service
	CommissionSvc commissiondomain.Service
	TemplateSvc   templatedomain.Service
	ContractSvc   contractdomain.Service
	SignatureSvc  sigdomain.Service
	AuditSvc      auditdomain.Service
	Blobs         *storage.LocalStore
}

type Server struct {
	cfg           config.Config
	log           *zap.Logger
	db            *gorm.DB
	authzSvc      authorization.Service
	clientSvc     clientdomain.Service
	consortiumSvc consortiumdomain.Service
	commissionSvc commissiondomain.Service
	templateSvc   templatedomain.Service
	contractSvc   contractdomain.Service
	signatureSvc  sigdomain.Service
	auditSvc      auditdomain.Service
	blobs         *storage.LocalStore

	// signLimiter throttles the unauthenticated signing endpoints per
	// client address.
	signLimiter *signingThrottle
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:           p.Config,
		log:           p.Log.Named("server"),
		db:            p.DB,
		authzSvc:      p.AuthzSvc,
		clientSvc:     p.ClientSvc,
		consortiumSvc: p.ConsortiumSvc,
		commissionSvc: p.CommissionSvc,
		templateSvc:   p.TemplateSvc,
		contractSvc:   p.ContractSvc,
		signatureSvc:  p.SignatureSvc,
		auditSvc:      p.AuditSvc,
		blobs:         p.Blobs,
		signLimiter:   newSigningThrottle(30, time.Minute),
	}
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	return engine
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Healthz)
	engine.Static("/files", s.blobs.BaseDir())

	// Public pages for clients following a signature link.
	engine.GET("/sign-block/:contractId/:slotId", s.SignBlockPage)
	engine.POST("/sign-block/:contractId/:slotId", s.rateLimitBySource, s.SubmitSignBlock)
	engine.GET("/sign/:contractId", s.SignPage)
	engine.POST("/sign/:contractId", s.rateLimitBySource, s.SubmitSignPage)
	engine.GET("/view/:contractId", s.ViewContract)

	engine.POST("/v1/auth/login", s.Login)

	v1 := engine.Group("/v1", s.authMiddleware)
	{
		v1.GET("/clients", s.ListClients)
		v1.POST("/clients", s.CreateClient)
		v1.GET("/clients/:id", s.GetClientByID)
		v1.PATCH("/clients/:id", s.UpdateClient)

		v1.GET("/groups", s.ListGroups)
		v1.POST("/groups", s.requireAction(authorization.ObjectReference, authorization.ActionReferenceManage), s.CreateGroup)
		v1.GET("/groups/:id/quotas", s.ListGroupQuotas)
		v1.POST("/groups/:id/quotas", s.requireAction(authorization.ObjectReference, authorization.ActionReferenceManage), s.CreateQuota)
		v1.GET("/quotas", s.ListQuotas)

		v1.GET("/commission-tables", s.ListCommissionTables)
		v1.POST("/commission-tables", s.requireAction(authorization.ObjectReference, authorization.ActionReferenceManage), s.CreateCommissionTable)
		v1.POST("/commission-tables/:id/preview", s.PreviewCommission)

		v1.GET("/templates", s.ListTemplates)
		v1.POST("/templates", s.requireAction(authorization.ObjectTemplate, authorization.ActionTemplateManage), s.CreateTemplate)
		v1.GET("/templates/:id", s.GetTemplateByID)
		v1.PATCH("/templates/:id", s.requireAction(authorization.ObjectTemplate, authorization.ActionTemplateManage), s.UpdateTemplate)
		v1.DELETE("/templates/:id", s.requireAction(authorization.ObjectTemplate, authorization.ActionTemplateManage), s.DeleteTemplate)

		v1.GET("/contracts", s.ListContracts)
		v1.POST("/contracts", s.requireAction(authorization.ObjectContract, authorization.ActionContractCreate), s.CreateContract)
		v1.GET("/contracts/:id", s.GetContractByID)
		v1.PUT("/contracts/:id/content", s.requireAction(authorization.ObjectContract, authorization.ActionContractEdit), s.UpdateContractContent)
		v1.POST("/contracts/:id/submit", s.requireAction(authorization.ObjectContract, authorization.ActionContractSubmit), s.SubmitContract)
		v1.POST("/contracts/:id/approve", s.requireAction(authorization.ObjectContract, authorization.ActionContractApprove), s.ApproveContract)
		v1.POST("/contracts/:id/reject", s.requireAction(authorization.ObjectContract, authorization.ActionContractReject), s.RejectContract)
		v1.DELETE("/contracts/:id", s.requireAction(authorization.ObjectContract, authorization.ActionContractDelete), s.DeleteContract)

		v1.GET("/contracts/:id/signature-links", s.ListSignatureLinks)
		v1.GET("/contracts/:id/documents", s.ListContractDocuments)
		v1.POST("/signature-fields", s.MintSignatureField)
		v1.DELETE("/signature-slots/:slotId", s.requireAction(authorization.ObjectSignature, authorization.ActionSignatureRemove), s.RemoveSignature)

		v1.GET("/reports/contracts.xlsx", s.requireAction(authorization.ObjectReport, authorization.ActionReportExport), s.ExportContractBook)

		v1.GET("/audit-logs", s.requireAction(authorization.ObjectReport, authorization.ActionReportExport), s.ListAuditLogs)
	}
}

func (s *Server) Healthz(c *gin.Context) {
	if err := s.pingDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) pingDB(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// RunHTTP starts the listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine, server *Server) {
	server.RegisterRoutes(engine)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
