package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/session"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
	ucSalon "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Sessions session.Store
	Audit    *audit.Dispatcher
	// Uploader is nil when image storage is not configured.
	Uploader storage.Uploader
	Hasher   *auth.Hasher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	salonRepo := infraRepo.NewSalonGormRepository(d.DB)
	auditLogger := audit.New(d.DB)

	var sink audit.Sink = audit.Nop()
	if d.Audit != nil {
		sink = d.Audit
	}

	hasher := d.Hasher
	if hasher == nil {
		hasher = auth.NewHasher()
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)

	var checkDomain ucSalon.DomainChecker
	if cfg.EmailDomainCheck {
		checkDomain = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES
	// ======================================================
	registerSalonUC := ucSalon.NewRegisterSalon(salonRepo, hasher, sink, checkDomain)
	createSalonUC := ucSalon.NewCreateSalon(salonRepo, sink)
	uploadImageUC := ucSalon.NewUploadSalonImage(salonRepo, d.Uploader, sink)
	createServiceUC := ucSalon.NewCreateService(salonRepo, sink)
	updateServiceUC := ucSalon.NewUpdateService(salonRepo, sink)
	deleteServiceUC := ucSalon.NewDeleteService(salonRepo, sink)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(salonRepo, hasher, tokens, d.Sessions, sink, cfg, d.Log)
	meHandler := handlers.NewMeHandler(salonRepo)
	registrationHandler := handlers.NewRegistrationHandler(registerSalonUC)
	salonHandler := handlers.NewSalonHandler(salonRepo, createSalonUC, uploadImageUC)
	serviceHandler := handlers.NewServiceHandler(salonRepo, createServiceUC, updateServiceUC, deleteServiceUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	r.Use(middleware.AuthMiddleware(d.Sessions, tokens, salonRepo, d.Log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ------------------------------
	// SESSION
	// ------------------------------
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/register/salon", registrationHandler.RegisterSalon)

		api.GET("/salons", salonHandler.List)
		api.POST("/salons", salonHandler.Create)
		api.GET("/salons/:id", salonHandler.Get)
		api.PUT("/salons/:id/image", salonHandler.UploadImage)

		api.GET("/salons/:id/services", serviceHandler.ListBySalon)
		api.POST("/salons/:id/services", serviceHandler.Create)

		api.GET("/services/:id", serviceHandler.Get)
		api.PUT("/services/:id", serviceHandler.Update)
		api.DELETE("/services/:id", serviceHandler.Delete)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.RequireAuth())
		{
			secured.GET("", meHandler.GetMe)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
