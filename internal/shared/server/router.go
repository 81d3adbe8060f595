package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"inspection-backend/internal/inspections"
	"inspection-backend/internal/quotes"
	"inspection-backend/internal/services/health"
	"inspection-backend/internal/shared/config"
	"inspection-backend/internal/shared/metrics"
	"inspection-backend/internal/shared/server/middleware"
	"inspection-backend/internal/shared/server/respond"
	"inspection-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"QUOTES":  {Rate: 1, Burst: 5},
			},
		}),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var repo inspections.Repo
	if sqlDB != nil {
		repo = &inspections.PGRepo{DB: sqlDB}
	} else {
		repo = inspections.NewMemoryRepo()
	}

	provider := newQuoteProvider(cfg)
	svc := &inspections.Service{
		Repo:         repo,
		Provider:     provider,
		ContractorID: cfg.ContractorID,
	}
	handler := inspections.NewHandler(svc)
	healthSvc := health.NewService()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	handler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

func newQuoteProvider(cfg config.Config) quotes.Provider {
	if cfg.QuoteProvider == "http" {
		provider, err := quotes.NewHTTPProvider(cfg.QuoteAPIURL, cfg.QuoteAPIKey)
		if err != nil {
			log.Printf("quote provider misconfigured, falling back to rate book: %v", err)
			return quotes.RateBookProvider{}
		}
		return provider
	}
	return quotes.RateBookProvider{}
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/inspections/:id/quotes" {
		return "QUOTES"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
