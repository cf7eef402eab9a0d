package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/vannaai/vannaai/internal/config"
	"github.com/vannaai/vannaai/internal/handler"
	"github.com/vannaai/vannaai/internal/llm"
	"github.com/vannaai/vannaai/internal/middleware"
	"github.com/vannaai/vannaai/internal/security"
	"github.com/vannaai/vannaai/internal/service"
)

// setupRoutes returns (router, pg, error) so the pool can be closed on shutdown.
func (s *Server) setupRoutes(ctx context.Context) (http.Handler, *service.PostgresService, error) {
	cfg := s.cfg

	// ─── Services ───────────────────────────────────────────────────────────────
	pg, err := service.NewPostgresService(ctx, service.DBConfig{
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("postgres service: %w", err)
	}

	generator := llm.NewGenerator(
		cfg.AnthropicAPIKey,
		cfg.LLMModel,
		cfg.AnthropicBaseURL,
		config.DefaultLLMMaxTokens,
		config.DefaultLLMTemperature,
	)

	// ─── Security ───────────────────────────────────────────────────────────────
	sqlVal := security.NewSQLValidator()
	dataMasker := security.NewDataMasker(cfg.SensitiveColumns)
	auditLogger := security.NewAuditLogger(cfg.EnableAuditLogging)

	log.Info().
		Str("model", generator.Model()).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Bool("data_masking", cfg.EnableDataMasking).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Msg("service configuration")

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all /query requests will be rejected")
	}

	// ─── Handlers ───────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler()
	queryH := handler.NewQueryHandler(generator, pg, sqlVal, dataMasker, auditLogger, cfg.EnableDataMasking)

	// ─── Router ─────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	// Rate limiting + optional auth for the query surface
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
		if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
			r.Use(middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
		}

		r.Post("/query", queryH.Query)
	})

	return r, pg, nil
}
