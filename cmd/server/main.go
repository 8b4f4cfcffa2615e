package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"pageforge/internal/auth"
	"pageforge/internal/config"
	"pageforge/internal/domain/repositories"
	"pageforge/internal/handler"
	"pageforge/internal/middleware"
	"pageforge/internal/repository/memory"
	"pageforge/internal/repository/postgres"
	serviceAI "pageforge/internal/service/ai"
	serviceCanvas "pageforge/internal/service/canvas"
	serviceCatalog "pageforge/internal/service/catalog"
	serviceEvents "pageforge/internal/service/events"
	serviceExtract "pageforge/internal/service/extract"
	serviceMapping "pageforge/internal/service/mapping"
	servicePlanning "pageforge/internal/service/planning"
	serviceWizard "pageforge/internal/service/wizard"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	jwtVerifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()

	// Repositories: Postgres when a database is configured, in-memory
	// otherwise so the wizard can run locally with the lorem provider.
	var (
		sessionRepo repositories.SessionRepository
		pageRepo    repositories.PageRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()
		logger.Info("database connected", "max_conns", 25, "min_conns", 5)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		sessionRepo = postgres.NewSessionRepository(repoConfig)
		pageRepo = postgres.NewPageRepository(repoConfig)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		sessionRepo = memory.NewSessionRepository()
		pageRepo = memory.NewPageRepository()
	}

	// Mapping policy: built-in defaults, optionally overlaid from YAML.
	policy := serviceMapping.DefaultPolicy()
	if cfg.MappingPolicyFile != "" {
		policy, err = serviceMapping.LoadPolicy(cfg.MappingPolicyFile)
		if err != nil {
			log.Fatalf("Failed to load mapping policy: %v", err)
		}
		logger.Info("mapping policy loaded", "file", cfg.MappingPolicyFile, "mismatch_mode", policy.MismatchMode)
	}

	componentCatalog, err := serviceCatalog.NewStaticCatalog(cfg.ComponentCatalogFile)
	if err != nil {
		log.Fatalf("Failed to load component catalog: %v", err)
	}

	// Core services.
	providers := serviceAI.NewProviderRegistry(cfg)
	extractor := serviceExtract.NewRegistry(logger)
	sink := serviceEvents.NewSlogSink(logger)
	planner := servicePlanning.NewEngine(providers, servicePlanning.Defaults{
		Provider:                cfg.DefaultProvider,
		Model:                   cfg.DefaultModel,
		MaxRefinementIterations: cfg.MaxRefinementIterations,
	}, logger)
	mapper := serviceMapping.NewEngine(policy, logger)
	creator := serviceCanvas.NewCreator(
		serviceCanvas.NewRepoStore(pageRepo),
		mapper,
		serviceCanvas.NewPageValidator(),
		sink,
		logger,
	)
	wizardService := serviceWizard.NewService(
		sessionRepo,
		extractor,
		planner,
		creator,
		sink,
		cfg.MaxRefinementIterations,
		logger,
	)

	// Abandoned sessions expire after a bounded lifetime.
	go cleanupSessions(ctx, sessionRepo, logger)

	logger.Info("services initialized")

	wizardHandler := handler.NewWizardHandler(wizardService, logger)
	pageHandler := handler.NewPageHandler(pageRepo, logger)
	catalogHandler := handler.NewCatalogHandler(componentCatalog, logger)

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Wizard session lifecycle
	mux.HandleFunc("POST /api/wizard/sessions", wizardHandler.CreateSession)
	mux.HandleFunc("GET /api/wizard/sessions/{id}", wizardHandler.GetSession)
	mux.HandleFunc("DELETE /api/wizard/sessions/{id}", wizardHandler.DeleteSession)
	mux.HandleFunc("POST /api/wizard/sessions/{id}/advance", wizardHandler.Advance)
	mux.HandleFunc("POST /api/wizard/sessions/{id}/back", wizardHandler.Back)

	// Step 1: sources, template, contexts
	mux.HandleFunc("POST /api/wizard/sessions/{id}/sources", wizardHandler.AttachSource)
	mux.HandleFunc("PUT /api/wizard/sessions/{id}/template", wizardHandler.SelectTemplate)
	mux.HandleFunc("PUT /api/wizard/sessions/{id}/contexts", wizardHandler.SetContexts)

	// Step 2: plan generation and refinement
	mux.HandleFunc("POST /api/wizard/sessions/{id}/plan", wizardHandler.GeneratePlan)
	mux.HandleFunc("POST /api/wizard/sessions/{id}/plan/refinements", wizardHandler.RefinePlan)
	mux.HandleFunc("PATCH /api/wizard/sessions/{id}/plan", wizardHandler.UpdatePlanTitle)

	// Step 3: page creation
	mux.HandleFunc("POST /api/wizard/sessions/{id}/page", wizardHandler.CreatePage)

	// Pages and templates
	mux.HandleFunc("GET /api/pages/{id}", pageHandler.GetPage)
	mux.HandleFunc("DELETE /api/pages/{id}", pageHandler.DeletePage)
	mux.HandleFunc("GET /api/templates", pageHandler.ListTemplates)

	// Component catalog
	mux.HandleFunc("GET /api/catalog/component-types", catalogHandler.ListComponentTypes)

	// Build middleware chain, applied in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	var root http.Handler = mux
	root = middleware.Auth(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // plan generation waits on the AI call
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// cleanupSessions drops sessions past their lifetime once an hour.
func cleanupSessions(ctx context.Context, sessions repositories.SessionRepository, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	maxAge := time.Duration(config.MaxSessionAgeHours) * time.Hour
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped, err := sessions.DeleteStale(ctx, maxAge)
			if err != nil {
				logger.Error("session cleanup failed", "error", err)
				continue
			}
			if dropped > 0 {
				logger.Info("stale sessions removed", "count", dropped)
			}
		}
	}
}
