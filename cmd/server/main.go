package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"homeground/internal/auth"
	"homeground/internal/config"
	"homeground/internal/handler"
	"homeground/internal/middleware"
	"homeground/internal/repository/postgres"
	"homeground/internal/service"
	serviceauth "homeground/internal/service/auth"
	"homeground/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
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

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	principalRepo := postgres.NewPrincipalRepository(repoConfig)
	propertyRepo := postgres.NewPropertyRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	memberRepo := postgres.NewMemberRepository(repoConfig)
	updateRepo := postgres.NewProjectUpdateRepository(repoConfig)
	offerRepo := postgres.NewProjectOfferRepository(repoConfig)
	eventRepo := postgres.NewProjectEventRepository(repoConfig)
	threadRepo := postgres.NewThreadRepository(repoConfig)
	messageRepo := postgres.NewMessageRepository(repoConfig)
	paymentRepo := postgres.NewPaymentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Session resolution and the authorization gate
	resolver := auth.NewPrincipalResolver(principalRepo)
	gate := serviceauth.NewGate(resolver)

	// Blob store for listing images and payment proofs
	blobs := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket)

	// Create services
	principalService := service.NewPrincipalService(principalRepo, gate, logger)
	propertyService := service.NewPropertyService(propertyRepo, gate, blobs, logger)
	projectService := service.NewProjectService(projectRepo, memberRepo, gate, logger)
	contentService := service.NewContentService(projectRepo, updateRepo, offerRepo, eventRepo, gate, nil, logger)
	messageService := service.NewMessageService(threadRepo, messageRepo, propertyRepo, gate, txManager, logger)
	paymentService := service.NewPaymentService(paymentRepo, propertyRepo, gate, blobs, logger)

	// Create handlers
	accountHandler := handler.NewAccountHandler(principalService, logger)
	propertyHandler := handler.NewPropertyHandler(propertyService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	contentHandler := handler.NewContentHandler(contentService, logger)
	messageHandler := handler.NewMessageHandler(messageService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Account routes
	mux.HandleFunc("POST /api/users/register", accountHandler.Register)
	mux.HandleFunc("GET /api/users/me", accountHandler.Me)
	mux.HandleFunc("PATCH /api/users/me", accountHandler.UpdateMe)
	mux.HandleFunc("GET /api/admin/users", accountHandler.ListAccounts)
	mux.HandleFunc("PATCH /api/admin/users/{id}/role", accountHandler.ChangeRole)

	// Property routes
	mux.HandleFunc("GET /api/properties", propertyHandler.ListProperties)
	mux.HandleFunc("POST /api/properties", propertyHandler.CreateProperty)
	mux.HandleFunc("GET /api/properties/mine", propertyHandler.ListMyProperties)
	mux.HandleFunc("GET /api/properties/{id}", propertyHandler.GetProperty)
	mux.HandleFunc("PATCH /api/properties/{id}", propertyHandler.UpdateProperty)
	mux.HandleFunc("DELETE /api/properties/{id}", propertyHandler.DeleteProperty)
	mux.HandleFunc("POST /api/properties/{id}/images", propertyHandler.UploadImage)

	// Project microsite routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{slug}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)
	mux.HandleFunc("GET /api/projects/{id}/members", projectHandler.ListMembers)
	mux.HandleFunc("POST /api/projects/{id}/members", projectHandler.AddMember)
	mux.HandleFunc("DELETE /api/members/{id}", projectHandler.RemoveMember)

	// Scheduled content routes
	mux.HandleFunc("GET /api/projects/{id}/updates", contentHandler.ListUpdates)
	mux.HandleFunc("POST /api/projects/{id}/updates", contentHandler.CreateUpdate)
	mux.HandleFunc("PUT /api/updates/{id}", contentHandler.ReplaceUpdate)
	mux.HandleFunc("DELETE /api/updates/{id}", contentHandler.DeleteUpdate)
	mux.HandleFunc("GET /api/projects/{id}/offers", contentHandler.ListOffers)
	mux.HandleFunc("POST /api/projects/{id}/offers", contentHandler.CreateOffer)
	mux.HandleFunc("PUT /api/offers/{id}", contentHandler.ReplaceOffer)
	mux.HandleFunc("DELETE /api/offers/{id}", contentHandler.DeleteOffer)
	mux.HandleFunc("GET /api/projects/{id}/events", contentHandler.ListEvents)
	mux.HandleFunc("POST /api/projects/{id}/events", contentHandler.CreateEvent)
	mux.HandleFunc("PUT /api/events/{id}", contentHandler.ReplaceEvent)
	mux.HandleFunc("DELETE /api/events/{id}", contentHandler.DeleteEvent)

	// Messaging routes
	mux.HandleFunc("POST /api/threads", messageHandler.StartThread)
	mux.HandleFunc("GET /api/threads", messageHandler.ListThreads)
	mux.HandleFunc("GET /api/threads/{id}/messages", messageHandler.ListMessages)
	mux.HandleFunc("POST /api/threads/{id}/messages", messageHandler.PostMessage)

	// Payment routes
	mux.HandleFunc("POST /api/payments", paymentHandler.SubmitPayment)
	mux.HandleFunc("GET /api/payments", paymentHandler.ListPayments)
	mux.HandleFunc("GET /api/payments/mine", paymentHandler.ListMyPayments)
	mux.HandleFunc("POST /api/payments/{id}/review", paymentHandler.ReviewPayment)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
