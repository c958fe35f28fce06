package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockalerts/internal/config"
	"stockalerts/internal/metrics"
	"stockalerts/internal/rule"
	"stockalerts/internal/rule/repository"
	"stockalerts/internal/rule/service"
	rulehttp "stockalerts/internal/rule/transport/http"
	"stockalerts/pkg/db"
	"stockalerts/pkg/logger"
	"stockalerts/pkg/middleware"
)

var server *http.Server

func main() {
	logger.Init()
	cfg := config.Load()
	metrics.InitMetrics()

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.DynamoEndpoint, cfg.DynamoRegion)
	if err != nil {
		slog.Error("dynamodb connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to dynamodb", "table", cfg.DynamoTable)

	if cfg.DynamoCreateTable {
		if err := repository.EnsureTable(ctx, client, cfg.DynamoTable); err != nil {
			slog.Error("table provisioning failed", "error", err)
			os.Exit(1)
		}
	}

	store := repository.NewStore(client, cfg.DynamoTable)
	var ruleRepo rule.Repository = repository.NewDynamoRuleRepository(store)
	ruleService := service.NewRuleService(ruleRepo)
	h := rulehttp.NewHandler(ruleService)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.GlobalRateLimiter.Middleware)
	r.Use(middleware.ValidateRequest)

	r.Route("/users/{userID}/rules", func(pr chi.Router) {
		pr.Post("/", h.Create)
		pr.Get("/", h.List)
		pr.Get("/{ruleID}", h.Get)
		pr.Put("/{ruleID}", h.Update)
		pr.Delete("/{ruleID}", h.Delete)
	})

	// Secondary-index read path for the notification scanner.
	r.Get("/tickers/{ticker}/{direction}/rules", h.ListByTicker)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	var metricsHandler http.Handler = promhttp.Handler()
	if cfg.MetricsUser != "" {
		metricsHandler = middleware.BasicAuth(cfg.MetricsUser, cfg.MetricsPassword)(metricsHandler)
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	slog.Info("server running", "addr", cfg.ListenAddr)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		slog.Info("shutdown signal received, starting graceful shutdown")
		shutdownServer()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func shutdownServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
