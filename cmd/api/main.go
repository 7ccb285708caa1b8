package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sanarehealth/medledger-backend/api/routes"
	"github.com/sanarehealth/medledger-backend/internal/alerts"
	"github.com/sanarehealth/medledger-backend/internal/authn"
	"github.com/sanarehealth/medledger-backend/internal/broadcast"
	"github.com/sanarehealth/medledger-backend/internal/chatbot"
	"github.com/sanarehealth/medledger-backend/internal/hospitals"
	"github.com/sanarehealth/medledger-backend/internal/inventory"
	"github.com/sanarehealth/medledger-backend/internal/patients"
	"github.com/sanarehealth/medledger-backend/internal/visits"
	"github.com/sanarehealth/medledger-backend/pkg/config"
	"github.com/sanarehealth/medledger-backend/pkg/db"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
	"github.com/sanarehealth/medledger-backend/pkg/metrics"
	"github.com/sanarehealth/medledger-backend/pkg/migrate"
	"github.com/sanarehealth/medledger-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	hub := broadcast.NewHub(logg)

	patientsSvc, err := patients.NewService(patients.NewRepository(dbClient.DB()), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create patients service", err)
		os.Exit(1)
	}
	hospitalsSvc, err := hospitals.NewService(hospitals.NewRepository(dbClient.DB()), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create hospitals service", err)
		os.Exit(1)
	}
	authnSvc, err := authn.NewService(patientsSvc, hospitalsSvc, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create authn service", err)
		os.Exit(1)
	}
	visitsSvc, err := visits.NewService(visits.NewRepository(dbClient.DB()), patientsSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create visits service", err)
		os.Exit(1)
	}
	alertsSvc, err := alerts.NewService(alerts.NewRepository(dbClient.DB()), hub, cfg.Blood.Threshold, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create alerts service", err)
		os.Exit(1)
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), alertsSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	var generator chatbot.Generator
	if cfg.Chatbot.GoogleAIAPIKey != "" {
		generator = chatbot.NewGeminiClient(cfg.Chatbot.GoogleAIAPIKey, cfg.Chatbot.Model, cfg.Chatbot.RequestTimeout)
	}
	chatbotSvc, err := chatbot.NewService(generator, chatbot.NewCache(cfg.Chatbot.CacheCapacity), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chatbot service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Metrics:   metrics.NewHTTPMetrics(),
			Patients:  patientsSvc,
			Hospitals: hospitalsSvc,
			Authn:     authnSvc,
			Visits:    visitsSvc,
			Inventory: inventorySvc,
			Alerts:    alertsSvc,
			Chatbot:   chatbotSvc,
			Broadcast: broadcast.NewHandler(hub, logg),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
