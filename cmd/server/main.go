package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orgvet/internal/audit"
	auditHandler "orgvet/internal/audit/handler"
	"orgvet/internal/dataset"
	datasetHandler "orgvet/internal/dataset/handler"
	datasetMetrics "orgvet/internal/dataset/metrics"
	"orgvet/internal/litigation"
	"orgvet/internal/platform/config"
	"orgvet/internal/platform/httpserver"
	"orgvet/internal/platform/jwttoken"
	"orgvet/internal/platform/logger"
	"orgvet/internal/platform/redis"
	"orgvet/internal/screening"
	httptransport "orgvet/internal/transport/http"
	"orgvet/internal/vetting"
	vettingHandler "orgvet/internal/vetting/handler"
	vettingMetrics "orgvet/internal/vetting/metrics"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store := dataset.New(dataset.Config{
		DataDir:         cfg.DataDir,
		RevocationURL:   cfg.RevocationURL,
		SDNPrimaryURL:   cfg.SDNPrimaryURL,
		SDNAliasURL:     cfg.SDNAliasURL,
		MaxAge:          cfg.DatasetMaxAge,
		RefreshCooldown: cfg.RefreshCooldown,
		DownloadTimeout: cfg.DownloadTimeout,
		DownloadCeiling: cfg.DownloadCeiling,
		ExtractCeiling:  cfg.ExtractCeiling,
		RevocationFloor: cfg.RevocationFloor,
		SanctionsFloor:  cfg.SanctionsFloor,
	}, log, dataset.WithMetrics(datasetMetrics.New()))

	initCtx, cancelInit := context.WithTimeout(context.Background(), 2*cfg.DownloadTimeout)
	if err := store.Initialize(initCtx); err != nil {
		cancelInit()
		log.Error("dataset initialization failed", "error", err)
		os.Exit(1)
	}
	cancelInit()

	var litCache litigation.ResultCache
	if redisClient != nil {
		litCache = litigation.NewRedisCache(redisClient.Client, cfg.LitigationCacheTTL)
	}
	litService := litigation.NewService(
		litigation.NewHTTPClient(cfg.LitigationBaseURL, cfg.LitigationToken, cfg.LitigationInterval),
		litCache,
		log,
	)

	auditor := audit.NewPublisher(audit.NewInMemoryStore(0))
	vetService := vetting.New(
		screening.NewRevocationMatcher(store),
		screening.NewSanctionsMatcher(store),
		litService,
		auditor,
		log,
		vetting.WithMetrics(vettingMetrics.New()),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Vetting:   vettingHandler.New(vetService, log),
		Dataset:   datasetHandler.New(store, log),
		Audit:     auditHandler.New(auditor, log),
		Validator: jwttoken.NewService(cfg.AdminSigningKey, "orgvet"),
		Logger:    log,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting orgvet", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
