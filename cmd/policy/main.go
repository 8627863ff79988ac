package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/insurance-backoffice/internal/clients"
	"github.com/xela07ax/insurance-backoffice/internal/events"
	"github.com/xela07ax/insurance-backoffice/internal/infra"
	"github.com/xela07ax/insurance-backoffice/internal/policy/handler"
	"github.com/xela07ax/insurance-backoffice/internal/policy/server"
	"github.com/xela07ax/insurance-backoffice/internal/policy/service"
	"github.com/xela07ax/insurance-backoffice/internal/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 2. Инфраструктура: Postgres + Redis
	pool, err := postgres.NewPool(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal("failed to init postgres pool", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := pool.Ping(pingCtx); err != nil {
		logger.Fatal("database unreachable", zap.Error(err))
	}
	cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// 3. Фоновый публикатор событий смены статуса требований
	publisher := events.NewPublisher(rdb, logger)
	publisher.Start()

	// 4. Исходящий клиент к customer-сервису: HTTP + ручки надежности
	customerClient := clients.NewReliableCustomerClient(
		clients.NewHTTPCustomerClient(cfg.Clients.CustomerBaseURL, cfg.Clients.Timeout),
		cfg.Clients,
	)

	// Метрики
	reg := prometheus.NewRegistry()
	metrics := service.NewMetrics(reg)

	// 5. Инициализация слоев (Dependency Injection)
	policyRepo := postgres.NewPolicyRepo(pool)
	claimRepo := postgres.NewClaimRepo(pool)

	policyService := service.NewPolicyService(policyRepo, customerClient, logger)
	claimService := service.NewClaimService(claimRepo, policyRepo, publisher, metrics, logger)

	policyHandler := handler.NewPolicyHandler(policyService)
	claimHandler := handler.NewClaimHandler(claimService)

	srvHandler := server.NewPolicyServer(logger, reg, policyHandler, claimHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srvHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Policy service started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("Policy service stopping...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}

	// Дожимаем хвост событий в Redis перед выходом
	publisher.Stop()
	logger.Info("Policy service exited properly")
}
