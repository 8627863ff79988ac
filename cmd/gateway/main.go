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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xela07ax/insurance-backoffice/internal/gateway"
	"github.com/xela07ax/insurance-backoffice/internal/infra"
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

	// 2. Таблица адресов бэкендов (статическая, из конфига)
	registry, err := gateway.NewRegistry(cfg.Gateway.Services)
	if err != nil {
		logger.Fatal("invalid service registry", zap.Error(err))
	}

	// Метрики
	reg := prometheus.NewRegistry()
	metrics := gateway.NewMetrics(reg)

	// Экспортируем метрики для Prometheus
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		log.Fatal(http.ListenAndServe(":9090", mux))
	}()

	// 3. Сборка ядра шлюза
	router, err := gateway.NewRouter(registry, gateway.DefaultRoutes, logger, metrics)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	// 4. Цепочка Middleware. Порядок важен: Trace -> CORS -> Роутинг.
	// CORS стоит до роутинга, чтобы preflight не доходил до бэкендов.
	handler := gateway.TracingMiddleware(
		gateway.CORSFilter(cfg.Gateway.AllowedOrigin, metrics)(
			router,
		),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("API Gateway started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop // Ждем сигнал
	logger.Info("API Gateway stopping...")

	// Даем 5 секунд на завершение запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("API Gateway exited properly")
}
