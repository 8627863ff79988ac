package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xela07ax/insurance-backoffice/internal/auth/handler"
	"github.com/xela07ax/insurance-backoffice/internal/auth/server"
	"github.com/xela07ax/insurance-backoffice/internal/auth/service"
	"github.com/xela07ax/insurance-backoffice/internal/infra"
	"github.com/xela07ax/insurance-backoffice/internal/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	// Утилитный режим: генерация секрета для HS512 (512 бит, base64).
	// Полученную строку кладут в auth.jwt_secret, сервис ее не печатает.
	genSecret := flag.Bool("gen-secret", false, "generate a base64 HS512 secret and exit")
	flag.Parse()

	if *genSecret {
		key := make([]byte, 64)
		if _, err := rand.Read(key); err != nil {
			log.Fatalf("failed to generate secret: %v", err)
		}
		fmt.Println(base64.StdEncoding.EncodeToString(key))
		return
	}

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

	// 2. Инфраструктура: Postgres
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

	// 3. Инициализация слоев (Dependency Injection)
	userRepo := postgres.NewUserRepo(pool)
	authService, err := service.NewAuthService(userRepo, cfg.Auth, logger)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}

	// 4. Сидинг справочника ролей до приема трафика
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := authService.SeedRoles(seedCtx); err != nil {
		logger.Fatal("failed to seed roles", zap.Error(err))
	}
	seedCancel()

	authHandler := handler.NewAuthHandler(authService)
	srvHandler := server.NewAuthServer(logger, authHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srvHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Auth service started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("Auth service stopping...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("Auth service exited properly")
}
