package main

import (
	"fmt"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gin-gorm-users/internal/app"
	"gin-gorm-users/internal/core/config"
	"gin-gorm-users/internal/core/logger"
	"gin-gorm-users/internal/core/server"
	"gin-gorm-users/internal/transport/http/handler"
	"gin-gorm-users/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	gin.SetMode(cfg.App.Env)

	users, closeRepo, err := app.OpenRepository(cfg.DB, log)
	if err != nil {
		log.Fatal("open user store", zap.Error(err))
	}
	defer closeRepo()

	svc := app.NewUserService(cfg, users, log)
	h := cfg.App.HTTP
	r := router.NewAPIEngine(log, router.Options{
		BasePath:       h.BasePath,
		CORSOrigins:    h.CORSOrigins,
		MaxBodyBytes:   h.MaxBodyBytes,
		RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
		MaxInFlight:    h.MaxInFlight,
	}, handler.NewUserHandler(svc, log))

	srv := server.Build(h, r)

	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := fmt.Sprintf("http://%s:%d", host4human, h.Port)
	log.Info("user api starting",
		zap.String("addr", srv.Addr),
		zap.String("health", baseURL+"/health"),
		zap.String("users", baseURL+h.BasePath+"/users"),
	)

	if err := server.Run(srv, log, 10*time.Second); err != nil {
		log.Error("user api stopped with error", zap.Error(err))
		return
	}
	log.Info("user api stopped gracefully")
}
