package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexBrence/TODO-list-app/internal/cache"
	"github.com/AlexBrence/TODO-list-app/internal/config"
	"github.com/AlexBrence/TODO-list-app/internal/handlers"
	"github.com/AlexBrence/TODO-list-app/internal/logger"
	"github.com/AlexBrence/TODO-list-app/internal/repositories"
	"github.com/AlexBrence/TODO-list-app/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("production").WithError(err).Fatal("failed to load config")
	}

	log := logger.Init(cfg.Server.Environment)

	db, err := repositories.OpenDatabase(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	authService := services.NewAuthService(cfg)
	registerService := services.NewRegisterService(cfg)

	var taskService services.TaskService = services.NewTaskService()
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cfg)
		if err := redisCache.Ping(); err != nil {
			log.WithError(err).Warn("redis unavailable, running without cache")
		} else {
			taskService = services.NewCachedTaskService(taskService, redisCache)
			defer redisCache.Close()
			log.Info("task cache enabled")
		}
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		DB:              db,
		Config:          cfg,
		Log:             log,
		AuthService:     authService,
		RegisterService: registerService,
		TaskService:     taskService,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
