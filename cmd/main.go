package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"controlling_dishwasher/internal/config"
	"controlling_dishwasher/internal/handlers"
	"controlling_dishwasher/internal/logger"
	"controlling_dishwasher/internal/repository"
	"controlling_dishwasher/internal/repository/db"
	"controlling_dishwasher/internal/server"
	"controlling_dishwasher/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	// load config.yml + DISHWASHER_* env
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Options{
		SigningKey:      cfg.Auth.SigningKey,
		TokenTTL:        cfg.Auth.TokenTTL,
		FilterThreshold: cfg.Controller.FilterThreshold,
	}, log)
	apiHandler := handlers.NewHandler(services, log.Named("http"),
		handlers.WithStreamInterval(cfg.WebSocket.DefaultInterval),
	)

	// start HTTP server
	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Server.Port, apiHandler, log)
	log.Infow("dishwasher controller started",
		"port", cfg.Server.Port,
		"filter_threshold", cfg.Controller.FilterThreshold,
	)

	// graceful shutdown
	waitForShutdown(srv, cfg.Server.ShutdownTimeout, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests (a running wash cycle included) to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	_ = log.Sync()
}
