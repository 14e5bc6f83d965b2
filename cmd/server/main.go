// Package main initializes and starts the PageGuard HTTP server,
// setting up configuration, logging, database connections, the session
// store, repositories, services and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/PageGuard/internal/certgen"
	"github.com/atinyakov/PageGuard/internal/config"
	"github.com/atinyakov/PageGuard/internal/db"
	"github.com/atinyakov/PageGuard/internal/logger"
	"github.com/atinyakov/PageGuard/internal/middleware"
	"github.com/atinyakov/PageGuard/internal/repository"
	"github.com/atinyakov/PageGuard/internal/server/handler/http"
	"github.com/atinyakov/PageGuard/internal/service"
	"github.com/atinyakov/PageGuard/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Open the session store; an empty directory keeps sessions in memory.
	sessionDB, err := session.Open(session.Config{
		Path:     options.SessionDir,
		InMemory: options.SessionDir == "",
		Logger:   zapLogger,
	})
	if err != nil {
		zapLogger.Fatal("cannot open session store", zap.Error(err))
	}
	defer sessionDB.Close()

	if options.SessionDir != "" {
		session.StartValueLogGC(ctx, sessionDB,
			10*time.Minute, // interval
			0.5,            // discard ratio
			zapLogger,
		)
	}
	sessionStore := session.NewStore(sessionDB, options.SessionTTL)

	// Initialize repositories.
	protectionRepo := repository.NewPostgresProtectionRepository(postgresDB)
	settingsRepo := repository.NewPostgresSettingsRepository(postgresDB)

	// Initialize business-logic services.
	accessService := service.NewAccessService(protectionRepo, sessionStore)
	unlockService := service.NewUnlockService(protectionRepo, sessionStore, zapLogger)
	renderService := service.NewRenderService(accessService, settingsRepo, http.UnlockPath)
	protectionService := service.NewProtectionService(protectionRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	useTLS := options.TLSCert != ""
	sessions := &middleware.Sessions{
		Store:      sessionStore,
		CookieName: options.CookieName,
		Secure:     options.CookieSecure || useTLS,
		TTL:        options.SessionTTL,
		Log:        zapLogger,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Render:     &http.RenderHandler{RenderService: renderService},
		Unlock:     &http.UnlockHandler{UnlockService: unlockService},
		Session:    &http.SessionHandler{Store: sessionStore, Sessions: sessions},
		Protection: &http.ProtectionHandler{ProtectionService: protectionService},
		Settings:   &http.SettingsHandler{SettingsService: settingsService},
	}, sessions, options.AdminToken, zapLogger)

	if options.AdminToken == "" {
		zapLogger.Warn("admin token is empty, admin API disabled")
	}

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if useTLS {
		// Load server TLS certificate and key.
		server.TLSConfig, err = certgen.LoadServerTLS(options.TLSCert, options.TLSKey)
		if err != nil {
			zapLogger.Fatal("failed to load server TLS cert/key", zap.Error(err))
		}
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port), zap.Bool("tls", useTLS))
	if useTLS {
		err = server.ListenAndServeTLS("", "")
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Error("failed to start HTTP server", zap.Error(err))
		return
	}
	<-idle
	zapLogger.Info("server stopped")
}
