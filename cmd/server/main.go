package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/fieldtrace-io/fieldtrace/internal/config"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/notify"
	"github.com/fieldtrace-io/fieldtrace/internal/server"
)

//	@title			Fieldtrace API
//	@version		1.0
//	@description	Field asset survey backend: sites, category asset tables, photo evidence and live change streams.
//	@BasePath		/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in				header
//	@name			Authorization

func main() {
	injector := server.BuildInjector()

	log := do.MustInvoke[*zap.Logger](injector)
	defer log.Sync()

	cfg := do.MustInvoke[*config.Config](injector)
	hub := do.MustInvoke[*notify.Hub](injector)
	reconciler := do.MustInvoke[*notify.Reconciler](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("hub stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := reconciler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("reconciler stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: server.NewRouter(injector),
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	if err := injector.Shutdown(); err != nil {
		log.Error("injector shutdown", zap.Error(err))
	}
}
