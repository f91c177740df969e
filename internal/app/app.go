package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/robfig/cron/v3"

	"github.com/dominik-hvln/zozoapp-sub000/internal/config"
)

type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Server    *http.Server
	Scheduler *cron.Cron
}

func New(cfg *config.Config, logger *slog.Logger, server *http.Server, scheduler *cron.Cron) *App {
	return &App{Config: cfg, Logger: logger, Server: server, Scheduler: scheduler}
}

// Start runs the expiry scheduler and blocks on the HTTP listener.
func (a *App) Start() error {
	a.Scheduler.Start()
	a.Logger.Info("server starting", "addr", a.Server.Addr, "env", a.Config.Env)
	return a.Server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	cronCtx := a.Scheduler.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}
	return a.Server.Shutdown(ctx)
}
