package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/akozlovskiy/blog-cms/config"
	"github.com/akozlovskiy/blog-cms/internal/blogcms"
	"github.com/akozlovskiy/blog-cms/internal/db"
	"github.com/akozlovskiy/blog-cms/internal/rest"
	"github.com/akozlovskiy/blog-cms/internal/rpc"
	"github.com/akozlovskiy/blog-cms/internal/suggest"
)

type App struct {
	DB      *db.Repository
	Manager *blogcms.Manager
	Logger  *slog.Logger
	Echo    *echo.Echo
	Config  config.Config
}

func New(cfg config.Config, dbConnect *pg.DB, logger *slog.Logger) *App {
	repo := db.New(dbConnect)

	provider := suggest.NewOpenAIProvider(
		cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.MaxSuggestions,
	)
	orchestrator := suggest.NewOrchestrator(provider, cfg.AI.Timeout(), logger)

	manager := blogcms.NewManager(repo, orchestrator, logger)

	handler := rest.NewBlogHandler(manager, logger)
	e := handler.RegisterRoutes()

	rpcServer := rpc.New(logger, manager)
	e.Any("/rpc", echo.WrapHandler(rpcServer))

	return &App{
		DB:      repo,
		Manager: manager,
		Logger:  logger,
		Echo:    e,
		Config:  cfg,
	}
}

func (a *App) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
