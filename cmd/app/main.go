package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/akozlovskiy/blog-cms/config"
	"github.com/akozlovskiy/blog-cms/internal/app"
	"github.com/akozlovskiy/blog-cms/internal/db"
)

var (
	flConfig     = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug      = flag.Bool("debug", false, "enable debug mode")
	flMigrate    = flag.Bool("migrate", false, "run database migrations and exit")
	flMigrations = flag.String("migrations", "migrations", "path to goose migrations directory")
	flLogQueries = flag.Bool("log-queries", false, "log SQL queries at debug level")
	cfg          config.Config
	lg           *slog.Logger
)

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	_, err := toml.DecodeFile(*flConfig, &cfg)
	if err != nil {
		exitOnError(err)
	}

	ctx := context.Background()

	if *flMigrate {
		err := db.RunMigrations(ctx, databaseURL(cfg.Database), *flMigrations)
		if err != nil {
			exitOnError(err)
		}
		lg.Info("migrations applied")
		return
	}

	dbConnect := pg.Connect(&cfg.Database)
	if *flLogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(lg))
	}
	if err := dbConnect.Ping(ctx); err != nil {
		dbConnect.Close()
		exitOnError(err)
	}

	service := app.New(cfg, dbConnect, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx, cfg.App.Port)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func databaseURL(opt pg.Options) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		opt.User, opt.Password, opt.Addr, opt.Database)
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
