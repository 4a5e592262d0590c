package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"git.tdpain.net/codemicro/newsPortal/cmd/portald/internal/config"
	"git.tdpain.net/codemicro/newsPortal/cmd/portald/internal/database"
	"git.tdpain.net/codemicro/newsPortal/cmd/portald/internal/http"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
)

func main() {
	if err := run(); err != nil {
		slog.Error("unhandled error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Get()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(newLogger(conf))

	client, err := portalapi.New(
		conf.APIURL,
		portalapi.WithTimeout(conf.UpstreamTimeout),
		portalapi.WithRateLimit(conf.UpstreamRPS),
	)
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	db, err := database.New(conf)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Warn("unable to close session store", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("using upstream API", "url", client.BaseURL(), "mongo", conf.UseMongo())
	return http.Listen(ctx, conf, client, db)
}

func newLogger(conf *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(conf.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(conf.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
