// Command custody-console is a terminal administrative console for a
// custodial securities record-keeping API. It drills down from custodians to
// portfolios to positions, accounts and transactions, and creates records
// through interactive forms.
//
// Usage:
//
//	custody-console --config config.yaml
//	custody-console --api-url http://localhost:8002/api
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/avolkov/custody-console/config"
	"github.com/avolkov/custody-console/internal/client"
	"github.com/avolkov/custody-console/internal/console"
	"github.com/avolkov/custody-console/internal/notify"
	"github.com/avolkov/custody-console/internal/services/drilldown"
)

func main() {
	app := &cli.App{
		Name:  "custody-console",
		Usage: "terminal console for a custody record-keeping API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to yaml config"},
			&cli.StringFlag{Name: "api-url", Usage: "custody API base URL"},
			&cli.DurationFlag{Name: "timeout", Usage: "HTTP request timeout"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	if c.IsSet("api-url") {
		cfg.APIBaseURL = c.String("api-url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := notify.NewStore(notify.WithTTL(cfg.NotificationTTL))
	store.Start(ctx)

	api := client.New(cfg.APIBaseURL, cfg.Timeout, logger)
	orch := drilldown.New(api, store, logger)
	ui := console.New(orch, store, logger, os.Stdout)

	logger.Info("console started", zap.String("api_url", cfg.APIBaseURL))

	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildLogger keeps structured logs on stderr so they never tear the
// rendered screen on stdout.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
