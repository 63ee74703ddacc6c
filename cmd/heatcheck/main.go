package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobmcallan/heatcheck/internal/app"
	"github.com/bobmcallan/heatcheck/internal/common"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to heatcheck.toml (default: HEATCHECK_CONFIG, binary dir)")
		schedule    = flag.Bool("schedule", false, "run on the configured cron schedule instead of once")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		common.LoadVersionFromFile()
		fmt.Println(common.GetFullVersion())
		return
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	if *schedule {
		runScheduled(a)
		return
	}

	result, err := a.Run(context.Background())
	if err != nil {
		if errors.Is(err, app.ErrNoArticles) {
			a.Logger.Warn().Msg("No fresh articles found - nothing to publish")
			os.Exit(1)
		}
		a.Logger.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}

	a.Logger.Info().Str("archive", result.ArchivePath).Msg("Newsletter generated")
}

// runScheduled blocks on the cron schedule until interrupted.
func runScheduled(a *app.App) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		a.Logger.Info().Msg("Shutdown signal received")
		cancel()
	}()

	if err := a.StartSchedule(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("Scheduler failed")
		os.Exit(1)
	}
}
