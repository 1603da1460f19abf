package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"droplet/cmd/droplet/ui"
	"droplet/internal/breath"
	"droplet/internal/config"
	"droplet/internal/logging"
	"droplet/internal/reflection"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runExercise launches the interactive exercise.
func runExercise(cmd *cobra.Command, args []string) error {
	logCfg := cfg.Logging
	if verbose {
		logCfg.DebugMode = true
		logCfg.Level = "debug"
	}
	if logCfg.File == "" || logCfg.File == logging.Stderr {
		logCfg.File = config.DefaultLogPath()
	}
	logs, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logs.Sync()

	boot := logs.For(logging.CategoryBoot)
	boot.Info("Starting exercise",
		zap.String("config", configPath),
		zap.String("model", settingsFrom(cfg).Model),
		zap.Bool("api_key", cfg.Reflection.APIKey != ""))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := reflection.NewGenAIGenerator(ctx, cfg.Reflection.APIKey)
	fetcher := reflection.NewFetcher(gen, settingsFrom(cfg), logs.For(logging.CategoryAPI))

	ctrl := breath.NewController(fetcher,
		breath.WithTickInterval(cfg.Exercise.GetTickInterval()),
		breath.WithLogger(logs.For(logging.CategoryController)))
	defer ctrl.Close()

	model := ui.NewModel(ctrl, cfg.Exercise.GetFrameInterval(), logs.For(logging.CategoryUI))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	watcher, err := config.NewWatcher(configPath, func(c *config.Config) {
		fetcher.UpdateSettings(settingsFrom(c))
	}, logs.For(logging.CategoryConfig))
	if err != nil {
		// Hot reload is a convenience; run without it.
		boot.Warn("Config watcher unavailable", zap.Error(err))
	} else {
		g.Go(func() error { return watcher.Run(watchCtx) })
	}

	g.Go(func() error {
		defer stopWatch()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	err = g.Wait()
	boot.Info("Exercise finished", zap.Error(err))
	return err
}
