package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/app"
	"github.com/project-tktt/jobby/internal/auth"
	"github.com/project-tktt/jobby/internal/config"
	"github.com/project-tktt/jobby/internal/jobdetail"
	"github.com/project-tktt/jobby/internal/joblist"
	"github.com/project-tktt/jobby/internal/logging"
	"github.com/project-tktt/jobby/internal/profile"
	"github.com/project-tktt/jobby/internal/route"
	"github.com/project-tktt/jobby/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jobby:", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := flag.String("env", ".env", "optional .env file")
	startPath := flag.String("path", "/", "screen to open: /, /login, /jobs or /jobs/{id}")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		return err
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Info("starting jobby", zap.String("api", cfg.API.BaseURL), zap.String("session_backend", cfg.Session.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := tui.Deps{
		Gate:    route.NewGate(a.Store, logger),
		Auth:    auth.NewService(a.Client, a.Store, cfg.Session.TTL, logger),
		Jobs:    joblist.New(a.Client, logger),
		Detail:  jobdetail.New(a.Client, logger),
		Profile: profile.New(a.Client, logger),
		Logger:  logger,
	}

	model := tui.New(ctx, deps, route.Parse(*startPath))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.Subscribe(p.Send)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run ui: %w", err)
	}

	stop()
	deps.Jobs.Wait()
	deps.Detail.Wait()
	deps.Profile.Wait()
	logger.Info("jobby stopped")
	return nil
}
