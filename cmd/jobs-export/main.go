package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/app"
	"github.com/project-tktt/jobby/internal/archive"
	"github.com/project-tktt/jobby/internal/config"
	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/filter"
	"github.com/project-tktt/jobby/internal/joblist"
	"github.com/project-tktt/jobby/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "jobs-export:", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := flag.String("env", ".env", "optional .env file")
	search := flag.String("search", "", "search text")
	types := flag.String("type", "", "comma separated employment types (FULLTIME,PARTTIME,FREELANCE,INTERNSHIP)")
	salary := flag.String("salary", "", "minimum package id (1000000, 2000000, 3000000, 4000000)")
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := buildFilter(*search, *types, *salary)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	result := joblist.New(a.Client, logger).Load(ctx, st)
	if !result.Success() {
		return fmt.Errorf("load jobs: %s", result.Reason)
	}
	logger.Info("jobs loaded", zap.Int("count", len(result.Value)))

	sinks, closeSinks, err := openSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSinks()

	if sinks.Len() == 0 {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Value)
	}
	if err := sinks.BulkIndex(ctx, result.Value); err != nil {
		return fmt.Errorf("archive jobs: %w", err)
	}
	fmt.Printf("archived %d jobs to %d sink(s)\n", len(result.Value), sinks.Len())
	return nil
}

// buildFilter validates ids through the accumulator the UI uses
func buildFilter(search, types, salary string) (filter.State, error) {
	acc := filter.NewAccumulator(nil)
	acc.SetSearchText(search)
	for _, id := range strings.Split(types, ",") {
		if id = strings.ToUpper(strings.TrimSpace(id)); id == "" {
			continue
		}
		if err := acc.AddEmploymentType(domain.EmploymentType(id)); err != nil {
			return filter.State{}, err
		}
	}
	if err := acc.SetSalaryRange(domain.SalaryRange(strings.TrimSpace(salary))); err != nil {
		return filter.State{}, err
	}
	return acc.Snapshot(), nil
}

func openSinks(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*archive.Multi, func(), error) {
	var indexers []archive.Indexer
	closers := []func() error{}
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	if cfg.Postgres.ConnectionString != "" {
		pg, err := archive.NewPostgresIndexer(ctx, cfg.Postgres.ConnectionString, cfg.Postgres.TableName, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		closers = append(closers, pg.Close)
		indexers = append(indexers, pg)
		logger.Info("postgres sink ready", zap.String("table", cfg.Postgres.TableName))
	}

	if len(cfg.Elasticsearch.Addresses) > 0 {
		es, err := archive.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index, logger)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("elasticsearch: %w", err)
		}
		if err := es.EnsureIndex(ctx); err != nil {
			logger.Warn("ensure index", zap.Error(err))
		}
		indexers = append(indexers, es)
		logger.Info("elasticsearch sink ready", zap.String("index", cfg.Elasticsearch.Index))
	}

	return archive.NewMulti(logger, indexers...), closeAll, nil
}
