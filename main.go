package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	_ "github.com/ekaya-inc/metaseed/pkg/adapters/datasource/mssql"
	_ "github.com/ekaya-inc/metaseed/pkg/adapters/datasource/mysql"
	_ "github.com/ekaya-inc/metaseed/pkg/adapters/datasource/postgres"
	"github.com/ekaya-inc/metaseed/pkg/artifacts"
	"github.com/ekaya-inc/metaseed/pkg/config"
	"github.com/ekaya-inc/metaseed/pkg/llm"
	"github.com/ekaya-inc/metaseed/pkg/logging"
	"github.com/ekaya-inc/metaseed/pkg/progress"
	"github.com/ekaya-inc/metaseed/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Run failed", zap.String("error", logging.SanitizeError(err)))
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting metaseed",
		zap.String("version", cfg.Version),
		zap.String("datasource", cfg.Datasource.Type),
		zap.String("host", cfg.Datasource.Host),
		zap.String("database", cfg.Datasource.Database),
		zap.Strings("tables", cfg.Tables),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("output_dir", cfg.OutputDir))

	reader, err := datasource.NewSchemaReader(ctx, &cfg.Datasource, logger)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Datasource.Type, err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warn("Failed to close datasource", zap.Error(err))
		}
	}()

	generator, err := llm.NewGenerator(&cfg.LLM, logger)
	if err != nil {
		return err
	}

	describer := services.NewColumnDescriber(generator, cfg.LLM.Timeout, logger)
	builder := services.NewCatalogBuilder(reader, describer, cfg.Datasource.Schema, cfg.ExampleLimit, logger)

	var onProgress services.ProgressCallback
	if cfg.ShowProgress {
		bar := progress.NewBar("Describing columns")
		defer bar.Finish()
		onProgress = bar.Update
	}

	catalog, summary, err := builder.Build(ctx, cfg.Tables, onProgress)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	if err := artifacts.NewWriter(cfg.OutputDir, logger).Write(catalog); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	logger.Info("Metadata generated",
		zap.Int("tables", summary.Tables),
		zap.Int("columns", summary.Columns),
		zap.Int("fallback_descriptions", summary.FallbackDescriptions),
		zap.Int("relationships", summary.Relationships),
		zap.Int("skipped_foreign_keys", summary.SkippedForeignKeys))

	return nil
}
