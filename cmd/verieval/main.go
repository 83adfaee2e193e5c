package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/verieval/verieval/internal/config"
	"github.com/verieval/verieval/internal/database"
	"github.com/verieval/verieval/internal/dataset"
	"github.com/verieval/verieval/internal/domain"
	"github.com/verieval/verieval/internal/repository"
	"github.com/verieval/verieval/internal/verify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override the environment
	targets := flag.String("targets", cfg.Targets, "Comma-separated dataset names to evaluate")
	dataDir := flag.String("data", cfg.DataDir, "Directory holding packed dataset files")
	batchSize := flag.Int("batch-size", cfg.BatchSize, "Images per provider call")
	nfolds := flag.Int("nfolds", cfg.NFolds, "Cross-validation folds")
	pca := flag.Int("pca", cfg.PCA, "PCA dimension during calibration (0 disables)")
	providerType := flag.String("provider", cfg.ProviderType, "Embedding provider: mock or remote")
	flag.Parse()

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting verification evaluation",
		slog.String("environment", cfg.Environment),
		slog.String("targets", *targets),
		slog.String("provider", *providerType),
		slog.Int("batch_size", *batchSize),
		slog.Int("nfolds", *nfolds),
	)

	embedder, err := verify.NewEmbedder(cfg, *providerType)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runRepo *repository.RunRepository
	var embRepo *repository.EmbeddingRepository
	if cfg.PersistenceEnabled() {
		pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		runRepo = repository.NewRunRepository(pool)
		embRepo = repository.NewEmbeddingRepository(pool)
		logger.Info("run persistence enabled")
	}

	loader := dataset.NewLoader(*dataDir)
	harness := verify.NewHarness(embedder, *batchSize, logger).
		WithPCA(*pca).
		WithProgress(cfg.IsDevelopment())

	for _, name := range strings.Split(*targets, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		set, err := loader.Load(name)
		if errors.Is(err, domain.ErrDatasetNotFound) {
			logger.Warn("dataset not found, skipping",
				slog.String("dataset", name),
				slog.String("path", loader.Path(name)),
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("load dataset %s: %w", name, err)
		}

		report, err := harness.Run(ctx, set, *nfolds)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", name, err)
		}

		logger.Info("verification results",
			slog.String("dataset", name),
			slog.Float64("xnorm", report.XNorm),
			slog.Float64("accuracy", report.Acc1),
			slog.Float64("accuracy_std", report.Std1),
			slog.Float64("accuracy_flip", report.Acc2),
			slog.Float64("accuracy_flip_std", report.Std2),
			slog.Float64("infer_seconds", report.InferSeconds),
		)

		if runRepo != nil {
			if err := persistRun(ctx, runRepo, embRepo, *providerType, *batchSize, *nfolds, report); err != nil {
				logger.Error("failed to persist run",
					slog.String("dataset", name),
					slog.Any("error", err),
				)
			}
		}
	}

	return nil
}

func persistRun(
	ctx context.Context,
	runRepo *repository.RunRepository,
	embRepo *repository.EmbeddingRepository,
	providerType string,
	batchSize, nfolds int,
	report *verify.Report,
) error {
	run := &domain.EvalRun{
		Dataset:      report.Dataset,
		Provider:     providerType,
		BatchSize:    batchSize,
		NFolds:       nfolds,
		XNorm:        report.XNorm,
		Acc1:         report.Acc1,
		Std1:         report.Std1,
		Acc2:         report.Acc2,
		Std2:         report.Std2,
		InferSeconds: report.InferSeconds,
	}
	if err := runRepo.Create(ctx, run); err != nil {
		return err
	}

	cached := make([]domain.CachedEmbedding, 0, len(report.Embeddings[0])*2)
	for pass, rows := range report.Embeddings {
		for i, emb := range rows {
			cached = append(cached, domain.CachedEmbedding{
				Dataset:   report.Dataset,
				Index:     i,
				Flipped:   pass == 1,
				Embedding: emb,
			})
		}
	}
	return embRepo.SaveBatch(ctx, cached)
}
