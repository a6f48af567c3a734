package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"photo-brander/internal/broker"
	kafka_impl "photo-brander/internal/broker/kafka"
	"photo-brander/internal/config"
	"photo-brander/internal/domain"
	"photo-brander/internal/metadata"
	"photo-brander/internal/naming"
	minio_repo "photo-brander/internal/repository/output/cloud/minio"
	"photo-brander/internal/repository/output/local"
	"photo-brander/internal/repository/source"
	"photo-brander/internal/usecase/batch"
	"photo-brander/internal/usecase/processor"
	"photo-brander/internal/usecase/processor/operations"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

type outputRepository interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type App struct {
	cfg      *config.Config
	sources  *source.Repository
	runner   *batch.Runner
	producer broker.Producer
	logger   *zlog.Zerolog
}

// NewApp validates everything that can be checked up front and wires the
// batch. Any error here is fatal and happens before a single output exists.
func NewApp(ctx context.Context, cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	padColor, err := operations.ParseColor(cfg.PadColor)
	if err != nil {
		return nil, fmt.Errorf("pad_color: %w", err)
	}

	dirs := []string{cfg.Paths.InputDir, filepath.Dir(cfg.LogoPath)}
	if cfg.Storage.Backend == config.BackendLocal {
		dirs = append(dirs, cfg.Paths.OutputDir)
	}
	if err := source.EnsureDirs(dirs...); err != nil {
		return nil, err
	}

	fields := metadata.Fields{
		Author:    cfg.Metadata.Author,
		Copyright: cfg.Metadata.Copyright,
		Software:  cfg.Metadata.Software,
		Title:     cfg.Metadata.Title,
		Subject:   cfg.Metadata.Subject,
		Keywords:  cfg.Metadata.Keywords,
	}
	exif, err := metadata.Build(metadata.NewRecord(fields, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata: %w", err)
	}

	logo, err := processor.LoadLogo(cfg.LogoPath, cfg.LogoWidth, cfg.LogoHeight)
	if err != nil {
		return nil, err
	}

	namer, err := naming.New(cfg.Filename.Prefix, cfg.Filename.DateFormat, cfg.Filename.CounterPadding)
	if err != nil {
		return nil, fmt.Errorf("%w: filename.date_format: %w", config.ErrInvalidConfig, err)
	}

	output, err := newOutputRepository(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create output repository: %w", err)
	}

	var producer broker.Producer
	if cfg.Events.Enabled {
		producer = kafka_impl.NewProducerClient(cfg)
	}

	imageProcessor := processor.NewImageProcessor(logo, processor.Options{
		Width:        cfg.OutputWidth,
		Height:       cfg.OutputHeight,
		Mode:         cfg.ResizeMode,
		PadColor:     padColor,
		Position:     cfg.LogoPosition,
		Offset:       cfg.LogoOffset,
		MaxLogoRatio: cfg.MaxLogoRatio,
		Quality:      cfg.JPEGQuality,
		Metadata:     exif,
	}, logger)

	runner := batch.NewRunner(imageProcessor, namer, output, producer, cfg.Filename.StartCounter, logger)

	logger.Info().
		Str("input_dir", cfg.Paths.InputDir).
		Str("output_dir", cfg.Paths.OutputDir).
		Str("storage", cfg.Storage.Backend).
		Str("resize_mode", string(cfg.ResizeMode)).
		Int("width", cfg.OutputWidth).
		Int("height", cfg.OutputHeight).
		Str("logo", logo.Path).
		Str("logo_position", string(cfg.LogoPosition)).
		Bool("events", cfg.Events.Enabled).
		Msg("Brander configuration")

	return &App{
		cfg:      cfg,
		sources:  source.NewRepository(cfg.Paths.InputDir),
		runner:   runner,
		producer: producer,
		logger:   logger,
	}, nil
}

func newOutputRepository(ctx context.Context, cfg *config.Config, logger *zlog.Zerolog) (outputRepository, error) {
	if cfg.Storage.Backend == config.BackendMinIO {
		return minio_repo.NewMinIORepository(ctx, cfg, logger)
	}
	return local.NewFileRepository(cfg.Paths.OutputDir), nil
}

// Run brands every source in the input directory. Per-file failures are
// reported in the summary, not as an error.
func (a *App) Run(ctx context.Context) (*domain.Summary, error) {
	sources, err := a.sources.List()
	if err != nil {
		return nil, err
	}

	return a.runner.Run(ctx, uuid.New().String(), sources), nil
}

func (a *App) Close() error {
	if a.producer == nil {
		return nil
	}
	return a.producer.Close()
}
