package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"photo-brander/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DefaultPath = "config.yaml"
	pathEnv     = "CONFIG_PATH"

	BackendLocal = "local"
	BackendMinIO = "minio"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Paths        Paths               `yaml:"paths"`
	ResizeMode   domain.ResizeMode   `yaml:"resize_mode" env:"BRANDER_RESIZE_MODE" validate:"oneof=none stretch cover fit_pad"`
	PadColor     string              `yaml:"pad_color" env:"BRANDER_PAD_COLOR" validate:"required"`
	OutputWidth  int                 `yaml:"output_width" env:"BRANDER_OUTPUT_WIDTH" validate:"gt=0"`
	OutputHeight int                 `yaml:"output_height" env:"BRANDER_OUTPUT_HEIGHT" validate:"gt=0"`
	LogoPath     string              `yaml:"logo_path" env:"BRANDER_LOGO_PATH" validate:"required"`
	LogoWidth    int                 `yaml:"logo_width" validate:"gt=0"`
	LogoHeight   int                 `yaml:"logo_height" validate:"gt=0"`
	LogoPosition domain.LogoPosition `yaml:"logo_position" env:"BRANDER_LOGO_POSITION" validate:"oneof=left_top left_bottom right_top right_bottom"`
	LogoOffset   int                 `yaml:"logo_offset" validate:"gte=0"`
	MaxLogoRatio float64             `yaml:"max_logo_ratio" validate:"gt=0,lte=1"`
	JPEGQuality  int                 `yaml:"jpeg_quality" env:"BRANDER_JPEG_QUALITY" validate:"min=0,max=100"`
	Filename     Filename            `yaml:"filename"`
	Metadata     Metadata            `yaml:"metadata"`
	Log          Log                 `yaml:"log"`
	Storage      Storage             `yaml:"storage"`
	Events       Events              `yaml:"events"`
}

type Paths struct {
	InputDir  string `yaml:"input_dir" env:"BRANDER_INPUT_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" env:"BRANDER_OUTPUT_DIR" validate:"required"`
}

type Filename struct {
	Prefix         string `yaml:"prefix"`
	DateFormat     string `yaml:"date_format" validate:"required"`
	CounterPadding int    `yaml:"counter_padding" validate:"gte=0,lte=18"`
	StartCounter   int    `yaml:"start_counter" env:"BRANDER_START_COUNTER" validate:"gte=0"`
}

type Metadata struct {
	Author    string `yaml:"author"`
	Copyright string `yaml:"copyright"`
	Software  string `yaml:"software"`
	Title     string `yaml:"title"`
	Subject   string `yaml:"subject"`
	Keywords  string `yaml:"keywords"`
}

type Log struct {
	Level string `yaml:"level" env:"BRANDER_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

type Storage struct {
	Backend string `yaml:"backend" env:"BRANDER_STORAGE_BACKEND" validate:"oneof=local minio"`
	MinIO   MinIO  `yaml:"minio"`
}

type MinIO struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
}

type Events struct {
	Enabled bool     `yaml:"enabled" env:"BRANDER_EVENTS_ENABLED"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_RESULTS_TOPIC"`
}

// Default returns the settings used for every key missing from the file.
func Default() *Config {
	return &Config{
		Paths: Paths{
			InputDir:  "src",
			OutputDir: "out",
		},
		ResizeMode:   domain.ResizeFitPad,
		PadColor:     "#00000000",
		OutputWidth:  1920,
		OutputHeight: 1080,
		LogoPath:     "logo/logotype.png",
		LogoWidth:    200,
		LogoHeight:   200,
		LogoPosition: domain.LogoRightBottom,
		LogoOffset:   50,
		MaxLogoRatio: 0.25,
		JPEGQuality:  100,
		Filename: Filename{
			Prefix:         "img",
			DateFormat:     "%Y%m%d",
			CounterPadding: 2,
			StartCounter:   1,
		},
		Log: Log{
			Level: "info",
		},
		Storage: Storage{
			Backend: BackendLocal,
		},
		Events: Events{
			Topic: "brander-results",
		},
	}
}

// MustLoad loads the file named by ResolvePath("").
func MustLoad() (*Config, error) {
	return Load(ResolvePath(""))
}

// ResolvePath picks the config file: an explicit path wins, then CONFIG_PATH,
// then config.yaml in the working directory.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(pathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is an error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg := Default()
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.ResizeMode = domain.ResizeMode(strings.ToLower(strings.TrimSpace(string(c.ResizeMode))))
	if c.ResizeMode == "" {
		c.ResizeMode = domain.ResizeFitPad
	}
	c.LogoPosition = domain.LogoPosition(strings.ToLower(strings.TrimSpace(string(c.LogoPosition))))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
}

// Validate checks ranges and enums and the settings the selected output
// backend and event sink depend on.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, describe(verrs))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Storage.Backend == BackendMinIO {
		if c.Storage.MinIO.Endpoint == "" || c.Storage.MinIO.Bucket == "" {
			return fmt.Errorf("%w: storage.minio.endpoint and storage.minio.bucket are required for the minio backend", ErrInvalidConfig)
		}
	}

	if c.Events.Enabled {
		if len(c.Events.Brokers) == 0 || c.Events.Topic == "" {
			return fmt.Errorf("%w: events.brokers and events.topic are required when events are enabled", ErrInvalidConfig)
		}
	}

	return nil
}

func describe(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
