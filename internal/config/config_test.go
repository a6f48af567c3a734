package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photo-brander/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
paths:
  input_dir: photos
  output_dir: branded
resize_mode: Cover
pad_color: "#FFFFFF"
output_width: 1280
output_height: 720
logo_path: assets/logo.png
logo_width: 120
logo_height: 60
logo_position: LEFT_TOP
logo_offset: 0
max_logo_ratio: 0.5
jpeg_quality: 85
filename:
  prefix: shop
  date_format: "%Y-%m-%d"
  counter_padding: 4
  start_counter: 10
metadata:
  author: Jane Doe
  copyright: "(c) Jane Doe"
  software: brander
  title: Catalogue
  subject: Products
  keywords: shoes,summer
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Paths.InputDir != "photos" || cfg.Paths.OutputDir != "branded" {
		t.Errorf("Paths = %+v", cfg.Paths)
	}
	if cfg.ResizeMode != domain.ResizeCover {
		t.Errorf("ResizeMode = %q, want %q", cfg.ResizeMode, domain.ResizeCover)
	}
	if cfg.LogoPosition != domain.LogoLeftTop {
		t.Errorf("LogoPosition = %q, want %q", cfg.LogoPosition, domain.LogoLeftTop)
	}
	if cfg.LogoOffset != 0 {
		t.Errorf("LogoOffset = %d, want explicit 0 to be kept", cfg.LogoOffset)
	}
	if cfg.OutputWidth != 1280 || cfg.OutputHeight != 720 {
		t.Errorf("output size = %dx%d, want 1280x720", cfg.OutputWidth, cfg.OutputHeight)
	}
	if cfg.MaxLogoRatio != 0.5 || cfg.JPEGQuality != 85 {
		t.Errorf("MaxLogoRatio/JPEGQuality = %v/%d", cfg.MaxLogoRatio, cfg.JPEGQuality)
	}
	if cfg.Filename.Prefix != "shop" || cfg.Filename.CounterPadding != 4 || cfg.Filename.StartCounter != 10 {
		t.Errorf("Filename = %+v", cfg.Filename)
	}
	if cfg.Metadata.Keywords != "shoes,summer" || cfg.Metadata.Author != "Jane Doe" {
		t.Errorf("Metadata = %+v", cfg.Metadata)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "metadata:\n  author: Someone\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := Default()
	want.Metadata.Author = "Someone"

	checks := []struct {
		name      string
		got, want any
	}{
		{"input_dir", cfg.Paths.InputDir, "src"},
		{"output_dir", cfg.Paths.OutputDir, "out"},
		{"resize_mode", cfg.ResizeMode, domain.ResizeFitPad},
		{"pad_color", cfg.PadColor, "#00000000"},
		{"output_width", cfg.OutputWidth, 1920},
		{"output_height", cfg.OutputHeight, 1080},
		{"logo_path", cfg.LogoPath, "logo/logotype.png"},
		{"logo_width", cfg.LogoWidth, 200},
		{"logo_height", cfg.LogoHeight, 200},
		{"logo_position", cfg.LogoPosition, domain.LogoRightBottom},
		{"logo_offset", cfg.LogoOffset, 50},
		{"max_logo_ratio", cfg.MaxLogoRatio, 0.25},
		{"jpeg_quality", cfg.JPEGQuality, 100},
		{"prefix", cfg.Filename.Prefix, "img"},
		{"date_format", cfg.Filename.DateFormat, "%Y%m%d"},
		{"counter_padding", cfg.Filename.CounterPadding, 2},
		{"start_counter", cfg.Filename.StartCounter, 1},
		{"storage.backend", cfg.Storage.Backend, BackendLocal},
		{"author", cfg.Metadata.Author, want.Metadata.Author},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadEmptyResizeModeFallsBack(t *testing.T) {
	path := writeConfig(t, "resize_mode: \"\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ResizeMode != domain.ResizeFitPad {
		t.Errorf("ResizeMode = %q, want %q", cfg.ResizeMode, domain.ResizeFitPad)
	}
}

func TestLoadQualityZero(t *testing.T) {
	cfg, err := Load(writeConfig(t, "jpeg_quality: 0\n"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.JPEGQuality != 0 {
		t.Errorf("JPEGQuality = %d, want 0 passed through", cfg.JPEGQuality)
	}
}

func TestMustLoad(t *testing.T) {
	t.Setenv(pathEnv, writeConfig(t, "logo_offset: 12\n"))

	cfg, err := MustLoad()
	if err != nil {
		t.Fatalf("MustLoad() unexpected error: %v", err)
	}
	if cfg.LogoOffset != 12 {
		t.Errorf("LogoOffset = %d, want 12 from $%s", cfg.LogoOffset, pathEnv)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown resize mode", content: "resize_mode: zoom\n", field: "ResizeMode"},
		{name: "unknown position", content: "logo_position: center\n", field: "LogoPosition"},
		{name: "zero width", content: "output_width: 0\n", field: "OutputWidth"},
		{name: "negative offset", content: "logo_offset: -5\n", field: "LogoOffset"},
		{name: "ratio above one", content: "max_logo_ratio: 1.5\n", field: "MaxLogoRatio"},
		{name: "ratio zero", content: "max_logo_ratio: 0\n", field: "MaxLogoRatio"},
		{name: "quality too high", content: "jpeg_quality: 101\n", field: "JPEGQuality"},
		{name: "negative start counter", content: "filename:\n  start_counter: -1\n", field: "StartCounter"},
		{name: "unknown backend", content: "storage:\n  backend: ftp\n", field: "Backend"},
		{name: "minio without bucket", content: "storage:\n  backend: minio\n  minio:\n    endpoint: localhost:9000\n", field: "storage.minio"},
		{name: "events without brokers", content: "events:\n  enabled: true\n", field: "events.brokers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Load() error = %q, want it to mention %s", err, tt.field)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(pathEnv, "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Errorf("ResolvePath() = %q, want %q", got, DefaultPath)
	}

	t.Setenv(pathEnv, "/etc/brander.yaml")
	if got := ResolvePath(""); got != "/etc/brander.yaml" {
		t.Errorf("ResolvePath() with env = %q, want /etc/brander.yaml", got)
	}
	if got := ResolvePath("custom.yaml"); got != "custom.yaml" {
		t.Errorf("ResolvePath(flag) = %q, want custom.yaml", got)
	}
}
