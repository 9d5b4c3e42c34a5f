// Package config carries the analyzer settings: storage paths, size
// thresholds, and the worker budget. Values come from built-in defaults,
// then an optional atlas.yaml, then a .env file, then environment
// variables, each layer overriding the last.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// IgnoreDirs are directory names skipped entirely during any walk.
var IgnoreDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true, ".idea": true, ".vscode": true,
	"node_modules": true, "venv": true, ".venv": true, "env": true,
	"dist": true, "build": true, "target": true, "bin": true, "obj": true,
	"vendor": true, "third_party": true, "cmake-build-debug": true,
	"__pycache__": true,
}

// Config holds every tunable the builders and the render path read.
type Config struct {
	// DataDir is the root for all persisted state.
	DataDir string `yaml:"data_dir"`

	// StaticRenderThreshold is the node count above which a full-tier
	// graph also gets a pre-rendered raster image.
	StaticRenderThreshold int `yaml:"static_render_threshold"`
	// SimpleTierLimit caps the simple tier at the top-N nodes by degree.
	SimpleTierLimit int `yaml:"simple_tier_limit"`
	// InitialLoadSize bounds the first interactive paint.
	InitialLoadSize int `yaml:"initial_load_size"`
	// ChunkSize is the progressive-delivery batch size.
	ChunkSize int `yaml:"chunk_size"`
	// TooltipMaxRows caps per-file tooltip tables.
	TooltipMaxRows int `yaml:"tooltip_max_rows"`
	// ProgressEvery throttles parse progress callbacks.
	ProgressEvery int `yaml:"progress_every"`
	// Workers is the parse worker pool size.
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:               defaultDataDir(),
		StaticRenderThreshold: 2000,
		SimpleTierLimit:       2000,
		InitialLoadSize:       1500,
		ChunkSize:             1000,
		TooltipMaxRows:        20,
		ProgressEvery:         20,
		Workers:               defaultWorkers(),
	}
}

// Load builds the effective configuration. dir is searched for atlas.yaml
// and .env; pass "" to use defaults plus the process environment only.
// Load never fails: unreadable layers are skipped.
func Load(dir string) *Config {
	cfg := Default()

	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, "atlas.yaml")); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}

	if v := os.Getenv("ATLAS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	overrideInt(&cfg.StaticRenderThreshold, "ATLAS_STATIC_RENDER_THRESHOLD")
	overrideInt(&cfg.SimpleTierLimit, "ATLAS_SIMPLE_TIER_LIMIT")
	overrideInt(&cfg.InitialLoadSize, "ATLAS_INITIAL_LOAD_SIZE")
	overrideInt(&cfg.ChunkSize, "ATLAS_CHUNK_SIZE")
	overrideInt(&cfg.Workers, "ATLAS_WORKERS")

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}

// GraphsDir is where snapshot databases and raster images live.
func (c *Config) GraphsDir() string { return filepath.Join(c.DataDir, "graphs") }

// OutputsDir holds the scope-set file.
func (c *Config) OutputsDir() string { return filepath.Join(c.DataDir, "outputs") }

// StatePath is the recent-projects state file.
func (c *Config) StatePath() string { return filepath.Join(c.DataDir, "app_state.json") }

// EnsureDirs creates the storage tree.
func (c *Config) EnsureDirs() error {
	for _, d := range []string{c.DataDir, c.GraphsDir(), c.OutputsDir()} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// defaultWorkers is 75% of available parallelism, minimum 1.
func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0) * 3 / 4
	if n < 1 {
		n = 1
	}
	return n
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".codeatlas")
	}
	return filepath.Join(home, ".cache", "codeatlas")
}
