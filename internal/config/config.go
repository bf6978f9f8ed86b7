package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/paperscore/internal/record"
)

//go:embed schema.cue
var schemaCUE string

// DBFileName is the database file name used when no path is configured.
const DBFileName = "papers_scores.db"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the resolved configuration.
type Config struct {
	// Database is the SQLite file path. Empty means DefaultDBPath.
	Database        string
	Driver          string
	DisplayDuration time.Duration
	Dimensions      [record.Dimensions]string
	LogLevel        slog.Level
	LogFormat       string
}

// rawConfig mirrors #Config after defaults are applied.
type rawConfig struct {
	Database        string   `json:"database"`
	Driver          string   `json:"driver"`
	DisplayDuration string   `json:"display_duration"`
	Dimensions      []string `json:"dimensions"`
	LogLevel        string   `json:"log_level"`
	LogFormat       string   `json:"log_format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Driver:          "sqlite3",
		DisplayDuration: time.Second,
		Dimensions:      [record.Dimensions]string{"TBD", "TBD", "TBD", "TBD", "TBD"},
		LogLevel:        slog.LevelInfo,
		LogFormat:       "text",
	}
}

// Load reads and validates the file at path. An empty path returns
// Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates YAML config bytes.
func Parse(data []byte) (Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("%w: parse yaml: %w", ErrInvalid, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := def.Unify(ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var raw rawConfig
	if err := v.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}
	return raw.resolve()
}

func (r rawConfig) resolve() (Config, error) {
	cfg := Config{
		Database:  r.Database,
		Driver:    r.Driver,
		LogFormat: r.LogFormat,
	}

	d, err := time.ParseDuration(r.DisplayDuration)
	if err != nil {
		return Config{}, fmt.Errorf("%w: display_duration: %w", ErrInvalid, err)
	}
	if d <= 0 {
		return Config{}, fmt.Errorf("%w: display_duration must be positive, got %s", ErrInvalid, d)
	}
	cfg.DisplayDuration = d

	if len(r.Dimensions) != record.Dimensions {
		return Config{}, fmt.Errorf("%w: dimensions: want %d labels, got %d",
			ErrInvalid, record.Dimensions, len(r.Dimensions))
	}
	copy(cfg.Dimensions[:], r.Dimensions)

	if err := cfg.LogLevel.UnmarshalText([]byte(r.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return cfg, nil
}

// DBPath returns the database path to open: override if set, else the
// configured path, else DefaultDBPath.
func (c Config) DBPath(override string) (string, error) {
	switch {
	case override != "":
		return override, nil
	case c.Database != "":
		return c.Database, nil
	default:
		return DefaultDBPath()
	}
}

// DefaultDBPath places the database beside the running executable.
func DefaultDBPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return dbPathForExecutable(exe), nil
}

// dbPathForExecutable maps an executable path to its database path. An
// executable inside X.app/Contents/MacOS keeps the file next to X.app so
// it survives bundle replacement.
func dbPathForExecutable(exe string) string {
	dir := filepath.Dir(exe)
	macOS := filepath.Dir(dir)
	if filepath.Base(dir) == "MacOS" &&
		filepath.Base(macOS) == "Contents" &&
		strings.HasSuffix(filepath.Base(filepath.Dir(macOS)), ".app") {
		dir = filepath.Dir(filepath.Dir(macOS))
	}
	return filepath.Join(dir, DBFileName)
}
