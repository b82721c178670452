package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LEAPDRAW_"

// configNames are looked up in the working directory, then in the user
// config directory, when no file is given explicitly.
var configNames = []string{"leapdraw.yaml", "leapdraw.yml"}

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"store":        "store_path",
	"color":        "default_color",
	"stroke-width": "default_stroke_width",
}

// findConfigFile finds the config file to use.
// Priority: explicit path > ./leapdraw.yaml > ./leapdraw.yml > user config dir.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, name := range configNames {
			candidate := filepath.Join(dir, "leapdraw", name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

func isPathKey(key string) bool {
	return key == "store_path" || key == "log_file" || key == "history_file"
}

// resolvePath resolves a path relative to baseDir unless it is empty,
// absolute or the in-memory store marker.
func resolvePath(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Load reads configuration from defaults, the config file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	d := Defaults()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"store_path":           d.StorePath,
		"log_strategy":         d.LogStrategy,
		"log_file":             d.LogFile,
		"history_file":         d.HistoryFile,
		"verbose":              false,
		"output":               d.OutputFormat,
		"default_color":        d.DefaultColor,
		"default_stroke_width": d.DefaultStrokeWidth,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFile := findConfigFile(cfgFile)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables: LEAPDRAW_STORE_PATH -> store_path
	// Paths set outside the config file are left relative to the working directory.
	wdPaths := map[string]bool{}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if isPathKey(key) {
			wdPaths[key] = true
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			if isPathKey(key) {
				wdPaths[key] = true
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = configFile

	// 6. Paths from the config file are relative to its directory.
	baseDir := ""
	if configFile != "" {
		if abs, err := filepath.Abs(configFile); err == nil {
			baseDir = filepath.Dir(abs)
		}
	}
	if !wdPaths["store_path"] {
		cfg.StorePath = resolvePath(cfg.StorePath, baseDir)
	}
	if !wdPaths["log_file"] {
		cfg.LogFile = resolvePath(cfg.LogFile, baseDir)
	}
	if !wdPaths["history_file"] {
		cfg.HistoryFile = resolvePath(cfg.HistoryFile, baseDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}

// configKey is used to store the loaded config in context.
type configKey struct{}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config stored by WithConfig, or the defaults.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Defaults()
}
