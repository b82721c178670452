// Package config loads leapdraw CLI settings.
//
// Values are merged from built-in defaults, a leapdraw.yaml file, LEAPDRAW_
// environment variables and explicitly set command-line flags, in that order.
package config

// Config holds all CLI configuration options.
type Config struct {
	StorePath          string  `koanf:"store_path" yaml:"store_path"`
	LogStrategy        string  `koanf:"log_strategy" yaml:"log_strategy"`
	LogFile            string  `koanf:"log_file" yaml:"log_file"`
	HistoryFile        string  `koanf:"history_file" yaml:"history_file"`
	Verbose            bool    `koanf:"verbose" yaml:"verbose"`
	OutputFormat       string  `koanf:"output" yaml:"output"`
	DefaultColor       string  `koanf:"default_color" yaml:"default_color"`
	DefaultStrokeWidth float64 `koanf:"default_stroke_width" yaml:"default_stroke_width"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `koanf:"-" yaml:"-"`
}

// Default configuration values.
const (
	DefaultStoreFile   = ".leapdraw/drawings.db"
	DefaultLogStrategy = "console"
	DefaultLogFile     = "leapdraw.log"
	DefaultHistoryFile = ".leapdraw/history"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultColor       = "black"
	DefaultStrokeWidth = 2.0
)

// Defaults returns a Config populated with the default values.
func Defaults() *Config {
	return &Config{
		StorePath:          DefaultStoreFile,
		LogStrategy:        DefaultLogStrategy,
		LogFile:            DefaultLogFile,
		HistoryFile:        DefaultHistoryFile,
		OutputFormat:       DefaultOutput,
		DefaultColor:       DefaultColor,
		DefaultStrokeWidth: DefaultStrokeWidth,
	}
}
