package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapdraw/internal/actionlog"
	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

var (
	validOutputs    = []string{"auto", "text", "markdown", "json"}
	validStrategies = []string{actionlog.StrategyConsole, actionlog.StrategyFile, actionlog.StrategyDatabase}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}
	if !slices.Contains(validOutputs, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("invalid output format %q (expected %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if !slices.Contains(validStrategies, strings.ToLower(c.LogStrategy)) {
		return fmt.Errorf("invalid log_strategy %q (expected %s)", c.LogStrategy, strings.Join(validStrategies, ", "))
	}
	if c.DefaultStrokeWidth <= 0 {
		return fmt.Errorf("default_stroke_width must be positive, got %g", c.DefaultStrokeWidth)
	}
	if _, err := c.Color(); err != nil {
		return err
	}
	return nil
}

// Color parses DefaultColor.
func (c *Config) Color() (shape.Color, error) {
	col, err := shape.ParseColor(c.DefaultColor)
	if err != nil {
		return shape.Color{}, fmt.Errorf("invalid default_color: %w", err)
	}
	return col, nil
}
