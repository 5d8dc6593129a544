package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/copybtn/internal/dom"
	"github.com/ziadkadry99/copybtn/internal/walker"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (COPYBTN_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: COPYBTN_SITE_DIR -> site_dir, etc.
	if err := k.Load(env.Provider("COPYBTN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "COPYBTN_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if _, err := dom.Compile(c.Selector); err != nil {
		return fmt.Errorf("selector: %w", err)
	}
	if _, err := dom.Compile(c.TextSelector); err != nil {
		return fmt.Errorf("text_selector: %w", err)
	}

	if strings.TrimSpace(c.ButtonClass) == "" || strings.ContainsAny(c.ButtonClass, " \t\n") {
		return fmt.Errorf("button_class must be a single class name, got %q", c.ButtonClass)
	}

	if c.Glyphs != "" {
		if _, ok := glyphPresets[c.Glyphs]; !ok {
			return fmt.Errorf("invalid glyphs %q: must be one of fontawesome, text", c.Glyphs)
		}
	}
	if idle, confirmed := c.ButtonContent(); idle == confirmed {
		return fmt.Errorf("idle and confirmed button content must differ")
	}

	if err := walker.ValidatePatterns(c.Include); err != nil {
		return fmt.Errorf("include: %w", err)
	}
	if err := walker.ValidatePatterns(c.Exclude); err != nil {
		return fmt.Errorf("exclude: %w", err)
	}

	if c.RevertAfterMS <= 0 {
		return fmt.Errorf("revert_after_ms must be positive")
	}

	if c.Style != "" {
		if !knownStyle(c.Style) {
			return fmt.Errorf("unknown highlight style %q", c.Style)
		}
	}

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// ButtonContent returns the idle and confirmed button markup. Explicit
// idle_html / confirmed_html win over the glyph set.
func (c *Config) ButtonContent() (idle, confirmed string) {
	preset, ok := glyphPresets[c.Glyphs]
	if !ok {
		preset = glyphPresets[GlyphsFontAwesome]
	}
	idle, confirmed = preset[0], preset[1]
	if c.IdleHTML != "" {
		idle = c.IdleHTML
	}
	if c.ConfirmedHTML != "" {
		confirmed = c.ConfirmedHTML
	}
	return idle, confirmed
}

// RevertAfter returns how long a button shows its confirmation.
func (c *Config) RevertAfter() time.Duration {
	return time.Duration(c.RevertAfterMS) * time.Millisecond
}

// Level returns the slog level for log_level, defaulting to info.
func (c *Config) Level() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

func knownStyle(name string) bool {
	for _, s := range styles.Names() {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
