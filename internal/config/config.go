// Package config loads the previewer's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"glance/internal/errors"
	"glance/internal/source"

	"gopkg.in/yaml.v3"
)

// Renderers a configuration may select
const (
	RendererTUI   = "tui"
	RendererGUI   = "gui"
	RendererPlain = "plain"
)

// Config represents the application configuration structure.
// It defines how previews are rendered, which sources feed them, the
// colour theme and where logs go.
type Config struct {
	Preview struct {
		Renderer       string `yaml:"renderer"`         // tui, gui or plain
		IdleIntervalMS int    `yaml:"idle_interval_ms"` // Max sleep between ticks when idle
		Highlight      bool   `yaml:"highlight"`        // Syntax highlight text previews
		HighlightStyle string `yaml:"highlight_style"`  // Chroma style name
		Exif           bool   `yaml:"exif"`             // Show EXIF details for photos
	} `yaml:"preview"`
	Sources struct {
		Pipes  []string `yaml:"pipes"`  // Source specs added to those on the command line
		Ignore []string `yaml:"ignore"` // Glob patterns for path requests to drop
	} `yaml:"sources"`
	Theme Theme `yaml:"theme"`
	Log struct {
		File  string `yaml:"file"`  // Log file; empty discards logs under the TUI
		JSON  bool   `yaml:"json"`  // JSON lines instead of text
		Debug bool   `yaml:"debug"` // Enable debug logging
	} `yaml:"log"`
}

// Theme holds the colours used by the renderers. Colours left empty are
// taken from the named theme.
type Theme struct {
	Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
	Primary  string `yaml:"primary"`  // Primary color for headings
	Success  string `yaml:"success"`  // Success message color
	Warning  string `yaml:"warning"`  // Warning message color
	Error    string `yaml:"error"`    // Error message color
	Info     string `yaml:"info"`     // Informational message color
	Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
	Border   string `yaml:"border"`   // Border color for frames
}

// DefaultPath returns ~/.config/glance/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "glance", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/glance/config.yaml).
func LoadConfig() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Theme.fill()
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshalling over the defaults keeps them for unset fields
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "default"
	}
	cfg.Theme.fill()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// fill sets every empty colour from the named theme
func (t *Theme) fill() {
	theme := GetTheme(t.Name)
	for _, c := range []struct {
		dst *string
		key string
	}{
		{&t.Primary, "primary"},
		{&t.Success, "success"},
		{&t.Warning, "warning"},
		{&t.Error, "error"},
		{&t.Info, "info"},
		{&t.Emphasis, "emphasis"},
		{&t.Border, "border"},
	} {
		if *c.dst == "" {
			*c.dst = theme[c.key]
		}
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Preview.Renderer = RendererTUI
	cfg.Preview.IdleIntervalMS = 50
	cfg.Preview.Highlight = true
	cfg.Preview.HighlightStyle = "nord"
	cfg.Preview.Exif = true

	cfg.Sources.Pipes = []string{}
	cfg.Sources.Ignore = []string{}

	cfg.Theme.Name = "default"

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns an InvalidConfig error naming the offending setting.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	validRenderers := map[string]bool{RendererTUI: true, RendererGUI: true, RendererPlain: true}
	if !validRenderers[c.Preview.Renderer] {
		return errors.NewConfigError(fmt.Sprintf("invalid renderer: %s", c.Preview.Renderer), "preview.renderer", errors.InvalidConfig, nil)
	}

	if c.Preview.IdleIntervalMS < 1 {
		return errors.NewConfigError("idle interval must be >= 1ms", "preview.idle_interval_ms", errors.InvalidConfig, nil)
	}

	if _, err := source.ParseSpecs(c.Sources.Pipes); err != nil {
		return errors.NewConfigError("invalid source", "sources.pipes", errors.InvalidConfig, err)
	}

	if _, err := source.NewFilter(c.Sources.Ignore); err != nil {
		return errors.NewConfigError("invalid ignore pattern", "sources.ignore", errors.InvalidConfig, err)
	}

	if !isTheme(c.Theme.Name) {
		return errors.NewConfigError(fmt.Sprintf("unknown theme: %s", c.Theme.Name), "theme.name", errors.InvalidConfig, nil)
	}

	return nil
}

// IdleInterval returns the idle interval as a duration
func (c *Config) IdleInterval() time.Duration {
	return time.Duration(c.Preview.IdleIntervalMS) * time.Millisecond
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := New()
	cfg.Preview.Renderer = RendererPlain
	cfg.Preview.IdleIntervalMS = 5
	cfg.Preview.Highlight = false
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	cfg := defaultConfig()
	cfg.Theme.fill()
	return cfg
}

func isTheme(name string) bool {
	for _, t := range ListThemes() {
		if t == name {
			return true
		}
	}
	return false
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105", // Dark Blue
			"success":  "78",  // Dark Green
			"warning":  "214", // Dark Yellow
			"error":    "160", // Dark Red
			"info":     "33",  // Dark Blue
			"emphasis": "147", // Light Blue
			"border":   "105", // Dark Blue
		},
		"light": {
			"primary":  "135", // Light Purple
			"success":  "150", // Light Green
			"warning":  "222", // Light Yellow
			"error":    "210", // Light Red
			"info":     "117", // Light Blue
			"emphasis": "219", // Very Light Pink
			"border":   "135", // Light Purple
		},
		"monochrome": {
			"primary":  "245", // Light Grey
			"success":  "252", // White
			"warning":  "241", // Medium Grey
			"error":    "232", // Black
			"info":     "248", // Grey
			"emphasis": "255", // Bright White
			"border":   "245", // Light Grey
		},
		"ocean": {
			"primary":  "31",  // Teal
			"success":  "36",  // Green-Blue
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "33",  // Blue
			"emphasis": "51",  // Cyan
			"border":   "31",  // Teal
		},
		"sunset": {
			"primary":  "208", // Orange
			"success":  "154", // Green
			"warning":  "214", // Dark Yellow
			"error":    "196", // Red
			"info":     "69",  // Light Green
			"emphasis": "203", // Pink-Orange
			"border":   "208", // Orange
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}
