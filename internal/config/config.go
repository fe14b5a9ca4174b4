package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle        = "Reporthesis"
	DefaultMessageWidth = 180
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const (
	StrategyMethodPath = "method-path"
	StrategyTestName   = "test-name"
)

// Config carries the presentation knobs of a conversion run. Every field
// has a default; a config file only needs the keys it wants to change.
type Config struct {
	Title            string `yaml:"title"`
	Theme            string `yaml:"theme"`
	MessageWidth     int    `yaml:"message_width"`
	EndpointStrategy string `yaml:"endpoint_strategy"`
}

func Default() Config {
	return Config{
		Title:            DefaultTitle,
		Theme:            ThemeDark,
		MessageWidth:     DefaultMessageWidth,
		EndpointStrategy: StrategyMethodPath,
	}
}

// Load reads the YAML config at pth over the defaults. An empty path means
// no config file and yields the defaults; a path that cannot be read or
// parsed is an error.
func Load(pth string) (Config, error) {
	cfg := Default()
	if pth == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(pth)
	if err != nil {
		return Config{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Theme == "" {
		c.Theme = ThemeDark
	}
	if c.MessageWidth == 0 {
		c.MessageWidth = DefaultMessageWidth
	}
	if c.EndpointStrategy == "" {
		c.EndpointStrategy = StrategyMethodPath
	}
}

func (c Config) Validate() error {
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}

	switch c.EndpointStrategy {
	case StrategyMethodPath, StrategyTestName:
	default:
		return fmt.Errorf("config: unknown endpoint_strategy %q", c.EndpointStrategy)
	}

	if c.MessageWidth <= 0 {
		return fmt.Errorf("config: message_width must be positive, got %d", c.MessageWidth)
	}

	return nil
}
