package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/yildizm/textlens/internal/table"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Output  OutputConfig `yaml:"output" json:"output"`
	Tables  TablesConfig `yaml:"tables" json:"tables"`
	Charts  ChartsConfig `yaml:"charts" json:"charts"`
	Web     WebConfig    `yaml:"web" json:"web"`
}

// ServerConfig locates the analysis service
type ServerConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"` // 0 = no timeout
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	Emoji         bool   `yaml:"emoji" json:"emoji"`
	MaxRows       int    `yaml:"max_rows" json:"max_rows"` // 0 = all rows
}

// TablesConfig configures the word tables
type TablesConfig struct {
	Locale string `yaml:"locale" json:"locale"` // BCP 47 collation tag
}

// ChartsConfig configures image export of the charts
type ChartsConfig struct {
	Dir    string `yaml:"dir" json:"dir"`       // empty disables image export
	Format string `yaml:"format" json:"format"` // png|svg
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
}

// WebConfig configures fetching of web pages for analysis
type WebConfig struct {
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			BaseURL:   "http://localhost:8000",
			UserAgent: "textlens",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Emoji:         true,
		},
		Tables: TablesConfig{
			Locale: table.DefaultLocale,
		},
		Charts: ChartsConfig{
			Format: "png",
			Width:  512,
			Height: 512,
		},
		Web: WebConfig{
			MaxBodyBytes: 10 * 1024 * 1024,
			Timeout:      30 * time.Second,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateTablesConfig(); err != nil {
		return err
	}
	if err := c.validateChartsConfig(); err != nil {
		return err
	}
	return c.validateWebConfig()
}

func (c *Config) validateServerConfig() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server.base_url: %s (must be an http or https URL)", c.Server.BaseURL)
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"terminal": true,
			"json":     true,
			"markdown": true,
			"md":       true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.MaxRows < 0 {
		return fmt.Errorf("output.max_rows must be non-negative")
	}
	return nil
}

func (c *Config) validateTablesConfig() error {
	if _, err := table.NewSorter(c.Tables.Locale); err != nil {
		return fmt.Errorf("tables.locale: %w", err)
	}
	return nil
}

func (c *Config) validateChartsConfig() error {
	if c.Charts.Format != "png" && c.Charts.Format != "svg" {
		return fmt.Errorf("invalid charts.format: %s (must be png or svg)", c.Charts.Format)
	}
	if c.Charts.Width < 1 || c.Charts.Height < 1 {
		return fmt.Errorf("charts.width and charts.height must be greater than 0")
	}
	return nil
}

func (c *Config) validateWebConfig() error {
	if c.Web.MaxBodyBytes < 1 {
		return fmt.Errorf("web.max_body_bytes must be greater than 0")
	}
	if c.Web.Timeout < 0 {
		return fmt.Errorf("web.timeout must be non-negative")
	}
	return nil
}

// UseColor resolves the color mode against whether output is a terminal
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal
	}
}
