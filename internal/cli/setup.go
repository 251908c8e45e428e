package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/yildizm/textlens/internal/charts"
	"github.com/yildizm/textlens/internal/client"
	"github.com/yildizm/textlens/internal/config"
	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/formatter"
	"github.com/yildizm/textlens/internal/logger"
	"github.com/yildizm/textlens/internal/table"
	"github.com/yildizm/textlens/internal/webtext"
)

// Width of the terminal chart bars
const terminalChartWidth = 40

func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// createClient builds the analysis service client from the server section
func createClient(cfg *config.Config, log *logger.Logger) (*client.Client, error) {
	c, err := client.New(&client.Config{
		BaseURL:   cfg.Server.BaseURL,
		Timeout:   cfg.Server.Timeout,
		UserAgent: cfg.Server.UserAgent,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// createRenderer returns an image renderer when chartsDir is set and a
// terminal renderer otherwise
func createRenderer(cfg *config.Config, chartsDir string) (charts.Renderer, error) {
	if chartsDir == "" {
		return charts.NewTerminalRenderer(terminalChartWidth), nil
	}
	r, err := charts.NewImageRenderer(chartsDir, cfg.Charts.Format, cfg.Charts.Width, cfg.Charts.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare charts directory: %w", err)
	}
	return r, nil
}

// createDashboard wires client, sorter and renderer into a dashboard
func createDashboard(cfg *config.Config, log *logger.Logger, chartsDir string) (*dashboard.Dashboard, error) {
	c, err := createClient(cfg, log)
	if err != nil {
		return nil, err
	}
	sorter, err := table.NewSorter(cfg.Tables.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid table locale: %w", err)
	}
	renderer, err := createRenderer(cfg, chartsDir)
	if err != nil {
		return nil, err
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Using analysis service at %s\n", c.BaseURL())
	}
	return dashboard.New(c,
		dashboard.WithRenderer(renderer),
		dashboard.WithSorter(sorter),
		dashboard.WithLogger(log),
	), nil
}

func createFetcher(cfg *config.Config, log *logger.Logger) *webtext.Fetcher {
	return webtext.New(webtext.Config{
		Timeout:      cfg.Web.Timeout,
		MaxBodyBytes: cfg.Web.MaxBodyBytes,
	}, log)
}

// getFormatter returns the formatter for the configured output format
func getFormatter(cfg *config.Config) (formatter.Formatter, error) {
	return formatter.New(cfg.Output.DefaultFormat, formatter.Options{
		Color:   useColor(cfg),
		Emoji:   cfg.Output.Emoji,
		MaxRows: cfg.Output.MaxRows,
	})
}

func useColor(cfg *config.Config) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return cfg.UseColor(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}
