package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yildizm/textlens/internal/ui"
)

var (
	tuiText    string
	tuiFile    string
	tuiTheme   string
	tuiLogFile string
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive analysis dashboard",
		Long: `Open a full-screen dashboard with a text editor, a file path field,
charts and sortable word tables.

Keys:
  ctrl+s     analyze the text
  ctrl+o     analyze the file at the path field
  tab        move focus between panels
  1 / 2 / 3  sort the focused table by word, count or frequency
  ?          toggle full help (on a table)
  ctrl+c     quit

Logs would corrupt the screen, so they are discarded unless --log-file is set.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVarP(&tuiText, "text", "t", "", "initial text")
	cmd.Flags().StringVarP(&tuiFile, "file", "f", "", "initial file path")
	cmd.Flags().StringVar(&tuiTheme, "theme", "default", "color theme ("+strings.Join(ui.AvailableThemes(), ", ")+")")
	cmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	theme, ok := ui.ThemeByName(tuiTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q (valid: %s)", tuiTheme, strings.Join(ui.AvailableThemes(), ", "))
	}

	log := newLogger("tui")
	logOut, closeLog, err := openTUILog(tuiLogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log.SetOutput(logOut)

	// charts are always drawn in the terminal here
	dash, err := createDashboard(cfg, log, "")
	if err != nil {
		return err
	}
	defer func() {
		if err := dash.Close(); err != nil {
			log.Warn("failed to release charts: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := ui.NewModel(dash, ui.Options{
		Text:     tuiText,
		FilePath: tuiFile,
		Theme:    theme,
		Color:    useColor(cfg) && !ui.IsColorDisabled(),
		Context:  ctx,
		Logger:   log,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

func openTUILog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	// #nosec G304 - user-chosen log destination
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
