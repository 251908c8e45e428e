package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/textlens/internal/client"
	"github.com/yildizm/textlens/internal/config"
	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/logger"
	"github.com/yildizm/textlens/internal/table"
)

var (
	analyzeText       string
	analyzeURL        string
	analyzeAsText     bool
	analyzeSort       string
	analyzeStopSort   string
	analyzeChartsDir  string
	analyzeOutputFile string
)

// analyzeInput is one resolved input source
type analyzeInput struct {
	kind   client.Kind
	text   string
	file   *client.File
	source string
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a text, file or web page",
		Long: `Submit one input to the analysis service and print the statistics,
charts and word tables.

A file argument is uploaded as is; with --as-text its content is read locally
and sent as plain text. Use --text for inline text, --url for the readable
text of a web page, or "-" to read text from stdin.

Examples:
  textlens analyze book.txt
  textlens analyze --text "Мама мыла раму"
  textlens analyze --url https://example.com/article -o markdown
  cat notes.txt | textlens analyze -
  textlens analyze book.fb2 --sort word --stop-sort frequency:asc
  textlens analyze book.txt --charts-dir ./charts`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeText, "text", "t", "", "text to analyze")
	cmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "web page whose readable text is analyzed")
	cmd.Flags().BoolVar(&analyzeAsText, "as-text", false, "read the file locally and send its content as text")
	cmd.Flags().StringVar(&analyzeSort, "sort", "", "unique-words sort: word, count or frequency, optionally :asc or :desc")
	cmd.Flags().StringVar(&analyzeStopSort, "stop-sort", "", "stop-words sort, same syntax as --sort")
	cmd.Flags().StringVar(&analyzeChartsDir, "charts-dir", "", "export charts as images into this directory")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	uniqueSort, err := parseSortFlag(analyzeSort)
	if err != nil {
		return fmt.Errorf("invalid --sort: %w", err)
	}
	stopSort, err := parseSortFlag(analyzeStopSort)
	if err != nil {
		return fmt.Errorf("invalid --stop-sort: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger("analyze")

	input, err := resolveInput(ctx, cmd, args, cfg, log)
	if err != nil {
		return err
	}

	chartsDir := analyzeChartsDir
	if chartsDir == "" {
		chartsDir = cfg.Charts.Dir
	}
	dash, err := createDashboard(cfg, log, chartsDir)
	if err != nil {
		return err
	}
	// exported chart images are the output and must outlive the run
	if chartsDir == "" {
		defer func() {
			if err := dash.Close(); err != nil {
				log.Warn("failed to release charts: %v", err)
			}
		}()
	}
	dash.SetUniqueSort(uniqueSort)
	dash.SetStopSort(stopSort)

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Analyzing %s...\n", input.source)
	}
	if err := runAnalysis(ctx, dash, input); err != nil {
		return err
	}

	return writeSnapshot(cmd, cfg, dash)
}

func runAnalysis(ctx context.Context, dash *dashboard.Dashboard, input *analyzeInput) error {
	var err error
	if input.kind == client.KindFile {
		err = dash.AnalyzeFile(ctx, input.file)
	} else {
		err = dash.AnalyzeText(ctx, input.text)
	}
	if err == nil {
		return nil
	}

	var ae *client.AnalysisError
	if errors.As(err, &ae) {
		return fmt.Errorf("analysis failed: %s", ae.UserMessage())
	}
	return fmt.Errorf("analysis failed: %w", err)
}

func writeSnapshot(cmd *cobra.Command, cfg *config.Config, dash *dashboard.Dashboard) error {
	f, err := getFormatter(cfg)
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := f.Format(dash.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(cmd.OutOrStdout(), output)
}

// resolveInput picks the single input source given by flags and arguments
func resolveInput(ctx context.Context, cmd *cobra.Command, args []string, cfg *config.Config, log *logger.Logger) (*analyzeInput, error) {
	// an explicit --text "" is still text input
	textSet := cmd.Flags().Changed("text")
	sources := 0
	for _, set := range []bool{textSet, analyzeURL != "", len(args) > 0} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("only one of a file argument, --text or --url may be given")
	}
	if analyzeAsText && len(args) == 0 {
		return nil, fmt.Errorf("--as-text requires a file argument")
	}

	switch {
	case textSet:
		return &analyzeInput{kind: client.KindText, text: analyzeText, source: "inline text"}, nil

	case analyzeURL != "":
		article, err := createFetcher(cfg, log).Fetch(ctx, analyzeURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", analyzeURL, err)
		}
		if isVerbose() && article.Title != "" {
			fmt.Fprintf(os.Stderr, "Extracted article: %s\n", article.Title)
		}
		return &analyzeInput{kind: client.KindText, text: article.Text, source: analyzeURL}, nil

	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &analyzeInput{kind: client.KindText, text: string(data), source: "stdin"}, nil
	}

	path := args[0]
	if err := validateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}
	cleanPath := filepath.Clean(path)

	if analyzeAsText {
		// #nosec G304 - path is validated above
		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		return &analyzeInput{kind: client.KindText, text: string(data), source: cleanPath}, nil
	}
	return &analyzeInput{kind: client.KindFile, file: client.FileFromPath(cleanPath), source: cleanPath}, nil
}

// parseSortFlag parses "column[:asc|desc]". WORD is always ascending;
// numeric columns default to descending.
func parseSortFlag(value string) (table.SortState, error) {
	if value == "" {
		return table.DefaultSortState(), nil
	}

	name, dir, hasDir := strings.Cut(value, ":")
	column, err := table.ParseColumn(name)
	if err != nil {
		return table.SortState{}, err
	}

	if column == table.ColumnWord {
		if hasDir && !strings.EqualFold(dir, "asc") {
			return table.SortState{}, fmt.Errorf("word column only sorts ascending")
		}
		return table.SortState{Column: column, Direction: table.Asc}, nil
	}

	state := table.SortState{Column: column, Direction: table.Desc}
	if hasDir {
		if state.Direction, err = table.ParseDirection(dir); err != nil {
			return table.SortState{}, err
		}
	}
	return state, nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// handleOutputDestination writes output to the output file or to w
func handleOutputDestination(w io.Writer, output []byte) error {
	if analyzeOutputFile == "" {
		_, err := w.Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return file.Sync()
}
