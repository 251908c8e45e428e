package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Image formats supported by ImageRenderer
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ImageRenderer writes pie charts to files in Dir, one file per chart name.
// Disposing a handle removes its file.
type ImageRenderer struct {
	Dir    string
	Format string
	Width  int
	Height int
}

// NewImageRenderer creates an image renderer, creating dir if needed
func NewImageRenderer(dir, format string, width, height int) (*ImageRenderer, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = FormatPNG
	}
	if format != FormatPNG && format != FormatSVG {
		return nil, fmt.Errorf("unsupported chart format: %s (must be png or svg)", format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("chart size must be positive, got %dx%d", width, height)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}
	return &ImageRenderer{Dir: dir, Format: format, Width: width, Height: height}, nil
}

// Render draws split as a pie chart file
func (r *ImageRenderer) Render(split Split) (Handle, error) {
	if split.Empty() {
		return nil, fmt.Errorf("chart %s has no data", split.Name)
	}

	values := make([]chart.Value, 0, len(split.Labels))
	for i := range split.Labels {
		values = append(values, chart.Value{
			Label: split.Tooltip(i),
			Value: split.Values[i],
			Style: chart.Style{
				FillColor:   toDrawingColor(split.Colors[i]),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}

	pie := chart.PieChart{
		Title:  split.Title,
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}

	provider := chart.PNG
	if r.Format == FormatSVG {
		provider = chart.SVG
	}

	path := filepath.Join(r.Dir, split.Name+"."+r.Format)
	// #nosec G304 - path is built from a configured directory and a fixed chart name
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := pie.Render(provider, file); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to render chart %s: %w", split.Name, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write chart %s: %w", split.Name, err)
	}

	return &imageHandle{path: path}, nil
}

type imageHandle struct {
	path     string
	disposed bool
}

func (h *imageHandle) View() string {
	if h.disposed {
		return ""
	}
	return h.path
}

// Path returns the file the chart was written to
func (h *imageHandle) Path() string {
	return h.View()
}

func (h *imageHandle) Dispose() error {
	if h.disposed {
		return fmt.Errorf("chart handle already disposed")
	}
	h.disposed = true
	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove chart %s: %w", h.path, err)
	}
	return nil
}

func toDrawingColor(c RGB) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
