package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the dashboard
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border   lipgloss.AdaptiveColor
	Focus    lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, focus, muted, selected [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:    lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:   lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Focus:     lipgloss.AdaptiveColor{Light: focus[0], Dark: focus[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:  lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7C3AED", "#A855F7"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#1E40AF", "#60A5FA"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#DBEAFE", "#1E3A8A"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000080", "#FFFF00"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#4A5568", "#CBD5E0"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#EDF2F7", "#2D3748"})
)

// ThemeByName looks up one of the available themes
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return Theme{}, false
	}
}

// AvailableThemes returns the names accepted by ThemeByName
func AvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles are the lipgloss styles derived from a theme
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Busy    lipgloss.Style
	Success lipgloss.Style

	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style

	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

// NewStyles builds the dashboard styles for theme. With color disabled
// every style is plain apart from borders.
func NewStyles(theme Theme, color bool) *Styles {
	s := &Styles{
		Theme:         theme,
		Title:         lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Label:         lipgloss.NewStyle().Bold(true),
		Muted:         lipgloss.NewStyle(),
		Error:         lipgloss.NewStyle().Bold(true),
		Busy:          lipgloss.NewStyle().Bold(true),
		Success:       lipgloss.NewStyle(),
		Panel:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		FocusedPanel:  lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
		TableHeader:   lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true),
		TableSelected: lipgloss.NewStyle().Reverse(true),
	}
	if !color {
		return s
	}

	s.Title = s.Title.Foreground(theme.Primary)
	s.Label = s.Label.Foreground(theme.Secondary)
	s.Muted = s.Muted.Foreground(theme.Muted)
	s.Error = s.Error.Foreground(theme.Error)
	s.Busy = s.Busy.Foreground(theme.Warning)
	s.Success = s.Success.Foreground(theme.Success)
	s.Panel = s.Panel.BorderForeground(theme.Border)
	s.FocusedPanel = s.FocusedPanel.BorderForeground(theme.Focus)
	s.TableHeader = s.TableHeader.Foreground(theme.Primary).BorderForeground(theme.Border)
	s.TableSelected = lipgloss.NewStyle().Foreground(theme.Primary).Background(theme.Selected).Bold(true)
	return s
}
