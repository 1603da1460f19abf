// Package ui provides the terminal presentation of the breathing exercise.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Dark Mode Colors (Default)
	DarkBackground = lipgloss.Color("#0a0a0c")
	DarkForeground = lipgloss.Color("#f1f5f9") // slate-100
	DarkReflection = lipgloss.Color("#cbd5e1") // slate-300
	DarkMuted      = lipgloss.Color("#64748b") // slate-500
	DarkBorder     = lipgloss.Color("#1e293b") // slate-800

	// Light Mode Colors
	LightBackground = lipgloss.Color("#f8fafc")
	LightForeground = lipgloss.Color("#0f172a")
	LightReflection = lipgloss.Color("#334155")
	LightMuted      = lipgloss.Color("#94a3b8")
	LightBorder     = lipgloss.Color("#e2e8f0")

	// Semantic Colors (same in both modes)
	LabelColor = lipgloss.Color("#60a5fa") // blue-400
	Success    = lipgloss.Color("#4ade80") // green-400
	Breath     = lipgloss.Color("#60a5fa")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Reflection lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Reflection: DarkReflection,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Reflection: LightReflection,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DetectTheme picks light mode only when the terminal reports a light
// background; the exercise is designed for dark.
func DetectTheme() Theme {
	if os.Getenv("DROPLET_LIGHT_MODE") == "1" {
		return LightTheme()
	}
	// Format is usually "foreground;background"
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) == 2 {
		bg, err := strconv.Atoi(parts[1])
		if err == nil && (bg == 7 || bg >= 9) {
			return LightTheme()
		}
	}
	return DarkTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Reflection lipgloss.Style
	Label      lipgloss.Style
	Button     lipgloss.Style
	Done       lipgloss.Style
	Muted      lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Reflection: lipgloss.NewStyle().
			Foreground(theme.Reflection).
			Italic(true).
			Padding(0, 2),

		Label: lipgloss.NewStyle().
			Foreground(LabelColor),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Done: lipgloss.NewStyle().
			Foreground(Success).
			Padding(0, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
