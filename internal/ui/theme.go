package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Gauge troughs

	// Border colors
	Border      string
	BorderFocus string // Panel with input focus

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// PhaseColors maps lower-case print phase names to badge colors.
	PhaseColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Bar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		phaseColors: t.PhaseColors,
		background:  t.Background,
		muted:       t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Bar        lipgloss.Style
	Logo       lipgloss.Style
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	phaseColors map[string]string
	background  string
	muted       string
}

// PhaseBadge returns a filled badge style for a print phase name.
func (s Styles) PhaseBadge(phase string) lipgloss.Style {
	color := s.phaseColors[strings.ToLower(strings.TrimSpace(phase))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Carbon":   carbonTheme(),
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Carbon", "Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Carbon.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return carbonTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func carbonTheme() Theme {
	// Neutral graphite with the printer's orange accent.
	return Theme{
		Name: "Carbon",

		Background: "#121212",
		Surface:    "#1e1e1e",
		SurfaceAlt: "#2a2a2a",

		Border:      "#3a3a3a",
		BorderFocus: "#ff8c1a",

		Text:    "#e4e4e4",
		Muted:   "#9e9e9e",
		Faint:   "#6c6c6c",
		Accent:  "#ff8c1a",
		Success: "#5fd75f",
		Warning: "#ffd75f",
		Danger:  "#ff5f5f",
		Info:    "#5fafff",

		PhaseColors: map[string]string{
			"idle":      "#6c6c6c",
			"preparing": "#5fafff",
			"printing":  "#ff8c1a",
			"pausing":   "#ffd75f",
			"paused":    "#ffd75f",
			"resuming":  "#5fafff",
			"complete":  "#5fd75f",
			"unknown":   "#9e9e9e",
		},
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		PhaseColors: map[string]string{
			"idle":      "#738091", // comment
			"preparing": "#63cdcf", // cyan
			"printing":  "#9d79d6", // magenta
			"pausing":   "#f4a261", // orange
			"paused":    "#dbc074", // yellow
			"resuming":  "#719cd6", // blue
			"complete":  "#81b29a", // green
			"unknown":   "#71839b", // fg3
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4

		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue

		PhaseColors: map[string]string{
			"idle":      "#727169", // fujiGray
			"preparing": "#7FB4CA", // springBlue
			"printing":  "#957FB8", // oniViolet
			"pausing":   "#FFA066", // surimiOrange
			"paused":    "#E6C384", // carpYellow
			"resuming":  "#7E9CD8", // crystalBlue
			"complete":  "#98BB6C", // springGreen
			"unknown":   "#727169", // fujiGray
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		PhaseColors: map[string]string{
			"idle":      "#64748b", // slate-500
			"preparing": "#38bdf8", // sky-400
			"printing":  "#06b6d4", // cyan-500
			"pausing":   "#fbbf24", // amber-400
			"paused":    "#f59e0b", // amber-500
			"resuming":  "#0ea5e9", // sky-500
			"complete":  "#16a34a", // green-600
			"unknown":   "#64748b", // slate-500
		},
	}
}
