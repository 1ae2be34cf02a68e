package theme

import (
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
)

// Palette is a named set of colours. Cards are the backgrounds a task
// card can take.
type Palette struct {
	Name     string
	Text     lipgloss.TerminalColor
	Muted    lipgloss.TerminalColor
	Accent   lipgloss.TerminalColor
	Danger   lipgloss.TerminalColor
	Border   lipgloss.TerminalColor
	HeaderBg lipgloss.TerminalColor
	StatusBg lipgloss.TerminalColor
	CardText lipgloss.TerminalColor
	Cards    []lipgloss.TerminalColor
}

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

var palettes = []Palette{
	{
		Name:     "default",
		Text:     ColorWhite,
		Muted:    ColorGray,
		Accent:   ColorGreen,
		Danger:   ColorRed,
		Border:   ColorBorder,
		HeaderBg: ColorBlue,
		StatusBg: ColorSubtle,
		CardText: lipgloss.Color("#1A202C"),
		Cards: []lipgloss.TerminalColor{
			lipgloss.Color("#F6D365"), lipgloss.Color("#FDA085"),
			lipgloss.Color("#A1C4FD"), lipgloss.Color("#C2E9FB"),
			lipgloss.Color("#D4FC79"), lipgloss.Color("#96E6A1"),
			lipgloss.Color("#FBC2EB"), lipgloss.Color("#A6C1EE"),
			lipgloss.Color("#FFECD2"), lipgloss.Color("#FCB69F"),
			lipgloss.Color("#84FAB0"), lipgloss.Color("#8FD3F4"),
			lipgloss.Color("#E0C3FC"), lipgloss.Color("#FF9A9E"),
		},
	},
	{
		Name:     "dark",
		Text:     lipgloss.Color("#E9ECEF"),
		Muted:    lipgloss.Color("#6C757D"),
		Accent:   lipgloss.Color("#27AE60"),
		Danger:   lipgloss.Color("#E74C3C"),
		Border:   lipgloss.Color("#343A40"),
		HeaderBg: lipgloss.Color("#212529"),
		StatusBg: lipgloss.Color("#343A40"),
		CardText: lipgloss.Color("#F8F9FA"),
		Cards: []lipgloss.TerminalColor{
			lipgloss.Color("#2C3E50"), lipgloss.Color("#34495E"),
			lipgloss.Color("#1E3A5F"), lipgloss.Color("#3D2C5E"),
			lipgloss.Color("#1F4E3D"), lipgloss.Color("#5E2C3D"),
		},
	},
	{
		Name:     "light",
		Text:     lipgloss.Color("#212529"),
		Muted:    lipgloss.Color("#868E96"),
		Accent:   lipgloss.Color("#2F855A"),
		Danger:   lipgloss.Color("#C53030"),
		Border:   lipgloss.Color("#DEE2E6"),
		HeaderBg: lipgloss.Color("#E9ECEF"),
		StatusBg: lipgloss.Color("#F1F3F5"),
		CardText: lipgloss.Color("#212529"),
		Cards: []lipgloss.TerminalColor{
			lipgloss.Color("#FFF3BF"), lipgloss.Color("#D3F9D8"),
			lipgloss.Color("#D0EBFF"), lipgloss.Color("#F3D9FA"),
			lipgloss.Color("#FFE8CC"), lipgloss.Color("#E3FAFC"),
		},
	},
}

// Names lists the available palettes in cycling order.
func Names() []string {
	out := make([]string, len(palettes))
	for i, p := range palettes {
		out[i] = p.Name
	}
	return out
}

// Lookup returns the palette with the given name.
func Lookup(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// Theme is the set of styles derived from one palette.
type Theme struct {
	Palette Palette

	// HeaderStyle is used for the application title bar.
	HeaderStyle lipgloss.Style

	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle lipgloss.Style

	// PanelStyle wraps overlays such as help and the command palette.
	PanelStyle lipgloss.Style

	// TitleStyle is the bold heading inside a panel.
	TitleStyle lipgloss.Style

	// RowStyle is the base style for list rows.
	RowStyle lipgloss.Style

	// SelectedRowStyle highlights the row under the cursor.
	SelectedRowStyle lipgloss.Style

	// DoneStyle renders completed task names.
	DoneStyle lipgloss.Style

	// DraggingStyle marks the task being dragged.
	DraggingStyle lipgloss.Style

	// DropTargetStyle marks the task the drag would land on.
	DropTargetStyle lipgloss.Style

	// FlashStyle highlights a task that just changed.
	FlashStyle lipgloss.Style

	// HelpStyle is used for keyboard hints and secondary text.
	HelpStyle lipgloss.Style

	// ErrorStyle is used for warnings in the status bar.
	ErrorStyle lipgloss.Style

	// HighStyle and LowStyle label the ends of the priority scale.
	HighStyle lipgloss.Style
	LowStyle  lipgloss.Style
}

// New derives styles from p.
func New(p Palette) *Theme {
	return &Theme{
		Palette: p,
		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.HeaderBg).
			Padding(0, 1),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.StatusBg).
			Padding(0, 1),
		PanelStyle: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			MarginBottom(1),
		RowStyle: lipgloss.NewStyle().
			PaddingLeft(2),
		SelectedRowStyle: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Accent),
		DoneStyle: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(p.Accent),
		DraggingStyle: lipgloss.NewStyle().
			Bold(true).
			Italic(true).
			Foreground(p.Muted),
		DropTargetStyle: lipgloss.NewStyle().
			Underline(true).
			Foreground(p.Accent),
		FlashStyle: lipgloss.NewStyle().
			Bold(true).
			Reverse(true),
		HelpStyle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		ErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Danger),
		HighStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Danger),
		LowStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
	}
}

// Named returns the theme for the named palette, falling back to the
// first palette for unknown names.
func Named(name string) *Theme {
	p, ok := Lookup(name)
	if !ok {
		p = palettes[0]
	}
	return New(p)
}

// Next returns the theme after t in cycling order.
func (t *Theme) Next() *Theme {
	for i, p := range palettes {
		if p.Name == t.Palette.Name {
			return New(palettes[(i+1)%len(palettes)])
		}
	}
	return New(palettes[0])
}

// CardColor picks a card background for a task id. The choice is stable
// for a given id and palette.
func (t *Theme) CardColor(id string) lipgloss.TerminalColor {
	cards := t.Palette.Cards
	if len(cards) == 0 {
		return t.Palette.HeaderBg
	}
	return cards[xxhash.Sum64String(id)%uint64(len(cards))]
}

// CardStyle is the box a task is drawn in when the grid display mode is on.
func (t *Theme) CardStyle(id string, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Foreground(t.Palette.CardText).
		Background(t.CardColor(id)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Palette.Border)
}
