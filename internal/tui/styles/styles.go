package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Theme names accepted by ui.theme
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Palette is the set of colors a theme is built from
type Palette struct {
	Name      string
	Accent    lipgloss.Color
	Surface   lipgloss.Color
	Selection lipgloss.Color
	Dim       lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Green     lipgloss.Color
	Red       lipgloss.Color
	Blue      lipgloss.Color
}

// DarkPalette is the default theme
var DarkPalette = Palette{
	Name:      ThemeDark,
	Accent:    lipgloss.Color("#D4A017"),
	Surface:   lipgloss.Color("#102A26"),
	Selection: lipgloss.Color("#1E4D45"),
	Dim:       lipgloss.Color("#6B7F7A"),
	Muted:     lipgloss.Color("#A3B8B2"),
	Text:      lipgloss.Color("#F5F1E6"),
	Green:     lipgloss.Color("#34D399"),
	Red:       lipgloss.Color("#EF4444"),
	Blue:      lipgloss.Color("#60A5FA"),
}

// LightPalette is the light theme
var LightPalette = Palette{
	Name:      ThemeLight,
	Accent:    lipgloss.Color("#0F766E"),
	Surface:   lipgloss.Color("#F5F1E6"),
	Selection: lipgloss.Color("#D9EDE8"),
	Dim:       lipgloss.Color("#8A8F8D"),
	Muted:     lipgloss.Color("#4B5563"),
	Text:      lipgloss.Color("#1F2937"),
	Green:     lipgloss.Color("#047857"),
	Red:       lipgloss.Color("#B91C1C"),
	Blue:      lipgloss.Color("#1D4ED8"),
}

// PaletteByName returns the palette for a theme name
func PaletteByName(name string) (Palette, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeDark:
		return DarkPalette, true
	case ThemeLight:
		return LightPalette, true
	default:
		return Palette{}, false
	}
}

// Current is the palette the styles below were last built from
var Current Palette

// Borders
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	WarningStyle   lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
	ArabicStyle    lipgloss.Style
	LinkStyle      lipgloss.Style
)

// Tab bar styles
var (
	ActiveTabStyle   lipgloss.Style
	InactiveTabStyle lipgloss.Style
	TabGapStyle      lipgloss.Style
)

// List item styles
var (
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
)

// Prayer table styles
var (
	PassedPrayerStyle lipgloss.Style
	NextPrayerStyle   lipgloss.Style
	CountdownStyle    lipgloss.Style
)

// Help styles
var (
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
)

// Badge styles
var (
	BadgeStyle    lipgloss.Style
	DimBadgeStyle lipgloss.Style
)

// Spinner, filter and match styles
var (
	SpinnerStyle                lipgloss.Style
	FilterStyle                 lipgloss.Style
	FilterPromptStyle           lipgloss.Style
	MatchHighlightStyle         lipgloss.Style
	MatchHighlightSelectedStyle lipgloss.Style
)

func init() {
	Apply(DarkPalette)
}

// Apply rebuilds every style from p. Call it from the UI goroutine only.
func Apply(p Palette) {
	Current = p

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Dim)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)
	SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	DimStyle = lipgloss.NewStyle().
		Foreground(p.Dim)
	AccentStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Red)
	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Italic(true)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Green)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Accent).
		Padding(0, 1)
	ArabicStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)
	LinkStyle = lipgloss.NewStyle().
		Foreground(p.Blue).
		Underline(true)

	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Accent).
		Bold(true).
		Padding(0, 2)
	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 2)
	TabGapStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Selection).
		Padding(0, 1)
	NormalItemStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)

	PassedPrayerStyle = lipgloss.NewStyle().
		Foreground(p.Dim)
	NextPrayerStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	CountdownStyle = lipgloss.NewStyle().
		Foreground(p.Green).
		Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
	HelpDescStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Accent).
		Padding(0, 1)
	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Selection).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
	FilterStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	MatchHighlightStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	MatchHighlightSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Selection).
		Bold(true)
}

// Helper functions

// Truncate shortens s to the given display width with an ellipsis.
// Width is measured in terminal cells so Arabic and wide runes are safe.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Pad pads or truncates s to exactly width cells
func Pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

// RenderListRow renders a complete list row with a uniform background when
// selected. Each part is styled on its own so ANSI resets don't punch holes
// in the selection background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := Current.Selection

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(Current.Text)
		default:
			style = style.Foreground(Current.Muted)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// 2 for the left/right margin
	if pad := width - visibleLen - 2; pad > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", pad)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// RowPart is a part of a row with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
