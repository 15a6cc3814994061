package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	DexRed     = lipgloss.Color("#DC0A2D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Yellow     = lipgloss.Color("#FFCB05")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DexRed)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(DexRed).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Fetch state characters (unstyled)
const (
	FavoriteChar = "★"
	FailedChar   = "✗"
	ResolvedChar = "●"
)

// Header tab styles
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(DexRed).
			Bold(true).
			Padding(0, 1)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DexRed).
			Padding(1, 2)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Width(16)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(DexRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Stat bar styles
var (
	StatFullStyle = lipgloss.NewStyle().
			Foreground(Green)

	StatEmptyStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(DexRed)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Yellow).
				Bold(true)
)

// Match highlight style for fuzzy filter results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
		Foreground(Yellow).
		Bold(true)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// TypeBadge renders a type name on its palette colour
func TypeBadge(name, hex string) string {
	return lipgloss.NewStyle().
		Foreground(White).
		Background(lipgloss.Color(hex)).
		Padding(0, 1).
		Render(name)
}

// RenderStatBar renders a stat value as a bar of width cells. Values are
// clamped to max.
func RenderStatBar(value, max, width int) string {
	if width < 1 || max <= 0 {
		return ""
	}
	if value > max {
		value = max
	}
	if value < 0 {
		value = 0
	}
	filled := value * width / max
	return StatFullStyle.Render(strings.Repeat("█", filled)) +
		StatEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// HighlightMatches bolds the runes of s at the given indexes
func HighlightMatches(s string, indexes []int) string {
	if len(indexes) == 0 {
		return s
	}
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range []rune(s) {
		if hit[i] {
			b.WriteString(MatchHighlightStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RenderListRow renders a complete list row with uniform background when selected.
// This function styles each part explicitly to avoid ANSI reset code issues.
// parts is a slice of {text, fgColor} pairs. Use nil for default foreground.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var result string
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if selected {
			style = style.Background(bg)
		}
		result += style.Render(part.Text)
		visibleLen += lipgloss.Width(part.Text)
	}

	// Add padding to fill width (subtract 2 for left/right margin)
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		result += padStyle.Render(strings.Repeat(" ", paddingNeeded))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + result + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}
