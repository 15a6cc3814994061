package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

const statBarWidth = 20

// Card is the detail overlay for one identifier. It renders whatever state
// the resolver reports: a spinner while Pending, the error with a retry hint
// when Failed, and the full record when Resolved.
type Card struct {
	id       string
	state    domain.FetchState
	favorite bool
	open     bool

	width    int
	height   int
	viewport viewport.Model
}

// NewCard creates a closed card
func NewCard() Card {
	return Card{viewport: viewport.New(0, 0)}
}

// Open shows the card for id
func (c *Card) Open(id string) {
	c.id = id
	c.open = true
	c.state = domain.Unfetched()
	c.viewport.GotoTop()
}

// Close hides the card
func (c *Card) Close() {
	c.open = false
	c.id = ""
}

// IsOpen reports whether the card is visible
func (c Card) IsOpen() bool {
	return c.open
}

// ID returns the identifier being shown
func (c Card) ID() string {
	return c.id
}

// State returns the last state handed to SetState
func (c Card) State() domain.FetchState {
	return c.state
}

// SetState updates the displayed state. The body is rebuilt only when the
// state actually changed so that the scroll position survives redraws.
func (c *Card) SetState(state domain.FetchState, favorite bool) {
	changed := !c.state.Equal(state) || c.favorite != favorite
	c.state = state
	c.favorite = favorite
	if changed && state.Status == domain.StatusResolved {
		c.viewport.SetContent(RenderPokemonBody(state.Record, c.contentWidth()))
	}
}

// SetSize sets the outer dimensions of the card
func (c *Card) SetSize(width, height int) {
	c.width = width
	c.height = height
	frameW, frameH := styles.CardStyle.GetFrameSize()
	c.viewport.Width = max(width-frameW, 10)
	// title, blank line and footer hint sit outside the viewport
	c.viewport.Height = max(height-frameH-3, 1)
	if c.state.Status == domain.StatusResolved {
		c.viewport.SetContent(RenderPokemonBody(c.state.Record, c.contentWidth()))
	}
}

// Update scrolls the card body
func (c *Card) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

// View renders the card. spinner is the current spinner frame.
func (c Card) View(spinner string) string {
	var title, body, hint string

	switch c.state.Status {
	case domain.StatusResolved:
		p := c.state.Record
		title = fmt.Sprintf("#%03d %s", p.ID, p.DisplayName())
		body = c.viewport.View()
		hint = "f favorite · j/k scroll · esc close"
	case domain.StatusFailed:
		title = strings.ToUpper(c.id)
		body = styles.ErrorStyle.Render(styles.FailedChar+" "+c.state.Err.Error()) + "\n\n" +
			styles.DimStyle.Render("press r to retry")
		hint = "r retry · f favorite · esc close"
	default:
		title = strings.ToUpper(c.id)
		body = spinner + " " + styles.DimStyle.Render("Loading...")
		hint = "esc close"
	}

	if c.favorite {
		title += " " + lipgloss.NewStyle().Foreground(styles.Yellow).Render(styles.FavoriteChar)
	}

	frameW, frameH := styles.CardStyle.GetFrameSize()
	content := styles.CardTitleStyle.Render(title) + "\n" + body + "\n" + styles.DimStyle.Render(hint)
	return styles.CardStyle.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(content)
}

func (c Card) contentWidth() int {
	frameW, _ := styles.CardStyle.GetFrameSize()
	return max(c.width-frameW, 20)
}

// RenderPokemonBody renders the scrollable part of a detail card
func RenderPokemonBody(p *domain.Pokemon, width int) string {
	if p == nil {
		return ""
	}
	var b strings.Builder

	badges := make([]string, len(p.Types))
	for i, t := range p.Types {
		badges[i] = styles.TypeBadge(t, domain.TypeColor(t))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n\n")

	b.WriteString(field("Height", fmt.Sprintf("%.1f m", p.HeightMeters())))
	b.WriteString(field("Weight", fmt.Sprintf("%.1f kg", p.WeightKilograms())))
	b.WriteString(field("Base exp", fmt.Sprintf("%d", p.BaseExperience)))
	if len(p.Abilities) > 0 {
		b.WriteString(field("Abilities", strings.Join(p.Abilities, ", ")))
	}
	if url := p.SpriteURL(); url != "" {
		b.WriteString(field("Artwork", styles.Truncate(url, max(width-16, 10))))
	}

	if len(p.Stats) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.TitleStyle.Render("Stats"))
		b.WriteString("\n")
		for _, s := range p.Stats {
			b.WriteString(styles.LabelStyle.Render(s.Name))
			b.WriteString(styles.RenderStatBar(s.Base, domain.MaxStatBar, statBarWidth))
			b.WriteString(fmt.Sprintf(" %3d\n", s.Base))
		}
		b.WriteString(styles.LabelStyle.Render("total"))
		b.WriteString(fmt.Sprintf("%d\n", p.StatTotal()))
	}

	if len(p.Moves) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Moves (%d)", len(p.Moves))))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(width, 20)).Render(strings.Join(p.Moves, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

func field(label, value string) string {
	return styles.LabelStyle.Render(label) + value + "\n"
}
