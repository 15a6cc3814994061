package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/projection"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

func (m Model) renderView() string {
	bodyHeight := max(m.height-ChromeHeight, 3)

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.card.IsOpen():
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Top,
			m.card.View(m.spinner.View()))
	default:
		body = m.renderScreen()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		m.renderFooter(),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(screenNames))
	for i, name := range screenNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Screen(i) == m.screen {
			tabs[i] = styles.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = styles.TabStyle.Render(label)
		}
	}
	return styles.AccentStyle.Render(" Pokédex ") + strings.Join(tabs, "")
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		if m.statusIsErr {
			return styles.ErrorStyle.Render(styles.Truncate(m.statusMsg, m.width))
		}
		return styles.SuccessStyle.Render(styles.Truncate(m.statusMsg, m.width))
	}

	counts := projection.Counts(m.favEntries)
	summary := fmt.Sprintf("%d favorites", len(m.favEntries))
	if n := counts[domain.StatusPending]; n > 0 {
		summary += fmt.Sprintf(" · %d loading", n)
	}
	if n := counts[domain.StatusFailed]; n > 0 {
		summary += fmt.Sprintf(" · %d failed", n)
	}
	hint := "? help · q quit"
	gap := max(m.width-lipgloss.Width(summary)-lipgloss.Width(hint), 1)
	return styles.DimStyle.Render(summary + strings.Repeat(" ", gap) + hint)
}

func (m Model) renderScreen() string {
	switch m.screen {
	case ScreenSearch:
		return m.queryInput.View() + "\n" + m.searchList.View(m.renderSpeciesRow)
	case ScreenFavorites:
		return m.favList.View(m.renderFavoriteRow)
	case ScreenRoster:
		return m.rosterList.View(m.renderRosterRow)
	case ScreenBadges:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.badgeList.View(m.renderLeaderRow),
			m.renderLeaderPanel(),
		)
	case ScreenCenters:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.centerList.View(m.renderCenterRow),
			m.renderCenterPanel(),
		)
	}
	return ""
}

// Row renderers

func (m Model) renderSpeciesRow(index int, selected bool, width int, _ []int) string {
	ref := m.searchRows[index]
	return m.renderIDRow(ref.ID, ref.Label(), selected, width, nil)
}

func (m Model) renderFavoriteRow(index int, selected bool, width int, matched []int) string {
	e := m.favEntries[index]
	return m.renderStateRow(e.ID, m.entryLabel(e), e.State, selected, width, matched)
}

func (m Model) renderRosterRow(index int, selected bool, width int, matched []int) string {
	id := m.roster.Roster[index]
	return m.renderIDRow(id, id, selected, width, matched)
}

// renderIDRow renders a row for an identifier using its current cache state
func (m Model) renderIDRow(id, label string, selected bool, width int, matched []int) string {
	state := domain.Unfetched()
	if m.deps.Details != nil {
		state = m.deps.Details.Get(id)
	}
	return m.renderStateRow(id, label, state, selected, width, matched)
}

// renderStateRow draws one Pokémon row: status glyph, name, favorite star and
// the type list or failure reason
func (m Model) renderStateRow(id, label string, state domain.FetchState, selected bool, width int, matched []int) string {
	yellow := styles.Yellow
	dim := styles.DimGray
	red := styles.Red
	green := styles.Green

	var glyph string
	var glyphFg *lipgloss.Color
	var detail string
	var detailFg *lipgloss.Color

	switch state.Status {
	case domain.StatusPending:
		glyph = m.spinner.View()
		detail = "loading"
		detailFg = &dim
	case domain.StatusFailed:
		glyph = styles.FailedChar
		glyphFg = &red
		detail = state.Err.Error() + " · r to retry"
		detailFg = &red
	case domain.StatusResolved:
		glyph = styles.ResolvedChar
		glyphFg = &green
		detail = strings.Join(state.Record.Types, "/")
	default:
		glyph = " "
	}

	text := label
	prefix := ""
	if state.Status == domain.StatusResolved {
		text = state.Record.TitleName()
		prefix = fmt.Sprintf("#%03d ", state.Record.ID)
	}
	if len(matched) > 0 && !selected {
		text = styles.HighlightMatches(text, matched)
	}
	text = prefix + text

	star := "  "
	if m.deps.Favorites != nil && m.deps.Favorites.Contains(id) {
		star = " " + styles.FavoriteChar
	}

	parts := []styles.RowPart{
		{Text: glyph, Foreground: glyphFg},
		{Text: star, Foreground: &yellow},
		{Text: " " + text},
	}
	if detail != "" {
		used := lipgloss.Width(glyph) + lipgloss.Width(star) + 1 + lipgloss.Width(text) + 4
		if room := width - used; room > 3 {
			parts = append(parts, styles.RowPart{Text: "  " + styles.Truncate(detail, room), Foreground: detailFg})
		}
	}
	return styles.RenderListRow(parts, selected, width)
}

func (m Model) renderLeaderRow(index int, selected bool, width int, _ []int) string {
	l := m.leaders[index]
	color := lipgloss.Color(l.Color)
	parts := []styles.RowPart{
		{Text: fmt.Sprintf("%d", l.ID), Foreground: &color},
		{Text: " " + styles.Truncate(l.Name, max(width-6, 4))},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (m Model) renderCenterRow(index int, selected bool, width int, _ []int) string {
	c := m.centers[index]
	dist := fmt.Sprintf("%.1f km", c.DistanceKm)
	red := styles.DexRed
	parts := []styles.RowPart{
		{Text: dist, Foreground: &red},
		{Text: " " + styles.Truncate(c.Center.Address, max(width-lipgloss.Width(dist)-4, 4))},
	}
	return styles.RenderListRow(parts, selected, width)
}

// Side panels

func (m Model) panelSize() (int, int) {
	listWidth := m.width * SplitListPercent / 100
	return max(m.width-listWidth, 20), max(m.height-ChromeHeight, 3)
}

func (m Model) renderLeaderPanel() string {
	i := m.badgeList.SelectedIndex()
	if i < 0 || i >= len(m.leaders) {
		return ""
	}
	l := m.leaders[i]
	width, height := m.panelSize()

	var b strings.Builder
	b.WriteString(styles.CardTitleStyle.Render(l.Name))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(l.Title))
	b.WriteString("\n\n")
	b.WriteString(styles.LabelStyle.Render("Badge") + l.Badge + "\n")
	b.WriteString(styles.LabelStyle.Render("City") + l.City + "\n")
	b.WriteString(styles.LabelStyle.Render("Specialty") +
		styles.TypeBadge(l.Specialty, domain.TypeColor(strings.ToLower(l.Specialty))) + "\n")
	b.WriteString(styles.LabelStyle.Render("Tint") + l.LightColor() + "\n\n")
	b.WriteString(styles.TitleStyle.Render("Team"))
	b.WriteString("\n")
	for _, name := range l.Pokemon {
		b.WriteString("  " + domain.Capitalize(name) + "\n")
	}

	frameW, frameH := styles.CardStyle.GetFrameSize()
	return styles.CardStyle.
		BorderForeground(lipgloss.Color(l.Color)).
		Width(max(width-frameW, 0)).
		Height(max(height-frameH, 0)).
		Render(b.String())
}

func (m Model) renderCenterPanel() string {
	i := m.centerList.SelectedIndex()
	if i < 0 || i >= len(m.centers) {
		return ""
	}
	c := m.centers[i]
	width, height := m.panelSize()

	var b strings.Builder
	b.WriteString(styles.CardTitleStyle.Render(c.Center.Title))
	b.WriteString("\n")
	b.WriteString(styles.LabelStyle.Render("Address") + c.Center.Address + "\n")
	b.WriteString(styles.LabelStyle.Render("Distance") + fmt.Sprintf("%.2f km", c.DistanceKm) + "\n")
	b.WriteString(styles.LabelStyle.Render("Coordinates") +
		fmt.Sprintf("%.5f, %.5f", c.Center.Latitude, c.Center.Longitude) + "\n")
	b.WriteString(styles.LabelStyle.Render("From") +
		fmt.Sprintf("%.4f, %.4f", m.deps.HomeLatitude, m.deps.HomeLongitude) + "\n")
	if c.Center.Image != "" {
		b.WriteString(styles.LabelStyle.Render("Photo") +
			styles.Truncate(c.Center.Image, max(width-22, 10)) + "\n")
	}

	frameW, frameH := styles.CardStyle.GetFrameSize()
	return styles.CardStyle.
		Width(max(width-frameW, 0)).
		Height(max(height-frameH, 0)).
		Render(b.String())
}

func (m Model) renderHelp() string {
	var lines []string
	lines = append(lines, styles.CardTitleStyle.Render("Keys"))
	for _, b := range helpBindings() {
		h := b.Help()
		lines = append(lines, styles.HelpKeyStyle.Render(styles.Pad(h.Key, 10))+styles.HelpDescStyle.Render(h.Desc))
	}
	lines = append(lines, "", styles.DimStyle.Render("press any key to close"))
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}
