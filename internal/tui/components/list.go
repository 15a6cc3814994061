package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/pokedex/internal/search"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

// Layout constants for lists
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// RowRenderer draws the item at index (into the unfiltered items) as one line.
// matched holds the rune positions hit by the active filter, if any.
type RowRenderer func(index int, selected bool, width int, matched []int) string

// List is a scrollable, optionally filterable list of rows. It only tracks
// selection; the owner supplies the row text and a renderer.
type List struct {
	title  string
	labels []string // filter text per row

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	emptyText string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filtered     []search.Match // nil when no query is applied
}

// NewList creates a list with the given title
func NewList(title string) *List {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &List{
		title:       title,
		filterInput: ti,
		emptyText:   "No items",
		focused:     true,
	}
}

// SetItems replaces the row labels, keeping the cursor in range and
// re-applying any active filter
func (l *List) SetItems(labels []string) {
	l.labels = labels
	if l.filterQuery != "" {
		l.applyFilter(false)
	}
	l.clampCursor()
}

// SetTitle sets the header text
func (l *List) SetTitle(title string) {
	l.title = title
}

// SetEmptyText sets the text shown when there are no rows
func (l *List) SetEmptyText(text string) {
	l.emptyText = text
}

// SetSize sets the outer dimensions including the border
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SetFocused sets whether the list has focus
func (l *List) SetFocused(focused bool) {
	l.focused = focused
}

// Update handles navigation and filter keys
func (l *List) Update(msg tea.Msg) tea.Cmd {
	// Filter input has the keyboard while typing
	if l.filterActive && l.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				l.clearFilter()
				return nil
			case "enter":
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.clearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter(true)
		return cmd
	}

	if l.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				l.clearFilter()
				return nil
			case "/":
				l.filterInput.Focus()
				return nil
			}
		}
	}

	count := l.Len()
	if count == 0 {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			if l.cursor < count-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "k", "up":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "g", "home":
			l.cursor = 0
			l.offset = 0
		case "G", "end":
			l.cursor = count - 1
			l.ensureVisible()
		case "ctrl+d", "pgdown":
			l.cursor += max(l.maxVisible/2, 1)
			if l.cursor >= count {
				l.cursor = count - 1
			}
			l.ensureVisible()
		case "ctrl+u", "pgup":
			l.cursor -= max(l.maxVisible/2, 1)
			if l.cursor < 0 {
				l.cursor = 0
			}
			l.ensureVisible()
		}
	}
	return nil
}

// View renders the list inside its border
func (l *List) View(render RowRenderer) string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent(render))
}

// Len returns the number of visible rows (after filtering)
func (l *List) Len() int {
	if l.filtered != nil {
		return len(l.filtered)
	}
	return len(l.labels)
}

// SelectedIndex returns the selected row as an index into the unfiltered
// items, or -1 when the list is empty
func (l *List) SelectedIndex() int {
	if l.Len() == 0 {
		return -1
	}
	return l.mapIndex(l.cursor)
}

// Select moves the cursor to the row for the unfiltered index
func (l *List) Select(index int) {
	for i := 0; i < l.Len(); i++ {
		if l.mapIndex(i) == index {
			l.cursor = i
			l.ensureVisible()
			return
		}
	}
}

// StartFilter activates the filter input
func (l *List) StartFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (l *List) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (l *List) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// FilterQuery returns the applied filter text
func (l *List) FilterQuery() string {
	return l.filterQuery
}

// ClearFilter deactivates the filter and shows all rows
func (l *List) ClearFilter() {
	l.clearFilter()
}

func (l *List) recalcMaxVisible() {
	// Reserve space for: title line + scroll indicators (header + footer)
	interiorHeight := l.height - BorderHeight
	l.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *List) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *List) clampCursor() {
	count := l.Len()
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.offset > l.cursor {
		l.offset = l.cursor
	}
	l.ensureVisible()
}

func (l *List) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filtered = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clampCursor()
}

func (l *List) applyFilter(resetCursor bool) {
	l.filterQuery = l.filterInput.Value()
	if strings.TrimSpace(l.filterQuery) == "" {
		l.filtered = nil
		return
	}

	l.filtered = search.FuzzyFind(l.filterQuery, l.labels)
	if l.filtered == nil {
		l.filtered = []search.Match{}
	}

	if resetCursor {
		l.cursor = 0
		l.offset = 0
	}
}

func (l *List) mapIndex(i int) int {
	if l.filtered != nil && i < len(l.filtered) {
		return l.filtered[i].Index
	}
	return i
}

func (l *List) matchedAt(i int) []int {
	if l.filtered != nil && i < len(l.filtered) {
		return l.filtered[i].MatchedIndexes
	}
	return nil
}

// Rendering

func (l *List) renderContent(render RowRenderer) string {
	itemWidth := l.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	count := l.Len()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(l.emptyText)
		if l.filterActive && l.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg + "\n "
		if l.filterActive {
			content += "\n" + l.renderFilterBar()
		}
		return content
	}

	end := l.offset + l.maxVisible
	if end > count {
		end = count
	}

	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, render(l.mapIndex(i), i == l.cursor && l.focused, itemWidth, l.matchedAt(i)))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar()
	}
	return content
}

func (l *List) renderFilterBar() string {
	input := l.filterInput.View()
	countStr := ""
	if l.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.Len(), len(l.labels)))
	}
	return input + countStr
}
