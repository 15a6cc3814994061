package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/pokedex/internal/catalog"
	"github.com/mmcdole/pokedex/internal/detail"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/favorites"
	"github.com/mmcdole/pokedex/internal/projection"
	"github.com/mmcdole/pokedex/internal/search"
	"github.com/mmcdole/pokedex/internal/tui/components"
	"github.com/mmcdole/pokedex/internal/tui/styles"
)

// Screen identifies a top-level tab
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenFavorites
	ScreenRoster
	ScreenBadges
	ScreenCenters
)

var screenNames = []string{"Search", "Favorites", "Ash", "Badges", "Centers"}

func (s Screen) String() string {
	if int(s) < len(screenNames) {
		return screenNames[s]
	}
	return "unknown"
}

// ParseScreen maps a config name to a screen, defaulting to search
func ParseScreen(name string) Screen {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "favorites", "favourites":
		return ScreenFavorites
	case "ash", "roster":
		return ScreenRoster
	case "badges", "gyms":
		return ScreenBadges
	case "centers", "hospital":
		return ScreenCenters
	default:
		return ScreenSearch
	}
}

// Layout
const (
	// header tabs + footer status line
	ChromeHeight = 2

	// split screens give the list this share of the width
	SplitListPercent = 40

	defaultPrefetchLimit = 4
	rosterTrainer        = "ash"
)

// Deps are the services the TUI drives
type Deps struct {
	Search    *search.Service
	Details   *detail.Resolver
	Favorites *favorites.Store
	Projector *projection.Projector
	Catalog   *catalog.Catalog

	HomeLatitude  float64
	HomeLongitude float64
	DefaultScreen Screen
	PrefetchLimit int
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	deps   Deps
	logger *slog.Logger

	screen   Screen
	ready    bool
	showHelp bool

	// Dimensions
	width  int
	height int

	// Search screen
	queryInput     textinput.Model
	species        []domain.SpeciesRef
	speciesLoading bool
	result         search.Result
	searchRows     []domain.SpeciesRef
	searchList     *components.List

	// Favorites screen
	favEntries []projection.Entry
	favList    *components.List

	// Roster screen
	roster           domain.Trainer
	rosterList       *components.List
	rosterPrefetched bool

	// Badge screen
	leaders   []domain.GymLeader
	badgeList *components.List

	// Hospital locator
	centers    []catalog.CenterDistance
	centerList *components.List

	card    components.Card
	spinner spinner.Model

	// Status line
	statusMsg   string
	statusIsErr bool
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.PrefetchLimit <= 0 {
		deps.PrefetchLimit = defaultPrefetchLimit
	}

	qi := textinput.New()
	qi.Placeholder = "name, e.g. pika"
	qi.Prompt = "search: "
	qi.PromptStyle = styles.FilterPromptStyle
	qi.TextStyle = styles.FilterStyle

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.SpinnerStyle),
	)

	m := Model{
		deps:           deps,
		logger:         logger,
		screen:         deps.DefaultScreen,
		queryInput:     qi,
		speciesLoading: true,
		searchList:     components.NewList("Species"),
		favList:        components.NewList("Favorites"),
		rosterList:     components.NewList("Ash's Pokémon"),
		badgeList:      components.NewList("Kanto Gym Leaders"),
		centerList:     components.NewList("Pokémon Centers"),
		card:           components.NewCard(),
		spinner:        sp,
	}
	m.searchList.SetEmptyText("Loading species...")
	m.favList.SetEmptyText("No favorites yet. Press f on any Pokémon.")

	if deps.Catalog != nil {
		if t, err := deps.Catalog.Trainer(rosterTrainer); err == nil {
			m.roster = t
			m.rosterList.SetTitle(t.Title)
			m.rosterList.SetItems(t.Roster)
		} else {
			logger.Error("failed to load roster", "error", err)
		}

		m.leaders = deps.Catalog.GymLeaders()
		labels := make([]string, len(m.leaders))
		for i, l := range m.leaders {
			labels[i] = l.Name
		}
		m.badgeList.SetItems(labels)

		m.centers = deps.Catalog.NearestCenters(deps.HomeLatitude, deps.HomeLongitude)
		labels = make([]string, len(m.centers))
		for i, c := range m.centers {
			labels[i] = c.Center.Address
		}
		m.centerList.SetItems(labels)
	}

	m.syncViews()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		LoadSpeciesCmd(m.deps.Search, false),
	}
	if m.screen == ScreenRoster {
		cmds = append(cmds, m.prefetchRoster())
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLayout()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKeyMsg(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case DispatchMsg:
		if msg.Fn != nil {
			msg.Fn()
		}

	case SpeciesLoadedMsg:
		m.species = msg.Refs
		m.speciesLoading = false
		m.searchList.SetEmptyText("No species")
		m.applyQuery()
		m.logger.Debug("species index ready", "count", len(msg.Refs), "cached", msg.Cached)

	case RosterPrefetchedMsg:
		if msg.Err != nil {
			m.logger.Warn("roster prefetch interrupted", "trainer", msg.Trainer, "error", msg.Err)
		}

	case ErrMsg:
		if msg.Context == "loading species index" {
			m.speciesLoading = false
			m.searchList.SetEmptyText("Species index unavailable. Press R to retry.")
		}
		m.statusMsg = msg.Error()
		m.statusIsErr = true
		cmds = append(cmds, ClearStatusCmd(5*time.Second))

	case StatusMsg:
		m.statusMsg = msg.Message
		m.statusIsErr = msg.IsError
		cmds = append(cmds, ClearStatusCmd(3*time.Second))

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
	}

	m.syncViews()
	return m, tea.Batch(cmds...)
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderView()
}

// handleKeyMsg routes a key press to the card, the search input, the help
// screen or the active list
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.card.IsOpen() {
		return m.handleCardKey(msg)
	}

	// Text entry owns the keyboard
	if m.screen == ScreenSearch && m.queryInput.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.queryInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.queryInput, cmd = m.queryInput.Update(msg)
		m.applyQuery()
		return m, cmd
	}
	if list := m.activeList(); list != nil && list.IsFilterTyping() {
		return m, list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, Keys.NextTab):
		return m.switchScreen((m.screen + 1) % Screen(len(screenNames)))
	case key.Matches(msg, Keys.PrevTab):
		return m.switchScreen((m.screen + Screen(len(screenNames)) - 1) % Screen(len(screenNames)))
	case key.Matches(msg, Keys.Search):
		return m.switchScreen(ScreenSearch)
	case key.Matches(msg, Keys.Favs):
		return m.switchScreen(ScreenFavorites)
	case key.Matches(msg, Keys.Roster):
		return m.switchScreen(ScreenRoster)
	case key.Matches(msg, Keys.Badges):
		return m.switchScreen(ScreenBadges)
	case key.Matches(msg, Keys.Centers):
		return m.switchScreen(ScreenCenters)
	case key.Matches(msg, Keys.Filter):
		if m.screen == ScreenSearch {
			m.queryInput.Focus()
			return m, textinput.Blink
		}
		if m.screen == ScreenFavorites || m.screen == ScreenRoster {
			m.activeList().StartFilter()
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(msg, Keys.Reload):
		if m.screen == ScreenSearch {
			m.speciesLoading = true
			m.searchList.SetEmptyText("Loading species...")
			return m, LoadSpeciesCmd(m.deps.Search, true)
		}
		return m, nil
	}

	if id, ok := m.selectedID(); ok {
		switch {
		case key.Matches(msg, Keys.Enter):
			m.openCard(id)
			return m, nil
		case key.Matches(msg, Keys.Favorite):
			return m, m.toggleFavorite(id)
		case key.Matches(msg, Keys.Remove):
			if m.deps.Favorites.Remove(id) {
				return m, statusCmd("Removed "+id+" from favorites", false)
			}
			return m, nil
		case key.Matches(msg, Keys.Retry):
			return m, m.retry(id)
		}
	}

	if key.Matches(msg, Keys.Escape) && m.screen == ScreenSearch && m.queryInput.Value() != "" {
		m.queryInput.SetValue("")
		m.applyQuery()
		return m, nil
	}

	if list := m.activeList(); list != nil {
		return m, list.Update(msg)
	}
	return m, nil
}

func (m Model) handleCardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.card.ID()
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Escape):
		m.card.Close()
		return m, nil
	case key.Matches(msg, Keys.Favorite):
		return m, m.toggleFavorite(id)
	case key.Matches(msg, Keys.Retry):
		return m, m.retry(id)
	}
	return m, m.card.Update(msg)
}

func (m Model) switchScreen(s Screen) (Model, tea.Cmd) {
	m.screen = s
	m.queryInput.Blur()
	m.updateLayout()
	if s == ScreenRoster && !m.rosterPrefetched {
		return m, m.prefetchRoster()
	}
	return m, nil
}

func (m *Model) prefetchRoster() tea.Cmd {
	if m.deps.Details == nil || len(m.roster.Roster) == 0 {
		return nil
	}
	m.rosterPrefetched = true
	return PrefetchRosterCmd(m.deps.Details, m.roster, m.deps.PrefetchLimit)
}

// openCard shows the detail card for id, starting a fetch if needed
func (m *Model) openCard(id string) {
	m.deps.Details.Ensure(id)
	m.card.Open(id)
	m.syncCard()
}

func (m *Model) toggleFavorite(id string) tea.Cmd {
	name := m.displayName(id)
	if m.deps.Favorites.Toggle(id) {
		return statusCmd("Added "+name+" to favorites", false)
	}
	return statusCmd("Removed "+name+" from favorites", false)
}

// retry refetches a Failed identifier. Other states are left alone.
func (m *Model) retry(id string) tea.Cmd {
	if m.deps.Details.Get(id).Status != domain.StatusFailed {
		return nil
	}
	m.deps.Details.Ensure(id)
	return statusCmd("Retrying "+id, false)
}

func statusCmd(message string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isErr}
	}
}

// selectedID returns the identifier under the cursor on the active screen
func (m Model) selectedID() (string, bool) {
	switch m.screen {
	case ScreenSearch:
		if i := m.searchList.SelectedIndex(); i >= 0 && i < len(m.searchRows) {
			return m.searchRows[i].ID, true
		}
	case ScreenFavorites:
		if i := m.favList.SelectedIndex(); i >= 0 && i < len(m.favEntries) {
			return m.favEntries[i].ID, true
		}
	case ScreenRoster:
		if i := m.rosterList.SelectedIndex(); i >= 0 && i < len(m.roster.Roster) {
			return m.roster.Roster[i], true
		}
	}
	return "", false
}

func (m Model) activeList() *components.List {
	switch m.screen {
	case ScreenSearch:
		return m.searchList
	case ScreenFavorites:
		return m.favList
	case ScreenRoster:
		return m.rosterList
	case ScreenBadges:
		return m.badgeList
	case ScreenCenters:
		return m.centerList
	}
	return nil
}

// applyQuery re-runs the species filter for the current query
func (m *Model) applyQuery() {
	m.result = search.Filter(m.queryInput.Value(), m.species)
	m.searchRows = m.result.Matches
	switch {
	case m.speciesLoading:
		m.searchList.SetTitle("Species")
	case len(m.result.Matches) == 0 && len(m.result.Suggestions) > 0:
		m.searchRows = m.result.Suggestions
		m.searchList.SetTitle(fmt.Sprintf("No match for %q. Did you mean:", m.result.Query))
	case m.result.Query != "":
		m.searchList.SetTitle(fmt.Sprintf("Species (%d/%d)", len(m.result.Matches), len(m.species)))
	default:
		m.searchList.SetTitle(fmt.Sprintf("Species (%d)", len(m.species)))
	}
	if !m.speciesLoading && len(m.searchRows) == 0 && m.result.Query != "" {
		m.searchList.SetEmptyText("No Pokémon match " + m.result.Query)
	}

	labels := make([]string, len(m.searchRows))
	for i, ref := range m.searchRows {
		labels[i] = ref.Name
	}
	m.searchList.SetItems(labels)
}

// syncViews pulls the latest favorites list and card state from the
// services. It runs after every message, on the update loop.
func (m *Model) syncViews() {
	if m.deps.Projector != nil {
		m.favEntries = m.deps.Projector.Current()
		labels := make([]string, len(m.favEntries))
		for i, e := range m.favEntries {
			labels[i] = m.entryLabel(e)
		}
		m.favList.SetItems(labels)
	}
	m.syncCard()
}

func (m *Model) syncCard() {
	if !m.card.IsOpen() || m.deps.Details == nil {
		return
	}
	id := m.card.ID()
	m.card.SetState(m.deps.Details.Get(id), m.deps.Favorites.Contains(id))
}

func (m Model) entryLabel(e projection.Entry) string {
	if e.State.Status == domain.StatusResolved && e.State.Record != nil {
		return e.State.Record.Name
	}
	return e.ID
}

// displayName prefers the resolved record name over the raw identifier
func (m Model) displayName(id string) string {
	if m.deps.Details != nil {
		if s := m.deps.Details.Get(id); s.Status == domain.StatusResolved && s.Record != nil {
			return s.Record.TitleName()
		}
	}
	return id
}

// updateLayout recalculates component sizes for the terminal
func (m *Model) updateLayout() {
	if !m.ready {
		return
	}
	bodyHeight := max(m.height-ChromeHeight, 3)
	listWidth := m.width
	if m.screen == ScreenBadges || m.screen == ScreenCenters {
		listWidth = m.width * SplitListPercent / 100
	}

	// search input takes one line above the list
	m.searchList.SetSize(m.width, bodyHeight-1)
	m.favList.SetSize(m.width, bodyHeight)
	m.rosterList.SetSize(m.width, bodyHeight)
	m.badgeList.SetSize(listWidth, bodyHeight)
	m.centerList.SetSize(listWidth, bodyHeight)

	m.card.SetSize(min(m.width, 72), bodyHeight)
}
