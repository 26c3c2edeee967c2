package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewList is the paginated course list
	ViewList ViewType = iota
	// ViewDetail shows one course with its modules, tasks, and exams
	ViewDetail
	// ViewHelp is the help screen
	ViewHelp
)

// Model represents the course browser state
type Model struct {
	ctx      context.Context
	client   *api.Client
	cache    *courses.Cache
	searcher *courses.Searcher[api.Course]
	searchCh chan searchResultMsg

	// Collection state
	pager         *courses.Pager
	searchQuery   string
	searchResults []courses.Entry
	detail        *courses.Detail
	detailEntry   courses.Entry
	detailSeq     uint64

	// UI state
	currentView ViewType
	searchInput textinput.Model
	spin        spinner.Model
	cursor      int
	width       int
	height      int
	ready       bool
	loading     bool
	quitting    bool
	lastError   string

	styles Styles
}

// NewModel creates a course browser over the given cache
func NewModel(ctx context.Context, client *api.Client, cache *courses.Cache, debounce time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "search courses by title"
	input.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	searchCh := make(chan searchResultMsg, 8)
	searcher := courses.NewSearcher(client.SearchCourses, debounce, func(query string, results []api.Course, err error) {
		searchCh <- searchResultMsg{Query: query, Results: results, Err: err}
	})

	return Model{
		ctx:         ctx,
		client:      client,
		cache:       cache,
		searcher:    searcher,
		searchCh:    searchCh,
		pager:       courses.NewPager(courses.DefaultPageSize),
		currentView: ViewList,
		searchInput: input,
		spin:        spin,
		loading:     true,
		styles:      DefaultStyles(),
	}
}

// Init starts the initial reload and the search listener (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.reloadCmd(), m.waitForSearch())
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case coursesReloadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.lastError = msg.Err.Error()
		} else {
			m.lastError = ""
		}
		m.clampCursor()
		return m, nil

	case searchResultMsg:
		// A response for anything other than the current input text belongs
		// to a search the user already typed past or dismissed.
		if msg.Query != m.searchInput.Value() {
			return m, m.waitForSearch()
		}
		if msg.Err != nil {
			m.lastError = msg.Err.Error()
		} else {
			m.lastError = ""
			m.searchQuery = msg.Query
			m.searchResults = toEntries(msg.Results)
			m.pager.SetFilter("search:" + msg.Query)
			m.clampCursor()
		}
		return m, m.waitForSearch()

	case detailLoadedMsg:
		// Only the most recently opened course may render.
		if msg.Seq != m.detailSeq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.lastError = msg.Err.Error()
			return m, nil
		}
		m.lastError = ""
		m.detail = msg.Detail
		m.currentView = ViewDetail
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the browser (required by Bubble Tea)
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.quitting {
		return ""
	}

	switch m.currentView {
	case ViewList:
		return m.renderList()
	case ViewDetail:
		return m.renderDetail()
	case ViewHelp:
		return m.renderHelp()
	default:
		return "Unknown view"
	}
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// While the search input is focused, keys go to it; every edit
	// schedules a debounced query.
	if m.searchInput.Focused() {
		switch msg.String() {
		case "esc":
			m.searcher.Cancel()
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.searchQuery = ""
			m.searchResults = nil
			m.pager.SetFilter("")
			m.clampCursor()
			return m, nil
		case "enter":
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.searcher.Search(m.ctx, m.searchInput.Value())
			return m, cmd
		}
	}

	if m.currentView == ViewDetail {
		switch msg.String() {
		case "esc", "q":
			m.currentView = ViewList
			m.detail = nil
			m.detailSeq++
		}
		return m, nil
	}

	if m.currentView == ViewHelp {
		m.currentView = ViewList
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.currentView = ViewHelp

	case "/":
		m.searchInput.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		m.cursor++
		m.clampCursor()

	case "left", "h":
		m.pager.Prev()
		m.clampCursor()

	case "right", "l":
		m.pager.Next(len(m.visibleEntries()))
		m.clampCursor()

	case "f":
		if entry, ok := m.selected(); ok {
			if _, err := m.cache.ToggleFavorite(entry.ID); err != nil {
				m.lastError = err.Error()
			}
		}

	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.reloadCmd())

	case "enter":
		if entry, ok := m.selected(); ok {
			m.detailEntry = entry
			m.detailSeq++
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.loadDetailCmd(entry.ID, m.detailSeq))
		}
	}

	return m, nil
}

// visibleEntries returns the collection the list view pages over: search
// results when a query is active, otherwise the full cached collection.
func (m Model) visibleEntries() []courses.Entry {
	if m.searchQuery != "" {
		return m.searchResults
	}
	return m.cache.Snapshot()
}

// selected returns the entry under the cursor on the current page
func (m Model) selected() (courses.Entry, bool) {
	page := m.pager.Slice(m.visibleEntries())
	if m.cursor < 0 || m.cursor >= len(page) {
		return courses.Entry{}, false
	}
	return page[m.cursor], true
}

func (m *Model) clampCursor() {
	page := m.pager.Slice(m.visibleEntries())
	if m.cursor >= len(page) {
		m.cursor = len(page) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		return coursesReloadedMsg{Err: m.cache.Reload(m.ctx)}
	}
}

func (m Model) loadDetailCmd(courseID string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		detail := courses.NewDetail(m.client, courseID)
		if err := detail.Load(m.ctx); err != nil {
			return detailLoadedMsg{Seq: seq, Err: err}
		}
		return detailLoadedMsg{Seq: seq, Detail: detail}
	}
}

// waitForSearch re-arms the listener that turns searcher callbacks into
// Bubble Tea messages.
func (m Model) waitForSearch() tea.Cmd {
	return func() tea.Msg {
		return <-m.searchCh
	}
}

func toEntries(results []api.Course) []courses.Entry {
	entries := make([]courses.Entry, len(results))
	for i, c := range results {
		entries[i] = courses.Entry{Course: c}
	}
	return entries
}

// Messages emitted by background work

// coursesReloadedMsg indicates a collection reload finished
type coursesReloadedMsg struct {
	Err error
}

// searchResultMsg carries the results of the latest live search
type searchResultMsg struct {
	Query   string
	Results []api.Course
	Err     error
}

// detailLoadedMsg indicates a course detail fetch finished. Seq identifies
// which open request the result belongs to.
type detailLoadedMsg struct {
	Seq    uint64
	Detail *courses.Detail
	Err    error
}
