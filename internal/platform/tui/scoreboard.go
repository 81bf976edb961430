package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blightsong/internal/registry"
	"github.com/vovakirdan/blightsong/internal/storage"
)

const (
	maxScores = 100
	maxRuns   = 50

	// chrome is the number of rows around the table: title, tabs, stats,
	// detail, help and borders.
	chrome = 11
)

// boardView selects what the table lists.
type boardView int

const (
	viewHighScores boardView = iota
	viewRecentRuns
	viewLongestRuns
	boardViews
)

func (v boardView) String() string {
	switch v {
	case viewRecentRuns:
		return "Recent runs"
	case viewLongestRuns:
		return "Longest survivals"
	default:
		return "High scores"
	}
}

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("93"))
	boardTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	View     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.View, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevGame}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down", "scroll")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l", "d"), key.WithHelp("tab", "game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h", "a"), key.WithHelp("S-tab", "prev game")),
		View:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows high scores and run history per game.
type ScoreboardModel struct {
	games     []registry.GameInfo
	game      int
	view      boardView
	store     *storage.Store
	stats     *storage.GameStats
	scores    []storage.ScoreEntry
	runs      []storage.Run
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. The store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// gameID returns the selected game, or "" when nothing is registered.
func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.game].ID
}

// reload queries the store for the current game and view and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.stats, m.scores, m.runs = nil, nil, nil
	id := m.gameID()
	if m.store != nil && id != "" {
		if st, err := m.store.GetGameStats(id); err == nil {
			m.stats = st
		}
		switch m.view {
		case viewHighScores:
			m.scores, _ = m.store.TopScores(id, maxScores)
		case viewRecentRuns:
			m.runs, _ = m.store.RecentRuns(id, maxRuns)
		case viewLongestRuns:
			m.runs, _ = m.store.LongestRuns(id, maxRuns)
		}
	}

	columns, rows := m.tableData()
	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chrome, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

// tableData returns columns and rows for the current view.
func (m ScoreboardModel) tableData() ([]table.Column, []table.Row) {
	if m.view == viewHighScores {
		columns := []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 14},
		}
		rows := make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprint(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return columns, rows
	}

	columns := []table.Column{
		{Title: "Score", Width: 6},
		{Title: "Notes", Width: 5},
		{Title: "Blight", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "End", Width: 9},
		{Title: "Player", Width: 12},
	}
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Notes),
			fmt.Sprint(r.Corrupted),
			formatDuration(r.Duration),
			r.EndReason,
			r.Player,
		}
	}
	return columns, rows
}

// selectedRun returns the run under the table cursor in the run views.
func (m ScoreboardModel) selectedRun() (storage.Run, bool) {
	if m.view == viewHighScores {
		return storage.Run{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.cycleGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.cycleGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.View):
			m.view = (m.view + 1) % boardViews
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-chrome, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycleGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.game = (m.game + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(boardTitleStyle, strings.ToUpper(m.view.String()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerStyled(menuDimStyle, m.statsLine(), m.width))
	b.WriteString("\n")

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = boardEmptyStyle.Render("Nothing recorded yet.\nGather some notes and outlast the blight!")
	}
	for _, line := range strings.Split(boardFrameStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if r, ok := m.selectedRun(); ok {
		b.WriteString(centerStyled(menuDimStyle, runDetail(r), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerStyled(menuDimStyle, m.help.View(m.keys), m.width))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.game {
			tabs[i] = boardActiveStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width && len(m.games) > 0 {
		return fmt.Sprintf("< %s >", m.games[m.game].Title)
	}
	return line
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No scores yet"
	}
	return fmt.Sprintf("Games %d  Best %d  Avg %.0f  Last played %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// runDetail describes the fields of r the table has no room for.
func runDetail(r storage.Run) string {
	return fmt.Sprintf("Run %s  Seed %d  Performed %d  %s",
		shortID(r.RunID), r.Seed, r.Performed, r.CreatedAt.Format("Jan 02 15:04"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatDuration renders seconds as m:ss.
func formatDuration(secs float64) string {
	total := int(secs)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// It returns true when the user wants to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
