package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Scoreboard layout constants
const (
	maxMatches   = 100 // Max matches to load
	loadTimeout  = 5 * time.Second
	tableMargins = 8 // Header, tabs, help and borders
)

// StatsSource is where the scoreboard reads from: the local store or the
// HTTP API client.
type StatsSource interface {
	RecentMatches(ctx context.Context, limit int) ([]storage.Match, error)
	AllStats(ctx context.Context) ([]storage.UserStats, error)
}

type scoreboardTab int

const (
	tabLeaderboard scoreboardTab = iota
	tabMatches
)

func (t scoreboardTab) String() string {
	if t == tabMatches {
		return "Recent matches"
	}
	return "Leaderboard"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Reload  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Reload, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Reload, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch view"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the statistics screen.
type ScoreboardModel struct {
	source    StatsSource
	tab       scoreboardTab
	stats     []storage.UserStats
	matches   []storage.Match
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a scoreboard and loads its data.
func NewScoreboardModel(source StatsSource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source: source,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load fetches both views from the source.
func (m *ScoreboardModel) load() {
	m.stats, m.matches, m.loadErr = nil, nil, nil
	if m.source == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	if m.stats, m.loadErr = m.source.AllStats(ctx); m.loadErr != nil {
		return
	}
	m.matches, m.loadErr = m.source.RecentMatches(ctx, maxMatches)
}

// columns returns the table columns of the active view.
func (m *ScoreboardModel) columns() []table.Column {
	if m.tab == tabMatches {
		return []table.Column{
			{Title: "#", Width: 5},
			{Title: "Mode", Width: 6},
			{Title: "Players", Width: 28},
			{Title: "Score", Width: 7},
			{Title: "Time", Width: 6},
			{Title: "Date", Width: 12},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Nick", Width: 16},
		{Title: "GP", Width: 4},
		{Title: "W", Width: 4},
		{Title: "L", Width: 4},
		{Title: "GF", Width: 4},
		{Title: "GA", Width: 4},
		{Title: "Saves", Width: 6},
		{Title: "Streak", Width: 7},
		{Title: "Best", Width: 5},
	}
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-tableMargins, 3)),
	)

	// Table styles
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
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded data.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.tab == tabMatches {
		for _, match := range m.matches {
			rows = append(rows, matchRow(match))
		}
	} else {
		for i, st := range m.stats {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				st.Nick,
				fmt.Sprint(st.GamesPlayed),
				fmt.Sprint(st.Wins),
				fmt.Sprint(st.Losses),
				fmt.Sprint(st.GoalsScored),
				fmt.Sprint(st.GoalsReceived),
				fmt.Sprint(st.Saves),
				fmt.Sprint(st.WinStreak),
				fmt.Sprint(st.BestStreak),
			})
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// matchRow formats one match. Seat names come from the details when the
// match carried them, ids otherwise.
func matchRow(match storage.Match) table.Row {
	mode := "1v1"
	players := fmt.Sprintf("%s vs %s", playerLabel(match.Player1ID), playerLabel(match.Player2ID))
	score := fmt.Sprintf("%d-%d", match.ScoreP1, match.ScoreP2)

	if d := match.Details; d != nil && len(d.Players) > 0 {
		mode = string(d.Mode)
		names := make([]string, len(d.Players))
		scores := make([]string, len(d.Players))
		for i, p := range d.Players {
			names[i] = p.Name
			if p.Winner {
				names[i] += "*"
			}
			scores[i] = fmt.Sprint(p.Score)
		}
		players = strings.Join(names, " vs ")
		score = strings.Join(scores, "-")
	}

	d := time.Duration(match.DurationSeconds) * time.Second
	return table.Row{
		fmt.Sprint(match.ID),
		mode,
		players,
		score,
		fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60),
		match.CreatedAt.Format("Jan 02 15:04"),
	}
}

func playerLabel(id *int64) string {
	if id == nil {
		return "guest"
	}
	return fmt.Sprintf("#%d", *id)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.load()
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("PONG STATS"), m.width))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, 2)
	for i, t := range []scoreboardTab{tabLeaderboard, tabMatches} {
		if t == m.tab {
			tabs[i] = activeTabStyle.Render(t.String())
		} else {
			tabs[i] = tabStyle.Render(t.String())
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanation.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.source == nil:
		return emptyStyle.Render("No database configured.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load stats:\n" + m.loadErr.Error())
	case m.tab == tabMatches && len(m.matches) == 0:
		return emptyStyle.Render("No matches recorded yet.\nPlay a game to fill this table!")
	case m.tab == tabLeaderboard && len(m.stats) == 0:
		return emptyStyle.Render("No players registered yet.\nPass --p1 to play under a nick.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(source StatsSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(source, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
