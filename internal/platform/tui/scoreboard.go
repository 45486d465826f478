package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the run details sidebar
	sidebarWidth       = 26  // Width of the sidebar
	maxRuns            = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top}, {k.Quit}}
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
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "best run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	store       *storage.Store
	runs        []storage.Run
	stats       *storage.Stats
	clears      []storage.StageClear
	best        map[int]time.Duration // fastest clear per stage across runs
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	loadErr     error
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model and loads the runs.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with columns fitted to the width.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Stage", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	used := 0
	for _, c := range columns[:len(columns)-1] {
		used += c.Width + 2
	}
	if rest := tableWidth - used; rest > 12 {
		columns[3].Width += min(rest-12, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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
	t.SetStyles(s)

	return t
}

// loadRuns reads the best runs and the aggregate stats.
func (m *ScoreboardModel) loadRuns() {
	m.runs, m.stats, m.loadErr, m.best = nil, nil, nil, nil
	if m.store != nil {
		runs, err := m.store.TopRuns(maxRuns)
		if err != nil {
			m.loadErr = err
		} else {
			m.runs = runs
		}
		if stats, err := m.store.GetStats(); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
	m.loadClears()
}

// loadClears reads the stage clears of the selected run.
func (m *ScoreboardModel) loadClears() {
	m.clears = nil
	if m.store == nil || len(m.runs) == 0 {
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return
	}
	clears, err := m.store.StageClears(m.runs[i].RunID)
	if err != nil {
		return
	}
	m.clears = clears
	if m.best == nil {
		m.best = make(map[int]time.Duration)
	}
	for _, c := range clears {
		if _, ok := m.best[c.Stage]; ok {
			continue
		}
		if best, ok, err := m.store.BestClear(c.Stage); err == nil && ok {
			m.best[c.Stage] = best
		}
	}
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		stage := fmt.Sprintf("%d", r.Stage)
		if r.Victory {
			stage += "*"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			stage,
			r.Player,
			formatDuration(r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
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

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			m.loadClears()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadClears()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.loadClears()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("BOMBER - BEST RUNS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderSidebar())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", sidebar))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar shows the totals and the selected run's stage clears.
func (m ScoreboardModel) renderSidebar() string {
	var b strings.Builder
	bold := lipgloss.NewStyle().Bold(true)

	b.WriteString(bold.Render("Totals"))
	b.WriteString("\n")
	if m.stats != nil {
		fmt.Fprintf(&b, "Runs       %d\n", m.stats.RunsCount)
		fmt.Fprintf(&b, "Best       %d\n", m.stats.HighScore)
		fmt.Fprintf(&b, "Average    %.0f\n", m.stats.AvgScore)
		fmt.Fprintf(&b, "Top stage  %d\n", m.stats.BestStage)
		fmt.Fprintf(&b, "Victories  %d\n", m.stats.Victories)
	}

	b.WriteString("\n")
	b.WriteString(bold.Render("Stage clears"))
	b.WriteString("\n")
	if len(m.clears) == 0 {
		b.WriteString("none\n")
	}
	for _, c := range m.clears {
		fmt.Fprintf(&b, "%2d  %s", c.Stage, formatDuration(c.Elapsed))
		if best, ok := m.best[c.Stage]; ok && best < c.Elapsed {
			fmt.Fprintf(&b, " (best %s)", formatDuration(best))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsQuitting returns true once the user closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store *storage.Store, width, height int) error {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// centerText centers each line of text within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if pad := (width - lipgloss.Width(line)) / 2; pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
