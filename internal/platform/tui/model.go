package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/audio"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// Options wires the optional collaborators of a game session.
type Options struct {
	Store  *storage.Store // nil disables run recording
	Audio  *audio.Player  // nil plays nothing
	Logger *log.Logger    // nil discards
	Player string         // name recorded with each run
}

// runRecord tracks the run currently being played for storage.
type runRecord struct {
	id      string
	elapsed time.Duration
	saved   bool
}

func newRunRecord() runRecord {
	return runRecord{id: storage.NewRunID()}
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	help       help.Model
	showHelp   bool
	inputFrame core.InputFrame
	hold       moveHold
	gameState  core.GameState
	run        runRecord
	clock      func() time.Time
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = true

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		run:        newRunRecord(),
		clock:      time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.saveRun()
		return m, tea.Quit
	}

	switch {
	case action.IsMove():
		m.hold.press(action, m.clock())
	case action == core.ActionRestart && !m.gameState.GameOver:
		// Restart only ends a finished run.
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the run going when the game supports it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick runs one simulation step with the buffered input.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.run = newRunRecord()
		m.hold.release()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickDuration())
	}

	if a := m.hold.active(now); a != core.ActionNone {
		m.inputFrame.Set(a)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !result.State.Paused && !result.State.GameOver {
		m.run.elapsed += m.config.TickDuration()
	}

	if m.opts.Audio != nil {
		m.opts.Audio.Play(result.Cues)
	}
	m.recordCues(result.Cues)

	if m.gameState.GameOver {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickDuration())
}

// recordCues stores stage clear times.
func (m *Model) recordCues(cues []core.Cue) {
	for _, c := range cues {
		if c.Name != "stage_cleared" {
			continue
		}
		m.opts.Logger.Debug("stage cleared", "run", m.run.id, "stage", c.Level, "elapsed", c.Elapsed)
		if m.opts.Store == nil {
			continue
		}
		if err := m.opts.Store.SaveStageClear(m.run.id, c.Level, c.Elapsed); err != nil {
			m.opts.Logger.Warn("could not save stage clear", "err", err)
		}
	}
}

// saveRun records the current run once. Runs that never scored are
// skipped.
func (m *Model) saveRun() {
	if m.run.saved || m.gameState.Score <= 0 {
		return
	}
	m.run.saved = true
	m.opts.Logger.Info("run finished",
		"run", m.run.id,
		"score", m.gameState.Score,
		"stage", m.gameState.Level,
		"victory", m.gameState.Victory,
	)
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		RunID:    m.run.id,
		Player:   m.opts.Player,
		Score:    m.gameState.Score,
		Stage:    m.gameState.Level,
		Victory:  m.gameState.Victory,
		Duration: m.run.elapsed,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".bomber", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if !m.showHelp {
		return out
	}

	// The help block replaces the bottom rows of the map.
	lines := strings.Split(out, "\n")
	helpLines := strings.Split(m.help.View(m.keys.Keys), "\n")
	if len(helpLines) < len(lines) {
		lines = append(lines[:len(lines)-len(helpLines)], helpLines...)
	}
	return strings.Join(lines, "\n")
}

// GameState returns the state reported by the last step.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
