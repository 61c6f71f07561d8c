package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// chromeLines is the space under the playfield: HUD and help.
const chromeLines = 2

// Options configure Run.
type Options struct {
	HoldMs    int // how long a key stays held after its last press
	SkipTitle bool
	Logger    *log.Logger
}

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game     registry.Game
	renderer *TerminalRenderer
	config   core.RuntimeConfig
	logger   *log.Logger

	keys KeyMap
	help help.Model
	held *heldKeys

	fixedSeed bool
	playing   bool
	gameState core.GameState
	width     int
	quitting  bool
	err       error
}

// NewModel creates a model for game. The renderer must be the one the
// game's scenes draw into.
func NewModel(game registry.Game, renderer *TerminalRenderer, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hold := time.Duration(opts.HoldMs) * time.Millisecond
	renderer.Resize(cfg.ScreenW, max(cfg.ScreenH-chromeLines, 1))

	return Model{
		game:      game,
		renderer:  renderer,
		config:    cfg,
		logger:    logger.WithPrefix("tui"),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		held:      newHeldKeys(hold),
		fixedSeed: cfg.Seed != 0,
		width:     cfg.ScreenW,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
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

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if !m.playing {
		if key.Matches(msg, m.keys.Start, m.keys.Fire) {
			return m.start()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Pause):
		m.game.TogglePause()
		m.held.reset()
		m.game.Input().Reset()
		m.gameState = m.game.State()
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.gameState.GameOver {
			return m.start()
		}
		return m, nil
	}

	if code, ok := KeyCodeFor(msg); ok {
		m.held.press(code, time.Now())
	}
	return m, nil
}

// start resets the game and switches to the playfield.
func (m Model) start() (tea.Model, tea.Cmd) {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.held.reset()
	if err := m.game.Reset(context.Background(), m.config); err != nil {
		m.err = fmt.Errorf("reset: %w", err)
		m.logger.Error("reset failed", "err", err)
		return m, tea.Quit
	}
	m.playing = true
	m.gameState = m.game.State()
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.width = msg.Width
	m.help.Width = msg.Width
	m.renderer.Resize(msg.Width, max(msg.Height-chromeLines, 1))
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.playing {
		return m, tickCmd(m.config.TickRate)
	}

	if !m.gameState.Paused && !m.gameState.GameOver {
		m.held.apply(m.game.Input(), now)
	}

	st, err := m.game.Tick()
	if err != nil {
		m.err = fmt.Errorf("tick: %w", err)
		m.logger.Error("tick failed", "err", err)
		return m, tea.Quit
	}
	m.gameState = st

	screen := m.renderer.Screen()
	switch {
	case st.GameOver:
		screen.DrawTextCentered(screen.Height()/2, " GAME OVER ", core.ColorBrightRed)
		screen.DrawTextCentered(screen.Height()/2+1, fmt.Sprintf(" score %d ", st.Score), core.ColorBrightWhite)
	case st.Paused:
		screen.DrawTextCentered(screen.Height()/2, " PAUSED ", core.ColorBrightYellow)
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the playfield as plain text under
// ~/.arcade/screenshots.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: create directory", "dir", dir, "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.renderer.Screen().String()), 0o600); err != nil {
		m.logger.Warn("screenshot: write", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the title screen or the playfield with its HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.playing {
		return m.titleView()
	}
	return RenderScreen(m.renderer.Screen()) + "\n" +
		RenderHUD(m.gameState, m.width) + "\n" +
		m.help.View(m.keys)
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error { return m.err }

// State returns the last game state seen.
func (m Model) State() core.GameState { return m.gameState }

// Run runs game full-screen until the player quits or a tick fails.
func Run(game registry.Game, renderer *TerminalRenderer, cfg core.RuntimeConfig, opts Options) (core.GameState, error) {
	model := NewModel(game, renderer, cfg, opts)
	if opts.SkipTitle {
		started, _ := model.start()
		model = started.(Model)
		if model.err != nil {
			return core.GameState{}, model.err
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return core.GameState{}, nil
	}
	return m.State(), m.Err()
}
