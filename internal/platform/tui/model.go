package tui

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Model is the Bubble Tea model for playing snake. The engine owns the game
// state; the model owns only the start form, the debug toggle and the clock.
type Model struct {
	game     *snake.Game
	store    *storage.Store // May be nil
	logger   *log.Logger
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	form     StartForm
	session  int // Incremented on every start, tags TickMsg
	debug    bool
	quitting bool

	lastName  string
	lastLevel string
}

// NewModel creates a model showing the start form. defaults prefills the
// form; an empty name falls back to the last name saved in store.
func NewModel(game *snake.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, defaults snake.StartCommand) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	name := defaults.PlayerName
	if name == "" && store != nil {
		last, err := store.LastPlayerName()
		if err != nil {
			logger.Warn("could not load last player name", "error", err)
		}
		name = last
	}
	level := defaults.Level
	if level == "" {
		level = game.Levels()[0].ID
	}

	return Model{
		game:      game,
		store:     store,
		logger:    logger,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		config:    cfg,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		form:      NewStartForm(game.Levels(), name, level),
		lastName:  name,
		lastLevel: level,
	}
}

// Init starts the cursor blink of the name field.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		if m.game.State() == snake.StateIdle {
			return m.handleFormKey(msg)
		}
		return m.handleGameKey(msg)
	}

	if m.game.State() == snake.StateIdle {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize processes window resize events. The last line is kept for help.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.form.keys.Start):
		return m.start()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// start asks the engine for a session and begins ticking on success.
func (m Model) start() (tea.Model, tea.Cmd) {
	cmd := m.form.Command()
	if err := m.game.Start(cmd); err != nil {
		var verr *snake.ValidationError
		if !errors.As(err, &verr) {
			m.logger.Error("could not start session", "error", err)
		}
		m.form.SetError(err)
		return m, nil
	}

	m.session++
	m.lastName = strings.TrimSpace(cmd.PlayerName)
	m.lastLevel = cmd.Level
	if m.store != nil {
		if err := m.store.SetLastPlayerName(m.lastName); err != nil {
			m.logger.Warn("could not save player name", "error", err)
		}
	}
	return m, tickCmd(m.session, m.game.TickInterval())
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.game.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionDebug:
		m.debug = !m.debug

	case core.ActionStop:
		m.game.Stop()

	case core.ActionRestart:
		if m.game.State().Terminal() {
			m.game.Restart()
			m.form = NewStartForm(m.game.Levels(), m.lastName, m.lastLevel)
			return m, textinput.Blink
		}

	default:
		if d, ok := action.Direction(); ok {
			m.game.Steer(d)
		}
	}

	return m, nil
}

// handleTick advances the engine by one step and schedules the next tick
// while the session that scheduled it is still running.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Session != m.session || m.game.State() != snake.StateRunning {
		return m, nil
	}

	snap := m.game.Tick()
	if snap.State != snake.StateRunning {
		return m, nil
	}
	return m, tickCmd(m.session, m.game.TickInterval())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	snap := m.game.Snapshot()
	if snap.State == snake.StateIdle {
		return m.form.View(m.config.ScreenW, snap.HighScore) + "\n\n" +
			centerText(helpStyle.Render(m.help.View(m.form.keys)), m.config.ScreenW)
	}

	DrawSession(m.screen, snap, m.debug)
	helpView := m.help.View(m.keys)
	if snap.State.Terminal() {
		helpView = m.help.ShortHelpView(m.keys.GameOverHelp())
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(helpView)
}

// Debug reports whether the grid overlay is shown.
func (m Model) Debug() bool {
	return m.debug
}

// Run starts the Bubble Tea program and returns when the player quits.
func Run(game *snake.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, defaults snake.StartCommand) error {
	model := NewModel(game, store, logger, cfg, defaults)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
