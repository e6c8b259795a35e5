package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// FormKeyMap defines the key bindings of the start form. Letters are typed
// into the name field, so only non-printing keys are bound.
type FormKeyMap struct {
	PrevLevel key.Binding
	NextLevel key.Binding
	Start     key.Binding
	Quit      key.Binding
}

// DefaultFormKeyMap returns default key bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		PrevLevel: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "prev level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓/tab", "next level"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevLevel, k.NextLevel, k.Start, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// StartForm collects the player name and level before a session.
type StartForm struct {
	name        textinput.Model
	levels      []config.Level
	levelCursor int
	keys        FormKeyMap
	err         string
}

// NewStartForm creates a start form prefilled with name and the given level.
func NewStartForm(levels []config.Level, name, level string) StartForm {
	ti := textinput.New()
	ti.Placeholder = "Enter your name"
	ti.CharLimit = snake.MaxPlayerNameLen
	ti.Width = snake.MaxPlayerNameLen + 1
	ti.SetValue(name)
	ti.Focus()

	f := StartForm{
		name:   ti,
		levels: levels,
		keys:   DefaultFormKeyMap(),
	}
	f.SelectLevel(level)
	return f
}

// SelectLevel moves the level cursor to the level with the given id.
func (f *StartForm) SelectLevel(id string) {
	for i, l := range f.levels {
		if l.ID == id {
			f.levelCursor = i
			return
		}
	}
}

// Update handles level navigation and forwards other keys to the name field.
func (f StartForm) Update(msg tea.Msg) (StartForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.PrevLevel):
			if f.levelCursor > 0 {
				f.levelCursor--
			}
			return f, nil
		case key.Matches(msg, f.keys.NextLevel):
			if f.levelCursor < len(f.levels)-1 {
				f.levelCursor++
			}
			return f, nil
		}
		f.err = ""
	}

	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	return f, cmd
}

// Command returns the start request for the current input.
func (f StartForm) Command() snake.StartCommand {
	cmd := snake.StartCommand{PlayerName: f.name.Value()}
	if f.levelCursor < len(f.levels) {
		cmd.Level = f.levels[f.levelCursor].ID
	}
	return cmd
}

// SetError shows err under the form.
func (f *StartForm) SetError(err error) {
	f.err = err.Error()
}

// Error returns the message shown under the form.
func (f StartForm) Error() string {
	return f.err
}

// View renders the form.
func (f StartForm) View(width, highScore int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("High score: %d", highScore), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Player name:", width))
	b.WriteString("\n")
	b.WriteString(centerText(f.name.View(), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Level:", width))
	b.WriteString("\n")

	for i, l := range f.levels {
		cursor := "  "
		if i == f.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-14s %4dms", cursor, l.Name, l.TickMS)
		if i != f.levelCursor {
			line = dimStyle.Render(line)
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(centerText(errStyle.Render(f.err), width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText("Arrows or WASD to steer, G toggles the debug grid", width))

	return b.String()
}
