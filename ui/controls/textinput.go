package controls

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const inputPlaceholder = "Describe your Bug"

// TextInput holds the in-progress bug description.
type TextInput struct {
	area textarea.Model
}

func NewTextInput() TextInput {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(3)
	// enter is reserved for sending
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	return TextInput{area: ta}
}

func (t *TextInput) Value() string {
	return t.area.Value()
}

func (t *TextInput) SetValue(s string) {
	t.area.SetValue(s)
}

// Submit returns the raw value and clears the input when the trimmed value is
// non-empty. Blank input is left untouched and reported as false.
func (t *TextInput) Submit() (string, bool) {
	raw := t.area.Value()
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	t.area.Reset()
	return raw, true
}

func (t *TextInput) Focus() tea.Cmd {
	return t.area.Focus()
}

func (t *TextInput) Blur() {
	t.area.Blur()
}

func (t *TextInput) Focused() bool {
	return t.area.Focused()
}

func (t *TextInput) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	t.area.SetWidth(w)
}

func (t *TextInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.area, cmd = t.area.Update(msg)
	return cmd
}

func (t *TextInput) View() string {
	return t.area.View()
}
