package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriBug/internal/models"
	"github.com/Rorical/RoriBug/internal/update"
	"github.com/Rorical/RoriBug/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	}
	if m.appModel.Focus == models.FocusChat {
		cmds = append(cmds, m.appModel.Input.Focus())
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus)

	return m, cmd
}

func (m *AppModel) View() string {
	am := &m.appModel
	chatWidth, reportWidth := update.SplitWidth(am.Width)

	var left strings.Builder
	left.WriteString(components.RenderDropdown(am.Session.Application, &am.Dropdown, am.Focus == models.FocusSelector))
	left.WriteString("\n")
	if am.Session.ChatVisible {
		left.WriteString(components.RenderChatSection(am.Session, &am.Input, chatWidth))
	}

	column := lipgloss.NewStyle().Width(chatWidth).Render(left.String())
	body := lipgloss.JoinHorizontal(lipgloss.Top, column, components.RenderReport(am.Report, reportWidth))

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(am.Status, am.Loading(), am.LoadingDots, am.Width))

	return b.String()
}
