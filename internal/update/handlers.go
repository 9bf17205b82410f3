package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriBug/internal/eventbus"
	"github.com/Rorical/RoriBug/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab", "shift+tab":
		return toggleFocus(appModel)
	}

	if appModel.Focus == models.FocusChat && appModel.Session.ChatVisible {
		return handleChatKey(appModel, keyMsg, eb)
	}
	return handleSelectorKey(appModel, keyMsg, eb)
}

func handleSelectorKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	dd := &appModel.Dropdown

	switch keyMsg.String() {
	case "q":
		if !dd.Open() {
			return tea.Quit
		}
	case "esc":
		if dd.Open() {
			dd.Close()
			return nil
		}
		return tea.Quit
	case "up", "k":
		dd.MoveUp()
	case "down", "j":
		dd.MoveDown()
	case "enter", " ":
		if !dd.Open() {
			dd.Toggle()
			return nil
		}
		name, ok := dd.Choose()
		if !ok {
			return nil
		}
		if err := eb.SendToCore(eventbus.SelectApplicationEvent{Name: name}); err != nil {
			appModel.Status = "Error selecting application: " + err.Error()
			return nil
		}
		appModel.Focus = models.FocusChat
		return appModel.Input.Focus()
	}
	return nil
}

func handleChatKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "esc":
		appModel.Focus = models.FocusSelector
		appModel.Input.Blur()
		return nil
	case "enter":
		text, ok := appModel.Input.Submit()
		if !ok {
			return nil
		}
		if err := eb.SendToCore(eventbus.SubmitMessageEvent{Text: text}); err != nil {
			appModel.Status = "Error sending message: " + err.Error()
		}
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		appModel.Report, cmd = appModel.Report.Update(keyMsg)
		return cmd
	}
	return appModel.Input.Update(keyMsg)
}

func toggleFocus(appModel *models.AppModel) tea.Cmd {
	if appModel.Focus == models.FocusChat || !appModel.Session.ChatVisible {
		appModel.Focus = models.FocusSelector
		appModel.Input.Blur()
		return nil
	}
	appModel.Focus = models.FocusChat
	appModel.Dropdown.Close()
	return appModel.Input.Focus()
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		session := event.Session
		reportChanged := session.Report != appModel.Session.Report
		appModel.Session = session
		if reportChanged {
			appModel.Report.SetContent(session.Report)
			appModel.Report.GotoTop()
		}

		switch {
		case session.LastError != nil:
			appModel.Status = "Error: " + session.LastError.Error()
		case session.Phase == models.AwaitingReport:
			appModel.Status = "Generating report"
		case session.Phase == models.NoAppSelected:
			appModel.Status = "Select an application"
		default:
			appModel.Status = "Ready"
		}
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height

	chatWidth, reportWidth := SplitWidth(sizeMsg.Width)
	appModel.Input.SetWidth(chatWidth - 4)
	appModel.Report.Width = max(reportWidth-4, 1)
	appModel.Report.Height = max(sizeMsg.Height-6, 1)
}

// SplitWidth divides the screen between the chat column and the report pane.
func SplitWidth(width int) (chat, report int) {
	chat = width * 3 / 5
	return chat, width - chat
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading() {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
