package components

import (
	"strings"

	"github.com/Rorical/RoriBug/internal/models"
	"github.com/Rorical/RoriBug/ui/styles"
)

func RenderMessages(messages []models.Message) string {
	var b strings.Builder

	userStyle := styles.UserStyle()
	assistantStyle := styles.AssistantStyle()

	for _, msg := range messages {
		line := msg.Sender.DisplayName() + ": " + msg.Text
		switch msg.Sender {
		case models.User:
			b.WriteString(userStyle.Render(line) + "\n\n")
		default:
			b.WriteString(assistantStyle.Render(line) + "\n\n")
		}
	}

	return b.String()
}

func RenderNotices(notices []string) string {
	var b strings.Builder
	noticeStyle := styles.NoticeStyle()
	for _, n := range notices {
		b.WriteString(noticeStyle.Render("! "+n) + "\n\n")
	}
	return b.String()
}
