package components

import (
	"strings"

	"github.com/Rorical/RoriBug/internal/models"
	"github.com/Rorical/RoriBug/ui/controls"
	"github.com/Rorical/RoriBug/ui/styles"
)

// RenderChatSection stacks the transcript, failure notices and the input box.
func RenderChatSection(session models.SessionSnapshot, input *controls.TextInput, width int) string {
	var b strings.Builder

	b.WriteString(RenderMessages(session.Transcript))
	b.WriteString(RenderNotices(session.Notices))
	b.WriteString(styles.InputStyle(width).Render(input.View()))
	b.WriteString("\n")

	return b.String()
}
