package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/stretchr/testify/assert"

	"github.com/Rorical/RoriBug/internal/models"
	"github.com/Rorical/RoriBug/ui/controls"
)

func TestRenderMessages_OrderAndSender(t *testing.T) {
	out := RenderMessages([]models.Message{
		models.NewUserMessage("button is broken"),
		models.NewAcknowledgment(),
	})

	user := strings.Index(out, "You: button is broken")
	ack := strings.Index(out, "Assistant: Thanks for your description.")
	assert.GreaterOrEqual(t, user, 0)
	assert.Greater(t, ack, user, "entries render in transcript order")
}

func TestRenderMessages_Empty(t *testing.T) {
	assert.Empty(t, RenderMessages(nil))
}

func TestRenderDropdown(t *testing.T) {
	dd := controls.NewDropdown([]string{"Wikimedia Commons", "place_holder"})

	closed := RenderDropdown(models.DefaultApplication, &dd, true)
	assert.Contains(t, closed, "App Selection")
	assert.NotContains(t, closed, "place_holder", "items render only while open")

	dd.Toggle()
	open := RenderDropdown(models.DefaultApplication, &dd, true)
	assert.Contains(t, open, "Wikimedia Commons")
	assert.Contains(t, open, "place_holder")
}

func TestRenderChatSection_ShowsNotices(t *testing.T) {
	in := controls.NewTextInput()
	out := RenderChatSection(models.SessionSnapshot{
		Transcript: []models.Message{models.NewUserMessage("crash")},
		Notices:    []string{"Report generation failed: boom"},
	}, &in, 80)

	assert.Contains(t, out, "You: crash")
	assert.Contains(t, out, "Report generation failed: boom")
}

func TestRenderReport_Verbatim(t *testing.T) {
	vp := viewport.New(60, 5)
	vp.SetContent("**Title** not rendered")

	out := RenderReport(vp, 70)
	assert.Contains(t, out, "Generated Report:")
	assert.Contains(t, out, "**Title** not rendered")
}

func TestRenderStatus_LoadingDots(t *testing.T) {
	assert.Contains(t, RenderStatus("Generating report", true, 3, 60), "Generating report...")
	assert.NotContains(t, RenderStatus("Ready", false, 3, 60), "Ready...")
}
