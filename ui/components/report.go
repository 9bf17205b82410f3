package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriBug/ui/styles"
)

// RenderReport shows the report text verbatim inside a scrollable pane.
func RenderReport(vp viewport.Model, width int) string {
	header := styles.ReportHeaderStyle().Render("Generated Report:")
	return styles.ReportStyle(width).Render(lipgloss.JoinVertical(lipgloss.Left, header, vp.View()))
}
