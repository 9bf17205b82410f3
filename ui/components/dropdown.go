package components

import (
	"strings"

	"github.com/Rorical/RoriBug/ui/controls"
	"github.com/Rorical/RoriBug/ui/styles"
)

// RenderDropdown draws the selector button and, while open, its items.
func RenderDropdown(label string, dd *controls.Dropdown, focused bool) string {
	var b strings.Builder

	icon := "▾"
	if dd.Open() {
		icon = "▴"
	}
	b.WriteString(styles.DropdownButtonStyle(dd.Open(), focused).Render(label + " " + icon))
	b.WriteString("\n")

	if !dd.Open() {
		return b.String()
	}
	for i, item := range dd.Items {
		b.WriteString(styles.DropdownItemStyle(i == dd.Cursor()).Render(item))
		b.WriteString("\n")
	}
	return b.String()
}
