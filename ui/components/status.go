package components

import (
	"strings"

	"github.com/Rorical/RoriBug/ui/styles"
)

const keyHints = "tab focus · enter select/send · alt+enter newline · pgup/pgdn report · ctrl+c quit"

func RenderStatus(status string, loading bool, loadingDots int, width int) string {
	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}
	if width > len(statusContent)+len(keyHints)+4 {
		statusContent += strings.Repeat(" ", width-len(statusContent)-len(keyHints)-2) + keyHints
	}

	return styles.StatusStyle(width).Render(statusContent)
}
