package models

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Rorical/RoriBug/ui/controls"
)

type Focus int

const (
	FocusSelector Focus = iota
	FocusChat
)

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Session      SessionSnapshot   // Latest state pushed by core
	Applications []string          // Entries offered by the selector
	Dropdown     controls.Dropdown // Application selector
	Input        controls.TextInput
	Report       viewport.Model // Read-only report pane
	Focus        Focus
	Status       string
	LoadingDots  int
	Width        int
	Height       int
}

func (m *AppModel) Loading() bool {
	return m.Session.Phase == AwaitingReport
}
