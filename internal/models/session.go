package models

// DefaultApplication is shown on the selector until the user picks an application.
const DefaultApplication = "App Selection"

type Phase int

const (
	NoAppSelected Phase = iota
	Idle
	AwaitingReport
)

func (p Phase) String() string {
	switch p {
	case NoAppSelected:
		return "no application selected"
	case Idle:
		return "idle"
	case AwaitingReport:
		return "awaiting report"
	default:
		return "unknown"
	}
}

// SessionSnapshot is an immutable copy of the controller state pushed to the UI
type SessionSnapshot struct {
	Application string
	Transcript  []Message
	Report      string
	ChatVisible bool
	Phase       Phase
	Notices     []string // failure lines, rendered under the transcript but never sent
	LastError   error
}
