package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/RoriBug/internal/models"
)

// SessionState is the single source of truth for the chat screen. Every
// mutation is one of four actions: select an application, submit a message,
// receive a report, fail a report.
type SessionState struct {
	mu          sync.RWMutex
	application string
	transcript  []models.Message
	report      string
	chatVisible bool
	selected    bool
	notices     []string
	lastError   error
	pending     map[string]bool // in-flight report requests by ID
}

func NewSessionState() *SessionState {
	return &SessionState{
		application: models.DefaultApplication,
		transcript:  make([]models.Message, 0),
		pending:     make(map[string]bool),
	}
}

// SelectApplication switches the target application and starts a fresh
// transcript. Requests still in flight are forgotten.
func (s *SessionState) SelectApplication(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.application = name
	s.transcript = make([]models.Message, 0)
	s.notices = nil
	s.lastError = nil
	s.pending = make(map[string]bool)
	s.chatVisible = true
	s.selected = true
}

// SubmitUserMessage appends the user turn and the acknowledgment and registers
// a pending request. It returns the updated transcript and the application as
// they must be sent, so the caller never re-reads shared state.
func (s *SessionState) SubmitUserMessage(text string) (requestID, application string, transcript []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]models.Message, 0, len(s.transcript)+2)
	updated = append(updated, s.transcript...)
	updated = append(updated, models.NewUserMessage(text), models.NewAcknowledgment())
	s.transcript = updated

	requestID = uuid.NewString()
	s.pending[requestID] = true
	s.lastError = nil

	return requestID, s.application, cloneMessages(updated)
}

// ReceiveReport stores the report body and clears the last error. A response
// for a request that was dropped by a later selection still updates the
// report pane.
func (s *SessionState) ReceiveReport(requestID, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, requestID)
	s.report = body
	s.lastError = nil
}

// FailReport records a user-visible notice and leaves the transcript alone.
func (s *SessionState) FailReport(requestID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending[requestID] {
		return
	}
	delete(s.pending, requestID)
	s.lastError = err
	s.notices = append(s.notices, "Report generation failed: "+err.Error())
}

func (s *SessionState) Phase() models.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phaseLocked()
}

func (s *SessionState) phaseLocked() models.Phase {
	switch {
	case !s.selected:
		return models.NoAppSelected
	case len(s.pending) > 0:
		return models.AwaitingReport
	default:
		return models.Idle
	}
}

func (s *SessionState) Transcript() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMessages(s.transcript)
}

func (s *SessionState) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notices := make([]string, len(s.notices))
	copy(notices, s.notices)

	return models.SessionSnapshot{
		Application: s.application,
		Transcript:  cloneMessages(s.transcript),
		Report:      s.report,
		ChatVisible: s.chatVisible,
		Phase:       s.phaseLocked(),
		Notices:     notices,
		LastError:   s.lastError,
	}
}

// BuildReportRequest prefixes the transcript with the application name.
func BuildReportRequest(application string, transcript []models.Message) models.ReportRequest {
	messages := make([]models.Message, 0, len(transcript)+1)
	messages = append(messages, models.NewUserMessage(application))
	messages = append(messages, transcript...)
	return models.ReportRequest{Messages: messages}
}

func cloneMessages(in []models.Message) []models.Message {
	out := make([]models.Message, len(in))
	copy(out, in)
	return out
}
