package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriBug/internal/models"
)

func TestSessionState_Initial(t *testing.T) {
	s := NewSessionState()
	snap := s.Snapshot()

	assert.Equal(t, models.DefaultApplication, snap.Application)
	assert.Empty(t, snap.Transcript)
	assert.False(t, snap.ChatVisible)
	assert.Equal(t, models.NoAppSelected, snap.Phase)
	assert.Empty(t, snap.Report)
}

func TestSessionState_SelectApplicationClearsTranscript(t *testing.T) {
	s := NewSessionState()

	for _, name := range []string{"Wikimedia Commons", "place_holder", "", "Wikimedia Commons"} {
		s.SelectApplication(name)
		snap := s.Snapshot()
		assert.Empty(t, snap.Transcript, "transcript after selecting %q", name)
		assert.Equal(t, name, snap.Application)
		assert.True(t, snap.ChatVisible)
		assert.Equal(t, models.Idle, snap.Phase)

		s.SubmitUserMessage("something")
	}
}

func TestSessionState_SubmitAppendsUserAndAcknowledgment(t *testing.T) {
	s := NewSessionState()
	s.SelectApplication("Wikimedia Commons")

	id, app, transcript := s.SubmitUserMessage("button is broken")
	require.NotEmpty(t, id)
	assert.Equal(t, "Wikimedia Commons", app)

	want := []models.Message{
		{Sender: models.User, Text: "button is broken"},
		{Sender: models.AI, Text: "Thanks for your description. Please wait a moment while I generate your complete bug report."},
	}
	assert.Equal(t, want, transcript)
	assert.Equal(t, want, s.Transcript())
	assert.Equal(t, models.AwaitingReport, s.Phase())

	_, _, transcript = s.SubmitUserMessage("second")
	assert.Len(t, transcript, 4)
	assert.Zero(t, len(transcript)%2, "transcript length is even after each turn")
}

func TestSessionState_ReturnedTranscriptIsACopy(t *testing.T) {
	s := NewSessionState()
	s.SelectApplication("app")

	_, _, transcript := s.SubmitUserMessage("first")
	transcript[0].Text = "mutated"

	assert.Equal(t, "first", s.Transcript()[0].Text)
}

func TestSessionState_ReceiveReport(t *testing.T) {
	s := NewSessionState()
	s.SelectApplication("app")
	id, _, _ := s.SubmitUserMessage("crash")

	s.ReceiveReport(id, "REPORT TEXT")

	snap := s.Snapshot()
	assert.Equal(t, "REPORT TEXT", snap.Report)
	assert.Equal(t, models.Idle, snap.Phase)
}

func TestSessionState_AwaitingUntilAllRequestsResolve(t *testing.T) {
	s := NewSessionState()
	s.SelectApplication("app")
	first, _, _ := s.SubmitUserMessage("one")
	second, _, _ := s.SubmitUserMessage("two")
	require.NotEqual(t, first, second)

	s.ReceiveReport(first, "r1")
	assert.Equal(t, models.AwaitingReport, s.Phase())

	s.ReceiveReport(second, "r2")
	assert.Equal(t, models.Idle, s.Phase())
	assert.Equal(t, "r2", s.Snapshot().Report)
}

func TestSessionState_FailReportReturnsToIdle(t *testing.T) {
	s := NewSessionState()
	s.SelectApplication("app")
	id, _, before := s.SubmitUserMessage("crash")

	s.FailReport(id, errors.New("connection refused"))

	snap := s.Snapshot()
	assert.Equal(t, models.Idle, snap.Phase)
	assert.Equal(t, before, snap.Transcript, "failure must not touch the transcript")
	require.Len(t, snap.Notices, 1)
	assert.Contains(t, snap.Notices[0], "connection refused")
	assert.EqualError(t, snap.LastError, "connection refused")

	// a new submission clears the error but keeps the notice history
	s.SubmitUserMessage("retry")
	snap = s.Snapshot()
	assert.NoError(t, snap.LastError)
	assert.Len(t, snap.Notices, 1)
}

func TestSessionState_LaterReportClearsEarlierFailure(t *testing.T) {
	s := NewSessionState()
	s.SelectApplication("app")
	first, _, _ := s.SubmitUserMessage("one")
	second, _, _ := s.SubmitUserMessage("two")

	s.FailReport(first, errors.New("connection refused"))
	require.Error(t, s.Snapshot().LastError)

	s.ReceiveReport(second, "REPORT TEXT")
	snap := s.Snapshot()
	assert.NoError(t, snap.LastError)
	assert.Equal(t, "REPORT TEXT", snap.Report)
	assert.Equal(t, models.Idle, snap.Phase)
	assert.Len(t, snap.Notices, 1, "the failure stays in the notice history")
}

func TestSessionState_ReselectDropsPendingRequests(t *testing.T) {
	s := NewSessionState()
	s.SelectApplication("first")
	id, _, _ := s.SubmitUserMessage("crash")

	s.SelectApplication("second")
	assert.Equal(t, models.Idle, s.Phase())

	s.FailReport(id, errors.New("late failure"))
	assert.Empty(t, s.Snapshot().Notices, "failures of dropped requests are ignored")

	s.ReceiveReport(id, "late report")
	snap := s.Snapshot()
	assert.Equal(t, "late report", snap.Report, "the pane shows the most recent report")
	assert.Equal(t, models.Idle, snap.Phase)
	assert.Empty(t, snap.Transcript)
}

func TestBuildReportRequest(t *testing.T) {
	transcript := []models.Message{
		models.NewUserMessage("button is broken"),
		models.NewAcknowledgment(),
	}

	req := BuildReportRequest("Wikimedia Commons", transcript)

	require.Len(t, req.Messages, len(transcript)+1)
	assert.Equal(t, models.Message{Sender: models.User, Text: "Wikimedia Commons"}, req.Messages[0])
	assert.Equal(t, transcript, req.Messages[1:])
}
