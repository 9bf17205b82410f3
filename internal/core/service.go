package core

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/Rorical/RoriBug/internal/eventbus"
	"github.com/Rorical/RoriBug/internal/models"
)

// ReportFetcher performs the single backend call.
type ReportFetcher interface {
	GenerateReport(ctx context.Context, req models.ReportRequest) (*models.ReportResponse, error)
}

// ReportService owns the session state and is the only component that talks
// to the backend. The UI reaches it through the event bus.
type ReportService struct {
	fetcher  ReportFetcher
	state    *SessionState
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc

	// mu orders inflight.Add against Stop
	mu       sync.Mutex
	stopped  bool
	loopDone chan struct{}
	inflight sync.WaitGroup
}

func NewReportService(fetcher ReportFetcher, eb *eventbus.EventBus) *ReportService {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReportService{
		fetcher:  fetcher,
		state:    NewSessionState(),
		eventBus: eb,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the core logic in a goroutine
func (rs *ReportService) Start() {
	rs.mu.Lock()
	if rs.stopped || rs.loopDone != nil {
		rs.mu.Unlock()
		return
	}
	rs.loopDone = make(chan struct{})
	rs.mu.Unlock()

	// Send initial state to UI immediately
	rs.pushStateToUI()
	go rs.eventLoop(rs.loopDone)
}

// Stop cancels in-flight report calls and waits for the event loop and every
// report goroutine to return. Afterwards nothing publishes to the event bus.
func (rs *ReportService) Stop() {
	rs.mu.Lock()
	rs.stopped = true
	rs.cancel()
	loopDone := rs.loopDone
	rs.mu.Unlock()

	if loopDone != nil {
		<-loopDone
	}
	rs.inflight.Wait()
}

func (rs *ReportService) State() *SessionState {
	return rs.state
}

func (rs *ReportService) eventLoop(done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-rs.ctx.Done():
			return
		case event, ok := <-rs.eventBus.UIToCore():
			if !ok || rs.ctx.Err() != nil {
				return
			}
			rs.handleUIEvent(event)
		}
	}
}

func (rs *ReportService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SelectApplicationEvent:
		rs.SelectApplication(e.Name)
	case eventbus.SubmitMessageEvent:
		rs.SubmitUserMessage(e.Text)
	}
}

func (rs *ReportService) SelectApplication(name string) {
	rs.state.SelectApplication(name)
	log.Printf("application selected: %q", name)
	rs.pushStateToUI()
}

// SubmitUserMessage records the user turn, publishes it, then starts the
// report call. It returns false when nothing was submitted.
func (rs *ReportService) SubmitUserMessage(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if rs.state.Phase() == models.NoAppSelected {
		log.Printf("dropping message: no application selected")
		return false
	}

	rs.mu.Lock()
	if rs.stopped {
		rs.mu.Unlock()
		return false
	}
	rs.inflight.Add(1)
	rs.mu.Unlock()

	requestID, application, transcript := rs.state.SubmitUserMessage(text)
	rs.pushStateToUI()

	go func() {
		defer rs.inflight.Done()
		rs.fetchReport(requestID, application, transcript)
	}()
	return true
}

func (rs *ReportService) fetchReport(requestID, application string, transcript []models.Message) {
	req := BuildReportRequest(application, transcript)
	log.Printf("report request %s: %d messages for %q", requestID, len(req.Messages), application)

	resp, err := rs.fetcher.GenerateReport(rs.ctx, req)
	if rs.ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Printf("report request %s failed: %v", requestID, err)
		rs.state.FailReport(requestID, err)
		rs.pushStateToUI()
		return
	}

	if resp == nil {
		resp = &models.ReportResponse{}
	}
	log.Printf("report request %s done: %d bytes", requestID, len(resp.Body))
	rs.state.ReceiveReport(requestID, resp.Body)
	rs.pushStateToUI()
}

func (rs *ReportService) pushStateToUI() {
	if rs.ctx.Err() != nil {
		return
	}
	if err := rs.eventBus.SendToUI(eventbus.StateUpdateEvent{Session: rs.state.Snapshot()}); err != nil {
		log.Printf("Error sending state to UI: %v", err)
	}
}
