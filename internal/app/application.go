package app

import (
	"log"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriBug/internal/config"
	"github.com/Rorical/RoriBug/internal/core"
	"github.com/Rorical/RoriBug/internal/dispatcher"
	"github.com/Rorical/RoriBug/internal/eventbus"
	"github.com/Rorical/RoriBug/internal/models"
	"github.com/Rorical/RoriBug/internal/reportclient"
	"github.com/Rorical/RoriBug/ui/controls"
)

// Options tune a single run of the chat screen.
type Options struct {
	// InitialApplication is selected before the first frame when non-empty.
	InitialApplication string
}

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ReportService
	model      *AppModel
	opts       Options
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Printf("event bus: %v", e)
	})
	disp := dispatcher.NewEventDispatcher(eb)

	client := reportclient.New(cfg.BackendURL, cfg.RequestTimeout())
	log.Printf("report backend: %s", client.URL())
	service := core.NewReportService(client, eb)

	model := &AppModel{
		appModel:   createInitialAppModel(cfg.ApplicationNames()),
		dispatcher: disp,
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
		opts:       opts,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()
	if app.opts.InitialApplication != "" {
		app.service.SelectApplication(app.opts.InitialApplication)
		app.model.appModel.Focus = models.FocusChat
	}

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
}

func createInitialAppModel(applications []string) models.AppModel {
	// Session content comes from core as single source of truth
	return models.AppModel{
		Session: models.SessionSnapshot{
			Application: models.DefaultApplication,
			Transcript:  make([]models.Message, 0),
		},
		Applications: applications,
		Dropdown:     controls.NewDropdown(applications),
		Input:        controls.NewTextInput(),
		Report:       viewport.New(40, 10),
		Status:       "Select an application",
	}
}
