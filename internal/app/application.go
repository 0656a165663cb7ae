package app

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/PaperChat/internal/config"
	"github.com/Rorical/PaperChat/internal/core"
	"github.com/Rorical/PaperChat/internal/dispatcher"
	"github.com/Rorical/PaperChat/internal/eventbus"
	"github.com/Rorical/PaperChat/internal/logging"
	"github.com/Rorical/PaperChat/internal/particles"
	"github.com/Rorical/PaperChat/internal/stage"
)

// Options come from the command line and override the config file.
type Options struct {
	Profile string
	Speed   float64 // playback multiplier, 2 plays twice as fast
	LogFile string
	Verbose bool
}

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *slog.Logger
	closeLog   func() error
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	stage      *stage.Stage
	service    *core.SequenceService
	model      *AppModel
}

func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Profile != "" {
		if err := cfg.UseProfile(opts.Profile); err != nil {
			return nil, err
		}
	}

	logger, closeLog, err := logging.New(opts.LogFile, logging.Level(opts.Verbose))
	if err != nil {
		return nil, err
	}

	profile := cfg.CurrentProfile()
	plan, err := core.BuildPlan(profile)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("profile %q: %w", cfg.ActiveProfile, err)
	}

	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}
	frame := time.Second / time.Duration(cfg.FrameRate)

	st := stage.New(stage.Options{
		TimeScale: cfg.TimeScale / speed,
		Frame:     frame,
		Particles: particles.Config{
			Count:       profile.Particles.Count,
			MinDuration: profile.Particles.MinDuration,
			MaxDuration: profile.Particles.MaxDuration,
		},
	})

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn("event bus error", "operation", e.Operation, "error", e.Err)
	})
	disp := dispatcher.NewEventDispatcher(eb)

	seq := core.NewSequencer(st, plan, logger)
	service := core.NewSequenceService(seq, eb, logger)

	logger.Info("application configured",
		"profile", cfg.ActiveProfile,
		"time_scale", cfg.TimeScale/speed,
		"frame_rate", cfg.FrameRate,
		"total_units", plan.Total(),
	)

	return &Application{
		config:     cfg,
		logger:     logger,
		closeLog:   closeLog,
		eventBus:   eb,
		dispatcher: disp,
		stage:      st,
		service:    service,
		model:      newAppModel(profile.Placeholder, frame, runDeadline(st, seq.Plan()), disp, st, logger),
	}, nil
}

// runDeadline is how long the UI waits for a run to report back before it
// unlocks the input on its own.
func runDeadline(st *stage.Stage, plan core.Plan) time.Duration {
	return 2*st.Duration(plan.Total()) + time.Second
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

// Stop tears down in dependency order so nothing sends on a closed bus.
func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	if err := app.closeLog(); err != nil {
		app.logger.Warn("failed to close log file", "error", err)
	}
}
