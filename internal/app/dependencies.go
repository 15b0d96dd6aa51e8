package app

import (
	"context"
	"database/sql"

	"github.com/forecal/forecal/internal/config"
	"github.com/forecal/forecal/internal/utils"
	"github.com/forecal/forecal/pkg/calendar"
	"github.com/forecal/forecal/pkg/google"
	"github.com/forecal/forecal/pkg/sync"
	"github.com/forecal/forecal/pkg/weather"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	GoogleAuth       *google.GoogleAuth
	CalendarProvider calendar.Provider

	WeatherClient  weather.Client
	WeatherService weather.Service

	StateRepo   sync.StateRepository
	SyncEngine  *sync.Engine
	SyncHandler *sync.Handler
	Scheduler   *sync.Scheduler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.GoogleAuth = google.NewGoogleAuth(db, cfg)
	calendarService, err := deps.GoogleAuth.NewCalendarService(ctx)
	if err != nil {
		return nil, err
	}
	deps.CalendarProvider = google.NewCalendar(calendarService, cfg.Calendar.Id)

	deps.WeatherClient = weather.NewOpenMeteoClient(cfg.Weather.ForecastUrl, cfg.Weather.GeocodeUrl)
	deps.WeatherService = weather.NewService(deps.WeatherClient, deps.Clock)

	deps.StateRepo = sync.NewStateRepository(db)
	deps.SyncEngine = sync.NewEngine(
		deps.CalendarProvider,
		deps.WeatherService,
		deps.StateRepo,
		deps.Clock,
		cfg.Calendar.Id,
		cfg.Calendar.DefaultLocation,
		cfg.Sync.WindowDays,
	)
	deps.SyncHandler = sync.NewHandler(deps.SyncEngine)

	deps.Scheduler, err = sync.NewScheduler(deps.SyncEngine, cfg.Sync.FastInterval, cfg.Sync.SlowInterval)
	if err != nil {
		return nil, err
	}

	return deps, nil
}
