package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/forecal/forecal/internal/utils"
	"github.com/forecal/forecal/pkg/annotation"
	"github.com/forecal/forecal/pkg/calendar"
	"github.com/forecal/forecal/pkg/weather"
	log "github.com/sirupsen/logrus"
)

// Report summarizes one sync cycle.
type Report struct {
	Considered   int
	Rewritten    int
	Unchanged    int
	Skipped      int
	Failed       int
	TokenPresent bool
}

// Status is the observable engine state exposed to health checks.
type Status struct {
	TokenPresent bool
	LastCycle    time.Time
	LastReport   Report
}

// Engine decides which events to fetch (full range vs. incremental via the
// sync token), rewrites titles that need a fresh weather annotation, and owns
// the token lifecycle including invalidation recovery.
//
// cycleMu serializes whole cycles: the fast and slow cadences must never run
// overlapping cycles against the same token.
type Engine struct {
	provider  calendar.Provider
	weather   weather.Service
	stateRepo StateRepository
	clock     utils.Clock

	calendarId      string
	defaultLocation string
	windowDays      int

	cycleMu      sync.Mutex
	currentToken string
	tokenLoaded  bool

	statusMu   sync.RWMutex
	lastCycle  time.Time
	lastReport Report
}

func NewEngine(
	provider calendar.Provider,
	weatherService weather.Service,
	stateRepo StateRepository,
	clock utils.Clock,
	calendarId string,
	defaultLocation string,
	windowDays int,
) *Engine {
	return &Engine{
		provider:        provider,
		weather:         weatherService,
		stateRepo:       stateRepo,
		clock:           clock,
		calendarId:      calendarId,
		defaultLocation: defaultLocation,
		windowDays:      windowDays,
	}
}

// Sync runs one cycle: incremental when a token is held, full range otherwise.
func (e *Engine) Sync(ctx context.Context) (Report, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()
	return e.runCycle(ctx)
}

// ForceFullSync drops the current token and runs a full range cycle. Used by
// the slow cadence to repair any drift the incremental path cannot see.
func (e *Engine) ForceFullSync(ctx context.Context) (Report, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	e.setToken(ctx, "")
	return e.runCycle(ctx)
}

func (e *Engine) Status() Status {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return Status{
		TokenPresent: e.lastReport.TokenPresent,
		LastCycle:    e.lastCycle,
		LastReport:   e.lastReport,
	}
}

func (e *Engine) runCycle(ctx context.Context) (Report, error) {
	if !e.tokenLoaded {
		token, err := e.stateRepo.LoadToken(ctx, e.calendarId)
		if err != nil {
			log.Warnf("failed to load persisted sync token, starting with a full sync: %v", err)
		} else {
			e.currentToken = token
		}
		e.tokenLoaded = true
	}

	now := e.clock.Now()
	upperBound := now.AddDate(0, 0, e.windowDays)

	result, err := e.fetch(ctx, now, upperBound)
	if err != nil {
		if errors.Is(err, calendar.ErrTokenInvalidated) {
			// One token-less retry within the same cycle; a second failure
			// surfaces to the caller.
			log.Info("sync token invalidated by provider, retrying with a full range sync")
			e.setToken(ctx, "")
			result, err = e.fetch(ctx, now, upperBound)
		}
		if err != nil {
			report := Report{TokenPresent: e.currentToken != ""}
			e.recordCycle(now, report)
			return report, err
		}
	}

	// The returned token is captured even when zero events came back.
	e.setToken(ctx, result.NextSyncToken)

	report := Report{TokenPresent: e.currentToken != ""}
	for _, event := range result.Events {
		report.Considered++

		// Incremental fetches can return events outside the nominal window;
		// those are filtered, not rewritten.
		if event.StartTime.After(upperBound) {
			log.Debugf("skipping event %s, starts after the sync window", event.ID)
			report.Skipped++
			continue
		}

		descriptor := e.lookupWeather(ctx, event)
		clean := annotation.Strip(event.Title)
		candidate := annotation.Compose(clean, descriptor)

		if candidate == event.Title {
			report.Unchanged++
			continue
		}

		if err := e.provider.PatchEventTitle(ctx, event.ID, candidate); err != nil {
			log.Errorf("failed to patch title of event %s: %v", event.ID, err)
			report.Failed++
			continue
		}
		log.Infof("updated title of event %s to %q", event.ID, candidate)
		report.Rewritten++
	}

	e.recordCycle(now, report)
	return report, nil
}

func (e *Engine) fetch(ctx context.Context, now, upperBound time.Time) (calendar.ListResult, error) {
	if e.currentToken != "" {
		return e.provider.ListEvents(ctx, calendar.ListRequest{SyncToken: e.currentToken})
	}
	return e.provider.ListEvents(ctx, calendar.ListRequest{
		Window: &calendar.Window{From: now, To: upperBound},
	})
}

func (e *Engine) lookupWeather(ctx context.Context, event calendar.Event) weather.Descriptor {
	location := event.Location
	if location == "" {
		location = e.defaultLocation
	}
	if location == "" {
		log.Debugf("event %s has no location and no default is configured", event.ID)
		return weather.Unavailable
	}
	return e.weather.Forecast(ctx, location, event.StartTime)
}

// setToken updates the in-memory token and persists it best effort; a storage
// failure only costs an extra full sync after a restart.
func (e *Engine) setToken(ctx context.Context, token string) {
	e.currentToken = token
	e.tokenLoaded = true
	if err := e.stateRepo.SaveToken(ctx, e.calendarId, token); err != nil {
		log.Warnf("failed to persist sync token: %v", err)
	}
}

func (e *Engine) recordCycle(startedAt time.Time, report Report) {
	e.statusMu.Lock()
	e.lastCycle = startedAt
	e.lastReport = report
	e.statusMu.Unlock()
}
