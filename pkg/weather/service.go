package weather

import (
	"context"
	"math"
	"time"

	"github.com/forecal/forecal/internal/utils"
	log "github.com/sirupsen/logrus"
)

// ForecastHorizonDays is how far ahead the provider publishes hourly data.
const ForecastHorizonDays = 14

// nowishWindow is how close to now a target time has to be for the current
// observation to be used instead of a forecast slot.
const nowishWindow = time.Hour

// Service answers "what will the weather be at this place and time". It never
// returns an error: every failure degrades to the Unavailable descriptor so
// callers can keep going.
type Service interface {
	Current(ctx context.Context, location string) Descriptor
	Forecast(ctx context.Context, location string, target time.Time) Descriptor
}

type ServiceImpl struct {
	client Client
	clock  utils.Clock
}

func NewService(client Client, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		client: client,
		clock:  clock,
	}
}

func (s *ServiceImpl) Current(ctx context.Context, location string) Descriptor {
	slot, err := s.client.CurrentConditions(ctx, location)
	if err != nil {
		log.Warnf("current weather lookup failed for %q: %v", location, err)
		return Unavailable
	}
	return toDescriptor(slot)
}

// Forecast finds the hourly slot whose calendar date and hour match the
// target, falling back to the matched day's first slot when no hour lines up.
func (s *ServiceImpl) Forecast(ctx context.Context, location string, target time.Time) Descriptor {
	now := s.clock.Now()

	if target.After(now.AddDate(0, 0, ForecastHorizonDays)) {
		log.Debugf("target %s is beyond the %d-day forecast horizon", target.Format(time.RFC3339), ForecastHorizonDays)
		return Unavailable
	}

	if target.Before(now.Add(nowishWindow)) && target.After(now.Add(-nowishWindow)) {
		return s.Current(ctx, location)
	}

	slots, err := s.client.HourlyForecast(ctx, location)
	if err != nil {
		log.Warnf("forecast lookup failed for %q: %v", location, err)
		return Unavailable
	}

	targetDate := target.Format("2006-01-02")
	var firstOfDay *HourlySlot
	for i := range slots {
		slot := slots[i]
		if slot.Time.Format("2006-01-02") != targetDate {
			continue
		}
		if firstOfDay == nil {
			firstOfDay = &slots[i]
		}
		if slot.Time.Hour() == target.Hour() {
			return toDescriptor(slot)
		}
	}
	if firstOfDay != nil {
		return toDescriptor(*firstOfDay)
	}

	log.Debugf("no forecast day matching %s for %q", targetDate, location)
	return Unavailable
}

func toDescriptor(slot HourlySlot) Descriptor {
	return Descriptor{
		Condition:    conditionFromCode(slot.WeatherCode),
		TemperatureC: int(math.Round(slot.TemperatureC)),
	}
}
