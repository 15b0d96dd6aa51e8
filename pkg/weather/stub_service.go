package weather

import (
	"context"
	"time"
)

type ForecastCall struct {
	Location string
	Target   time.Time
}

// StubService returns canned descriptors and records lookups.
type StubService struct {
	Descriptor Descriptor
	ByLocation map[string]Descriptor

	ForecastCalls []ForecastCall
	CurrentCalls  []string
}

func NewStubService(d Descriptor) *StubService {
	return &StubService{
		Descriptor: d,
		ByLocation: map[string]Descriptor{},
	}
}

func (s *StubService) Current(ctx context.Context, location string) Descriptor {
	s.CurrentCalls = append(s.CurrentCalls, location)
	if d, ok := s.ByLocation[location]; ok {
		return d
	}
	return s.Descriptor
}

func (s *StubService) Forecast(ctx context.Context, location string, target time.Time) Descriptor {
	s.ForecastCalls = append(s.ForecastCalls, ForecastCall{Location: location, Target: target})
	if d, ok := s.ByLocation[location]; ok {
		return d
	}
	return s.Descriptor
}
