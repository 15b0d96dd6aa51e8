package weather

import "context"

type StubClient struct {
	CurrentSlot HourlySlot
	CurrentErr  error
	Slots       []HourlySlot
	ForecastErr error

	CurrentCalls  int
	ForecastCalls int
}

func NewStubClient() *StubClient {
	return &StubClient{}
}

func (c *StubClient) CurrentConditions(ctx context.Context, location string) (HourlySlot, error) {
	c.CurrentCalls++
	if c.CurrentErr != nil {
		return HourlySlot{}, c.CurrentErr
	}
	return c.CurrentSlot, nil
}

func (c *StubClient) HourlyForecast(ctx context.Context, location string) ([]HourlySlot, error) {
	c.ForecastCalls++
	if c.ForecastErr != nil {
		return nil, c.ForecastErr
	}
	return c.Slots, nil
}
