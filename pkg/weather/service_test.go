package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forecal/forecal/internal/utils"
	"github.com/stretchr/testify/assert"
)

func setupServiceTest() (*ServiceImpl, *StubClient, *utils.MockClock) {
	client := NewStubClient()
	clock := &utils.MockClock{FixedNow: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)}
	return NewService(client, clock), client, clock
}

func TestService_Forecast_BeyondHorizon(t *testing.T) {
	service, client, clock := setupServiceTest()

	got := service.Forecast(context.Background(), "Berlin", clock.Now().AddDate(0, 0, 20))

	assert.True(t, got.IsUnavailable())
	assert.Equal(t, 0, client.ForecastCalls)
	assert.Equal(t, 0, client.CurrentCalls)
}

func TestService_Forecast_NowishUsesCurrent(t *testing.T) {
	service, client, clock := setupServiceTest()
	client.CurrentSlot = HourlySlot{Time: clock.Now(), TemperatureC: 17.6, WeatherCode: 61}

	got := service.Forecast(context.Background(), "Berlin", clock.Now().Add(30*time.Minute))

	assert.Equal(t, 1, client.CurrentCalls)
	assert.Equal(t, 0, client.ForecastCalls)
	assert.Equal(t, Descriptor{Condition: "rain", TemperatureC: 18}, got)
}

func TestService_Forecast_MatchesDayAndHour(t *testing.T) {
	service, client, _ := setupServiceTest()
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	client.Slots = []HourlySlot{
		{Time: day.Add(9 * time.Hour), TemperatureC: 14.0, WeatherCode: 3},
		{Time: day.Add(10 * time.Hour), TemperatureC: 15.2, WeatherCode: 2},
		{Time: day.Add(11 * time.Hour), TemperatureC: 16.0, WeatherCode: 0},
	}

	got := service.Forecast(context.Background(), "Berlin", day.Add(10*time.Hour+30*time.Minute))

	assert.Equal(t, Descriptor{Condition: "partly cloudy", TemperatureC: 15}, got)
}

func TestService_Forecast_FallsBackToFirstSlotOfDay(t *testing.T) {
	service, client, _ := setupServiceTest()
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	client.Slots = []HourlySlot{
		{Time: day.Add(9 * time.Hour), TemperatureC: 14.0, WeatherCode: 3},
		{Time: day.Add(10 * time.Hour), TemperatureC: 15.2, WeatherCode: 2},
	}

	// 22:00 has no slot, so the day's first slot is used.
	got := service.Forecast(context.Background(), "Berlin", day.Add(22*time.Hour))

	assert.Equal(t, Descriptor{Condition: "cloudy", TemperatureC: 14}, got)
}

func TestService_Forecast_NoMatchingDay(t *testing.T) {
	service, client, _ := setupServiceTest()
	client.Slots = []HourlySlot{
		{Time: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC), TemperatureC: 14.0, WeatherCode: 3},
	}

	got := service.Forecast(context.Background(), "Berlin", time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC))

	assert.True(t, got.IsUnavailable())
}

func TestService_Forecast_ClientErrorDegrades(t *testing.T) {
	service, client, clock := setupServiceTest()
	client.ForecastErr = errors.New("dns failure")

	got := service.Forecast(context.Background(), "Berlin", clock.Now().AddDate(0, 0, 3))

	assert.True(t, got.IsUnavailable())
}

func TestService_Current(t *testing.T) {
	service, client, clock := setupServiceTest()
	client.CurrentSlot = HourlySlot{Time: clock.Now(), TemperatureC: -2.4, WeatherCode: 73}

	got := service.Current(context.Background(), "Oslo")
	assert.Equal(t, Descriptor{Condition: "snow", TemperatureC: -2}, got)

	client.CurrentErr = errors.New("timeout")
	got = service.Current(context.Background(), "Oslo")
	assert.True(t, got.IsUnavailable())
}

func TestConditionFromCode(t *testing.T) {
	testCases := []struct {
		code int
		want string
	}{
		{0, "clear"},
		{3, "cloudy"},
		{48, "fog"},
		{55, "drizzle"},
		{65, "rain"},
		{75, "snow"},
		{81, "rain showers"},
		{95, "thunderstorm"},
		{99, "thunderstorm with hail"},
		{42, "unknown"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, conditionFromCode(tc.code), "code %d", tc.code)
	}
}
