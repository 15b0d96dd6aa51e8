package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// hourlyTimeLayout is the timestamp format Open-Meteo uses for hourly slots
// (local time of the queried coordinates, no zone suffix).
const hourlyTimeLayout = "2006-01-02T15:04"

// HourlySlot is a single raw forecast entry before normalization.
type HourlySlot struct {
	Time         time.Time
	TemperatureC float64
	WeatherCode  int
}

type Client interface {
	CurrentConditions(ctx context.Context, location string) (HourlySlot, error) // /v1/forecast?current=...
	HourlyForecast(ctx context.Context, location string) ([]HourlySlot, error)  // /v1/forecast?hourly=...
}

type coordinates struct {
	Latitude  float64
	Longitude float64
}

type OpenMeteoClient struct {
	httpClient  *http.Client
	forecastUrl string
	geocodeUrl  string

	mu       sync.Mutex
	geoCache map[string]coordinates
}

func NewOpenMeteoClient(forecastUrl, geocodeUrl string) *OpenMeteoClient {
	return &OpenMeteoClient{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		forecastUrl: forecastUrl,
		geocodeUrl:  geocodeUrl,
		geoCache:    map[string]coordinates{},
	}
}

// resolveLocation turns a free-form location string into coordinates using the
// Open-Meteo geocoding API. Results are cached per location name.
func (c *OpenMeteoClient) resolveLocation(ctx context.Context, location string) (coordinates, error) {
	c.mu.Lock()
	cached, ok := c.geoCache[location]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	// According to the Open-Meteo docs, the geocoding endpoint is:
	// GET https://geocoding-api.open-meteo.com/v1/search?name={name}&count=1
	reqUrl := fmt.Sprintf("%s?name=%s&count=1", c.geocodeUrl, url.QueryEscape(location))
	req, err := http.NewRequestWithContext(ctx, "GET", reqUrl, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return coordinates{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocoding API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return coordinates{}, err
	}

	var response struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return coordinates{}, err
	}
	if len(response.Results) == 0 {
		return coordinates{}, fmt.Errorf("no geocoding result for location %q", location)
	}

	coords := coordinates{
		Latitude:  response.Results[0].Latitude,
		Longitude: response.Results[0].Longitude,
	}

	c.mu.Lock()
	c.geoCache[location] = coords
	c.mu.Unlock()

	return coords, nil
}

// CurrentConditions retrieves the point-in-time weather snapshot for a location
func (c *OpenMeteoClient) CurrentConditions(ctx context.Context, location string) (HourlySlot, error) {
	coords, err := c.resolveLocation(ctx, location)
	if err != nil {
		return HourlySlot{}, err
	}

	reqUrl := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,weather_code&timezone=auto",
		c.forecastUrl, coords.Latitude, coords.Longitude)
	req, err := http.NewRequestWithContext(ctx, "GET", reqUrl, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return HourlySlot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return HourlySlot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("forecast API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return HourlySlot{}, err
	}

	var response struct {
		Current struct {
			Time         string  `json:"time"`
			TemperatureC float64 `json:"temperature_2m"`
			WeatherCode  int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return HourlySlot{}, err
	}

	observedAt, err := time.Parse(hourlyTimeLayout, response.Current.Time)
	if err != nil {
		return HourlySlot{}, fmt.Errorf("could not parse observation time %q: %w", response.Current.Time, err)
	}

	return HourlySlot{
		Time:         observedAt,
		TemperatureC: response.Current.TemperatureC,
		WeatherCode:  response.Current.WeatherCode,
	}, nil
}

// HourlyForecast retrieves hourly forecast slots for the full provider horizon
func (c *OpenMeteoClient) HourlyForecast(ctx context.Context, location string) ([]HourlySlot, error) {
	coords, err := c.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	reqUrl := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&hourly=temperature_2m,weather_code&forecast_days=%d&timezone=auto",
		c.forecastUrl, coords.Latitude, coords.Longitude, ForecastHorizonDays)
	req, err := http.NewRequestWithContext(ctx, "GET", reqUrl, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("forecast API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var response struct {
		Hourly struct {
			Time         []string  `json:"time"`
			TemperatureC []float64 `json:"temperature_2m"`
			WeatherCode  []int     `json:"weather_code"`
		} `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, err
	}

	if len(response.Hourly.Time) != len(response.Hourly.TemperatureC) ||
		len(response.Hourly.Time) != len(response.Hourly.WeatherCode) {
		return nil, fmt.Errorf("forecast API returned misaligned hourly series")
	}

	slots := make([]HourlySlot, 0, len(response.Hourly.Time))
	for i, raw := range response.Hourly.Time {
		slotTime, err := time.Parse(hourlyTimeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("could not parse forecast time %q: %w", raw, err)
		}
		slots = append(slots, HourlySlot{
			Time:         slotTime,
			TemperatureC: response.Hourly.TemperatureC[i],
			WeatherCode:  response.Hourly.WeatherCode[i],
		})
	}

	return slots, nil
}
