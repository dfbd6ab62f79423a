// Package weather fetches current conditions for a city from the OpenWeather API.
//
// Lookups are best effort: every failure is logged and reported as a nil *Observation,
// never as an error, so callers cannot be aborted by the weather provider.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"tableBooker/internal/config"
	"tableBooker/internal/lib/logger/sl"
)

const (
	currentWeatherPath = "/data/2.5/weather"
	maxResponseBytes   = 1 << 20
)

// Observation is a temperature/description pair for a city at call time.
type Observation struct {
	// TempC is the temperature in degrees Celsius, unrounded.
	TempC       float64
	Description string
}

type Client struct {
	log     *slog.Logger
	hc      *http.Client
	baseURL string
	apiKey  string
}

func New(cfg config.Weather, log *slog.Logger) *Client {
	return &Client{
		log:     log.With(slog.String("component", "weather")),
		hc:      &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

type currentResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Current returns the current observation for city, or nil when none could be obtained.
// The city is sent verbatim; an empty or unknown city yields nil.
func (c *Client) Current(ctx context.Context, city string) *Observation {
	const op = "weather.Current"

	log := c.log.With(slog.String("op", op), slog.String("city", city))

	if c.apiKey == "" {
		log.Warn("weather api key is not configured, skipping lookup")
		return nil
	}

	obs, err := c.fetch(ctx, city)
	if err != nil {
		log.Error("failed to fetch weather", sl.Err(err))
		return nil
	}

	log.Debug("weather fetched",
		slog.Float64("temp", obs.TempC),
		slog.String("description", obs.Description),
	)

	return obs
}

func (c *Client) fetch(ctx context.Context, city string) (*Observation, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+currentWeatherPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		if e.Message != "" {
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, e.Message)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var cr currentResponse
	if err = json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	if cr.Main.Temp == nil {
		return nil, errors.New("response has no temperature")
	}
	if len(cr.Weather) == 0 {
		return nil, errors.New("response has no weather conditions")
	}

	return &Observation{
		TempC:       *cr.Main.Temp,
		Description: cr.Weather[0].Description,
	}, nil
}
