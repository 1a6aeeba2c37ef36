// Package seniverse is the data-access client for the Seniverse v3 weather,
// air quality, lifestyle, ocean and geography API.
package seniverse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skytracker/skytracker/internal/provider/resilience"
)

const (
	// ProviderName identifies this vendor in the resilience registry.
	ProviderName = "seniverse"

	// DefaultBaseURL is the Seniverse v3 API base URL.
	DefaultBaseURL = "https://api.seniverse.com/v3"

	// maxErrorBody bounds how much of an error body is read for its status.
	maxErrorBody = 4 << 10
)

// ClientConfig holds configuration for the Seniverse client.
type ClientConfig struct {
	// APIKey is the initial credential (optional, may be set later).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the guarded transport (optional).
	// If nil, uses a resilience client with defaults.
	HTTPClient *resilience.Client

	// Registry receives the outcome of every call (optional).
	Registry *resilience.Registry

	// Metrics records call duration and counts (optional).
	Metrics *Metrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is the single point of HTTP access to the vendor.
// It is safe for concurrent use; the API key is the only mutable state.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	registry   *resilience.Registry
	metrics    *Metrics
	tracer     trace.Tracer
	logger     zerolog.Logger

	mu     sync.RWMutex
	apiKey string
}

// NewClient creates a new Seniverse client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	if cfg.Registry != nil {
		cfg.Registry.Register(httpClient)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		registry:   cfg.Registry,
		metrics:    cfg.Metrics,
		tracer:     otel.Tracer(instrumentationName),
		logger:     cfg.Logger,
		apiKey:     strings.TrimSpace(cfg.APIKey),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// SetAPIKey replaces the credential used by subsequent calls.
// An empty key returns the client to the unconfigured state.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = strings.TrimSpace(key)
}

// HasAPIKey reports whether a credential is set.
func (c *Client) HasAPIKey() bool {
	return c.key() != ""
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// CurrentWeather fetches current conditions.
func (c *Client) CurrentWeather(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	q := p.query("language", "unit")
	q.Set("location", location)
	return c.get(ctx, "current_weather", "weather/now.json", q)
}

// DailyForecast fetches the daily forecast series (default 5 days).
func (c *Client) DailyForecast(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(5, 0, opts)
	q := p.query("language", "unit", "start", "days")
	q.Set("location", location)
	return c.get(ctx, "daily_forecast", "weather/daily.json", q)
}

// HourlyForecast fetches the hourly forecast series (default 24 hours).
func (c *Client) HourlyForecast(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 24, opts)
	q := p.query("language", "unit", "start", "hours")
	q.Set("location", location)
	return c.get(ctx, "hourly_forecast", "weather/hourly.json", q)
}

// HourlyHistory fetches the past 24 hours of observations.
func (c *Client) HourlyHistory(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	q := p.query("language", "unit")
	q.Set("location", location)
	return c.get(ctx, "hourly_history", "weather/hourly_history.json", q)
}

// WeatherAlerts fetches active weather alarms.
func (c *Client) WeatherAlerts(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	q := p.query("detail")
	q.Set("location", location)
	return c.get(ctx, "weather_alerts", "weather/alarm.json", q)
}

// CurrentAirQuality fetches current air quality.
func (c *Client) CurrentAirQuality(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	q := p.query("language", "scope")
	q.Set("location", location)
	return c.get(ctx, "current_air_quality", "air/now.json", q)
}

// AirQualityRanking fetches the city air quality ranking.
func (c *Client) AirQualityRanking(ctx context.Context, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	return c.get(ctx, "air_quality_ranking", "air/ranking.json", p.query("language"))
}

// HourlyAirQualityHistory fetches the past 24 hours of air quality.
func (c *Client) HourlyAirQualityHistory(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	q := p.query("language", "scope")
	q.Set("location", location)
	return c.get(ctx, "hourly_air_quality_history", "air/hourly_history.json", q)
}

// DailyAirQuality fetches the daily air quality forecast.
func (c *Client) DailyAirQuality(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	q := p.query("language")
	q.Set("location", location)
	return c.get(ctx, "daily_air_quality", "air/daily.json", q)
}

// HourlyAirQuality fetches the hourly air quality forecast.
func (c *Client) HourlyAirQuality(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(0, 0, opts)
	q := p.query("language")
	q.Set("location", location)
	return c.get(ctx, "hourly_air_quality", "air/hourly.json", q)
}

// LifestyleIndex fetches lifestyle suggestions and returns the first result.
// The returned element still carries the full suggestion data.
func (c *Client) LifestyleIndex(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(1, 0, opts)
	q := p.query("language", "days")
	q.Set("location", location)
	return c.first(ctx, "lifestyle_index", "life/suggestion.json", q)
}

// LunarCalendar fetches the Chinese calendar and returns the first day.
func (c *Client) LunarCalendar(ctx context.Context, opts ...Option) (Document, error) {
	days, err := c.LunarCalendarDays(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return days[0], nil
}

// LunarCalendarDays fetches the Chinese calendar and returns every day.
// The vendor nests the days under results.chinese_calendar; a top-level
// results array is accepted as well.
func (c *Client) LunarCalendarDays(ctx context.Context, opts ...Option) ([]Document, error) {
	p := newParams(1, 0, opts)
	doc, err := c.get(ctx, "lunar_calendar", "life/chinese_calendar.json", p.query("start", "days"))
	if err != nil {
		return nil, err
	}
	if _, nested := doc.Lookup("results", "chinese_calendar"); nested {
		return Items(doc, "results", "chinese_calendar")
	}
	return Items(doc, "results")
}

// VehicleRestriction fetches driving restrictions and returns the first result.
func (c *Client) VehicleRestriction(ctx context.Context, location string) (Document, error) {
	q := url.Values{}
	q.Set("location", location)
	return c.first(ctx, "vehicle_restriction", "life/driving_restriction.json", q)
}

// TideForecast fetches the tide forecast for a port and returns the first result.
func (c *Client) TideForecast(ctx context.Context, port string) (Document, error) {
	q := url.Values{}
	q.Set("port", port)
	return c.first(ctx, "tide_forecast", "tide/daily.json", q)
}

// SunTimes fetches sunrise and sunset times and returns the first result.
func (c *Client) SunTimes(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(1, 0, opts)
	q := p.query("language", "start", "days")
	q.Set("location", location)
	return c.first(ctx, "sun_times", "geo/sun.json", q)
}

// MoonTimes fetches moonrise, moonset and phase and returns the first result.
func (c *Client) MoonTimes(ctx context.Context, location string, opts ...Option) (Document, error) {
	p := newParams(1, 0, opts)
	q := p.query("language", "start", "days")
	q.Set("location", location)
	return c.first(ctx, "moon_times", "geo/moon.json", q)
}

// SearchLocations searches places by name and returns the whole result list.
func (c *Client) SearchLocations(ctx context.Context, query string) (Document, error) {
	q := url.Values{}
	q.Set("q", query)
	return c.get(ctx, "search_locations", "location/search.json", q)
}

// LookupLocation searches places by name and returns the best match.
func (c *Client) LookupLocation(ctx context.Context, query string) (Document, error) {
	q := url.Values{}
	q.Set("q", query)
	return c.first(ctx, "lookup_location", "location/search.json", q)
}

// first performs a call and normalizes it to the first element of results.
func (c *Client) first(ctx context.Context, operation, path string, q url.Values) (Document, error) {
	doc, err := c.get(ctx, operation, path, q)
	if err != nil {
		return nil, err
	}
	return First(doc, "results")
}

// get performs one GET against path and decodes the JSON body.
func (c *Client) get(ctx context.Context, operation, path string, q url.Values) (doc Document, err error) {
	key := c.key()
	if key == "" {
		return nil, ErrNotConfigured
	}

	ctx, span := c.tracer.Start(ctx, "seniverse."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("seniverse.path", path)),
	)
	start := time.Now()
	defer func() {
		c.metrics.record(ctx, operation, time.Since(start), err)
		if c.registry != nil {
			c.registry.Record(ProviderName, err)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	q.Set("key", key)
	endpoint := c.baseURL + "/" + path + "?" + q.Encode()

	c.logger.Debug().
		Str("operation", operation).
		Str("path", path).
		Msg("calling seniverse")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, &RequestError{Path: path, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Path: path, Err: fmt.Errorf("executing request: %w", stripURL(err))}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     vendorStatus(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &RequestError{Path: path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if doc == nil {
		doc = Document{}
	}

	return doc, nil
}

// vendorStatus extracts the "status" message of a vendor error body.
func vendorStatus(body io.Reader) string {
	var errBody struct {
		Status     string `json:"status"`
		StatusCode string `json:"status_code"`
	}
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&errBody); err != nil {
		return ""
	}
	if errBody.StatusCode != "" && errBody.Status != "" {
		return errBody.StatusCode + " " + errBody.Status
	}
	return errBody.Status
}

// stripURL drops the request URL from transport errors; it carries the key.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
