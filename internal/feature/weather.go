package feature

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/skytracker/skytracker/internal/seniverse"
)

var (
	locationFields = []string{"name", "country", "timezone"}

	nowFields = []string{
		"text", "temperature", "feels_like", "pressure", "humidity", "visibility",
		"wind_direction", "wind_direction_degree", "wind_speed", "wind_scale",
		"clouds", "dew_point",
	}

	dailyFields = []string{
		"date", "text_day", "text_night", "high", "low", "precip",
		"wind_direction", "wind_speed", "wind_scale", "humidity",
	}

	hourlyFields = []string{"time", "text", "temperature", "humidity", "wind_direction", "wind_speed"}

	historyFields = []string{
		"last_update", "text", "temperature", "feels_like", "pressure", "humidity",
		"visibility", "wind_direction", "wind_speed", "clouds", "dew_point",
	}

	alarmFields = []string{"title", "type", "level", "description", "pub_date"}
)

// WeatherSource is the subset of the client used by the weather screens.
type WeatherSource interface {
	CurrentWeather(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	DailyForecast(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	HourlyForecast(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	HourlyHistory(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	WeatherAlerts(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
}

// Weather drives the current, forecast, history and alert screens.
type Weather struct {
	source WeatherSource

	mu     sync.Mutex
	alerts *Cursor[View]
}

// NewWeather creates a weather controller.
func NewWeather(source WeatherSource) *Weather {
	return &Weather{source: source}
}

// Current returns current conditions for location.
func (w *Weather) Current(ctx context.Context, location string) (View, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.source.CurrentWeather(ctx, location)
	if err != nil {
		return nil, err
	}
	result, err := seniverse.First(doc, "results")
	if err != nil {
		return nil, err
	}

	view := Extract(result.Object("location"), locationFields...).
		merge(Extract(result.Object("now"), nowFields...))
	view["last_update"] = Text(result, "last_update")
	return view, nil
}

// Daily returns a forecast of days days. The headline is the first day.
func (w *Weather) Daily(ctx context.Context, location, days string) (*Series, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}
	n, err := ParseDays(days)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.source.DailyForecast(ctx, location, seniverse.WithDays(n))
	if err != nil {
		return nil, err
	}
	result, err := seniverse.First(doc, "results")
	if err != nil {
		return nil, err
	}
	items, err := seniverse.Items(result, "daily")
	if err != nil {
		return nil, err
	}

	points := ExtractAll(items, dailyFields...)
	return &Series{
		Location: Text(result, "location", "name"),
		Headline: View{"text_day": points[0]["text_day"], "text_night": points[0]["text_night"]},
		Points:   points,
	}, nil
}

// Hourly returns a forecast of hours hours.
func (w *Weather) Hourly(ctx context.Context, location, hours string) (*Series, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}
	n, err := ParseHours(hours)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.source.HourlyForecast(ctx, location, seniverse.WithHours(n))
	if err != nil {
		return nil, err
	}
	result, err := seniverse.First(doc, "results")
	if err != nil {
		return nil, err
	}
	items, err := seniverse.Items(result, "hourly")
	if err != nil {
		return nil, err
	}

	return &Series{
		Location: Text(result, "location", "name"),
		Points:   ExtractAll(items, hourlyFields...),
	}, nil
}

// History returns the past day of observations, one per hour of day, oldest
// first. The newest point is dropped when more than one remains.
func (w *Weather) History(ctx context.Context, location string) (*Series, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.source.HourlyHistory(ctx, location)
	if err != nil {
		return nil, err
	}
	result, err := seniverse.First(doc, "results")
	if err != nil {
		return nil, err
	}
	items, err := seniverse.Items(result, "hourly_history")
	if err != nil {
		return nil, err
	}

	points := ExtractAll(items, historyFields...)
	points = dedupeByHour(points)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i]["last_update"] < points[j]["last_update"]
	})
	if len(points) > 1 {
		points = points[:len(points)-1]
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("hourly_history: no timestamped entries: %w", seniverse.ErrNoData)
	}

	return &Series{
		Location: Text(result, "location", "name"),
		Points:   points,
	}, nil
}

// dedupeByHour keeps the first point seen for each hour of day and drops
// points without a timestamp.
func dedupeByHour(points []View) []View {
	seen := make(map[string]bool, len(points))
	unique := make([]View, 0, len(points))
	for _, p := range points {
		ts := p["last_update"]
		if ts == Placeholder || ts == "" {
			continue
		}
		hour := hourOf(ts)
		if seen[hour] {
			continue
		}
		seen[hour] = true
		unique = append(unique, p)
	}
	return unique
}

// hourOf returns the two-digit hour of an ISO 8601 timestamp.
func hourOf(ts string) string {
	if i := strings.LastIndexByte(ts, 'T'); i >= 0 {
		ts = ts[i+1:]
	}
	if len(ts) > 2 {
		ts = ts[:2]
	}
	return ts
}

// Alerts fetches active alarms for location and shows the first.
func (w *Weather) Alerts(ctx context.Context, location string) (Page[View], error) {
	location, err := RequireText("location", location)
	if err != nil {
		return Page[View]{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.source.WeatherAlerts(ctx, location)
	if err != nil {
		return Page[View]{}, err
	}
	result, err := seniverse.First(doc, "results")
	if err != nil {
		return Page[View]{}, err
	}
	items, err := seniverse.Items(result, "alarms")
	if err != nil {
		return Page[View]{}, err
	}

	w.alerts = NewCursor(ExtractAll(items, alarmFields...))
	return w.alerts.Current()
}

// NextAlert moves to the next alarm.
func (w *Weather) NextAlert() (Page[View], error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.alerts.Next()
}

// PrevAlert moves to the previous alarm.
func (w *Weather) PrevAlert() (Page[View], error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.alerts.Prev()
}
