package feature

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/skytracker/skytracker/internal/seniverse"
)

var (
	currentAirFields = []string{
		"aqi", "pm25", "pm10", "so2", "no2", "co", "o3",
		"primary_pollutant", "last_update", "quality",
	}

	dailyAirFields = []string{"date", "aqi", "pm25", "pm10", "so2", "no2", "co", "o3", "quality"}

	hourlyAirFields = []string{"time", "aqi", "pm25", "pm10", "so2", "no2", "co", "o3", "quality"}

	historyAirFields = []string{"aqi", "pm25", "pm10", "so2", "no2", "co", "o3", "quality", "last_update"}
)

// AirQualitySource is the subset of the client used by the air screens.
type AirQualitySource interface {
	CurrentAirQuality(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	AirQualityRanking(ctx context.Context, opts ...seniverse.Option) (seniverse.Document, error)
	HourlyAirQualityHistory(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	DailyAirQuality(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	HourlyAirQuality(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
}

// RankingEntry is one city of the air quality ranking.
type RankingEntry struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Path string `json:"path"`
	AQI  string `json:"aqi"`
}

// AirQuality drives the air quality screens.
type AirQuality struct {
	source AirQualitySource

	mu      sync.Mutex
	ranking []RankingEntry
	daily   *Cursor[View]
}

// NewAirQuality creates an air quality controller.
func NewAirQuality(source AirQualitySource) *AirQuality {
	return &AirQuality{source: source}
}

// Current returns the city-level air quality for location.
func (a *AirQuality) Current(ctx context.Context, location string) (View, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.source.CurrentAirQuality(ctx, location)
	if err != nil {
		return nil, err
	}
	result, err := seniverse.First(doc, "results")
	if err != nil {
		return nil, err
	}

	view := Extract(result.Object("air", "city"), currentAirFields...)
	view["name"] = Text(result, "location", "name")
	return view, nil
}

// Ranking fetches the national ranking. Ranks follow vendor order.
func (a *AirQuality) Ranking(ctx context.Context) ([]RankingEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.source.AirQualityRanking(ctx)
	if err != nil {
		return nil, err
	}
	items, err := seniverse.Items(doc, "results")
	if err != nil {
		return nil, err
	}

	ranking := make([]RankingEntry, 0, len(items))
	for i, item := range items {
		ranking = append(ranking, RankingEntry{
			Rank: i + 1,
			Name: Text(item, "location", "name"),
			Path: collapsePath(Text(item, "location", "path")),
			AQI:  Text(item, "aqi"),
		})
	}
	a.ranking = ranking
	return ranking, nil
}

// FilterRanking returns the entries of the last ranking whose name contains
// query, ignoring case. Ranks are preserved.
func (a *AirQuality) FilterRanking(query string) ([]RankingEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ranking == nil {
		return nil, errNotLoaded
	}

	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]RankingEntry, 0, len(a.ranking))
	for _, entry := range a.ranking {
		if strings.Contains(strings.ToLower(entry.Name), query) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// collapsePath drops consecutive repeats from a comma separated place path,
// so "北京,北京,中国" becomes "北京, 中国".
func collapsePath(path string) string {
	if path == Placeholder {
		return path
	}
	parts := strings.Split(path, ",")
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i == 0 || part != parts[i-1] {
			out = append(out, part)
		}
	}
	return strings.Join(out, ", ")
}

// Daily fetches the daily forecast and shows the first day.
func (a *AirQuality) Daily(ctx context.Context, location string) (Page[View], error) {
	location, err := RequireText("location", location)
	if err != nil {
		return Page[View]{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.source.DailyAirQuality(ctx, location)
	if err != nil {
		return Page[View]{}, err
	}
	result, err := seniverse.First(doc, "results")
	if err != nil {
		return Page[View]{}, err
	}
	items, err := seniverse.Items(result, "daily")
	if err != nil {
		return Page[View]{}, err
	}

	a.daily = NewCursor(ExtractAll(items, dailyAirFields...))
	return a.daily.Current()
}

// NextDay moves to the next forecast day.
func (a *AirQuality) NextDay() (Page[View], error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.daily.Next()
}

// PrevDay moves to the previous forecast day.
func (a *AirQuality) PrevDay() (Page[View], error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.daily.Prev()
}

// Hourly returns the hourly forecast.
func (a *AirQuality) Hourly(ctx context.Context, location string) (*Series, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.source.HourlyAirQuality(ctx, location)
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
		Points:   ExtractAll(items, hourlyAirFields...),
	}, nil
}

// HourlyHistory returns the city readings of the past day.
func (a *AirQuality) HourlyHistory(ctx context.Context, location string) (*Series, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.source.HourlyAirQualityHistory(ctx, location)
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

	points := make([]View, 0, len(items))
	for _, item := range items {
		city, ok := item.Lookup("city")
		if !ok {
			continue
		}
		if obj, ok := seniverse.AsDocument(city); ok {
			points = append(points, Extract(obj, historyAirFields...))
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("hourly_history: no city readings: %w", seniverse.ErrNoData)
	}

	return &Series{
		Location: Text(result, "location", "name"),
		Points:   points,
	}, nil
}
