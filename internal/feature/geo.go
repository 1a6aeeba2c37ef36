package feature

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/skytracker/skytracker/internal/seniverse"
)

// GeoSource is the subset of the client used by the sun and moon screens.
type GeoSource interface {
	SunTimes(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	MoonTimes(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
}

// SunDay is one day of sunrise and sunset. Hours are decimal hours of day.
type SunDay struct {
	Date         string  `json:"date"`
	Sunrise      string  `json:"sunrise"`
	Sunset       string  `json:"sunset"`
	SunriseHours float64 `json:"sunrise_hours"`
	SunsetHours  float64 `json:"sunset_hours"`
}

// MoonDay is one day of moonrise, moonset and phase.
type MoonDay struct {
	Date      string  `json:"date"`
	Rise      string  `json:"rise"`
	Set       string  `json:"set"`
	RiseHours float64 `json:"rise_hours"`
	SetHours  float64 `json:"set_hours"`
	Fraction  float64 `json:"fraction"`
	Phase     float64 `json:"phase"`
	PhaseName string  `json:"phase_name"`
}

// SunSeries is the sun screen payload.
type SunSeries struct {
	Location string   `json:"location"`
	Days     []SunDay `json:"days"`
}

// MoonSeries is the moon screen payload.
type MoonSeries struct {
	Location string    `json:"location"`
	Days     []MoonDay `json:"days"`
}

// Geo drives the sun and moon screens.
type Geo struct {
	source GeoSource
	mu     sync.Mutex
}

// NewGeo creates a geography controller.
func NewGeo(source GeoSource) *Geo {
	return &Geo{source: source}
}

// Sun returns days days of sunrise and sunset for location.
func (g *Geo) Sun(ctx context.Context, location, days string) (*SunSeries, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}
	n, err := ParseDays(days)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	result, err := g.source.SunTimes(ctx, location, seniverse.WithDays(n))
	if err != nil {
		return nil, err
	}
	items, err := seniverse.Items(result, "sun")
	if err != nil {
		return nil, err
	}

	series := &SunSeries{Location: Text(result, "location", "name")}
	for _, item := range items {
		day := SunDay{
			Date:    Text(item, "date"),
			Sunrise: Text(item, "sunrise"),
			Sunset:  Text(item, "sunset"),
		}
		if day.SunriseHours, err = decimalHours("sunrise", day.Sunrise); err != nil {
			return nil, err
		}
		if day.SunsetHours, err = decimalHours("sunset", day.Sunset); err != nil {
			return nil, err
		}
		series.Days = append(series.Days, day)
	}
	return series, nil
}

// Moon returns days days of moon times and phase for location. Missing rise
// or set times, common around the new moon, convert to zero.
func (g *Geo) Moon(ctx context.Context, location, days string) (*MoonSeries, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}
	n, err := ParseDays(days)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	result, err := g.source.MoonTimes(ctx, location, seniverse.WithDays(n))
	if err != nil {
		return nil, err
	}
	items, err := seniverse.Items(result, "moon")
	if err != nil {
		return nil, err
	}

	series := &MoonSeries{Location: Text(result, "location", "name")}
	for _, item := range items {
		day := MoonDay{
			Date:      Text(item, "date"),
			Rise:      Text(item, "rise"),
			Set:       Text(item, "set"),
			PhaseName: Text(item, "phase_name"),
		}
		if day.RiseHours, err = optionalHours("rise", day.Rise); err != nil {
			return nil, err
		}
		if day.SetHours, err = optionalHours("set", day.Set); err != nil {
			return nil, err
		}
		if day.Fraction, err = numberAt(item, "fraction"); err != nil {
			return nil, err
		}
		if day.Phase, err = numberAt(item, "phase"); err != nil {
			return nil, err
		}
		series.Days = append(series.Days, day)
	}
	return series, nil
}

// decimalHours converts "HH:MM" to hours, so "06:30" is 6.5.
func decimalHours(field, s string) (float64, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, &FormatError{Field: field, Value: s}
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, &FormatError{Field: field, Value: s}
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, &FormatError{Field: field, Value: s}
	}
	return float64(h) + float64(m)/60, nil
}

// optionalHours is decimalHours with empty or colon-less values as zero.
func optionalHours(field, s string) (float64, error) {
	if s == "" || s == Placeholder || !strings.Contains(s, ":") {
		return 0, nil
	}
	return decimalHours(field, s)
}

func numberAt(doc seniverse.Document, field string) (float64, error) {
	v, ok := doc.Lookup(field)
	if !ok {
		return 0, &FormatError{Field: field, Value: Placeholder}
	}
	return parseNumber(field, v)
}
