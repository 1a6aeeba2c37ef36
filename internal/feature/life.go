package feature

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/skytracker/skytracker/internal/seniverse"
)

var lunarFields = []string{
	"date", "zodiac", "ganzhi_year", "ganzhi_month", "ganzhi_day",
	"lunar_year", "lunar_month_name", "lunar_day_name", "lunar_festival", "solar_term",
}

// City is a preset location offered by the restriction screen.
type City struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// RestrictionCities are the cities with published driving restrictions.
var RestrictionCities = []City{
	{Name: "北京", ID: "WX4FBXXFKE4F"},
	{Name: "天津", ID: "WWGQDCW6TBW1"},
	{Name: "哈尔滨", ID: "YB1UX38K6DY1"},
	{Name: "成都", ID: "WM6N2PM3WY2K"},
	{Name: "杭州", ID: "WTMKQ069CCJ7"},
	{Name: "贵阳", ID: "WKEZD7MXE04F"},
	{Name: "长春", ID: "WZC1EXZ0P9HU"},
	{Name: "兰州", ID: "WQ3V4QR6VR6G"},
	{Name: "南昌", ID: "WT47HJP3HEMP"},
	{Name: "武汉", ID: "WT3Q0FW9ZJ3Q"},
}

// LifestyleSource is the subset of the client used by the lifestyle screens.
type LifestyleSource interface {
	LifestyleIndex(ctx context.Context, location string, opts ...seniverse.Option) (seniverse.Document, error)
	LunarCalendar(ctx context.Context, opts ...seniverse.Option) (seniverse.Document, error)
	VehicleRestriction(ctx context.Context, location string) (seniverse.Document, error)
}

// Restriction is the driving restriction notice for one city.
type Restriction struct {
	Penalty string `json:"penalty"`
	Region  string `json:"region"`
	Remarks string `json:"remarks"`
	Limits  []View `json:"limits"`
}

// Lifestyle drives the lifestyle index, lunar calendar and restriction screens.
type Lifestyle struct {
	source LifestyleSource

	mu      sync.Mutex
	indexes *Cursor[View]
}

// NewLifestyle creates a lifestyle controller.
func NewLifestyle(source LifestyleSource) *Lifestyle {
	return &Lifestyle{source: source}
}

// Index fetches today's suggestions for location and shows the first.
// Entries are ordered by key.
func (l *Lifestyle) Index(ctx context.Context, location string) (Page[View], error) {
	location, err := RequireText("location", location)
	if err != nil {
		return Page[View]{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	result, err := l.source.LifestyleIndex(ctx, location)
	if err != nil {
		return Page[View]{}, err
	}
	day, err := firstSuggestionDay(result)
	if err != nil {
		return Page[View]{}, err
	}

	keys := make([]string, 0, len(day))
	for key := range day {
		if key != "date" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	entries := make([]View, 0, len(keys))
	for _, key := range keys {
		value, ok := seniverse.AsDocument(day[key])
		if !ok {
			continue
		}
		entries = append(entries, View{
			"key":     key,
			"brief":   Text(value, "brief"),
			"details": Text(value, "details"),
		})
	}
	if len(entries) == 0 {
		return Page[View]{}, fmt.Errorf("suggestion: no entries: %w", seniverse.ErrNoData)
	}

	l.indexes = NewCursor(entries)
	return l.indexes.Current()
}

// firstSuggestionDay accepts suggestion as one day object or an array of days.
func firstSuggestionDay(result seniverse.Document) (seniverse.Document, error) {
	raw, ok := result.Lookup("suggestion")
	if !ok {
		return nil, fmt.Errorf("suggestion: missing: %w", seniverse.ErrNoData)
	}
	if day, ok := seniverse.AsDocument(raw); ok {
		return day, nil
	}
	return seniverse.First(result, "suggestion")
}

// NextIndex moves to the next suggestion.
func (l *Lifestyle) NextIndex() (Page[View], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexes.Next()
}

// PrevIndex moves to the previous suggestion.
func (l *Lifestyle) PrevIndex() (Page[View], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexes.Prev()
}

// LunarCalendar returns today's Chinese calendar entry.
func (l *Lifestyle) LunarCalendar(ctx context.Context) (View, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	day, err := l.source.LunarCalendar(ctx)
	if err != nil {
		return nil, err
	}
	return Extract(day, lunarFields...), nil
}

// VehicleRestriction returns the driving restriction for location.
func (l *Lifestyle) VehicleRestriction(ctx context.Context, location string) (*Restriction, error) {
	location, err := RequireText("location", location)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	result, err := l.source.VehicleRestriction(ctx, location)
	if err != nil {
		return nil, err
	}

	restriction := result.Object("restriction")
	out := &Restriction{
		Penalty: Text(restriction, "penalty"),
		Region:  Text(restriction, "region"),
		Remarks: Text(restriction, "remarks"),
		Limits:  []View{},
	}
	for _, limit := range objects(restriction, "limits") {
		out.Limits = append(out.Limits, View{
			"date":   Text(limit, "date"),
			"plates": joinPlates(limit),
			"memo":   Text(limit, "memo"),
		})
	}
	return out, nil
}

func joinPlates(limit seniverse.Document) string {
	raw, ok := limit.Lookup("plates")
	if !ok {
		return ""
	}
	arr, ok := raw.([]any)
	if !ok {
		return ""
	}
	plates := make([]string, 0, len(arr))
	for _, plate := range arr {
		plates = append(plates, scalar(plate))
	}
	return strings.Join(plates, ", ")
}
