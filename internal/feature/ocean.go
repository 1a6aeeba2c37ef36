package feature

import (
	"context"
	"strconv"
	"sync"

	"github.com/skytracker/skytracker/internal/seniverse"
)

// OceanSource is the subset of the client used by the tide screen.
type OceanSource interface {
	TideForecast(ctx context.Context, port string) (seniverse.Document, error)
}

// TideDay holds the hourly tide heights of one day in centimetres.
type TideDay struct {
	Date    string    `json:"date"`
	Heights []float64 `json:"heights"`
}

// Ocean drives the tide forecast screen.
type Ocean struct {
	source OceanSource

	mu   sync.Mutex
	days *Cursor[TideDay]
}

// NewOcean creates an ocean controller.
func NewOcean(source OceanSource) *Ocean {
	return &Ocean{source: source}
}

// Tide fetches the tide forecast for port and shows the first day.
// Every height must be numeric or the whole forecast is rejected.
func (o *Ocean) Tide(ctx context.Context, port string) (Page[TideDay], error) {
	port, err := RequireText("port", port)
	if err != nil {
		return Page[TideDay]{}, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	result, err := o.source.TideForecast(ctx, port)
	if err != nil {
		return Page[TideDay]{}, err
	}
	items, err := seniverse.Items(result, "data")
	if err != nil {
		return Page[TideDay]{}, err
	}

	days := make([]TideDay, 0, len(items))
	for _, item := range items {
		heights, err := tideHeights(item)
		if err != nil {
			return Page[TideDay]{}, err
		}
		days = append(days, TideDay{Date: Text(item, "date"), Heights: heights})
	}

	o.days = NewCursor(days)
	return o.days.Current()
}

func tideHeights(day seniverse.Document) ([]float64, error) {
	raw, ok := day.Lookup("tide")
	if !ok {
		return []float64{}, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, &FormatError{Field: "tide", Value: scalar(raw)}
	}

	heights := make([]float64, 0, len(arr))
	for _, v := range arr {
		h, err := parseNumber("tide", v)
		if err != nil {
			return nil, err
		}
		heights = append(heights, h)
	}
	return heights, nil
}

// parseNumber accepts JSON numbers and numeric strings.
func parseNumber(field string, v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, &FormatError{Field: field, Value: t}
		}
		return f, nil
	default:
		return 0, &FormatError{Field: field, Value: scalar(v)}
	}
}

// NextDay moves to the next tide day.
func (o *Ocean) NextDay() (Page[TideDay], error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.days.Next()
}

// PrevDay moves to the previous tide day.
func (o *Ocean) PrevDay() (Page[TideDay], error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.days.Prev()
}
