// Package feature holds the per-category controllers behind the feature
// screens. Controllers validate input, make one client call, and flatten the
// vendor document into display values.
package feature

import (
	"encoding/json"
	"strconv"

	"github.com/skytracker/skytracker/internal/seniverse"
)

// Placeholder is shown for any field the vendor did not send.
const Placeholder = "暂无数据"

// View is a flat set of display values keyed by vendor field name.
type View map[string]string

// Text renders the scalar at path as a string, or Placeholder when it is
// missing or not a scalar.
func Text(doc seniverse.Document, path ...any) string {
	v, ok := doc.Lookup(path...)
	if !ok {
		return Placeholder
	}
	return scalar(v)
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return Placeholder
	}
}

// Extract builds a View holding each key of doc.
func Extract(doc seniverse.Document, keys ...string) View {
	view := make(View, len(keys))
	for _, key := range keys {
		view[key] = Text(doc, key)
	}
	return view
}

// ExtractAll applies Extract to every document.
func ExtractAll(docs []seniverse.Document, keys ...string) []View {
	views := make([]View, 0, len(docs))
	for _, doc := range docs {
		views = append(views, Extract(doc, keys...))
	}
	return views
}

// merge copies other into v and returns v.
func (v View) merge(other View) View {
	for key, value := range other {
		v[key] = value
	}
	return v
}

// Series is a titled list of points, as drawn by the chart screens.
type Series struct {
	Location string `json:"location"`
	Headline View   `json:"headline,omitempty"`
	Points   []View `json:"points"`
}

// objects returns the object elements of the array at path, or nil.
func objects(doc seniverse.Document, path ...any) []seniverse.Document {
	items, err := seniverse.Items(doc, path...)
	if err != nil {
		return nil
	}
	return items
}
