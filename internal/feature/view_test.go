package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skytracker/skytracker/internal/feature"
	"github.com/skytracker/skytracker/internal/seniverse"
)

func TestText(t *testing.T) {
	doc := seniverse.Document{
		"temperature": "21",
		"aqi":         float64(57),
		"fraction":    0.25,
		"flag":        true,
		"empty":       "",
		"null":        nil,
		"nested":      map[string]any{"name": "北京"},
	}

	assert.Equal(t, "21", feature.Text(doc, "temperature"))
	assert.Equal(t, "57", feature.Text(doc, "aqi"))
	assert.Equal(t, "0.25", feature.Text(doc, "fraction"))
	assert.Equal(t, "true", feature.Text(doc, "flag"))
	assert.Equal(t, "", feature.Text(doc, "empty"))
	assert.Equal(t, feature.Placeholder, feature.Text(doc, "null"))
	assert.Equal(t, feature.Placeholder, feature.Text(doc, "missing"))
	assert.Equal(t, feature.Placeholder, feature.Text(doc, "nested"))
	assert.Equal(t, "北京", feature.Text(doc, "nested", "name"))
}

func TestExtract(t *testing.T) {
	view := feature.Extract(seniverse.Document{"text": "晴"}, "text", "humidity")
	assert.Equal(t, feature.View{"text": "晴", "humidity": feature.Placeholder}, view)
}
