package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytracker/skytracker/internal/feature"
	"github.com/skytracker/skytracker/internal/seniverse"
)

func TestParseDays(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: "15", want: 15},
		{input: " 7 ", want: 7},
		{input: "0", wantErr: true},
		{input: "16", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "+3", wantErr: true},
		{input: "3.5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "99999999999999999999", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := feature.ParseDays(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, seniverse.ErrInvalidInput)
				var inputErr *feature.InputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, "days", inputErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseHours(t *testing.T) {
	for _, ok := range []string{"1", "12", "24"} {
		_, err := feature.ParseHours(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"0", "25", "x", ""} {
		_, err := feature.ParseHours(bad)
		assert.ErrorIs(t, err, seniverse.ErrInvalidInput, bad)
	}
}

func TestRequireText(t *testing.T) {
	got, err := feature.RequireText("location", "  beijing ")
	require.NoError(t, err)
	assert.Equal(t, "beijing", got)

	_, err = feature.RequireText("location", " \t ")
	assert.ErrorIs(t, err, seniverse.ErrInvalidInput)
	assert.EqualError(t, err, "location: must not be empty")
}

func TestFormatError(t *testing.T) {
	err := &feature.FormatError{Field: "tide", Value: "high"}
	assert.ErrorIs(t, err, seniverse.ErrNoData)
	assert.EqualError(t, err, `tide: cannot parse "high"`)
}
