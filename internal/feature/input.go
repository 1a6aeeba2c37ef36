package feature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skytracker/skytracker/internal/seniverse"
)

// Count bounds accepted from the user.
const (
	MinDays  = 1
	MaxDays  = 15
	MinHours = 1
	MaxHours = 24
)

// InputError reports a field rejected before any request was sent.
// It matches seniverse.ErrInvalidInput.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *InputError) Unwrap() error {
	return seniverse.ErrInvalidInput
}

// FormatError reports a vendor value that could not be parsed.
// It matches seniverse.ErrNoData.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q", e.Field, e.Value)
}

func (e *FormatError) Unwrap() error {
	return seniverse.ErrNoData
}

// RequireText trims value and rejects it when empty.
func RequireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &InputError{Field: field, Message: "must not be empty"}
	}
	return value, nil
}

// ParseDays parses a day count in [MinDays, MaxDays].
func ParseDays(s string) (int, error) {
	return parseCount("days", s, MinDays, MaxDays)
}

// ParseHours parses an hour count in [MinHours, MaxHours].
func ParseHours(s string) (int, error) {
	return parseCount("hours", s, MinHours, MaxHours)
}

// parseCount accepts only ASCII digits, so signs and spaces inside the
// number are rejected.
func parseCount(field, s string, lo, hi int) (int, error) {
	s = strings.TrimSpace(s)
	invalid := &InputError{Field: field, Message: fmt.Sprintf("must be a number between %d and %d", lo, hi)}
	if s == "" {
		return 0, invalid
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, invalid
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, invalid
	}
	return n, nil
}
