package seniverse

import (
	"net/url"
	"strconv"
)

// Request defaults applied before options.
const (
	DefaultLanguage = "zh-Hans"
	DefaultUnit     = "c"
	DefaultScope    = "city"
	DefaultDetail   = "more"
)

// Option adjusts the query parameters of one call. Options that a family
// does not use are ignored by that family.
type Option func(*params)

type params struct {
	language string
	unit     string
	scope    string
	detail   string
	start    int
	days     int
	hours    int
}

func newParams(days, hours int, opts []Option) *params {
	p := &params{
		language: DefaultLanguage,
		unit:     DefaultUnit,
		scope:    DefaultScope,
		detail:   DefaultDetail,
		days:     days,
		hours:    hours,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithLanguage sets the response language tag (default zh-Hans).
func WithLanguage(language string) Option {
	return func(p *params) { p.language = language }
}

// WithUnit sets the unit system, "c" or "f" (default c).
func WithUnit(unit string) Option {
	return func(p *params) { p.unit = unit }
}

// WithScope sets the air quality scope, "city" or "all" (default city).
func WithScope(scope string) Option {
	return func(p *params) { p.scope = scope }
}

// WithDetail sets the alarm detail level (default more).
func WithDetail(detail string) Option {
	return func(p *params) { p.detail = detail }
}

// WithStart sets the pagination start offset in days or hours (default 0).
func WithStart(start int) Option {
	return func(p *params) { p.start = start }
}

// WithDays sets the day count. The value is passed through unchecked.
func WithDays(days int) Option {
	return func(p *params) { p.days = days }
}

// WithHours sets the hour count. The value is passed through unchecked.
func WithHours(hours int) Option {
	return func(p *params) { p.hours = hours }
}

// query builds url.Values from the named parameters.
func (p *params) query(names ...string) url.Values {
	q := url.Values{}
	for _, name := range names {
		switch name {
		case "language":
			q.Set(name, p.language)
		case "unit":
			q.Set(name, p.unit)
		case "scope":
			q.Set(name, p.scope)
		case "detail":
			q.Set(name, p.detail)
		case "start":
			q.Set(name, strconv.Itoa(p.start))
		case "days":
			q.Set(name, strconv.Itoa(p.days))
		case "hours":
			q.Set(name, strconv.Itoa(p.hours))
		}
	}
	return q
}
