// Package timeutil renders execution timestamps and elapsed intervals for alert bodies.
package timeutil

import (
	"strconv"
	"time"
)

const (
	// DateTimeLayout is the layout used for absolute timestamps.
	DateTimeLayout = "2006/01/02 15:04:05 MST"

	// Placeholder is rendered for timestamps that were never recorded.
	Placeholder = "-"
)

// Formatter converts epoch milliseconds to display strings.
type Formatter struct {
	location *time.Location
	now      func() time.Time
}

type Option func(*Formatter)

// WithLocation renders timestamps in loc instead of UTC.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.location = loc
		}
	}
}

// WithClock replaces the clock used to measure still-running executions.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		location: time.UTC,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FormatDateTime renders ms as an absolute date-time with zone.
func (f *Formatter) FormatDateTime(ms int64) string {
	if ms <= 0 {
		return Placeholder
	}

	return time.UnixMilli(ms).In(f.location).Format(DateTimeLayout)
}

// FormatDuration renders the interval between start and end. An unset end
// is measured against the formatter's clock.
func (f *Formatter) FormatDuration(start, end int64) string {
	if start <= 0 {
		return Placeholder
	}

	if end <= 0 {
		end = f.now().UnixMilli()
	}

	return FormatMillis(end - start)
}

// FormatElapsed renders d with the two or three most significant units.
func FormatElapsed(d time.Duration) string {
	return FormatMillis(d.Milliseconds())
}

// FormatMillis renders an interval of ms milliseconds with the two or three
// most significant units. Negative intervals render as zero.
func FormatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	if ms < 1000 {
		return itoa(ms) + " ms"
	}

	seconds := ms / 1000
	if seconds < 60 {
		return itoa(seconds) + " sec"
	}

	minutes := seconds / 60
	seconds %= 60

	if minutes < 60 {
		return itoa(minutes) + "m " + itoa(seconds) + "s"
	}

	hours := minutes / 60
	minutes %= 60

	if hours < 24 {
		return itoa(hours) + "h " + itoa(minutes) + "m " + itoa(seconds) + "s"
	}

	days := hours / 24
	hours %= 24

	return itoa(days) + "d " + itoa(hours) + "h " + itoa(minutes) + "m"
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
