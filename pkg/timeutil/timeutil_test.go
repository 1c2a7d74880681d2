package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected string
	}{
		{name: "sub second", elapsed: 50 * time.Millisecond, expected: "50 ms"},
		{name: "negative clamps", elapsed: -time.Second, expected: "0 ms"},
		{name: "seconds", elapsed: 42 * time.Second, expected: "42 sec"},
		{name: "minutes", elapsed: 3*time.Minute + 7*time.Second, expected: "3m 7s"},
		{name: "hours", elapsed: 2*time.Hour + 5*time.Minute + 1*time.Second, expected: "2h 5m 1s"},
		{name: "days", elapsed: 50*time.Hour + 30*time.Minute, expected: "2d 2h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.elapsed))
		})
	}
}

func TestFormatter_FormatDuration(t *testing.T) {
	now := time.UnixMilli(10_000)
	formatter := NewFormatter(WithClock(func() time.Time { return now }))

	assert.Equal(t, "50 ms", formatter.FormatDuration(1000, 1050))
	assert.Equal(t, "9 sec", formatter.FormatDuration(1000, -1))
	assert.Equal(t, Placeholder, formatter.FormatDuration(-1, 1050))
}

func TestFormatter_FormatDuration_BeyondDurationRange(t *testing.T) {
	formatter := NewFormatter()

	const day = int64(24 * 60 * 60 * 1000)

	// 146000 days is past the ~292 years a time.Duration can hold.
	assert.Equal(t, "146000d 0h 0m", formatter.FormatDuration(1, 1+146000*day))
	assert.Equal(t, "146000d 1h 2m", formatter.FormatDuration(1, 1+146000*day+62*60*1000))
}

func TestFormatMillis(t *testing.T) {
	assert.Equal(t, "999 ms", FormatMillis(999))
	assert.Equal(t, "1 sec", FormatMillis(1000))
	assert.Equal(t, "0 ms", FormatMillis(-5))
}

func TestFormatter_FormatDateTime(t *testing.T) {
	formatter := NewFormatter()

	assert.Equal(t, "2024/03/01 12:30:00 UTC", formatter.FormatDateTime(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC).UnixMilli()))
	assert.Equal(t, Placeholder, formatter.FormatDateTime(-1))
	assert.Equal(t, Placeholder, formatter.FormatDateTime(0))
}

func TestFormatter_WithLocation(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)
	formatter := NewFormatter(WithLocation(loc))

	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC).UnixMilli()
	require.Equal(t, "2024/03/01 20:30:00 CST", formatter.FormatDateTime(ts))
}
