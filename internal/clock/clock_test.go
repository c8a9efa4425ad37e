package clock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  TimeOfDay
		expectErr bool
	}{
		{name: "full form", raw: "09:30:00", expected: NewTimeOfDay(9, 30, 0)},
		{name: "short form", raw: "14:05", expected: NewTimeOfDay(14, 5, 0)},
		{name: "midnight", raw: "00:00:00", expected: 0},
		{name: "last second", raw: "23:59:59", expected: EndOfDay - 1},
		{name: "hour out of range", raw: "24:00:00", expectErr: true},
		{name: "minute out of range", raw: "10:60:00", expectErr: true},
		{name: "garbage", raw: "noon", expectErr: true},
		{name: "empty", raw: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseTimeOfDay(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, parsed)
			}
		})
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	tod := NewTimeOfDay(7, 45, 30)
	assert.Equal(t, "07:45:30", tod.String())

	parsed, err := ParseTimeOfDay(tod.String())
	require.NoError(t, err)
	assert.Equal(t, tod, parsed)

	b, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"07:45:30"`, string(b))

	var back TimeOfDay
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, tod, back)
}

func TestTimeOfDayMinutesUntil(t *testing.T) {
	assert.Equal(t, 60, NewTimeOfDay(9, 0, 0).MinutesUntil(NewTimeOfDay(10, 0, 0)))
	assert.Equal(t, 5, NewTimeOfDay(9, 20, 0).MinutesUntil(NewTimeOfDay(9, 25, 0)))
	assert.Equal(t, 0, NewTimeOfDay(9, 0, 0).MinutesUntil(NewTimeOfDay(9, 0, 0)))
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan("13:15:00"))
	assert.Equal(t, NewTimeOfDay(13, 15, 0), tod)

	require.NoError(t, tod.Scan([]byte("08:00:00")))
	assert.Equal(t, NewTimeOfDay(8, 0, 0), tod)

	require.NoError(t, tod.Scan(time.Date(2026, 1, 12, 16, 30, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(16, 30, 0), tod)

	assert.Error(t, tod.Scan(42))
}

func TestParseDateStamp(t *testing.T) {
	d, err := ParseDateStamp("2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, DateStamp("2026-01-12"), d)

	_, err = ParseDateStamp("01/12/2026")
	assert.Error(t, err)

	_, err = ParseDateStamp("2026-13-40")
	assert.Error(t, err)
}

func TestDateStampWeekday(t *testing.T) {
	testCases := []struct {
		date     DateStamp
		expected Weekday
	}{
		{"2026-01-12", Monday},
		{"2026-01-13", Tuesday},
		{"2026-01-14", Wednesday},
		{"2026-01-15", Thursday},
		{"2026-01-16", Friday},
		{"2026-01-17", Saturday},
		{"2026-01-18", Sunday},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.date.Weekday(), "weekday of %s", tc.date)
	}
}

func TestDateStampOrdering(t *testing.T) {
	// Term range checks rely on lexical order matching chronological order.
	assert.True(t, DateStamp("2026-01-12") < DateStamp("2026-05-05"))
	assert.True(t, DateStamp("2025-12-31") < DateStamp("2026-01-01"))
}

func TestDateStampBoundsAndAt(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	d := DateStamp("2026-01-12")
	start, end := d.Bounds(loc)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 1, 13, 0, 0, 0, 0, loc), end)

	at := d.At(NewTimeOfDay(10, 30, 0), loc)
	assert.Equal(t, time.Date(2026, 1, 12, 10, 30, 0, 0, loc), at)
	assert.Equal(t, d, DateStampOf(at, loc))
}

func TestDateStampScanTruncatesTimestamp(t *testing.T) {
	var d DateStamp
	require.NoError(t, d.Scan("2026-01-12T00:00:00Z"))
	assert.Equal(t, DateStamp("2026-01-12"), d)
}
