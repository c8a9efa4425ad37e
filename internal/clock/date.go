package clock

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateStamp is a calendar date in campus local time, in "YYYY-MM-DD" form.
// The ISO layout makes lexical comparison equal to chronological comparison,
// which the term date-range checks rely on.
type DateStamp string

// ParseDateStamp validates and normalizes a "YYYY-MM-DD" string.
func ParseDateStamp(s string) (DateStamp, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateStamp(t.Format(dateLayout)), nil
}

// DateStampOf extracts the calendar date of t in loc.
func DateStampOf(t time.Time, loc *time.Location) DateStamp {
	return DateStamp(t.In(loc).Format(dateLayout))
}

// Weekday returns the day of week for the date.
func (d DateStamp) Weekday() Weekday {
	t, _ := time.Parse(dateLayout, string(d))
	return WeekdayOf(t.Weekday())
}

// Bounds returns the half-open [midnight, next midnight) range of the date
// in loc, used to select events whose localized start falls on the date.
func (d DateStamp) Bounds(loc *time.Location) (time.Time, time.Time) {
	t, _ := time.ParseInLocation(dateLayout, string(d), loc)
	return t, t.AddDate(0, 0, 1)
}

// At combines the date with a wall-clock time in loc.
func (d DateStamp) At(tod TimeOfDay, loc *time.Location) time.Time {
	t, _ := time.ParseInLocation(dateLayout, string(d), loc)
	return t.Add(time.Duration(tod) * time.Second)
}

func (d DateStamp) String() string { return string(d) }

// Value implements driver.Valuer.
func (d DateStamp) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan implements sql.Scanner for TEXT and DATE columns.
func (d *DateStamp) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDateStamp(v[:min(len(v), len(dateLayout))])
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = DateStamp(v.Format(dateLayout))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateStamp", src)
	}
}

// Weekday is the single-letter day code used by the class schedule rows,
// as produced by the course catalog scrape: M T W R F S U.
type Weekday string

const (
	Monday    Weekday = "M"
	Tuesday   Weekday = "T"
	Wednesday Weekday = "W"
	Thursday  Weekday = "R"
	Friday    Weekday = "F"
	Saturday  Weekday = "S"
	Sunday    Weekday = "U"
)

var weekdayCodes = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf maps a time.Weekday to its schedule code.
func WeekdayOf(w time.Weekday) Weekday {
	return weekdayCodes[w]
}
