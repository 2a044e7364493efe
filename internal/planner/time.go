package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

// Weekdays lists the schedulable weekday letters in canonical order.
const Weekdays = "MTWRF"

// Weekday is one of the letters in Weekdays.
type Weekday byte

// Valid reports whether d is a known weekday letter.
func (d Weekday) Valid() bool {
	return strings.IndexByte(Weekdays, byte(d)) >= 0
}

func (d Weekday) String() string {
	return string(rune(d))
}

// WeekdaySet is a bitmask over Weekdays.
type WeekdaySet uint8

// ParseWeekdays converts a letter string such as "MWF" into a set.
func ParseWeekdays(text string) (WeekdaySet, error) {
	if text == "" {
		return 0, fmt.Errorf("weekday set is empty")
	}
	var set WeekdaySet
	for i := 0; i < len(text); i++ {
		idx := strings.IndexByte(Weekdays, text[i])
		if idx < 0 {
			return 0, fmt.Errorf("unknown weekday %q in %q", text[i], text)
		}
		set |= 1 << idx
	}
	return set, nil
}

// Has reports whether the set contains d.
func (s WeekdaySet) Has(d Weekday) bool {
	idx := strings.IndexByte(Weekdays, byte(d))
	if idx < 0 {
		return false
	}
	return s&(1<<idx) != 0
}

// Intersects reports whether both sets share at least one day.
func (s WeekdaySet) Intersects(other WeekdaySet) bool {
	return s&other != 0
}

// String renders the set in M-T-W-R-F order.
func (s WeekdaySet) String() string {
	var b strings.Builder
	for i := 0; i < len(Weekdays); i++ {
		if s&(1<<i) != 0 {
			b.WriteByte(Weekdays[i])
		}
	}
	return b.String()
}

// TimeWindow is a [Start, End) range in hours since midnight.
type TimeWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Intersects applies the half-open rule: touching boundaries do not overlap.
func (w TimeWindow) Intersects(other TimeWindow) bool {
	return (w.Start <= other.Start && other.Start < w.End) ||
		(other.Start <= w.Start && w.Start < other.End)
}

var timePattern = regexp.MustCompile(`^(\d{2}):(\d{2}) (am|pm)-(\d{2}):(\d{2}) (am|pm)$`)

// ParseTime parses "HH:MM am-HH:MM pm" into a TimeWindow.
func ParseTime(text string) (TimeWindow, error) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return TimeWindow{}, malformedTime(text, "expected HH:MM am|pm-HH:MM am|pm")
	}
	start, err := clockValue(m[1], m[2], m[3])
	if err != nil {
		return TimeWindow{}, malformedTime(text, err.Error())
	}
	end, err := clockValue(m[4], m[5], m[6])
	if err != nil {
		return TimeWindow{}, malformedTime(text, err.Error())
	}
	if start >= end {
		return TimeWindow{}, malformedTime(text, "start must be before end")
	}
	return TimeWindow{Start: start, End: end}, nil
}

// MustParseTime is ParseTime for package-level literals.
func MustParseTime(text string) TimeWindow {
	w, err := ParseTime(text)
	if err != nil {
		panic(err)
	}
	return w
}

func clockValue(hourText, minuteText, period string) (float64, error) {
	hour, _ := strconv.Atoi(hourText)
	minute, _ := strconv.Atoi(minuteText)
	if hour > 23 {
		return 0, fmt.Errorf("hour %d out of range", hour)
	}
	if minute > 59 {
		return 0, fmt.Errorf("minute %d out of range", minute)
	}
	value := float64(hour%12) + float64(minute)/60
	if period == "pm" {
		value += 12
	}
	return value, nil
}

func malformedTime(text, reason string) error {
	return appErrors.Clone(appErrors.ErrMalformedTime, fmt.Sprintf("malformed time %q: %s", text, reason))
}

// FormatClock renders hours since midnight as "hh:mm am|pm".
func FormatClock(value float64) string {
	totalMinutes := int(value*60 + 0.5)
	hour, minute := totalMinutes/60, totalMinutes%60
	period := "am"
	if hour >= 12 {
		period = "pm"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%02d:%02d %s", display, minute, period)
}
