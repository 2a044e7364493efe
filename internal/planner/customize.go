package planner

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

// ConstraintMode selects how a day is blocked.
type ConstraintMode int

const (
	// ModeUnavailable blocks the whole day.
	ModeUnavailable ConstraintMode = iota
	// ModeWindow blocks only the constraint window on that day.
	ModeWindow
)

// Named periods accepted by ParseConstraint.
const (
	PeriodAllDay    = "allday"
	PeriodMorning   = "morning"
	PeriodMidday    = "midday"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
	PeriodCustom    = "customize"
)

var namedPeriods = map[string]TimeWindow{
	PeriodMorning:   MustParseTime("08:00 am-11:00 am"),
	PeriodMidday:    MustParseTime("11:00 am-01:00 pm"),
	PeriodAfternoon: MustParseTime("01:00 pm-05:00 pm"),
	PeriodEvening:   MustParseTime("05:00 pm-10:00 pm"),
}

// Constraint is a user availability rule applied after enumeration.
type Constraint struct {
	Day    Weekday
	Mode   ConstraintMode
	Window TimeWindow
}

// Unavailable blocks the whole of day.
func Unavailable(day Weekday) Constraint {
	return Constraint{Day: day, Mode: ModeUnavailable}
}

// Blocked blocks window on day.
func Blocked(day Weekday, window TimeWindow) Constraint {
	return Constraint{Day: day, Mode: ModeWindow, Window: window}
}

// ParseConstraint builds a constraint from form values: a weekday letter, a period
// name and, for PeriodCustom, a "hh:mm am-hh:mm pm" window.
func ParseConstraint(day, period, custom string) (Constraint, error) {
	if len(day) != 1 || !Weekday(day[0]).Valid() {
		return Constraint{}, invalidConstraint(fmt.Sprintf("unknown weekday %q", day))
	}
	weekday := Weekday(day[0])
	switch period = strings.ToLower(strings.TrimSpace(period)); period {
	case PeriodAllDay:
		return Unavailable(weekday), nil
	case PeriodCustom:
		window, err := ParseTime(strings.TrimSpace(custom))
		if err != nil {
			return Constraint{}, appErrors.Wrap(err, appErrors.ErrInvalidConstraint.Code, appErrors.ErrInvalidConstraint.Status, fmt.Sprintf("invalid custom window %q", custom))
		}
		return Blocked(weekday, window), nil
	default:
		window, ok := namedPeriods[period]
		if !ok {
			return Constraint{}, invalidConstraint(fmt.Sprintf("unknown period %q", period))
		}
		return Blocked(weekday, window), nil
	}
}

// Validate checks the weekday and window.
func (c Constraint) Validate() error {
	if !c.Day.Valid() {
		return invalidConstraint(fmt.Sprintf("unknown weekday %q", c.Day))
	}
	switch c.Mode {
	case ModeUnavailable:
		return nil
	case ModeWindow:
		if c.Window.Start >= c.Window.End {
			return invalidConstraint("window start must be before end")
		}
		return nil
	default:
		return invalidConstraint(fmt.Sprintf("unknown mode %d", c.Mode))
	}
}

// Allows reports whether the combination has no class violating the constraint.
func (c Constraint) Allows(combination Combination) bool {
	for _, s := range combination {
		if !s.MeetsOn(c.Day) {
			continue
		}
		if c.Mode == ModeUnavailable || s.Window.Intersects(c.Window) {
			return false
		}
	}
	return true
}

// ApplyConstraint filters set by c and re-ranks the survivors. An invalid constraint
// returns set unchanged. An empty result is returned together with
// NO_VALID_COMBINATION so the caller can still chain on it.
func ApplyConstraint(set TimetableSet, c Constraint) (TimetableSet, error) {
	return ApplyConstraints(set, c)
}

// ApplyConstraints validates every constraint first, then filters conjunctively.
func ApplyConstraints(set TimetableSet, constraints ...Constraint) (TimetableSet, error) {
	for _, c := range constraints {
		if err := c.Validate(); err != nil {
			return set, err
		}
	}
	kept := make([]Combination, 0, len(set.Combinations))
	for _, combination := range set.Combinations {
		if allowsAll(combination, constraints) {
			kept = append(kept, combination)
		}
	}
	ranked := Rank(kept)
	if ranked.Empty() {
		return ranked, noValidCombination()
	}
	return ranked, nil
}

func allowsAll(combination Combination, constraints []Constraint) bool {
	for _, c := range constraints {
		if !c.Allows(combination) {
			return false
		}
	}
	return true
}

func invalidConstraint(message string) error {
	return appErrors.Clone(appErrors.ErrInvalidConstraint, message)
}

func noValidCombination() error {
	return appErrors.Clone(appErrors.ErrNoValidCombination, "")
}
