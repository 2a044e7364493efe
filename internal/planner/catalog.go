package planner

import (
	"fmt"

	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

// SectionMeta carries registrar data through the engine untouched.
type SectionMeta struct {
	CRN        string `json:"crn" yaml:"crn"`
	Enrollment string `json:"enrolled" yaml:"enrolled"`
	Waitlist   string `json:"waitlist" yaml:"waitlist"`
	Instructor string `json:"instructor" yaml:"instructor"`
	Location   string `json:"location" yaml:"location"`
	Status     bool   `json:"status" yaml:"status"`
	Title      string `json:"title" yaml:"title"`
}

// Section is one schedulable offering of a course.
type Section struct {
	ID     string
	Time   string
	Window TimeWindow
	Days   WeekdaySet
	Meta   SectionMeta
}

// Overlaps reports whether two sections meet on a shared day at intersecting times.
func Overlaps(a, b Section) bool {
	return a.Days.Intersects(b.Days) && a.Window.Intersects(b.Window)
}

// MeetsOn reports whether the section has a class on day.
func (s Section) MeetsOn(day Weekday) bool {
	return s.Days.Has(day)
}

// Group is a set of mutually exclusive sections; a timetable picks exactly one.
type Group struct {
	Name     string
	Sections []Section
}

// RawSection is a section as delivered by the catalog source, before parsing.
type RawSection struct {
	ID   string      `json:"id" yaml:"id"`
	Time string      `json:"time" yaml:"time"`
	Days string      `json:"days" yaml:"days"`
	Meta SectionMeta `json:"meta" yaml:"meta"`
}

// RawGroup is an unparsed Group.
type RawGroup struct {
	Name     string       `json:"name" yaml:"name"`
	Sections []RawSection `json:"sections" yaml:"sections"`
}

// Rejection records a section dropped from its group during parsing.
type Rejection struct {
	Group     string
	SectionID string
	Err       error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s/%s: %v", r.Group, r.SectionID, r.Err)
}

// ParseSection validates a single raw section.
func ParseSection(raw RawSection) (Section, error) {
	window, err := ParseTime(raw.Time)
	if err != nil {
		return Section{}, err
	}
	days, err := ParseWeekdays(raw.Days)
	if err != nil {
		return Section{}, appErrors.Wrap(err, appErrors.ErrMalformedTime.Code, appErrors.ErrMalformedTime.Status, fmt.Sprintf("malformed days for %s", raw.ID))
	}
	return Section{
		ID:     raw.ID,
		Time:   raw.Time,
		Window: window,
		Days:   days,
		Meta:   raw.Meta,
	}, nil
}

// BuildGroups parses raw groups. Malformed sections are dropped from their group and
// reported; the group itself is kept even if it ends up empty so the enumerator can
// report it.
func BuildGroups(raw []RawGroup) ([]Group, []Rejection) {
	groups := make([]Group, 0, len(raw))
	var rejections []Rejection
	for _, rg := range raw {
		group := Group{Name: rg.Name, Sections: make([]Section, 0, len(rg.Sections))}
		for _, rs := range rg.Sections {
			section, err := ParseSection(rs)
			if err != nil {
				rejections = append(rejections, Rejection{Group: rg.Name, SectionID: rs.ID, Err: err})
				continue
			}
			group.Sections = append(group.Sections, section)
		}
		groups = append(groups, group)
	}
	return groups, rejections
}
