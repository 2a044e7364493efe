package service

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/course-planner-api/internal/planner"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/registrar"
)

const secondMeetingSuffix = "#2"

// Catalog is the planner input derived from registrar search results.
type Catalog struct {
	Groups       []planner.RawGroup
	SplitCourses []string
	Warnings     []string
}

// BuildCatalog turns search results into exclusive-choice groups. Each course
// yields its A sections, its B sections and, for sections with a second
// weekly meeting, a "<course>#2" group. Sections of other sequences are not
// scheduled. A course without any sections is an EMPTY_GROUP error.
func BuildCatalog(courses []registrar.Course) (Catalog, error) {
	var catalog Catalog
	for _, course := range courses {
		name := course.Query.String()
		if len(course.Sections) == 0 {
			return Catalog{}, appErrors.Wrap(&planner.EmptyGroupError{Course: name},
				appErrors.ErrEmptyGroup.Code, appErrors.ErrEmptyGroup.Status,
				fmt.Sprintf("no sections found for %s", name))
		}

		primary := map[byte]*planner.RawGroup{
			'A': {Name: name + "A"},
			'B': {Name: name + "B"},
		}
		second := planner.RawGroup{Name: name + secondMeetingSuffix}
		unscheduled := 0

		for _, section := range course.Sections {
			if section.SequenceNumber == "" || len(section.MeetingsFaculty) == 0 {
				unscheduled++
				continue
			}
			first := section.MeetingsFaculty[0].MeetingTime
			if !first.Scheduled() {
				unscheduled++
				continue
			}
			meta := sectionMeta(section)
			if group, ok := primary[section.SequenceNumber[0]]; ok {
				group.Sections = append(group.Sections, planner.RawSection{
					ID: section.ID(), Time: first.Interval(), Days: first.Days(), Meta: meta,
				})
			}
			if len(section.MeetingsFaculty) > 1 {
				extra := section.MeetingsFaculty[1].MeetingTime
				if extra.Scheduled() {
					second.Sections = append(second.Sections, planner.RawSection{
						ID: section.ID(), Time: extra.Interval(), Days: extra.Days(), Meta: meta,
					})
				}
			}
		}

		for _, key := range []byte{'A', 'B'} {
			if g := primary[key]; len(g.Sections) > 0 {
				catalog.Groups = append(catalog.Groups, *g)
			}
		}
		if len(second.Sections) > 0 {
			catalog.Groups = append(catalog.Groups, second)
			catalog.SplitCourses = append(catalog.SplitCourses, name)
		}
		if unscheduled == len(course.Sections) {
			catalog.Warnings = append(catalog.Warnings, fmt.Sprintf("%s has no scheduled meetings and was left out", name))
		}
	}
	return catalog, nil
}

func sectionMeta(s registrar.Section) planner.SectionMeta {
	location := ""
	if len(s.MeetingsFaculty) > 0 {
		location = s.MeetingsFaculty[0].MeetingTime.BuildingDescription
	}
	return planner.SectionMeta{
		CRN:        s.CourseReferenceNumber,
		Enrollment: strconv.Itoa(s.Enrollment) + "/" + strconv.Itoa(s.MaximumEnrollment),
		Waitlist:   strconv.Itoa(s.WaitCount) + "/" + strconv.Itoa(s.WaitCapacity),
		Instructor: s.Instructor(),
		Location:   location,
		Status:     s.OpenSection,
		Title:      s.CourseTitle,
	}
}
