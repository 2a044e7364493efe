package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-planner-api/internal/planner"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/registrar"
)

func hhmm(s string) *string { return &s }

func meeting(begin, end string, days string) registrar.MeetingFaculty {
	m := registrar.MeetingTime{BuildingDescription: "Armes"}
	if begin != "" {
		m.BeginTime, m.EndTime = hhmm(begin), hhmm(end)
	}
	for _, d := range days {
		switch d {
		case 'M':
			m.Monday = true
		case 'T':
			m.Tuesday = true
		case 'W':
			m.Wednesday = true
		case 'R':
			m.Thursday = true
		case 'F':
			m.Friday = true
		}
	}
	return registrar.MeetingFaculty{MeetingTime: m}
}

func regSection(subject, number, seq, crn string, meetings ...registrar.MeetingFaculty) registrar.Section {
	return registrar.Section{
		Subject: subject, CourseNumber: number, SequenceNumber: seq,
		CourseReferenceNumber: crn, CourseTitle: subject + " " + number,
		Enrollment: 40, MaximumEnrollment: 60, WaitCount: 1, WaitCapacity: 10,
		OpenSection:     true,
		Faculty:         []registrar.Faculty{{DisplayName: "Hopper, Grace"}},
		MeetingsFaculty: meetings,
	}
}

func TestBuildCatalogGroupsBySequence(t *testing.T) {
	catalog, err := BuildCatalog([]registrar.Course{
		{Query: registrar.Query{Subject: "COMP", Number: "1020"}, Sections: []registrar.Section{
			regSection("COMP", "1020", "A01", "10001", meeting("0930", "1020", "MWF")),
			regSection("COMP", "1020", "A02", "10002", meeting("1330", "1420", "MWF")),
			regSection("COMP", "1020", "B01", "10003", meeting("1430", "1620", "T")),
			regSection("COMP", "1020", "D01", "10004", meeting("", "", "")),
			regSection("COMP", "1020", "T01", "10005", meeting("1000", "1100", "R")),
		}},
	})
	require.NoError(t, err)

	require.Len(t, catalog.Groups, 2)
	assert.Equal(t, "COMP1020A", catalog.Groups[0].Name)
	assert.Equal(t, "COMP1020B", catalog.Groups[1].Name)
	require.Len(t, catalog.Groups[0].Sections, 2)

	a02 := catalog.Groups[0].Sections[1]
	assert.Equal(t, "COMP1020A02", a02.ID)
	assert.Equal(t, "01:30 pm-02:20 pm", a02.Time)
	assert.Equal(t, "MWF", a02.Days)
	assert.Equal(t, planner.SectionMeta{
		CRN: "10002", Enrollment: "40/60", Waitlist: "1/10", Instructor: "Hopper, Grace",
		Location: "Armes", Status: true, Title: "COMP 1020",
	}, a02.Meta)
	assert.Empty(t, catalog.SplitCourses)
	assert.Empty(t, catalog.Warnings)
}

func TestBuildCatalogSecondMeetingGroup(t *testing.T) {
	catalog, err := BuildCatalog([]registrar.Course{
		{Query: registrar.Query{Subject: "ENG", Number: "1440"}, Sections: []registrar.Section{
			regSection("ENG", "1440", "A01", "20001", meeting("0930", "1020", "MW"), meeting("0930", "1045", "F")),
			regSection("ENG", "1440", "A02", "20002", meeting("1330", "1420", "MW"), meeting("1330", "1445", "F")),
		}},
	})
	require.NoError(t, err)

	require.Len(t, catalog.Groups, 2)
	assert.Equal(t, "ENG1440#2", catalog.Groups[1].Name)
	assert.Equal(t, "09:30 am-10:45 am", catalog.Groups[1].Sections[0].Time)
	assert.Equal(t, []string{"ENG1440"}, catalog.SplitCourses)

	groups, rejections := planner.BuildGroups(catalog.Groups)
	require.Empty(t, rejections)
	assert.Len(t, groups, 2)
}

func TestBuildCatalogEmptyCourse(t *testing.T) {
	_, err := BuildCatalog([]registrar.Course{
		{Query: registrar.Query{Subject: "COMP", Number: "1020"}, Sections: []registrar.Section{
			regSection("COMP", "1020", "A01", "1", meeting("0930", "1020", "MWF")),
		}},
		{Query: registrar.Query{Subject: "PHYS", Number: "9999"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyGroup.Code, appErrors.FromError(err).Code)

	var empty *planner.EmptyGroupError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "PHYS9999", empty.Course)
}

func TestBuildCatalogWarnsOnUnscheduledCourse(t *testing.T) {
	catalog, err := BuildCatalog([]registrar.Course{
		{Query: registrar.Query{Subject: "HIST", Number: "1500"}, Sections: []registrar.Section{
			regSection("HIST", "1500", "D01", "1", meeting("", "", "")),
			regSection("HIST", "1500", "A01", "2"),
		}},
	})
	require.NoError(t, err)
	assert.Empty(t, catalog.Groups)
	require.Len(t, catalog.Warnings, 1)
	assert.Contains(t, catalog.Warnings[0], "HIST1500")
}
