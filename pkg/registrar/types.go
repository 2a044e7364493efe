package registrar

import (
	"fmt"
	"strconv"
	"strings"
)

// Query names one course to look up, e.g. {Subject: "COMP", Number: "1020"}.
type Query struct {
	Subject string
	Number  string
}

func (q Query) String() string {
	return q.Subject + q.Number
}

// Course groups the sections returned for one query.
type Course struct {
	Query    Query
	Sections []Section
}

type searchResponse struct {
	Success    bool      `json:"success"`
	TotalCount int       `json:"totalCount"`
	Data       []Section `json:"data"`
}

// Section mirrors one class section row of the registration system.
type Section struct {
	Subject               string           `json:"subject"`
	CourseNumber          string           `json:"courseNumber"`
	SequenceNumber        string           `json:"sequenceNumber"`
	CourseReferenceNumber string           `json:"courseReferenceNumber"`
	CourseTitle           string           `json:"courseTitle"`
	Enrollment            int              `json:"enrollment"`
	MaximumEnrollment     int              `json:"maximumEnrollment"`
	WaitCount             int              `json:"waitCount"`
	WaitCapacity          int              `json:"waitCapacity"`
	OpenSection           bool             `json:"openSection"`
	Faculty               []Faculty        `json:"faculty"`
	MeetingsFaculty       []MeetingFaculty `json:"meetingsFaculty"`
}

type Faculty struct {
	DisplayName string `json:"displayName"`
}

type MeetingFaculty struct {
	MeetingTime MeetingTime `json:"meetingTime"`
}

// MeetingTime is one weekly meeting block. Begin and end are "HHMM" strings
// and are null for unscheduled (online or TBA) sections.
type MeetingTime struct {
	BeginTime           *string `json:"beginTime"`
	EndTime             *string `json:"endTime"`
	Monday              bool    `json:"monday"`
	Tuesday             bool    `json:"tuesday"`
	Wednesday           bool    `json:"wednesday"`
	Thursday            bool    `json:"thursday"`
	Friday              bool    `json:"friday"`
	BuildingDescription string  `json:"buildingDescription"`
}

// ID is the section identifier used across the planner, e.g. "COMP1020A01".
func (s Section) ID() string {
	return s.Subject + s.CourseNumber + s.SequenceNumber
}

// Instructor returns the first listed instructor or "".
func (s Section) Instructor() string {
	if len(s.Faculty) == 0 {
		return ""
	}
	return s.Faculty[0].DisplayName
}

// Scheduled reports whether the meeting has a fixed time.
func (m MeetingTime) Scheduled() bool {
	return m.BeginTime != nil && m.EndTime != nil && *m.BeginTime != "" && *m.EndTime != ""
}

// Interval renders the meeting as "hh:mm am-hh:mm pm". Input that is not
// HHMM is passed through untouched so the planner can reject it.
func (m MeetingTime) Interval() string {
	if !m.Scheduled() {
		return ""
	}
	return clock(*m.BeginTime) + "-" + clock(*m.EndTime)
}

// Days renders the weekday flags as a subset of "MTWRF".
func (m MeetingTime) Days() string {
	var b strings.Builder
	for _, d := range []struct {
		on  bool
		day byte
	}{{m.Monday, 'M'}, {m.Tuesday, 'T'}, {m.Wednesday, 'W'}, {m.Thursday, 'R'}, {m.Friday, 'F'}} {
		if d.on {
			b.WriteByte(d.day)
		}
	}
	return b.String()
}

func clock(hhmm string) string {
	if len(hhmm) != 4 {
		return hhmm
	}
	hour, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return hhmm
	}
	if _, err := strconv.Atoi(hhmm[2:]); err != nil {
		return hhmm
	}
	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
		if hour > 12 {
			hour -= 12
		}
	}
	return fmt.Sprintf("%02d:%s %s", hour, hhmm[2:], suffix)
}
