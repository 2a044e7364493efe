package dto

// SectionPayload is one section as exchanged with clients. Lists of these
// round-trip between the generate, customize, load and export endpoints.
type SectionPayload struct {
	ID         string `json:"id" validate:"required"`
	Time       string `json:"time" validate:"required"`
	Days       string `json:"days" validate:"required"`
	CRN        string `json:"crn,omitempty"`
	Enrolled   string `json:"enrolled,omitempty"`
	Waitlist   string `json:"waitlist,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Location   string `json:"location,omitempty"`
	Status     bool   `json:"status"`
	Title      string `json:"title,omitempty"`
}

// GenerateTimetableRequest asks for every conflict-free timetable of a course list.
type GenerateTimetableRequest struct {
	// Term is "fall 2024", "winter2025" or a registrar code such as "202490".
	Term string `json:"term" form:"term" validate:"required,max=32"`
	// Courses is a space or comma separated list, e.g. "COMP1020 MATH1240".
	Courses string `json:"courses" form:"courses" validate:"required,max=256"`
}

// TimetableSummary describes a ranked list of timetables.
type TimetableSummary struct {
	Ways            int                `json:"ways"`
	SmallestTimeGap string             `json:"smallestTimeGap"`
	DaysUsed        int                `json:"daysUsed"`
	BestClassList   []SectionPayload   `json:"bestClassList"`
	StartTimeList   []float64          `json:"startTimeList"`
	EndTimeList     []float64          `json:"endTimeList"`
	ClassListWays   [][]SectionPayload `json:"classListWays"`
}

// GenerateTimetableResponse is returned by the generate endpoint.
type GenerateTimetableResponse struct {
	TimetableSummary
	Term         string   `json:"term"`
	TermLabel    string   `json:"termLabel"`
	Courses      []string `json:"courses"`
	SplitCourses []string `json:"splitCourses"`
	Warnings     []string `json:"warnings,omitempty"`
}

// CustomizationRequest blocks a period on one weekday. DayTime is one of
// allday, morning, midday, afternoon, evening or customize; customize reads
// the window from CustomTime ("hh:mm am-hh:mm pm").
type CustomizationRequest struct {
	WeekDay    string `json:"weekDay"`
	DayTime    string `json:"dayTime"`
	CustomTime string `json:"customTime,omitempty"`
}

// CustomizeTimetableRequest filters a previously generated list.
type CustomizeTimetableRequest struct {
	ClassListWays  [][]SectionPayload     `json:"classListWays" validate:"required,min=1,dive,min=1,dive"`
	Customizations []CustomizationRequest `json:"customizations" validate:"required,min=1,max=20"`
}

// CustomizeTimetableResponse is returned by the customization endpoint.
type CustomizeTimetableResponse struct {
	TimetableSummary
	Applied int `json:"applied"`
}

// LoadTimetableRequest scores one chosen timetable.
type LoadTimetableRequest struct {
	CurrentClassList []SectionPayload `json:"currentClassList" validate:"required,min=1,dive"`
}

// LoadTimetableResponse carries the score and drawing data for one timetable.
type LoadTimetableResponse struct {
	TimeGap       string    `json:"timeGap"`
	DaysUsed      int       `json:"daysUsed"`
	StartTimeList []float64 `json:"startTimeList"`
	EndTimeList   []float64 `json:"endTimeList"`
}

// ExportTimetableRequest renders one timetable as a downloadable file.
type ExportTimetableRequest struct {
	Format    string           `json:"format" validate:"required,oneof=csv pdf"`
	Title     string           `json:"title" validate:"max=120"`
	ClassList []SectionPayload `json:"classList" validate:"required,min=1,dive"`
}

// InvalidateCacheRequest names the term whose cached timetables are dropped.
type InvalidateCacheRequest struct {
	Term string `form:"term" json:"term" binding:"required" validate:"required"`
}

// InvalidateCacheResponse echoes the resolved term.
type InvalidateCacheResponse struct {
	Term         string `json:"term"`
	CacheEnabled bool   `json:"cacheEnabled"`
}

// ExportedFile is a rendered export.
type ExportedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
