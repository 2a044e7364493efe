package models

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CourseCode identifies a course in the catalog, e.g. COMP 1020.
type CourseCode struct {
	Subject string `json:"subject"`
	Number  string `json:"number"`
}

// String returns the compact form used as a group name prefix.
func (c CourseCode) String() string {
	return c.Subject + c.Number
}

// Season is an academic season with a fixed registrar term suffix.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

var seasonSuffix = map[Season]string{
	SeasonWinter: "10",
	SeasonSummer: "50",
	SeasonFall:   "90",
}

// Suffix returns the two digit term suffix for the season.
func (s Season) Suffix() (string, bool) {
	suffix, ok := seasonSuffix[s]
	return suffix, ok
}

// Term is a resolved registration term.
type Term struct {
	Season Season `json:"season"`
	Year   int    `json:"year"`
	Code   string `json:"code"`
}

// Label renders the term for display, e.g. "Fall 2024".
func (t Term) Label() string {
	if t.Season == "" {
		return t.Code
	}
	return fmt.Sprintf("%s %d", cases.Title(language.English).String(string(t.Season)), t.Year)
}
