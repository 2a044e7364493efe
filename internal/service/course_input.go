package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

var (
	courseCodePattern = regexp.MustCompile(`^([A-Z]{2,4})\s*-?\s*(\d{4})$`)
	termCodePattern   = regexp.MustCompile(`^\d{4}(10|50|90)$`)
	seasonTermPattern = regexp.MustCompile(`^(fall|winter|summer)\s*(\d{4})$`)
)

// ParseCourseCode accepts "COMP1020", "comp 1020" or "COMP-1020".
func ParseCourseCode(raw string) (models.CourseCode, error) {
	m := courseCodePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(raw)))
	if m == nil {
		return models.CourseCode{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid course code %q", raw))
	}
	return models.CourseCode{Subject: m[1], Number: m[2]}, nil
}

// ParseCourseList splits a space or comma separated list, dropping duplicates
// while keeping the first-seen order.
func ParseCourseList(raw string, max int) ([]models.CourseCode, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	// "COMP 1020" arrives as two fields; glue a subject to a following number.
	var tokens []string
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		if i+1 < len(fields) && isAlpha(tok) && isDigits(fields[i+1]) {
			tok += fields[i+1]
			i++
		}
		tokens = append(tokens, tok)
	}

	codes := make([]models.CourseCode, 0, len(tokens))
	for _, tok := range tokens {
		code, err := ParseCourseCode(tok)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	codes = lo.UniqBy(codes, models.CourseCode.String)
	if len(codes) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one course is required")
	}
	if max > 0 && len(codes) > max {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d courses can be planned together", max))
	}
	return codes, nil
}

// ResolveTerm maps "fall 2024" style input, or a raw registrar code, to a Term.
// Winter is 10, summer 50 and fall 90 after the year.
func ResolveTerm(raw string) (models.Term, error) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if termCodePattern.MatchString(text) {
		year, _ := strconv.Atoi(text[:4])
		term := models.Term{Year: year, Code: text}
		for _, season := range []models.Season{models.SeasonWinter, models.SeasonSummer, models.SeasonFall} {
			if suffix, _ := season.Suffix(); suffix == text[4:] {
				term.Season = season
			}
		}
		return term, nil
	}

	m := seasonTermPattern.FindStringSubmatch(text)
	if m == nil {
		return models.Term{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid term %q, expected e.g. \"fall 2024\"", raw))
	}
	year, _ := strconv.Atoi(m[2])
	if year < 2000 || year > time.Now().Year()+2 {
		return models.Term{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("term year %d is out of range", year))
	}
	season := models.Season(m[1])
	suffix, _ := season.Suffix()
	return models.Term{Season: season, Year: year, Code: m[2] + suffix}, nil
}

// timetableCacheKey is order independent in the course list.
func timetableCacheKey(term models.Term, codes []models.CourseCode) string {
	names := lo.Map(codes, func(c models.CourseCode, _ int) string { return c.String() })
	sort.Strings(names)
	return "timetable:" + term.Code + ":" + strings.Join(names, ",")
}

func termCachePattern(term models.Term) string {
	return "timetable:" + term.Code + ":*"
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
