package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/planner"
	"github.com/noah-isme/course-planner-api/pkg/export"
)

func formatGap(gap float64) string {
	return fmt.Sprintf("%.2f", gap)
}

func toPayload(s planner.Section) dto.SectionPayload {
	return dto.SectionPayload{
		ID:         s.ID,
		Time:       s.Time,
		Days:       s.Days.String(),
		CRN:        s.Meta.CRN,
		Enrolled:   s.Meta.Enrollment,
		Waitlist:   s.Meta.Waitlist,
		Instructor: s.Meta.Instructor,
		Location:   s.Meta.Location,
		Status:     s.Meta.Status,
		Title:      s.Meta.Title,
	}
}

func toPayloads(c planner.Combination) []dto.SectionPayload {
	out := make([]dto.SectionPayload, len(c))
	for i, s := range c {
		out[i] = toPayload(s)
	}
	return out
}

func toCombination(list []dto.SectionPayload) (planner.Combination, error) {
	combination := make(planner.Combination, 0, len(list))
	for _, p := range list {
		section, err := planner.ParseSection(planner.RawSection{
			ID:   p.ID,
			Time: p.Time,
			Days: p.Days,
			Meta: planner.SectionMeta{
				CRN:        p.CRN,
				Enrollment: p.Enrolled,
				Waitlist:   p.Waitlist,
				Instructor: p.Instructor,
				Location:   p.Location,
				Status:     p.Status,
				Title:      p.Title,
			},
		})
		if err != nil {
			return nil, err
		}
		combination = append(combination, section)
	}
	return combination, nil
}

func toCombinations(ways [][]dto.SectionPayload) ([]planner.Combination, error) {
	out := make([]planner.Combination, 0, len(ways))
	for _, way := range ways {
		c, err := toCombination(way)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func summarize(set planner.TimetableSet) dto.TimetableSummary {
	ways := make([][]dto.SectionPayload, len(set.Combinations))
	for i, c := range set.Combinations {
		ways[i] = toPayloads(c)
	}
	summary := dto.TimetableSummary{
		Ways:          set.Count,
		BestClassList: toPayloads(set.Best),
		StartTimeList: set.StartTimes,
		EndTimeList:   set.EndTimes,
		ClassListWays: ways,
	}
	if !set.Empty() {
		summary.SmallestTimeGap = formatGap(set.BestScore.TotalGap)
		summary.DaysUsed = set.BestScore.DaysUsed
	}
	if summary.StartTimeList == nil {
		summary.StartTimeList = []float64{}
		summary.EndTimeList = []float64{}
	}
	return summary
}

// weeklyTable lays a timetable out day by day, earliest class first.
func weeklyTable(title string, c planner.Combination) export.Table {
	score := planner.ScoreOf(c)
	table := export.Table{
		Title: title,
		Notes: []string{
			fmt.Sprintf("Days on campus: %d", score.DaysUsed),
			fmt.Sprintf("Time between classes: %s h", formatGap(score.TotalGap)),
		},
		Headers: []string{"Day", "Start", "End", "Section", "Title", "Instructor", "Location", "CRN"},
	}
	for i := 0; i < len(planner.Weekdays); i++ {
		day := planner.Weekday(planner.Weekdays[i])
		var today []planner.Section
		for _, s := range c {
			if s.MeetsOn(day) {
				today = append(today, s)
			}
		}
		sort.SliceStable(today, func(a, b int) bool { return today[a].Window.Start < today[b].Window.Start })
		for _, s := range today {
			table.Rows = append(table.Rows, []string{
				day.String(),
				planner.FormatClock(s.Window.Start),
				planner.FormatClock(s.Window.End),
				s.ID,
				s.Meta.Title,
				s.Meta.Instructor,
				s.Meta.Location,
				s.Meta.CRN,
			})
		}
	}
	return table
}

func exportFilename(title, extension string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "timetable"
	}
	return name + "." + extension
}
