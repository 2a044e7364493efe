package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/course-planner-api/internal/planner"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	dayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Width(4)
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("99")).Padding(0, 1)
)

func renderSummary(term string, set planner.TimetableSet) string {
	title := "Best timetable"
	if term != "" {
		title += " for " + term
	}
	return titleStyle.Render(title) + "\n" + mutedStyle.Render(fmt.Sprintf(
		"%d clash-free timetables · %d days on campus · %.2f h between classes",
		set.Count, set.BestScore.DaysUsed, set.BestScore.TotalGap))
}

// renderWeek draws one line per class, grouped by weekday.
func renderWeek(c planner.Combination) string {
	var lines []string
	for i := 0; i < len(planner.Weekdays); i++ {
		day := planner.Weekday(planner.Weekdays[i])
		var today []planner.Section
		for _, s := range c {
			if s.MeetsOn(day) {
				today = append(today, s)
			}
		}
		if len(today) == 0 {
			continue
		}
		sort.SliceStable(today, func(a, b int) bool { return today[a].Window.Start < today[b].Window.Start })
		for j, s := range today {
			label := ""
			if j == 0 {
				label = day.String()
			}
			line := dayStyle.Render(label) + timeStyle.Render(s.Time) + "  " + s.ID
			if s.Meta.Location != "" {
				line += mutedStyle.Render("  " + s.Meta.Location)
			}
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return boxStyle.Render(mutedStyle.Render("no classes"))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderAll(set planner.TimetableSet) string {
	var b strings.Builder
	for i, c := range set.Combinations {
		score := planner.ScoreOf(c)
		fmt.Fprintf(&b, "%3d. %s %s\n", i+1, strings.Join(c.IDs(), " "),
			mutedStyle.Render(fmt.Sprintf("(%d days, %.2f h)", score.DaysUsed, score.TotalGap)))
	}
	return strings.TrimRight(b.String(), "\n")
}
