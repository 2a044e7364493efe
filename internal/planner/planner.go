// Package planner builds conflict-free weekly timetables from groups of alternative
// course sections and ranks them by days on campus and idle time between classes.
package planner

import "context"

// Plan enumerates every conflict-free combination of groups, drops inconsistent
// split-meeting choices and ranks the rest.
func (e Enumerator) Plan(ctx context.Context, groups []Group, splitCourses []string) (TimetableSet, error) {
	combinations, err := e.Enumerate(ctx, groups)
	if err != nil {
		return TimetableSet{}, err
	}
	set := Rank(FilterSplitMeetings(combinations, splitCourses))
	if set.Empty() {
		return set, noValidCombination()
	}
	return set, nil
}

// Plan runs the sequential planner.
func Plan(ctx context.Context, groups []Group, splitCourses []string) (TimetableSet, error) {
	return Enumerator{}.Plan(ctx, groups, splitCourses)
}
