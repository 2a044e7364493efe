package planner

import "sort"

// Score ranks a combination: fewer days first, then less idle time.
type Score struct {
	DaysUsed int     `json:"daysUsed"`
	TotalGap float64 `json:"totalGap"`
}

// Better reports whether s strictly beats other.
func (s Score) Better(other Score) bool {
	if s.DaysUsed != other.DaysUsed {
		return s.DaysUsed < other.DaysUsed
	}
	return s.TotalGap < other.TotalGap
}

// ScoreOf counts the weekdays with classes and sums the idle time on them.
//
// Per day, start and end times are sorted independently and the gap is the sum of
// start[i] - end[i-1]. Sessions are not paired with their own end time, so
// overlapping or nested sessions can produce odd values; ranking depends on this
// exact figure.
func ScoreOf(c Combination) Score {
	var score Score
	starts := make([]float64, 0, len(c))
	ends := make([]float64, 0, len(c))
	for i := 0; i < len(Weekdays); i++ {
		day := Weekday(Weekdays[i])
		starts, ends = starts[:0], ends[:0]
		for _, s := range c {
			if !s.MeetsOn(day) {
				continue
			}
			starts = append(starts, s.Window.Start)
			ends = append(ends, s.Window.End)
		}
		if len(starts) == 0 {
			continue
		}
		score.DaysUsed++
		sort.Float64s(starts)
		sort.Float64s(ends)
		for j := 1; j < len(starts); j++ {
			score.TotalGap += starts[j] - ends[j-1]
		}
	}
	return score
}

// SelectBest returns the index of the best combination. Ties keep the earliest one.
// ok is false for an empty list.
func SelectBest(combinations []Combination) (index int, best Score, ok bool) {
	if len(combinations) == 0 {
		return 0, Score{}, false
	}
	best = ScoreOf(combinations[0])
	for i := 1; i < len(combinations); i++ {
		if score := ScoreOf(combinations[i]); score.Better(best) {
			index, best = i, score
		}
	}
	return index, best, true
}

// TimeLists flattens the start and end times of every section, in group order.
func TimeLists(c Combination) (starts, ends []float64) {
	starts = make([]float64, 0, len(c))
	ends = make([]float64, 0, len(c))
	for _, s := range c {
		starts = append(starts, s.Window.Start)
		ends = append(ends, s.Window.End)
	}
	return starts, ends
}

// TimetableSet is the ranked result of one search or customization step.
type TimetableSet struct {
	Combinations []Combination
	Count        int
	Best         Combination
	BestScore    Score
	StartTimes   []float64
	EndTimes     []float64
}

// Empty reports whether no timetable survived.
func (t TimetableSet) Empty() bool {
	return t.Count == 0
}

// NewSet wraps combinations without ranking them, keeping the caller's order for
// tie-breaks in a later ApplyConstraints.
func NewSet(combinations []Combination) TimetableSet {
	list := make([]Combination, len(combinations))
	copy(list, combinations)
	return TimetableSet{Combinations: list, Count: len(list)}
}

// Rank selects the best combination and swaps it into position 0 of a new list.
// Every other position is preserved.
func Rank(combinations []Combination) TimetableSet {
	ranked := make([]Combination, len(combinations))
	copy(ranked, combinations)
	set := TimetableSet{Combinations: ranked, Count: len(ranked)}

	index, best, ok := SelectBest(ranked)
	if !ok {
		return set
	}
	ranked[0], ranked[index] = ranked[index], ranked[0]
	set.Best = ranked[0]
	set.BestScore = best
	set.StartTimes, set.EndTimes = TimeLists(set.Best)
	return set
}
