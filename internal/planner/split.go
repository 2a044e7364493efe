package planner

// sectionSuffixLen is the width of the section code at the end of a section ID
// ("MATH1240A01" -> "MATH1240" + "A01").
const sectionSuffixLen = 3

// companionLetter marks independently selectable companion sections (labs, tutorials).
const companionLetter = 'B'

// SplitSectionID separates a section ID into its course prefix and section suffix.
func SplitSectionID(id string) (course, section string) {
	if len(id) <= sectionSuffixLen {
		return "", id
	}
	cut := len(id) - sectionSuffixLen
	return id[:cut], id[cut:]
}

// FilterSplitMeetings drops combinations that pick different primary sections for the
// two meeting blocks of a split-meeting course. The input slice is left untouched.
func FilterSplitMeetings(combinations []Combination, splitCourses []string) []Combination {
	if len(splitCourses) == 0 {
		return combinations
	}
	kept := make([]Combination, 0, len(combinations))
	for _, combination := range combinations {
		if consistentSplits(combination, splitCourses) {
			kept = append(kept, combination)
		}
	}
	return kept
}

func consistentSplits(combination Combination, splitCourses []string) bool {
	for _, course := range splitCourses {
		chosen := ""
		for _, s := range combination {
			prefix, suffix := SplitSectionID(s.ID)
			if prefix != course || suffix == "" || suffix[0] == companionLetter {
				continue
			}
			if chosen == "" {
				chosen = suffix
				continue
			}
			if suffix != chosen {
				return false
			}
		}
	}
	return true
}
