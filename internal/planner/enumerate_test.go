package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

func TestEnumerateTwoGroupScenario(t *testing.T) {
	groups := []Group{
		{Name: "X", Sections: []Section{
			mustSection(t, "X01", "09:30 am-10:20 am", "MWF"),
			mustSection(t, "X02", "10:30 am-11:20 am", "MWF"),
		}},
		{Name: "Y", Sections: []Section{
			mustSection(t, "Y01", "09:30 am-10:20 am", "TR"),
		}},
	}

	combinations, err := Enumerate(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, combinations, 2)
	assert.Equal(t, []string{"X01", "Y01"}, combinations[0].IDs())
	assert.Equal(t, []string{"X02", "Y01"}, combinations[1].IDs())
	for _, c := range combinations {
		assert.Equal(t, Score{DaysUsed: 5, TotalGap: 0}, ScoreOf(c))
	}

	set := Rank(combinations)
	assert.Equal(t, []string{"X01", "Y01"}, set.Best.IDs())
}

func TestEnumeratePrunesOverlappingSections(t *testing.T) {
	groups := []Group{
		{Name: "A", Sections: []Section{mustSection(t, "A01", "09:00 am-10:00 am", "M")}},
		{Name: "B", Sections: []Section{
			mustSection(t, "B01", "09:30 am-10:30 am", "M"),
			mustSection(t, "B02", "10:00 am-11:00 am", "M"),
		}},
	}

	combinations, err := Enumerate(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, combinations, 1)
	assert.Equal(t, []string{"A01", "B02"}, combinations[0].IDs())
}

func TestEnumerateMatchesBruteForce(t *testing.T) {
	groups := sampleCatalog(t)

	combinations, err := Enumerate(context.Background(), groups)
	require.NoError(t, err)

	expected := bruteForce(groups)
	require.NotEmpty(t, expected)
	assert.ElementsMatch(t, joinIDs(expected), joinIDs(combinations))

	for _, c := range combinations {
		require.Len(t, c, len(groups))
		for i := range c {
			for j := i + 1; j < len(c); j++ {
				assert.False(t, Overlaps(c[i], c[j]), "%s overlaps %s", c[i].ID, c[j].ID)
			}
		}
	}
}

func TestEnumerateStoresIndependentCopies(t *testing.T) {
	groups := sampleCatalog(t)

	combinations, err := Enumerate(context.Background(), groups)
	require.NoError(t, err)
	require.True(t, len(combinations) > 1)

	seen := make(map[string]bool, len(combinations))
	for _, c := range combinations {
		key := strings.Join(c.IDs(), ",")
		assert.False(t, seen[key], "duplicate combination %s", key)
		seen[key] = true
	}

	first := strings.Join(combinations[0].IDs(), ",")
	combinations[1][0] = Section{ID: "MUTATED"}
	assert.Equal(t, first, strings.Join(combinations[0].IDs(), ","))
}

func TestEnumerateWithoutGroupsYieldsOneEmptyCombination(t *testing.T) {
	combinations, err := Enumerate(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, combinations, 1)
	assert.Empty(t, combinations[0])
}

func TestEnumerateReportsEmptyGroup(t *testing.T) {
	groups := []Group{
		{Name: "COMP1020", Sections: []Section{mustSection(t, "COMP1020A01", "09:30 am-10:20 am", "MWF")}},
		{Name: "MATH1240"},
	}

	combinations, err := Enumerate(context.Background(), groups)
	require.Error(t, err)
	assert.Nil(t, combinations)
	assert.Equal(t, appErrors.ErrEmptyGroup.Code, appErrors.FromError(err).Code)

	var empty *EmptyGroupError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "MATH1240", empty.Course)
}

func TestEnumerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	combinations, err := Enumerate(ctx, sampleCatalog(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, combinations)

	combinations, err = Enumerator{Workers: 4}.Enumerate(ctx, sampleCatalog(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, combinations)
}

func TestEnumeratorFanOutHonoursCancellationWithOneGroup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	single := []Group{{Name: "COMP1020A", Sections: []Section{
		mustSection(t, "COMP1020A01", "09:30 am-10:20 am", "MWF"),
		mustSection(t, "COMP1020A02", "01:30 pm-02:20 pm", "MWF"),
	}}}

	combinations, err := Enumerator{Workers: 4}.Enumerate(ctx, single)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, combinations)

	combinations, err = Enumerator{Workers: 4}.Enumerate(context.Background(), single)
	require.NoError(t, err)
	assert.Len(t, combinations, 2)
}

func TestEnumeratorFanOutKeepsSequentialOrder(t *testing.T) {
	groups := sampleCatalog(t)

	sequential, err := Enumerate(context.Background(), groups)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8} {
		parallel, err := Enumerator{Workers: workers}.Enumerate(context.Background(), groups)
		require.NoError(t, err)
		assert.Equal(t, joinIDs(sequential), joinIDs(parallel), "workers=%d", workers)
	}

	single, err := Enumerator{Workers: 4}.Enumerate(context.Background(), groups[:1])
	require.NoError(t, err)
	assert.Len(t, single, len(groups[0].Sections))
}

// sampleCatalog mirrors a first-year load: lecture groups plus lab groups.
func sampleCatalog(t *testing.T) []Group {
	t.Helper()
	return []Group{
		{Name: "MATH1240A", Sections: []Section{
			mustSection(t, "MATH1240A01", "12:30 pm-01:20 pm", "MWF"),
			mustSection(t, "MATH1240A02", "09:30 am-10:20 am", "MWF"),
		}},
		{Name: "MATH1240B", Sections: []Section{
			mustSection(t, "MATH1240B01", "09:30 am-10:20 am", "W"),
			mustSection(t, "MATH1240B02", "10:30 am-11:20 am", "W"),
			mustSection(t, "MATH1240B03", "11:30 am-12:20 pm", "W"),
			mustSection(t, "MATH1240B04", "01:30 pm-02:20 pm", "W"),
		}},
		{Name: "COMP1020A", Sections: []Section{
			mustSection(t, "COMP1020A01", "02:30 pm-03:45 pm", "T"),
			mustSection(t, "COMP1020A02", "02:30 pm-03:45 pm", "R"),
		}},
		{Name: "CHEM1100A", Sections: []Section{
			mustSection(t, "CHEM1100A01", "10:00 am-11:15 am", "TR"),
		}},
		{Name: "CHEM1100B", Sections: []Section{
			mustSection(t, "CHEM1100B01", "08:30 am-09:20 am", "T"),
			mustSection(t, "CHEM1100B02", "02:30 pm-03:20 pm", "W"),
			mustSection(t, "CHEM1100B03", "03:30 pm-04:20 pm", "W"),
			mustSection(t, "CHEM1100B04", "02:30 pm-03:20 pm", "R"),
		}},
	}
}

func bruteForce(groups []Group) []Combination {
	var out []Combination
	var walk func(depth int, acc Combination)
	walk = func(depth int, acc Combination) {
		if depth == len(groups) {
			for i := range acc {
				for j := i + 1; j < len(acc); j++ {
					if Overlaps(acc[i], acc[j]) {
						return
					}
				}
			}
			out = append(out, acc.Clone())
			return
		}
		for _, s := range groups[depth].Sections {
			walk(depth+1, append(acc, s))
		}
	}
	walk(0, nil)
	return out
}

func joinIDs(combinations []Combination) []string {
	out := make([]string, len(combinations))
	for i, c := range combinations {
		out[i] = strings.Join(c.IDs(), ",")
	}
	return out
}
