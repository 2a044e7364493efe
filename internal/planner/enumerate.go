package planner

import (
	"context"
	"fmt"
	"sync"

	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

// Combination holds one section per group, indexed by group position.
type Combination []Section

// Clone returns an independently allocated copy.
func (c Combination) Clone() Combination {
	out := make(Combination, len(c))
	copy(out, c)
	return out
}

// IDs lists the chosen section identifiers in group order.
func (c Combination) IDs() []string {
	ids := make([]string, len(c))
	for i, s := range c {
		ids[i] = s.ID
	}
	return ids
}

// EmptyGroupError names the course whose group has no sections.
type EmptyGroupError struct {
	Course string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("course %s has no schedulable sections", e.Course)
}

// Enumerator walks the group tree depth first.
type Enumerator struct {
	// Workers > 1 fans the search out over the first group's candidates.
	Workers int
}

// Enumerate returns every conflict-free combination using the sequential search.
func Enumerate(ctx context.Context, groups []Group) ([]Combination, error) {
	return Enumerator{}.Enumerate(ctx, groups)
}

// Enumerate returns every conflict-free combination in candidate order. On
// cancellation the partial result is discarded.
func (e Enumerator) Enumerate(ctx context.Context, groups []Group) ([]Combination, error) {
	for _, g := range groups {
		if len(g.Sections) == 0 {
			return nil, appErrors.Wrap(&EmptyGroupError{Course: g.Name}, appErrors.ErrEmptyGroup.Code, appErrors.ErrEmptyGroup.Status, fmt.Sprintf("no sections found for %s", g.Name))
		}
	}
	if len(groups) == 0 {
		return []Combination{{}}, nil
	}
	if e.Workers <= 1 || len(groups[0].Sections) == 1 {
		s := newSearch(groups)
		if err := s.run(ctx, 0); err != nil {
			return nil, err
		}
		return s.results, nil
	}
	return e.fanOut(ctx, groups)
}

func (e Enumerator) fanOut(ctx context.Context, groups []Group) ([]Combination, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	top := groups[0].Sections
	partitions := make([][]Combination, len(top))
	errs := make([]error, len(top))
	sem := make(chan struct{}, e.Workers)
	var wg sync.WaitGroup

	for i := range top {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			s := newSearch(groups)
			s.buf[0] = top[i]
			var err error
			if len(groups) == 1 {
				if err = ctx.Err(); err == nil {
					s.emit()
				}
			} else {
				err = s.run(ctx, 1)
			}
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			partitions[i] = s.results
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	total := 0
	for _, p := range partitions {
		total += len(p)
	}
	results := make([]Combination, 0, total)
	for _, p := range partitions {
		results = append(results, p...)
	}
	return results, nil
}

type search struct {
	groups  []Group
	buf     Combination
	results []Combination
}

func newSearch(groups []Group) *search {
	return &search{groups: groups, buf: make(Combination, len(groups))}
}

func (s *search) run(ctx context.Context, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	last := len(s.groups) - 1
	for _, candidate := range s.groups[depth].Sections {
		if s.conflicts(candidate, depth) {
			continue
		}
		s.buf[depth] = candidate
		if depth == last {
			s.emit()
			continue
		}
		if err := s.run(ctx, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// emit stores a copy of the working buffer; the buffer is reused by later branches.
func (s *search) emit() {
	s.results = append(s.results, s.buf.Clone())
}

func (s *search) conflicts(candidate Section, depth int) bool {
	for i := 0; i < depth; i++ {
		if Overlaps(candidate, s.buf[i]) {
			return true
		}
	}
	return false
}
