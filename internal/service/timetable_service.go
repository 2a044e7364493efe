package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	"github.com/noah-isme/course-planner-api/internal/planner"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/export"
	"github.com/noah-isme/course-planner-api/pkg/registrar"
)

// SectionSearcher fetches the sections of a course list for one term.
type SectionSearcher interface {
	Search(ctx context.Context, term string, queries []registrar.Query) ([]registrar.Course, error)
}

// TimetableConfig tunes TimetableService.
type TimetableConfig struct {
	Workers    int
	Timeout    time.Duration
	MaxCourses int
	CacheTTL   time.Duration
}

// TimetableService generates, filters, scores and exports timetables.
type TimetableService struct {
	sections  SectionSearcher
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableConfig
}

// NewTimetableService constructs the service. cache and metrics may be nil.
func NewTimetableService(sections SectionSearcher, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg TimetableConfig) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TimetableService{
		sections:  sections,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate returns every conflict-free timetable for the requested courses,
// best first. The boolean reports whether the result came from cache.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable request")
	}
	term, err := ResolveTerm(req.Term)
	if err != nil {
		return nil, false, err
	}
	codes, err := ParseCourseList(req.Courses, s.cfg.MaxCourses)
	if err != nil {
		return nil, false, err
	}

	cacheKey := timetableCacheKey(term, codes)
	var cached dto.GenerateTimetableResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.logger.Warn("timetable cache unavailable, planning without it", zap.Error(err))
	} else if hit {
		return &cached, true, nil
	}

	courses, err := s.fetch(ctx, term, codes)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	catalog, err := BuildCatalog(courses)
	if err != nil {
		s.observe("generate", err, 0, start)
		return nil, false, err
	}
	groups, rejections := planner.BuildGroups(catalog.Groups)
	warnings := catalog.Warnings
	for _, r := range rejections {
		s.logger.Warn("section rejected", zap.String("group", r.Group), zap.String("section", r.SectionID), zap.Error(r.Err))
		warnings = append(warnings, r.Error())
	}
	if len(groups) == 0 {
		err := appErrors.Clone(appErrors.ErrNoValidCombination, "none of the requested courses has scheduled meetings")
		s.observe("generate", err, 0, start)
		return nil, false, err
	}

	set, err := s.plan(ctx, groups, catalog.SplitCourses)
	s.observe("generate", err, set.Count, start)
	if err != nil {
		return nil, false, err
	}

	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = c.String()
	}
	split := catalog.SplitCourses
	if split == nil {
		split = []string{}
	}
	resp := &dto.GenerateTimetableResponse{
		TimetableSummary: summarize(set),
		Term:             term.Code,
		TermLabel:        term.Label(),
		Courses:          names,
		SplitCourses:     split,
		Warnings:         warnings,
	}
	s.logger.Info("timetables generated",
		zap.String("term", term.Code), zap.Strings("courses", names),
		zap.Int("ways", set.Count), zap.Duration("elapsed", time.Since(start)))

	if err := s.cache.Set(ctx, cacheKey, resp, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("timetable not cached", zap.String("key", cacheKey), zap.Error(err))
	}
	return resp, false, nil
}

// Customize filters a previously generated list by availability rules and
// re-ranks what remains. Every rule is checked before any is applied.
func (s *TimetableService) Customize(ctx context.Context, req dto.CustomizeTimetableRequest) (*dto.CustomizeTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid customization request")
	}
	constraints := make([]planner.Constraint, 0, len(req.Customizations))
	for _, c := range req.Customizations {
		constraint, err := planner.ParseConstraint(
			strings.ToUpper(strings.TrimSpace(c.WeekDay)),
			strings.ToLower(strings.TrimSpace(c.DayTime)),
			strings.TrimSpace(c.CustomTime),
		)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, constraint)
	}
	combinations, err := toCombinations(req.ClassListWays)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	set, err := planner.ApplyConstraints(planner.NewSet(combinations), constraints...)
	s.observe("customize", err, set.Count, start)
	if err != nil {
		return nil, err
	}
	return &dto.CustomizeTimetableResponse{TimetableSummary: summarize(set), Applied: len(constraints)}, nil
}

// Load scores one timetable and returns its drawing data.
func (s *TimetableService) Load(ctx context.Context, req dto.LoadTimetableRequest) (*dto.LoadTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable")
	}
	combination, err := toCombination(req.CurrentClassList)
	if err != nil {
		return nil, err
	}
	score := planner.ScoreOf(combination)
	starts, ends := planner.TimeLists(combination)
	return &dto.LoadTimetableResponse{
		TimeGap:       formatGap(score.TotalGap),
		DaysUsed:      score.DaysUsed,
		StartTimeList: starts,
		EndTimeList:   ends,
	}, nil
}

// Export renders one timetable as CSV or PDF.
func (s *TimetableService) Export(ctx context.Context, req dto.ExportTimetableRequest) (*dto.ExportedFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	combination, err := toCombination(req.ClassList)
	if err != nil {
		return nil, err
	}
	renderer, err := export.ForFormat(req.Format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Timetable"
	}
	body, err := renderer.Render(weeklyTable(title, combination))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}
	return &dto.ExportedFile{
		Filename:    exportFilename(title, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

// InvalidateTerm drops every cached timetable of a term, e.g. after the
// registration system publishes new sections.
func (s *TimetableService) InvalidateTerm(ctx context.Context, req dto.InvalidateCacheRequest) (*dto.InvalidateCacheResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cache request")
	}
	term, err := ResolveTerm(req.Term)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, termCachePattern(term)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate timetable cache")
	}
	s.logger.Info("timetable cache invalidated", zap.String("term", term.Code))
	return &dto.InvalidateCacheResponse{Term: term.Code, CacheEnabled: s.cache.Enabled()}, nil
}

// Ready reports whether the optional cache backend is reachable.
func (s *TimetableService) Ready(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func (s *TimetableService) fetch(ctx context.Context, term models.Term, codes []models.CourseCode) ([]registrar.Course, error) {
	if s.sections == nil {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "registration system client is not configured")
	}
	queries := make([]registrar.Query, len(codes))
	for i, c := range codes {
		queries[i] = registrar.Query{Subject: c.Subject, Number: c.Number}
	}

	start := time.Now()
	courses, err := s.sections.Search(ctx, term.Code, queries)
	s.metrics.ObserveRegistrarFetch(err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("registrar search failed", zap.String("term", term.Code), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	return courses, nil
}

func (s *TimetableService) plan(ctx context.Context, groups []planner.Group, splitCourses []string) (planner.TimetableSet, error) {
	planCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	set, err := planner.Enumerator{Workers: s.cfg.Workers}.Plan(planCtx, groups, splitCourses)
	if errors.Is(err, context.DeadlineExceeded) {
		return planner.TimetableSet{}, appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status,
			fmt.Sprintf("timetable search exceeded %s", s.cfg.Timeout))
	}
	return set, err
}

func (s *TimetableService) observe(operation string, err error, combinations int, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = appErrors.FromError(err).Code
	}
	s.metrics.ObservePlan(operation, outcome, combinations, time.Since(start))
}
