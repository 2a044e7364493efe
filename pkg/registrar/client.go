// Package registrar talks to the Banner self-service class search used by the
// registration system. Each search runs in its own cookie session because
// the term selection is stored server side.
package registrar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxPages = 20

// Config configures the client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	PageSize  int
	UserAgent string

	// RequestsPerSecond caps upstream calls across all sessions. Zero disables the limit.
	RequestsPerSecond int
}

// Client looks up class sections by term and course.
type Client struct {
	baseURL   string
	timeout   time.Duration
	pageSize  int
	userAgent string
	transport http.RoundTripper
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewClient validates cfg and returns a client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.ParseRequestURI(base); err != nil || base == "" {
		return nil, fmt.Errorf("registrar base url %q is invalid", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond)
	}
	return &Client{
		limiter:   limiter,
		baseURL:   base,
		timeout:   cfg.Timeout,
		pageSize:  cfg.PageSize,
		userAgent: cfg.UserAgent,
		transport: http.DefaultTransport,
		logger:    logger,
	}, nil
}

// Search opens a session for term and fetches the sections of every query
// in order. The first failing lookup aborts the search.
func (c *Client) Search(ctx context.Context, term string, queries []Query) ([]Course, error) {
	s, err := c.open(ctx, term)
	if err != nil {
		return nil, err
	}

	courses := make([]Course, 0, len(queries))
	for _, q := range queries {
		sections, err := s.sections(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", q, err)
		}
		c.logger.Debug("registrar sections fetched",
			zap.String("term", term), zap.String("course", q.String()), zap.Int("sections", len(sections)))
		courses = append(courses, Course{Query: q, Sections: sections})
	}
	return courses, nil
}

type session struct {
	client *Client
	http   *http.Client
	term   string
}

func (c *Client) open(ctx context.Context, term string) (*session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	s := &session{
		client: c,
		http:   &http.Client{Jar: jar, Timeout: c.timeout, Transport: c.transport},
		term:   term,
	}

	if err := s.do(ctx, http.MethodGet, "/registration", nil, nil, nil); err != nil {
		return nil, fmt.Errorf("open registration session: %w", err)
	}

	form := url.Values{}
	form.Set("term", term)
	form.Set("studyPath", "")
	form.Set("studyPathText", "")
	form.Set("startDatepicker", "")
	form.Set("endDatepicker", "")
	if err := s.do(ctx, http.MethodPost, "/term/search", url.Values{"mode": {"search"}}, form, nil); err != nil {
		return nil, fmt.Errorf("select term %s: %w", term, err)
	}
	return s, nil
}

func (s *session) sections(ctx context.Context, q Query) ([]Section, error) {
	var all []Section
	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("txt_subject", q.Subject)
		params.Set("txt_courseNumber", q.Number)
		params.Set("txt_term", s.term)
		params.Set("startDatepicker", "")
		params.Set("endDatepicker", "")
		params.Set("pageOffset", strconv.Itoa(len(all)))
		params.Set("pageMaxSize", strconv.Itoa(s.client.pageSize))
		params.Set("sortColumn", "subjectDescription")
		params.Set("sortDirection", "asc")

		var resp searchResponse
		if err := s.do(ctx, http.MethodGet, "/searchResults/searchResults", params, nil, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if len(resp.Data) == 0 || len(all) >= resp.TotalCount {
			break
		}
	}

	// The server keeps the last search criteria per session.
	if err := s.do(ctx, http.MethodPost, "/classSearch/resetDataForm", nil, url.Values{}, nil); err != nil {
		return nil, fmt.Errorf("reset search form: %w", err)
	}
	return all, nil
}

func (s *session) do(ctx context.Context, method, path string, params, form url.Values, dest interface{}) error {
	if err := s.client.limiter.Wait(ctx); err != nil {
		return err
	}

	target := s.client.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if s.client.userAgent != "" {
		req.Header.Set("User-Agent", s.client.userAgent)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
