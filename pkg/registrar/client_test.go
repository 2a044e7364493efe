package registrar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fakeSection(seq, crn string) Section {
	return Section{
		Subject:               "COMP",
		CourseNumber:          "1020",
		SequenceNumber:        seq,
		CourseReferenceNumber: crn,
		CourseTitle:           "Introductory Computer Science 2",
		Enrollment:            120,
		MaximumEnrollment:     150,
		OpenSection:           true,
		Faculty:               []Faculty{{DisplayName: "Lovelace, Ada"}},
		MeetingsFaculty: []MeetingFaculty{{MeetingTime: MeetingTime{
			BeginTime: strPtr("1330"), EndTime: strPtr("1420"),
			Monday: true, Wednesday: true, Friday: true,
			BuildingDescription: "Armes",
		}}},
	}
}

type fakeBanner struct {
	t       *testing.T
	term    string
	catalog map[string][]Section
	resets  int32
}

func (f *fakeBanner) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ssb/registration", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "session-1", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ssb/term/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(f.t, http.MethodPost, r.Method)
		assert.Equal(f.t, "search", r.URL.Query().Get("mode"))
		assert.NoError(f.t, r.ParseForm())
		f.term = r.PostForm.Get("term")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ssb/searchResults/searchResults", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("JSESSIONID")
		if err != nil || cookie.Value != "session-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		assert.Equal(f.t, f.term, q.Get("txt_term"))
		all := f.catalog[q.Get("txt_subject")+q.Get("txt_courseNumber")]
		offset, _ := strconv.Atoi(q.Get("pageOffset"))
		size, _ := strconv.Atoi(q.Get("pageMaxSize"))
		end := offset + size
		if end > len(all) {
			end = len(all)
		}
		page := []Section{}
		if offset < len(all) {
			page = all[offset:end]
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Success: true, TotalCount: len(all), Data: page})
	})
	mux.HandleFunc("/ssb/classSearch/resetDataForm", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.resets, 1)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestClientSearchPaginatesAndResets(t *testing.T) {
	banner := &fakeBanner{t: t, catalog: map[string][]Section{
		"COMP1020": {fakeSection("A01", "10001"), fakeSection("A02", "10002"), fakeSection("B01", "10003")},
		"MATH1240": {},
	}}
	srv := httptest.NewServer(banner.handler())
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL + "/ssb/", PageSize: 2, Timeout: time.Second}, nil)
	require.NoError(t, err)

	courses, err := client.Search(context.Background(), "202490", []Query{
		{Subject: "COMP", Number: "1020"},
		{Subject: "MATH", Number: "1240"},
	})
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Equal(t, "202490", banner.term)
	require.Len(t, courses[0].Sections, 3)
	assert.Equal(t, "COMP1020B01", courses[0].Sections[2].ID())
	assert.Empty(t, courses[1].Sections)
	assert.Equal(t, int32(2), atomic.LoadInt32(&banner.resets))
}

func TestClientSearchReportsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "202490", []Query{{Subject: "COMP", Number: "1020"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)
}

func TestMeetingTimeFormatting(t *testing.T) {
	m := MeetingTime{BeginTime: strPtr("1130"), EndTime: strPtr("1245"), Tuesday: true, Thursday: true}
	assert.True(t, m.Scheduled())
	assert.Equal(t, "11:30 am-12:45 pm", m.Interval())
	assert.Equal(t, "TR", m.Days())

	m = MeetingTime{BeginTime: strPtr("0830"), EndTime: strPtr("1720"), Monday: true, Friday: true}
	assert.Equal(t, "08:30 am-05:20 pm", m.Interval())
	assert.Equal(t, "MF", m.Days())

	assert.False(t, MeetingTime{}.Scheduled())
	assert.Equal(t, "", MeetingTime{}.Interval())
	assert.Equal(t, "9:30-10:20 am", MeetingTime{BeginTime: strPtr("9:30"), EndTime: strPtr("1020")}.Interval())
}
