package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

const testCatalog = `term: "202490"
groups:
  - name: COMP1020A
    sections:
      - id: COMP1020A01
        time: 09:30 am-10:20 am
        days: MWF
      - id: COMP1020A02
        time: 01:30 pm-02:20 pm
        days: MWF
        meta: {location: Armes 200}
  - name: MATH1240A
    sections:
      - id: MATH1240A01
        time: 10:00 am-11:15 am
        days: TR
      - id: MATH1240A02
        time: 09:30 am-10:20 am
        days: MWF
      - id: MATH1240A03
        time: TBA
        days: MWF
`

func writeCatalogFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanPrintsBestTimetable(t *testing.T) {
	out, err := run(t, "plan", "--catalog", writeCatalogFile(t, testCatalog))
	require.NoError(t, err)

	assert.Contains(t, out, "Best timetable for 202490")
	assert.Contains(t, out, "3 clash-free timetables")
	assert.Contains(t, out, "3 days on campus")
	assert.Contains(t, out, "COMP1020A02")
	assert.Contains(t, out, "MATH1240A02")
	assert.Contains(t, out, "Armes 200")
	assert.NotContains(t, out, "MATH1240A03")
}

func TestPlanAppliesConstraintsAndListsAll(t *testing.T) {
	path := writeCatalogFile(t, testCatalog)
	out, err := run(t, "plan", "--catalog", path, "--constraint", "w:MORNING", "--all", "--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "1 clash-free timetables")
	assert.Contains(t, out, "COMP1020A02 MATH1240A01")

	_, err = run(t, "plan", "--catalog", path, "--constraint", "W:morning", "--constraint", "T:customize=10:30 am-11:00 am")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoValidCombination.Code, appErrors.FromError(err).Code)
}

func TestPlanRejectsBadInput(t *testing.T) {
	path := writeCatalogFile(t, testCatalog)

	_, err := run(t, "plan", "--catalog", path, "--constraint", "weekend")
	assert.Error(t, err)

	_, err = run(t, "plan", "--catalog", path, "--constraint", "S:allday")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidConstraint.Code, appErrors.FromError(err).Code)

	_, err = run(t, "plan", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "plan", "--catalog", writeCatalogFile(t, "groups: []\n"))
	assert.Error(t, err)

	_, err = run(t, "plan", "--catalog", writeCatalogFile(t, "groups:\n  - name: X\n    extra: 1\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = run(t, "plan")
	assert.Error(t, err, "catalog flag is required")
}

func TestPlanSplitFlagFiltersMismatchedMeetings(t *testing.T) {
	body := `groups:
  - name: ENG1440A
    sections:
      - {id: ENG1440A01, time: 09:30 am-10:20 am, days: MW}
      - {id: ENG1440A02, time: 01:30 pm-02:20 pm, days: MW}
  - name: "ENG1440#2"
    sections:
      - {id: ENG1440A01, time: 09:30 am-10:45 am, days: F}
      - {id: ENG1440A02, time: 01:30 pm-02:45 pm, days: F}
`
	path := writeCatalogFile(t, body)

	out, err := run(t, "plan", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 clash-free timetables")

	out, err = run(t, "plan", "--catalog", path, "--split", "ENG1440", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "2 clash-free timetables")
	assert.NotContains(t, out, "ENG1440A01 ENG1440A02")
}

func TestParseTimeCommand(t *testing.T) {
	out, err := run(t, "parse-time", "09:30 am-10:20 am")
	require.NoError(t, err)
	assert.Equal(t, "start=9.5000 end=10.3333 (09:30 am-10:20 am)", strings.TrimSpace(out))

	_, err = run(t, "parse-time", "9:30-10:20")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedTime.Code, appErrors.FromError(err).Code)
}

func TestWriteCatalogRoundTrips(t *testing.T) {
	catalog, err := readCatalog(writeCatalogFile(t, testCatalog))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, catalog))
	assert.Contains(t, buf.String(), "name: COMP1020A")

	again, err := readCatalog(writeCatalogFile(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, catalog, again)
}

const bannerPage = `{"success":true,"totalCount":2,"data":[
{"subject":"COMP","courseNumber":"1020","sequenceNumber":"A01","courseReferenceNumber":"10001",
 "courseTitle":"Introductory Computer Science 2","enrollment":10,"maximumEnrollment":20,"openSection":true,
 "faculty":[{"displayName":"Lovelace, Ada"}],
 "meetingsFaculty":[{"meetingTime":{"beginTime":"0930","endTime":"1020","monday":true,"wednesday":true,"friday":true,"buildingDescription":"Armes"}}]},
{"subject":"COMP","courseNumber":"1020","sequenceNumber":"A02","courseReferenceNumber":"10002",
 "courseTitle":"Introductory Computer Science 2","enrollment":20,"maximumEnrollment":20,"openSection":false,
 "faculty":[],
 "meetingsFaculty":[{"meetingTime":{"beginTime":"1330","endTime":"1420","tuesday":true,"thursday":true,"buildingDescription":"Machray"}}]}
]}`

func TestFetchWritesPlannableCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ssb/searchResults/searchResults" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(bannerPage))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "fall.yaml")
	_, err := run(t, "fetch", "--term", "fall 2024", "--courses", "comp 1020", "--registrar-url", srv.URL+"/ssb", "-o", path)
	require.NoError(t, err)

	catalog, err := readCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "202490", catalog.Term)
	require.Len(t, catalog.Groups, 1)
	assert.Equal(t, "COMP1020A", catalog.Groups[0].Name)
	require.Len(t, catalog.Groups[0].Sections, 2)
	assert.Equal(t, "09:30 am-10:20 am", catalog.Groups[0].Sections[0].Time)
	assert.Equal(t, "TR", catalog.Groups[0].Sections[1].Days)

	out, err := run(t, "plan", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 clash-free timetables")
}

func TestFetchRejectsUnknownTerm(t *testing.T) {
	_, err := run(t, "fetch", "--term", "spring 2024", "--courses", "COMP1020")
	assert.Error(t, err)
}
