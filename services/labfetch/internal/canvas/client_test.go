package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kthtools/labfetch/internal/models"
)

func TestNewClientReadsConfig(t *testing.T) {
	viper.Set("canvas.api_url", "http://canvas.example.test/api/v1")
	viper.Set("canvas.api_token", "configured-token")
	viper.Set("http.timeout", "5s")
	t.Cleanup(func() {
		viper.Set("canvas.api_url", "")
		viper.Set("canvas.api_token", "")
		viper.Set("http.timeout", "")
	})

	client := NewClient(zerolog.Nop())
	if client.baseURL != "http://canvas.example.test/api/v1" {
		t.Fatalf("expected configured base URL, got %q", client.baseURL)
	}
	if client.token != "configured-token" {
		t.Fatalf("expected configured token, got %q", client.token)
	}
	if client.client.Timeout != 5*time.Second {
		t.Fatalf("expected configured timeout, got %s", client.client.Timeout)
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	client := NewClient(zerolog.Nop())
	if client.client.Timeout != 30*time.Second {
		t.Fatalf("expected 30s default timeout, got %s", client.client.Timeout)
	}
}

func TestGetCoursesFiltersAndSorts(t *testing.T) {
	older := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/courses" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]models.Course{
			{ID: 1, Name: "Old TA course", CreatedAt: &older, Enrollments: []models.Enrollment{{Type: "ta"}}},
			{ID: 2, Name: "Student course", CreatedAt: &newer, Enrollments: []models.Enrollment{{Type: "student"}}},
			{ID: 3, Name: "New teacher course", CreatedAt: &newer, Enrollments: []models.Enrollment{{Type: "teacher"}}},
		})
	}))
	defer server.Close()

	courses, err := testClient(server.URL).GetCourses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(courses) != 2 {
		t.Fatalf("expected student-only course dropped, got %d courses", len(courses))
	}
	if courses[0].ID != 3 || courses[1].ID != 1 {
		t.Fatalf("expected newest first, got %d then %d", courses[0].ID, courses[1].ID)
	}
}

func TestGetAssignmentsFiltersAndSorts(t *testing.T) {
	early := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	late := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/courses/41200/assignments" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]models.Assignment{
			{ID: 1, Name: "Late lab", DueAt: &late, Published: true, GradingType: "pass_fail"},
			{ID: 2, Name: "Unpublished", DueAt: &early, Published: false, GradingType: "points"},
			{ID: 3, Name: "Survey", DueAt: &early, Published: true, GradingType: "not_graded"},
			{ID: 4, Name: "Early lab", DueAt: &early, Published: true, GradingType: "letter_grade"},
		})
	}))
	defer server.Close()

	assignments, err := testClient(server.URL).GetAssignments(context.Background(), "41200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assignments) != 2 {
		t.Fatalf("expected unpublished and ungraded dropped, got %d assignments", len(assignments))
	}
	if assignments[0].ID != 4 || assignments[1].ID != 1 {
		t.Fatalf("expected due-date order, got %d then %d", assignments[0].ID, assignments[1].ID)
	}
}

func TestGetSubmissionsRequestsEmbeddedUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("include[]"); got != "user" {
			t.Errorf("expected include[]=user, got %q", got)
		}
		json.NewEncoder(w).Encode([]models.Submission{
			{ID: 10, User: models.User{Name: "Anna Svensson", Email: "annas@kth.se"}},
		})
	}))
	defer server.Close()

	submissions, err := testClient(server.URL).GetSubmissions(context.Background(), 41200, 228101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(submissions) != 1 || submissions[0].User.Name != "Anna Svensson" {
		t.Fatalf("unexpected submissions: %+v", submissions)
	}
}

func TestDownloadSubmissionWritesPrefixedFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "file bytes")
	}))
	defer server.Close()

	dir := t.TempDir()
	submission := models.Submission{
		ID:   10,
		User: models.User{Name: "Anna Svensson", Email: "annas@kth.se"},
		Attachments: []models.Attachment{
			{URL: server.URL + "/a", DisplayName: "lab3.pdf"},
			{URL: server.URL + "/b", DisplayName: "notes.txt"},
		},
	}

	paths, err := testClient(server.URL).DownloadSubmission(context.Background(), submission, dir, "202403151015-Anna Svensson")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "202403151015-Anna Svensson-lab3.pdf"),
		filepath.Join(dir, "202403151015-Anna Svensson-notes.txt"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(paths))
	}
	for i, path := range paths {
		if path != want[i] {
			t.Fatalf("expected path %q, got %q", want[i], path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		if string(content) != "file bytes" {
			t.Fatalf("unexpected content %q in %s", content, path)
		}
	}
}

func TestDownloadSubmissionNoAttachments(t *testing.T) {
	submission := models.Submission{ID: 10, User: models.User{Name: "Anna"}}

	_, err := testClient("http://unused.test").DownloadSubmission(context.Background(), submission, t.TempDir(), "x")
	if !errors.Is(err, ErrNoAttachments) {
		t.Fatalf("expected ErrNoAttachments, got %v", err)
	}
}

func TestDownloadIsolationAcrossSubmissions(t *testing.T) {
	// The first submission's attachment URL is dead, the second's is live.
	// A failure on one submission must not stop the other from landing on
	// disk; the caller's loop reports the first error and carries on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "survivor")
	}))
	defer server.Close()

	dir := t.TempDir()
	client := testClient(server.URL)
	submissions := []models.Submission{
		{ID: 1, User: models.User{Name: "First"}, Attachments: []models.Attachment{{URL: server.URL + "/dead", DisplayName: "a.pdf"}}},
		{ID: 2, User: models.User{Name: "Second"}, Attachments: []models.Attachment{{URL: server.URL + "/live", DisplayName: "b.pdf"}}},
	}

	var failures int
	for i, submission := range submissions {
		if _, err := client.DownloadSubmission(context.Background(), submission, dir, fmt.Sprintf("s%d", i)); err != nil {
			failures++
		}
	}

	if failures != 1 {
		t.Fatalf("expected exactly one failing submission, got %d", failures)
	}
	content, err := os.ReadFile(filepath.Join(dir, "s1-b.pdf"))
	if err != nil {
		t.Fatalf("expected second submission's file: %v", err)
	}
	if string(content) != "survivor" {
		t.Fatalf("unexpected content %q", content)
	}
}
