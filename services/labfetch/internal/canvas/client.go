package canvas

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kthtools/labfetch/internal/models"
)

// gradedTypes are the grading types an assignment must use to show up in
// listings. Ungraded surveys and the like are filtered out.
var gradedTypes = map[string]bool{
	"pass_fail":    true,
	"points":       true,
	"letter_grade": true,
}

// Client talks to the Canvas REST API with a bearer token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a Canvas client from configuration.
// canvas.api_token must be set (usually via the CANVAS_API_TOKEN env var).
func NewClient(log zerolog.Logger) *Client {
	baseURL := viper.GetString("canvas.api_url")
	if baseURL == "" {
		baseURL = "https://canvas.kth.se/api/v1"
	}

	timeout := viper.GetDuration("http.timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		token:   viper.GetString("canvas.api_token"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCourses returns the courses where the caller has a non-student
// enrollment, newest first.
func (c *Client) GetCourses(ctx context.Context) ([]models.Course, error) {
	all, err := fetchPaginated[models.Course](ctx, c, fmt.Sprintf("%s/courses", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}

	var courses []models.Course
	for _, course := range all {
		for _, enrollment := range course.Enrollments {
			if enrollment.Type != "student" {
				courses = append(courses, course)
				break
			}
		}
	}

	sort.SliceStable(courses, func(i, j int) bool {
		return createdAt(courses[i]).After(createdAt(courses[j]))
	})

	return courses, nil
}

// GetAssignments returns the published, gradable assignments of a course,
// ordered by due date. Assignments without a due date sort as if due now.
func (c *Client) GetAssignments(ctx context.Context, courseID string) ([]models.Assignment, error) {
	all, err := fetchPaginated[models.Assignment](ctx, c, fmt.Sprintf("%s/courses/%s/assignments", c.baseURL, courseID))
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments for course %s: %w", courseID, err)
	}

	var assignments []models.Assignment
	for _, assignment := range all {
		if assignment.Published && gradedTypes[assignment.GradingType] {
			assignments = append(assignments, assignment)
		}
	}

	now := time.Now()
	sort.SliceStable(assignments, func(i, j int) bool {
		return dueAt(assignments[i], now).Before(dueAt(assignments[j], now))
	})

	return assignments, nil
}

// GetSubmissions returns every submission of an assignment with the
// submitting user embedded, across all pages.
func (c *Client) GetSubmissions(ctx context.Context, course, assignment uint64) ([]models.Submission, error) {
	url := fmt.Sprintf("%s/courses/%d/assignments/%d/submissions?include[]=user", c.baseURL, course, assignment)

	submissions, err := fetchPaginated[models.Submission](ctx, c, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions for assignment %d: %w", assignment, err)
	}

	return submissions, nil
}

func createdAt(course models.Course) time.Time {
	if course.CreatedAt == nil {
		return time.Time{}
	}
	return *course.CreatedAt
}

func dueAt(assignment models.Assignment, now time.Time) time.Time {
	if assignment.DueAt == nil {
		return now
	}
	return *assignment.DueAt
}
