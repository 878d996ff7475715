// Package mock holds the in-memory fixtures behind the mock server: a small
// Canvas course with submissions and the legacy reservation-system HTML
// rendered in the exact template shape the real CGI produces.
package mock

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kthtools/labfetch/internal/models"
)

// AdminID is the requester id the fixture sub-lists belong to. Point
// labfetch at the mock with --user set to this value.
const AdminID = "asalamon"

type attendee struct {
	slot  string // time of day, HH:MM
	name  string
	email string
}

type subList struct {
	id        string
	date      string // two-digit year, YY-MM-DD
	attendees []attendee
}

var (
	mu          sync.RWMutex
	courses     []models.Course
	assignments map[uint64][]models.Assignment
	subLists    []subList
	roster      []models.Submission
	files       map[string][]byte
)

func init() {
	created := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, 3, 22, 17, 0, 0, 0, time.UTC)

	courses = []models.Course{
		{ID: 41200, Name: "DD1338 Algorithms and Data Structures", CreatedAt: &created, Enrollments: []models.Enrollment{{Type: "teacher"}}},
	}

	assignments = map[uint64][]models.Assignment{
		41200: {
			{ID: 228101, Name: "Lab 3: Graphs", DueAt: &due, Published: true, GradingType: "pass_fail"},
			{ID: 228102, Name: "Course survey", Published: true, GradingType: "not_graded"},
		},
	}

	subLists = []subList{
		{
			id:   "grupp-a-" + AdminID,
			date: "24-03-15",
			attendees: []attendee{
				{slot: "10:15", name: "Anna Svensson", email: "annas@kth.se"},
				{slot: "10:30", name: "Bob Eriksson", email: "bob.eriksson@gmail.com"},
			},
		},
		{
			id:   "grupp-b-" + AdminID,
			date: "24-03-16",
			attendees: []attendee{
				{slot: "13:00", name: "Carla Nilsson", email: "carlan@kth.se"},
			},
		},
	}

	files = make(map[string][]byte)
	roster = make([]models.Submission, 0)

	// One submission per attendee; Carla submits under a private address so
	// she only matches through the fuzzy name fallback.
	logins := []string{"annas@kth.se", "bob.eriksson@gmail.com", "carla.nilsson@hotmail.com"}
	names := []string{"Anna Svensson", "Bob Eriksson", "Carla Nilsson"}
	for i := range names {
		fileID := uuid.New().String()
		files[fileID] = []byte(fmt.Sprintf("mock submission by %s\n", names[i]))

		roster = append(roster, models.Submission{
			ID:   uint64(90001 + i),
			User: models.User{Name: names[i], Email: logins[i]},
			Attachments: []models.Attachment{
				{URL: "/files/" + fileID, DisplayName: "lab3.pdf"},
			},
		})
	}
}

// Courses returns the fixture course list.
func Courses() []models.Course {
	mu.RLock()
	defer mu.RUnlock()
	return courses
}

// Assignments returns the fixture assignments of a course.
func Assignments(courseID uint64) []models.Assignment {
	mu.RLock()
	defer mu.RUnlock()
	return assignments[courseID]
}

// SubmissionsPage returns one page of the submission roster plus whether a
// further page exists. Attachment URLs are rewritten against baseURL.
func SubmissionsPage(baseURL string, page, perPage int) ([]models.Submission, bool) {
	mu.RLock()
	defer mu.RUnlock()

	start := (page - 1) * perPage
	if start >= len(roster) {
		return []models.Submission{}, false
	}

	end := start + perPage
	if end > len(roster) {
		end = len(roster)
	}

	out := make([]models.Submission, end-start)
	for i, submission := range roster[start:end] {
		attachments := make([]models.Attachment, len(submission.Attachments))
		for j, attachment := range submission.Attachments {
			attachments[j] = models.Attachment{
				URL:         baseURL + attachment.URL,
				DisplayName: attachment.DisplayName,
			}
		}
		submission.Attachments = attachments
		out[i] = submission
	}

	return out, end < len(roster)
}

// FileContent returns the bytes of a fixture attachment.
func FileContent(id string) ([]byte, bool) {
	mu.RLock()
	defer mu.RUnlock()
	content, ok := files[id]
	return content, ok
}

// OverviewHTML renders the overview fragment: one input per sub-list, the
// value carrying the administrator id as its suffix.
func OverviewHTML() string {
	mu.RLock()
	defer mu.RUnlock()

	var b strings.Builder
	b.WriteString("<h2>Bokningsöversikt</h2>\n<form method=\"post\">\n")
	for _, list := range subLists {
		fmt.Fprintf(&b, "<input type=\"submit\" name=\"event\" value=%q><br>\n", list.id)
	}
	b.WriteString("</form>\n")

	return b.String()
}

// ReservationHTML renders the reservation-view fragment for one sub-list in
// the legacy template shape: a single date line after the first <br>, then
// one row per slot where the time, checkbox, name and email sit in fixed
// sibling positions.
func ReservationHTML(event string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	for _, list := range subLists {
		if list.id != event {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "<h2>Bokningslista</h2>\nLista för %s<br>\nDatum: <b> %s </b>\n<table>\n", list.id, list.date)
		for i, a := range list.attendees {
			fmt.Fprintf(&b,
				"<tr><td><b>%s</b> <input type=\"checkbox\" name=\"reservation\" value=\"r%d\">%s (<a href=\"mailto:%s\"><tt>%s</tt></a>)</td></tr>\n",
				a.slot, i, a.name, a.email, a.email)
		}
		b.WriteString("</table>\n")

		return b.String(), true
	}

	return "", false
}
