package remores

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kthtools/labfetch/internal/models"
)

// timeLayout combines the page date (two-digit year) with a row's
// time-of-day. The source timestamps are wall-clock values treated as UTC,
// no zone conversion happens.
const timeLayout = "06-01-02 15:04"

// parseOverview extracts sub-list identifiers from an overview fragment:
// every <input> whose value attribute ends with userID names one session
// list administered by that user.
func parseOverview(r io.Reader, userID string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overview: %w", err)
	}

	var subLists []string
	doc.Find("input").Each(func(_ int, sel *goquery.Selection) {
		if value, ok := sel.Attr("value"); ok && strings.HasSuffix(value, userID) {
			subLists = append(subLists, value)
		}
	})

	return subLists, nil
}

// parseReservations extracts bookings from a reservation-view fragment.
// The whole page shares a single date; each <input name=reservation> marks
// one booked slot with the time, name and email in fixed positions around
// it. A missing node anywhere is a hard error: a malformed page means the
// upstream template changed, and silently dropping rows would hand the
// grader an incomplete list.
func parseReservations(r io.Reader, emailDomain string) ([]models.Booking, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reservation list: %w", err)
	}

	date, err := pageDate(doc)
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	for _, node := range doc.Find(`input[name="reservation"]`).Nodes {
		timeOfDay, ok := firstChildText(prevSibling(node, 2))
		if !ok {
			return nil, fmt.Errorf("no time for reservation input")
		}

		nameNode := nextSibling(node, 1)
		if nameNode == nil {
			return nil, fmt.Errorf("no name for reservation input")
		}

		name, ok := textOf(nameNode)
		if !ok {
			return nil, fmt.Errorf("no text for name node")
		}
		name = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(name), "("))

		email, ok := firstChildText(firstChild(nextSibling(nameNode, 1)))
		if !ok {
			return nil, fmt.Errorf("no email for reservation input")
		}

		slot, err := time.Parse(timeLayout, date+" "+strings.TrimSpace(timeOfDay))
		if err != nil {
			return nil, fmt.Errorf("failed to parse slot time: %w", err)
		}

		bookings = append(bookings, models.Booking{
			Time:  slot,
			Name:  name,
			Email: models.ClassifyEmail(email, emailDomain),
		})
	}

	return bookings, nil
}

// pageDate finds the date shared by all rows on a reservation-view page:
// the text of the first child of the second-next sibling of the first <br>.
func pageDate(doc *goquery.Document) (string, error) {
	br := doc.Find("br").First()
	if len(br.Nodes) == 0 {
		return "", fmt.Errorf("no line break before date")
	}

	date, ok := firstChildText(nextSibling(br.Nodes[0], 2))
	if !ok {
		return "", fmt.Errorf("no date text")
	}

	return strings.TrimSpace(date), nil
}
