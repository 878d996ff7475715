// Package match reconciles bookings from the reservation system with Canvas
// submissions: exact email identity first, fuzzy name similarity as a
// fallback.
package match

import (
	"github.com/adrg/strutil/metrics"

	"github.com/kthtools/labfetch/internal/models"
)

// similarityThreshold is the minimum Jaro score a fuzzy name match must
// strictly exceed to be accepted.
const similarityThreshold = 0.8

// Match pairs one input booking with its reconciled submission, nil when
// nothing matched.
type Match struct {
	Booking    models.Booking
	Submission *models.Submission
}

// Reconcile produces one Match per input booking, in input order. Each
// booking is matched independently:
//
//  1. the first submission whose classified user email equals the booking's
//     email wins, regardless of name similarity;
//  2. otherwise the submission with the highest Jaro name similarity wins,
//     but only above the threshold, and only from the pool of submissions
//     not already claimed by an earlier fuzzy match.
//
// Exact matches deliberately do not consume a submission: a group
// submission may satisfy several bookings by email. Fuzzy matches do, so a
// popular name cannot claim every remaining booking. Ties in similarity go
// to the lower submission id to keep results order-independent.
func Reconcile(bookings []models.Booking, submissions []models.Submission, emailDomain string) []Match {
	jaro := metrics.NewJaro()
	claimed := make(map[int]bool, len(submissions))

	matches := make([]Match, 0, len(bookings))
	for _, booking := range bookings {
		match := Match{Booking: booking}

		if i := exactMatch(booking, submissions, emailDomain); i >= 0 {
			submission := submissions[i]
			match.Submission = &submission
		} else if i := fuzzyMatch(booking, submissions, claimed, jaro); i >= 0 {
			claimed[i] = true
			submission := submissions[i]
			match.Submission = &submission
		}

		matches = append(matches, match)
	}

	return matches
}

func exactMatch(booking models.Booking, submissions []models.Submission, emailDomain string) int {
	for i, submission := range submissions {
		if models.ClassifyEmail(submission.User.Email, emailDomain) == booking.Email {
			return i
		}
	}
	return -1
}

func fuzzyMatch(booking models.Booking, submissions []models.Submission, claimed map[int]bool, jaro *metrics.Jaro) int {
	best := -1
	bestScore := 0.0

	for i, submission := range submissions {
		if claimed[i] {
			continue
		}

		score := jaro.Compare(booking.Name, submission.User.Name)
		switch {
		case score > bestScore:
			best, bestScore = i, score
		case score == bestScore && best >= 0 && submission.ID < submissions[best].ID:
			best = i
		}
	}

	if bestScore <= similarityThreshold {
		return -1
	}
	return best
}
