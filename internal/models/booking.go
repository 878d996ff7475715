package models

import "time"

// Booking is one reserved exam/lab slot recovered from the reservation
// system. It is a value type: two bookings with the same time, name and
// email are the same booking. Duplicates are kept as-is, the reservation
// system is treated as the source of truth.
type Booking struct {
	Time  time.Time
	Name  string
	Email Email
}
