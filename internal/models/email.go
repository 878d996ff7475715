package models

import "strings"

// Email is a classified email address. The tag is fixed at classification
// time: an address is institutional iff it ends with the configured
// institution domain. Email is comparable and safe to use as a map key.
type Email struct {
	address       string
	institutional bool
}

// ClassifyEmail builds an Email from a raw address. domain is the
// institutional suffix, e.g. "@kth.se".
func ClassifyEmail(raw, domain string) Email {
	return Email{
		address:       raw,
		institutional: strings.HasSuffix(raw, domain),
	}
}

// IsInstitutional reports whether the address carries the institution domain.
func (e Email) IsInstitutional() bool {
	return e.institutional
}

func (e Email) String() string {
	return e.address
}
