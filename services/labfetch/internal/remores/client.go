// Package remores recovers structured bookings from the legacy reservation
// system. The system has no API: its only interface is operator-facing HTML
// rendered by a CGI endpoint, so this package is a micro-parser for that one
// template plus the two requests that produce it.
package remores

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kthtools/labfetch/internal/models"
)

// reservationViewVerb is the submit-button value the CGI expects on a
// reservation-view request, verbatim from the legacy form.
const reservationViewVerb = "+Hämta+bokningslista+"

// Client scrapes bookings for one repository out of the reservation system.
type Client struct {
	baseURL     string
	repository  string
	emailDomain string
	client      *http.Client
	log         zerolog.Logger
}

// NewClient creates a reservation-system client for a repository from
// configuration.
func NewClient(repository string, log zerolog.Logger) *Client {
	baseURL := viper.GetString("remores.url")
	if baseURL == "" {
		baseURL = "https://www.csc.kth.se/cgi-bin/bokning/remores1.4/server/decoder"
	}

	emailDomain := viper.GetString("remores.email_domain")
	if emailDomain == "" {
		emailDomain = "@kth.se"
	}

	timeout := viper.GetDuration("http.timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:     baseURL,
		repository:  repository,
		emailDomain: emailDomain,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBookingsFor returns every booking on every sub-list administered by
// userID, in discovery order. Extraction is all-or-nothing: one sub-list
// failing to parse fails the whole call.
func (c *Client) GetBookingsFor(ctx context.Context, userID string) ([]models.Booking, error) {
	subLists, err := c.discoverSubLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int("sub_lists", len(subLists)).Str("user", userID).Msg("Discovered sub-lists")

	var bookings []models.Booking
	for _, subList := range subLists {
		fromList, err := c.getSubList(ctx, subList)
		if err != nil {
			return nil, fmt.Errorf("failed to extract sub-list %q: %w", subList, err)
		}
		bookings = append(bookings, fromList...)
	}

	return bookings, nil
}

// discoverSubLists requests the overview page and collects the hidden form
// values naming the sub-lists that belong to userID.
func (c *Client) discoverSubLists(ctx context.Context, userID string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("request:overview", "yes")
	q.Set("repository", c.repository)
	q.Set("shownameemail", "yes")
	req.URL.RawQuery = q.Encode()

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get overview: %w", err)
	}
	defer body.Close()

	return parseOverview(body, userID)
}

// getSubList requests one reservation-view page and extracts its bookings.
func (c *Client) getSubList(ctx context.Context, subList string) ([]models.Booking, error) {
	form := url.Values{}
	form.Set("event", subList)
	form.Set("request:reservation-view", reservationViewVerb)
	form.Set("shownameemail", "yes")
	form.Set("repository", c.repository)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation list: %w", err)
	}
	defer body.Close()

	return parseReservations(body, c.emailDomain)
}

func (c *Client) do(req *http.Request) (io.ReadCloser, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return resp.Body, nil
}
