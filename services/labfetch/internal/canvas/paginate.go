package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// fetchPaginated collects every page of a Canvas list endpoint by following
// the Link response header's rel="next" cursor. Item order is preserved
// within and across pages. Any transport or decoding failure aborts the
// whole fetch, partial results are never returned.
func fetchPaginated[T any](ctx context.Context, c *Client, url string) ([]T, error) {
	var items []T

	for url != "" {
		page, next, err := fetchPage[T](ctx, c, url)
		if err != nil {
			return nil, err
		}

		items = append(items, page...)
		url = next
	}

	return items, nil
}

func fetchPage[T any](ctx context.Context, c *Client, url string) ([]T, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	q := req.URL.Query()
	if q.Get("per_page") == "" {
		q.Set("per_page", "100")
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("unexpected status %d for %s: %s", resp.StatusCode, url, string(body))
	}

	var page []T
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return page, nextLink(resp.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" URL from a Link header, or "" when the
// header has no next relation (the last page).
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasSuffix(part, `rel="next"`) {
			continue
		}

		part = strings.TrimPrefix(part, "<")
		if end := strings.Index(part, ">"); end >= 0 {
			return part[:end]
		}
	}

	return ""
}
