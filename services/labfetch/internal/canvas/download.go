package canvas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kthtools/labfetch/internal/models"
)

// ErrNoAttachments is returned when a submission carries no files to
// download. Callers treat it as a per-submission failure, not a batch abort.
var ErrNoAttachments = errors.New("no attachments found for submission")

// DownloadSubmission streams every attachment of a submission into dir,
// naming each file "<prefix>-<displayName>". It returns the paths written.
func (c *Client) DownloadSubmission(ctx context.Context, submission models.Submission, dir, prefix string) ([]string, error) {
	if len(submission.Attachments) == 0 {
		return nil, ErrNoAttachments
	}

	var paths []string
	for _, attachment := range submission.Attachments {
		path := filepath.Join(dir, fmt.Sprintf("%s-%s", prefix, attachment.DisplayName))
		c.log.Info().Str("path", path).Msg("Downloading attachment")

		if err := c.downloadFile(ctx, attachment.URL, path); err != nil {
			return nil, fmt.Errorf("failed to download attachment %s: %w", attachment.DisplayName, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func (c *Client) downloadFile(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
