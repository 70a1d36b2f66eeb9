package healthz

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Probe requests the url and fails for transport errors and non 2xx responses
func Probe(ctx context.Context, client *http.Client, url string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create probe request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to probe "+url)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("unhealthy response from %q: %s", url, resp.Status)
	}
	return nil
}
