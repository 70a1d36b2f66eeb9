package repo

import (
	"context"
	"io"
	"net/http"

	"github.com/foomo/sitemapserver/content"
	"github.com/pkg/errors"
)

type (
	// URLSource loads a json array of records from a content endpoint
	URLSource struct {
		url        string
		httpClient *http.Client
	}
	URLSourceOption func(*URLSource)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewURLSource(url string, opts ...URLSourceOption) *URLSource {
	inst := &URLSource{
		url:        url,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func URLSourceWithHTTPClient(v *http.Client) URLSourceOption {
	return func(o *URLSource) {
		o.httpClient = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (s *URLSource) Name() string {
	return "url"
}

func (s *URLSource) Records(ctx context.Context) ([]*content.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create records request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get records")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bad response code from content source %q want %d", resp.Status, http.StatusOK)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read records")
	}
	return decodeRecords(data)
}
