package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/foomo/sitemapserver/content"
	"github.com/foomo/sitemapserver/responses"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	// Client talks to the json api of a sitemap server
	Client struct {
		t transport
	}
	transport interface {
		call(ctx context.Context, method, route string, response interface{}) error
	}
	// ReplyError the server answered with an error reply
	ReplyError struct {
		StatusCode int
		Reply      *responses.Error
	}
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// New endpoint is the server url including the api base path, e.g. http://localhost:8080/sitemapserver
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		t: &httpTransport{
			endpoint: strings.TrimSuffix(endpoint, "/"),
			client:   httpClient,
		},
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (e *ReplyError) Error() string {
	if e.Reply == nil {
		return "unexpected status code: " + http.StatusText(e.StatusCode)
	}
	return e.Reply.Error()
}

// Update tell the server to update itself
func (c *Client) Update(ctx context.Context) (*responses.Update, error) {
	var response *responses.Update
	if err := c.t.call(ctx, http.MethodPost, "update", &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Entries the current sitemap entries
func (c *Client) Entries(ctx context.Context) ([]*content.SitemapEntry, error) {
	var response []*content.SitemapEntry
	if err := c.t.call(ctx, http.MethodGet, "entries", &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Records the current records snapshot of the server
func (c *Client) Records(ctx context.Context) ([]*content.Record, error) {
	var response []*content.Record
	if err := c.t.call(ctx, http.MethodGet, "records", &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Name of the client as content source
func (c *Client) Name() string {
	return "client"
}

// IsNotLoaded true if the server did not load any records yet
func IsNotLoaded(err error) bool {
	var replyErr *ReplyError
	return errors.As(err, &replyErr) && replyErr.StatusCode == http.StatusServiceUnavailable
}
