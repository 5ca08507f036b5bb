package oembed

import (
	"context"
	"fmt"
	"strings"

	httputil "github.com/lepinkainen/embed-forge/pkg/http"
	"github.com/lepinkainen/embed-forge/pkg/params"
)

// Client performs a single oEmbed request
type Client interface {
	Fetch(ctx context.Context, endpoint string, query *params.Params) (*Response, error)
}

// HTTPClient requests oEmbed documents over HTTP
type HTTPClient struct {
	http *httputil.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an oEmbed client. A nil client uses the default HTTP configuration.
func NewHTTPClient(client *httputil.Client) *HTTPClient {
	if client == nil {
		client = httputil.NewClient(nil)
	}
	return &HTTPClient{http: client}
}

// Fetch GETs endpoint with query and decodes the JSON response
func (c *HTTPClient) Fetch(ctx context.Context, endpoint string, query *params.Params) (*Response, error) {
	requestURL := endpoint
	if q := query.Query(); q != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		requestURL += sep + q
	}

	resp, err := c.http.GetWithContext(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}

	var doc Response
	if err := httputil.DecodeJSONResponse(resp, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode oembed response: %w", err)
	}
	return &doc, nil
}
