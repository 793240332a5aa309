package source

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient makes GET requests on behalf of fetchers
type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error)
}

// RestyClient is HTTPClient backed by resty
type RestyClient struct {
	client *resty.Client
}

// NewHTTPClient makes a resty based client with the given request timeout
func NewHTTPClient(timeout time.Duration) *RestyClient {
	c := resty.New().SetTimeout(timeout).SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &RestyClient{client: c}
}

// Get requests url with headers. Non-200 responses are not errors, the caller checks the status.
func (c *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error) {
	resp, err := c.client.R().SetContext(ctx).SetHeaders(headers).Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	return resp, nil
}
