// Package sheets fetches and parses published spreadsheet CSV exports.
package sheets

import (
	"context"
	"fmt"
	"time"
	"vct-tracker/internal/constants"
	"vct-tracker/internal/domain"

	"github.com/valyala/fasthttp"
)

const maxRedirects = 5

type Client struct {
	client *fasthttp.Client
}

func NewClient() *Client {
	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         constants.FetchTimeout,
			WriteTimeout:        constants.FetchTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// FetchCSV downloads one region's published CSV export. Published sheet URLs
// redirect to a signed download host, so redirects are followed. A transport
// failure or non-200 status is reported as domain.ErrFetch.
func (c *Client) FetchCSV(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/csv,text/plain,application/octet-stream")

	if err := c.client.DoRedirects(req, resp, maxRedirects); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", domain.ErrFetch, resp.StatusCode())
	}

	return string(resp.Body()), nil
}
