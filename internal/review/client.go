package review

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
)

type client struct {
	endpoint string
	http     *http.Client
}

// NewClient talks to the review endpoint at endpoint: POST submits one
// form-encoded review, GET lists them as JSON.
func NewClient(endpoint string, httpClient *http.Client) (port.ReviewEndpoint, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{
		endpoint: endpoint,
		http:     httpClient,
	}, nil
}

func (c *client) List(ctx context.Context) ([]domain.Review, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status[%d]: %w", c.endpoint, resp.StatusCode, domain.ErrReviewRejected)
	}

	var reviews []domain.Review
	if err := json.NewDecoder(resp.Body).Decode(&reviews); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return reviews, nil
}

func (c *client) Submit(ctx context.Context, r domain.Review) error {
	form := url.Values{
		"name":   {r.Name},
		"rating": {strconv.Itoa(r.Rating)},
		"text":   {r.Text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST %s: status[%d]: %w", c.endpoint, resp.StatusCode, domain.ErrReviewRejected)
	}

	return nil
}
