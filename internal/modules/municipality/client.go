package municipality

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wastebooking/internal/domain"

	"github.com/sirupsen/logrus"
)

// Client is the external "list current municipality names" capability.
type Client interface {
	FetchNames(ctx context.Context) ([]string, error)
}

// HTTPClient fetches the national municipality list (a JSON array of names)
// from the geo API.
type HTTPClient struct {
	url  string
	http *http.Client
}

func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchNames(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fetchError(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fetchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fetchError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fetchError(err)
	}
	return names, nil
}

func fetchError(cause error) error {
	logrus.WithError(cause).Error("failed to fetch municipalities")
	return domain.Errorf(domain.ErrFetch, "Unable to fetch municipality list")
}
