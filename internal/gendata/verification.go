package gendata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/resumedash/internal/dataset"
	"github.com/okian/resumedash/internal/domain/aggregate"
	"github.com/okian/resumedash/internal/domain/filter"
	"github.com/okian/resumedash/internal/domain/model"
)

// ErrMismatch is returned when the served counts differ from the local ones.
var ErrMismatch = errors.New("served region counts do not match the dataset")

const topRegionsPath = "/api/charts/top-regions"

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// GetJSON performs a GET request and decodes a 200 response into v.
func (c *HTTPClient) GetJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, v)
}

type figureResponse struct {
	Counts []aggregate.Count `json:"counts"`
}

// Verify checks that the dashboard at baseURL reports the same top regions
// as the dataset stored at path.
func Verify(ctx context.Context, baseURL, path string, timeout time.Duration) error {
	var served figureResponse
	url := strings.TrimRight(baseURL, "/") + topRegionsPath
	if err := newHTTPClient(timeout).GetJSON(ctx, url, &served); err != nil {
		return err
	}

	ds, err := dataset.NewCache().Load(ctx, path)
	if err != nil {
		return err
	}
	known, err := filter.Known(ds.Frame)
	if err != nil {
		return err
	}
	local, err := aggregate.TopN(known, model.ColRegion, len(served.Counts))
	if err != nil {
		return err
	}
	return compareCounts(local, served.Counts)
}

func compareCounts(local, served []aggregate.Count) error {
	if len(local) != len(served) {
		return fmt.Errorf("%w: %d local groups, %d served", ErrMismatch, len(local), len(served))
	}
	for i := range local {
		if local[i] != served[i] {
			return fmt.Errorf("%w: position %d is %s=%d locally, %s=%d served",
				ErrMismatch, i+1, local[i].Value, local[i].Count, served[i].Value, served[i].Count)
		}
	}
	return nil
}
