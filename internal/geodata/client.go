package geodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient fetches raw criterion values from an external geodata service.
// It implements ValueSource for deployments that have real satellite/OSM
// lookups behind an HTTP API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SiteValues queries GET /v1/sites/values for the coordinate. The response is
// a flat criterion-name → raw-value object; validation against the registry
// happens in the scoring core.
func (c *HTTPClient) SiteValues(ctx context.Context, lat, lon float64) (map[string]float64, error) {
	path := fmt.Sprintf("/v1/sites/values?lat=%f&lon=%f", lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("geodata GET %s: %d %s", path, resp.StatusCode, string(body))
	}

	var values map[string]float64
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, fmt.Errorf("geodata response: %w", err)
	}
	return values, nil
}
