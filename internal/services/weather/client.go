// Package weather wraps the external weather service. Errors and timeouts
// always surface as typed failures, never as silent zeros.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrExternalService marks an unreachable or malformed weather backend.
var ErrExternalService = errors.New("weather service unavailable")

// Conditions is the irradiance-proxy snapshot used by the live simulator.
type Conditions struct {
	Temperature   float64 `json:"temperature"`
	CloudCoverPct float64 `json:"cloud_cover_percent"`
	UVIndex       float64 `json:"uv_index"`
}

// Report pairs current conditions with the short-term forecast.
type Report struct {
	Current  Conditions `json:"current"`
	Forecast Conditions `json:"forecast"`
}

// HTTPClient talks to an OpenWeather-style REST endpoint. Transient failures
// are retried with exponential backoff inside the caller's context.
type HTTPClient struct {
	base   string
	apiKey string
	http   *http.Client
}

func NewHTTPClient(base, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		base:   strings.TrimRight(strings.TrimSpace(base), "/"),
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// Report fetches current and forecast conditions for a coordinate.
func (c *HTTPClient) Report(ctx context.Context, lat, lon float64) (*Report, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: missing api key", ErrExternalService)
	}
	url := fmt.Sprintf("%s/v1/conditions?lat=%f&lon=%f&appid=%s", c.base, lat, lon, c.apiKey)

	var out Report
	if err := c.getJSONRetry(ctx, url, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return &out, nil
}

// HistoricalMonthly fetches the 12-entry historical monthly irradiation
// series (Wh/m²/day) for a coordinate, January first.
func (c *HTTPClient) HistoricalMonthly(ctx context.Context, lat, lon float64) ([]float64, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: missing api key", ErrExternalService)
	}
	url := fmt.Sprintf("%s/v1/irradiation/monthly?lat=%f&lon=%f&appid=%s", c.base, lat, lon, c.apiKey)

	var out struct {
		Monthly []float64 `json:"monthly"`
	}
	if err := c.getJSONRetry(ctx, url, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if len(out.Monthly) != 12 {
		return nil, fmt.Errorf("%w: got %d monthly entries, want 12", ErrExternalService, len(out.Monthly))
	}
	return out.Monthly, nil
}

func (c *HTTPClient) getJSONRetry(ctx context.Context, url string, out any) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 5 * time.Second

	return backoff.Retry(func() error {
		return c.getJSON(ctx, url, out)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, 2), ctx))
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		err := fmt.Errorf("weather status %d: %s", resp.StatusCode, string(b))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(err)
	}
	return nil
}
