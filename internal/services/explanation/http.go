package explanation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// ErrExternalService marks an unreachable or misbehaving explanation
// backend. Callers substitute FallbackText and carry on.
var ErrExternalService = errors.New("explanation service unavailable")

// HTTPProvider calls the hosted prompt endpoint behind a circuit breaker.
type HTTPProvider struct {
	base    string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewHTTPProvider(base string, timeout time.Duration, consecFails uint32, openFor time.Duration) *HTTPProvider {
	if consecFails < 1 {
		consecFails = 3
	}
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "explanation-service",
		Timeout: openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= consecFails
		},
	})
	return &HTTPProvider{
		base:    strings.TrimRight(strings.TrimSpace(base), "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

func (p *HTTPProvider) Explain(ctx context.Context, f Facts) (string, error) {
	res, err := p.breaker.Execute(func() (any, error) {
		body, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+"/v1/explanations", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("explanation status %d", resp.StatusCode)
		}

		var out struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		if strings.TrimSpace(out.Text) == "" {
			return nil, fmt.Errorf("empty explanation")
		}
		return out.Text, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return res.(string), nil
}
