// Package projects is a thin client for the hosted auth/document store.
// The calculators never touch it; only the dashboard's project routes do.
package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/shamsdash/shams/internal/model"
)

// ErrPersistence marks any store failure. Surfaced to the user as-is; no
// retries are built in here.
var ErrPersistence = errors.New("project store failure")

// Session is the store's auth handle for subsequent project calls.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Client wraps the store's REST API behind a circuit breaker.
type Client struct {
	base    string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(base, apiKey string, timeout time.Duration) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "project-store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		base:    strings.TrimRight(strings.TrimSpace(base), "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/v1/auth/signup", "", map[string]string{"email": email, "password": password}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/v1/auth/signin", "", map[string]string{"email": email, "password": password}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/signout", token, nil, nil)
}

// SaveProject stores a named design. A missing ID or timestamp is filled in
// before the record leaves the process.
func (c *Client) SaveProject(ctx context.Context, token string, rec model.ProjectRecord) (*model.ProjectRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var out model.ProjectRecord
	if err := c.do(ctx, http.MethodPost, "/v1/projects", token, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProjects(ctx context.Context, token string) ([]model.ProjectRecord, error) {
	var out []model.ProjectRecord
	if err := c.do(ctx, http.MethodGet, "/v1/projects", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteProject(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/projects/"+id, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		var body *bytes.Reader
		if in != nil {
			b, err := json.Marshal(in)
			if err != nil {
				return nil, err
			}
			body = bytes.NewReader(b)
		} else {
			body = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-Api-Key", c.apiKey)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("store status %d on %s %s", resp.StatusCode, method, path)
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
