// Package client talks to the Roth TouchlineSL cloud API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/model"
	"github.com/containerd/errdefs"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://roth-touchlinesl.com/api/v1"

// Config holds the connection settings of a Client.
type Config struct {
	BaseURL    string
	Username   string
	Password   string
	Timeout    time.Duration
	RatePerSec float64 // 0 disables throttling
	Burst      int
}

// Client implements the remote API of the touchline package. It logs in lazily on
// the first call and reuses the token for the lifetime of the process.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	limiter  *rate.Limiter
	decoder  *model.Decoder

	mu     sync.Mutex
	userID int
	token  string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(cfg Config, opts ...Option) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL:  base,
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, burst),
		decoder:  model.NewDecoder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserID returns the identifier of the authenticated user, logging in if needed.
func (c *Client) UserID(ctx context.Context) (int, error) {
	uid, _, err := c.session(ctx)
	return uid, err
}

func (c *Client) FetchModules(ctx context.Context) ([]model.AccountModule, error) {
	uid, token, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/modules", uid), token, nil)
	if err != nil {
		return nil, err
	}
	return c.decoder.AccountModules(raw)
}

func (c *Client) FetchModule(ctx context.Context, moduleID string) (*model.Module, error) {
	uid, token, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/modules/%s", uid, moduleID), token, nil)
	if err != nil {
		return nil, err
	}
	return c.decoder.Module(raw)
}

func (c *Client) SetZoneTemperature(ctx context.Context, moduleID string, modeID, zoneID, tenths int) error {
	uid, token, err := c.session(ctx)
	if err != nil {
		return err
	}
	body := model.NewConstantTemperature(modeID, zoneID, tenths)
	_, err = c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/modules/%s/zones", uid, moduleID), token, body)
	return err
}

func (c *Client) SetZoneSchedule(ctx context.Context, moduleID string, zoneID int, payload model.SchedulePayload) error {
	uid, token, err := c.session(ctx)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/users/%d/modules/%s/zones/%d/global_schedule", uid, moduleID, zoneID)
	_, err = c.do(ctx, http.MethodPost, path, token, payload)
	return err
}

// session returns the user id and token, logging in on first use.
func (c *Client) session(ctx context.Context) (int, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.userID, c.token, nil
	}

	creds := map[string]string{"username": c.username, "password": c.password}
	raw, err := c.do(ctx, http.MethodPost, "/authentication", "", creds)
	if err != nil {
		return 0, "", fmt.Errorf("login: %w", err)
	}
	auth, err := c.decoder.Authentication(raw)
	if err != nil {
		return 0, "", fmt.Errorf("login: %w", err)
	}
	c.userID, c.token = auth.UserID, auth.Token
	logger.WithComponent("remote").Infof("authenticated as user %d", c.userID)
	return c.userID, c.token, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.WithComponent("remote").Debugf("%s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, errdefs.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w: %w", method, path, errdefs.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
