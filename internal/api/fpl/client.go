package fpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/omarshaarawi/tempad/internal/config"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the upstream answers 404, e.g. for an unknown manager id.
var ErrNotFound = errors.New("fpl: resource not found")

// StatusError is any other non-2xx upstream answer.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fpl: unexpected status code %d for %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	Config     config.FPLAPI
}

func NewClient(cfg config.FPLAPI) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

func NewClientWithHTTP(cfg config.FPLAPI, httpClient *http.Client) *Client {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	settings := gobreaker.Settings{
		Name:        "fpl-api",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A 404 is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		Config:     cfg,
	}
}

// Get fetches baseURL+endpoint and decodes the JSON body into result.
func (c *Client) Get(ctx context.Context, endpoint string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", limiterError(ctx, err))
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, endpoint, result)
	})
	return err
}

// limiterError maps a refused wait onto the context error it stands for. The
// limiter rejects waits that would outlive the deadline before it expires,
// with an error that wraps neither context sentinel.
func limiterError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, result interface{}) error {
	url := strings.TrimRight(c.Config.BaseURL, "/") + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
