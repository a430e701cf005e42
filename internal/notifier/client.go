// Package notifier delivers notification payloads to subscriber channels,
// with retries and a circuit breaker around the webhook endpoint.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// Predefined errors for webhook delivery.
var (
	// ErrCircuitOpen is returned when the webhook circuit breaker is open.
	ErrCircuitOpen = errors.New("webhook circuit breaker is open")

	// ErrNoEndpoint is returned when no webhook endpoint is configured.
	ErrNoEndpoint = errors.New("no webhook endpoint configured")
)

// EndpointError represents a non-2xx response from the webhook endpoint.
type EndpointError struct {
	StatusCode int
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("webhook endpoint returned %d", e.StatusCode)
}

// ClientConfig holds configuration for the webhook client.
type ClientConfig struct {
	// Name identifies this client for circuit breaker naming.
	Name string

	// Timeout is the request timeout for individual HTTP calls.
	// Default: 10 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	// Default: 3
	MaxRetries uint64

	// InitialInterval is the initial retry backoff interval.
	// Default: 100ms
	InitialInterval time.Duration

	// MaxInterval is the maximum retry backoff interval.
	// Default: 5 seconds
	MaxInterval time.Duration

	// BreakerTimeout is the period of open state before the breaker
	// switches to half-open. Default: 60 seconds
	BreakerTimeout time.Duration
}

// DefaultClientConfig returns sensible defaults for the webhook client.
func DefaultClientConfig(name string) ClientConfig {
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		BreakerTimeout:  60 * time.Second,
	}
}

// Client posts JSON payloads to webhook endpoints with retry and circuit
// breaker protection. Server errors and network failures are retried with
// exponential backoff; client errors are not.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[int]
	config     ClientConfig
}

// NewClient creates a new webhook client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: readyToTrip,
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: breaker,
		config:  cfg,
	}
}

// readyToTrip opens the breaker when at least 5 requests have been made
// and the failure rate is 50% or higher.
func readyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

// Post delivers a JSON payload to the given endpoint. 5xx responses and
// network errors are retried with exponential backoff; a 4xx response
// fails immediately. Returns ErrCircuitOpen without touching the network
// when the breaker is open.
func (c *Client) Post(ctx context.Context, url string, payload any) error {
	if url == "" {
		return ErrNoEndpoint
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0 // retries are bounded by WithMaxRetries

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	operation := func() error {
		_, err := c.breaker.Execute(func() (int, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return 0, backoff.Permanent(err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return 0, err
			}
			defer resp.Body.Close()

			// 5xx trips the breaker and is retried; 4xx is a permanent
			// endpoint misconfiguration.
			if resp.StatusCode >= 500 {
				return resp.StatusCode, &EndpointError{StatusCode: resp.StatusCode}
			}
			if resp.StatusCode >= 400 {
				return resp.StatusCode, backoff.Permanent(&EndpointError{StatusCode: resp.StatusCode})
			}
			return resp.StatusCode, nil
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(ErrCircuitOpen)
		}
		return err
	}

	if err := backoff.Retry(operation, policy); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return perm.Unwrap()
		}
		return err
	}
	return nil
}

// BreakerState returns the current state of the webhook circuit breaker.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}
