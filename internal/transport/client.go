// Package transport is the rate-limited, circuit-broken REST client for the
// remote game API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ionfleet/fleetctl/internal/domain/shared"
)

const (
	DefaultBaseURL = "https://api.spacetraders.io/v2"

	defaultHTTPTimeout      = 30 * time.Second
	defaultCircuitThreshold = 5
	defaultCircuitTimeout   = 60 * time.Second

	totalRetryCap  = 6
	connectCap     = 3
	readCap        = 3
	statusCap      = 6
	backoffFactor  = 1.2
	backoffBase    = 500 * time.Millisecond
)

var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
}

// FatalHandler is invoked when a response carries error.code == 4113. The
// default terminates the process; tests substitute a non-exiting stub.
type FatalHandler func(err *FatalError)

// Client issues authenticated REST calls with a dual client-side rate
// limiter (2 req/s and 30 req/min), a retry policy with per-category caps,
// and a circuit breaker wrapping the whole retry loop.
type Client struct {
	http   *http.Client
	second *rate.Limiter
	minute *rate.Limiter
	cb     *CircuitBreaker
	clock  shared.Clock
	logger *slog.Logger

	baseURL string
	token   string

	onFatal FatalHandler
}

type Option func(*Client)

func WithClock(c shared.Clock) Option {
	return func(cl *Client) { cl.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

func WithBaseURL(url string) Option {
	return func(cl *Client) { cl.baseURL = url }
}

func WithFatalHandler(h FatalHandler) Option {
	return func(cl *Client) { cl.onFatal = h }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: defaultHTTPTimeout},
		second:  rate.NewLimiter(rate.Limit(2), 2),
		minute:  rate.NewLimiter(rate.Limit(30.0/60.0), 30),
		baseURL: DefaultBaseURL,
		token:   token,
		clock:   shared.NewRealClock(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cb = NewCircuitBreaker(defaultCircuitThreshold, defaultCircuitTimeout, c.clock)
	if c.onFatal == nil {
		c.onFatal = defaultFatalHandler
	}
	return c
}

func (c *Client) CircuitState() CircuitState { return c.cb.State() }

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// do runs the full rate-limit/retry/circuit-breaker pipeline for one logical
// request, unmarshalling a success body into out (nil is allowed for
// no-content responses).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	url := c.baseURL + path

	var connectFailures, readFailures, statusFailures, attempt int
	var lastErr error

	err := c.cb.Call(func() error {
		for {
			if attempt > 0 && attempt >= totalRetryCap {
				if lastErr != nil {
					return fmt.Errorf("max retries exceeded: %w", lastErr)
				}
				return fmt.Errorf("max retries exceeded")
			}

			if err := c.waitForCapacity(ctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			req, reqErr := c.newRequest(ctx, method, url, body)
			if reqErr != nil {
				return reqErr
			}

			resp, httpErr := c.http.Do(req)
			if httpErr != nil {
				connectFailures++
				lastErr = &retryableError{message: fmt.Sprintf("network error: %v", httpErr)}
				if connectFailures >= connectCap || attempt+1 >= totalRetryCap {
					return fmt.Errorf("connect retries exhausted: %w", lastErr)
				}
				attempt++
				c.sleepBackoff(attempt)
				continue
			}

			respBody, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				readFailures++
				lastErr = &retryableError{message: fmt.Sprintf("read error: %v", readErr)}
				if readFailures >= readCap || attempt+1 >= totalRetryCap {
					return fmt.Errorf("read retries exhausted: %w", lastErr)
				}
				attempt++
				c.sleepBackoff(attempt)
				continue
			}

			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				if out != nil && len(respBody) > 0 {
					if err := json.Unmarshal(respBody, out); err != nil {
						return fmt.Errorf("unmarshal response: %w", err)
					}
				}
				return nil
			}

			apiErr := parseAPIError(respBody)
			if apiErr != nil && apiErr.Code == FatalCode {
				fe := &FatalError{Message: apiErr.Message}
				c.onFatal(fe)
				return fe
			}

			if retryableStatus[resp.StatusCode] {
				statusFailures++
				lastErr = &retryableError{message: fmt.Sprintf("status %d", resp.StatusCode)}
				if statusFailures >= statusCap || attempt+1 >= totalRetryCap {
					if resp.StatusCode == http.StatusBadGateway {
						c.clock.Sleep(jitter(3*time.Second, 0.3))
					}
					return fmt.Errorf("status retries exhausted: %w", lastErr)
				}
				attempt++
				c.sleepBeforeRetry(resp, attempt)
				continue
			}

			if apiErr != nil {
				return apiErr
			}
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
		}
	})

	if err == ErrCircuitOpen {
		return fmt.Errorf("circuit breaker open: %w", err)
	}
	return err
}

func (c *Client) newRequest(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	return req, nil
}

// waitForCapacity blocks until both the per-second and per-minute buckets
// have a token.
func (c *Client) waitForCapacity(ctx context.Context) error {
	if err := c.second.Wait(ctx); err != nil {
		return err
	}
	return c.minute.Wait(ctx)
}

func (c *Client) sleepBackoff(attempt int) {
	delay := time.Duration(float64(backoffBase) * math.Pow(backoffFactor, float64(attempt)))
	c.clock.Sleep(delay)
}

// sleepBeforeRetry honors Retry-After and x-ratelimit-reset headers on a 429
// before falling back to exponential backoff.
func (c *Client) sleepBeforeRetry(resp *http.Response, attempt int) {
	if resp.StatusCode == http.StatusTooManyRequests {
		if reset := resp.Header.Get("x-ratelimit-reset"); reset != "" {
			if resetAt, err := time.Parse(time.RFC3339, reset); err == nil {
				d := resetAt.Sub(c.clock.Now())
				c.clock.Sleep(clamp(jitter(d, 0.1), 0, 60*time.Second))
				return
			}
		}
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if secs, err := strconv.Atoi(retryAfter); err == nil {
				c.clock.Sleep(time.Duration(secs) * time.Second)
				return
			}
		}
	}
	c.sleepBackoff(attempt)
}

func jitter(d time.Duration, fraction float64) time.Duration {
	if d <= 0 {
		return 0
	}
	delta := float64(d) * fraction
	offset := (rand.Float64()*2 - 1) * delta
	return time.Duration(float64(d) + offset)
}

func clamp(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}

func parseAPIError(body []byte) *APIError {
	var envelope struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return nil
	}
	return &APIError{Code: envelope.Error.Code, Message: envelope.Error.Message}
}

func defaultFatalHandler(err *FatalError) {
	slog.Error("fatal remote error, terminating", "error", err)
	os.Exit(1)
}
