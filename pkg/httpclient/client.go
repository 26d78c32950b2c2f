// Package httpclient is the shared HTTP access layer for the external services.
// It retries server side failures with exponential backoff and classifies
// everything else into client or decoding failures.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

var (
	ErrNetworkFailure    = errors.New("network failure")
	ErrClientFailure     = errors.New("request rejected by service")
	ErrMalformedResponse = errors.New("malformed response")
)

const MinimumRetries = 3

type Options struct {
	Timeout       time.Duration
	Retries       int
	BackoffFactor time.Duration
	UserAgent     string
}

func DefaultOptions() Options {
	return Options{
		Timeout:       10 * time.Second,
		Retries:       5,
		BackoffFactor: 100 * time.Millisecond,
		UserAgent:     "borderhop/1.0",
	}
}

type Client struct {
	Name string

	httpClient *http.Client
	options    Options
}

func New(name string, options Options) *Client {
	if options.Retries < MinimumRetries {
		options.Retries = MinimumRetries
	}

	return &Client{
		Name: name,
		httpClient: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		options: options,
	}
}

// GetJSON issues a GET request and decodes the JSON body into target
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, target any) error {
	body, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w from %s: %s", ErrMalformedResponse, c.Name, err)
	}

	return nil
}

// Get issues a GET request, retrying transport errors and 5xx responses up to
// the configured retry budget
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL := endpoint
	if len(params) > 0 {
		requestURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	var body []byte
	attempt := 0

	operation := func() error {
		var retry bool
		var err error

		body, retry, err = c.do(ctx, requestURL)
		if err != nil && !retry {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, wait time.Duration) {
		attempt++

		log.Debug().
			Str("service", c.Name).
			Int("attempt", attempt).
			Str("wait", wait.String()).
			Err(err).
			Msg("Retrying request")
	}

	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.options.Retries)), ctx)

	if err := backoff.RetryNotify(operation, retryPolicy, notify); err != nil {
		switch {
		case errors.Is(err, ErrClientFailure), errors.Is(err, ErrNetworkFailure):
			return nil, err
		case ctx.Err() != nil:
			return nil, fmt.Errorf("%w: %s: %s", ErrNetworkFailure, c.Name, ctx.Err())
		default:
			return nil, fmt.Errorf("%w: %s gave up after %d retries: %s", ErrNetworkFailure, c.Name, c.options.Retries, err)
		}
	}

	return body, nil
}

// Backoff returns the wait before the given retry attempt (1 based)
func (c *Client) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}

	return c.options.BackoffFactor * time.Duration(1<<uint(attempt-1))
}

// newBackOff is an unjittered exponential policy matching Backoff
func (c *Client) newBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.options.BackoffFactor
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = c.Backoff(c.options.Retries)
	policy.MaxElapsedTime = 0
	policy.Reset()

	return policy
}

func (c *Client) do(ctx context.Context, requestURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrClientFailure, err)
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("%w: %s: %s", ErrNetworkFailure, c.Name, ctx.Err())
		}

		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	log.Debug().
		Str("service", c.Name).
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Str("latency", time.Since(startTime).String()).
		Msg("HTTP Request")

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("HTTP %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, false, fmt.Errorf("%w: %s returned HTTP %d", ErrClientFailure, c.Name, resp.StatusCode)
	case err != nil:
		return nil, true, err
	}

	return body, false, nil
}
