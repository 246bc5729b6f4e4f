package retry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ogri-la/liquipedia-aoe-go/src/http"
)

// Config holds retry configuration
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultConfig returns the default back-off: 3 attempts, 1s doubling to 8s
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     8 * time.Second,
	}
}

// MediaWiki error codes that mean "try again later"
var throttleCodes = map[string]bool{
	"ratelimited": true,
	"maxlag":      true,
}

// throttled reports whether a 200 response carries a MediaWiki throttling error
func throttled(resp *http.Response) bool {
	if resp == nil || resp.StatusCode != 200 {
		return false
	}
	var payload struct {
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil || payload.Error == nil {
		return false
	}
	return throttleCodes[payload.Error.Code]
}

// shouldRetry determines if we should retry based on the response or error
func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}

	if resp.StatusCode == 429 || resp.StatusCode >= 500 {
		return true
	}

	return throttled(resp)
}

// getRetryDelay calculates the delay for the next retry
func getRetryDelay(resp *http.Response, attempt int, config Config) time.Duration {
	if resp != nil && resp.StatusCode == 429 {
		if retryAfter := resp.Headers["Retry-After"]; retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
				delay := time.Duration(seconds) * time.Second
				if delay > config.MaxDelay {
					return config.MaxDelay
				}
				return delay
			}
		}
	}

	// initialDelay * 2^(attempt-1)
	delay := config.InitialDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay > config.MaxDelay {
			return config.MaxDelay
		}
	}
	return delay
}

// WithRetry wraps an HTTP GET call with retry logic and exponential backoff
func WithRetry(ctx context.Context, client http.HTTPClient, url string, config Config) (*http.Response, error) {
	var lastErr error
	var lastResp *http.Response

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("retrying request", "url", url, "attempt", attempt, "max-attempts", config.MaxAttempts)
		}

		resp, err := client.Get(ctx, url)

		if err == nil && resp.StatusCode == 200 && !throttled(resp) {
			return resp, nil
		}

		lastResp = resp
		lastErr = err

		if !shouldRetry(resp, err) {
			if err == nil {
				return resp, nil
			}
			return nil, err
		}

		if attempt == config.MaxAttempts {
			break
		}

		delay := getRetryDelay(resp, attempt, config)
		slog.Info("backing off before retry", "url", url, "delay", delay, "reason", getRetryReason(resp, err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("request failed after %d attempts: %w", config.MaxAttempts, lastErr)
	}

	// the last response, non-200 or still throttled
	return lastResp, nil
}

// getRetryReason returns a human-readable reason for the retry
func getRetryReason(resp *http.Response, err error) string {
	switch {
	case err != nil:
		return "network-error"
	case resp.StatusCode == 429:
		return "rate-limited"
	case resp.StatusCode >= 500:
		return "server-error"
	case throttled(resp):
		return "api-throttled"
	}
	return "unknown"
}
