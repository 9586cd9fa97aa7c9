package customsearch

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// Error reasons Google reports for exhausted quota. Custom Search answers
// 403 rather than 429 for some of them.
var quotaReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
	"quotaExceeded":         true,
}

// IsRateLimited returns true if the error indicates rate limiting or an
// exhausted quota.
func IsRateLimited(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	for _, item := range gerr.Errors {
		if quotaReasons[item.Reason] {
			return true
		}
	}
	return false
}

// IsUnauthorized returns true if the error indicates a rejected API key or
// search engine id.
func IsUnauthorized(err error) bool {
	if errors.Is(err, domain.ErrUnauthorized) {
		return true
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return !IsRateLimited(err)
	default:
		return false
	}
}

// WrapError classifies a Custom Search error. The result always wraps
// domain.ErrProviderFailed.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case IsRateLimited(err):
		return fmt.Errorf("%w: %w: %s", domain.ErrProviderFailed, domain.ErrRateLimited, describe(err))
	case IsUnauthorized(err):
		return fmt.Errorf("%w: %w: %s", domain.ErrProviderFailed, domain.ErrUnauthorized, describe(err))
	default:
		return fmt.Errorf("%w: %w", domain.ErrProviderFailed, err)
	}
}

// RetryAfter returns the Retry-After delay carried by a Google API error,
// or zero.
func RetryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	v := strings.TrimSpace(gerr.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, convErr := strconv.Atoi(v); convErr == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, parseErr := http.ParseTime(v); parseErr == nil {
		return time.Until(at)
	}
	return 0
}

func describe(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", gerr.Code, gerr.Message)
	}
	return err.Error()
}
