package github

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	t.Run("reads the rate limit headers", func(t *testing.T) {
		limiter := NewRateLimiter()

		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "4200")
		resp.Header.Set(HeaderRateLimit, "5000")
		resp.Header.Set(HeaderRateReset, "1700000000")

		limiter.UpdateFromResponse(resp)

		assert.Equal(t, 4200, limiter.Remaining())
		assert.Equal(t, 5000, limiter.Limit())
		assert.Equal(t, time.Unix(1700000000, 0), limiter.ResetTime())
	})

	t.Run("ignores a nil response", func(t *testing.T) {
		limiter := NewRateLimiter()

		limiter.UpdateFromResponse(nil)

		assert.Equal(t, GitHubRateLimit, limiter.Remaining())
	})

	t.Run("ignores malformed header values", func(t *testing.T) {
		limiter := NewRateLimiter()

		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "not-a-number")

		limiter.UpdateFromResponse(resp)

		assert.Equal(t, GitHubRateLimit, limiter.Remaining())
	})
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("allows a request with full quota", func(t *testing.T) {
		limiter := NewRateLimiter()

		require.NoError(t, limiter.Wait(context.Background()))
	})

	t.Run("respects cancellation", func(t *testing.T) {
		limiter := NewRateLimiter()
		// Exhaust the remaining quota so Wait blocks until reset.
		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "0")
		resp.Header.Set(HeaderRateReset, "9999999999")
		limiter.UpdateFromResponse(resp)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx))
	})
}

func TestIsNotFound(t *testing.T) {
	t.Run("true for a 404 API error", func(t *testing.T) {
		assert.True(t, IsNotFound(&APIError{StatusCode: 404}))
	})

	t.Run("true for the sentinel errors", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrRepoNotFound))
		assert.True(t, IsNotFound(ErrBranchNotFound))
	})

	t.Run("false for other errors", func(t *testing.T) {
		assert.False(t, IsNotFound(&APIError{StatusCode: 500}))
		assert.False(t, IsNotFound(assert.AnError))
	})
}
