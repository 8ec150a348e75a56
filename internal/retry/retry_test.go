package retry_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/rudderlabs/bq-cicd/internal/retry"
)

func TestIsTransient(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, want: true},
		{name: "backend error", err: &googleapi.Error{Code: http.StatusServiceUnavailable}, want: true},
		{name: "wrapped backend error", err: fmt.Errorf("listing: %w", &googleapi.Error{Code: http.StatusBadGateway}), want: true},
		{name: "access denied", err: &googleapi.Error{Code: http.StatusForbidden}, want: false},
		{name: "not found", err: &googleapi.Error{Code: http.StatusNotFound}, want: false},
		{name: "grpc unavailable", err: status.Error(codes.Unavailable, "unavailable"), want: true},
		{name: "grpc resource exhausted", err: status.Error(codes.ResourceExhausted, "quota"), want: true},
		{name: "grpc permission denied", err: status.Error(codes.PermissionDenied, "denied"), want: false},
		{name: "context canceled", err: context.Canceled, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, retry.IsTransient(tc.err))
		})
	}
}

func newRetrier(maxRetries int) *retry.Retrier {
	c := config.New()
	c.Set("Retry.maxRetries", maxRetries)
	c.Set("Retry.initialInterval", "1ms")
	c.Set("Retry.maxInterval", "2ms")
	return retry.New(c, logger.NOP)
}

func TestRetrierDo(t *testing.T) {
	ctx := context.Background()

	t.Run("retries transient errors until success", func(t *testing.T) {
		var calls int
		err := newRetrier(3).Do(ctx, "list", func() error {
			calls++
			if calls < 3 {
				return &googleapi.Error{Code: http.StatusInternalServerError}
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls int
		err := newRetrier(2).Do(ctx, "list", func() error {
			calls++
			return status.Error(codes.Unavailable, "unavailable")
		})
		require.Error(t, err)
		require.Equal(t, codes.Unavailable, status.Code(err))
		require.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		var calls int
		err := newRetrier(3).Do(ctx, "list", func() error {
			calls++
			return &googleapi.Error{Code: http.StatusForbidden, Message: "Access Denied"}
		})
		var apiErr *googleapi.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.Code)
		require.Equal(t, 1, calls)
	})

	t.Run("disabled", func(t *testing.T) {
		var calls int
		err := newRetrier(0).Do(ctx, "list", func() error {
			calls++
			return &googleapi.Error{Code: http.StatusInternalServerError}
		})
		require.Error(t, err)
		require.Equal(t, 1, calls)
	})
}
