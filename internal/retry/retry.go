package retry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"
)

// Retrier retries idempotent calls that fail with a transient error.
type Retrier struct {
	logger logger.Logger

	config struct {
		maxRetries      int
		initialInterval time.Duration
		maxInterval     time.Duration
	}
}

func New(conf *config.Config, log logger.Logger) *Retrier {
	r := &Retrier{
		logger: log.Child("retry"),
	}
	r.config.maxRetries = conf.GetInt("Retry.maxRetries", 3)
	r.config.initialInterval = conf.GetDuration("Retry.initialInterval", 1, time.Second)
	r.config.maxInterval = conf.GetDuration("Retry.maxInterval", 30, time.Second)
	return r
}

// Do runs operation until it succeeds, fails with a non transient error or the
// retries are exhausted.
func (r *Retrier) Do(ctx context.Context, name string, operation func() error) error {
	if r == nil || r.config.maxRetries <= 0 {
		return operation()
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = r.config.initialInterval
	expBackoff.MaxInterval = r.config.maxInterval
	expBackoff.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(r.config.maxRetries)), ctx)

	return backoff.RetryNotify(func() error {
		err := operation()
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, d time.Duration) {
		r.logger.Warnn("Retrying after transient error",
			logger.NewStringField("operation", name),
			logger.NewDurationField("backoff", d),
			obskit.Error(err),
		)
	})
}

// IsTransient reports whether err is worth retrying: rate limiting and server
// side failures of either the REST or the gRPC APIs.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Internal:
			return true
		}
	}
	return false
}
