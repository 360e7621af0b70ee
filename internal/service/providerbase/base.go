package providerbase

import (
	"context"
	"errors"
	"net/http"
	"time"

	domrepo "CoinPulse/internal/domain/repository"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
)

// Failure classes attached to degraded provider responses.
const (
	ClassTransient = "transient"
	ClassPermanent = "permanent"
	ClassRateLimit = "rate_limit"
	ClassLocal     = "local"
)

// Classify maps a provider call error to its failure class. Timeouts,
// cancellations, connection errors and 5xx responses are transient; 429
// is a rate limit; other 4xx responses are permanent.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if se, ok := xhttp.AsStatusError(err); ok {
		switch {
		case se.StatusCode == http.StatusTooManyRequests:
			return ClassRateLimit
		case se.StatusCode >= 500:
			return ClassTransient
		default:
			return ClassPermanent
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ClassTransient
	}
	// Network-level failures (refused connections, DNS, resets) arrive as
	// wrapped transport errors.
	return ClassTransient
}

// Retryable reports whether a failure class is worth another attempt.
// Permanent failures and rate limits are not retried inside one call.
func Retryable(class string) bool {
	return class == ClassTransient
}

// Caller issues provider requests with bounded retries and records the
// outcome. One Caller serves one provider.
type Caller struct {
	Provider string
	Client   *xhttp.Client
	Retries  int
	Backoff  time.Duration
	Metrics  domrepo.Metrics
	Log      *logger.Logger
}

// NewCaller builds a caller for the named provider.
func NewCaller(provider string, timeout time.Duration, retries int, backoff time.Duration, metrics domrepo.Metrics, log *logger.Logger) *Caller {
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &Caller{
		Provider: provider,
		Client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		Retries:  retries,
		Backoff:  backoff,
		Metrics:  metrics,
		Log:      log,
	}
}

// Do sends the request, retrying transient failures with exponential
// backoff. On final failure it returns the error plus its class; callers
// substitute fallback data and keep the class for reporting.
func (c *Caller) Do(ctx context.Context, opts *xhttp.RequestOptions, dest interface{}) (string, error) {
	start := time.Now()
	defer func() {
		if c.Metrics != nil {
			c.Metrics.RecordProviderLatency(c.Provider, time.Since(start).Seconds())
		}
	}()
	if c.Metrics != nil {
		c.Metrics.RecordProviderRequest(c.Provider)
	}

	var err error
	backoff := c.Backoff
	for attempt := 0; ; attempt++ {
		err = c.Client.SendAndParse(ctx, opts, dest)
		if err == nil {
			return "", nil
		}

		class := Classify(err)
		if attempt >= c.Retries || !Retryable(class) {
			c.report(class, err)
			return class, err
		}

		c.Log.Debug("provider call retrying",
			logger.String("provider", c.Provider),
			logger.Int("attempt", attempt+1),
			logger.Error(err),
		)
		select {
		case <-ctx.Done():
			class = Classify(ctx.Err())
			c.report(class, ctx.Err())
			return class, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (c *Caller) report(class string, err error) {
	if c.Metrics != nil {
		c.Metrics.RecordProviderDegraded(c.Provider, class)
	}
	c.Log.Warn("provider call failed, serving fallback",
		logger.String("provider", c.Provider),
		logger.String("class", class),
		logger.Error(err),
	)
}
