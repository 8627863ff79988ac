package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/sony/gobreaker"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"github.com/xela07ax/insurance-backoffice/internal/infra"
	"golang.org/x/time/rate"
)

// ReliableCustomerClient оборачивает CustomerProvider ручками надежности:
// Rate Limiter -> Circuit Breaker -> Retry.
//
// Дефолты сохраняют исходное поведение системы: retry_attempts=1
// (ни одного повтора), предохранитель срабатывает только на серии
// подряд идущих отказов. Включение ретраев — явное решение через конфиг.
type ReliableCustomerClient struct {
	next     CustomerProvider
	cb       *gobreaker.CircuitBreaker
	limiter  *rate.Limiter
	attempts uint
}

func NewReliableCustomerClient(next CustomerProvider, cfg infra.ClientsConfig) *ReliableCustomerClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "customer-lookup",
		MaxRequests: cfg.CBMaxRequests,
		Interval:    cfg.CBInterval,
		Timeout:     cfg.CBTimeout, // Время, через которое CB попробует "закрыться"
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	return &ReliableCustomerClient{
		next:     next,
		cb:       cb,
		limiter:  limiter,
		attempts: attempts,
	}
}

func (w *ReliableCustomerClient) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	// 1. Rate Limiter
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	var customer *domain.Customer

	// 2. Circuit Breaker
	cbResult, err := w.cb.Execute(func() (interface{}, error) {
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(w.attempts),
			retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
				return retry.BackOffDelay(n, err, config)
			}),
		)

		retryErr := r.Do(func() error {
			var callErr error
			customer, callErr = w.next.GetCustomerByID(ctx, id)
			return callErr
		})

		return customer, retryErr
	})

	if err != nil {
		return nil, err
	}

	return cbResult.(*domain.Customer), nil
}
