package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy ограниченные повторы с экспоненциальной задержкой
// Используется только для чтений: запись не повторяется
type Policy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// NoRetry политика без повторов
var NoRetry = Policy{}

// Do выполняет fn, повторяя её, пока isRetryable(err) и не исчерпаны попытки
// Возвращает последнюю ошибку fn без обёрток
func (p Policy) Do(ctx context.Context, isRetryable func(error) bool, fn func(ctx context.Context) error) error {
	if p.MaxRetries == 0 || p.BaseDelay <= 0 {
		return fn(ctx)
	}

	backoff := goretry.NewExponential(p.BaseDelay)
	if p.MaxDelay > 0 {
		backoff = goretry.WithCappedDuration(p.MaxDelay, backoff)
	}
	backoff = goretry.WithMaxRetries(p.MaxRetries, backoff)

	return goretry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && isRetryable(err) {
			return goretry.RetryableError(err)
		}
		return err
	})
}
