package events

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"go.uber.org/zap"
)

// Redis на этом адресе не слушает: Publish внутри воркера упадет
// и будет залогирован, но сам Publisher обязан жить и штатно гаситься.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func TestPublisher_StartStopDrains(t *testing.T) {
	p := NewPublisher(unreachableRedis(), zap.NewNop())
	p.Start()

	for i := int64(1); i <= 10; i++ {
		p.NotifyStatus(i, domain.ClaimApproved)
	}

	// Stop вычитывает канал до конца и не зависает
	p.Stop()
}

func TestPublisher_NotifyAfterStopIsNoop(t *testing.T) {
	p := NewPublisher(unreachableRedis(), zap.NewNop())
	p.Start()
	p.Stop()

	// Не должно быть паники на закрытом канале
	assert.NotPanics(t, func() {
		p.NotifyStatus(1, domain.ClaimSettled)
	})
}

func TestPublisher_OverflowDoesNotBlock(t *testing.T) {
	// Воркер не запущен: канал заполняется до отказа,
	// лишние события сбрасываются без блокировки вызывающего
	p := NewPublisher(unreachableRedis(), zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := int64(0); i < 2048; i++ {
			p.NotifyStatus(i, domain.ClaimPending)
		}
		close(done)
	}()

	<-done // Если NotifyStatus блокируется, тест упадет по таймауту пакета
}
