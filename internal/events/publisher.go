package events

/*
Файл publisher.go реализует асинхронную публикацию событий смены
статуса требований в Redis Pub/Sub.

Публикация вынесена из Hot Path: хендлер кладет событие в буферный
канал и сразу отвечает клиенту, воркер отправляет в Redis в фоне.
При остановке сервиса канал "запирается" и вычитывается до конца
(Drain Pattern), чтобы не терять события при штатном рестарте.
*/

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"github.com/xela07ax/insurance-backoffice/internal/infra"
	"go.uber.org/zap"
)

// ClaimStatusEvent — факт перевода требования в новый статус.
type ClaimStatusEvent struct {
	ClaimID int64
	Status  domain.ClaimStatus
}

type Publisher struct {
	ch     chan ClaimStatusEvent
	rdb    *redis.Client
	logger *zap.Logger
	wg     sync.WaitGroup

	isClosed int32 // Атомарный флаг (0 - открыт, 1 - закрыт)
}

func NewPublisher(rdb *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{
		ch:     make(chan ClaimStatusEvent, 1024),
		rdb:    rdb,
		logger: logger.With(zap.String("mod", "events")),
	}
}

func (p *Publisher) Start() {
	p.wg.Add(1)
	go p.worker()
}

// Stop запирает вход в канал и ждет, пока воркер всё отправит.
func (p *Publisher) Stop() {
	atomic.StoreInt32(&p.isClosed, 1)
	close(p.ch)
	p.wg.Wait()
	p.logger.Info("event publisher stopped gracefully")
}

// NotifyStatus реализует service.StatusNotifier. Неблокирующая запись:
// при переполнении буфера событие сбрасывается с ошибкой в логе
// (Load Shedding), ответ клиенту не задерживается.
func (p *Publisher) NotifyStatus(claimID int64, status domain.ClaimStatus) {
	if atomic.LoadInt32(&p.isClosed) == 1 {
		p.logger.Warn("claim event dropped: publisher is stopping", zap.Int64("claim_id", claimID))
		return
	}

	select {
	case p.ch <- ClaimStatusEvent{ClaimID: claimID, Status: status}:
	default:
		p.logger.Error("event_buffer_overflow",
			zap.Int64("claim_id", claimID),
			zap.String("status", string(status)),
		)
	}
}

func (p *Publisher) worker() {
	defer p.wg.Done()

	for event := range p.ch {
		// Формат сообщения: "claimID:STATUS"
		payload := fmt.Sprintf("%d:%s", event.ClaimID, event.Status)

		// Контекст Background: основной запрос уже завершен
		if err := p.rdb.Publish(context.Background(), infra.RedisChanClaimStatus, payload).Err(); err != nil {
			p.logger.Error("failed to publish claim event",
				zap.Int64("claim_id", event.ClaimID),
				zap.Error(err),
			)
		}
	}
}
