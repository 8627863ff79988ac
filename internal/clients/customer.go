package clients

import (
	"context"

	"github.com/xela07ax/insurance-backoffice/internal/domain"
)

// CustomerProvider — типизированный контракт исходящего вызова
// к customer-сервису. Композер зависит только от этого интерфейса,
// транспорт (HTTP, мок) остается за адаптерами.
//
// Ошибки: отсутствие клиента — domain.ErrNotFound, проблемы
// транспорта и 5xx — domain.ErrDownstream (оба через errors.Is).
type CustomerProvider interface {
	GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
}
