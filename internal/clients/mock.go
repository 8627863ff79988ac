package clients

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/xela07ax/insurance-backoffice/internal/domain"
)

// MockCustomerClient — in-memory реализация CustomerProvider для
// локальной разработки и тестов композера. Считает вызовы, чтобы
// тесты могли проверить N+1 паттерн resolveAll.
type MockCustomerClient struct {
	Customers map[int64]domain.Customer
	FailIDs   map[int64]error // Принудительные ошибки по ID

	calls atomic.Int64
}

func NewMockCustomerClient(customers ...domain.Customer) *MockCustomerClient {
	m := &MockCustomerClient{
		Customers: make(map[int64]domain.Customer),
		FailIDs:   make(map[int64]error),
	}
	for _, c := range customers {
		m.Customers[c.ID] = c
	}
	return m
}

func (m *MockCustomerClient) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	m.calls.Add(1)

	if err, ok := m.FailIDs[id]; ok {
		return nil, err
	}
	c, ok := m.Customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

// Calls возвращает число совершенных lookup-ов.
func (m *MockCustomerClient) Calls() int64 {
	return m.calls.Load()
}
