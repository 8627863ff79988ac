package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xela07ax/insurance-backoffice/internal/domain"
)

// HTTPCustomerClient ходит в customer-service по REST-контракту
// GET {base}/api/customers/{id}.
type HTTPCustomerClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewHTTPCustomerClient(baseURL string, timeout time.Duration) *HTTPCustomerClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCustomerClient{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// GetCustomerByID реализует интерфейс CustomerProvider.
func (c *HTTPCustomerClient) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	// Защитный таймаут на уровне вызова: даже если вызывающая сторона
	// не ограничила контекст, lookup не должен висеть бесконечно
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/customers/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("customer lookup: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customer lookup %d: %w: %v", id, domain.ErrDownstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	default:
		return nil, fmt.Errorf("customer lookup %d: %w: unexpected status %d", id, domain.ErrDownstream, resp.StatusCode)
	}

	var customer domain.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("customer lookup %d: %w: decode: %v", id, domain.ErrDownstream, err)
	}
	return &customer, nil
}
