package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xela07ax/insurance-backoffice/internal/clients"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"github.com/xela07ax/insurance-backoffice/internal/policy/handler"
	"github.com/xela07ax/insurance-backoffice/internal/policy/service"
	"go.uber.org/zap"
)

// memPolicyRepo / memClaimRepo — минимальные in-memory хранилища
// для прогона полного HTTP-стека: роутер -> хендлер -> сервис.

type memPolicyRepo struct {
	items  map[int64]domain.Policy
	nextID int64
}

func (r *memPolicyRepo) GetByID(_ context.Context, id int64) (*domain.Policy, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPolicyRepo) GetAll(_ context.Context) ([]domain.Policy, error) {
	out := make([]domain.Policy, 0, len(r.items))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPolicyRepo) GetByCustomerID(_ context.Context, customerID int64) ([]domain.Policy, error) {
	var out []domain.Policy
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.items[id]; ok && p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPolicyRepo) Create(_ context.Context, p *domain.Policy) error {
	p.ID = r.nextID
	r.nextID++
	r.items[p.ID] = *p
	return nil
}

func (r *memPolicyRepo) Update(_ context.Context, p *domain.Policy) error {
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *memPolicyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memClaimRepo struct {
	items  map[int64]domain.Claim
	nextID int64
}

func (r *memClaimRepo) GetByID(_ context.Context, id int64) (*domain.Claim, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memClaimRepo) GetAll(_ context.Context) ([]domain.Claim, error) {
	out := make([]domain.Claim, 0, len(r.items))
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.items[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClaimRepo) GetByPolicyID(_ context.Context, policyID int64) ([]domain.Claim, error) {
	var out []domain.Claim
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.items[id]; ok && c.PolicyID == policyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClaimRepo) Create(_ context.Context, c *domain.Claim) error {
	c.ID = r.nextID
	r.nextID++
	r.items[c.ID] = *c
	return nil
}

func (r *memClaimRepo) Update(_ context.Context, c *domain.Claim) error {
	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[c.ID] = *c
	return nil
}

func (r *memClaimRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newTestServer(t *testing.T, customers *clients.MockCustomerClient) (*PolicyServer, *memPolicyRepo, *memClaimRepo) {
	t.Helper()

	policyRepo := &memPolicyRepo{items: make(map[int64]domain.Policy), nextID: 1}
	claimRepo := &memClaimRepo{items: make(map[int64]domain.Claim), nextID: 1}

	logger := zap.NewNop()
	policySvc := service.NewPolicyService(policyRepo, customers, logger)
	claimSvc := service.NewClaimService(claimRepo, policyRepo, nil, nil, logger)

	srv := NewPolicyServer(logger, nil,
		handler.NewPolicyHandler(policySvc),
		handler.NewClaimHandler(claimSvc),
	)
	return srv, policyRepo, claimRepo
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func seedPolicy(t *testing.T, srv http.Handler, customerID int64) domain.Policy {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/policies", domain.Policy{
		Type:           domain.PolicyAuto,
		StartDate:      domain.NewDate(2024, time.January, 1),
		EndDate:        domain.NewDate(2025, time.January, 1),
		CoverageAmount: 50000,
		CustomerID:     customerID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var p domain.Policy
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	return p
}

func TestPolicyCRUDOverHTTP(t *testing.T) {
	srv, _, _ := newTestServer(t, clients.NewMockCustomerClient())

	p := seedPolicy(t, srv, 10)
	require.NotZero(t, p.ID)

	// Get
	rec := doJSON(t, srv, http.MethodGet, "/api/policies/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Get несуществующего
	rec = doJSON(t, srv, http.MethodGet, "/api/policies/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Update
	p.CoverageAmount = 60000
	rec = doJSON(t, srv, http.MethodPut, "/api/policies/1", p)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Невалидный тип
	bad := p
	bad.Type = "LIFE"
	rec = doJSON(t, srv, http.MethodPut, "/api/policies/1", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Delete
	rec = doJSON(t, srv, http.MethodDelete, "/api/policies/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/policies/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPolicyListIsNeverNull(t *testing.T) {
	srv, _, _ := newTestServer(t, clients.NewMockCustomerClient())

	rec := doJSON(t, srv, http.MethodGet, "/api/policies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// Пустой список сериализуется как [], а не null
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCompositeRoutesNotShadowedByID(t *testing.T) {
	customers := clients.NewMockCustomerClient(domain.Customer{
		ID: 10, FirstName: "Anna", LastName: "Smirnova",
		Email: "anna@example.com", Address: "SPb", Phone: "+7-900",
	})
	srv, _, _ := newTestServer(t, customers)
	seedPolicy(t, srv, 10)

	rec := doJSON(t, srv, http.MethodGet, "/api/policies/with-customer/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var pwc domain.PolicyWithCustomer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pwc))
	assert.Equal(t, "Smirnova", pwc.Customer.LastName)

	rec = doJSON(t, srv, http.MethodGet, "/api/policies/all-with-customers", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/policies/customer/10", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompositeLookupFailureMapsTo404(t *testing.T) {
	customers := clients.NewMockCustomerClient()
	customers.FailIDs[10] = domain.ErrDownstream
	srv, _, _ := newTestServer(t, customers)
	seedPolicy(t, srv, 10)

	// Отказ lookup-а и отсутствие полиса оба отдаются как 404
	rec := doJSON(t, srv, http.MethodGet, "/api/policies/with-customer/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/policies/with-customer/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClaimLifecycleOverHTTP(t *testing.T) {
	srv, _, _ := newTestServer(t, clients.NewMockCustomerClient())
	seedPolicy(t, srv, 10)

	// Создание: статус из запроса игнорируется
	rec := doJSON(t, srv, http.MethodPost, "/api/claims", map[string]interface{}{
		"date":          "2024-03-10",
		"description":   "windshield crack",
		"claimedAmount": 1000,
		"policyId":      1,
		"status":        "SETTLED",
		"settledAmount": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var c domain.Claim
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	assert.Equal(t, domain.ClaimPending, c.Status)
	assert.Zero(t, c.SettledAmount)

	// Требование на несуществующий полис — 400
	rec = doJSON(t, srv, http.MethodPost, "/api/claims", map[string]interface{}{
		"date":          "2024-03-10",
		"description":   "no such policy",
		"claimedAmount": 100,
		"policyId":      777,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// PATCH статуса с выплатой
	rec = doJSON(t, srv, http.MethodPatch, "/api/claims/1/status", map[string]interface{}{
		"status":        "APPROVED",
		"settledAmount": 800,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	assert.Equal(t, domain.ClaimApproved, c.Status)
	assert.Equal(t, 800.0, c.SettledAmount)

	// PATCH без settledAmount сумму не трогает
	rec = doJSON(t, srv, http.MethodPatch, "/api/claims/1/status", map[string]interface{}{
		"status": "SETTLED",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	assert.Equal(t, 800.0, c.SettledAmount)

	// Неизвестный статус — 400
	rec = doJSON(t, srv, http.MethodPatch, "/api/claims/1/status", map[string]interface{}{
		"status": "ESCALATED",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// PATCH по несуществующему требованию — 404
	rec = doJSON(t, srv, http.MethodPatch, "/api/claims/55/status", map[string]interface{}{
		"status": "APPROVED",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Выборка по полису
	rec = doJSON(t, srv, http.MethodGet, "/api/claims/policy/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Claim
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 1)

	// Delete
	rec = doJSON(t, srv, http.MethodDelete, "/api/claims/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBadIDIs400(t *testing.T) {
	srv, _, _ := newTestServer(t, clients.NewMockCustomerClient())

	rec := doJSON(t, srv, http.MethodGet, "/api/policies/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/claims/-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t, clients.NewMockCustomerClient())

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
