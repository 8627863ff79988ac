package service

import (
	"context"
	"sync"
	"time"

	"github.com/xela07ax/insurance-backoffice/internal/domain"
)

// In-memory реализации репозиториев для тестов сервисного слоя.
// Повторяют контракт pgx-репозиториев: (nil, nil) если записи нет.

type fakePolicyRepo struct {
	mu       sync.Mutex
	policies map[int64]domain.Policy
	nextID   int64
}

func newFakePolicyRepo(policies ...domain.Policy) *fakePolicyRepo {
	r := &fakePolicyRepo{policies: make(map[int64]domain.Policy), nextID: 1}
	for _, p := range policies {
		r.policies[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *fakePolicyRepo) GetByID(_ context.Context, id int64) (*domain.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.policies[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePolicyRepo) GetAll(_ context.Context) ([]domain.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Policy, 0, len(r.policies))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.policies[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePolicyRepo) GetByCustomerID(_ context.Context, customerID int64) ([]domain.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Policy
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.policies[id]; ok && p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePolicyRepo) Create(_ context.Context, p *domain.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.policies[p.ID] = *p
	return nil
}

func (r *fakePolicyRepo) Update(_ context.Context, p *domain.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.policies[p.ID] = *p
	return nil
}

func (r *fakePolicyRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.policies, id)
	return nil
}

type fakeClaimRepo struct {
	mu     sync.Mutex
	claims map[int64]domain.Claim
	nextID int64
}

func newFakeClaimRepo(claims ...domain.Claim) *fakeClaimRepo {
	r := &fakeClaimRepo{claims: make(map[int64]domain.Claim), nextID: 1}
	for _, c := range claims {
		r.claims[c.ID] = c
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *fakeClaimRepo) GetByID(_ context.Context, id int64) (*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeClaimRepo) GetAll(_ context.Context) ([]domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Claim, 0, len(r.claims))
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.claims[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClaimRepo) GetByPolicyID(_ context.Context, policyID int64) ([]domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Claim
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.claims[id]; ok && c.PolicyID == policyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClaimRepo) Create(_ context.Context, c *domain.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	r.claims[c.ID] = *c
	return nil
}

func (r *fakeClaimRepo) Update(_ context.Context, c *domain.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claims[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.claims[c.ID] = *c
	return nil
}

func (r *fakeClaimRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claims[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.claims, id)
	return nil
}

// fakeNotifier копит события для проверки фактов публикации.
type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *fakeNotifier) NotifyStatus(claimID int64, status domain.ClaimStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, string(status))
}

func (n *fakeNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func testPolicy(id, customerID int64) domain.Policy {
	return domain.Policy{
		ID:             id,
		Type:           domain.PolicyAuto,
		StartDate:      domain.NewDate(2024, time.January, 1),
		EndDate:        domain.NewDate(2025, time.January, 1),
		CoverageAmount: 50000,
		CustomerID:     customerID,
	}
}

func testCustomer(id int64) domain.Customer {
	return domain.Customer{
		ID:        id,
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "ivan.petrov@example.com",
		Address:   "Moscow, Tverskaya 1",
		Phone:     "+7-900-000-00-00",
	}
}
