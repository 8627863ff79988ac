package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/xela07ax/insurance-backoffice/internal/clients"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"go.uber.org/zap"
)

// PolicyRepository описывает требования сервиса к хранилищу полисов
type PolicyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Policy, error)
	GetAll(ctx context.Context) ([]domain.Policy, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Policy, error)
	Create(ctx context.Context, p *domain.Policy) error
	Update(ctx context.Context, p *domain.Policy) error
	Delete(ctx context.Context, id int64) error
}

// PolicyService совмещает CRUD полисов и композер "полис + клиент".
// Клиент резолвится удаленным lookup-ом на каждое чтение: ссылка
// customer_id при записи не проверяется (ленивое разрешение).
type PolicyService struct {
	repo      PolicyRepository
	customers clients.CustomerProvider
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewPolicyService(repo PolicyRepository, customers clients.CustomerProvider, logger *zap.Logger) *PolicyService {
	return &PolicyService{
		repo:      repo,
		customers: customers,
		validate:  validator.New(),
		logger:    logger.Named("policy-service"),
	}
}

func (s *PolicyService) GetAll(ctx context.Context) ([]domain.Policy, error) {
	return s.repo.GetAll(ctx)
}

func (s *PolicyService) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PolicyService) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Policy, error) {
	return s.repo.GetByCustomerID(ctx, customerID)
}

func (s *PolicyService) Create(ctx context.Context, p *domain.Policy) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.repo.Create(ctx, p)
}

// Update перезаписывает атрибуты полиса. Владелец (customer_id)
// не меняется — полис не переоформляется на другого клиента.
func (s *PolicyService) Update(ctx context.Context, id int64, details *domain.Policy) (*domain.Policy, error) {
	policy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("policy %d: %w", id, domain.ErrNotFound)
	}

	policy.Type = details.Type
	policy.StartDate = details.StartDate
	policy.EndDate = details.EndDate
	policy.CoverageAmount = details.CoverageAmount

	if err := s.validate.Struct(policy); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.repo.Update(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *PolicyService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// GetPolicyWithCustomer собирает композитную проекцию для одного полиса:
// один lookup в customer-service на вызов. Отсутствие полиса и отказ
// lookup-а различимы через errors.Is, но хендлер по умолчанию мапит
// оба случая в 404 — это сохраненный внешний контракт.
func (s *PolicyService) GetPolicyWithCustomer(ctx context.Context, id int64) (*domain.PolicyWithCustomer, error) {
	policy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("policy %d: %w", id, domain.ErrNotFound)
	}

	customer, err := s.customers.GetCustomerByID(ctx, policy.CustomerID)
	if err != nil {
		s.logger.Warn("customer lookup failed",
			zap.Int64("policy_id", id),
			zap.Int64("customer_id", policy.CustomerID),
			zap.Error(err),
		)
		return nil, err
	}

	return &domain.PolicyWithCustomer{Policy: *policy, Customer: *customer}, nil
}

// GetAllPoliciesWithCustomers — пакетная сборка проекций: один lookup
// на каждый полис, последовательно, без дедупликации и кэша (N+1).
// Любой одиночный отказ роняет весь батч — all-or-nothing сохранено
// как исходная семантика (см. DESIGN.md про partial results).
func (s *PolicyService) GetAllPoliciesWithCustomers(ctx context.Context) ([]domain.PolicyWithCustomer, error) {
	policies, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.PolicyWithCustomer, 0, len(policies))
	for _, policy := range policies {
		customer, err := s.customers.GetCustomerByID(ctx, policy.CustomerID)
		if err != nil {
			s.logger.Warn("batch aborted: customer lookup failed",
				zap.Int64("policy_id", policy.ID),
				zap.Int64("customer_id", policy.CustomerID),
				zap.Error(err),
			)
			return nil, err
		}
		results = append(results, domain.PolicyWithCustomer{Policy: policy, Customer: *customer})
	}
	return results, nil
}
