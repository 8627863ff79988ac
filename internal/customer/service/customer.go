package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"go.uber.org/zap"
)

// CustomerRepository описывает требования сервиса к хранилищу клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetAll(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	SearchByLastName(ctx context.Context, lastName string) ([]domain.Customer, error)
	SearchByEmail(ctx context.Context, email string) ([]domain.Customer, error)
}

type CustomerService struct {
	repo     CustomerRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCustomerService(repo CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger.Named("customer-service"),
	}
}

func (s *CustomerService) GetAll(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) error {
	if err := s.validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.repo.Create(ctx, c)
}

// Update — полная перезапись карточки клиента. Идентичность (ID)
// после присвоения не меняется.
func (s *CustomerService) Update(ctx context.Context, id int64, details *domain.Customer) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}

	customer.FirstName = details.FirstName
	customer.LastName = details.LastName
	customer.Email = details.Email
	customer.Address = details.Address
	customer.Phone = details.Phone

	if err := s.validate.Struct(customer); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *CustomerService) SearchByLastName(ctx context.Context, lastName string) ([]domain.Customer, error) {
	return s.repo.SearchByLastName(ctx, lastName)
}

func (s *CustomerService) SearchByEmail(ctx context.Context, email string) ([]domain.Customer, error) {
	return s.repo.SearchByEmail(ctx, email)
}
