package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"go.uber.org/zap"
)

// ClaimRepository описывает требования движка к хранилищу требований
type ClaimRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Claim, error)
	GetAll(ctx context.Context) ([]domain.Claim, error)
	GetByPolicyID(ctx context.Context, policyID int64) ([]domain.Claim, error)
	Create(ctx context.Context, c *domain.Claim) error
	Update(ctx context.Context, c *domain.Claim) error
	Delete(ctx context.Context, id int64) error
}

// StatusNotifier получает факт смены статуса после персиста.
// Реализуется events.Publisher (Redis Pub/Sub).
type StatusNotifier interface {
	NotifyStatus(claimID int64, status domain.ClaimStatus)
}

// ClaimService — движок жизненного цикла требования.
//
// Статус мутируется ТОЛЬКО через applyStatus: и полный update, и
// частичный PATCH проходят через одну точку, чтобы бизнес-правила
// переходов не разъезжались между двумя входами.
type ClaimService struct {
	repo     ClaimRepository
	policies PolicyRepository // Только для проверки существования полиса при создании
	notifier StatusNotifier
	validate *validator.Validate
	metrics  *Metrics
	logger   *zap.Logger
}

func NewClaimService(repo ClaimRepository, policies PolicyRepository, notifier StatusNotifier, metrics *Metrics, logger *zap.Logger) *ClaimService {
	return &ClaimService{
		repo:     repo,
		policies: policies,
		notifier: notifier,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger.Named("claim-service"),
	}
}

func (s *ClaimService) GetAll(ctx context.Context) ([]domain.Claim, error) {
	return s.repo.GetAll(ctx)
}

func (s *ClaimService) GetByID(ctx context.Context, id int64) (*domain.Claim, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClaimService) GetByPolicyID(ctx context.Context, policyID int64) ([]domain.Claim, error) {
	return s.repo.GetByPolicyID(ctx, policyID)
}

// Create регистрирует новое требование.
// Статус из запроса игнорируется: движок всегда стартует с PENDING,
// settledAmount принудительно обнуляется. Полис обязан существовать
// на момент создания — и только на этот момент.
func (s *ClaimService) Create(ctx context.Context, c *domain.Claim) error {
	c.Status = domain.ClaimPending
	c.SettledAmount = 0

	if err := s.validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	policy, err := s.policies.GetByID(ctx, c.PolicyID)
	if err != nil {
		return err
	}
	if policy == nil {
		return fmt.Errorf("policy %d: %w", c.PolicyID, domain.ErrNotFound)
	}

	return s.repo.Create(ctx, c)
}

// Update — полная перезапись требования caller-значениями,
// включая статус и settledAmount. Смена статуса идет через applyStatus.
func (s *ClaimService) Update(ctx context.Context, id int64, details *domain.Claim) (*domain.Claim, error) {
	claim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, fmt.Errorf("claim %d: %w", id, domain.ErrNotFound)
	}

	claim.Date = details.Date
	claim.Description = details.Description
	claim.ClaimedAmount = details.ClaimedAmount

	if err := s.validate.Struct(claim); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.applyStatus(claim, details.Status, &details.SettledAmount); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, claim); err != nil {
		return nil, err
	}
	s.notifyStatus(claim)
	return claim, nil
}

// ProcessStatus — узкий PATCH статуса: settledAmount без значения
// оставляет выплаченную сумму нетронутой.
func (s *ClaimService) ProcessStatus(ctx context.Context, id int64, upd domain.ClaimStatusUpdate) (*domain.Claim, error) {
	claim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, fmt.Errorf("claim %d: %w", id, domain.ErrNotFound)
	}

	if err := s.applyStatus(claim, upd.Status, upd.SettledAmount); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, claim); err != nil {
		return nil, err
	}
	s.notifyStatus(claim)
	return claim, nil
}

func (s *ClaimService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// applyStatus — единственная точка смены статуса требования.
// Таблицы разрешенных переходов сейчас нет: любой статус можно сменить
// на любой другой (включая возврат из APPROVED в PENDING). Когда
// появятся правила переходов, они добавляются только здесь.
func (s *ClaimService) applyStatus(c *domain.Claim, status domain.ClaimStatus, settledAmount *float64) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown claim status %q", domain.ErrValidation, status)
	}

	c.Status = status
	if settledAmount != nil {
		c.SettledAmount = *settledAmount
	}
	return nil
}

func (s *ClaimService) notifyStatus(c *domain.Claim) {
	if s.metrics != nil {
		s.metrics.ClaimTransitions.WithLabelValues(string(c.Status)).Inc()
	}
	if s.notifier != nil {
		s.notifier.NotifyStatus(c.ID, c.Status)
	}
}
