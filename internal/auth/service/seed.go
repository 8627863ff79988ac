package service

import (
	"context"

	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"go.uber.org/zap"
)

// SeedRoles — one-shot инициализация справочника ролей.
// Запускается из main ДО приема трафика; guard по count делает
// повторные старты no-op-ом, ON CONFLICT в репозитории страхует
// от гонки параллельных инстансов.
func (s *AuthService) SeedRoles(ctx context.Context) error {
	count, err := s.repo.CountRoles(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := s.repo.SeedRoles(ctx, domain.DefaultRoles); err != nil {
		return err
	}
	s.logger.Info("default roles seeded", zap.Strings("roles", domain.DefaultRoles))
	return nil
}
