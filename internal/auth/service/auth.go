package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
	"github.com/xela07ax/insurance-backoffice/internal/infra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository описывает требования сервиса к хранилищу пользователей
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, u *domain.User) error
	CountRoles(ctx context.Context) (int, error)
	SeedRoles(ctx context.Context, roles []string) error
}

type AuthService struct {
	repo       UserRepository
	secret     []byte // HS512, base64 из конфига
	tokenTTL   time.Duration
	bcryptCost int
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewAuthService(repo UserRepository, cfg infra.AuthConfig, logger *zap.Logger) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth: jwt_secret is required (generate with -gen-secret)")
	}
	secret, err := base64.StdEncoding.DecodeString(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("auth: jwt_secret must be base64: %w", err)
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &AuthService{
		repo:       repo,
		secret:     secret,
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cost,
		validate:   validator.New(),
		logger:     logger.Named("auth-service"),
	}, nil
}

// SignIn проверяет учетные данные и выпускает подписанный токен.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*domain.JwtResponse, error) {
	// 1. Аутентификация (источник правды — Postgres)
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, errors.New("invalid credentials")
	}

	// 2. Проверка пароля (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	// 3. Формирование Claims
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := &domain.UserClaims{
		UserID: user.ID,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "insurance-auth",
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// 4. Подпись токена (HS512, секрет общий для периметра)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.JwtResponse{
		Token:    signedToken,
		Type:     "Bearer",
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}, nil
}

// SignUp регистрирует нового пользователя бэк-офиса.
// Без явных ролей выдается ROLE_USER.
func (s *AuthService) SignUp(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username or email is already taken", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Roles:        roles,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}
