package domain

import "github.com/golang-jwt/jwt/v5"

// Роли пользователей бэк-офиса. Справочник засеивается
// один раз при старте auth-сервиса (см. service.SeedRoles).
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

var DefaultRoles = []string{RoleUser, RoleAdmin}

type User struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username" validate:"required,min=3,max=20"`
	Email        string   `json:"email" validate:"required,email,max=50"`
	PasswordHash string   `json:"-"` // Никогда не отправляем на фронт
	Roles        []string `json:"roles"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=20"`
	Email    string   `json:"email" validate:"required,email,max=50"`
	Password string   `json:"password" validate:"required,min=6,max=40"`
	Roles    []string `json:"roles,omitempty"`
}

// JwtResponse — ответ POST /api/auth/signin.
type JwtResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"` // Всегда "Bearer"
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type UserClaims struct {
	UserID int64    `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
