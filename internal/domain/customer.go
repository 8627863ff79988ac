package domain

// Customer — запись клиента. Владелец данных — customer-service,
// остальные сервисы получают её только через удаленный lookup.
// Теги validate проверяются в сервисном слое (go-playground/validator).
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Address   string `json:"address" validate:"required,max=200"`
	Phone     string `json:"phone" validate:"required,max=20"`
}
