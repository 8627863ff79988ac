package domain

// ClaimStatus — состояние страхового требования.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"  // Начальное, ставится движком при создании
	ClaimApproved ClaimStatus = "APPROVED" // Одобрено к выплате
	ClaimRejected ClaimStatus = "REJECTED" // Отклонено
	ClaimSettled  ClaimStatus = "SETTLED"  // Выплачено
)

// Valid сообщает, входит ли значение в известный набор статусов.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimPending, ClaimApproved, ClaimRejected, ClaimSettled:
		return true
	}
	return false
}

// Claim — страховое требование по полису.
// PolicyID проверяется на существование только в момент создания:
// удаление полиса позже оставит требование "осиротевшим" — это
// осознанная часть контракта, а не баг.
type Claim struct {
	ID            int64       `json:"id"`
	Date          Date        `json:"date" validate:"required"`
	Description   string      `json:"description" validate:"required,max=500"`
	ClaimedAmount float64     `json:"claimedAmount" validate:"required,gt=0"`
	SettledAmount float64     `json:"settledAmount"`
	Status        ClaimStatus `json:"status"`
	PolicyID      int64       `json:"policyId" validate:"required"`
}

// ClaimStatusUpdate — тело PATCH /api/claims/{id}/status.
// SettledAmount опционален: nil означает "сумму не трогать".
type ClaimStatusUpdate struct {
	Status        ClaimStatus `json:"status"`
	SettledAmount *float64    `json:"settledAmount,omitempty"`
}
