package domain

// PolicyType — фиксированный набор видов страхования.
type PolicyType string

const (
	PolicyAuto   PolicyType = "AUTO"
	PolicyHome   PolicyType = "HOME"
	PolicyHealth PolicyType = "HEALTH"
)

// Policy — страховой полис. CustomerID — внешняя ссылка на клиента,
// которая НЕ проверяется при записи: связка разрешается лениво,
// на чтении, через композер (см. PolicyWithCustomer).
type Policy struct {
	ID             int64      `json:"id"`
	Type           PolicyType `json:"type" validate:"required,oneof=AUTO HOME HEALTH"`
	StartDate      Date       `json:"startDate" validate:"required"`
	EndDate        Date       `json:"endDate" validate:"required"`
	CoverageAmount float64    `json:"coverageAmount" validate:"required,gt=0"`
	CustomerID     int64      `json:"customerId" validate:"required"`
}

// PolicyWithCustomer — композитная проекция "полис + его клиент".
// Собирается на каждый запрос и никогда не персистится.
type PolicyWithCustomer struct {
	Policy   Policy   `json:"policy"`
	Customer Customer `json:"customer"`
}
