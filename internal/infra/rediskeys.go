package infra

const (
	// RedisNamespace — базовый префикс для изоляции данных проекта в Redis
	RedisNamespace = "insurance"
)

// Каналы Pub/Sub (события)
const (
	// RedisChanClaimStatus — трансляция смен статусов требований.
	// Формат сообщения: "claimID:STATUS". Слушатели (нотификации,
	// внешняя аналитика) подписываются сами, сервис только публикует.
	RedisChanClaimStatus = RedisNamespace + ":claims:status-signal"
)
