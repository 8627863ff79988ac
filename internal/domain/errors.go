package domain

import "errors"

// Единая таксономия ошибок бэк-офиса.
// Хендлеры мапят их на HTTP-статусы через errors.Is, поэтому
// сервисы обязаны оборачивать причины с %w, а не терять их.
var (
	// ErrNotFound — сущность с таким ID отсутствует в хранилище.
	ErrNotFound = errors.New("entity not found")

	// ErrValidation — входные данные не прошли проверку полей.
	ErrValidation = errors.New("validation failed")

	// ErrDownstream — удаленный сервис недоступен или вернул ошибку.
	// Композер различает его с ErrNotFound внутри, но наружу оба
	// по умолчанию отдаются как 404 (совместимость со старым контрактом).
	ErrDownstream = errors.New("downstream call failed")
)
