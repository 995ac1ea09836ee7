package client

import (
	"errors"
	"fmt"
)

// ErrNoEligibleIncident - сервер ответил 404 на assign-nearest: подходящих
// инцидентов сейчас нет. Это штатный пустой результат, а не сбой.
var ErrNoEligibleIncident = errors.New("no eligible incident available")

// ErrConflict - сервер ответил 409: инцидент уже занят другим респондентом
var ErrConflict = errors.New("incident already claimed")

// APIError - не-2xx ответ сервера координации
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Is позволяет errors.Is сопоставлять APIError со штатными сигналами
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrConflict:
		return e.StatusCode == 409
	}
	return false
}
