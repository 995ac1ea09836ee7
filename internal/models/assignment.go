package models

import "time"

// AssignmentStatus - статус назначения респондента на инцидент
type AssignmentStatus string

const (
	AssignmentActive       AssignmentStatus = "active"
	AssignmentAcknowledged AssignmentStatus = "acknowledged"
	AssignmentEnRoute      AssignmentStatus = "en_route"
	AssignmentCompleted    AssignmentStatus = "completed"
	AssignmentCancelled    AssignmentStatus = "cancelled"
)

// Terminal сообщает, закрыто ли назначение
func (s AssignmentStatus) Terminal() bool {
	return s == AssignmentCompleted || s == AssignmentCancelled
}

// Responder - краткая карточка респондента внутри назначения
type Responder struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Assignment связывает респондента с инцидентом
type Assignment struct {
	ID         int64            `json:"id"`
	Status     AssignmentStatus `json:"status"`
	AssignedAt *time.Time       `json:"assigned_at,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Responder  Responder        `json:"responder"`
}

// Active сообщает, удерживает ли назначение респондента
func (a *Assignment) Active() bool {
	return !a.Status.Terminal()
}

// StatusUpdate - одна запись истории смены статуса инцидента
type StatusUpdate struct {
	ID        int64          `json:"id"`
	Status    IncidentStatus `json:"status"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	User      *Responder     `json:"user,omitempty"`
}
