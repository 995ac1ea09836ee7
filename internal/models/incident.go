package models

import (
	"sort"
	"time"
)

// IncidentStatus - статус жизненного цикла инцидента, как его отдает сервер координации
type IncidentStatus string

const (
	StatusReported     IncidentStatus = "reported"
	StatusAcknowledged IncidentStatus = "acknowledged"
	StatusEnRoute      IncidentStatus = "en_route"
	StatusOnScene      IncidentStatus = "on_scene"
	StatusNeedsSupport IncidentStatus = "needs_support"
	StatusResolved     IncidentStatus = "resolved"
	StatusCancelled    IncidentStatus = "cancelled"
)

// статус -> приоритет сортировки; меньшее значение отображается первым
var statusPriorities = map[IncidentStatus]int{
	StatusReported:     1,
	StatusAcknowledged: 2,
	StatusEnRoute:      3,
	StatusOnScene:      4,
	StatusNeedsSupport: 5,
	StatusResolved:     6,
	StatusCancelled:    7,
}

// unknownStatusPriority - приоритет для статусов, которых клиент не знает.
// Более старый или более новый сервер может прислать статус вне перечисления,
// такие записи сортируются в конец вместо ошибки.
const unknownStatusPriority = 99

// Priority возвращает числовой приоритет статуса для сортировки
func (s IncidentStatus) Priority() int {
	if p, ok := statusPriorities[s]; ok {
		return p
	}
	return unknownStatusPriority
}

// Terminal сообщает, завершен ли жизненный цикл инцидента
func (s IncidentStatus) Terminal() bool {
	return s == StatusResolved || s == StatusCancelled
}

// Incident представляет один зарегистрированный инцидент.
// Инциденты создаются только на сервере, клиентское ядро их лишь наблюдает.
type Incident struct {
	ID                 int64          `json:"id"`
	Type               string         `json:"type,omitempty"`
	Location           string         `json:"location,omitempty"`
	Description        string         `json:"description,omitempty"`
	Status             IncidentStatus `json:"status"`
	ReportedAt         time.Time      `json:"reported_at"`
	Lat                *float64       `json:"lat,omitempty"`
	Lng                *float64       `json:"lng,omitempty"`
	RespondersRequired int            `json:"responders_required"`
	RespondersAssigned int            `json:"responders_assigned"`
	Assignments        []Assignment   `json:"assignments,omitempty"`
	History            []StatusUpdate `json:"history,omitempty"`
}

// HasCoordinates сообщает, известны ли координаты инцидента
func (i *Incident) HasCoordinates() bool {
	return i.Lat != nil && i.Lng != nil
}

// HasActiveAssignmentFor проверяет, есть ли у респондента активное назначение
// на этот инцидент. Терминальные инциденты назначений не удерживают.
func (i *Incident) HasActiveAssignmentFor(responderID int64) bool {
	if i.Status.Terminal() {
		return false
	}
	for _, a := range i.Assignments {
		if a.Responder.ID == responderID && a.Active() {
			return true
		}
	}
	return false
}

// SortByPriority возвращает отсортированную копию списка инцидентов:
// сначала по приоритету статуса, при равенстве - по убыванию reported_at.
// Сортировка стабильна и не изменяет входной слайс.
func SortByPriority(list []Incident) []Incident {
	sorted := make([]Incident, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(a, b int) bool {
		pa, pb := sorted[a].Status.Priority(), sorted[b].Status.Priority()
		if pa != pb {
			return pa < pb
		}
		return sorted[a].ReportedAt.After(sorted[b].ReportedAt)
	})
	return sorted
}
