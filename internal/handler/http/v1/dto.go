package v1

import (
	"time"

	"github.com/kalinga-response/incident-core/internal/dispatch"
)

// AssignIncidentRequest DTO для ручного назначения на инцидент
type AssignIncidentRequest struct {
	Notes string `json:"notes,omitempty" validate:"max=500"`
}

// UpdateStatusRequest DTO для смены статуса инцидента
type UpdateStatusRequest struct {
	Status             string `json:"status" validate:"required,oneof=reported acknowledged en_route on_scene needs_support resolved cancelled"`
	Notes              string `json:"notes,omitempty" validate:"max=500"`
	RespondersRequired *int   `json:"responders_required,omitempty" validate:"omitempty,gte=1"`
}

// LocationUpdateRequest DTO для приема фикса геолокации
type LocationUpdateRequest struct {
	Lat float64 `json:"lat" validate:"required,latitude"`
	Lng float64 `json:"lng" validate:"required,longitude"`
}

// AssignmentResponse DTO назначения внутри инцидента
type AssignmentResponse struct {
	ID         int64      `json:"id"`
	Status     string     `json:"status"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Responder  struct {
		ID   int64  `json:"id"`
		Name string `json:"name,omitempty"`
		Role string `json:"role,omitempty"`
	} `json:"responder"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                 int64                `json:"id"`
	Type               string               `json:"type,omitempty"`
	Location           string               `json:"location,omitempty"`
	Description        string               `json:"description,omitempty"`
	Status             string               `json:"status"`
	ReportedAt         time.Time            `json:"reported_at"`
	Lat                *float64             `json:"lat,omitempty"`
	Lng                *float64             `json:"lng,omitempty"`
	RespondersRequired int                  `json:"responders_required"`
	RespondersAssigned int                  `json:"responders_assigned"`
	Assignments        []AssignmentResponse `json:"assignments,omitempty"`
}

// IncidentListResponse DTO списка: снимок коллекции плюс метаданные свежести
type IncidentListResponse struct {
	Incidents     []IncidentResponse `json:"incidents"`
	LastFetchedAt *time.Time         `json:"last_fetched_at,omitempty"`
	Stale         bool               `json:"stale"`
	Error         string             `json:"error,omitempty"`
}

// HistoryEntryResponse DTO одной записи истории статусов
type HistoryEntryResponse struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name,omitempty"`
}

// DispatchStatusResponse DTO состояния движка авто-диспетчеризации
type DispatchStatusResponse struct {
	State             string           `json:"state"`
	Enabled           bool             `json:"enabled"`
	HasLocationFix    bool             `json:"has_location_fix"`
	LocationUpdatedAt *time.Time       `json:"location_updated_at,omitempty"`
	ActiveIncidentID  *int64           `json:"active_incident_id,omitempty"`
	LastResult        *dispatch.Result `json:"last_result,omitempty"`
}
