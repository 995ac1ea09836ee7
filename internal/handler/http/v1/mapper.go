package v1

import "github.com/kalinga-response/incident-core/internal/models"

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model models.Incident) IncidentResponse {
	resp := IncidentResponse{
		ID:                 model.ID,
		Type:               model.Type,
		Location:           model.Location,
		Description:        model.Description,
		Status:             string(model.Status),
		ReportedAt:         model.ReportedAt,
		Lat:                model.Lat,
		Lng:                model.Lng,
		RespondersRequired: model.RespondersRequired,
		RespondersAssigned: model.RespondersAssigned,
	}

	for _, a := range model.Assignments {
		ar := AssignmentResponse{
			ID:         a.ID,
			Status:     string(a.Status),
			AssignedAt: a.AssignedAt,
			Notes:      a.Notes,
		}
		ar.Responder.ID = a.Responder.ID
		ar.Responder.Name = a.Responder.Name
		ar.Responder.Role = a.Responder.Role
		resp.Assignments = append(resp.Assignments, ar)
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []models.Incident) []IncidentResponse {
	responses := make([]IncidentResponse, len(incidents))
	for i, inc := range incidents {
		responses[i] = ModelToIncidentResponse(inc)
	}
	return responses
}

// ModelsToHistoryResponses преобразует записи истории в DTO
func ModelsToHistoryResponses(history []models.StatusUpdate) []HistoryEntryResponse {
	responses := make([]HistoryEntryResponse, len(history))
	for i, entry := range history {
		responses[i] = HistoryEntryResponse{
			ID:        entry.ID,
			Status:    string(entry.Status),
			Notes:     entry.Notes,
			CreatedAt: entry.CreatedAt,
		}
		if entry.User != nil {
			responses[i].UserName = entry.User.Name
		}
	}
	return responses
}
