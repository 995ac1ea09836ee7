// Package client - HTTP-клиент серверного API инцидентов. Сервер координации
// остается единственным источником истины; клиент только читает список и
// историю и выполняет мутации assign / status / assign-nearest.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kalinga-response/incident-core/internal/models"
)

// Client выполняет запросы к серверу координации
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New создает клиент API. baseURL указывается без завершающего слэша,
// например "https://coordination.example.org/api".
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListParams - параметры запроса списка инцидентов
type ListParams struct {
	IncludeResolved bool
}

// AssignRequest - тело POST /incidents/{id}/assign
type AssignRequest struct {
	Notes string `json:"notes,omitempty"`
}

// StatusRequest - тело POST /incidents/{id}/status
type StatusRequest struct {
	Status             models.IncidentStatus `json:"status"`
	Notes              string                `json:"notes,omitempty"`
	RespondersRequired *int                  `json:"responders_required,omitempty"`
}

// NearestRequest - тело POST /incidents/assign-nearest
type NearestRequest struct {
	ResponderLat float64 `json:"responder_lat"`
	ResponderLng float64 `json:"responder_lng"`
	ResponderID  int64   `json:"responder_id"`
}

// NearestResult - ответ assign-nearest: назначенный инцидент и дистанция до него
type NearestResult struct {
	Incident models.Incident `json:"incident"`
	Distance float64         `json:"distance"`
}

// ListIncidents возвращает коллекцию инцидентов.
// Сервер может отдать массив как есть или обернутым в конверт {"data": [...]}.
func (c *Client) ListIncidents(ctx context.Context, params ListParams) ([]models.Incident, error) {
	query := url.Values{}
	query.Set("include_resolved", strconv.FormatBool(params.IncludeResolved))

	body, err := c.do(ctx, http.MethodGet, "/incidents?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var incidents []models.Incident
	if err := unmarshalMaybeEnveloped(body, &incidents); err != nil {
		return nil, fmt.Errorf("client: decode incident list: %w", err)
	}
	return incidents, nil
}

// IncidentHistory возвращает историю смен статуса одного инцидента
func (c *Client) IncidentHistory(ctx context.Context, incidentID int64) ([]models.StatusUpdate, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/incidents/%d/history", incidentID), nil)
	if err != nil {
		return nil, err
	}

	var history []models.StatusUpdate
	if err := unmarshalMaybeEnveloped(body, &history); err != nil {
		return nil, fmt.Errorf("client: decode incident history: %w", err)
	}
	return history, nil
}

// Assign назначает текущего респондента на инцидент.
// 409 означает, что инцидент уже занят (errors.Is(err, ErrConflict)).
func (c *Client) Assign(ctx context.Context, incidentID int64, req AssignRequest) (*models.Incident, error) {
	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/incidents/%d/assign", incidentID), req)
	if err != nil {
		return nil, err
	}
	return decodeIncident(body)
}

// UpdateStatus меняет статус инцидента
func (c *Client) UpdateStatus(ctx context.Context, incidentID int64, req StatusRequest) (*models.Incident, error) {
	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/incidents/%d/status", incidentID), req)
	if err != nil {
		return nil, err
	}
	return decodeIncident(body)
}

// AssignNearest просит сервер закрепить за респондентом ближайший подходящий
// инцидент. Расстояние считает сервер - у него актуальные координаты всех
// инцидентов, у клиента их может не быть.
// 404 возвращается как ErrNoEligibleIncident: прямо сейчас предложить нечего.
func (c *Client) AssignNearest(ctx context.Context, req NearestRequest) (*NearestResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/incidents/assign-nearest", req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNoEligibleIncident, apiErr.Message)
		}
		return nil, err
	}

	var result NearestResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("client: decode assign-nearest response: %w", err)
	}
	return &result, nil
}

// do выполняет запрос и возвращает тело 2xx-ответа.
// Любой другой статус превращается в *APIError с сообщением сервера.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("client: marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body),
		}
	}
	return body, nil
}

// extractMessage достает человекочитаемое сообщение из тела ошибки
func extractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}

// unmarshalMaybeEnveloped декодирует массив, обернутый или не обернутый
// в конверт {"data": [...]}
func unmarshalMaybeEnveloped(body []byte, dst any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return json.Unmarshal(envelope.Data, dst)
	}
	return json.Unmarshal(body, dst)
}

// decodeIncident декодирует инцидент, присланный как есть либо в конверте
// {"incident": {...}}
func decodeIncident(body []byte) (*models.Incident, error) {
	var envelope struct {
		Incident *models.Incident `json:"incident"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Incident != nil {
		return envelope.Incident, nil
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(body, incident); err != nil {
		return nil, fmt.Errorf("client: decode incident: %w", err)
	}
	return incident, nil
}
