package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kalinga-response/incident-core/internal/client"
	"github.com/kalinga-response/incident-core/internal/config"
	"github.com/kalinga-response/incident-core/internal/dispatch"
	"github.com/kalinga-response/incident-core/internal/handler/http/v1/mocks"
	"github.com/kalinga-response/incident-core/internal/models"
)

type handlerMocks struct {
	view     *mocks.MockIncidentView
	mutator  *mocks.MockIncidentMutator
	engine   *mocks.MockDispatchControl
	location *mocks.MockLocationSink
	auditor  *mocks.MockAuditReader
}

// newTestHandler создает Handler с мокированными зависимостями
func newTestHandler(t *testing.T) (*handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)

	hm := &handlerMocks{
		view:     mocks.NewMockIncidentView(ctrl),
		mutator:  mocks.NewMockIncidentMutator(ctrl),
		engine:   mocks.NewMockDispatchControl(ctrl),
		location: mocks.NewMockLocationSink(ctrl),
		auditor:  mocks.NewMockAuditReader(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{ResponderID: 200, RefreshInterval: time.Minute}
	handler := NewHandler(hm.view, hm.mutator, hm.engine, hm.location, hm.auditor, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return hm, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListIncidents_Success(t *testing.T) {
	hm, router := newTestHandler(t)
	fetchedAt := time.Now()

	hm.view.EXPECT().Snapshot().Return([]models.Incident{
		{ID: 1, Status: models.StatusReported, Type: "fire"},
		{ID: 2, Status: models.StatusResolved},
	})
	hm.view.EXPECT().LastError().Return("")
	hm.view.EXPECT().LastFetchedAt().Return(fetchedAt)

	w := makeRequest(router, "GET", "/api/v1/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp IncidentListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Incidents, 2)
	assert.Equal(t, int64(1), resp.Incidents[0].ID)
	assert.Equal(t, "fire", resp.Incidents[0].Type)
	require.NotNil(t, resp.LastFetchedAt)
	assert.True(t, fetchedAt.Equal(*resp.LastFetchedAt))
	assert.False(t, resp.Stale)
	assert.Empty(t, resp.Error)
}

func TestListIncidents_CarriesLastError(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.view.EXPECT().Snapshot().Return([]models.Incident{{ID: 1, Status: models.StatusReported}})
	hm.view.EXPECT().LastError().Return("server unreachable")
	hm.view.EXPECT().LastFetchedAt().Return(time.Time{})

	w := makeRequest(router, "GET", "/api/v1/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code, "stale data is still served alongside the error")

	var resp IncidentListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "server unreachable", resp.Error)
	assert.Nil(t, resp.LastFetchedAt)
	assert.True(t, resp.Stale, "a collection that never loaded is stale")
}

func TestRefreshIncidents_Success(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.view.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil)
	hm.view.EXPECT().Snapshot().Return([]models.Incident{{ID: 1, Status: models.StatusReported}})
	hm.view.EXPECT().LastError().Return("")
	hm.view.EXPECT().LastFetchedAt().Return(time.Now())

	w := makeRequest(router, "POST", "/api/v1/incidents/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshIncidents_UpstreamFailure(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.view.EXPECT().Load(gomock.Any(), gomock.Any()).Return(errors.New("server unreachable"))

	w := makeRequest(router, "POST", "/api/v1/incidents/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetHistory_Success(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.mutator.EXPECT().FetchHistory(gomock.Any(), int64(42), gomock.Any()).
		Return([]models.StatusUpdate{
			{ID: 1, Status: models.StatusReported},
			{ID: 2, Status: models.StatusAcknowledged},
		}, nil)

	w := makeRequest(router, "GET", "/api/v1/incidents/42/history", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []HistoryEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetHistory_InvalidID(t *testing.T) {
	hm, router := newTestHandler(t)
	hm.mutator.EXPECT().FetchHistory(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incidents/abc/history", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignIncident_Success(t *testing.T) {
	hm, router := newTestHandler(t)
	assigned := &models.Incident{ID: 7, Status: models.StatusAcknowledged, RespondersAssigned: 1}

	hm.mutator.EXPECT().Assign(gomock.Any(), int64(7), "on my way").Return(assigned, nil)
	hm.view.EXPECT().MergeIncident(*assigned)

	body, _ := json.Marshal(AssignIncidentRequest{Notes: "on my way"})
	w := makeRequest(router, "POST", "/api/v1/incidents/7/assign", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 1, resp.RespondersAssigned)
}

func TestAssignIncident_EmptyBodyAllowed(t *testing.T) {
	hm, router := newTestHandler(t)
	assigned := &models.Incident{ID: 7, Status: models.StatusAcknowledged}

	hm.mutator.EXPECT().Assign(gomock.Any(), int64(7), "").Return(assigned, nil)
	hm.view.EXPECT().MergeIncident(*assigned)

	w := makeRequest(router, "POST", "/api/v1/incidents/7/assign", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssignIncident_ConflictExposesServerMessage(t *testing.T) {
	hm, router := newTestHandler(t)

	apiErr := &client.APIError{StatusCode: 409, Message: "already claimed by Team 2"}
	hm.mutator.EXPECT().Assign(gomock.Any(), int64(7), "").
		Return(nil, fmt.Errorf("repository: assign incident 7: %w", apiErr))
	hm.view.EXPECT().MergeIncident(gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/incidents/7/assign", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already claimed by Team 2")
}

func TestAssignIncident_UpstreamFailure(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.mutator.EXPECT().Assign(gomock.Any(), int64(7), "").
		Return(nil, errors.New("connection refused"))

	w := makeRequest(router, "POST", "/api/v1/incidents/7/assign", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUpdateStatus_Success(t *testing.T) {
	hm, router := newTestHandler(t)
	updated := &models.Incident{ID: 7, Status: models.StatusOnScene}

	hm.mutator.EXPECT().
		UpdateStatus(gomock.Any(), int64(7), models.StatusOnScene, "arrived", nil).
		Return(updated, nil)
	hm.view.EXPECT().MergeIncident(*updated)

	body, _ := json.Marshal(UpdateStatusRequest{Status: "on_scene", Notes: "arrived"})
	w := makeRequest(router, "POST", "/api/v1/incidents/7/status", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	hm, router := newTestHandler(t)
	hm.mutator.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body, _ := json.Marshal(UpdateStatusRequest{Status: "vanished"})
	w := makeRequest(router, "POST", "/api/v1/incidents/7/status", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "oneof")
}

func TestUpdateStatus_InvalidRespondersRequired(t *testing.T) {
	hm, router := newTestHandler(t)
	hm.mutator.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	zero := 0
	body, _ := json.Marshal(UpdateStatusRequest{Status: "needs_support", RespondersRequired: &zero})
	w := makeRequest(router, "POST", "/api/v1/incidents/7/status", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchStatus(t *testing.T) {
	hm, router := newTestHandler(t)
	active := &models.Incident{ID: 5, Status: models.StatusEnRoute}
	fixAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	hm.engine.EXPECT().State().Return(dispatch.StateAssigned)
	hm.engine.EXPECT().Enabled().Return(true)
	hm.engine.EXPECT().LastResult().Return(&dispatch.Result{Outcome: dispatch.OutcomeAssigned, IncidentID: 5})
	hm.engine.EXPECT().ActiveAssignment().Return(active)
	hm.location.EXPECT().Current().Return(models.UserLocation{Lat: 14.6, Lng: 121.0}, true)
	hm.location.EXPECT().UpdatedAt().Return(fixAt)

	w := makeRequest(router, "GET", "/api/v1/dispatch", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DispatchStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "assigned", resp.State)
	assert.True(t, resp.Enabled)
	assert.True(t, resp.HasLocationFix)
	require.NotNil(t, resp.LocationUpdatedAt)
	assert.True(t, fixAt.Equal(*resp.LocationUpdatedAt))
	require.NotNil(t, resp.ActiveIncidentID)
	assert.Equal(t, int64(5), *resp.ActiveIncidentID)
}

func TestDispatchStatus_NoLocationFix(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.engine.EXPECT().State().Return(dispatch.StateIdle)
	hm.engine.EXPECT().Enabled().Return(false)
	hm.engine.EXPECT().LastResult().Return(nil)
	hm.engine.EXPECT().ActiveAssignment().Return(nil)
	hm.location.EXPECT().Current().Return(models.UserLocation{}, false)

	w := makeRequest(router, "GET", "/api/v1/dispatch", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DispatchStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "idle", resp.State)
	assert.False(t, resp.HasLocationFix)
	assert.Nil(t, resp.LocationUpdatedAt)
	assert.Nil(t, resp.ActiveIncidentID)
}

func TestEnableDisableDispatch(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.engine.EXPECT().Enable()
	w := makeRequest(router, "POST", "/api/v1/dispatch/enable", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	hm.engine.EXPECT().Disable()
	w = makeRequest(router, "POST", "/api/v1/dispatch/disable", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateLocation_Success(t *testing.T) {
	hm, router := newTestHandler(t)

	hm.location.EXPECT().Update(models.UserLocation{Lat: 14.6, Lng: 121.0})

	body, _ := json.Marshal(LocationUpdateRequest{Lat: 14.6, Lng: 121.0})
	w := makeRequest(router, "POST", "/api/v1/location", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateLocation_InvalidCoordinates(t *testing.T) {
	hm, router := newTestHandler(t)
	hm.location.EXPECT().Update(gomock.Any()).Times(0)

	body, _ := json.Marshal(LocationUpdateRequest{Lat: 95.0, Lng: 121.0})
	w := makeRequest(router, "POST", "/api/v1/location", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"test-api-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/ping", nil, map[string]string{"X-API-Key": "test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, "GET", "/ping", nil, map[string]string{"Authorization": "Bearer test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"test-api-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/ping", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"test-api-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/ping", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
