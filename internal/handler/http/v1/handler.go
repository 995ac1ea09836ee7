package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/kalinga-response/incident-core/internal/audit"
	"github.com/kalinga-response/incident-core/internal/client"
	"github.com/kalinga-response/incident-core/internal/config"
	"github.com/kalinga-response/incident-core/internal/dispatch"
	"github.com/kalinga-response/incident-core/internal/models"
	"github.com/kalinga-response/incident-core/internal/repository"
	syncmgr "github.com/kalinga-response/incident-core/internal/sync"
)

//go:generate mockgen -source=handler.go -destination=mocks/mock_handler.go -package=mocks

// IncidentView - чтение синхронизированной коллекции и управление загрузкой
type IncidentView interface {
	Snapshot() []models.Incident
	LastFetchedAt() time.Time
	LastError() string
	Load(ctx context.Context, opts syncmgr.LoadOptions) error
	MergeIncident(incident models.Incident)
}

// IncidentMutator - мутации инцидентов через репозиторий
type IncidentMutator interface {
	FetchHistory(ctx context.Context, incidentID int64, opts repository.FetchOptions) ([]models.StatusUpdate, error)
	Assign(ctx context.Context, incidentID int64, notes string) (*models.Incident, error)
	UpdateStatus(ctx context.Context, incidentID int64, status models.IncidentStatus, notes string, respondersRequired *int) (*models.Incident, error)
}

// DispatchControl - наблюдение и управление движком авто-диспетчеризации
type DispatchControl interface {
	State() dispatch.State
	Enabled() bool
	Enable()
	Disable()
	LastResult() *dispatch.Result
	ActiveAssignment() *models.Incident
}

// LocationSink - прием фиксов геолокации от UI
type LocationSink interface {
	Update(loc models.UserLocation)
	Current() (models.UserLocation, bool)
	UpdatedAt() time.Time
}

// AuditReader - чтение аудиторского следа попыток захвата
type AuditReader interface {
	Recent(ctx context.Context, responderID int64, limit int) ([]audit.Record, error)
}

// Handler - локальный API агента для потребителей ядра (дашборды, карты)
type Handler struct {
	view     IncidentView
	mutator  IncidentMutator
	engine   DispatchControl
	location LocationSink
	auditor  AuditReader // nil - аудит выключен
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(view IncidentView, mutator IncidentMutator, engine DispatchControl, location LocationSink, auditor AuditReader, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		view:     view,
		mutator:  mutator,
		engine:   engine,
		location: location,
		auditor:  auditor,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// listIncidents отдает текущий снимок коллекции; снимок уже отсортирован
// по приоритету менеджером синхронизации
func (h *Handler) listIncidents(c *gin.Context) {
	resp := IncidentListResponse{
		Incidents: ModelsToIncidentResponses(h.view.Snapshot()),
		Error:     h.view.LastError(),
	}
	at := h.view.LastFetchedAt()
	resp.Stale = at.IsZero() || time.Since(at) > h.cfg.RefreshInterval
	if !at.IsZero() {
		resp.LastFetchedAt = &at
	}
	c.JSON(http.StatusOK, resp)
}

// refreshIncidents принудительно перечитывает список с сервера
func (h *Handler) refreshIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "refreshIncidents")

	if err := h.view.Load(c.Request.Context(), syncmgr.LoadOptions{Force: true}); err != nil {
		log.WithError(err).Error("Forced incident refresh failed")
		// Показанный снимок не терялся, сообщаем только о сбое обновления
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to refresh incidents right now"})
		return
	}
	h.listIncidents(c)
}

// getHistory отдает историю смен статуса инцидента
func (h *Handler) getHistory(c *gin.Context) {
	incidentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getHistory").WithField("incident_id", incidentID)

	history, err := h.mutator.FetchHistory(c.Request.Context(), incidentID, repository.FetchOptions{})
	if err != nil {
		log.WithError(err).Error("Failed to fetch incident history")
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load incident history right now"})
		return
	}
	c.JSON(http.StatusOK, ModelsToHistoryResponses(history))
}

// assignIncident вручную назначает респондента на инцидент.
// 409 сервера - штатный исход гонки, наружу уходит сообщение сервера.
func (h *Handler) assignIncident(c *gin.Context) {
	incidentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "assignIncident").WithField("incident_id", incidentID)

	// Пустое тело допустимо: назначение без заметок
	var input AssignIncidentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.mutator.Assign(c.Request.Context(), incidentID, input.Notes)
	if err != nil {
		h.writeMutationError(c, log, err)
		return
	}

	h.view.MergeIncident(*incident)
	c.JSON(http.StatusOK, ModelToIncidentResponse(*incident))
}

// updateStatus меняет статус инцидента
func (h *Handler) updateStatus(c *gin.Context) {
	incidentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "updateStatus").WithField("incident_id", incidentID)

	var input UpdateStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.mutator.UpdateStatus(c.Request.Context(), incidentID,
		models.IncidentStatus(input.Status), input.Notes, input.RespondersRequired)
	if err != nil {
		h.writeMutationError(c, log, err)
		return
	}

	h.view.MergeIncident(*incident)
	c.JSON(http.StatusOK, ModelToIncidentResponse(*incident))
}

// dispatchStatus отдает состояние движка авто-диспетчеризации
func (h *Handler) dispatchStatus(c *gin.Context) {
	_, hasFix := h.location.Current()
	resp := DispatchStatusResponse{
		State:          string(h.engine.State()),
		Enabled:        h.engine.Enabled(),
		HasLocationFix: hasFix,
		LastResult:     h.engine.LastResult(),
	}
	if hasFix {
		at := h.location.UpdatedAt()
		resp.LocationUpdatedAt = &at
	}
	if active := h.engine.ActiveAssignment(); active != nil {
		resp.ActiveIncidentID = &active.ID
	}
	c.JSON(http.StatusOK, resp)
}

// enableDispatch включает авто-диспетчеризацию
func (h *Handler) enableDispatch(c *gin.Context) {
	h.engine.Enable()
	c.Status(http.StatusNoContent)
}

// disableDispatch выключает авто-диспетчеризацию
func (h *Handler) disableDispatch(c *gin.Context) {
	h.engine.Disable()
	c.Status(http.StatusNoContent)
}

// updateLocation принимает фикс геолокации от устройства респондента
func (h *Handler) updateLocation(c *gin.Context) {
	log := h.logger.WithField("method", "updateLocation")

	var input LocationUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.location.Update(models.UserLocation{Lat: input.Lat, Lng: input.Lng})
	c.Status(http.StatusNoContent)
}

// claimHistory отдает последние попытки авто-захвата из аудиторского следа
func (h *Handler) claimHistory(c *gin.Context) {
	if h.auditor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim audit is not configured"})
		return
	}
	log := h.logger.WithField("method", "claimHistory")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.auditor.Recent(c.Request.Context(), h.cfg.ResponderID, limit)
	if err != nil {
		log.WithError(err).Error("Failed to read claim audit trail")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// healthCheck - проверка живости агента
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeMutationError переводит ошибки репозитория в HTTP-статусы:
// 409 - инцидент уже занят (сообщение сервера уходит как есть),
// 404 - подходящих инцидентов нет, остальное - 502 от шлюза.
func (h *Handler) writeMutationError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, client.ErrConflict):
		log.WithError(err).Info("Incident already claimed by another responder")
		c.JSON(http.StatusConflict, gin.H{"error": conflictMessage(err)})
	case errors.Is(err, client.ErrNoEligibleIncident):
		c.JSON(http.StatusNotFound, gin.H{"error": "no eligible incident currently available"})
	default:
		log.WithError(err).Error("Incident mutation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to reach coordination server"})
	}
}

// conflictMessage достает сообщение сервера из цепочки ошибок конфликта
func conflictMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "incident already claimed"
}
