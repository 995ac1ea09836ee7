// Package repository - типизированный доступ к данным инцидентов поверх
// серверного API с прозрачным кэшированием. Каждая мутация инвалидирует
// затронутые ключи кэша, чтобы следующее чтение ушло на сервер.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kalinga-response/incident-core/internal/cache"
	"github.com/kalinga-response/incident-core/internal/client"
	"github.com/kalinga-response/incident-core/internal/models"
)

// Ключи кэша. Список один на процесс, история - по ключу на инцидент.
const (
	listKey       = "incidents:list"
	historyPrefix = "incidents:history:"
)

// TTL по умолчанию. Короткие: инциденты - высокодинамичные данные,
// в отличие от реестров и каталогов остальной системы.
const (
	DefaultListTTL    = 10 * time.Second
	DefaultHistoryTTL = 30 * time.Second
)

// APIClient - контракт серверного API инцидентов
type APIClient interface {
	ListIncidents(ctx context.Context, params client.ListParams) ([]models.Incident, error)
	IncidentHistory(ctx context.Context, incidentID int64) ([]models.StatusUpdate, error)
	Assign(ctx context.Context, incidentID int64, req client.AssignRequest) (*models.Incident, error)
	UpdateStatus(ctx context.Context, incidentID int64, req client.StatusRequest) (*models.Incident, error)
	AssignNearest(ctx context.Context, req client.NearestRequest) (*client.NearestResult, error)
}

// FetchParams - параметры чтения списка инцидентов
type FetchParams struct {
	IncludeResolved bool
}

// FetchOptions управляет кэш-поведением чтения.
// Silent включает stale-while-revalidate: просроченный список отдается сразу,
// обновление уходит в фон и не дергает потребителя.
type FetchOptions struct {
	ForceRefresh bool
	Silent       bool
}

// IncidentRepository - кэширующий репозиторий инцидентов
type IncidentRepository struct {
	api        APIClient
	lists      *cache.Cache[[]models.Incident]
	histories  *cache.Cache[[]models.StatusUpdate]
	listTTL    time.Duration
	historyTTL time.Duration
	logger     *logrus.Logger
}

// New создает репозиторий. Нулевые TTL заменяются значениями по умолчанию.
func New(api APIClient, logger *logrus.Logger, listTTL, historyTTL time.Duration) *IncidentRepository {
	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}
	if historyTTL <= 0 {
		historyTTL = DefaultHistoryTTL
	}
	return &IncidentRepository{
		api:        api,
		lists:      cache.New[[]models.Incident](logger),
		histories:  cache.New[[]models.StatusUpdate](logger),
		listTTL:    listTTL,
		historyTTL: historyTTL,
		logger:     logger,
	}
}

// FetchIncidents возвращает список инцидентов, следуя правилам кэша
func (r *IncidentRepository) FetchIncidents(ctx context.Context, params FetchParams, opts FetchOptions) ([]models.Incident, error) {
	incidents, err := r.lists.Fetch(ctx, listKey,
		func(ctx context.Context) ([]models.Incident, error) {
			return r.api.ListIncidents(ctx, client.ListParams{IncludeResolved: params.IncludeResolved})
		},
		cache.FetchOptions{
			TTL:                  r.listTTL,
			ForceRefresh:         opts.ForceRefresh,
			StaleWhileRevalidate: opts.Silent,
		})
	if err != nil {
		return nil, fmt.Errorf("repository: fetch incidents: %w", err)
	}
	return incidents, nil
}

// PeekCachedIncidents синхронно возвращает закэшированный список или nil.
// Сетевых вызовов не делает; нужен для мгновенной первой отрисовки.
func (r *IncidentRepository) PeekCachedIncidents() []models.Incident {
	entry := r.lists.Get(listKey)
	if entry == nil {
		return nil
	}
	return entry.Data
}

// MergeOne вливает один инцидент в закэшированный список без похода в сеть:
// запись с совпадающим id заменяется, новая добавляется в начало. Так
// realtime-обновления видны всем потребителям, читающим кэш напрямую.
func (r *IncidentRepository) MergeOne(incident models.Incident) {
	r.lists.Patch(listKey, func(list []models.Incident) []models.Incident {
		for i := range list {
			if list[i].ID == incident.ID {
				next := make([]models.Incident, len(list))
				copy(next, list)
				next[i] = incident
				return next
			}
		}
		next := make([]models.Incident, 0, len(list)+1)
		next = append(next, incident)
		return append(next, list...)
	})
}

// FetchHistory возвращает историю смен статуса инцидента
func (r *IncidentRepository) FetchHistory(ctx context.Context, incidentID int64, opts FetchOptions) ([]models.StatusUpdate, error) {
	history, err := r.histories.Fetch(ctx, historyKey(incidentID),
		func(ctx context.Context) ([]models.StatusUpdate, error) {
			return r.api.IncidentHistory(ctx, incidentID)
		},
		cache.FetchOptions{
			TTL:                  r.historyTTL,
			ForceRefresh:         opts.ForceRefresh,
			StaleWhileRevalidate: opts.Silent,
		})
	if err != nil {
		return nil, fmt.Errorf("repository: fetch history for incident %d: %w", incidentID, err)
	}
	return history, nil
}

// Assign назначает текущего респондента на инцидент и сбрасывает затронутый
// кэш. 409 сервера пробрасывается как client.ErrConflict - локальное состояние
// при этом не менялось, оптимистичных записей репозиторий не делает.
func (r *IncidentRepository) Assign(ctx context.Context, incidentID int64, notes string) (*models.Incident, error) {
	incident, err := r.api.Assign(ctx, incidentID, client.AssignRequest{Notes: notes})
	if err != nil {
		return nil, fmt.Errorf("repository: assign incident %d: %w", incidentID, err)
	}

	r.invalidateAfterMutation(incidentID)
	return incident, nil
}

// UpdateStatus меняет статус инцидента и сбрасывает затронутый кэш
func (r *IncidentRepository) UpdateStatus(ctx context.Context, incidentID int64, status models.IncidentStatus, notes string, respondersRequired *int) (*models.Incident, error) {
	incident, err := r.api.UpdateStatus(ctx, incidentID, client.StatusRequest{
		Status:             status,
		Notes:              notes,
		RespondersRequired: respondersRequired,
	})
	if err != nil {
		return nil, fmt.Errorf("repository: update status of incident %d: %w", incidentID, err)
	}

	r.invalidateAfterMutation(incidentID)
	return incident, nil
}

// AssignNearest просит сервер закрепить за респондентом ближайший подходящий
// инцидент. client.ErrNoEligibleIncident возвращается без обертки: это
// штатный пустой результат, вызывающие различают его через errors.Is.
func (r *IncidentRepository) AssignNearest(ctx context.Context, loc models.UserLocation, responderID int64) (*models.Incident, error) {
	result, err := r.api.AssignNearest(ctx, client.NearestRequest{
		ResponderLat: loc.Lat,
		ResponderLng: loc.Lng,
		ResponderID:  responderID,
	})
	if err != nil {
		return nil, err
	}

	r.invalidateAfterMutation(result.Incident.ID)
	return &result.Incident, nil
}

// ClearCache полностью очищает кэш; вызывается при разлогине, чтобы данные
// одной сессии не были видны другой
func (r *IncidentRepository) ClearCache() {
	r.lists.Clear()
	r.histories.Clear()
}

func (r *IncidentRepository) invalidateAfterMutation(incidentID int64) {
	r.lists.Invalidate(listKey)
	r.histories.Invalidate(historyKey(incidentID))
}

func historyKey(incidentID int64) string {
	return fmt.Sprintf("%s%d", historyPrefix, incidentID)
}
