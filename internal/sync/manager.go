// Package sync - менеджер синхронизации инцидентов: единственная
// авторитетная in-memory коллекция, согласуемая из трех источников -
// начальной/периодической загрузки, realtime-пуша и локальных слияний
// после действий респондента.
package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kalinga-response/incident-core/internal/models"
	"github.com/kalinga-response/incident-core/internal/realtime"
	"github.com/kalinga-response/incident-core/internal/repository"
)

//go:generate mockgen -source=manager.go -destination=mocks/mock_manager.go -package=mocks

// DefaultRefreshInterval - период страховочного опроса, когда realtime-канал
// молчит. Каждое успешное слияние сдвигает таймер, так что это debounce,
// а не равномерный опрос.
const DefaultRefreshInterval = 30 * time.Second

// IncidentRepository - контракт репозитория, который потребляет менеджер
type IncidentRepository interface {
	FetchIncidents(ctx context.Context, params repository.FetchParams, opts repository.FetchOptions) ([]models.Incident, error)
	PeekCachedIncidents() []models.Incident
	MergeOne(incident models.Incident)
	ClearCache()
}

// Options - настройки менеджера
type Options struct {
	RefreshInterval time.Duration
	IncludeResolved bool
}

// LoadOptions управляет одной загрузкой.
// Force игнорирует подавление повторных загрузок и кэш;
// Silent помечает загрузку фоновой (stale-while-revalidate в кэше).
type LoadOptions struct {
	Force  bool
	Silent bool
}

// Manager держит коллекцию инцидентов и раздает ее снимки остальному
// приложению. Коллекцию изменяет только сам менеджер; читатели получают
// копии и не должны их мутировать.
type Manager struct {
	repo       IncidentRepository
	subscriber realtime.Subscriber
	logger     *logrus.Logger
	opts       Options

	mu            stdsync.Mutex
	incidents     []models.Incident
	knownIDs      map[int64]struct{}
	lastFetchedAt time.Time
	lastErr       string
	refreshTimer  *time.Timer
	closed        bool

	onNewIncident []func(models.Incident)

	runCtx context.Context
	cancel context.CancelFunc
	wg     stdsync.WaitGroup
}

// New создает менеджер. Subscriber может быть nil - тогда работает только
// опрос. Менеджер создается на старте сессии и обязан быть закрыт через
// Close при разлогине или остановке процесса.
func New(repo IncidentRepository, subscriber realtime.Subscriber, logger *logrus.Logger, opts Options) *Manager {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	return &Manager{
		repo:       repo,
		subscriber: subscriber,
		logger:     logger,
		opts:       opts,
		knownIDs:   make(map[int64]struct{}),
	}
}

// OnNewIncident регистрирует наблюдателя, вызываемого для каждого инцидента с
// ранее не встречавшимся id. Регистрация - до Start; наблюдатели вызываются
// в отдельной горутине и не задерживают конвейер слияния.
func (m *Manager) OnNewIncident(fn func(models.Incident)) {
	m.onNewIncident = append(m.onNewIncident, fn)
}

// Start выполняет первоначальную загрузку и запускает потребление
// realtime-событий. Ошибка подписки не фатальна: опрос остается страховкой.
func (m *Manager) Start(ctx context.Context) error {
	m.runCtx, m.cancel = context.WithCancel(ctx)

	if err := m.Load(m.runCtx, LoadOptions{Force: true}); err != nil {
		// Коллекция пуста, но таймер уже взведен - сеть могла мигнуть.
		m.logger.WithError(err).Error("Initial incident load failed")
	}

	if m.subscriber != nil {
		m.wg.Add(1)
		go m.consumeEvents()
	}
	return nil
}

// Load обновляет коллекцию из репозитория, следуя правилам кэша, сортирует
// и публикует результат. Без Force загрузка подавляется, пока предыдущая
// успешная моложе интервала обновления и коллекция непуста.
func (m *Manager) Load(ctx context.Context, opts LoadOptions) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}

	// Мгновенная первая отрисовка: до похода в сеть коллекция засевается
	// из кэша, если он есть, а своих данных еще нет.
	if !opts.Force && len(m.incidents) == 0 {
		if cached := m.repo.PeekCachedIncidents(); cached != nil {
			m.setCollectionLocked(models.SortByPriority(cached))
		}
	}

	if !opts.Force && !m.lastFetchedAt.IsZero() &&
		time.Since(m.lastFetchedAt) < m.opts.RefreshInterval && len(m.incidents) > 0 {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	incidents, err := m.repo.FetchIncidents(ctx,
		repository.FetchParams{IncludeResolved: m.opts.IncludeResolved},
		repository.FetchOptions{ForceRefresh: opts.Force, Silent: opts.Silent},
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}

	if err != nil {
		// Уже показанный снимок не сбрасывается: лучше устаревшие данные,
		// чем пустой экран.
		m.lastErr = err.Error()
		m.scheduleRefreshLocked()
		return fmt.Errorf("sync: load incidents: %w", err)
	}

	fresh := m.setCollectionLocked(models.SortByPriority(incidents))
	m.lastFetchedAt = time.Now()
	m.lastErr = ""
	m.scheduleRefreshLocked()

	m.logger.WithFields(logrus.Fields{
		"component": "sync",
		"count":     len(incidents),
		"new":       len(fresh),
		"silent":    opts.Silent,
	}).Debug("Incident collection loaded")

	m.notifyNew(fresh)
	return nil
}

// MergeIncident вливает один инцидент в коллекцию: запись с совпадающим id
// заменяется пополненным снимком, новая добавляется и коллекция
// пересортировывается. Слияние идемпотентно - повторное применение того же
// снимка ничего не меняет. Тот же снимок проталкивается в кэш репозитория,
// чтобы потребители, читающие кэш напрямую, видели то же состояние.
func (m *Manager) MergeIncident(incoming models.Incident) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	merged := incoming
	next := make([]models.Incident, len(m.incidents))
	copy(next, m.incidents)

	found := false
	for i := range next {
		if next[i].ID == incoming.ID {
			merged = overlayIncident(next[i], incoming)
			next[i] = merged
			found = true
			break
		}
	}
	if !found {
		next = append([]models.Incident{incoming}, next...)
	}

	fresh := m.setCollectionLocked(models.SortByPriority(next))
	m.scheduleRefreshLocked()
	m.mu.Unlock()

	m.repo.MergeOne(merged)
	m.notifyNew(fresh)
}

// Snapshot возвращает копию текущей коллекции
func (m *Manager) Snapshot() []models.Incident {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]models.Incident, len(m.incidents))
	copy(snapshot, m.incidents)
	return snapshot
}

// LastFetchedAt возвращает время последней успешной загрузки с сервера
func (m *Manager) LastFetchedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFetchedAt
}

// LastError возвращает сообщение последней ошибки загрузки для отображения;
// пустая строка - ошибок нет
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Clear опустошает коллекцию и кэш. Вызывается при потере аутентификации:
// устаревшие данные не должны достаться другой сессии.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.incidents = nil
	m.knownIDs = make(map[int64]struct{})
	m.lastFetchedAt = time.Time{}
	m.lastErr = ""
	m.mu.Unlock()

	m.repo.ClearCache()
}

// Close останавливает таймер и подписку и очищает состояние.
// После Close менеджер не используется.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}
	if m.subscriber != nil {
		if err := m.subscriber.Close(); err != nil {
			m.logger.WithError(err).Warn("Failed to close incidents subscription")
		}
	}
	m.wg.Wait()
	m.Clear()
}

// consumeEvents потребляет realtime-события по одному, переподключаясь
// после обрыва. Пока подписки нет, согласованность обеспечивает опрос.
func (m *Manager) consumeEvents() {
	defer m.wg.Done()

	for {
		events, err := m.subscriber.Subscribe(m.runCtx)
		if err != nil {
			m.logger.WithError(err).Error("Incidents subscription failed, polling remains active")
		} else {
			for event := range events {
				m.MergeIncident(event.Incident)
			}
			if m.runCtx.Err() == nil {
				m.logger.Warn("Incidents subscription closed, resubscribing")
			}
		}

		select {
		case <-m.runCtx.Done():
			return
		case <-time.After(m.opts.RefreshInterval):
		}
	}
}

// setCollectionLocked публикует новую коллекцию и возвращает инциденты,
// чьи id встречены впервые. Вызывается под mu.
func (m *Manager) setCollectionLocked(sorted []models.Incident) []models.Incident {
	var fresh []models.Incident
	for _, inc := range sorted {
		if _, known := m.knownIDs[inc.ID]; !known {
			m.knownIDs[inc.ID] = struct{}{}
			fresh = append(fresh, inc)
		}
	}
	m.incidents = sorted
	return fresh
}

// scheduleRefreshLocked перевзводит одноразовый страховочный таймер.
// Вызывается под mu после каждого успешного слияния или загрузки.
func (m *Manager) scheduleRefreshLocked() {
	if m.closed {
		return
	}
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
	}
	m.refreshTimer = time.AfterFunc(m.opts.RefreshInterval, func() {
		ctx := m.runCtx
		if ctx == nil {
			ctx = context.Background()
		}
		if err := m.Load(ctx, LoadOptions{Silent: true}); err != nil {
			m.logger.WithError(err).Warn("Fallback incident refresh failed")
		}
	})
}

// notifyNew уведомляет наблюдателей о впервые увиденных инцидентах
func (m *Manager) notifyNew(fresh []models.Incident) {
	if len(fresh) == 0 || len(m.onNewIncident) == 0 {
		return
	}
	for _, inc := range fresh {
		for _, fn := range m.onNewIncident {
			go fn(inc)
		}
	}
}

// overlayIncident накладывает свежий снимок на сохраненный: непустые поля
// снимка побеждают, опущенные - сохраняют прежнее значение. Массивы не
// реконсилируются поэлементно: присланный массив заменяет старый целиком,
// отсутствующий - оставляет прежний.
func overlayIncident(old, incoming models.Incident) models.Incident {
	merged := incoming

	if merged.Type == "" {
		merged.Type = old.Type
	}
	if merged.Location == "" {
		merged.Location = old.Location
	}
	if merged.Description == "" {
		merged.Description = old.Description
	}
	if merged.Status == "" {
		merged.Status = old.Status
	}
	if merged.ReportedAt.IsZero() {
		merged.ReportedAt = old.ReportedAt
	}
	if merged.Lat == nil {
		merged.Lat = old.Lat
	}
	if merged.Lng == nil {
		merged.Lng = old.Lng
	}
	if merged.RespondersRequired == 0 {
		merged.RespondersRequired = old.RespondersRequired
	}
	if merged.Assignments == nil {
		merged.Assignments = old.Assignments
	}
	if merged.History == nil {
		merged.History = old.History
	}
	return merged
}
