// Package dispatch - движок авто-диспетчеризации: решает, когда попытаться
// автоматически закрепить за респондентом ближайший подходящий инцидент,
// и защищает от конкурентных попыток и двойных назначений.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kalinga-response/incident-core/internal/client"
	"github.com/kalinga-response/incident-core/internal/models"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

// State - состояние движка для одной сессии респондента
type State string

const (
	StateIdle       State = "idle"
	StateEvaluating State = "evaluating"
	StateClaiming   State = "claiming"
	StateAssigned   State = "assigned"
)

// Outcome - исход одной попытки захвата
type Outcome string

const (
	OutcomeAssigned     Outcome = "assigned"
	OutcomeNoneEligible Outcome = "none_eligible"
	OutcomeConflict     Outcome = "conflict"
	OutcomeError        Outcome = "error"
)

// Result - итог последней попытки, отдается локальному API
type Result struct {
	Outcome    Outcome          `json:"outcome"`
	IncidentID int64            `json:"incident_id,omitempty"`
	Incident   *models.Incident `json:"incident,omitempty"`
	Message    string           `json:"message,omitempty"`
	At         time.Time        `json:"at"`
}

// Attempt - запись о попытке захвата для аудиторского следа
type Attempt struct {
	ResponderID int64
	Location    models.UserLocation
	Outcome     Outcome
	IncidentID  int64
	Message     string
	At          time.Time
}

// NearestAssigner - мутация assign-nearest репозитория
type NearestAssigner interface {
	AssignNearest(ctx context.Context, loc models.UserLocation, responderID int64) (*models.Incident, error)
}

// CollectionView - снимок коллекции менеджера синхронизации и обратное
// вливание успешно захваченного инцидента
type CollectionView interface {
	Snapshot() []models.Incident
	MergeIncident(incident models.Incident)
}

// LocationSource - последний фикс позиции респондента
type LocationSource interface {
	Current() (models.UserLocation, bool)
}

// Recorder принимает записи аудиторского следа; ошибки записи не должны
// влиять на диспетчеризацию
type Recorder interface {
	Record(ctx context.Context, attempt Attempt)
}

// Engine - машина состояний idle -> evaluating -> claiming ->
// (assigned | idle). Все ограждающие флаги - приватные поля движка,
// наружу они не мутируются.
type Engine struct {
	responderID int64
	repo        NearestAssigner
	collection  CollectionView
	location    LocationSource
	logger      *logrus.Logger
	recorder    Recorder // nil - аудит выключен

	mu         sync.Mutex
	state      State
	enabled    bool
	inFlight   bool
	lastResult *Result
}

// New создает движок для одного респондента. enabled задает исходное
// положение тумблера авто-диспетчеризации.
func New(responderID int64, repo NearestAssigner, collection CollectionView, location LocationSource, logger *logrus.Logger, recorder Recorder, enabled bool) *Engine {
	return &Engine{
		responderID: responderID,
		repo:        repo,
		collection:  collection,
		location:    location,
		logger:      logger,
		recorder:    recorder,
		state:       StateIdle,
		enabled:     enabled,
	}
}

// Consider - точка входа: вызывается для каждого впервые увиденного
// инцидента. Попытка захвата предпринимается, только если инцидент в
// исходном статусе reported, авто-диспетчеризация включена, известна
// позиция, у респондента нет активного назначения и нет попытки в полете.
// Ошибки наружу не выходят: движок работает без присмотра - он логирует
// и возвращается в idle.
func (e *Engine) Consider(ctx context.Context, incident models.Incident) {
	if incident.Status != models.StatusReported {
		return
	}

	e.mu.Lock()
	if !e.enabled {
		e.mu.Unlock()
		return
	}

	// Захваченный ранее инцидент мог закрыться - тогда assigned отпускается.
	if e.state == StateAssigned && e.activeAssignment() == nil {
		e.state = StateIdle
	}

	// Одна попытка в полете на респондента, не на инцидент.
	if e.inFlight {
		e.mu.Unlock()
		return
	}
	e.inFlight = true
	e.state = StateEvaluating
	e.mu.Unlock()

	// Гард снимается в любом исходе, включая панику в недрах HTTP-стека:
	// навсегда замереть в claiming движок не должен.
	defer func() {
		e.mu.Lock()
		e.inFlight = false
		if e.state != StateAssigned {
			e.state = StateIdle
		}
		e.mu.Unlock()
	}()

	log := e.logger.WithFields(logrus.Fields{
		"component":    "dispatch",
		"responder_id": e.responderID,
		"incident_id":  incident.ID,
	})

	loc, hasFix := e.location.Current()
	if !hasFix {
		log.Debug("Auto-dispatch skipped: no location fix yet")
		return
	}

	if active := e.activeAssignment(); active != nil {
		log.WithField("active_incident_id", active.ID).Debug("Auto-dispatch skipped: responder already assigned")
		return
	}

	e.mu.Lock()
	e.state = StateClaiming
	e.mu.Unlock()

	assigned, err := e.repo.AssignNearest(ctx, loc, e.responderID)
	at := time.Now()

	switch {
	case err == nil:
		e.collection.MergeIncident(*assigned)
		e.finish(ctx, Result{Outcome: OutcomeAssigned, IncidentID: assigned.ID, Incident: assigned, At: at}, loc, StateAssigned)
		log.WithField("assigned_incident_id", assigned.ID).Info("Auto-dispatch claimed nearest incident")

	case errors.Is(err, client.ErrNoEligibleIncident):
		// Штатный пустой исход: предложить нечего, ждем следующего события.
		e.finish(ctx, Result{Outcome: OutcomeNoneEligible, At: at}, loc, StateIdle)
		log.Debug("Auto-dispatch found no eligible incident")

	case errors.Is(err, client.ErrConflict):
		e.finish(ctx, Result{Outcome: OutcomeConflict, Message: err.Error(), At: at}, loc, StateIdle)
		log.Info("Auto-dispatch lost claim race: incident already taken")

	default:
		e.finish(ctx, Result{Outcome: OutcomeError, Message: err.Error(), At: at}, loc, StateIdle)
		log.WithError(err).Error("Auto-dispatch claim attempt failed")
	}
}

// Enable включает авто-диспетчеризацию
func (e *Engine) Enable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = true
}

// Disable выключает авто-диспетчеризацию; попытка в полете довершается
func (e *Engine) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = false
}

// Enabled возвращает положение тумблера
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// State возвращает текущее состояние машины
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LastResult возвращает итог последней попытки или nil
func (e *Engine) LastResult() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastResult
}

// ActiveAssignment возвращает нетерминальный инцидент, на котором у
// респондента есть активное назначение, или nil
func (e *Engine) ActiveAssignment() *models.Incident {
	return e.activeAssignment()
}

func (e *Engine) activeAssignment() *models.Incident {
	for _, inc := range e.collection.Snapshot() {
		if inc.HasActiveAssignmentFor(e.responderID) {
			found := inc
			return &found
		}
	}
	return nil
}

// finish фиксирует итог попытки и пишет аудит
func (e *Engine) finish(ctx context.Context, result Result, loc models.UserLocation, state State) {
	e.mu.Lock()
	e.lastResult = &result
	e.state = state
	e.mu.Unlock()

	if e.recorder != nil {
		e.recorder.Record(ctx, Attempt{
			ResponderID: e.responderID,
			Location:    loc,
			Outcome:     result.Outcome,
			IncidentID:  result.IncidentID,
			Message:     result.Message,
			At:          result.At,
		})
	}
}
