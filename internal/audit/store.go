// Package audit - аудиторский след попыток авто-захвата в Postgres.
// Опциональный: без настроенной БД агент работает, движок пишет в nil.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/kalinga-response/incident-core/internal/dispatch"
)

// Record - одна строка следа
type Record struct {
	ID          uuid.UUID        `json:"id"`
	ResponderID int64            `json:"responder_id"`
	Lat         float64          `json:"lat"`
	Lng         float64          `json:"lng"`
	Outcome     dispatch.Outcome `json:"outcome"`
	IncidentID  *int64           `json:"incident_id,omitempty"`
	Message     string           `json:"message,omitempty"`
	AttemptedAt time.Time        `json:"attempted_at"`
}

// Store пишет и читает след попыток
type Store struct {
	db     *pgxpool.Pool
	logger *logrus.Logger
}

// NewStore создает хранилище следа
func NewStore(db *pgxpool.Pool, logger *logrus.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Record сохраняет попытку. Ошибки записи только логируются: аудит не имеет
// права валить путь диспетчеризации.
func (s *Store) Record(ctx context.Context, attempt dispatch.Attempt) {
	query := `
		INSERT INTO claim_attempts (id, responder_id, lat, lng, outcome, incident_id, message, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	var incidentID *int64
	if attempt.IncidentID != 0 {
		incidentID = &attempt.IncidentID
	}

	_, err := s.db.Exec(ctx, query,
		uuid.New(),
		attempt.ResponderID,
		attempt.Location.Lat,
		attempt.Location.Lng,
		string(attempt.Outcome),
		incidentID,
		attempt.Message,
		attempt.At,
	)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"responder_id": attempt.ResponderID,
			"outcome":      attempt.Outcome,
		}).Error("Failed to record claim attempt")
	}
}

// Recent возвращает последние попытки респондента, новые первыми
func (s *Store) Recent(ctx context.Context, responderID int64, limit int) ([]Record, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, responder_id, lat, lng, outcome, incident_id, message, attempted_at
		FROM claim_attempts
		WHERE responder_id = $1
		ORDER BY attempted_at DESC
		LIMIT $2;
	`
	rows, err := s.db.Query(ctx, query, responderID, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: list claim attempts: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var outcome string
		err := rows.Scan(
			&rec.ID,
			&rec.ResponderID,
			&rec.Lat,
			&rec.Lng,
			&outcome,
			&rec.IncidentID,
			&rec.Message,
			&rec.AttemptedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("audit: scan claim attempt row: %w", err)
		}
		rec.Outcome = dispatch.Outcome(outcome)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: iterate claim attempts: %w", err)
	}
	return records, nil
}
