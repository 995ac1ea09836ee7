// Package realtime - подписка на широковещательный канал изменений инцидентов.
// Потребитель получает события через канал и не зависит от транспорта:
// Redis Pub/Sub и Kafka реализуют один и тот же контракт.
package realtime

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/kalinga-response/incident-core/internal/models"
)

// Channel - логическое имя разделяемого канала изменений инцидентов
const Channel = "incidents"

// Event - одно событие "инцидент изменился" с полным снимком инцидента
type Event struct {
	Incident models.Incident `json:"incident"`
}

// Subscriber - источник событий изменения инцидентов.
// Subscribe возвращает канал, закрываемый при обрыве соединения или отмене
// контекста; потеря подписки не фатальна - страховкой остается опрос.
// Повторный Subscribe сначала гасит предыдущую подписку, двойных подписок
// не бывает.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
	Close() error
}

// decodeEvent разбирает полезную нагрузку сообщения канала.
// Сообщения без инцидента отбрасываются.
func decodeEvent(payload []byte, log *logrus.Logger) (Event, bool) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		log.WithError(err).Warn("Dropping malformed incident event")
		return Event{}, false
	}
	if event.Incident.ID == 0 {
		log.Warn("Dropping incident event without incident payload")
		return Event{}, false
	}
	return event, true
}
