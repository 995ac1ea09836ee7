// Package location - последняя известная позиция респондента.
// Источник фиксов внешний (geolocation watch на устройстве, GPS-трекер);
// ядру важно лишь, есть ли хоть один фикс и какой он.
package location

import (
	"context"
	"sync"
	"time"

	"github.com/kalinga-response/incident-core/internal/models"
)

// Watcher хранит последний фикс. Пока фикс не поступил (геолокация
// недоступна или запрещена), Current возвращает false - авто-диспетчеризация
// в этом случае просто не срабатывает.
type Watcher struct {
	mu        sync.RWMutex
	current   models.UserLocation
	hasFix    bool
	updatedAt time.Time

	stop   context.CancelFunc
	stopMu sync.Mutex
}

// NewWatcher создает пустой watcher без фикса
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Update принимает очередной фикс
func (w *Watcher) Update(loc models.UserLocation) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = loc
	w.hasFix = true
	w.updatedAt = time.Now()
}

// Current возвращает последний фикс; false - фиксов еще не было
func (w *Watcher) Current() (models.UserLocation, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current, w.hasFix
}

// UpdatedAt возвращает время последнего фикса (нулевое - фиксов не было)
func (w *Watcher) UpdatedAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.updatedAt
}

// Feed потребляет фиксы из канала до его закрытия или Stop.
// Удобен, когда источник фиксов - горутина-транспорт, а не HTTP-вызовы.
func (w *Watcher) Feed(ctx context.Context, updates <-chan models.UserLocation) {
	ctx, cancel := context.WithCancel(ctx)
	w.stopMu.Lock()
	w.stop = cancel
	w.stopMu.Unlock()

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case loc, ok := <-updates:
				if !ok {
					return
				}
				w.Update(loc)
			}
		}
	}()
}

// Stop прекращает потребление фиксов, запущенное Feed
func (w *Watcher) Stop() {
	w.stopMu.Lock()
	defer w.stopMu.Unlock()
	if w.stop != nil {
		w.stop()
		w.stop = nil
	}
}
