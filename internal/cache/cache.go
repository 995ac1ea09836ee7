// Package cache - обобщенный in-memory кэш с TTL и режимом чтения
// stale-while-revalidate. Фундамент для репозитория инцидентов: данные
// инцидентов слишком динамичны для внешнего кэша, а контракт Peek/Get
// требует синхронного чтения без сети.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// staleFactor - просроченная запись остается пригодной для SWR-чтения,
// пока ее возраст не превысит TTL в staleFactor раз
const staleFactor = 5

// Entry - одна запись кэша
type Entry[T any] struct {
	Data     T
	StoredAt time.Time
	TTL      time.Duration
}

// Fresh сообщает, не истек ли TTL записи
func (e *Entry[T]) Fresh(now time.Time) bool {
	return now.Sub(e.StoredAt) < e.TTL
}

// Usable сообщает, пригодна ли просроченная запись для выдачи в режиме SWR
func (e *Entry[T]) Usable(now time.Time) bool {
	return now.Sub(e.StoredAt) < e.TTL*staleFactor
}

// FetchOptions управляет поведением Fetch
type FetchOptions struct {
	TTL                  time.Duration
	ForceRefresh         bool
	StaleWhileRevalidate bool
}

// Loader загружает значение при промахе кэша
type Loader[T any] func(ctx context.Context) (T, error)

// flight - одна выполняющаяся загрузка; конкурентные вызовы по одному ключу
// разделяют ее результат
type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Cache - потокобезопасный keyed-кэш со строковыми ключами
type Cache[T any] struct {
	mu       sync.Mutex
	entries  map[string]*Entry[T]
	inflight map[string]*flight[T]
	logger   *logrus.Logger
	now      func() time.Time // подменяется в тестах
}

// New создает пустой кэш
func New[T any](logger *logrus.Logger) *Cache[T] {
	return &Cache[T]{
		entries:  make(map[string]*Entry[T]),
		inflight: make(map[string]*flight[T]),
		logger:   logger,
		now:      time.Now,
	}
}

// Get возвращает запись кэша или nil при промахе. Просроченные, но еще
// пригодные записи тоже возвращаются - решение об их использовании
// принимает вызывающий.
func (c *Cache[T]) Get(key string) *Entry[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || !entry.Usable(c.now()) {
		return nil
	}
	return entry
}

// Set сохраняет значение с указанным TTL
func (c *Cache[T]) Set(key string, data T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &Entry[T]{Data: data, StoredAt: c.now(), TTL: ttl}
}

// Patch изменяет данные существующей записи, не трогая ее возраст и TTL.
// Используется для вливания realtime-обновлений в закэшированный список:
// запись остается той же давности, меняется только содержимое.
// При отсутствии пригодной записи ничего не происходит.
func (c *Cache[T]) Patch(key string, apply func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || !entry.Usable(c.now()) {
		return
	}
	entry.Data = apply(entry.Data)
}

// Invalidate удаляет запись; следующий Fetch по этому ключу пойдет в загрузчик
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix удаляет все записи с указанным префиксом ключа
func (c *Cache[T]) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Clear полностью очищает кэш
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry[T])
}

// Fetch возвращает значение по ключу, следуя правилам кэширования:
//   - свежая запись возвращается сразу, загрузчик не вызывается;
//   - просроченная запись при StaleWhileRevalidate возвращается сразу,
//     а загрузчик запускается в фоне (не более одного на ключ); ошибка
//     фоновой загрузки только логируется - вызывающий уже получил значение;
//   - при промахе или ForceRefresh загрузчик выполняется синхронно,
//     конкурентные вызовы по одному ключу разделяют один запрос,
//     ошибка возвращается вызывающему.
func (c *Cache[T]) Fetch(ctx context.Context, key string, loader Loader[T], opts FetchOptions) (T, error) {
	c.mu.Lock()
	now := c.now()
	entry, ok := c.entries[key]

	if ok && !opts.ForceRefresh {
		if entry.Fresh(now) {
			c.mu.Unlock()
			return entry.Data, nil
		}
		if opts.StaleWhileRevalidate && entry.Usable(now) {
			c.revalidateLocked(key, loader, opts.TTL)
			c.mu.Unlock()
			return entry.Data, nil
		}
	}

	// Промах либо принудительное обновление: присоединяемся к выполняющейся
	// загрузке, если она есть, иначе начинаем свою.
	if fl, running := c.inflight[key]; running {
		c.mu.Unlock()
		select {
		case <-fl.done:
			return fl.val, fl.err
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}

	fl := &flight[T]{done: make(chan struct{})}
	c.inflight[key] = fl
	c.mu.Unlock()

	val, err := loader(ctx)

	c.mu.Lock()
	if err == nil {
		c.entries[key] = &Entry[T]{Data: val, StoredAt: c.now(), TTL: opts.TTL}
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	fl.val, fl.err = val, err
	close(fl.done)
	return val, err
}

// revalidateLocked запускает фоновое обновление просроченной записи.
// Вызывается под mu; на ключ допускается не более одной фоновой загрузки.
func (c *Cache[T]) revalidateLocked(key string, loader Loader[T], ttl time.Duration) {
	if _, running := c.inflight[key]; running {
		return
	}

	fl := &flight[T]{done: make(chan struct{})}
	c.inflight[key] = fl

	go func() {
		// Фоновое обновление не привязано к контексту вызывающего:
		// тот уже получил ответ и мог завершиться.
		val, err := loader(context.Background())

		c.mu.Lock()
		if err == nil {
			c.entries[key] = &Entry[T]{Data: val, StoredAt: c.now(), TTL: ttl}
		}
		delete(c.inflight, key)
		c.mu.Unlock()

		if err != nil && c.logger != nil {
			c.logger.WithError(err).WithField("cache_key", key).Warn("Background cache refresh failed")
		}

		fl.val, fl.err = val, err
		close(fl.done)
	}()
}
