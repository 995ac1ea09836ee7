package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisSubscriber слушает канал инцидентов через Redis Pub/Sub
type RedisSubscriber struct {
	client  *redis.Client
	channel string
	logger  *logrus.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
}

// NewRedisSubscriber создает подписчика на указанный канал.
// Пустое имя канала заменяется значением Channel.
func NewRedisSubscriber(client *redis.Client, channel string, logger *logrus.Logger) *RedisSubscriber {
	if channel == "" {
		channel = Channel
	}
	return &RedisSubscriber{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Subscribe присоединяется к каналу и начинает доставку событий.
// Предыдущая подписка, если была, закрывается до открытия новой.
func (s *RedisSubscriber) Subscribe(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close previous incidents subscription")
		}
		s.pubsub = nil
	}

	pubsub := s.client.Subscribe(ctx, s.channel)
	s.pubsub = pubsub
	s.mu.Unlock()

	// Receive подтверждает подписку; без него ошибка соединения всплыла бы
	// только при первом сообщении.
	if _, err := pubsub.Receive(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("realtime: subscribe to %q: %w", s.channel, err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				event, ok := decodeEvent([]byte(msg.Payload), s.logger)
				if !ok {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	s.logger.WithField("channel", s.channel).Info("Subscribed to incidents channel")
	return events, nil
}

// Close отписывается от канала
func (s *RedisSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pubsub == nil {
		return nil
	}
	err := s.pubsub.Close()
	s.pubsub = nil
	return err
}
