package realtime

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// KafkaSubscriber слушает топик инцидентов через Kafka - для развертываний,
// где сервер координации публикует события в брокер, а не в Redis
type KafkaSubscriber struct {
	brokers []string
	topic   string
	groupID string
	logger  *logrus.Logger

	mu     sync.Mutex
	reader *kafka.Reader
}

// NewKafkaSubscriber создает подписчика на топик инцидентов.
// groupID должен быть уникален на агента: каждый агент читает весь поток.
func NewKafkaSubscriber(brokers []string, topic, groupID string, logger *logrus.Logger) *KafkaSubscriber {
	if topic == "" {
		topic = Channel
	}
	return &KafkaSubscriber{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		logger:  logger,
	}
}

// Subscribe открывает reader и начинает доставку событий.
// Предыдущий reader, если был, закрывается до открытия нового.
func (s *KafkaSubscriber) Subscribe(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close previous incidents reader")
		}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        s.brokers,
		Topic:          s.topic,
		GroupID:        s.groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		CommitInterval: time.Second,
	})
	s.reader = reader
	s.mu.Unlock()

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
					s.logger.WithError(err).Error("Incidents topic read failed")
				}
				return
			}
			event, ok := decodeEvent(msg.Value, s.logger)
			if !ok {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	s.logger.WithFields(logrus.Fields{"topic": s.topic, "group_id": s.groupID}).Info("Subscribed to incidents topic")
	return events, nil
}

// Close закрывает reader
func (s *KafkaSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}
