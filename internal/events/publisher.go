// internal/events/publisher.go
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/jason-s-yu/pairup/internal/config"
	"github.com/jason-s-yu/pairup/internal/models"
)

// Publisher ships match events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, ev models.MatchEvent) error
	Close() error
}

// NewMatchEvent stamps m with the current time.
func NewMatchEvent(m models.Match) models.MatchEvent {
	return models.MatchEvent{
		MatchID:   m.ID,
		Player1:   m.Player1,
		Player2:   m.Player2,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewPublisher builds the publisher selected by cfg.EventSink. It returns a nil Publisher
// when publishing is disabled.
func NewPublisher(cfg config.Config) (Publisher, error) {
	switch cfg.EventSink {
	case config.SinkNone, "":
		return nil, nil
	case config.SinkRedis:
		rdb, err := ConnectRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisPublisher(rdb, cfg.MatchEventQueue), nil
	case config.SinkKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	}
	return nil, fmt.Errorf("unknown MATCH_EVENT_SINK %q", cfg.EventSink)
}
