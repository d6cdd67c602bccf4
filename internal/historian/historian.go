// internal/historian/historian.go
package historian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/pairup/internal/database"
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// popTimeout bounds each blocking pop so flushes and shutdown are noticed promptly.
const popTimeout = time.Second

// shutdownFlushTimeout bounds the last flush after Run's context is cancelled.
const shutdownFlushTimeout = 5 * time.Second

// Source yields raw match event payloads. ok is false when the wait timed out empty.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (payload []byte, ok bool, err error)
}

// Sink archives a batch of match events.
type Sink interface {
	Archive(ctx context.Context, evs []models.MatchEvent) error
}

// RedisSource pops from the list the server's RedisPublisher pushes to.
type RedisSource struct {
	Client *redis.Client
	Queue  string
}

func (s RedisSource) Pop(ctx context.Context, timeout time.Duration) ([]byte, bool, error) {
	res, err := s.Client.BLPop(ctx, timeout, s.Queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	// res[0] is the list name and res[1] the payload.
	if len(res) < 2 {
		return nil, false, nil
	}
	return []byte(res[1]), true, nil
}

// PostgresSink writes batches into the matches table.
type PostgresSink struct {
	Pool *pgxpool.Pool
}

func (s PostgresSink) Archive(ctx context.Context, evs []models.MatchEvent) error {
	return database.InsertMatches(ctx, s.Pool, evs)
}

// Service drains match events from a Source and archives them to a Sink in batches.
type Service struct {
	src        Source
	sink       Sink
	batchSize  int
	flushDelay time.Duration
	logger     logrus.FieldLogger

	batch     []models.MatchEvent
	lastFlush time.Time

	shutdownTimeout time.Duration
}

func NewService(src Source, sink Sink, batchSize int, flushDelay time.Duration, logger logrus.FieldLogger) *Service {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Service{
		src:        src,
		sink:       sink,
		batchSize:  batchSize,
		flushDelay: flushDelay,
		logger:     logger,
		batch:      make([]models.MatchEvent, 0, batchSize),

		shutdownTimeout: shutdownFlushTimeout,
	}
}

// Run pops events until ctx is cancelled, then flushes whatever is still batched.
func (s *Service) Run(ctx context.Context) error {
	s.lastFlush = time.Now()
	s.logger.Info("historian started")

	for {
		if ctx.Err() != nil {
			flushCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			s.flush(flushCtx)
			cancel()
			s.logger.Info("historian shutting down")
			return nil
		}

		payload, ok, err := s.src.Pop(ctx, popTimeout)
		switch {
		case err != nil && ctx.Err() == nil:
			s.logger.WithError(err).Error("pop match event")
			// back off a little so a dead source does not spin
			select {
			case <-ctx.Done():
			case <-time.After(popTimeout):
			}
		case ok:
			s.handlePayload(ctx, payload)
		}

		if len(s.batch) > 0 && time.Since(s.lastFlush) >= s.flushDelay {
			s.flush(ctx)
		}
	}
}

func (s *Service) handlePayload(ctx context.Context, payload []byte) {
	ev, err := DecodeEvent(payload)
	if err != nil {
		s.logger.WithError(err).Warn("invalid match event")
		return
	}
	s.batch = append(s.batch, ev)
	if len(s.batch) >= s.batchSize {
		s.flush(ctx)
	}
}

// flush archives the batch. On failure the batch is kept for the next attempt, up to a limit.
func (s *Service) flush(ctx context.Context) {
	s.lastFlush = time.Now()
	if len(s.batch) == 0 {
		return
	}

	if err := s.sink.Archive(ctx, s.batch); err != nil {
		s.logger.WithError(err).WithField("pending", len(s.batch)).Error("archive batch")
		if limit := s.batchSize * 10; len(s.batch) > limit {
			dropped := len(s.batch) - limit
			s.batch = append(s.batch[:0], s.batch[dropped:]...)
			s.logger.WithField("dropped", dropped).Warn("archive backlog full, dropping oldest match events")
		}
		return
	}

	s.logger.Infof("Flushed %d matches to DB.", len(s.batch))
	s.batch = s.batch[:0]
}

// Pending returns how many events are waiting to be archived.
func (s *Service) Pending() int {
	return len(s.batch)
}

// DecodeEvent parses a payload pushed by the server and rejects incomplete records.
func DecodeEvent(payload []byte) (models.MatchEvent, error) {
	var ev models.MatchEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return models.MatchEvent{}, fmt.Errorf("decode match event: %w", err)
	}
	if ev.MatchID == uuid.Nil || ev.Player1 == uuid.Nil || ev.Player2 == uuid.Nil {
		return models.MatchEvent{}, fmt.Errorf("match event missing ids: %s", payload)
	}
	return ev, nil
}
