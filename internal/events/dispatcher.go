// internal/events/dispatcher.go
package events

import (
	"context"
	"sync"
	"time"

	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/sirupsen/logrus"
)

// Dispatcher decouples request handling from the event sink: Dispatch only enqueues,
// a single worker goroutine does the network I/O.
type Dispatcher struct {
	pub     Publisher
	logger  logrus.FieldLogger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	events chan models.MatchEvent
	done   chan struct{}
}

// NewDispatcher starts the worker. buffer bounds how many events may wait for the sink.
func NewDispatcher(pub Publisher, buffer int, logger logrus.FieldLogger) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	d := &Dispatcher{
		pub:     pub,
		logger:  logger,
		timeout: 5 * time.Second,
		events:  make(chan models.MatchEvent, buffer),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch queues an event for m. It never blocks; when the buffer is full the event is dropped.
func (d *Dispatcher) Dispatch(m models.Match) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	select {
	case d.events <- NewMatchEvent(m):
		return true
	default:
		d.logger.WithField("match_id", m.ID).Warn("match event dropped, dispatcher buffer full")
		return false
	}
}

// Close stops accepting events, flushes what is buffered and closes the publisher.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	<-d.done
	return d.pub.Close()
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.pub.Publish(ctx, ev)
		cancel()
		if err != nil {
			d.logger.WithFields(logrus.Fields{
				"match_id": ev.MatchID,
				"error":    err,
			}).Error("failed to publish match event")
		}
	}
}
