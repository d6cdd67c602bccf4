// internal/queue/queue.go
package queue

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrUnknownProfile is returned when a join references an id that was never registered.
var ErrUnknownProfile = errors.New("unknown profile")

// ErrNotQueued is returned when leaving with an id that is not currently waiting.
var ErrNotQueued = errors.New("profile not in queue")

// Outcome describes what a JoinOrPair call did.
type Outcome int

const (
	// Enqueued means the wait list was empty and the profile now waits in it.
	Enqueued Outcome = iota
	// AlreadyQueued means the profile was already waiting; nothing changed.
	AlreadyQueued
	// Paired means a waiting opponent was removed and a match was recorded.
	Paired
)

func (o Outcome) String() string {
	switch o {
	case Enqueued:
		return "enqueued"
	case AlreadyQueued:
		return "already_queued"
	case Paired:
		return "paired"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// JoinResult is returned by JoinOrPair. Match is only set when Outcome is Paired.
type JoinResult struct {
	Outcome Outcome
	Match   *models.Match
}

// ProfileLookup is the read-only view of the profile store the queue needs.
type ProfileLookup interface {
	Exists(id uuid.UUID) bool
}

// MatchRecorder persists a freshly created match. It must not call back into the queue.
type MatchRecorder interface {
	Record(m models.Match) error
}

// Picker returns an index in [0, n). n is always >= 1.
type Picker func(n int) int

// MatchQueue is the wait list of profiles looking for an opponent.
//
// Every mutation happens under mu, and JoinOrPair keeps mu held from the membership
// check until the new match has been recorded, so concurrent callers can never pick the
// same opponent or observe a half-applied pairing.
type MatchQueue struct {
	mu      sync.Mutex
	waiting []uuid.UUID

	profiles ProfileLookup
	matches  MatchRecorder
	pick     Picker
	logger   logrus.FieldLogger

	// OnPair, if set, is called with every new match after the queue lock is released.
	// Assign it before the queue is shared between goroutines.
	OnPair func(m models.Match)
}

// Option customises a MatchQueue at construction time.
type Option func(*MatchQueue)

// WithPicker replaces the uniform random opponent picker.
func WithPicker(p Picker) Option {
	return func(q *MatchQueue) {
		q.pick = p
	}
}

// WithLogger sets the logger used for queue decisions.
func WithLogger(l logrus.FieldLogger) Option {
	return func(q *MatchQueue) {
		q.logger = l
	}
}

// NewMatchQueue returns an empty queue. Opponents are drawn with math/rand/v2, whose
// top-level generator is seeded unpredictably at process start.
func NewMatchQueue(profiles ProfileLookup, matches MatchRecorder, opts ...Option) *MatchQueue {
	q := &MatchQueue{
		waiting:  make([]uuid.UUID, 0),
		profiles: profiles,
		matches:  matches,
		pick:     rand.Intn,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// JoinOrPair either pairs profileID with a randomly chosen waiting profile or appends it
// to the wait list. Joining while already waiting is a no-op reported as AlreadyQueued.
func (q *MatchQueue) JoinOrPair(profileID uuid.UUID) (JoinResult, error) {
	// profiles are never removed, so this check does not need the queue lock
	if !q.profiles.Exists(profileID) {
		return JoinResult{}, fmt.Errorf("join %s: %w", profileID, ErrUnknownProfile)
	}

	q.mu.Lock()

	if q.indexOfUnsafe(profileID) >= 0 {
		q.mu.Unlock()
		q.logger.WithField("profile_id", profileID).Debug("join ignored, already queued")
		return JoinResult{Outcome: AlreadyQueued}, nil
	}

	if len(q.waiting) == 0 {
		q.waiting = append(q.waiting, profileID)
		q.mu.Unlock()
		q.logger.WithField("profile_id", profileID).Debug("enqueued")
		return JoinResult{Outcome: Enqueued}, nil
	}

	idx := q.pick(len(q.waiting))
	if idx < 0 || idx >= len(q.waiting) {
		n := len(q.waiting)
		q.mu.Unlock()
		return JoinResult{}, fmt.Errorf("picker returned index %d for %d waiting profiles", idx, n)
	}
	opponent := q.waiting[idx]

	matchID, err := uuid.NewRandom()
	if err != nil {
		q.mu.Unlock()
		return JoinResult{}, fmt.Errorf("failed to generate match id: %w", err)
	}
	m := models.Match{
		ID:      matchID,
		Player1: opponent,
		Player2: profileID,
	}

	// record before removing so a failed write leaves the wait list untouched
	if err := q.matches.Record(m); err != nil {
		q.mu.Unlock()
		return JoinResult{}, fmt.Errorf("record match: %w", err)
	}
	q.removeAtUnsafe(idx)
	onPair := q.OnPair
	q.mu.Unlock()

	q.logger.WithFields(logrus.Fields{
		"match_id": m.ID,
		"player1":  m.Player1,
		"player2":  m.Player2,
	}).Info("match created")

	if onPair != nil {
		onPair(m)
	}
	return JoinResult{Outcome: Paired, Match: &m}, nil
}

// Leave removes profileID from the wait list, or returns ErrNotQueued.
func (q *MatchQueue) Leave(profileID uuid.UUID) error {
	q.mu.Lock()
	idx := q.indexOfUnsafe(profileID)
	if idx < 0 {
		q.mu.Unlock()
		return fmt.Errorf("leave %s: %w", profileID, ErrNotQueued)
	}
	q.removeAtUnsafe(idx)
	q.mu.Unlock()

	q.logger.WithField("profile_id", profileID).Debug("left queue")
	return nil
}

// Snapshot returns a copy of the wait list, oldest entry first. Pairing is random, so the
// order says nothing about who will be picked next.
func (q *MatchQueue) Snapshot() []uuid.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]uuid.UUID, len(q.waiting))
	copy(out, q.waiting)
	return out
}

// Contains reports whether profileID is currently waiting.
func (q *MatchQueue) Contains(profileID uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.indexOfUnsafe(profileID) >= 0
}

// Len returns the number of waiting profiles.
func (q *MatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

// indexOfUnsafe returns the position of id in the wait list or -1. Assumes lock is held.
func (q *MatchQueue) indexOfUnsafe(id uuid.UUID) int {
	for i, w := range q.waiting {
		if w == id {
			return i
		}
	}
	return -1
}

// removeAtUnsafe deletes the entry at idx keeping insertion order. Assumes lock is held.
func (q *MatchQueue) removeAtUnsafe(idx int) {
	q.waiting = append(q.waiting[:idx], q.waiting[idx+1:]...)
}
