// internal/queue/queue_test.go
package queue

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/jason-s-yu/pairup/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQueue wires a queue to fresh in-memory stores with n registered profiles.
func setupQueue(t *testing.T, n int, opts ...Option) (*MatchQueue, *store.MatchStore, []uuid.UUID) {
	t.Helper()
	profiles := store.NewProfileStore()
	matches := store.NewMatchStore()

	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		p, err := profiles.Register("player")
		require.NoError(t, err)
		ids[i] = p.ID
	}

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewMatchQueue(profiles, matches, opts...), matches, ids
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// failingRecorder refuses every match.
type failingRecorder struct{}

func (failingRecorder) Record(models.Match) error { return errors.New("disk on fire") }

// allProfiles treats every id as registered.
type allProfiles struct{}

func (allProfiles) Exists(uuid.UUID) bool { return true }

func TestJoinUnknownProfile(t *testing.T) {
	q, matches, _ := setupQueue(t, 0)

	_, err := q.JoinOrPair(uuid.New())
	require.ErrorIs(t, err, ErrUnknownProfile)
	assert.Empty(t, q.Snapshot())
	assert.Equal(t, 0, matches.Count())
}

func TestJoinIsIdempotent(t *testing.T) {
	q, _, ids := setupQueue(t, 1)
	a := ids[0]

	res, err := q.JoinOrPair(a)
	require.NoError(t, err)
	assert.Equal(t, Enqueued, res.Outcome)
	assert.Nil(t, res.Match)

	res, err = q.JoinOrPair(a)
	require.NoError(t, err)
	assert.Equal(t, AlreadyQueued, res.Outcome)
	assert.Nil(t, res.Match)

	assert.Equal(t, []uuid.UUID{a}, q.Snapshot())
}

func TestJoinPairsWithWaitingProfile(t *testing.T) {
	q, matches, ids := setupQueue(t, 2)
	a, b := ids[0], ids[1]

	_, err := q.JoinOrPair(a)
	require.NoError(t, err)

	res, err := q.JoinOrPair(b)
	require.NoError(t, err)
	require.Equal(t, Paired, res.Outcome)
	require.NotNil(t, res.Match)

	assert.ElementsMatch(t, []uuid.UUID{a, b}, []uuid.UUID{res.Match.Player1, res.Match.Player2})
	assert.Empty(t, q.Snapshot())

	stored, err := matches.Get(res.Match.ID)
	require.NoError(t, err)
	assert.Equal(t, *res.Match, stored)
}

func TestNoSelfPairing(t *testing.T) {
	q, matches, ids := setupQueue(t, 1)
	a := ids[0]

	for i := 0; i < 5; i++ {
		_, err := q.JoinOrPair(a)
		require.NoError(t, err)
	}
	require.NoError(t, q.Leave(a))
	_, err := q.JoinOrPair(a)
	require.NoError(t, err)

	assert.Equal(t, 0, matches.Count())
	assert.Equal(t, []uuid.UUID{a}, q.Snapshot())
}

func TestPickerChoosesOpponentAndKeepsOrder(t *testing.T) {
	q, _, ids := setupQueue(t, 4, WithPicker(func(n int) int {
		return 1
	}))
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	_, err := q.JoinOrPair(a)
	require.NoError(t, err)

	// a second join would pair with a, so seed the rest of the wait list directly
	q.mu.Lock()
	q.waiting = append(q.waiting, b, c)
	q.mu.Unlock()

	res, err := q.JoinOrPair(d)
	require.NoError(t, err)
	require.Equal(t, Paired, res.Outcome)
	assert.Equal(t, b, res.Match.Player1)
	assert.Equal(t, d, res.Match.Player2)
	assert.Equal(t, []uuid.UUID{a, c}, q.Snapshot())
}

func TestPickerOutOfRange(t *testing.T) {
	q, matches, ids := setupQueue(t, 2, WithPicker(func(n int) int {
		return n
	}))

	_, err := q.JoinOrPair(ids[0])
	require.NoError(t, err)
	_, err = q.JoinOrPair(ids[1])
	require.Error(t, err)

	assert.Equal(t, []uuid.UUID{ids[0]}, q.Snapshot())
	assert.Equal(t, 0, matches.Count())
}

func TestRecordFailureLeavesQueueUntouched(t *testing.T) {
	q := NewMatchQueue(allProfiles{}, failingRecorder{}, WithLogger(quietLogger()))
	a, b := uuid.New(), uuid.New()

	_, err := q.JoinOrPair(a)
	require.NoError(t, err)

	_, err = q.JoinOrPair(b)
	require.Error(t, err)
	assert.Equal(t, []uuid.UUID{a}, q.Snapshot())
}

func TestLeave(t *testing.T) {
	q, _, ids := setupQueue(t, 1)
	a := ids[0]

	err := q.Leave(a)
	require.ErrorIs(t, err, ErrNotQueued)

	_, err = q.JoinOrPair(a)
	require.NoError(t, err)
	require.NoError(t, q.Leave(a))
	assert.Empty(t, q.Snapshot())
	assert.False(t, q.Contains(a))

	res, err := q.JoinOrPair(a)
	require.NoError(t, err)
	assert.Equal(t, Enqueued, res.Outcome, "rejoining after leave must enqueue again")
}

func TestWorkedExample(t *testing.T) {
	q, matches, ids := setupQueue(t, 3)
	a, b, c := ids[0], ids[1], ids[2]

	res, err := q.JoinOrPair(a)
	require.NoError(t, err)
	assert.Equal(t, Enqueued, res.Outcome)
	assert.Equal(t, []uuid.UUID{a}, q.Snapshot())

	res, err = q.JoinOrPair(b)
	require.NoError(t, err)
	require.Equal(t, Paired, res.Outcome)
	assert.Empty(t, q.Snapshot())

	res, err = q.JoinOrPair(c)
	require.NoError(t, err)
	assert.Equal(t, Enqueued, res.Outcome)
	assert.Equal(t, []uuid.UUID{c}, q.Snapshot())

	all := matches.List()
	require.Len(t, all, 1)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, []uuid.UUID{all[0].Player1, all[0].Player2})
}

func TestOnPairRunsOutsideLock(t *testing.T) {
	q, _, ids := setupQueue(t, 2)

	var got []models.Match
	q.OnPair = func(m models.Match) {
		// would deadlock if the hook ran under the queue lock
		assert.Equal(t, 0, q.Len())
		got = append(got, m)
	}

	_, err := q.JoinOrPair(ids[0])
	require.NoError(t, err)
	res, err := q.JoinOrPair(ids[1])
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, *res.Match, got[0])
}

func TestConcurrentJoins(t *testing.T) {
	for _, n := range []int{2, 51, 200} {
		q, matches, ids := setupQueue(t, n)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for _, id := range ids {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				<-start
				_, err := q.JoinOrPair(id)
				assert.NoError(t, err)
			}(id)
		}
		close(start)
		wg.Wait()

		all := matches.List()
		require.Len(t, all, n/2, "n=%d", n)

		seen := make(map[uuid.UUID]bool, n)
		for _, m := range all {
			assert.NotEqual(t, m.Player1, m.Player2)
			for _, p := range []uuid.UUID{m.Player1, m.Player2} {
				assert.False(t, seen[p], "profile %s in two matches", p)
				seen[p] = true
			}
		}

		waiting := q.Snapshot()
		require.Len(t, waiting, n%2, "n=%d", n)
		for _, w := range waiting {
			assert.False(t, seen[w], "waiting profile %s also matched", w)
		}
	}
}

func TestConcurrentJoinAndLeave(t *testing.T) {
	q, matches, ids := setupQueue(t, 100)

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, err := q.JoinOrPair(id)
			assert.NoError(t, err)
			if i%3 == 0 {
				// may already have been paired away
				if err := q.Leave(id); err != nil {
					assert.ErrorIs(t, err, ErrNotQueued)
				}
			}
		}(i, id)
	}
	wg.Wait()

	matched := map[uuid.UUID]int{}
	for _, m := range matches.List() {
		matched[m.Player1]++
		matched[m.Player2]++
	}
	waiting := q.Snapshot()
	inQueue := map[uuid.UUID]int{}
	for _, w := range waiting {
		inQueue[w]++
	}
	for _, id := range ids {
		assert.LessOrEqual(t, matched[id], 1)
		assert.LessOrEqual(t, inQueue[id], 1)
		assert.False(t, matched[id] == 1 && inQueue[id] == 1, "profile %s both matched and waiting", id)
	}
}

func TestDefaultPickerIsUniform(t *testing.T) {
	const trials = 3000
	counts := map[int]int{}

	for i := 0; i < trials; i++ {
		q, _, ids := setupQueue(t, 4)
		q.mu.Lock()
		q.waiting = append(q.waiting, ids[0], ids[1], ids[2])
		q.mu.Unlock()

		res, err := q.JoinOrPair(ids[3])
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			if res.Match.Player1 == ids[j] {
				counts[j]++
			}
		}
	}

	for j := 0; j < 3; j++ {
		// expected 1000 each; the bound is many standard deviations wide
		assert.Greater(t, counts[j], 800, "slot %d picked %d times", j, counts[j])
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "enqueued", Enqueued.String())
	assert.Equal(t, "already_queued", AlreadyQueued.String())
	assert.Equal(t, "paired", Paired.String())
}
