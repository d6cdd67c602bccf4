package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatch(p1, p2 uuid.UUID) models.Match {
	return models.Match{ID: uuid.New(), Player1: p1, Player2: p2}
}

func TestMatchRecordAndGet(t *testing.T) {
	s := NewMatchStore()
	m := newMatch(uuid.New(), uuid.New())

	require.NoError(t, s.Record(m))

	got, err := s.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatchRecordNeverOverwrites(t *testing.T) {
	s := NewMatchStore()
	m := newMatch(uuid.New(), uuid.New())
	require.NoError(t, s.Record(m))

	clash := models.Match{ID: m.ID, Player1: uuid.New(), Player2: uuid.New()}
	err := s.Record(clash)
	require.ErrorIs(t, err, ErrDuplicateMatch)

	got, err := s.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, got, "original match must survive a duplicate record")
}

func TestMatchListContainsEachOnce(t *testing.T) {
	s := NewMatchStore()
	assert.Empty(t, s.List())

	recorded := map[uuid.UUID]bool{}
	for i := 0; i < 5; i++ {
		m := newMatch(uuid.New(), uuid.New())
		require.NoError(t, s.Record(m))
		recorded[m.ID] = true
	}

	list := s.List()
	require.Len(t, list, 5)
	seen := map[uuid.UUID]bool{}
	for _, m := range list {
		assert.True(t, recorded[m.ID])
		assert.False(t, seen[m.ID], "match %s listed twice", m.ID)
		seen[m.ID] = true
	}
	assert.Equal(t, list, s.List(), "listing order should be stable")
}

func TestListForProfile(t *testing.T) {
	s := NewMatchStore()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	ab := newMatch(a, b)
	ca := newMatch(c, a)
	bc := newMatch(b, c)
	for _, m := range []models.Match{ab, ca, bc} {
		require.NoError(t, s.Record(m))
	}

	forA := s.ListForProfile(a)
	assert.ElementsMatch(t, []models.Match{ab, ca}, forA)
	assert.Empty(t, s.ListForProfile(uuid.New()))
	assert.Equal(t, 3, s.Count())
}
