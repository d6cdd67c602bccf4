package notify

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pairup/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(buffer int) *Hub {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewHub(l, buffer)
}

func TestNotifyReachesBothPlayers(t *testing.T) {
	h := newTestHub(4)
	a, b := uuid.New(), uuid.New()

	subA := h.Subscribe(a)
	subB := h.Subscribe(b)
	bystander := h.Subscribe(uuid.New())

	m := models.Match{ID: uuid.New(), Player1: a, Player2: b}
	h.NotifyMatch(m)

	require.Len(t, subA.OutChan, 1)
	require.Len(t, subB.OutChan, 1)
	assert.Equal(t, m, <-subA.OutChan)
	assert.Equal(t, m, <-subB.OutChan)
	assert.Empty(t, bystander.OutChan)
}

func TestMultipleSubscribersPerProfile(t *testing.T) {
	h := newTestHub(1)
	a := uuid.New()

	s1 := h.Subscribe(a)
	s2 := h.Subscribe(a)
	assert.Equal(t, 2, h.Subscribers(a))

	h.NotifyMatch(models.Match{ID: uuid.New(), Player1: a, Player2: uuid.New()})
	assert.Len(t, s1.OutChan, 1)
	assert.Len(t, s2.OutChan, 1)
}

func TestFullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := newTestHub(1)
	a := uuid.New()
	s := h.Subscribe(a)

	h.NotifyMatch(models.Match{ID: uuid.New(), Player1: a, Player2: uuid.New()})
	h.NotifyMatch(models.Match{ID: uuid.New(), Player1: uuid.New(), Player2: a})

	assert.Len(t, s.OutChan, 1)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := newTestHub(1)
	a := uuid.New()
	s := h.Subscribe(a)

	h.Unsubscribe(s)
	h.Unsubscribe(s)

	_, open := <-s.OutChan
	assert.False(t, open)
	assert.Equal(t, 0, h.Subscribers(a))

	// must not panic on a closed channel
	h.NotifyMatch(models.Match{ID: uuid.New(), Player1: a, Player2: uuid.New()})
}
