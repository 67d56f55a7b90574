package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesPublishedMessage(t *testing.T) {
	b := NewBroker()

	ch, unsubscribe := b.Subscribe("challenge:abc")
	defer unsubscribe()

	b.Publish("challenge:abc", []byte("standings"))

	msg := <-ch
	assert.Equal(t, []byte("standings"), msg)
}

func TestLateSubscriberGetsRetainedMessage(t *testing.T) {
	b := NewBroker()

	b.Publish("crew:xyz", []byte("old"))
	b.Publish("crew:xyz", []byte("latest"))

	ch, unsubscribe := b.Subscribe("crew:xyz")
	defer unsubscribe()

	// only the most recent message is retained
	msg := <-ch
	assert.Equal(t, []byte("latest"), msg)
	assert.Empty(t, ch)
}

func TestTopicsAreIndependent(t *testing.T) {
	b := NewBroker()

	ch, unsubscribe := b.Subscribe("challenge:a")
	defer unsubscribe()

	b.Publish("challenge:b", []byte("other"))
	assert.Empty(t, ch)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()

	ch, unsubscribe := b.Subscribe("challenge:a")
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	b.Publish("challenge:a", []byte("ignored"))
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage("leaderboard", map[string]int{"rank": 1})
	require.JSONEq(t, `{"stream":"leaderboard","data":{"rank":1}}`, string(msg))
}
