package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenCmd_DeliversEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	cmd := ListenCmd(ctx, ch)

	broker.Publish(LogEmitted, "hello")

	msg := cmd()
	event, ok := msg.(Event[string])
	require.True(t, ok, "expected Event[string] msg")
	assert.Equal(t, "hello", event.Payload)
}

func TestListenCmd_NilOnCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	cmd := ListenCmd(ctx, ch)
	assert.Nil(t, cmd(), "cancelled context should yield a nil msg")
}

func TestContinuousListener_ReceivesSequence(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)

	broker.Publish(EntryAdded, 1)
	broker.Publish(EntryAdded, 2)

	for want := 1; want <= 2; want++ {
		msg := listener.Listen()()
		event, ok := msg.(Event[int])
		require.True(t, ok)
		assert.Equal(t, want, event.Payload)
	}
}

func TestContinuousListener_NilAfterCancel(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	listener := NewContinuousListener(ctx, broker)
	cancel()

	// Give the cleanup goroutine time to close the channel
	time.Sleep(20 * time.Millisecond)

	msg := listener.Listen()()
	assert.Nil(t, msg)
}
