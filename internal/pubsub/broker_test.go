package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := broker.Subscribe(ctx)
	second := broker.Subscribe(ctx)

	broker.Publish(UpdatedEvent, "hello")

	for _, ch := range []<-chan Event[string]{first, second} {
		select {
		case event := <-ch:
			assert.Equal(t, UpdatedEvent, event.Type)
			assert.Equal(t, "hello", event.Payload)
			assert.False(t, event.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestPublishDropsWhenSubscriberFull(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	// second publish must not block even though nobody is draining
	broker.Publish(CreatedEvent, 1)
	broker.Publish(CreatedEvent, 2)

	event := <-ch
	assert.Equal(t, 1, event.Payload)

	select {
	case extra := <-ch:
		t.Fatalf("expected dropped event, got %v", extra.Payload)
	default:
	}
}

func TestCancelRemovesSubscriber(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()

	require.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-ch
	assert.False(t, open)
}

func TestCloseShutsDownSubscribers(t *testing.T) {
	broker := NewBroker[string]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	broker.Close()

	_, open := <-ch
	assert.False(t, open)

	// publishing and subscribing after close are harmless
	broker.Publish(UpdatedEvent, "ignored")
	closed := broker.Subscribe(ctx)
	_, open = <-closed
	assert.False(t, open)
}
