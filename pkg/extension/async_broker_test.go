package extension_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmviewer/tmviewer/pkg/extension"
	"github.com/tmviewer/tmviewer/pkg/extension/event"
)

func TestAsyncBrokerEmitReachesListener(t *testing.T) {
	broker := &extension.AsyncEventBroker[event.InboxFetched]{}

	events := make(chan event.InboxFetched, 1)
	broker.AddListener("x", func(e event.InboxFetched) {
		events <- e
	})

	want := event.InboxFetched{Namespace: "ns", Count: 3, Listed: 3}
	broker.Emit(&want)

	select {
	case got := <-events:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for event")
	}
}

func TestAsyncBrokerEmitCallsMultipleListeners(t *testing.T) {
	broker := &extension.AsyncEventBroker[event.InboxFetched]{}
	first := broker.AsyncTestListener("first", 1)
	second := broker.AsyncTestListener("second", 1)
	assert.Equal(t, 2, broker.Len())

	want := event.InboxFetched{Error: "boom"}
	broker.Emit(&want)

	got, err := first()
	require.NoError(t, err)
	assert.True(t, got.Failed())

	got, err = second()
	require.NoError(t, err)
	assert.Equal(t, "boom", got.Error)
}

func TestAsyncBrokerDuplicateNameReplacesPrevious(t *testing.T) {
	broker := &extension.AsyncEventBroker[event.InboxFetched]{}
	first := broker.AsyncTestListener("dup", 1)
	second := broker.AsyncTestListener("dup", 1)

	broker.Emit(&event.InboxFetched{Listed: 1})

	got, err := first()
	require.Error(t, err)
	assert.Nil(t, got)

	got, err = second()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Listed)
}

func TestAsyncBrokerRemovingListener(t *testing.T) {
	broker := &extension.AsyncEventBroker[event.InboxFetched]{}
	first := broker.AsyncTestListener("1", 1)
	second := broker.AsyncTestListener("2", 1)
	broker.RemoveListener("1")
	broker.RemoveListener("missing")

	broker.Emit(&event.InboxFetched{})

	_, err := first()
	require.Error(t, err)
	_, err = second()
	require.NoError(t, err)
}
