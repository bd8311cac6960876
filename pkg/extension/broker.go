package extension

import (
	"slices"
	"sync"
)

// EventBroker maintains an ordered list of listeners interested in a specific type of event, each
// listener may answer with a result of type R.
type EventBroker[E any, R any] struct {
	sync.RWMutex
	listenerNames []string     // Ordered listener names.
	listenerFuncs []func(E) *R // Ordered listener functions.
}

// Emit sends the provided event to each registered listener in order, until
// one returns a non-nil result.  That result will be returned to the caller.
func (eb *EventBroker[E, R]) Emit(event *E) *R {
	eb.RLock()
	defer eb.RUnlock()

	for _, l := range eb.listenerFuncs {
		if result := l(*event); result != nil {
			return result
		}
	}

	return nil
}

// Len returns the number of registered listeners.
func (eb *EventBroker[E, R]) Len() int {
	eb.RLock()
	defer eb.RUnlock()

	return len(eb.listenerFuncs)
}

// AddListener registers the named listener, replacing one with a duplicate
// name if present.  Listeners should be added in order of priority, most
// significant first.
func (eb *EventBroker[E, R]) AddListener(name string, listener func(E) *R) {
	eb.Lock()
	defer eb.Unlock()

	eb.lockedRemoveListener(name)
	eb.listenerNames = append(eb.listenerNames, name)
	eb.listenerFuncs = append(eb.listenerFuncs, listener)
}

// RemoveListener unregisters the named listener.
func (eb *EventBroker[E, R]) RemoveListener(name string) {
	eb.Lock()
	defer eb.Unlock()

	eb.lockedRemoveListener(name)
}

func (eb *EventBroker[E, R]) lockedRemoveListener(name string) {
	if i := slices.Index(eb.listenerNames, name); i >= 0 {
		eb.listenerNames = slices.Delete(eb.listenerNames, i, i+1)
		eb.listenerFuncs = slices.Delete(eb.listenerFuncs, i, i+1)
	}
}
