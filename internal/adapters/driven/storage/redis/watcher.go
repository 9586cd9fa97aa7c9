package redis

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/rueidis"

	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher forwards pub/sub messages as change notifications.
// Notifications coalesce: a burst of messages yields at least one signal.
type Watcher struct {
	changes chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// NewWatcher subscribes to channel and starts forwarding messages.
func NewWatcher(client rueidis.Client, channel string) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		changes: make(chan struct{}, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(w.done)
		defer close(w.changes)

		cmd := client.B().Subscribe().Channel(channel).Build()
		err := client.Receive(ctx, cmd, func(rueidis.PubSubMessage) {
			w.notify()
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Redis subscription on %s ended: %v", channel, err)
		}
	}()

	return w
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Changes returns the notification channel. It is closed when the
// subscription ends.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close ends the subscription and waits for it to finish.
func (w *Watcher) Close() error {
	w.once.Do(w.cancel)
	<-w.done
	return nil
}
