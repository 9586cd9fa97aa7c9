package driven

// ChangeWatcher reports that the persisted keyword entry may have been
// changed by another process. Notifications are hints; receivers re-read
// the store and compare.
type ChangeWatcher interface {
	// Changes delivers a value after each detected change.
	// The channel is closed when the watcher is closed.
	Changes() <-chan struct{}

	// Close stops watching.
	Close() error
}
