// Package redis provides a Redis-backed driven.StateStore built on rueidis.
//
// Several dealwatch processes can share one keyword collection through a
// Redis instance. Each Put publishes the changed key on the channel derived
// from the store's key prefix (see ChangesChannel), and Watcher turns those
// messages into driven.ChangeWatcher notifications.
package redis
