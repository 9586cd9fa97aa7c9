package fswatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	w := &Watcher{base: "dealwatch.db"}

	tests := []struct {
		name     string
		file     string
		op       fsnotify.Op
		expected bool
	}{
		{"write to database", "dealwatch.db", fsnotify.Write, true},
		{"write to wal", "dealwatch.db-wal", fsnotify.Write, true},
		{"create journal", "dealwatch.db-journal", fsnotify.Create, true},
		{"remove database", "dealwatch.db", fsnotify.Remove, true},
		{"rename database", "dealwatch.db", fsnotify.Rename, true},
		{"chmod only", "dealwatch.db", fsnotify.Chmod, false},
		{"write and chmod", "dealwatch.db", fsnotify.Write | fsnotify.Chmod, true},
		{"unrelated file", "config.toml", fsnotify.Write, false},
		{"similar prefix", "dealwatch.dbx", fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: filepath.Join("/data", tt.file), Op: tt.op}
			assert.Equal(t, tt.expected, w.relevant(event))
		})
	}
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dealwatch.db")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0600))

	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	// A burst of writes coalesces into notifications on one channel.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0600))
	}

	select {
	case _, ok := <-w.Changes():
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dealwatch.db")

	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600))

	select {
	case <-w.Changes():
		t.Fatal("unexpected notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "dealwatch.db"), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	require.NoError(t, w.Close())
	_, ok := <-w.Changes()
	assert.False(t, ok)

	assert.NoError(t, w.Close())
}

func TestNew_MissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "dealwatch.db"), 0)

	assert.Error(t, err)
	assert.Nil(t, w)
}
