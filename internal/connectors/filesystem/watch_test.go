package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsDocumentChanges(t *testing.T) {
	root := tempRoot(t)

	w, err := NewWatcher(root, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := w.Changes(ctx)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(root, "new.md"), []byte("hello"), 0o644)
	}()

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}

	cancel()
	for range changes {
	}
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := tempRoot(t)

	w, err := NewWatcher(root, 20*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := w.Changes(ctx)

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for directory change")
	}

	require.NoError(t, os.WriteFile(filepath.Join(sub, "doc.txt"), []byte("x"), 0o644))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for nested change")
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	_, err := NewWatcher("/definitely/not/here", 0)
	assert.Error(t, err)
}

func TestWatcher_HandleEvent(t *testing.T) {
	root := tempRoot(t)
	writeFile(t, filepath.Join(root, "doc.md"), "x")
	writeFile(t, filepath.Join(root, "image.png"), "x")

	w, err := NewWatcher(root, time.Millisecond)
	require.NoError(t, err)
	defer w.watcher.Close()

	tests := []struct {
		name string
		file string
		op   fsnotify.Op
		want bool
	}{
		{"document write", "doc.md", fsnotify.Write, true},
		{"document create", "doc.md", fsnotify.Create, true},
		{"document chmod", "doc.md", fsnotify.Chmod, false},
		{"non-document write", "image.png", fsnotify.Write, false},
		{"hidden file", ".swap.md", fsnotify.Write, false},
		{"removed path", "gone", fsnotify.Remove, true},
		{"combined ops", "doc.md", fsnotify.Write | fsnotify.Chmod, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: filepath.Join(root, tt.file), Op: tt.op}
			assert.Equal(t, tt.want, w.handleEvent(event))
		})
	}
}
