package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/filesystem"
)

type countingTrigger struct {
	calls atomic.Int32
}

func (c *countingTrigger) QueueScan(context.Context) {
	c.calls.Add(1)
}

func newWatcherDirs(t *testing.T) (string, string) {
	root := t.TempDir()
	source := filepath.Join(root, "downloads")
	target := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(source, 0o755))
	require.NoError(t, os.MkdirAll(target, 0o755))
	return source, target
}

func countFiles(t *testing.T, dir string) int {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestDownloadWatcher_RecolheExportsExistentes(t *testing.T) {
	source, target := newWatcherDirs(t)
	require.NoError(t, os.WriteFile(filepath.Join(source, "linkedin_posts.csv"), []byte("urn,impressions"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "foto.png"), []byte("png"), 0o644))

	trigger := &countingTrigger{}
	collector := filesystem.NewCollector(afero.NewOsFs(), source, target, 10*time.Millisecond)
	watcher := NewDownloadWatcher(collector, trigger, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, watcher.Start(ctx))

	assert.Equal(t, int32(1), trigger.calls.Load())
	assert.Equal(t, 1, countFiles(t, target))
	assert.Equal(t, 1, countFiles(t, source))
}

func TestDownloadWatcher_NovoDownload(t *testing.T) {
	source, target := newWatcherDirs(t)

	trigger := &countingTrigger{}
	collector := filesystem.NewCollector(afero.NewOsFs(), source, target, 20*time.Millisecond)
	watcher := NewDownloadWatcher(collector, trigger, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, watcher.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(source, "followers.xlsx.crdownload"), []byte("parcial"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "page_analytics.csv"), []byte("urn,impressions"), 0o644))

	assert.Eventually(t, func() bool {
		return countFiles(t, target) == 1 && trigger.calls.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	watcher.Wait()

	_, err := os.Stat(filepath.Join(source, "followers.xlsx.crdownload"))
	assert.NoError(t, err)
}

func TestDownloadWatcher_Desabilitado(t *testing.T) {
	source, target := newWatcherDirs(t)
	require.NoError(t, os.WriteFile(filepath.Join(source, "linkedin_posts.csv"), []byte("x"), 0o644))

	trigger := &countingTrigger{}
	watcher := NewDownloadWatcher(filesystem.NewCollector(afero.NewOsFs(), source, target, time.Millisecond), trigger, false)

	require.NoError(t, watcher.Start(context.Background()))

	assert.Zero(t, trigger.calls.Load())
	assert.Equal(t, 0, countFiles(t, target))
}
