package worker

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
)

const oneComponent = `components:
  - name: Badge
    category: elements
`

const twoComponents = `components:
  - name: Badge
    category: elements
  - name: Tooltip
    category: overlay
`

func writeCatalog(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestReloaderCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, oneComponent)

	var got *catalog.Catalog
	r, err := NewReloader(path, time.Hour, func(c *catalog.Catalog) { got = c }, nil)
	require.NoError(t, err)

	assert.False(t, r.Check(), "unchanged file is not reloaded")
	assert.Nil(t, got)

	writeCatalog(t, path, twoComponents)
	require.True(t, r.Check())
	require.NotNil(t, got)
	assert.Equal(t, []string{"Badge", "Tooltip"}, got.Names())

	stats := r.Stats()
	assert.Equal(t, 2, stats.Checks)
	assert.Equal(t, 1, stats.Reloads)
	assert.False(t, stats.LastReload.IsZero())
}

func TestReloaderKeepsPreviousOnInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, oneComponent)

	calls := 0
	r, err := NewReloader(path, time.Hour, func(*catalog.Catalog) { calls++ }, nil)
	require.NoError(t, err)

	writeCatalog(t, path, "components:\n  - name: Badge\n    category: glittery-things\n")
	assert.False(t, r.Check())
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, r.Stats().ErrorCount)
	assert.Contains(t, r.Stats().LastError, "load")

	require.NoError(t, os.Remove(path))
	assert.False(t, r.Check())
	assert.Equal(t, 2, r.Stats().ErrorCount)
	assert.Contains(t, r.Stats().LastError, "stat")
}

func TestReloaderRejectsBadInterval(t *testing.T) {
	_, err := NewReloader("catalog.yaml", 0, nil, nil)
	assert.Error(t, err)
}

func TestReloaderStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, oneComponent)

	var mu sync.Mutex
	var names []string
	r, err := NewReloader(path, 10*time.Millisecond, func(c *catalog.Catalog) {
		mu.Lock()
		names = c.Names()
		mu.Unlock()
	}, nil)
	require.NoError(t, err)

	require.NoError(t, r.Start())
	assert.True(t, r.IsRunning())
	assert.Error(t, r.Start())

	writeCatalog(t, path, twoComponents)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(names) == 2
	}, 2*time.Second, 10*time.Millisecond)

	r.Stop()
	assert.False(t, r.IsRunning())
	r.Stop()
}
