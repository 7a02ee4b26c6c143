// Package worker runs the background catalog reloader used by the MCP server
// when an external catalog file is configured.
package worker

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
)

// ReloadFunc receives each successfully parsed catalog
type ReloadFunc func(c *catalog.Catalog)

// ReloaderStats tracks reloader activity
type ReloaderStats struct {
	Checks     int       `json:"checks"`
	Reloads    int       `json:"reloads"`
	LastReload time.Time `json:"last_reload"`
	ErrorCount int       `json:"error_count"`
	LastError  string    `json:"last_error,omitempty"`
}

// Reloader polls a catalog file and hands every changed, valid version to
// a callback. An invalid file is logged and skipped; the previous catalog
// stays in use.
type Reloader struct {
	path     string
	interval time.Duration
	onReload ReloadFunc
	logger   *zap.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
	running  bool
	modTime  time.Time
	size     int64

	stats ReloaderStats
}

// NewReloader creates a reloader for path. The file's current state is the
// baseline, so the first callback fires only after it changes.
func NewReloader(path string, interval time.Duration, onReload ReloadFunc, logger *zap.Logger) (*Reloader, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("reload interval must be positive, got %s", interval)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reloader{
		path:     path,
		interval: interval,
		onReload: onReload,
		logger:   logger.With(zap.String("catalog", path)),
	}
	if info, err := os.Stat(path); err == nil {
		r.modTime, r.size = info.ModTime(), info.Size()
	}
	return r, nil
}

// Start begins polling in the background
func (r *Reloader) Start() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("reloader already running")
	}
	r.running = true
	r.stopChan = make(chan struct{})
	r.mu.Unlock()

	r.wg.Add(1)
	go r.watch()

	r.logger.Debug("Catalog reloader started", zap.Duration("interval", r.interval))
	return nil
}

// Stop halts polling and waits for the loop to exit
func (r *Reloader) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopChan)
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Debug("Catalog reloader stopped")
}

// IsRunning returns whether the poll loop is active
func (r *Reloader) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// Stats returns reloader statistics
func (r *Reloader) Stats() ReloaderStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

func (r *Reloader) watch() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.Check()
		}
	}
}

// Check stats the file once and reloads it if it changed. It reports
// whether a new catalog was delivered.
func (r *Reloader) Check() bool {
	info, err := os.Stat(r.path)

	r.mu.Lock()
	r.stats.Checks++
	if err != nil {
		r.recordErrorLocked("stat", err)
		r.mu.Unlock()
		return false
	}
	if info.ModTime().Equal(r.modTime) && info.Size() == r.size {
		r.mu.Unlock()
		return false
	}
	r.modTime, r.size = info.ModTime(), info.Size()
	r.mu.Unlock()

	c, err := catalog.Load(r.path)
	if err != nil {
		r.mu.Lock()
		r.recordErrorLocked("load", err)
		r.mu.Unlock()
		r.logger.Warn("Catalog reload failed, keeping previous catalog", zap.Error(err))
		return false
	}

	r.mu.Lock()
	r.stats.Reloads++
	r.stats.LastReload = time.Now()
	r.mu.Unlock()

	r.logger.Info("Catalog reloaded", zap.Int("components", c.Len()))
	if r.onReload != nil {
		r.onReload(c)
	}
	return true
}

func (r *Reloader) recordErrorLocked(context string, err error) {
	r.stats.ErrorCount++
	r.stats.LastError = fmt.Sprintf("%s: %v", context, err)
}
