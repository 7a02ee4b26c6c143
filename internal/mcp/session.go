package mcp

import (
	"sort"
	"sync"
	"time"
)

// =============================================================================
// SESSION TRACKING
// In-memory tool call counters for the lifetime of one server process
// =============================================================================

// SessionTracker counts tool calls. Tool calls may run concurrently, so all
// access goes through the mutex.
type SessionTracker struct {
	mu        sync.Mutex
	startedAt time.Time
	calls     map[string]int
	failures  map[string]int
	total     int
	failed    int
}

// SessionSummary is a point-in-time copy of the tracker
type SessionSummary struct {
	StartedAt time.Time
	ToolCalls int
	Failures  int
	ByTool    []ToolCount
}

// ToolCount is the call and failure count for one tool
type ToolCount struct {
	Tool     string
	Calls    int
	Failures int
}

func newSessionTracker() *SessionTracker {
	return &SessionTracker{
		startedAt: time.Now(),
		calls:     make(map[string]int),
		failures:  make(map[string]int),
	}
}

// record registers a finished tool call
func (t *SessionTracker) record(tool string, failed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.calls[tool]++
	if failed {
		t.failed++
		t.failures[tool]++
	}
}

// Summary returns the counters, tools sorted by name
func (t *SessionTracker) Summary() SessionSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := SessionSummary{
		StartedAt: t.startedAt,
		ToolCalls: t.total,
		Failures:  t.failed,
	}
	for tool, n := range t.calls {
		summary.ByTool = append(summary.ByTool, ToolCount{Tool: tool, Calls: n, Failures: t.failures[tool]})
	}
	sort.Slice(summary.ByTool, func(i, j int) bool {
		return summary.ByTool[i].Tool < summary.ByTool[j].Tool
	})
	return summary
}
