// Package blocked holds the pid-keyed table of Programs waiting on I/O.
// An I/O worker goroutine posts an IoComplete interrupt naming the pid;
// the scheduler then looks the Program up here to resume it. The
// scheduler goroutine makes every Insert, Take and Len call; I/O workers
// never touch the table. Access is mutex-protected all the same, so the
// Table is safe for concurrent use.
package blocked

import (
	"sync"

	"github.com/osforge/ossim/internal/proc"
)

// Table is the blocked-process table.
type Table struct {
	mu    sync.Mutex
	byPID map[int]*proc.Program
}

// New returns an empty Table.
func New() *Table {
	return &Table{byPID: make(map[int]*proc.Program)}
}

// Insert records p as blocked. Called once per blocking I/O dispatch.
func (t *Table) Insert(p *proc.Program) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byPID[p.ID()] = p
}

// Take removes and returns the Program blocked under pid, or nil if no
// such Program is present (e.g. a duplicate or stale completion).
func (t *Table) Take(pid int) *proc.Program {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.byPID[pid]
	if !ok {
		return nil
	}
	delete(t.byPID, pid)
	return p
}

// Len reports how many Programs are currently blocked.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byPID)
}
