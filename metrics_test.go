package ossim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_InitialSnapshotIsZero(t *testing.T) {
	m := NewMetrics()
	snap := m.Snapshot()

	assert.Equal(t, uint64(0), snap.Dispatches)
	assert.Equal(t, uint64(0), snap.CyclesExecuted)
	assert.Equal(t, uint64(0), snap.QuantumExpiries)
	assert.Equal(t, uint64(0), snap.IOStarts)
	assert.Equal(t, uint64(0), snap.IOCompletions)
	assert.Equal(t, uint64(0), snap.IdleTicks)
	assert.Equal(t, uint64(0), snap.ProcessExits)
	assert.Equal(t, uint64(0), snap.AvgIOLatencyNs)
}

func TestMetrics_ObserveCounters(t *testing.T) {
	m := NewMetrics()

	m.ObserveDispatch(1)
	m.ObserveDispatch(1)
	m.ObserveCycle(1)
	m.ObserveCycle(1)
	m.ObserveCycle(1)
	m.ObserveQuantumExpired(1)
	m.ObserveIdle()
	m.ObserveProcessExit(1)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.Dispatches)
	assert.Equal(t, uint64(3), snap.CyclesExecuted)
	assert.Equal(t, uint64(1), snap.QuantumExpiries)
	assert.Equal(t, uint64(1), snap.IdleTicks)
	assert.Equal(t, uint64(1), snap.ProcessExits)
}

func TestMetrics_ObserveIOTracksLatencyAndHistogram(t *testing.T) {
	m := NewMetrics()

	m.ObserveIOStart(1, "keyboard")
	m.ObserveIOComplete(1, "keyboard", 5) // 5ms, falls in the 10ms bucket
	m.ObserveIOStart(2, "hard drive")
	m.ObserveIOComplete(2, "hard drive", 15) // 15ms, falls in the 100ms bucket

	snap := m.Snapshot()
	require.Equal(t, uint64(2), snap.IOStarts)
	require.Equal(t, uint64(2), snap.IOCompletions)

	expectedAvgNs := uint64(5+15) * uint64(time.Millisecond) / 2
	assert.Equal(t, expectedAvgNs, snap.AvgIOLatencyNs)

	assert.Equal(t, uint64(1), snap.IOLatencyHistogram[1], "only the 5ms reading falls at or under the 10ms bucket")
	assert.Equal(t, uint64(2), snap.IOLatencyHistogram[2], "cumulative: both readings fall at or under the 100ms bucket")
}

func TestMetrics_SnapshotUptimeGrowsUntilStop(t *testing.T) {
	m := NewMetrics()
	time.Sleep(2 * time.Millisecond)

	running := m.Snapshot()
	assert.Greater(t, running.UptimeNs, uint64(0))

	m.Stop()
	stopped := m.Snapshot()

	// Uptime is frozen once Stop is called: repeated snapshots agree.
	again := m.Snapshot()
	assert.Equal(t, stopped.UptimeNs, again.UptimeNs)
}
