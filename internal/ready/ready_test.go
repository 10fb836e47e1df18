package ready

import (
	"testing"

	"github.com/osforge/ossim/internal/op"
	"github.com/osforge/ossim/internal/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkProgram(id, burstMs int) *proc.Program {
	p := proc.New()
	p.SetID(id)
	if burstMs > 0 {
		p.Enqueue(op.Operation{Type: op.Process, Cycles: burstMs, CycleTimeMs: 1})
	}
	return p
}

func TestFIFOQueue_ArrivalOrder(t *testing.T) {
	q := New(FIFO)
	q.Push(mkProgram(3, 0))
	q.Push(mkProgram(1, 0))
	q.Push(mkProgram(2, 0))

	require.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Pop().ID())
	assert.Equal(t, 1, q.Pop().ID())
	assert.Equal(t, 2, q.Pop().ID())
	assert.True(t, q.Empty())
}

func TestRoundRobinQueue_SameAsArrivalOrder(t *testing.T) {
	q := New(RoundRobin)
	q.Push(mkProgram(1, 0))
	q.Push(mkProgram(2, 0))
	assert.Equal(t, 1, q.Pop().ID())

	// simulate a requeue after a quantum expiry: goes to the tail
	q.Push(mkProgram(1, 0))
	assert.Equal(t, 2, q.Pop().ID())
	assert.Equal(t, 1, q.Pop().ID())
}

func TestFIFOPreemptiveQueue_OrdersByID(t *testing.T) {
	q := New(FIFOPreemptive)
	q.Push(mkProgram(5, 100))
	q.Push(mkProgram(2, 100))
	q.Push(mkProgram(9, 100))

	assert.Equal(t, 2, q.Pop().ID())
	assert.Equal(t, 5, q.Pop().ID())
	assert.Equal(t, 9, q.Pop().ID())
}

func TestSJFQueue_OrdersByRemainingBurst(t *testing.T) {
	for _, policy := range []Policy{SJF, SRTFNonPreemptive, SRTFPreemptive} {
		q := New(policy)
		q.Push(mkProgram(1, 50))
		q.Push(mkProgram(2, 10))
		q.Push(mkProgram(3, 30))

		assert.Equal(t, 2, q.Pop().ID(), "policy %s", policy)
		assert.Equal(t, 3, q.Pop().ID(), "policy %s", policy)
		assert.Equal(t, 1, q.Pop().ID(), "policy %s", policy)
	}
}

func TestSJFQueue_TieBreaksByID(t *testing.T) {
	q := New(SJF)
	q.Push(mkProgram(7, 20))
	q.Push(mkProgram(3, 20))

	assert.Equal(t, 3, q.Pop().ID())
	assert.Equal(t, 7, q.Pop().ID())
}

func TestPeek_DoesNotRemove(t *testing.T) {
	q := New(FIFO)
	q.Push(mkProgram(1, 0))
	assert.Equal(t, 1, q.Peek().ID())
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, q.Pop().ID())
}

func TestPeek_EmptyQueueReturnsNil(t *testing.T) {
	assert.Nil(t, New(FIFO).Peek())
	assert.Nil(t, New(SJF).Peek())
}

func TestPop_PanicsWhenEmpty(t *testing.T) {
	assert.Panics(t, func() { New(FIFO).Pop() })
	assert.Panics(t, func() { New(SJF).Pop() })
}

func TestPolicyPreemptive(t *testing.T) {
	assert.False(t, FIFO.Preemptive())
	assert.True(t, FIFOPreemptive.Preemptive())
	assert.False(t, SJF.Preemptive())
	assert.False(t, SRTFNonPreemptive.Preemptive())
	assert.True(t, SRTFPreemptive.Preemptive())
	assert.False(t, RoundRobin.Preemptive())
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "FIFO", FIFO.String())
	assert.Equal(t, "RR", RoundRobin.String())
	assert.Equal(t, "Unknown", Policy(99).String())
}
