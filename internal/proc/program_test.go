package proc

import (
	"testing"

	"github.com/osforge/ossim/internal/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueuePopNext_TracksBurst(t *testing.T) {
	p := New()
	p.Enqueue(op.Operation{Type: op.AppBoundary, Descriptor: op.DescStart})
	p.Enqueue(op.Operation{Type: op.Process, Descriptor: op.DescRun, Cycles: 3, CycleTimeMs: 10})
	p.Enqueue(op.Operation{Type: op.AppBoundary, Descriptor: op.DescEnd})

	assert.Equal(t, 30, p.RemainingBurstMs())
	assert.Equal(t, 3, p.RemainingOps())

	first := p.PopNext()
	assert.Equal(t, op.AppBoundary, first.Type)
	assert.Equal(t, 30, p.RemainingBurstMs(), "boundary ops carry zero duration")

	second := p.PopNext()
	assert.Equal(t, op.Process, second.Type)
	assert.Equal(t, 0, p.RemainingBurstMs())
	assert.Equal(t, 1, p.RemainingOps())
}

func TestPushFront_RestoresBurst(t *testing.T) {
	p := New()
	p.Enqueue(op.Operation{Type: op.Process, Cycles: 5, CycleTimeMs: 10})
	running := p.PopNext()
	assert.Equal(t, 0, p.RemainingBurstMs())

	running.AdvanceOneCycle()
	p.PushFront(running)
	assert.Equal(t, 40, p.RemainingBurstMs())
	assert.Equal(t, 1, p.RemainingOps())
}

func TestPopNext_PanicsWhenEmpty(t *testing.T) {
	p := New()
	assert.Panics(t, func() { p.PopNext() })
}

func TestEmptyAndExitInvariant(t *testing.T) {
	p := New()
	require.True(t, p.Empty())
	p.Enqueue(op.Operation{Type: op.AppBoundary})
	require.False(t, p.Empty())
	p.PopNext()
	require.True(t, p.Empty())
}

func TestLess_OrdersByBurstThenID(t *testing.T) {
	a := New()
	a.SetID(2)
	a.Enqueue(op.Operation{Type: op.Process, Cycles: 10, CycleTimeMs: 1})

	b := New()
	b.SetID(1)
	b.Enqueue(op.Operation{Type: op.Process, Cycles: 5, CycleTimeMs: 1})

	assert.True(t, Less(b, a))
	assert.False(t, Less(a, b))

	c := New()
	c.SetID(1)
	c.Enqueue(op.Operation{Type: op.Process, Cycles: 5, CycleTimeMs: 1})
	// equal burst, tie-break by id
	assert.False(t, Less(b, c))
	assert.False(t, Less(c, b))
}

func TestLessByID_ArrivalOrder(t *testing.T) {
	a := New()
	a.SetID(1)
	b := New()
	b.SetID(2)
	assert.True(t, LessByID(a, b))
	assert.False(t, LessByID(b, a))
}
