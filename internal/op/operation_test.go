package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceOneCycle(t *testing.T) {
	o := Operation{Type: Process, Descriptor: DescRun, Cycles: 3, CycleTimeMs: 10}

	ms := o.AdvanceOneCycle()
	assert.Equal(t, 10, ms)
	assert.Equal(t, 2, o.Cycles)
	assert.Equal(t, 20, o.RemainingDurationMs())
	assert.False(t, o.Done())

	o.AdvanceOneCycle()
	o.AdvanceOneCycle()
	assert.True(t, o.Done())
	assert.Equal(t, 0, o.RemainingDurationMs())
}

func TestAdvanceOneCycle_PanicsWhenDone(t *testing.T) {
	o := Operation{Cycles: 0}
	assert.Panics(t, func() { o.AdvanceOneCycle() })
}

func TestIOPhrase(t *testing.T) {
	cases := []struct {
		op   Operation
		want string
	}{
		{Operation{Type: Input, Descriptor: DescHardDrive}, "hard drive input"},
		{Operation{Type: Output, Descriptor: DescHardDrive}, "hard drive output"},
		{Operation{Type: Input, Descriptor: DescKeyboard}, "keyboard input"},
		{Operation{Type: Output, Descriptor: DescMonitor}, "monitor output"},
		{Operation{Type: Output, Descriptor: DescPrinter}, "printer output"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.op.IOPhrase())
	}
}

func TestBoundaryOpsAlwaysDone(t *testing.T) {
	s := Operation{Type: SimBoundary, Descriptor: DescStart, Cycles: 0}
	assert.True(t, s.Done())
}
