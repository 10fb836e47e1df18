// Package proc defines Program, the process control block (PCB) the
// scheduler dispatches, blocks, and retires.
package proc

import (
	"fmt"

	"github.com/osforge/ossim/internal/op"
)

// State is one of the four steady states a dispatched PCB may occupy,
// plus the transient Start state it begins in before admission.
type State int

const (
	Start State = iota
	Ready
	Running
	Blocked
	Exit
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Blocked:
		return "Blocked"
	case Exit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Program is a process control block. The scheduler is its exclusive
// owner; the ready queue and blocked table hold a pointer to it, never a
// copy.
type Program struct {
	id    int // 0 = unassigned; positive once assigned (at admission, or at first dispatch under SJF/SRTF)
	state State

	queue         []op.Operation
	remainingBurstMs int
}

// New returns a freshly loaded Program in the Start state with an empty
// instruction queue.
func New() *Program {
	return &Program{state: Start}
}

// ID returns the process id, or 0 if none has been assigned yet.
func (p *Program) ID() int { return p.id }

// SetID assigns the process id. Per the lazy-id convention used by
// shortest-remaining-time policies, this may be called once, the first
// time a Program is selected for dispatch.
func (p *Program) SetID(id int) { p.id = id }

// State returns the PCB's current lifecycle state.
func (p *Program) State() State { return p.state }

// SetState transitions the PCB. The scheduler is the only caller.
func (p *Program) SetState(s State) { p.state = s }

// Enqueue appends an operation to the tail of the instruction queue,
// used only at load time.
func (p *Program) Enqueue(o op.Operation) {
	p.queue = append(p.queue, o)
	p.remainingBurstMs += o.RemainingDurationMs()
}

// PopNext removes and returns the operation at the head of the queue.
// It panics if the queue is empty: callers must check RemainingOps first.
func (p *Program) PopNext() op.Operation {
	if len(p.queue) == 0 {
		panic("proc: PopNext called on an empty program")
	}
	next := p.queue[0]
	p.queue = p.queue[1:]
	p.remainingBurstMs -= next.RemainingDurationMs()
	return next
}

// PushFront restores a partially-consumed operation to the head of the
// queue, used when a processing burst yields to an interrupt mid-burst.
func (p *Program) PushFront(o op.Operation) {
	p.queue = append([]op.Operation{o}, p.queue...)
	p.remainingBurstMs += o.RemainingDurationMs()
}

// RemainingOps returns the number of operations still queued, including
// whichever operation was just pushed back to the front.
func (p *Program) RemainingOps() int { return len(p.queue) }

// RemainingBurstMs is the sum of RemainingDurationMs across every queued
// operation. It is the ordering key for SJF/SRTF ready queues.
func (p *Program) RemainingBurstMs() int { return p.remainingBurstMs }

// Empty reports whether the instruction queue has been fully consumed.
func (p *Program) Empty() bool { return len(p.queue) == 0 }

// Less implements the total order used by SRTF/SJF ready queues:
// ascending remaining burst, ties broken by ascending id (an unassigned
// id of 0 sorts first, reflecting "just created").
func Less(a, b *Program) bool {
	if a.remainingBurstMs != b.remainingBurstMs {
		return a.remainingBurstMs < b.remainingBurstMs
	}
	return a.id < b.id
}

// LessByID implements the arrival-order total order used by FIFO/FIFO-P
// ready queues.
func LessByID(a, b *Program) bool {
	return a.id < b.id
}

func (p *Program) String() string {
	return fmt.Sprintf("Program{id=%d state=%s remaining_ops=%d remaining_burst_ms=%d}",
		p.id, p.state, len(p.queue), p.remainingBurstMs)
}
