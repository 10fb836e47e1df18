// Package ready implements the ready queue abstraction the scheduler
// dispatches from. A single interface covers every scheduling code the
// configuration file can select: FIFO and RR share a plain arrival order
// list, FIFO-P uses a container/heap keyed by id, and SJF, SRTF-N and
// SRTF-P share a container/heap keyed by remaining burst time. The
// scheduler builds its Queue with New and takes dispatch order only from
// Push/Pop/Empty; it consults the policy itself only for id assignment
// and for whether a burst may be preempted.
package ready

import (
	"container/heap"

	"github.com/osforge/ossim/internal/proc"
)

// Policy is a scheduling code from the configuration file's
// "CPU scheduling code" field.
type Policy int

const (
	FIFO Policy = iota
	FIFOPreemptive
	SJF
	SRTFNonPreemptive
	SRTFPreemptive
	RoundRobin
)

func (p Policy) String() string {
	switch p {
	case FIFO:
		return "FIFO"
	case FIFOPreemptive:
		return "FIFO-P"
	case SJF:
		return "SJF"
	case SRTFNonPreemptive:
		return "SRTF-N"
	case SRTFPreemptive:
		return "SRTF-P"
	case RoundRobin:
		return "RR"
	default:
		return "Unknown"
	}
}

// Preemptive reports whether a running process must be interrupted when
// a shorter/earlier process becomes ready, rather than only at the end
// of its own operation or quantum.
func (p Policy) Preemptive() bool {
	return p == FIFOPreemptive || p == SRTFPreemptive
}

// Queue is the dispatch-order abstraction every policy implements.
type Queue interface {
	Push(p *proc.Program)
	Pop() *proc.Program
	Peek() *proc.Program
	Empty() bool
	Len() int
}

// New constructs the Queue variant appropriate to policy. SJF and
// SRTF-N are the same ordering as SRTF-P (ascending remaining burst);
// they differ only in whether the scheduler preempts mid-burst, a
// decision that lives in the scheduler, not the queue.
func New(policy Policy) Queue {
	switch policy {
	case FIFO, RoundRobin:
		return newFIFOQueue()
	case FIFOPreemptive:
		return newHeapQueue(proc.LessByID)
	case SJF, SRTFNonPreemptive, SRTFPreemptive:
		return newHeapQueue(proc.Less)
	default:
		return newFIFOQueue()
	}
}

// fifoQueue is a plain arrival-order list, used by FIFO and Round
// Robin: RR's rotation is dispatch-order, not priority-order, so a
// slice is both simpler and correct where a heap would just degenerate
// to insertion order anyway.
type fifoQueue struct {
	items []*proc.Program
}

func newFIFOQueue() *fifoQueue {
	return &fifoQueue{}
}

func (q *fifoQueue) Push(p *proc.Program) {
	q.items = append(q.items, p)
}

func (q *fifoQueue) Pop() *proc.Program {
	if len(q.items) == 0 {
		panic("ready: Pop called on an empty queue")
	}
	p := q.items[0]
	q.items = q.items[1:]
	return p
}

func (q *fifoQueue) Peek() *proc.Program {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

func (q *fifoQueue) Empty() bool { return len(q.items) == 0 }
func (q *fifoQueue) Len() int    { return len(q.items) }

// lessFunc orders two Programs for heap placement.
type lessFunc func(a, b *proc.Program) bool

// programHeap adapts a slice of Programs plus a comparator to
// container/heap.Interface.
type programHeap struct {
	items []*proc.Program
	less  lessFunc
}

func (h programHeap) Len() int            { return len(h.items) }
func (h programHeap) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h programHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *programHeap) Push(x interface{}) { h.items = append(h.items, x.(*proc.Program)) }
func (h *programHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return item
}

// heapQueue is a priority queue over container/heap, used by FIFO-P
// (arrival order as priority, preempted on arrival of an earlier pid)
// and by SJF/SRTF-N/SRTF-P (shortest remaining burst as priority).
type heapQueue struct {
	h *programHeap
}

func newHeapQueue(less lessFunc) *heapQueue {
	h := &programHeap{less: less}
	heap.Init(h)
	return &heapQueue{h: h}
}

func (q *heapQueue) Push(p *proc.Program) {
	heap.Push(q.h, p)
}

func (q *heapQueue) Pop() *proc.Program {
	if q.h.Len() == 0 {
		panic("ready: Pop called on an empty queue")
	}
	return heap.Pop(q.h).(*proc.Program)
}

func (q *heapQueue) Peek() *proc.Program {
	if q.h.Len() == 0 {
		return nil
	}
	return q.h.items[0]
}

func (q *heapQueue) Empty() bool { return q.h.Len() == 0 }
func (q *heapQueue) Len() int    { return q.h.Len() }
