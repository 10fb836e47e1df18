// Package ioworker simulates device latency for Input/Output operations.
// Each dispatch spawns one detached goroutine that sleeps the
// operation's remaining duration and then posts completion back to the
// scheduler; it never touches the PCB, which the scheduler has already
// moved to the blocked table before spawning the worker.
package ioworker

import (
	"fmt"
	"time"

	"github.com/osforge/ossim/internal/interrupt"
	"github.com/osforge/ossim/internal/op"
)

// Emitter is the subset of the event-log contract the worker needs.
type Emitter interface {
	Emit(elapsedSeconds float64, message string)
}

// Clock is the subset of the simulated-wall-clock contract the worker
// needs to timestamp its own emissions.
type Clock interface {
	Elapsed() float64
}

// Observer receives the completion event once the simulated device
// latency has elapsed. A nil Observer is fine: Spawn checks before
// calling it.
type Observer interface {
	ObserveIOComplete(pid int, descriptor string, durationMs int)
}

// Spawn starts a detached goroutine simulating operation for pid. The
// operation is passed by value: the worker's view is an immutable
// snapshot, never a shared reference to the PCB's live queue.
func Spawn(pid int, operation op.Operation, clock Clock, emitter Emitter, interrupts *interrupt.Queue, obs Observer) {
	go func() {
		phrase := operation.IOPhrase()
		emitter.Emit(clock.Elapsed(), fmt.Sprintf("I/O: process %d starting %s", pid, phrase))

		durationMs := operation.RemainingDurationMs()
		time.Sleep(time.Duration(durationMs) * time.Millisecond)

		emitter.Emit(clock.Elapsed(), fmt.Sprintf("Interrupt: process %d done with %s", pid, phrase))
		if obs != nil {
			obs.ObserveIOComplete(pid, operation.Descriptor, durationMs)
		}
		interrupts.Push(interrupt.Interrupt{Kind: interrupt.IoComplete, PID: pid})
	}()
}
