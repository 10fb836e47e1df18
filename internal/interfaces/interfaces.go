// Package interfaces provides internal interface definitions for ossim.
// These are separate from the public interfaces to avoid circular imports
// between the main package and internal packages.
package interfaces

// Emitter is the logging sink contract the core scheduler depends on.
// Implementations own timestamping and fan-out (screen, file, both).
type Emitter interface {
	Emit(elapsedSeconds float64, message string)
}

// Logger is the internal diagnostic-logging interface, distinct from
// Emitter: Emitter produces the spec-mandated simulation event log,
// Logger produces operational diagnostics (debug traces, warnings).
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Observer collects scheduler metrics. Implementations must be
// thread-safe; methods are called from the scheduling goroutine and
// from I/O worker goroutines.
type Observer interface {
	ObserveDispatch(pid int)
	ObserveCycle(pid int)
	ObserveQuantumExpired(pid int)
	ObserveIOStart(pid int, descriptor string)
	ObserveIOComplete(pid int, descriptor string, durationMs int)
	ObserveIdle()
	ObserveProcessExit(pid int)
}
