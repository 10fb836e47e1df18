// Package ossim is the simulator's public entry point. It wires the
// external config and meta-data loaders (§6) into a ready-to-run
// Scheduler and translates every loader failure into the package's
// Kind-tagged Error, per §7's "loader errors surface to the entry point
// and abort before the scheduler starts".
package ossim

import (
	"os"

	"github.com/osforge/ossim/internal/config"
	"github.com/osforge/ossim/internal/emitter"
	"github.com/osforge/ossim/internal/logging"
	"github.com/osforge/ossim/internal/metadata"
	"github.com/osforge/ossim/internal/scheduler"
)

// Simulation bundles everything a successful Load produces: the
// Scheduler itself, the Emitter it logs through, and the Metrics
// observer wired in for a post-run Snapshot.
type Simulation struct {
	Scheduler *scheduler.Scheduler
	Emitter   *emitter.Emitter
	Metrics   *Metrics
}

// Load reads the configuration file at configPath, resolves and parses
// the meta-data file it names, and returns a Simulation ready to Run.
// Every failure here is a loader failure: the scheduler never starts.
func Load(configPath string) (*Simulation, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, NewConfigError("ossim.Load", "loading configuration", err)
	}

	metaText, err := os.ReadFile(cfg.MetaDataPath)
	if err != nil {
		return nil, NewMetaDataError("ossim.Load", "reading meta-data file", err)
	}

	cycles := metadata.CycleTimes{
		ProcessorMs: cfg.ProcessorCycleMs,
		MonitorMs:   cfg.MonitorCycleMs,
		HardDriveMs: cfg.HardDriveCycleMs,
		PrinterMs:   cfg.PrinterCycleMs,
		KeyboardMs:  cfg.KeyboardCycleMs,
	}
	programs, err := metadata.Parse(string(metaText), cycles)
	if err != nil {
		return nil, NewMetaDataError("ossim.Load", "parsing meta-data", err)
	}

	em, err := emitter.New(cfg.LogSink, cfg.LogPath)
	if err != nil {
		return nil, NewConfigError("ossim.Load", "opening log sink", err)
	}

	metrics := NewMetrics()
	sched := scheduler.New(programs, cfg.SchedulingCode, cfg.Quantum, em,
		scheduler.WithObserver(metrics),
		scheduler.WithLogger(logging.Default()),
	)

	return &Simulation{Scheduler: sched, Emitter: em, Metrics: metrics}, nil
}

// Run executes the simulation to completion, closing the Emitter and
// stopping the Metrics clock regardless of outcome. A non-nil return is
// always an InvariantViolation: loader errors never reach here, they
// return from Load instead.
func (s *Simulation) Run() error {
	defer s.Metrics.Stop()
	defer s.Emitter.Close()

	if err := s.Scheduler.Run(); err != nil {
		return NewInvariantViolation("ossim.Run", err.Error())
	}
	return nil
}
