// Command ossim runs the simulator against one configuration file, per
// §6: "sim <config-path>". Exit 0 on normal completion; non-zero if
// configuration or meta-data loading raises, or if the scheduler halts
// on an invariant violation.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/osforge/ossim"
	"github.com/osforge/ossim/internal/logging"
)

func main() {
	verbose := flag.Bool("v", false, "verbose diagnostic logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ossim <config-path>")
		os.Exit(1)
	}

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logging.SetDefault(logging.NewLogger(logConfig))
	logger := logging.Default()

	sim, err := ossim.Load(flag.Arg(0))
	if err != nil {
		logger.Errorf("loading simulation: %v", err)
		os.Exit(1)
	}

	if err := sim.Run(); err != nil {
		logger.Errorf("simulation halted: %v", err)
		os.Exit(1)
	}

	snap := sim.Metrics.Snapshot()
	logger.Infof("run complete: dispatches=%d cycles=%d quantum_expiries=%d io_starts=%d io_completions=%d idle_ticks=%d process_exits=%d",
		snap.Dispatches, snap.CyclesExecuted, snap.QuantumExpiries, snap.IOStarts, snap.IOCompletions, snap.IdleTicks, snap.ProcessExits)
}
