// Package config parses the simulator's configuration file: the
// line-based text format described in §6, wrapped by literal
// "Start Simulator Configuration File" / "End Simulator Configuration
// File." sentinels. It is an external collaborator to the core per the
// specification's scope — the core only ever sees the resulting Config
// value.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/osforge/ossim/internal/constants"
	"github.com/osforge/ossim/internal/emitter"
	"github.com/osforge/ossim/internal/logging"
	"github.com/osforge/ossim/internal/ready"
)

const (
	headerLine = "Start Simulator Configuration File"
	footerLine = "End Simulator Configuration File."
)

// Config holds every value the simulator reads from the configuration
// file, per §3's Config record.
type Config struct {
	Version         float64
	MetaDataPath    string
	SchedulingCode  ready.Policy
	Quantum         int
	ProcessorCycleMs int
	MonitorCycleMs   int
	HardDriveCycleMs int
	PrinterCycleMs   int
	KeyboardCycleMs  int
	LogSink          emitter.Sink
	LogPath          string
}

// Error reports a malformed configuration file: missing sentinels,
// unrecognised scheduling code or log sink, or a non-numeric field.
type Error struct {
	Line   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %q", e.Reason, e.Line)
}

// SupportedVersion is the version this loader was written against.
// Versions within ±0.1 (one minor revision) are accepted with a
// warning; anything further apart is a hard ConfigError.
const SupportedVersion = constants.DefaultSimulatorVersion

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: opening %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the configuration grammar from r. Exported separately from
// Load so tests can exercise the grammar against an in-memory reader
// instead of a temp file.
func Parse(r io.Reader) (*Config, error) {
	scanner := bufio.NewScanner(r)
	lines := make([]string, 0, 16)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: reading: %w", err)
	}

	if len(lines) == 0 || lines[0] != headerLine {
		return nil, &Error{Line: firstOrEmpty(lines), Reason: "missing header"}
	}
	if lines[len(lines)-1] != footerLine {
		return nil, &Error{Line: lines[len(lines)-1], Reason: "missing footer"}
	}

	body := lines[1 : len(lines)-1]
	fields := make(map[string]string, len(body))
	for _, line := range body {
		key, value, err := splitField(line)
		if err != nil {
			return nil, err
		}
		fields[key] = value
	}

	cfg := &Config{}
	var err error

	cfg.Version, err = parseVersion(fields["Version/Phase"])
	if err != nil {
		return nil, err
	}

	cfg.MetaDataPath = fields["File Path"]
	if cfg.MetaDataPath == "" {
		return nil, &Error{Line: "File Path", Reason: "missing field"}
	}

	cfg.SchedulingCode, err = parsePolicy(fields["CPU Scheduling Code"])
	if err != nil {
		return nil, err
	}

	cfg.Quantum, err = parseIntField("Quantum Time (cycles)", fields["Quantum Time (cycles)"], constants.DefaultQuantumCycles)
	if err != nil {
		return nil, err
	}
	cfg.ProcessorCycleMs, err = parseIntField("Processor Cycle Time (msec)", fields["Processor Cycle Time (msec)"], constants.DefaultProcessorCycleMs)
	if err != nil {
		return nil, err
	}
	cfg.MonitorCycleMs, err = parseIntField("Monitor Display Time (msec)", fields["Monitor Display Time (msec)"], constants.DefaultMonitorCycleMs)
	if err != nil {
		return nil, err
	}
	cfg.HardDriveCycleMs, err = parseIntField("Hard Drive Cycle Time (msec)", fields["Hard Drive Cycle Time (msec)"], constants.DefaultHardDriveCycleMs)
	if err != nil {
		return nil, err
	}
	cfg.PrinterCycleMs, err = parseIntField("Printer Cycle Time (msec)", fields["Printer Cycle Time (msec)"], constants.DefaultPrinterCycleMs)
	if err != nil {
		return nil, err
	}
	cfg.KeyboardCycleMs, err = parseIntField("Keyboard Cycle Time (msec)", fields["Keyboard Cycle Time (msec)"], constants.DefaultKeyboardCycleMs)
	if err != nil {
		return nil, err
	}

	cfg.LogSink, cfg.LogPath, err = parseLog(fields["Log"], fields["Log File Path"])
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func firstOrEmpty(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// splitField splits a "Key: value" line. The source's loader skips to
// the colon with an istream ignore(); this parser is equivalent but
// explicit about what "skip to colon" means for a string.
func splitField(line string) (key, value string, err error) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", &Error{Line: line, Reason: "missing ':' separator"}
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	return key, value, nil
}

func parseVersion(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &Error{Line: raw, Reason: "non-numeric version"}
	}
	// The 1e-9 slack absorbs float rounding: 3.1-3.0 is slightly above 0.1.
	if diff := v - SupportedVersion; diff > 0.1+1e-9 || diff < -0.1-1e-9 {
		return 0, &Error{Line: raw, Reason: fmt.Sprintf("version mismatch (supported %.1f)", SupportedVersion)}
	}
	if v != SupportedVersion {
		logging.Warnf("config: version %.1f differs from supported %.1f; continuing", v, SupportedVersion)
	}
	return v, nil
}

func parsePolicy(raw string) (ready.Policy, error) {
	switch strings.TrimSpace(raw) {
	case "FIFO":
		return ready.FIFO, nil
	case "FIFO-P":
		return ready.FIFOPreemptive, nil
	case "SJF":
		return ready.SJF, nil
	case "SRTF-N":
		return ready.SRTFNonPreemptive, nil
	case "SRTF-P":
		return ready.SRTFPreemptive, nil
	case "RR":
		return ready.RoundRobin, nil
	default:
		return 0, &Error{Line: raw, Reason: "unknown scheduling code"}
	}
}

func parseIntField(name, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Error{Line: name + ": " + raw, Reason: "non-integer field"}
	}
	return v, nil
}

func parseLog(sinkRaw, pathRaw string) (emitter.Sink, string, error) {
	switch strings.TrimSpace(sinkRaw) {
	case "Log to Monitor":
		return emitter.Screen, "", nil
	case "Log to File":
		return emitter.File, pathRaw, nil
	case "Log to Both":
		return emitter.Both, pathRaw, nil
	default:
		return 0, "", &Error{Line: sinkRaw, Reason: "unknown log sink"}
	}
}
