// Package metadata parses the meta-data file: the semicolon-separated
// operation-token stream described in §6, wrapped by literal
// "Start Program Meta-Data Code:" / "End Program Meta-Data Code."
// sentinels. It is an external collaborator to the core — the core only
// ever sees the resulting []*proc.Program slice with cycle times already
// resolved from the Config.
package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osforge/ossim/internal/op"
	"github.com/osforge/ossim/internal/proc"
)

const (
	headerPrefix = "Start Program Meta-Data Code:"
	footerLine   = "End Program Meta-Data Code."
)

// CycleTimes supplies the per-descriptor millisecond cost a loaded
// token's cycles are multiplied by, resolved from the Config.
type CycleTimes struct {
	ProcessorMs int
	MonitorMs   int
	HardDriveMs int
	PrinterMs   int
	KeyboardMs  int
}

// Error reports a malformed meta-data stream: a missing sentinel, an
// unparsable token, or an unrecognised type/descriptor.
type Error struct {
	Token  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("metadata: %s: %q", e.Reason, e.Token)
}

// Parse reads the full meta-data grammar from text and returns one
// Program per A(start)0 ... A(end)0 span. text must already have the
// header/footer sentinel lines present; they are stripped before
// tokenising.
func Parse(text string, cycles CycleTimes) ([]*proc.Program, error) {
	body, err := stripSentinels(text)
	if err != nil {
		return nil, err
	}

	tokens, err := tokenize(body)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &Error{Reason: "empty token stream"}
	}

	first, err := parseToken(tokens[0])
	if err != nil {
		return nil, err
	}
	if first.Type != op.SimBoundary || first.Descriptor != op.DescStart {
		return nil, &Error{Token: tokens[0], Reason: "stream does not begin with S(start)0"}
	}
	last, err := parseToken(tokens[len(tokens)-1])
	if err != nil {
		return nil, err
	}
	if last.Type != op.SimBoundary || last.Descriptor != op.DescEnd {
		return nil, &Error{Token: tokens[len(tokens)-1], Reason: "stream does not end with S(end)0"}
	}

	var programs []*proc.Program
	var current *proc.Program

	for _, tok := range tokens[1 : len(tokens)-1] {
		o, err := parseToken(tok)
		if err != nil {
			return nil, err
		}

		switch {
		case o.Type == op.AppBoundary && o.Descriptor == op.DescStart:
			if current != nil {
				return nil, &Error{Token: tok, Reason: "nested A(start)0 before matching A(end)0"}
			}
			current = proc.New()
			current.Enqueue(resolve(o, cycles))

		case o.Type == op.AppBoundary && o.Descriptor == op.DescEnd:
			if current == nil {
				return nil, &Error{Token: tok, Reason: "A(end)0 without matching A(start)0"}
			}
			current.Enqueue(resolve(o, cycles))
			programs = append(programs, current)
			current = nil

		default:
			if current == nil {
				return nil, &Error{Token: tok, Reason: "operation outside A(start)0 .. A(end)0"}
			}
			current.Enqueue(resolve(o, cycles))
		}
	}

	if current != nil {
		return nil, &Error{Reason: "stream ends with an unterminated program"}
	}

	return programs, nil
}

func stripSentinels(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	headerIdx := strings.Index(trimmed, headerPrefix)
	if headerIdx < 0 {
		return "", &Error{Reason: "missing Start Program Meta-Data Code: header"}
	}
	footerIdx := strings.LastIndex(trimmed, footerLine)
	if footerIdx < 0 || footerIdx < headerIdx {
		return "", &Error{Reason: "missing End Program Meta-Data Code. footer"}
	}
	body := trimmed[headerIdx+len(headerPrefix) : footerIdx]
	return body, nil
}

// tokenize splits the body on ';' and '.' separators, discarding
// whitespace and line breaks, which the grammar treats as insignificant.
func tokenize(body string) ([]string, error) {
	var tokens []string
	var buf strings.Builder

	flush := func() {
		tok := strings.TrimSpace(buf.String())
		if tok != "" {
			tokens = append(tokens, tok)
		}
		buf.Reset()
	}

	for _, r := range body {
		switch r {
		case ';', '.':
			flush()
		case '\n', '\r', '\t', ' ':
			buf.WriteRune(r)
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return tokens, nil
}

// parseToken parses a single "type(descriptor)cycles" token, e.g.
// "P(run)3" or "I(hard drive)2".
func parseToken(tok string) (op.Operation, error) {
	open := strings.Index(tok, "(")
	closeIdx := strings.Index(tok, ")")
	if open < 0 || closeIdx < 0 || closeIdx < open {
		return op.Operation{}, &Error{Token: tok, Reason: "malformed token"}
	}

	typeCode := strings.TrimSpace(tok[:open])
	descriptor := strings.TrimSpace(tok[open+1 : closeIdx])
	cyclesRaw := strings.TrimSpace(tok[closeIdx+1:])

	cycles, err := strconv.Atoi(cyclesRaw)
	if err != nil {
		return op.Operation{}, &Error{Token: tok, Reason: "non-integer cycles"}
	}

	typ, err := parseType(typeCode)
	if err != nil {
		return op.Operation{}, &Error{Token: tok, Reason: err.Error()}
	}
	if err := validateDescriptor(descriptor); err != nil {
		return op.Operation{}, &Error{Token: tok, Reason: err.Error()}
	}

	return op.Operation{Type: typ, Descriptor: descriptor, Cycles: cycles}, nil
}

func parseType(code string) (op.Type, error) {
	switch code {
	case "S":
		return op.SimBoundary, nil
	case "A":
		return op.AppBoundary, nil
	case "P":
		return op.Process, nil
	case "I":
		return op.Input, nil
	case "O":
		return op.Output, nil
	default:
		return 0, fmt.Errorf("unknown operation type %q", code)
	}
}

func validateDescriptor(d string) error {
	switch d {
	case op.DescStart, op.DescEnd, op.DescRun, op.DescHardDrive, op.DescKeyboard, op.DescMonitor, op.DescPrinter:
		return nil
	default:
		return fmt.Errorf("unknown descriptor %q", d)
	}
}

// resolve attaches the per-cycle millisecond cost appropriate to o's
// descriptor. SimBoundary/AppBoundary tokens always carry 0 cycles, so
// their resolved CycleTimeMs is irrelevant but left at 0 for clarity.
func resolve(o op.Operation, cycles CycleTimes) op.Operation {
	switch o.Descriptor {
	case op.DescRun:
		o.CycleTimeMs = cycles.ProcessorMs
	case op.DescHardDrive:
		o.CycleTimeMs = cycles.HardDriveMs
	case op.DescKeyboard:
		o.CycleTimeMs = cycles.KeyboardMs
	case op.DescMonitor:
		o.CycleTimeMs = cycles.MonitorMs
	case op.DescPrinter:
		o.CycleTimeMs = cycles.PrinterMs
	}
	return o
}
