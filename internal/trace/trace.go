// Package trace emits Chrome Trace Event Format JSON for a zorkpp run,
// enabled with the --trace flag. The executor opens one Event per
// UnitCommand it runs; loading the resulting file in chrome://tracing (or
// any Perfetto-compatible viewer) shows where build time actually goes
// across the interface/implementation/main phases.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var start = time.Now()

var (
	sinkMu sync.Mutex
	sink   io.Writer = io.Discard
)

// Sink writes all following Event()s as a Chrome trace event file into w.
func Sink(w io.Writer) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	sink = w
	// Start the JSON Array Format; Close writes the closing ']'.
	w.Write([]byte{'['})
}

// Enabled reports whether a sink other than the default discard writer is
// active.
func Enabled() bool {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	return sink != io.Discard
}

// EnableFile opens path for writing and directs all following events there.
// The file is left open for the caller to close via Close, typically
// registered to run at process exit.
func EnableFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	Sink(f)
	return nil
}

// Close finishes the trace event file: it writes the closing ']' and closes
// the underlying file if the active sink is one. Safe to call even when no
// sink was ever enabled.
func Close() error {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if sink == io.Discard {
		return nil
	}
	sink.Write([]byte{']'})
	closer, ok := sink.(io.Closer)
	sink = io.Discard
	if !ok {
		return nil
	}
	return closer.Close()
}

// Phase identifies which pipeline stage an event belongs to; it becomes the
// trace's thread ID so phases render on separate tracks.
type Phase int

const (
	PhaseSystemModules Phase = iota
	PhaseInterfaces
	PhaseImplementations
	PhaseMain
)

func (p Phase) String() string {
	switch p {
	case PhaseSystemModules:
		return "system-modules"
	case PhaseInterfaces:
		return "interfaces"
	case PhaseImplementations:
		return "implementations"
	case PhaseMain:
		return "main"
	default:
		return fmt.Sprintf("phase-%d", int(p))
	}
}

// PendingEvent is a begun-but-not-yet-completed trace span.
type PendingEvent struct {
	Name           string      `json:"name"`
	Categories     string      `json:"cat"`
	Type           string      `json:"ph"`
	ClockTimestamp uint64      `json:"ts"`
	Duration       uint64      `json:"dur"`
	Pid            uint64      `json:"pid"`
	Tid            uint64      `json:"tid"`
	Args           interface{} `json:"args,omitempty"`

	begun time.Time
}

// Done closes the span and writes it to the active sink.
func (pe *PendingEvent) Done() {
	pe.Duration = uint64(time.Since(pe.begun) / time.Microsecond)
	b, err := json.Marshal(pe)
	if err != nil {
		panic(err)
	}
	sinkMu.Lock()
	defer sinkMu.Unlock()
	sink.Write(append(b, ','))
}

// Unit starts a span for the compilation of a single translation unit
// within the given phase.
func Unit(phase Phase, path string) *PendingEvent {
	return &PendingEvent{
		Name:           path,
		Categories:     phase.String(),
		Type:           "X",
		ClockTimestamp: uint64(time.Since(start) / time.Microsecond),
		Pid:            1,
		Tid:            uint64(phase),
		begun:          time.Now(),
	}
}
