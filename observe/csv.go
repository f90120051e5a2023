// Package observe implements the three CSV-emitting Observers
// (confirmations, propagation delay, reorgs) plumbed into
// engine.Scheduler.Run. None of it is required for simulation
// correctness — the engine runs identically with zero observers
// registered.
package observe

import (
	"encoding/csv"
	"fmt"
	"io"
)

// sink wraps an encoding/csv.Writer with the scenario-metadata comment
// line and header row every output file carries.
type sink struct {
	w      *csv.Writer
	closer io.Closer
}

// newSink writes the metadata comment line and the header row, then
// returns a sink ready to receive data rows via writeRow.
func newSink(w io.Writer, closer io.Closer, metadata string, header []string) (*sink, error) {
	if _, err := fmt.Fprintf(w, "# %s\n", metadata); err != nil {
		return nil, fmt.Errorf("observe: write metadata comment: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("observe: write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("observe: flush header: %w", err)
	}
	return &sink{w: cw, closer: closer}, nil
}

func (s *sink) writeRow(fields []string) error {
	if err := s.w.Write(fields); err != nil {
		return fmt.Errorf("observe: write row: %w", err)
	}
	return nil
}

// flushAndClose flushes any buffered rows and closes the underlying
// writer, surfacing the first error encountered.
func (s *sink) flushAndClose() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("observe: flush: %w", err)
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return fmt.Errorf("observe: close: %w", err)
		}
	}
	return nil
}
