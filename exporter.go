package ecokalman

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Exporter defines an export interface for belief trajectories.
type Exporter interface {
	Write(Belief) error
	Close() error
}

// CSVExporter writes beliefs as CSV rows of mean, +2σ and -2σ offsets per
// state component, the shape the downstream interval plots consume.
type CSVExporter struct {
	delimiter string
	hdlr      *os.File
}

// NewCSVExporter initializes a new CSV export.
func NewCSVExporter(headers []string, path, filename string) (e *CSVExporter, err error) {
	f, err := os.Create(filepath.Join(path, filename))
	if err != nil {
		return
	}
	delimiter := ","
	hdr := make([]string, len(headers)*3)
	for i := 0; i < len(headers)*3; i += 3 {
		hdr[i] = headers[i/3]
		hdr[i+1] = hdr[i] + "+2s"
		hdr[i+2] = hdr[i] + "-2s"
	}
	_, err = f.WriteString(fmt.Sprintf("# Creation date (UTC): %s\n%s\n", time.Now().UTC(), strings.Join(hdr, delimiter)))
	if err != nil {
		return
	}
	e = &CSVExporter{delimiter, f}
	return
}

// Write writes one belief to the CSV file.
func (e CSVExporter) Write(b Belief) error {
	k := b.Dim()
	vals := make([]string, k*3)
	for i := 0; i < k*3; i += 3 {
		vals[i] = fmt.Sprintf("%f", b.mean.AtVec(i/3))
		bound := 2 * b.StdDev(i/3)
		vals[i+1] = fmt.Sprintf("%f", bound)
		vals[i+2] = fmt.Sprintf("%f", -1*bound)
	}
	_, err := e.hdlr.WriteString(strings.Join(vals, e.delimiter) + "\n")
	return err
}

// WriteTrajectory writes every analysis belief of a batch run in order.
func (e CSVExporter) WriteTrajectory(traj *Trajectory) error {
	for _, analysis := range traj.Analyses {
		if err := e.Write(analysis); err != nil {
			return err
		}
	}
	return nil
}

// WriteRawLn writes a raw line to the CSV file.
func (e CSVExporter) WriteRawLn(s string) error {
	_, err := e.hdlr.WriteString(s + "\n")
	return err
}

// Close closes the file.
func (e CSVExporter) Close() (err error) {
	err = e.WriteRawLn(fmt.Sprintf("# Closing date (UTC): %s\n", time.Now().UTC()))
	if err != nil {
		return
	}
	return e.hdlr.Close()
}
