package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/recorder"
)

// Summary contains statistics about the records of a run.
type Summary struct {
	Total       int
	Successful  int
	Failed      int
	Artifacts   int
	Duration    time.Duration
	StatusCodes map[int]int // for successful records only
}

// Summarize computes the statistics for records.
func Summarize(records []recorder.Record, duration time.Duration) Summary {
	s := Summary{
		Total:       len(records),
		Duration:    duration,
		StatusCodes: make(map[int]int),
	}

	for _, rec := range records {
		if rec.Failed() {
			s.Failed++
			continue
		}

		s.Successful++
		s.StatusCodes[rec.StatusCode]++
		if rec.ArtifactFile != "" {
			s.Artifacts++
		}
	}

	return s
}

// Span returns the time between the first and the last timestamp of records.
func Span(records []recorder.Record) time.Duration {
	if len(records) == 0 {
		return 0
	}

	first, last := records[0].Timestamp, records[0].Timestamp
	for _, rec := range records[1:] {
		if rec.Timestamp.Before(first) {
			first = rec.Timestamp
		}
		if rec.Timestamp.After(last) {
			last = rec.Timestamp
		}
	}

	return last.Sub(first)
}

// Printer prints complete lines.
type Printer interface {
	Print(msg string)
}

// WriterPrinter prints lines to a writer.
type WriterPrinter struct {
	io.Writer
}

// Print prints msg followed by a newline.
func (w WriterPrinter) Print(msg string) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = io.WriteString(w.Writer, msg)
}

// Lines returns the summary as text. The artifact dir and the log file are
// only listed when set.
func (s Summary) Lines(artifactDir, logfile string) []string {
	sep := strings.Repeat("=", 60)

	lines := []string{
		"\n" + sep,
		Bold("FUZZING SUMMARY"),
		sep,
		fmt.Sprintf("Total patterns:       %d", s.Total),
		fmt.Sprintf("Successful requests:  %d", s.Successful),
		fmt.Sprintf("Errors:               %d", s.Failed),
		fmt.Sprintf("Artifacts saved:      %d", s.Artifacts),
		fmt.Sprintf("Duration:             %v", s.Duration.Round(time.Millisecond)),
		"Status codes distribution:",
	}

	for _, code := range sortedCodes(s.StatusCodes) {
		lines = append(lines, fmt.Sprintf("  %s: %d", colorStatusCode(code, ""), s.StatusCodes[code]))
	}

	if artifactDir != "" {
		lines = append(lines, fmt.Sprintf("Artifact folder:      %s/", strings.TrimSuffix(artifactDir, "/")))
	}

	if logfile != "" {
		lines = append(lines, fmt.Sprintf("JSON results:         %s", logfile))
	}

	return append(lines, sep)
}

// Print prints the summary to p.
func (s Summary) Print(p Printer, artifactDir, logfile string) {
	for _, line := range s.Lines(artifactDir, logfile) {
		PrintLine(p, line)
	}
}

// PrintLine prints msg to p, an empty msg is printed as an empty line.
// termstatus.Terminal does not accept empty messages.
func PrintLine(p Printer, msg string) {
	if msg == "" {
		msg = "\n"
	}
	p.Print(msg)
}
