package driver

import (
	"fmt"
	"log"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/recorder"
	"github.com/RedTeamPentesting/slotfuzz/reporter"
)

// State is the state of a run.
type State int

// States of a run. A run is never resumed once it is finished.
const (
	Idle State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Run is one execution of the driver.
type Run struct {
	State       State
	ArtifactDir string
	Records     []recorder.Record

	Start, End  time.Time
	Interrupted bool
}

// NewRun returns a new idle run which saves artifacts in artifactDir.
func NewRun(artifactDir string) *Run {
	return &Run{State: Idle, ArtifactDir: artifactDir}
}

// Duration returns the wall-clock time the run took.
func (r *Run) Duration() time.Duration {
	if r.Start.IsZero() {
		return 0
	}

	end := r.End
	if end.IsZero() {
		end = time.Now()
	}

	return end.Sub(r.Start)
}

// Finish writes the records to logfile and prints the summary. A failure to
// write the log is reported and does not prevent the summary from being
// printed.
func (r *Run) Finish(logfile string, p reporter.Printer) reporter.Summary {
	if r.Interrupted {
		p.Print(fmt.Sprintf("%s, processed %d patterns", reporter.Bold("fuzzing interrupted"), len(r.Records)))
	}

	if logfile != "" {
		err := recorder.WriteLog(logfile, r.Records)
		if err != nil {
			log.Printf("error saving results: %v", err)
		} else {
			p.Print("results saved to " + logfile)
		}
	}

	summary := reporter.Summarize(r.Records, r.Duration())
	summary.Print(p, r.ArtifactDir, logfile)

	r.State = Finished
	return summary
}
