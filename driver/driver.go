// Package driver sends the request for each pattern, saves the response and
// collects the records of a run.
package driver

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/pattern"
	"github.com/RedTeamPentesting/slotfuzz/recorder"
	"github.com/RedTeamPentesting/slotfuzz/response"
)

// DefaultDelay is the pause between two requests.
const DefaultDelay = 10 * time.Millisecond

// Prober sends the request for a pattern.
type Prober interface {
	Do(ctx context.Context, p string) response.Response
}

// ArtifactSaver stores a received response.
type ArtifactSaver interface {
	Save(seq int, res response.Response) (string, error)
}

// Display shows the progress of a run.
type Display interface {
	Display(seq int, res response.Response, artifact string)
	Error(seq int, p string, err error)
}

// Driver sends one request after the other, never in parallel.
type Driver struct {
	Prober    Prober
	Artifacts ArtifactSaver // optional
	Display   Display       // optional
	Delay     time.Duration

	now func() time.Time
}

// New returns a driver which sends requests via prober.
func New(prober Prober, artifacts ArtifactSaver, display Display, delay time.Duration) *Driver {
	return &Driver{
		Prober:    prober,
		Artifacts: artifacts,
		Display:   display,
		Delay:     delay,
		now:       time.Now,
	}
}

// Run sends the request for each pattern received from patterns and appends
// a record to run. It returns when patterns is closed or ctx is cancelled.
// Cancellation is only checked between requests, a request that has already
// been sent is completed and recorded.
func (d *Driver) Run(ctx context.Context, run *Run, patterns <-chan string) {
	run.State = Running
	run.Start = d.now()

	// requests are not aborted by an interrupt, only by their timeout
	reqCtx := context.WithoutCancel(ctx)

	seq := 0
loop:
	for {
		if ctx.Err() != nil {
			run.Interrupted = true
			break
		}

		var (
			p  string
			ok bool
		)

		select {
		case <-ctx.Done():
			run.Interrupted = true
			break loop
		case p, ok = <-patterns:
			if !ok {
				break loop
			}
		}

		if seq > 0 && d.Delay > 0 {
			t := time.NewTimer(d.Delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				run.Interrupted = true
				break loop
			}
		}

		seq++
		d.probe(reqCtx, seq, p, run)
	}

	run.End = d.now()
}

// probe handles a single pattern. A panic is reported and does not stop the
// run, no record is added in this case.
func (d *Driver) probe(ctx context.Context, seq int, p string, run *Run) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err := fmt.Errorf("%v", r)
		if d.Display != nil {
			d.Display.Error(seq, p, err)
		} else {
			log.Printf("unexpected error for pattern %q: %v", p, err)
		}
	}()

	res := d.Prober.Do(ctx, p)

	rec := recorder.Record{
		Pattern:        p,
		EncodedPattern: res.Encoded,
		URL:            res.URL,
	}

	if rec.EncodedPattern == "" {
		rec.EncodedPattern = pattern.Encode(p)
	}

	if res.Error != nil {
		rec.Error = res.Error.Error()
		rec.Timestamp = d.now()
		run.Records = append(run.Records, rec)

		if d.Display != nil {
			d.Display.Display(seq, res, "")
		}
		return
	}

	var artifact string
	if d.Artifacts != nil {
		var err error
		artifact, err = d.Artifacts.Save(seq, res)
		if err != nil {
			log.Printf("error saving response for pattern %q: %v", p, err)
			artifact = ""
		}
	}

	rec.StatusCode = res.StatusCode()
	rec.ContentLength = len(res.RawBody)
	rec.ArtifactFile = artifact
	rec.Timestamp = d.now()
	run.Records = append(run.Records, rec)

	if d.Display != nil {
		d.Display.Display(seq, res, artifact)
	}
}
