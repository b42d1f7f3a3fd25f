package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/pattern"
	"github.com/RedTeamPentesting/slotfuzz/recorder"
	"github.com/RedTeamPentesting/slotfuzz/reporter"
	"github.com/RedTeamPentesting/slotfuzz/request"
	"github.com/RedTeamPentesting/slotfuzz/response"
	"github.com/google/go-cmp/cmp"
)

func feed(patterns ...string) <-chan string {
	ch := make(chan string, len(patterns))
	for _, p := range patterns {
		ch <- p
	}
	close(ch)
	return ch
}

// fakeProber returns a response built by the function f.
type fakeProber struct {
	calls int
	f     func(calls int, p string) response.Response
}

func (f *fakeProber) Do(_ context.Context, p string) response.Response {
	f.calls++
	return f.f(f.calls, p)
}

func okResponse(p string, status int, body string) response.Response {
	return response.Response{
		Pattern:      p,
		Encoded:      pattern.Encode(p),
		URL:          "http://target/?" + pattern.Encode(p),
		HTTPResponse: &http.Response{StatusCode: status, Header: http.Header{}},
		RawBody:      []byte(body),
	}
}

type displayed struct {
	seq         int
	pattern     string
	interesting bool
	failed      bool
}

type fakeDisplay struct {
	shown  []displayed
	errors []string
}

func (f *fakeDisplay) Display(seq int, res response.Response, artifact string) {
	f.shown = append(f.shown, displayed{
		seq:         seq,
		pattern:     res.Pattern,
		interesting: res.Interesting(),
		failed:      res.Error != nil,
	})
}

func (f *fakeDisplay) Error(seq int, p string, err error) {
	f.errors = append(f.errors, fmt.Sprintf("%d %s: %v", seq, p, err))
}

type failingArtifacts struct{}

func (failingArtifacts) Save(int, response.Response) (string, error) {
	return "", errors.New("disk full")
}

func TestDriverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p, err := pattern.Decode(req.URL.RawQuery)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch p {
		case "5@@12@31":
			fmt.Fprint(w, "OK")
		case "@@@":
			w.WriteHeader(http.StatusInternalServerError)
		case "1@@@":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, req)
		}
	}))
	defer srv.Close()

	baseURL := srv.URL + "/index.php?"
	tr, err := response.NewTransport(response.TransportOptions{})
	if err != nil {
		t.Fatal(err)
	}
	runner := response.NewRunner(tr, request.New(baseURL), response.DefaultTimeout)

	dir := filepath.Join(t.TempDir(), "curl")
	artifacts, err := recorder.NewArtifacts(dir)
	if err != nil {
		t.Fatal(err)
	}

	display := &fakeDisplay{}
	d := New(runner, artifacts, display, 0)
	run := NewRun(dir)

	d.Run(context.Background(), run, feed("5@@12@31", "@@@", "1@@@"))

	if len(run.Records) != 3 {
		t.Fatalf("wrong number of records, want 3, got %d", len(run.Records))
	}

	if run.Interrupted {
		t.Fatal("run marked as interrupted")
	}

	first := run.Records[0]
	if first.URL != baseURL+"NUBAMTJAMzE=" {
		t.Fatalf("wrong URL %q", first.URL)
	}

	if first.EncodedPattern != "NUBAMTJAMzE=" || first.StatusCode != 200 || first.ContentLength != 2 {
		t.Fatalf("wrong record %+v", first)
	}

	wantArtifact := filepath.Join(dir, "response_000001_5__12_31.txt")
	if first.ArtifactFile != wantArtifact {
		t.Fatalf("wrong artifact file, want %v, got %v", wantArtifact, first.ArtifactFile)
	}

	_, err = os.Stat(filepath.Join(dir, "response_000002____.txt"))
	if err != nil {
		t.Fatal(err)
	}

	wantShown := []displayed{
		{seq: 1, pattern: "5@@12@31", interesting: false},
		{seq: 2, pattern: "@@@", interesting: true},
		{seq: 3, pattern: "1@@@", interesting: true},
	}

	if !cmp.Equal(wantShown, display.shown, cmp.AllowUnexported(displayed{})) {
		t.Error(cmp.Diff(wantShown, display.shown, cmp.AllowUnexported(displayed{})))
	}
}

func TestDriverTransportFailure(t *testing.T) {
	prober := &fakeProber{f: func(_ int, p string) response.Response {
		if p == "@@@" {
			return response.Response{
				Pattern: p,
				Encoded: pattern.Encode(p),
				URL:     "http://target/?" + pattern.Encode(p),
				Error:   errors.New("dial tcp: connection refused"),
			}
		}
		return okResponse(p, 200, "OK")
	}}

	display := &fakeDisplay{}
	run := NewRun("")
	New(prober, nil, display, 0).Run(context.Background(), run, feed("1@@@", "@@@", "2@@@"))

	if len(run.Records) != 3 {
		t.Fatalf("wrong number of records, want 3, got %d", len(run.Records))
	}

	failed := run.Records[1]
	if !failed.Failed() || failed.Error == "" {
		t.Fatalf("failure not recorded: %+v", failed)
	}

	if failed.URL != "http://target/?QEBA" || failed.EncodedPattern != "QEBA" {
		t.Fatalf("wrong failure record %+v", failed)
	}

	if run.Records[2].Failed() || run.Records[2].Pattern != "2@@@" {
		t.Fatalf("run did not continue after failure: %+v", run.Records[2])
	}

	s := reporter.Summarize(run.Records, 0)
	if s.Successful != 2 || s.Failed != 1 {
		t.Fatalf("wrong summary %+v", s)
	}
}

func TestDriverPanic(t *testing.T) {
	prober := &fakeProber{f: func(_ int, p string) response.Response {
		if p == "@@@" {
			panic("boom")
		}
		return okResponse(p, 200, "OK")
	}}

	display := &fakeDisplay{}
	run := NewRun("")
	New(prober, nil, display, 0).Run(context.Background(), run, feed("1@@@", "@@@", "2@@@"))

	if len(run.Records) != 2 {
		t.Fatalf("wrong number of records, want 2, got %d", len(run.Records))
	}

	want := []string{"2 @@@: boom"}
	if !cmp.Equal(want, display.errors) {
		t.Error(cmp.Diff(want, display.errors))
	}
}

func TestDriverArtifactFailure(t *testing.T) {
	prober := &fakeProber{f: func(_ int, p string) response.Response {
		return okResponse(p, 200, "OK")
	}}

	run := NewRun("curl")
	New(prober, failingArtifacts{}, nil, 0).Run(context.Background(), run, feed("1@@@", "2@@@"))

	if len(run.Records) != 2 {
		t.Fatalf("wrong number of records, want 2, got %d", len(run.Records))
	}

	for _, rec := range run.Records {
		if rec.ArtifactFile != "" {
			t.Fatalf("artifact file set despite error: %+v", rec)
		}
	}

	if s := reporter.Summarize(run.Records, 0); s.Artifacts != 0 || s.Successful != 2 {
		t.Fatalf("wrong summary %+v", s)
	}
}

func TestDriverInterrupt(t *testing.T) {
	for _, k := range []int{1, 3, 7} {
		t.Run(fmt.Sprint(k), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			prober := &fakeProber{f: func(calls int, p string) response.Response {
				if calls == k {
					cancel()
				}
				return okResponse(p, 200, "OK")
			}}

			var patterns []string
			for i := 0; i < 10; i++ {
				patterns = append(patterns, fmt.Sprintf("%d@@@", i))
			}

			run := NewRun("")
			New(prober, nil, nil, time.Millisecond).Run(ctx, run, feed(patterns...))

			if len(run.Records) != k {
				t.Fatalf("wrong number of records, want %d, got %d", k, len(run.Records))
			}

			if !run.Interrupted {
				t.Fatal("run not marked as interrupted")
			}

			logfile := filepath.Join(t.TempDir(), "fuzzer_log.json")
			summary := run.Finish(logfile, reporter.WriterPrinter{Writer: io.Discard})

			if summary.Total != k || summary.StatusCodes[200] != k {
				t.Fatalf("wrong summary %+v", summary)
			}

			records, err := recorder.LoadLog(logfile)
			if err != nil {
				t.Fatal(err)
			}

			if len(records) != k {
				t.Fatalf("wrong number of records in log, want %d, got %d", k, len(records))
			}
		})
	}
}

func TestDriverDelay(t *testing.T) {
	prober := &fakeProber{f: func(_ int, p string) response.Response {
		return okResponse(p, 200, "OK")
	}}

	start := time.Now()
	run := NewRun("")
	New(prober, nil, nil, 20*time.Millisecond).Run(context.Background(), run, feed("1@@@", "2@@@", "3@@@"))

	if d := time.Since(start); d < 40*time.Millisecond {
		t.Fatalf("requests were not delayed: %v", d)
	}

	if len(run.Records) != 3 {
		t.Fatalf("wrong number of records, want 3, got %d", len(run.Records))
	}
}

func TestRunFinishLogError(t *testing.T) {
	run := NewRun("curl")
	run.State = Running
	run.Records = []recorder.Record{
		{Pattern: "@@@", EncodedPattern: "QEBA", StatusCode: 404, ArtifactFile: "curl/response_000001____.txt"},
		{Pattern: "1@@@", EncodedPattern: "MUBAQA==", Error: "timeout"},
	}

	logfile := filepath.Join(t.TempDir(), "missing", "fuzzer_log.json")
	summary := run.Finish(logfile, reporter.WriterPrinter{Writer: io.Discard})

	if run.State != Finished {
		t.Fatalf("wrong state %v", run.State)
	}

	want := reporter.Summary{
		Total:       2,
		Successful:  1,
		Failed:      1,
		Artifacts:   1,
		StatusCodes: map[int]int{404: 1},
	}

	if !cmp.Equal(want, summary) {
		t.Error(cmp.Diff(want, summary))
	}
}
