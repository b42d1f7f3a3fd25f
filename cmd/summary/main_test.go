package summary

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/recorder"
	"github.com/RedTeamPentesting/slotfuzz/reporter"
	"github.com/fatih/color"
)

func TestShow(t *testing.T) {
	color.NoColor = true

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []recorder.Record{
		{Pattern: "5@@12@31", EncodedPattern: "NUBAMTJAMzE=", StatusCode: 200, ContentLength: 2, ArtifactFile: "curl/response_000001_5__12_31.txt", Timestamp: start},
		{Pattern: "@@@", EncodedPattern: "QEBA", StatusCode: 500, ArtifactFile: "curl/response_000002____.txt", Timestamp: start.Add(time.Second)},
		{Pattern: "1@@@", EncodedPattern: "MUBAQA==", Error: "timeout", Timestamp: start.Add(3 * time.Second)},
	}

	filename := filepath.Join(t.TempDir(), "fuzzer_log.json")
	err := recorder.WriteLog(filename, records)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = show(reporter.WriterPrinter{Writer: &buf}, &Options{Interesting: true}, filename)
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, s := range []string{
		"Total patterns:       3",
		"Errors:               1",
		"Duration:             3s",
		"response_000002____.txt",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}

	if strings.Contains(out, "response_000001_5__12_31.txt") {
		t.Errorf("uninteresting record listed:\n%s", out)
	}
}

func TestShowMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := show(reporter.WriterPrinter{Writer: &buf}, &Options{}, filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error")
	}
}
