package reporter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/response"
	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	marker = color.New(color.FgRed, color.Bold).SprintFunc()
)

func colorStatusCode(statusCode int, format string) string {
	var attr color.Attribute

	switch statusCode / 100 {
	case 1:
		attr = color.FgBlue
	case 2:
		attr = color.FgGreen
	case 3:
		attr = color.FgCyan
	case 4:
		attr = color.FgYellow
	case 5:
		attr = color.FgRed
	default:
		attr = color.Reset
	}

	if format == "" {
		format = "%d"
	}

	return color.New(attr).Sprintf(format, statusCode)
}

// Bold returns s formatted in bold.
func Bold(s string) string {
	return bold(s)
}

// Dim returns s formatted with reduced intensity.
func Dim(s string) string {
	return dim(s)
}

// formatDuration returns d in milliseconds.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// FormatResponse returns a single line describing the response r, which was
// the seq-th of total requests. If the response was saved to an artifact
// file, its name is shown.
func FormatResponse(seq, total int, r response.Response, artifact string) string {
	prefix := Dim(fmt.Sprintf("[%*d/%d]", len(fmt.Sprint(total)), seq, total))

	if r.Error != nil {
		return fmt.Sprintf("%s %7s   %-12s %-16s %v", prefix, marker("error"), Bold(r.Pattern), r.Encoded, r.Error)
	}

	line := fmt.Sprintf("%s %s %8d %8d %7s   %-12s %-16s", prefix,
		colorStatusCode(r.StatusCode(), "%7d"), r.Header.Bytes, r.Body.Bytes,
		formatDuration(r.Duration), Bold(r.Pattern), r.Encoded)

	if loc := r.HTTPResponse.Header.Get("Location"); loc != "" && r.StatusCode() >= 300 && r.StatusCode() < 400 {
		line += " " + Dim("Location: ") + loc
	}

	if artifact != "" {
		line += " " + Dim(filepath.Base(artifact))
	}

	if r.Interesting() {
		line += " " + marker("[!] INTERESTING")
	}

	return line
}
