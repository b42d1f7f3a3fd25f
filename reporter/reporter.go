// Package reporter prints the progress of a run and the final summary.
package reporter

import (
	"fmt"
	"sort"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/cli"
	"github.com/RedTeamPentesting/slotfuzz/response"
)

// Reporter prints the responses to a terminal.
type Reporter struct {
	term  cli.Terminal
	stats *HTTPStats
}

// New returns a new reporter for a run with total requests.
func New(term cli.Terminal, total int) *Reporter {
	return &Reporter{
		term: term,
		stats: &HTTPStats{
			Start:       time.Now(),
			StatusCodes: make(map[int]int),
			Count:       total,
		},
	}
}

// HTTPStats collects statistics about several HTTP responses.
type HTTPStats struct {
	Start       time.Time
	StatusCodes map[int]int
	Errors      int
	Interesting int
	Responses   int
	Count       int

	lastRPS time.Time
	rps     float64
}

func formatSeconds(secs float64) string {
	sec := int(secs)
	hours := sec / 3600
	sec -= hours * 3600
	min := sec / 60
	sec -= min * 60

	if hours > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", hours, min, sec)
	}

	return fmt.Sprintf("%dm%02ds", min, sec)
}

// Report returns the lines for the status line of the terminal.
func (h *HTTPStats) Report(last string) (res []string) {
	res = append(res, "")
	status := fmt.Sprintf("%v of %v requests sent, %v errors, %v interesting", h.Responses, h.Count, h.Errors, h.Interesting)
	dur := time.Since(h.Start) / time.Second

	if dur > 0 && time.Since(h.lastRPS) > time.Second {
		h.rps = float64(h.Responses) / float64(dur)
		h.lastRPS = time.Now()
	}

	if h.rps > 0 {
		status += fmt.Sprintf(", %.0f req/s", h.rps)
	}

	todo := h.Count - h.Responses
	if todo > 0 && h.rps > 0 {
		rem := float64(todo) / h.rps
		status += fmt.Sprintf(", %s remaining", formatSeconds(rem))
	}

	if last != "" {
		status += fmt.Sprintf(", last: %v", last)
	}

	res = append(res, status)

	for _, code := range sortedCodes(h.StatusCodes) {
		res = append(res, fmt.Sprintf("%s: %v", colorStatusCode(code, ""), h.StatusCodes[code]))
	}

	return res
}

func sortedCodes(m map[int]int) []int {
	codes := make([]int, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}

	sort.Ints(codes)
	return codes
}

// Display prints the response to the seq-th request and updates the status
// line.
func (r *Reporter) Display(seq int, res response.Response, artifact string) {
	r.stats.Responses++

	if res.Error != nil {
		r.stats.Errors++
	} else {
		r.stats.StatusCodes[res.StatusCode()]++
		if res.Interesting() {
			r.stats.Interesting++
		}
	}

	r.term.Print(FormatResponse(seq, r.stats.Count, res, artifact))
	r.term.SetStatus(r.stats.Report(res.Pattern))
}

// Error prints an error which occurred while processing the pattern.
func (r *Reporter) Error(seq int, p string, err error) {
	r.term.Printf("%s %s pattern %q: %v", Dim(fmt.Sprintf("[%d/%d]", seq, r.stats.Count)), marker("unexpected error"), p, err)
}

// Done clears the status line.
func (r *Reporter) Done() {
	r.term.SetStatus(nil)
}
