package recorder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/pattern"
	"github.com/RedTeamPentesting/slotfuzz/response"
)

// Artifacts writes the response for each request to a separate file in Dir.
type Artifacts struct {
	Dir     string
	Created bool // Dir did not exist before and was created

	now    func() time.Time
	create func(name string) (io.WriteCloser, error)
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// NewArtifacts returns a writer for artifact files in dir. The directory is
// created if it does not exist yet.
func NewArtifacts(dir string) (*Artifacts, error) {
	a := &Artifacts{Dir: dir, now: time.Now, create: createFile}

	fi, err := os.Stat(dir)
	switch {
	case err == nil && !fi.IsDir():
		return nil, fmt.Errorf("artifact dir %v is not a directory", dir)
	case err == nil:
		return a, nil
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("artifact dir: %w", err)
	}

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	a.Created = true

	return a, nil
}

const separator = "--------------------------------------------------------------------------------"

// Save writes the response for the seq-th request to a new file and returns
// the path of the file.
func (a *Artifacts) Save(seq int, res response.Response) (filename string, err error) {
	if res.HTTPResponse == nil {
		return "", fmt.Errorf("no response for pattern %q", res.Pattern)
	}

	filename = filepath.Join(a.Dir, pattern.ArtifactName(seq, res.Pattern))

	f, err := a.create(filename)
	if err != nil {
		return "", err
	}

	wr := bufio.NewWriter(f)

	fmt.Fprintf(wr, "URL: %s\n", res.URL)
	fmt.Fprintf(wr, "Pattern: %s\n", res.Pattern)
	fmt.Fprintf(wr, "Base64: %s\n", res.Encoded)
	fmt.Fprintf(wr, "Timestamp: %s\n", a.now().Format(time.RFC3339Nano))
	fmt.Fprintf(wr, "Status Code: %d\n", res.HTTPResponse.StatusCode)
	fmt.Fprintf(wr, "Content Length: %d bytes\n", len(res.RawBody))
	fmt.Fprintln(wr, separator)
	fmt.Fprintln(wr, "HEADERS:")
	for _, line := range headerLines(res) {
		fmt.Fprintln(wr, line)
	}
	fmt.Fprintln(wr, separator)
	fmt.Fprintln(wr, "CONTENT:")
	_, _ = wr.Write(res.RawBody)

	err = wr.Flush()
	if err != nil {
		_ = f.Close()
		_ = os.Remove(filename)
		return "", err
	}

	err = f.Close()
	if err != nil {
		_ = os.Remove(filename)
		return "", err
	}

	return filename, nil
}

// headerLines returns one "Name: Value" line per header value, sorted by name.
func headerLines(res response.Response) []string {
	hdr := res.HTTPResponse.Header
	names := make([]string, 0, len(hdr))
	for name := range hdr {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		for _, v := range hdr[name] {
			lines = append(lines, name+": "+strings.TrimSpace(v))
		}
	}

	return lines
}
