package response

import (
	"context"
	"net/http"
	"time"

	"github.com/RedTeamPentesting/slotfuzz/pattern"
	"github.com/RedTeamPentesting/slotfuzz/request"
)

// DefaultMaxBodySize is the default number of bytes read from a response body.
const DefaultMaxBodySize = 64 * 1024 * 1024

// DefaultTimeout is the default time allowed for a single request, including
// reading the body.
const DefaultTimeout = 5 * time.Second

// Runner executes HTTP requests.
type Runner struct {
	Template    *request.Request
	MaxBodySize int

	Client    *http.Client
	Transport *http.Transport
}

// NewRunner returns a new runner to execute HTTP requests. Redirects are
// never followed.
func NewRunner(tr *http.Transport, template *request.Request, timeout time.Duration) *Runner {
	c := &http.Client{
		Transport: tr,
		Timeout:   timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Runner{
		Template:    template,
		Client:      c,
		Transport:   tr,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Do encodes p, sends the request and reads the response. Errors are
// returned in the Error field of the response.
func (r *Runner) Do(ctx context.Context, p string) (response Response) {
	response = Response{
		Pattern: p,
		Encoded: pattern.Encode(p),
	}
	response.URL = r.Template.URL(response.Encoded)

	req, err := r.Template.Apply(response.Encoded)
	if err != nil {
		response.Error = err
		return response
	}

	start := time.Now()
	res, err := r.Client.Do(req.WithContext(ctx))
	if err != nil {
		response.Duration = time.Since(start)
		response.Error = err
		return response
	}

	err = response.ReadBody(res.Body, r.MaxBodySize)
	response.Duration = time.Since(start)
	if err != nil {
		_ = res.Body.Close()
		response.Error = err
		return response
	}

	err = res.Body.Close()
	if err != nil {
		response.Error = err
		return response
	}

	response.HTTPResponse = res
	_ = response.ReadHeader(res)

	return response
}
