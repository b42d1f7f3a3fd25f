// Package request contains functions to build the HTTP request for a pattern.
package request

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/pflag"
)

// Header is an HTTP header that implements the pflag.Value interface.
type Header http.Header

func (h Header) String() (s string) {
	for k, v := range h {
		s += fmt.Sprintf(`"%v: %v", `, k, strings.Join(v, ","))
	}

	// if there's at least one value, strip the extra ", " from the end of the string
	return strings.TrimSuffix(s, ", ")
}

// Set allows setting an HTTP header via options and pflag.
func (h Header) Set(s string) error {
	name, val, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("invalid format for HTTP header, need `name: value`: %q", s)
	}

	http.Header(h).Add(strings.TrimSpace(name), strings.TrimSpace(val))
	return nil
}

// Type returns a description string for header.
func (h Header) Type() string {
	return "name: value"
}

// DefaultHeader is set on every request unless overwritten.
var DefaultHeader = http.Header{
	"Accept":     []string{"*/*"},
	"User-Agent": []string{"slotfuzz"},
}

// Request is a template for the HTTP request sent for an encoded pattern.
type Request struct {
	BaseURL string
	Header  Header
}

// New returns a new request for baseURL.
func New(baseURL string) *Request {
	return &Request{
		BaseURL: baseURL,
		Header:  make(Header),
	}
}

// AddFlags adds flags for all options of a request to fs.
func AddFlags(r *Request, fs *pflag.FlagSet) {
	fs.VarP(r.Header, "header", "H", "add `\"name: value\"` as an HTTP request header")
}

// URL returns the URL for value. The value is appended to the base URL as is,
// the caller is responsible for encoding it.
func (r *Request) URL(value string) string {
	return r.BaseURL + value
}

// Apply builds a GET request for value.
func (r *Request) Apply(value string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, r.URL(value), nil)
	if err != nil {
		return nil, err
	}

	if req.URL.User != nil {
		u := req.URL.User.Username()
		p, _ := req.URL.User.Password()
		req.SetBasicAuth(u, p)
	}

	for k, vs := range DefaultHeader {
		req.Header[k] = append([]string(nil), vs...)
	}

	// headers from the template replace the default values
	for k := range r.Header {
		req.Header.Del(k)
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return req, nil
}

// Target returns the host and port the request is sent to.
func Target(req *http.Request) (host, port string, err error) {
	if req.URL == nil || req.URL.Host == "" {
		return "", "", errors.New("request URL has no host")
	}

	host = req.URL.Hostname()
	port = req.URL.Port()
	if port != "" {
		return host, port, nil
	}

	switch req.URL.Scheme {
	case "http":
		port = "80"
	case "https":
		port = "443"
	default:
		return "", "", fmt.Errorf("unknown scheme %q", req.URL.Scheme)
	}

	return host, port, nil
}
