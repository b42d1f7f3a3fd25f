// Package response contains the code to send the request for a pattern and
// collect the response.
package response

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"
	"time"
	"unicode"
)

// Response is the result of sending the request for one pattern.
type Response struct {
	Pattern  string
	Encoded  string
	URL      string
	Error    error
	Duration time.Duration

	Header, Body TextStats

	HTTPResponse *http.Response
	RawBody      []byte
	RawHeader    []byte
}

// StatusCode returns the HTTP status code, or zero if no response was received.
func (r Response) StatusCode() int {
	if r.HTTPResponse == nil {
		return 0
	}
	return r.HTTPResponse.StatusCode
}

// Interesting returns true if the response deserves a closer look: the
// server returned an error status, or a 200 status with an empty body.
func (r Response) Interesting() bool {
	if r.Error != nil || r.HTTPResponse == nil {
		return false
	}

	code := r.HTTPResponse.StatusCode
	return code >= 400 || (code == http.StatusOK && len(r.RawBody) == 0)
}

// ReadBody reads at most maxBodySize bytes from the body and saves it to a buffer in the
// Response struct for later processing.
func (r *Response) ReadBody(body io.Reader, maxBodySize int) (err error) {
	// Read a limited amount of data from the response such that extraordinarily large
	// responses don't fill up the memory. If the actual body is larger, it will be
	// closed preemptively, closing the TCP connection.
	r.RawBody, err = io.ReadAll(io.LimitReader(body, int64(maxBodySize)))
	if err != nil {
		return err
	}

	r.Body, err = Count(bytes.NewReader(r.RawBody))
	return err
}

// ReadHeader saves the response header (including the status line) to a
// buffer in the Response struct. This fills r.Header.
func (r *Response) ReadHeader(res *http.Response) error {
	buf, err := httputil.DumpResponse(res, false)
	if err != nil {
		return err
	}

	r.RawHeader = buf
	r.Header, err = Count(bytes.NewReader(buf))
	return err
}

// TextStats reports statistics about some text.
type TextStats struct {
	Bytes int `json:"bytes"`
	Words int `json:"words"`
	Lines int `json:"lines"`
}

// Count counts the bytes, words and lines in the body.
func Count(rd io.Reader) (stats TextStats, err error) {
	bufReader := bufio.NewReader(rd)
	var previous, current byte
	for {
		current, err = bufReader.ReadByte()
		if err == io.EOF {
			err = nil
			break
		}

		if err != nil {
			return TextStats{}, err
		}

		stats.Bytes++
		if current != '\n' && unicode.IsSpace(rune(current)) && !unicode.IsSpace(rune(previous)) {
			stats.Words++
		}

		if current == '\n' {
			stats.Lines++
		}

		previous = current
	}

	if stats.Bytes > 0 && !unicode.IsSpace(rune(current)) {
		stats.Words++
	}

	return stats, nil
}
