// Package recorder saves the responses received during a run: one artifact
// file per response and a JSON log with a record for each request.
package recorder

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// DefaultLogFile is the default name of the JSON log written for a run.
const DefaultLogFile = "fuzzer_log.json"

// Record is the result of one request sent to the target. Exactly one of
// Error and StatusCode is set.
type Record struct {
	Pattern        string
	EncodedPattern string
	URL            string

	StatusCode    int
	ContentLength int
	ArtifactFile  string // empty if the artifact could not be written

	Error     string
	Timestamp time.Time
}

// Failed returns true if no response was received for the record.
func (r Record) Failed() bool {
	return r.Error != ""
}

// Interesting returns true for an error status, or a 200 status with an
// empty body.
func (r Record) Interesting() bool {
	if r.Failed() {
		return false
	}
	return r.StatusCode >= 400 || (r.StatusCode == 200 && r.ContentLength == 0)
}

type successRecord struct {
	Pattern        string    `json:"pattern"`
	EncodedPattern string    `json:"encoded_pattern"`
	URL            string    `json:"url"`
	StatusCode     int       `json:"status_code"`
	ContentLength  int       `json:"content_length"`
	CurlFile       *string   `json:"curl_file"`
	Timestamp      time.Time `json:"timestamp"`
}

type failureRecord struct {
	Pattern        string    `json:"pattern"`
	EncodedPattern string    `json:"encoded_pattern"`
	URL            string    `json:"url"`
	Error          string    `json:"error"`
	Timestamp      time.Time `json:"timestamp"`
}

// MarshalJSON encodes the record either as a success or as a failure.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(failureRecord{
			Pattern:        r.Pattern,
			EncodedPattern: r.EncodedPattern,
			URL:            r.URL,
			Error:          r.Error,
			Timestamp:      r.Timestamp,
		})
	}

	rec := successRecord{
		Pattern:        r.Pattern,
		EncodedPattern: r.EncodedPattern,
		URL:            r.URL,
		StatusCode:     r.StatusCode,
		ContentLength:  r.ContentLength,
		Timestamp:      r.Timestamp,
	}

	if r.ArtifactFile != "" {
		file := r.ArtifactFile
		rec.CurlFile = &file
	}

	return json.Marshal(rec)
}

// UnmarshalJSON decodes both variants of a record.
func (r *Record) UnmarshalJSON(buf []byte) error {
	var data struct {
		successRecord
		Error *string `json:"error"`
	}

	err := json.Unmarshal(buf, &data)
	if err != nil {
		return err
	}

	*r = Record{
		Pattern:        data.Pattern,
		EncodedPattern: data.EncodedPattern,
		URL:            data.URL,
		Timestamp:      data.Timestamp,
	}

	if data.Error != nil {
		if *data.Error == "" {
			return errors.New("record has an empty error")
		}
		r.Error = *data.Error
		return nil
	}

	r.StatusCode = data.StatusCode
	r.ContentLength = data.ContentLength
	if data.CurlFile != nil {
		r.ArtifactFile = *data.CurlFile
	}

	return nil
}

// WriteLog writes the records as a JSON array to filename, replacing the
// file if it exists.
func WriteLog(filename string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	buf, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')

	return os.WriteFile(filename, buf, 0644)
}

// LoadLog reads the records from a log written by WriteLog.
func LoadLog(filename string) (records []Record, err error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(buf, &records)
	if err != nil {
		return nil, err
	}

	return records, nil
}
