// Package pattern contains helpers for the slot patterns sent to the target.
//
// A pattern consists of Slots values joined by Delimiter, each value is either
// empty or a decimal number, e.g. "5@@12@31".
package pattern

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Slots is the number of values in a pattern.
const Slots = 4

// Delimiter separates the slots of a pattern.
const Delimiter = "@"

// Values returns the set of values a single slot can take: the empty string
// followed by all numbers in [first, last].
func Values(first, last int) []string {
	if last < first {
		return []string{""}
	}

	values := make([]string, 0, last-first+2)
	values = append(values, "")
	for i := first; i <= last; i++ {
		values = append(values, strconv.Itoa(i))
	}

	return values
}

// SpaceSize returns the number of distinct patterns when each slot can take
// one of n values.
func SpaceSize(n int) int {
	size := 1
	for i := 0; i < Slots; i++ {
		size *= n
	}
	return size
}

// Join builds a pattern from the slot values.
func Join(slots []string) string {
	return strings.Join(slots, Delimiter)
}

// Split returns the slot values of p.
func Split(p string) []string {
	return strings.Split(p, Delimiter)
}

// Validate returns an error if p is not a pattern with Slots values which are
// either empty or numbers in [first, last].
func Validate(p string, first, last int) error {
	slots := Split(p)
	if len(slots) != Slots {
		return fmt.Errorf("pattern %q has %d slots, want %d", p, len(slots), Slots)
	}

	for i, s := range slots {
		if s == "" {
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("slot %d of pattern %q is not a number: %q", i+1, p, s)
		}

		// reject "+5" and "05", they are not produced by the generator
		if strconv.Itoa(n) != s {
			return fmt.Errorf("slot %d of pattern %q is not in canonical form: %q", i+1, p, s)
		}

		if n < first || n > last {
			return fmt.Errorf("slot %d of pattern %q is out of range [%d, %d]: %d", i+1, p, first, last, n)
		}
	}

	return nil
}

// Encode returns the standard base64 encoding of p.
func Encode(p string) string {
	return base64.StdEncoding.EncodeToString([]byte(p))
}

// Decode reverses Encode.
func Decode(s string) (string, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Sanitize makes p usable as part of a file name.
func Sanitize(p string) string {
	return strings.NewReplacer(Delimiter, "_", "/", "_").Replace(p)
}

// ArtifactName returns the file name for the response to the seq-th request.
func ArtifactName(seq int, p string) string {
	return fmt.Sprintf("response_%06d_%s.txt", seq, Sanitize(p))
}
