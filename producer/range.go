package producer

import (
	"fmt"
	"strconv"
)

// Range defines the numbers a slot can take.
type Range struct {
	First, Last int
}

// DefaultRange is used for the slots unless configured otherwise.
var DefaultRange = Range{First: 0, Last: 31}

// ParseRange parses a range from the string s. Valid formats are `n` and `n-m`.
func ParseRange(s string) (r Range, err error) {
	// test if it's a number only
	n, err := strconv.Atoi(s)
	if err == nil {
		return Range{First: n, Last: n}, nil
	}

	// otherwise assume it's a range
	_, err = fmt.Sscanf(s, "%d-%d", &r.First, &r.Last)
	if err != nil {
		return Range{}, fmt.Errorf("wrong format for range, expected: first-last, got: %q", s)
	}

	if r.First > r.Last {
		return Range{}, fmt.Errorf("last value is smaller than first value for range %q", s)
	}

	return r, nil
}

// Count returns the number of items in the range.
func (r Range) Count() int {
	return r.Last - r.First + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.First, r.Last)
}
