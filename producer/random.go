package producer

import (
	"context"
	"math/rand"

	"github.com/RedTeamPentesting/slotfuzz/pattern"
)

// Generate returns n patterns. Each slot is drawn independently from values,
// afterwards the list is shuffled. Patterns may repeat.
func Generate(rng *rand.Rand, values []string, n int) []string {
	if n <= 0 || len(values) == 0 {
		return nil
	}

	patterns := make([]string, 0, n)
	slots := make([]string, pattern.Slots)
	for i := 0; i < n; i++ {
		for j := range slots {
			slots[j] = values[rng.Intn(len(values))]
		}
		patterns = append(patterns, pattern.Join(slots))
	}

	rng.Shuffle(len(patterns), func(i, j int) {
		patterns[i], patterns[j] = patterns[j], patterns[i]
	})

	return patterns
}

// Random produces randomly sampled patterns.
type Random struct {
	rng    *rand.Rand
	values []string
	n      int
}

// statically ensure that *Random implements Source
var _ Source = &Random{}

// NewRandom returns a source for n patterns with slots taken from r. When n
// is zero or negative, the size of the full pattern space is used.
func NewRandom(rng *rand.Rand, r Range, n int) *Random {
	values := pattern.Values(r.First, r.Last)
	if n <= 0 {
		n = pattern.SpaceSize(len(values))
	}

	return &Random{rng: rng, values: values, n: n}
}

// Count returns the number of patterns the source yields.
func (r *Random) Count() int {
	return r.n
}

// Yield generates all patterns, sends the number to count and the patterns
// to ch.
func (r *Random) Yield(ctx context.Context, ch chan<- string, count chan<- int) error {
	defer close(ch)

	patterns := Generate(r.rng, r.values, r.n)

	select {
	case count <- len(patterns):
	case <-ctx.Done():
		return nil
	}

	for _, p := range patterns {
		select {
		case ch <- p:
		case <-ctx.Done():
			return nil
		}
	}

	return nil
}
