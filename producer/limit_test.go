package producer

import (
	"context"
	"testing"
	"time"
)

func TestLimit(t *testing.T) {
	in := make(chan string)
	go func() {
		defer close(in)
		for _, s := range []string{"a", "b", "c", "d"} {
			in <- s
		}
	}()

	start := time.Now()
	var values []string
	for s := range Limit(context.Background(), 50, in) {
		values = append(values, s)
	}

	if len(values) != 4 {
		t.Fatalf("wrong number of values, want 4, got %d", len(values))
	}

	// the bucket starts full, three more tokens need 20ms each
	if d := time.Since(start); d < 50*time.Millisecond {
		t.Fatalf("values passed too fast: %v", d)
	}
}
