package pattern

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValues(t *testing.T) {
	values := Values(0, 31)
	if len(values) != 33 {
		t.Fatalf("wrong number of values, want 33, got %d", len(values))
	}

	if values[0] != "" {
		t.Fatalf("first value is not empty: %q", values[0])
	}

	if values[1] != "0" || values[32] != "31" {
		t.Fatalf("wrong bounds: %q, %q", values[1], values[32])
	}

	if !cmp.Equal([]string{"", "3", "4"}, Values(3, 4)) {
		t.Fatal(cmp.Diff([]string{"", "3", "4"}, Values(3, 4)))
	}
}

func TestSpaceSize(t *testing.T) {
	if n := SpaceSize(33); n != 1185921 {
		t.Fatalf("wrong space size, want 1185921, got %d", n)
	}
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		pattern string
		valid   bool
	}{
		{"@@@", true},
		{"5@@12@31", true},
		{"0@0@0@0", true},
		{"31@31@31@31", true},
		{"32@@@", false},
		{"-1@@@", false},
		{"@@", false},
		{"@@@@", false},
		{"a@@@", false},
		{"05@@@", false},
		{"+5@@@", false},
		{"", false},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			err := Validate(test.pattern, 0, 31)
			if test.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !test.valid && err == nil {
				t.Fatalf("pattern %q accepted", test.pattern)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	var tests = []struct {
		pattern string
		encoded string
	}{
		{"5@@12@31", "NUBAMTJAMzE="},
		{"@@@", "QEBA"},
		{"0@31@@7", "MEAzMUBANw=="},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			enc := Encode(test.pattern)
			if enc != test.encoded {
				t.Fatalf("wrong encoding, want %q, got %q", test.encoded, enc)
			}

			dec, err := Decode(enc)
			if err != nil {
				t.Fatal(err)
			}

			if dec != test.pattern {
				t.Fatalf("round trip failed, want %q, got %q", test.pattern, dec)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	var tests = []struct {
		seq     int
		pattern string
		want    string
	}{
		{7, "@@@", "response_000007____.txt"},
		{1, "5@@12@31", "response_000001_5__12_31.txt"},
		{123456, "1/2@@@", "response_123456_1_2___.txt"},
		{1234567, "@@@", "response_1234567____.txt"},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			name := ArtifactName(test.seq, test.pattern)
			if name != test.want {
				t.Fatalf("wrong name, want %q, got %q", test.want, name)
			}
		})
	}
}
