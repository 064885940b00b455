package timefmt

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"00:00.000", 0},
		{"00:12.500", 12.5},
		{"01:05.250", 65.25},
		{"10:00", 600},
		{"99:59.999", 99*60 + 59.999},
		// Minutes past 59 come back from the service occasionally.
		{"75:30.000", 75*60 + 30},
	}

	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", c.in, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Parse(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "12", "abc:def", "-1:00.000", "1:-5"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00.000"},
		{12.5, "00:12.500"},
		{65.25, "01:05.250"},
		{600, "10:00.000"},
		{-3, "00:00.000"},
		// Rounding must not leave 60 in the seconds field.
		{59.9996, "01:00.000"},
	}

	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%f) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAddOffset_RoundTrip(t *testing.T) {
	// Adding then subtracting an offset reproduces the original timestamp
	// within formatting precision.
	for _, ts := range []string{"00:00.000", "00:17.333", "01:40.000", "12:59.999"} {
		for _, offset := range []float64{0, 40, 80, 123.456} {
			shifted := AddOffset(ts, offset)
			back := AddOffset(shifted, -offset)

			orig, err := Parse(ts)
			if err != nil {
				t.Fatalf("Parse(%q): %v", ts, err)
			}
			got, err := Parse(back)
			if err != nil {
				t.Fatalf("Parse(%q): %v", back, err)
			}
			if math.Abs(got-orig) > 0.001 {
				t.Errorf("round trip %q +%f-%f = %q (%f != %f)", ts, offset, offset, back, got, orig)
			}
		}
	}
}

func TestAddOffset_MalformedPassthrough(t *testing.T) {
	for _, ts := range []string{"", "nonsense", "1.5"} {
		if got := AddOffset(ts, 40); got != ts {
			t.Errorf("AddOffset(%q, 40) = %q, want input unchanged", ts, got)
		}
	}
}
