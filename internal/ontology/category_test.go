package ontology

import (
	"reflect"
	"strings"
	"testing"
)

func TestCategory_Add(t *testing.T) {
	c := NewCategory("shot_types")

	c.Add("wide")
	c.Add("close_up")
	c.Add("wide")
	c.Add("")

	if got := c.Count("wide"); got != 2 {
		t.Errorf("Count(wide) = %d, want 2", got)
	}
	if got := c.Count("close_up"); got != 1 {
		t.Errorf("Count(close_up) = %d, want 1", got)
	}
	if got := c.Count("medium"); got != 0 {
		t.Errorf("Count(medium) = %d, want 0", got)
	}
	if got := c.Count(""); got != 0 {
		t.Errorf("empty value must be ignored, Count(\"\") = %d", got)
	}
	if !reflect.DeepEqual(c.Values, []string{"wide", "close_up"}) {
		t.Errorf("Values = %v, want first-seen order [wide close_up]", c.Values)
	}
}

func TestCategory_AddAfterDecode(t *testing.T) {
	// A decoded category can arrive with a nil frequency map.
	c := &Category{Name: "emotions", Values: nil, Frequency: nil}
	c.Add("joy")
	if got := c.Count("joy"); got != 1 {
		t.Errorf("Count(joy) = %d, want 1", got)
	}
}

func TestCategory_TopValues(t *testing.T) {
	c := NewCategory("emotions")
	for i := 0; i < 3; i++ {
		c.Add("trust")
	}
	for i := 0; i < 5; i++ {
		c.Add("excitement")
	}
	c.Add("curiosity")
	c.Add("urgency") // same count as curiosity; first-seen wins the tie

	got := c.TopValues(3)
	want := []string{"excitement", "trust", "curiosity"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopValues(3) = %v, want %v", got, want)
	}

	if got := c.TopValues(10); len(got) != 4 {
		t.Errorf("TopValues(10) returned %d values, want all 4", len(got))
	}
}

func TestCategory_Text(t *testing.T) {
	c := NewCategory("shot_types")
	if c.Text() != "" {
		t.Errorf("empty category Text() = %q, want empty", c.Text())
	}

	c.Add("wide")
	c.Add("wide")
	c.Add("close_up")

	text := c.Text()
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Text() has %d lines, want 2:\n%s", len(lines), text)
	}
	if lines[0] != "  wide (2x)" {
		t.Errorf("first line = %q, want %q", lines[0], "  wide (2x)")
	}
	if lines[1] != "  close_up (1x)" {
		t.Errorf("second line = %q, want %q", lines[1], "  close_up (1x)")
	}
}
