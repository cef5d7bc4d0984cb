package oracle

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdinAskRecognizesYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"Y\n", true},
		{"TRUE  \n", true},
		{"no\n", false},
		{"0\n", false},
		{"-\n", false},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		o := NewStdin(strings.NewReader(tc.input), &out)
		got, err := o.Ask("abc")
		if err != nil {
			t.Fatalf("Ask(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Ask with input %q = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestStdinAskReprompts(t *testing.T) {
	var out bytes.Buffer
	o := NewStdin(strings.NewReader("garbage\nyes\n"), &out)
	got, err := o.Ask("abc")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !got {
		t.Error("expected eventual yes after reprompt")
	}
	if !strings.Contains(out.String(), "unrecognized") {
		t.Error("expected a reprompt message to be written")
	}
}

func TestGroundTruthFullMatchSemantics(t *testing.T) {
	g, err := NewGroundTruth(`\d+`)
	if err != nil {
		t.Fatalf("NewGroundTruth: %v", err)
	}
	tests := []struct {
		input string
		want  bool
	}{
		{"123", true},
		{"12a", false},
		{"a12", false},
		{"", false},
	}
	for _, tc := range tests {
		got, err := g.Ask(tc.input)
		if err != nil {
			t.Fatalf("Ask(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Ask(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
