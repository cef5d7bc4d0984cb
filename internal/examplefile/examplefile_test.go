package examplefile

import (
	"strings"
	"testing"
)

func TestParseDefault(t *testing.T) {
	input := "+42\n+100\n-abc\n-\n\n+7\n"
	examples, err := ParseDefault(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDefault: %v", err)
	}
	want := []Example{
		{Value: "42", Valid: true},
		{Value: "100", Valid: true},
		{Value: "abc", Valid: false},
		{Value: "", Valid: false},
		{Value: "7", Valid: true},
	}
	if len(examples) != len(want) {
		t.Fatalf("got %d examples, want %d", len(examples), len(want))
	}
	for i := range want {
		if examples[i] != want[i] {
			t.Errorf("examples[%d] = %+v, want %+v", i, examples[i], want[i])
		}
	}
}

func TestParseDefaultRejectsBadSigil(t *testing.T) {
	_, err := ParseDefault(strings.NewReader("42\n"))
	if err == nil {
		t.Fatal("expected error for missing sigil")
	}
}

func TestParseDefaultPreservesInteriorWhitespace(t *testing.T) {
	examples, err := ParseDefault(strings.NewReader("+(123) 456\n"))
	if err != nil {
		t.Fatalf("ParseDefault: %v", err)
	}
	if examples[0].Value != "(123) 456" {
		t.Errorf("Value = %q, want %q", examples[0].Value, "(123) 456")
	}
}

func TestParseResnax(t *testing.T) {
	input := "42\tvalid\nabc\tinvalid\n"
	examples, err := ParseResnax(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseResnax: %v", err)
	}
	if len(examples) != 2 || examples[0].Valid != true || examples[1].Valid != false {
		t.Errorf("unexpected parse result: %+v", examples)
	}
}

func TestSplit(t *testing.T) {
	examples := []Example{
		{Value: "a", Valid: true},
		{Value: "b", Valid: false},
		{Value: "c", Valid: true},
	}
	valid, invalid := Split(examples)
	if len(valid) != 2 || len(invalid) != 1 {
		t.Errorf("Split() = %v, %v", valid, invalid)
	}
}
