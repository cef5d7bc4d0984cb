// Package examplefile parses the examples-file formats accepted by
// cmd/synthregex: the default '+'/'-' sigil format, and the alternate
// "resnax" tab-separated format.
package examplefile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Example is one labeled input string, as read from an examples file.
type Example struct {
	Value string
	Valid bool
}

// FormatError is returned when an examples file cannot be parsed.
type FormatError struct {
	Line    int
	Content string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("examplefile: line %d: malformed example %q", e.Line, e.Content)
}

// ParseDefault reads the default examples format: lines beginning with
// '+' are valid examples, lines beginning with '-' are invalid examples.
// Everything after the sigil up to the newline is the literal example;
// interior whitespace is preserved verbatim. Blank lines are skipped.
func ParseDefault(r io.Reader) ([]Example, error) {
	var examples []Example
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case '+':
			examples = append(examples, Example{Value: line[1:], Valid: true})
		case '-':
			examples = append(examples, Example{Value: line[1:], Valid: false})
		default:
			return nil, &FormatError{Line: lineNo, Content: line}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}

// ParseResnax reads the alternate tab-separated format: one example per
// line, "<value>\t<label>" where label is "valid" or "invalid".
func ParseResnax(r io.Reader) ([]Example, error) {
	var examples []Example
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, &FormatError{Line: lineNo, Content: line}
		}
		var valid bool
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "valid":
			valid = true
		case "invalid":
			valid = false
		default:
			return nil, &FormatError{Line: lineNo, Content: line}
		}
		examples = append(examples, Example{Value: parts[0], Valid: valid})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}

// Split partitions examples into valid and invalid value slices, the
// shape the decomposer and decider consume.
func Split(examples []Example) (valid, invalid []string) {
	for _, e := range examples {
		if e.Valid {
			valid = append(valid, e.Value)
		} else {
			invalid = append(invalid, e.Value)
		}
	}
	return valid, invalid
}
