// Package oracle labels distinguishing inputs, either by asking a human
// over stdin or by consulting a ground-truth regex.
package oracle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var yesValues = map[string]bool{
	"yes": true, "valid": true, "true": true, "1": true, "+": true, "v": true, "y": true, "t": true,
}

var noValues = map[string]bool{
	"no": true, "invalid": true, "false": true, "0": true, "-": true, "i": true, "n": true, "f": true,
}

// Oracle labels a distinguishing input as valid or invalid.
type Oracle interface {
	Ask(input string) (valid bool, err error)
}

// Stdin is an interactive oracle: it prompts the user on w and reads
// answers from r, re-prompting on any response outside yes_values/no_values.
type Stdin struct {
	r *bufio.Reader
	w io.Writer
}

// NewStdin creates a stdin-backed oracle.
func NewStdin(r io.Reader, w io.Writer) *Stdin {
	return &Stdin{r: bufio.NewReader(r), w: w}
}

// Ask prompts for a label for input, re-prompting until a recognized
// answer is given. Recognized answers are matched case-insensitively
// after trimming trailing whitespace.
func (s *Stdin) Ask(input string) (bool, error) {
	for {
		fmt.Fprintf(s.w, "Is %q valid? ", input)
		line, err := s.r.ReadString('\n')
		if err != nil && line == "" {
			return false, err
		}
		answer := strings.ToLower(strings.TrimRight(line, " \t\r\n"))
		if yesValues[answer] {
			return true, nil
		}
		if noValues[answer] {
			return false, nil
		}
		fmt.Fprintf(s.w, "unrecognized response %q, please answer yes/no\n", answer)
	}
}

// GroundTruth is an automated oracle: a distinguishing input is valid iff
// it fully matches the supplied ground-truth regex.
type GroundTruth struct {
	re *regexp.Regexp
}

// NewGroundTruth compiles pattern as an anchored full-match ground truth.
func NewGroundTruth(pattern string) (*GroundTruth, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, err
	}
	return &GroundTruth{re: re}, nil
}

// Ask returns whether input fully matches the ground-truth regex.
func (g *GroundTruth) Ask(input string) (bool, error) {
	return g.re.MatchString(input), nil
}
