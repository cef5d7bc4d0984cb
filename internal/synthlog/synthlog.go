// Package synthlog sets up the structured loggers each component uses,
// and formats the "[info]"-tagged stdout lines a harness process parses
// back out of a synthregex session.
package synthlog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/marghrid/forest/internal/synth"
)

// New creates the root logger for a synthregex process, named "synth",
// writing to w at the given level. Components do not get named
// sub-loggers; callers use this root logger directly.
func New(w io.Writer, level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            "synth",
		Output:          w,
		Level:           level,
		IncludeLocation: false,
	})
}

// tagPrefix precedes every harness-parseable stdout line.
const tagPrefix = "[info]"

// WriteStats writes the tagged summary lines internal/harness parses
// back out of a synthregex process's stdout, in the order documented for
// the external interface: elapsed time, enumerator, enumerated count,
// interactions, node count, and finally the solution (or its absence).
func WriteStats(w io.Writer, stats *synth.Stats, solutionText string) {
	fmt.Fprintf(w, "%s Elapsed time: %.6f\n", tagPrefix, stats.ElapsedTime.Seconds())
	fmt.Fprintf(w, "%s Enumerator: %s\n", tagPrefix, stats.Enumerator)
	fmt.Fprintf(w, "%s Enumerated: %d\n", tagPrefix, stats.Enumerated)
	fmt.Fprintf(w, "%s Interactions: %d\n", tagPrefix, stats.Interactions)
	fmt.Fprintf(w, "%s Nodes: %d\n", tagPrefix, stats.Nodes)
	if stats.Solution != nil {
		fmt.Fprintf(w, "%s   Solution: %s\n", tagPrefix, solutionText)
	}
}

// ParsedStats is what internal/harness recovers from a synthregex
// child's stdout; fields absent from the output (a timed-out process may
// never print Solution) are left at their zero value.
type ParsedStats struct {
	ElapsedTime  float64
	Enumerator   string
	Enumerated   int
	Interactions int
	Nodes        int
	Solution     string
	HasSolution  bool
	Compared     string // only set in compare-times mode
}

const solutionTag = tagPrefix + "   Solution: "
const comparedTag = tagPrefix + " Compared: "

// WriteCompared writes the extra tagged line a compare-times session
// prints after running both the multitree and funny drivers over the
// same examples, summarizing both elapsed times in text free-form
// enough for a human reader (no fixed schema is implied downstream of
// the tag itself).
func WriteCompared(w io.Writer, text string) {
	fmt.Fprintf(w, "%s%s\n", comparedTag, text)
}

// ParseStats scans r line by line for the tagged lines WriteStats emits,
// tolerating interleaved untagged output (a child process's own
// diagnostics) by ignoring any line without a recognized prefix.
func ParseStats(r io.Reader) (*ParsedStats, error) {
	stats := &ParsedStats{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, solutionTag):
			stats.Solution = line[len(solutionTag):]
			stats.HasSolution = true
		case strings.HasPrefix(line, comparedTag):
			stats.Compared = line[len(comparedTag):]
		case strings.HasPrefix(line, tagPrefix+" Elapsed time: "):
			v, _ := strconv.ParseFloat(strings.TrimPrefix(line, tagPrefix+" Elapsed time: "), 64)
			stats.ElapsedTime = v
		case strings.HasPrefix(line, tagPrefix+" Enumerator: "):
			stats.Enumerator = strings.TrimPrefix(line, tagPrefix+" Enumerator: ")
		case strings.HasPrefix(line, tagPrefix+" Enumerated: "):
			v, _ := strconv.Atoi(strings.TrimPrefix(line, tagPrefix+" Enumerated: "))
			stats.Enumerated = v
		case strings.HasPrefix(line, tagPrefix+" Interactions: "):
			v, _ := strconv.Atoi(strings.TrimPrefix(line, tagPrefix+" Interactions: "))
			stats.Interactions = v
		case strings.HasPrefix(line, tagPrefix+" Nodes: "):
			v, _ := strconv.Atoi(strings.TrimPrefix(line, tagPrefix+" Nodes: "))
			stats.Nodes = v
		}
	}
	return stats, scanner.Err()
}
