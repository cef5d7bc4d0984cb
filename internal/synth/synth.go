// Package synth implements the synthesis driver: the single-threaded
// CEGIS loop of enumerate -> analyze -> collect -> distinguish ->
// interact, over an increasing depth schedule.
package synth

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/marghrid/forest/internal/ast"
	"github.com/marghrid/forest/internal/decide"
	"github.com/marghrid/forest/internal/distinguish"
	"github.com/marghrid/forest/internal/enumerate"
	"github.com/marghrid/forest/internal/interp"
	"github.com/marghrid/forest/internal/oracle"
)

// MaxIndistinguishable is the total number of distinguish failures
// tolerated before the driver settles for the shortest surviving
// candidate.
const MaxIndistinguishable = 3

// ErrNoSolution is returned when every depth up to Config.MaxDepth is
// exhausted without finding a consistent candidate.
var ErrNoSolution = errors.New("synth: no solution found")

// EnumeratorName identifies which enumerator strategy a session used,
// for the "Enumerator:" stdout tag.
type EnumeratorName string

const (
	EnumeratorMultiTree EnumeratorName = "multitree"
	EnumeratorFunny     EnumeratorName = "funny"
)

// Config configures one synthesis session.
type Config struct {
	DSLs        []*ast.DSL // one per decomposed field
	Alphabet    []rune     // field alphabet used by the distinguisher's sampler
	Decider     *decide.Decider
	Oracle      oracle.Oracle
	Pruning     bool
	MaxDepth    int // depth ceiling; the outer loop gives up after this many depths
	MaxPerField int // MultiTree per-field candidate cap
}

// Stats reports what happened during a session, independent of how a
// caller chooses to format it for stdout.
type Stats struct {
	ElapsedTime  time.Duration
	Enumerator   EnumeratorName
	Enumerated   int
	Interactions int
	Nodes        int
	Solution     *ast.Node
}

// Driver owns one synthesis session's CEGIS state.
type Driver struct {
	cfg Config

	candidates             []*ast.Node
	indistinguishableCount int
	attempts               int
	interactions           int

	die int32 // set via Stop(), checked once per CEGIS iteration
}

// New creates a driver for one session.
func New(cfg Config) *Driver {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MaxPerField <= 0 {
		cfg.MaxPerField = 200
	}
	return &Driver{cfg: cfg}
}

// Stop asks the driver to finalize and return within one CEGIS
// iteration. Safe to call from another goroutine, e.g. a signal handler.
func (d *Driver) Stop() {
	atomic.StoreInt32(&d.die, 1)
}

func (d *Driver) stopped() bool {
	return atomic.LoadInt32(&d.die) != 0
}

// Run executes the CEGIS loop and returns the first consistent
// candidate found, or ErrNoSolution if every depth up to Config.MaxDepth
// is exhausted. ctx cancellation is honored the same way Stop is.
func (d *Driver) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	var oracleWait time.Duration

	name := EnumeratorFunny
	if len(d.cfg.DSLs) > 1 {
		name = EnumeratorMultiTree
	}

	for depth := 3; depth <= d.cfg.MaxDepth; depth++ {
		en := d.newEnumerator(depth)

	depthLoop:
		for {
			if d.stopped() || ctx.Err() != nil {
				break depthLoop
			}

			p, ok := en.Next()
			if !ok {
				break depthLoop
			}
			d.attempts++

			res := d.cfg.Decider.Analyze(p)
			if !res.OK() {
				if d.cfg.Pruning {
					en.Update(res.Predicates())
				} else {
					en.Update(nil)
				}
				continue
			}

			d.candidates = append(d.candidates, p)

			if len(d.candidates) >= 2 {
				s, found := distinguish.Distinguish(d.candidates[0], d.candidates[1], d.cfg.Alphabet, 0)
				if !found {
					d.indistinguishableCount++
					d.keepShorter()
				} else {
					d.interactions++
					waitStart := time.Now()
					label, err := d.cfg.Oracle.Ask(s)
					oracleWait += time.Since(waitStart)
					if err != nil {
						break depthLoop
					}
					d.cfg.Decider.AddExample(s, label)
					d.keepConsistentWith(s, label)
				}
			}

			if d.indistinguishableCount >= MaxIndistinguishable {
				return d.finish(name, d.candidates[0], start, oracleWait), nil
			}

			en.Update(nil)
		}

		if len(d.candidates) > 0 {
			return d.finish(name, d.candidates[0], start, oracleWait), nil
		}
	}

	if len(d.candidates) > 0 {
		return d.finish(name, d.candidates[0], start, oracleWait), nil
	}
	return d.finish(name, nil, start, oracleWait), ErrNoSolution
}

// newEnumerator builds the enumerator for one outer depth iteration,
// passing depth straight through as the chosen enumerator's node-count
// bound. See internal/enumerate's package doc and DESIGN.md for why this
// single scalar stands in for the original's (depth, length) pair.
func (d *Driver) newEnumerator(depth int) enumerate.Enumerator {
	if len(d.cfg.DSLs) > 1 {
		return enumerate.NewMultiTree(d.cfg.DSLs, depth, d.cfg.MaxPerField)
	}
	return enumerate.NewFunny(d.cfg.DSLs[0], depth)
}

// keepShorter retains only the candidate with the shorter pretty-printed
// form, matching the tie-break the driver uses on distinguish failure.
func (d *Driver) keepShorter() {
	a, b := d.candidates[0], d.candidates[1]
	if len(interp.Print(b)) < len(interp.Print(a)) {
		d.candidates = []*ast.Node{b}
	} else {
		d.candidates = []*ast.Node{a}
	}
}

// keepConsistentWith drops whichever of the two current candidates
// disagrees with the oracle's label for s, retaining the other.
func (d *Driver) keepConsistentWith(s string, label bool) {
	a, b := d.candidates[0], d.candidates[1]
	pa, errA := interp.Compile(a)
	if errA == nil && pa.FullMatchString(s) == label {
		d.candidates = []*ast.Node{a}
		return
	}
	pb, errB := interp.Compile(b)
	if errB == nil && pb.FullMatchString(s) == label {
		d.candidates = []*ast.Node{b}
		return
	}
	// Neither survives (should not happen for a sound distinguisher);
	// fall back to the first so the session still terminates.
	d.candidates = []*ast.Node{a}
}

func (d *Driver) finish(name EnumeratorName, solution *ast.Node, start time.Time, oracleWait time.Duration) *Stats {
	return &Stats{
		ElapsedTime:  time.Since(start) - oracleWait,
		Enumerator:   name,
		Enumerated:   d.attempts,
		Interactions: d.interactions,
		Nodes:        nodeCount(solution),
		Solution:     solution,
	}
}

func nodeCount(n *ast.Node) int {
	if n == nil {
		return 0
	}
	return n.Size()
}
