// Package script parses and runs textual engine command scripts.
//
// A script is plain text. Each whitespace-separated token is one command and
// '#' starts a comment that runs to the end of the line:
//
//	start
//	left*2 rotate     # move twice, then rotate
//	drop
//	state             # record a snapshot
//
// Commands and their short forms:
//
//	start            Start or resume the game
//	pause            Pause a running game
//	reset            Reset to a fresh READY game
//	left, l          Move the piece one column left
//	right, r         Move the piece one column right
//	down, d          Move the piece one row down (may lock it)
//	rotate, u        Rotate the piece clockwise
//	drop, x          Hard drop
//	state, s         Record a snapshot of the session
//
// Any command may carry a repeat suffix "*N" with N >= 1.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/blockfall/pkg/errors"
)

// Op is a script command.
type Op string

const (
	OpStart  Op = "start"
	OpPause  Op = "pause"
	OpReset  Op = "reset"
	OpLeft   Op = "left"
	OpRight  Op = "right"
	OpDown   Op = "down"
	OpRotate Op = "rotate"
	OpDrop   Op = "drop"
	OpState  Op = "state"
)

// maxRepeat bounds the "*N" suffix so a typo cannot stall a run.
const maxRepeat = 10000

var aliases = map[string]Op{
	"start":  OpStart,
	"pause":  OpPause,
	"reset":  OpReset,
	"left":   OpLeft,
	"l":      OpLeft,
	"right":  OpRight,
	"r":      OpRight,
	"down":   OpDown,
	"d":      OpDown,
	"rotate": OpRotate,
	"u":      OpRotate,
	"drop":   OpDrop,
	"x":      OpDrop,
	"state":  OpState,
	"s":      OpState,
}

// Step is one parsed command.
type Step struct {
	Op    Op
	Count int // repetitions, at least 1
	Line  int // 1-based source line
}

// String formats the step the way it would be written in a script.
func (s Step) String() string {
	if s.Count > 1 {
		return fmt.Sprintf("%s*%d", s.Op, s.Count)
	}
	return string(s.Op)
}

// Script is an ordered list of steps.
type Script []Step

// String formats the script with one step per line.
func (s Script) String() string {
	var b strings.Builder
	for _, st := range s {
		b.WriteString(st.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Len returns the number of engine calls the script makes once repeats are
// expanded.
func (s Script) Len() int {
	n := 0
	for _, st := range s {
		n += st.Count
	}
	return n
}

// Parse reads a script. The first malformed token is reported as an
// INVALID_SCRIPT error wrapping an *errors.LineError.
func Parse(r io.Reader) (Script, error) {
	var out Script
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			st, err := parseToken(tok)
			if err != nil {
				err.Line = line
				return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
			}
			st.Line = line
			out = append(out, st)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "read script")
	}
	return out, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (Script, error) {
	return Parse(strings.NewReader(s))
}

func parseToken(tok string) (Step, *errors.LineError) {
	name, rep, hasRep := strings.Cut(tok, "*")
	op, ok := aliases[strings.ToLower(name)]
	if !ok {
		return Step{}, &errors.LineError{Token: tok, Message: "unknown command"}
	}
	count := 1
	if hasRep {
		n, err := strconv.Atoi(rep)
		if err != nil || n < 1 {
			return Step{}, &errors.LineError{Token: tok, Message: "repeat count must be a positive integer"}
		}
		if n > maxRepeat {
			return Step{}, &errors.LineError{Token: tok, Message: fmt.Sprintf("repeat count exceeds %d", maxRepeat)}
		}
		count = n
	}
	return Step{Op: op, Count: count}, nil
}
