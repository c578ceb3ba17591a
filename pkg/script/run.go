package script

import (
	"context"

	"github.com/matzehuels/blockfall/pkg/game"
)

// Snapshot is a state recorded by a "state" command.
type Snapshot struct {
	Line  int        `json:"line"`
	State game.State `json:"state"`
}

// Result summarises a run.
type Result struct {
	Calls     int        `json:"calls"`     // engine calls made
	Moves     int        `json:"moves"`     // moves that changed the piece position
	Snapshots []Snapshot `json:"snapshots"` // states recorded by "state"
	Final     game.State `json:"final"`
}

// Run applies the script to e in order. It stops between calls when ctx is
// cancelled and returns the partial result together with ctx.Err().
func Run(ctx context.Context, e *game.Engine, s Script) (*Result, error) {
	res := &Result{}
	for _, st := range s {
		for range st.Count {
			if err := ctx.Err(); err != nil {
				res.Final = e.State()
				return res, err
			}
			apply(e, st, res)
			res.Calls++
		}
	}
	res.Final = e.State()
	return res, nil
}

func apply(e *game.Engine, st Step, res *Result) {
	switch st.Op {
	case OpStart:
		e.Start()
	case OpPause:
		e.Pause()
	case OpReset:
		e.Reset()
	case OpLeft:
		res.move(e.Move(game.Left))
	case OpRight:
		res.move(e.Move(game.Right))
	case OpDown:
		res.move(e.Move(game.Down))
	case OpRotate:
		e.Rotate()
	case OpDrop:
		e.Drop()
	case OpState:
		res.Snapshots = append(res.Snapshots, Snapshot{Line: st.Line, State: e.State()})
	}
}

func (r *Result) move(ok bool) {
	if ok {
		r.Moves++
	}
}
