package game

import (
	"fmt"
	"strings"

	"github.com/matzehuels/blockfall/pkg/errors"
)

// State is a point-in-time copy of an engine's session. Nothing in a State
// aliases engine memory.
type State struct {
	Board   Board  `json:"board"`
	Current *Piece `json:"current"`
	Next    *Piece `json:"next"`
	Score   int    `json:"score"`
	Level   int    `json:"level"`
	Lines   int    `json:"lines"`
	Status  Status `json:"status"`
}

// State returns a snapshot of the session for rendering or persistence.
func (e *Engine) State() State {
	return State{
		Board:   e.board.Clone(),
		Current: e.current.Clone(),
		Next:    e.next.Clone(),
		Score:   e.score,
		Level:   e.level,
		Lines:   e.lines,
		Status:  e.status,
	}
}

// String renders the board with the active piece overlaid as '@'.
func (s State) String() string {
	return render(s.Board, s.Current)
}

// Summary is a one-line description of the tally.
func (s State) Summary() string {
	next := "-"
	if s.Next != nil {
		next = s.Next.Kind
	}
	return fmt.Sprintf("status=%s score=%d level=%d lines=%d next=%s", s.Status, s.Score, s.Level, s.Lines, next)
}

// Restore rebuilds an engine from a snapshot taken with Engine.State.
//
// The snapshot must match cfg's dimensions and satisfy the session
// invariants: a known status, a non-negative score, a level derived from
// that score, and an active piece whenever the game is playing. A playing or
// paused piece must sit inside the board clear of frozen cells. The restored
// engine draws future pieces from a fresh source unless WithSeed is given.
func Restore(cfg Config, st State, opts ...Option) (*Engine, error) {
	e, err := newEngine(cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := validateState(cfg, st); err != nil {
		return nil, err
	}
	e.board = st.Board.Clone()
	e.current = st.Current.Clone()
	e.next = st.Next.Clone()
	e.score = st.Score
	e.level = st.Level
	e.lines = st.Lines
	e.status = st.Status
	if e.current != nil && (e.status == StatusPlaying || e.status == StatusPaused) && e.collides(e.current, 0, 0) {
		return nil, errors.New(errors.ErrCodeInvalidState, "active piece %q at (%d, %d) overlaps the walls or frozen cells",
			e.current.Kind, e.current.X, e.current.Y)
	}
	if e.current == nil {
		e.spawn()
	} else if e.next == nil {
		e.next = e.draw()
	}
	return e, nil
}

func validateState(cfg Config, st State) error {
	if st.Board.Height() != cfg.Height || st.Board.Width() != cfg.Width {
		return errors.New(errors.ErrCodeInvalidState, "board is %dx%d, config expects %dx%d",
			st.Board.Width(), st.Board.Height(), cfg.Width, cfg.Height)
	}
	for y, row := range st.Board {
		if len(row) != cfg.Width {
			return errors.New(errors.ErrCodeInvalidState, "board row %d has %d cells, want %d", y, len(row), cfg.Width)
		}
	}
	if !st.Status.Valid() {
		return errors.New(errors.ErrCodeInvalidState, "unknown status %q", st.Status)
	}
	if st.Score < 0 || st.Lines < 0 {
		return errors.New(errors.ErrCodeInvalidState, "score and lines must not be negative")
	}
	if st.Level != LevelFor(st.Score) {
		return errors.New(errors.ErrCodeInvalidState, "level %d does not match score %d", st.Level, st.Score)
	}
	if st.Status == StatusPlaying && st.Current == nil {
		return errors.New(errors.ErrCodeInvalidState, "playing session has no active piece")
	}
	for _, p := range []*Piece{st.Current, st.Next} {
		if p == nil {
			continue
		}
		if err := errors.ValidateShape(p.Kind, p.Shape); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidState, err, "piece %q", p.Kind)
		}
	}
	return nil
}

// Rows returns the board one string per row, for line-by-line output.
func (s State) Rows() []string {
	return strings.Split(s.String(), "\n")
}
