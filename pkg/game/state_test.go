package game

import (
	"strings"
	"testing"

	"github.com/matzehuels/blockfall/pkg/errors"
)

func TestStateIsDeepCopy(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	st := e.State()

	st.Board[19][0] = true
	st.Current.X = 99
	st.Current.Shape[0][0] = !st.Current.Shape[0][0]
	st.Next.Y = 42

	if e.board[19][0] {
		t.Error("mutating the snapshot board changed the engine board")
	}
	if e.current.X == 99 || e.next.Y == 42 {
		t.Error("mutating snapshot pieces changed engine pieces")
	}
	if e.current.Shape[0][0] == st.Current.Shape[0][0] {
		t.Error("snapshot shape aliases the engine shape")
	}
}

func TestStateString(t *testing.T) {
	e := newTestEngine(t, 4, 3, WithCatalog(Catalog{{Name: "O", Shape: shapeO, Color: "#f0f000"}}))
	e.board[2][3] = true

	want := "@@..\n@@..\n...#"
	if got := e.State().String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if rows := e.State().Rows(); len(rows) != 3 {
		t.Errorf("Rows() returned %d rows", len(rows))
	}
}

func TestStateSummary(t *testing.T) {
	st := State{Status: StatusPlaying, Score: 140, Level: 1, Lines: 2, Next: &Piece{Kind: "T"}}
	got := st.Summary()
	for _, want := range []string{"status=PLAYING", "score=140", "level=1", "lines=2", "next=T"} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() = %q, missing %q", got, want)
		}
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	for range 5 {
		e.Move(Left)
		e.Drop()
	}
	e.Move(Right)
	st := e.State()

	r, err := Restore(e.Config(), st, WithSeed(5))
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	got := r.State()
	if got.String() != st.String() {
		t.Errorf("restored board differs:\n%s\nwant\n%s", got, st)
	}
	if got.Score != st.Score || got.Level != st.Level || got.Lines != st.Lines || got.Status != st.Status {
		t.Errorf("restored tally = %s, want %s", got.Summary(), st.Summary())
	}
	if got.Next.Kind != st.Next.Kind {
		t.Errorf("restored next = %s, want %s", got.Next.Kind, st.Next.Kind)
	}

	// The restored engine keeps playing.
	if got.Status == StatusPlaying {
		r.Drop()
		if r.State().Board.Filled() == got.Board.Filled() && r.State().Lines == got.Lines {
			t.Error("restored engine did not lock a piece on Drop()")
		}
	}
}

func TestRestoreWithoutPiecesSpawns(t *testing.T) {
	cfg := DefaultConfig()
	st := State{Board: NewBoard(cfg.Width, cfg.Height), Level: 1, Status: StatusReady}

	r, err := Restore(cfg, st, WithSeed(1))
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if r.current == nil || r.next == nil {
		t.Error("Restore() should generate missing pieces")
	}
}

func TestRestoreRejectsInconsistentState(t *testing.T) {
	cfg := DefaultConfig()
	piece := &Piece{Kind: "O", Shape: shapeO, X: 3}
	valid := func() State {
		return State{Board: NewBoard(10, 20), Current: piece, Next: piece, Level: 1, Status: StatusPlaying}
	}

	tests := []struct {
		name   string
		mutate func(*State)
	}{
		{"wrong height", func(s *State) { s.Board = NewBoard(10, 19) }},
		{"wrong width", func(s *State) { s.Board = NewBoard(9, 20) }},
		{"ragged row", func(s *State) { s.Board[4] = s.Board[4][:3] }},
		{"unknown status", func(s *State) { s.Status = "DANCING" }},
		{"negative score", func(s *State) { s.Score = -40 }},
		{"level mismatch", func(s *State) { s.Score = 1200; s.Level = 1 }},
		{"playing without piece", func(s *State) { s.Current = nil }},
		{"malformed piece", func(s *State) { s.Next = &Piece{Kind: "bad", Shape: Shape{{true, true}}} }},
		{"piece off the board", func(s *State) { s.Current = &Piece{Kind: "O", Shape: shapeO, X: 50, Y: 50} }},
		{"piece past the floor", func(s *State) { s.Current = &Piece{Kind: "O", Shape: shapeO, X: 3, Y: 19} }},
		{"paused piece on frozen cells", func(s *State) {
			s.Status = StatusPaused
			s.Board[1][3] = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := valid()
			tt.mutate(&st)
			_, err := Restore(cfg, st)
			if !errors.Is(err, errors.ErrCodeInvalidState) {
				t.Errorf("Restore() error = %v, want INVALID_STATE", err)
			}
		})
	}

	if _, err := Restore(cfg, valid()); err != nil {
		t.Errorf("Restore(valid) error: %v", err)
	}
}

func TestRestoreAcceptsOverlappingPieceWhenOver(t *testing.T) {
	cfg := DefaultConfig()
	st := State{
		Board:   NewBoard(cfg.Width, cfg.Height),
		Current: &Piece{Kind: "O", Shape: shapeO, X: 3},
		Level:   1,
		Status:  StatusOver,
	}
	st.Board[0][3] = true

	r, err := Restore(cfg, st, WithSeed(1))
	if err != nil {
		t.Fatalf("Restore(game over) error: %v", err)
	}
	if r.Status() != StatusOver {
		t.Errorf("status = %s, want OVER", r.Status())
	}
}
