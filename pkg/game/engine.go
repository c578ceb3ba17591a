package game

import (
	"math/rand/v2"

	"github.com/matzehuels/blockfall/pkg/observability"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithSeed makes piece selection deterministic.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed; e.seeded = true }
}

// WithCatalog replaces the standard catalog. The catalog is copied.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) { e.catalog = c.clone() }
}

// Engine holds all mutable state of one game session.
//
// The zero value is not usable; construct with New or Restore.
type Engine struct {
	cfg     Config
	catalog Catalog
	seed    uint64
	seeded  bool
	rng     *rand.Rand

	board   Board
	current *Piece
	next    *Piece
	score   int
	level   int
	lines   int
	status  Status
}

// New validates cfg, builds an empty board and generates the first piece pair.
// The engine starts in StatusReady.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e, err := newEngine(cfg, opts)
	if err != nil {
		return nil, err
	}
	e.reset()
	return e, nil
}

func newEngine(cfg Config, opts []Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, catalog: StandardCatalog()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.catalog.Validate(); err != nil {
		return nil, err
	}
	if !e.seeded {
		e.seed = rand.Uint64()
	}
	e.rng = rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15))
	return e, nil
}

// Config returns the construction-time configuration.
func (e *Engine) Config() Config { return e.cfg }

// Catalog returns a copy of the kinds the engine draws from.
func (e *Engine) Catalog() Catalog { return e.catalog.clone() }

// Seed returns the seed of the piece selection source.
func (e *Engine) Seed() uint64 { return e.seed }

// Status returns the current lifecycle status.
func (e *Engine) Status() Status { return e.status }

// Start moves the game to playing from any other status, including paused.
func (e *Engine) Start() {
	e.setStatus(StatusPlaying)
}

// Pause suspends a playing game. It deliberately has no effect in any other
// status: a ready or finished game is never parked as PAUSED. Resume with
// Start.
func (e *Engine) Pause() {
	if e.status != StatusPlaying {
		return
	}
	e.setStatus(StatusPaused)
}

// Reset clears the board, score, level and line count, returns to ready and
// generates a fresh piece pair.
func (e *Engine) Reset() {
	e.reset()
}

func (e *Engine) reset() {
	e.board = NewBoard(e.cfg.Width, e.cfg.Height)
	e.score = 0
	e.level = 1
	e.lines = 0
	e.current = nil
	e.next = nil
	e.setStatus(StatusReady)
	e.spawn()
}

// Move shifts the active piece one cell. It returns true when the piece moved.
//
// A blocked Down locks the piece: its cells are frozen into the board, full
// rows are cleared and scored, and the next piece spawns, possibly ending
// the game. Move returns false on that path and whenever the game is not
// playing.
func (e *Engine) Move(dir Direction) bool {
	if e.current == nil || e.status != StatusPlaying {
		return false
	}
	dx, dy, ok := dir.offset()
	if !ok {
		return false
	}
	if !e.collides(e.current, dx, dy) {
		e.current.X += dx
		e.current.Y += dy
		return true
	}
	if dir == Down {
		e.lock()
	}
	return false
}

// Rotate turns the active piece clockwise in place. A rotation that would
// collide is rejected without trying alternative offsets.
func (e *Engine) Rotate() {
	if e.current == nil || e.status != StatusPlaying {
		return
	}
	candidate := e.current.rotated()
	if !e.collides(candidate, 0, 0) {
		e.current = candidate
	}
}

// Drop moves the active piece down until it locks.
func (e *Engine) Drop() {
	if e.current == nil || e.status != StatusPlaying {
		return
	}
	for e.Move(Down) {
	}
}

// collides reports whether p, offset by (dx, dy), overlaps a wall, the floor,
// or a frozen cell. Cells above row 0 only test against the side walls.
func (e *Engine) collides(p *Piece, dx, dy int) bool {
	for _, c := range p.Cells(dx, dy) {
		if c.X < 0 || c.X >= e.cfg.Width || c.Y >= e.cfg.Height {
			return true
		}
		if c.Y >= 0 && e.board[c.Y][c.X] {
			return true
		}
	}
	return false
}

func (e *Engine) lock() {
	p := e.current
	e.freeze(p)
	cleared := e.board.clearLines()
	if cleared > 0 {
		e.addScore(cleared)
	}
	observability.Game().OnLock(p.Kind, cleared)
	e.spawn()
}

// freeze writes the piece into the board, discarding cells above row 0.
func (e *Engine) freeze(p *Piece) {
	for _, c := range p.Cells(0, 0) {
		if c.Y < 0 || c.Y >= e.cfg.Height || c.X < 0 || c.X >= e.cfg.Width {
			continue
		}
		e.board[c.Y][c.X] = true
	}
}

// addScore credits a clear at the current level, then recomputes the level.
func (e *Engine) addScore(cleared int) {
	points := pointsFor(cleared) * e.level
	e.score += points
	e.lines += cleared
	e.level = LevelFor(e.score)
	observability.Game().OnLinesCleared(cleared, points, e.level)
}

// spawn promotes the queued piece, queues a new one and ends the game if the
// promoted piece cannot be placed.
func (e *Engine) spawn() {
	if e.current == nil {
		e.current = e.draw()
	} else {
		e.current = e.next
	}
	e.next = e.draw()
	observability.Game().OnSpawn(e.current.Kind)

	if e.collides(e.current, 0, 0) {
		e.setStatus(StatusOver)
		observability.Game().OnGameOver(e.score, e.level, e.lines)
	}
}

// draw picks a kind uniformly at random and places it at the spawn anchor.
func (e *Engine) draw() *Piece {
	k := e.catalog[e.rng.IntN(len(e.catalog))]
	return newPiece(k, e.cfg.SpawnX(), 0)
}

func (e *Engine) setStatus(s Status) {
	if e.status == s {
		return
	}
	from := e.status
	e.status = s
	if from != "" {
		observability.Game().OnStatusChange(string(from), string(s))
	}
}
