package game

// Status is the lifecycle state of a session.
type Status string

const (
	StatusReady   Status = "READY"
	StatusPlaying Status = "PLAYING"
	StatusPaused  Status = "PAUSED"
	StatusOver    Status = "OVER"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusReady, StatusPlaying, StatusPaused, StatusOver:
		return true
	}
	return false
}

// Direction is a movement command.
type Direction int

const (
	Left Direction = iota
	Right
	Down
)

// offset maps a direction to its (dx, dy). ok is false for unknown values.
func (d Direction) offset() (dx, dy int, ok bool) {
	switch d {
	case Left:
		return -1, 0, true
	case Right:
		return 1, 0, true
	case Down:
		return 0, 1, true
	}
	return 0, 0, false
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return "unknown"
}
