package models

import "fmt"

// Position is a board coordinate. X grows to the east, Y grows to the south.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String provides a string representation of Position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add offsets a position
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Manhattan returns the 4-connected grid distance between two positions
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is one of the five legal per-turn moves
type Direction int

const (
	Stay Direction = iota
	North
	East
	South
	West
)

// Cardinals lists the four moving directions in a fixed order
var Cardinals = [4]Direction{North, East, South, West}

var directionNames = [...]string{"Stay", "North", "East", "South", "West"}

// String returns the move name the game server expects
func (d Direction) String() string {
	if d < Stay || d > West {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Offset returns the unit step taken by a direction
func (d Direction) Offset() Position {
	switch d {
	case North:
		return Position{X: 0, Y: -1}
	case East:
		return Position{X: 1, Y: 0}
	case South:
		return Position{X: 0, Y: 1}
	case West:
		return Position{X: -1, Y: 0}
	default:
		return Position{}
	}
}

// ParseDirection converts a move name back to a Direction
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return Stay, fmt.Errorf("invalid direction %q", s)
}

// MarshalText encodes the direction as its move name
func (d Direction) MarshalText() ([]byte, error) {
	if d < Stay || d > West {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a move name
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
