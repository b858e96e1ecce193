package capture

import "fmt"

type Direction byte

const (
	North Direction = iota
	South
	East
	West
	Stop
)

var AllDirections = []Direction{North, South, East, West, Stop}

var directionNames = [...]string{
	North: "North",
	South: "South",
	East:  "East",
	West:  "West",
	Stop:  "Stop",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return Stop, fmt.Errorf("bad direction: %q", s)
}

func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return Stop
}

// Vector returns the unit displacement for d; y grows North.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(bs []byte) error {
	v, err := ParseDirection(string(bs))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
