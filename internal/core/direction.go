package core

// Direction is one of the four grid headings.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists all headings in clockwise order starting from Up.
func Directions() []Direction {
	return []Direction{DirUp, DirRight, DirDown, DirLeft}
}

// Opposite returns the reverse heading. Opposite(Opposite(d)) == d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	default:
		return DirRight
	}
}

// Clockwise returns the heading a quarter turn clockwise from d.
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// IsVertical reports whether d points up or down.
func (d Direction) IsVertical() bool {
	return d == DirUp || d == DirDown
}

// Delta returns the unit offset for one step in direction d.
// Y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	default:
		return -1, 0
	}
}

// String returns a lowercase name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// IsClockwiseTurn reports whether turning from one heading to another is a
// quarter turn clockwise (Right->Down, Down->Left, Left->Up, Up->Right).
func IsClockwiseTurn(from, to Direction) bool {
	return from.Clockwise() == to
}
