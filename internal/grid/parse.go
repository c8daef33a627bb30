package grid

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/tile"
)

// Characters of the text map format.
const (
	wallMarker  = 'X'
	spawnMarker = '@'
)

// Parse reads a map from its text form.
//
// The first line is the map name. Up to Height following lines hold up to
// Width cells each: 'X' is a wall, '@' marks the spawn (the cell stays
// empty), anything else is empty floor. Exactly one '@' is required.
func Parse(text string) (*Map, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader is Parse over an io.Reader. Read failures are reported as
// ErrorIO. Lines may be of any length; cells past Width are ignored.
func ParseReader(r io.Reader) (*Map, error) {
	br := bufio.NewReader(r)

	name, ok, err := readLine(br)
	if err != nil {
		return nil, ioError(err)
	}
	if !ok {
		return nil, formatError("name required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, formatError("empty name")
	}

	var rows []string
	for len(rows) < Height {
		line, ok, err := readLine(br)
		if err != nil {
			return nil, ioError(err)
		}
		if !ok {
			break
		}
		rows = append(rows, line)
	}

	return fromRows(name, rows)
}

// readLine returns the next line without its terminator. ok is false at the
// end of input.
func readLine(br *bufio.Reader) (line string, ok bool, err error) {
	line, err = br.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// fromRows builds a map from already split rows. Shared by the text and
// YAML formats.
func fromRows(name string, rows []string) (*Map, error) {
	m := &Map{Name: name}
	spawns := 0

	for y, line := range rows {
		if y >= Height {
			break
		}
		line = strings.TrimRight(line, "\r")
		x := 0
		for _, c := range line {
			if x >= Width {
				break
			}
			switch c {
			case wallMarker:
				m.tiles[index(x, y)] = tile.Wall(0)
			case spawnMarker:
				m.Spawn = core.Pt(x, y)
				spawns++
			}
			x++
		}
	}

	switch {
	case spawns == 0:
		return nil, formatError("no snake")
	case spawns > 1:
		return nil, formatError("more than one snake")
	}

	m.ComputeWallMasks()
	return m, nil
}
