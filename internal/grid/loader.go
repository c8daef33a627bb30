package grid

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed maps
var builtinMaps embed.FS

// Builtin returns the file system of maps shipped with the game.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinMaps, "maps")
	if err != nil {
		panic(fmt.Sprintf("grid: embedded maps missing: %v", err))
	}
	return sub
}

// Entry is a map loaded from a file, with the file it came from.
type Entry struct {
	Map  *Map
	Path string
}

// Loader reads every map file found in a file system.
type Loader struct {
	FS fs.FS

	// OnError is called for each file that fails to parse.
	// Such files are skipped; nil ignores them silently.
	OnError func(path string, err error)
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// LoadAll walks the file system and parses all supported files.
// Results are sorted by path for deterministic ordering.
func (l *Loader) LoadAll() ([]Entry, error) {
	var entries []Entry

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSupported(p) {
			return nil
		}

		m, err := l.LoadFile(p)
		if err != nil {
			if l.OnError != nil {
				l.OnError(p, err)
			}
			return nil
		}
		entries = append(entries, Entry{Map: m, Path: p})
		return nil
	})
	if err != nil {
		return nil, ioError(err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// LoadFile parses a single file, choosing the format by extension.
func (l *Loader) LoadFile(p string) (*Map, error) {
	f, err := l.FS.Open(p)
	if err != nil {
		return nil, ioError(err)
	}
	defer f.Close()

	switch ext(p) {
	case ".yaml", ".yml":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, ioError(err)
		}
		return ParseYAML(data)
	default:
		return ParseReader(f)
	}
}

// IsSupported reports whether a file name has a map extension.
func IsSupported(name string) bool {
	switch ext(name) {
	case ".txt", ".map", ".yaml", ".yml":
		return true
	}
	return false
}

func ext(name string) string {
	return strings.ToLower(path.Ext(name))
}
