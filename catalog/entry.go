package catalog

import (
	"minui/internal/pathutil"
	"path"
)

type Kind int

const (
	KindDirectory Kind = iota
	KindPackage
	KindRom
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindPackage:
		return "package"
	case KindRom:
		return "rom"
	}
	return "unknown"
}

// Entry is one launchable or browsable item in a Directory.
type Entry struct {
	Path          string
	Name          string
	Disambiguator string
	Kind          Kind
	AlphaBucket   int
}

func (e Entry) Filename() string {
	return path.Base(e.Path)
}

// Label is the text shown for the entry: the disambiguator when one was
// assigned, otherwise the name, without any ordering prefix.
func (e Entry) Label() string {
	if e.Disambiguator != "" {
		return pathutil.TrimSortingMeta(e.Disambiguator)
	}
	return pathutil.TrimSortingMeta(e.Name)
}

// AlphaJump records the first entry index of one first-letter bucket.
type AlphaJump struct {
	Bucket int
	Index  int
}
