package cfw

import (
	"minui/internal/fileutil"
	"path"

	"github.com/spf13/afero"
)

// Emulators finds installed emulator packages. Device-specific paks under
// SDCARD/Emus/<platform> take precedence over the bundled system paks.
type Emulators struct {
	fs     afero.Fs
	layout Layout
}

func NewEmulators(fs afero.Fs, layout Layout) *Emulators {
	return &Emulators{fs: fs, layout: layout}
}

func (e *Emulators) candidates(tag string) []string {
	pak := tag + PakSuffix
	return []string{
		path.Join(e.layout.Emus(), pak, LaunchScript),
		path.Join(e.layout.Paks(), "Emus", pak, LaunchScript),
	}
}

// LaunchPath returns the launch script for the emulator tag.
func (e *Emulators) LaunchPath(tag string) (string, bool) {
	for _, candidate := range e.candidates(tag) {
		if fileutil.FileExists(e.fs, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (e *Emulators) Exists(tag string) bool {
	_, ok := e.LaunchPath(tag)
	return ok
}

// ForPath reports whether an emulator exists for the system that owns the
// ROM at p.
func (e *Emulators) ForPath(p string) bool {
	return e.Exists(e.layout.EmuTag(p))
}
