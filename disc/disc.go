package disc

import (
	"fmt"
	"minui/cfw"
	"minui/internal/fileutil"
	"path"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

const (
	CueExt = ".cue"
	M3uExt = ".m3u"
)

// Resolver answers multi-disc questions about ROM paths. Every lookup is
// read-only; a missing playlist is "not found", never an error.
type Resolver struct {
	fs     afero.Fs
	layout cfw.Layout
}

func NewResolver(fs afero.Fs, layout cfw.Layout) *Resolver {
	return &Resolver{fs: fs, layout: layout}
}

func namedAfter(dir, ext string) string {
	return path.Join(dir, path.Base(dir)+ext)
}

// HasCue looks for <dir>/<dirname>.cue.
func (r *Resolver) HasCue(dir string) (string, bool) {
	cue := namedAfter(dir, CueExt)
	return cue, fileutil.IsFile(r.fs, cue)
}

// DirM3u looks for <dir>/<dirname>.m3u.
func (r *Resolver) DirM3u(dir string) (string, bool) {
	m3u := namedAfter(dir, M3uExt)
	return m3u, fileutil.IsFile(r.fs, m3u)
}

// HasM3u looks for the playlist named after the ROM's parent directory.
func (r *Resolver) HasM3u(rom string) (string, bool) {
	return r.DirM3u(path.Dir(rom))
}

// Discs lists the playlist's discs that exist on disk, in playlist order.
func (r *Resolver) Discs(m3u string) []string {
	lines, err := fileutil.ReadLines(r.fs, m3u)
	if err != nil {
		return nil
	}
	base := path.Dir(m3u)
	var discs []string
	for _, line := range lines {
		disc := path.Join(base, line)
		if fileutil.FileExists(r.fs, disc) {
			discs = append(discs, disc)
		}
	}
	return discs
}

// FirstDisc resolves the playlist's first entry. Only the first non-empty
// line is considered: when that disc is missing there is no first disc.
func (r *Resolver) FirstDisc(m3u string) (string, bool) {
	line, err := fileutil.ReadFirstLine(r.fs, m3u)
	if err != nil || line == "" {
		return "", false
	}
	disc := path.Join(path.Dir(m3u), line)
	return disc, fileutil.FileExists(r.fs, disc)
}

// SlotDiscFile is where the emulator records which disc a save slot used.
func (r *Resolver) SlotDiscFile(m3u string, slot int) string {
	emu := r.layout.EmuTag(m3u)
	return path.Join(r.layout.SlotDir(emu), fmt.Sprintf("%s.%d.txt", path.Base(m3u), slot))
}

// SlotDisc reads the disc recorded for slot. The record holds an absolute
// path or one relative to the playlist.
func (r *Resolver) SlotDisc(m3u string, slot int) (string, bool) {
	record, err := fileutil.ReadFirstLine(r.fs, r.SlotDiscFile(m3u, slot))
	if err != nil || record == "" {
		return "", false
	}
	if strings.HasPrefix(record, "/") {
		return record, true
	}
	return path.Join(path.Dir(m3u), record), true
}

// ResumeDisc returns the disc recorded for slot, falling back to the first
// disc when no record exists.
func (r *Resolver) ResumeDisc(m3u string, slot int) (string, bool) {
	if disc, ok := r.SlotDisc(m3u, slot); ok {
		return disc, true
	}
	return r.FirstDisc(m3u)
}

// Slot is the save slot the emulator last used for a game.
type Slot struct {
	Target string
	File   string
	Number int
}

// ResumeSlot locates the slot record for the ROM or game directory at p.
// Only games under the ROM root can be resumed. The record lives in the
// shared userdata folder keyed by the playlist when the game has one.
func (r *Resolver) ResumeSlot(p string, isDir bool) (Slot, bool) {
	if !r.layout.UnderRoms(p) {
		return Slot{}, false
	}

	target := p
	if isDir {
		if cue, ok := r.HasCue(p); ok {
			target = cue
		} else if m3u, ok := r.DirM3u(p); ok {
			target = m3u
		} else {
			return Slot{}, false
		}
	}

	if !strings.HasSuffix(strings.ToLower(target), M3uExt) {
		if m3u, ok := r.HasM3u(target); ok {
			target = m3u
		}
	}

	file := path.Join(r.layout.SlotDir(r.layout.EmuTag(target)), path.Base(target)+".txt")
	value, err := fileutil.ReadFirstLine(r.fs, file)
	if err != nil {
		return Slot{}, false
	}
	number, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		number = 0
	}
	return Slot{Target: target, File: file, Number: number}, true
}
