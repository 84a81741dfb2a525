package cfw

import (
	"minui/internal/pathutil"
	"path"
	"strings"
)

// Layout resolves every on-device path the catalog reads or writes. All
// paths are absolute and slash separated.
type Layout struct {
	SDCard   string
	Platform string
	ArchTag  string
	TempDir  string
}

func NewLayout(sdcard, platform, archTag, tempDir string) Layout {
	if archTag == "" {
		archTag = platform
	}
	return Layout{
		SDCard:   path.Clean(sdcard),
		Platform: platform,
		ArchTag:  archTag,
		TempDir:  path.Clean(tempDir),
	}
}

func (l Layout) Roms() string           { return path.Join(l.SDCard, "Roms") }
func (l Layout) Collections() string    { return path.Join(l.SDCard, "Collections") }
func (l Layout) RecentlyPlayed() string { return path.Join(l.SDCard, "Recently Played") }
func (l Layout) Tools() string          { return path.Join(l.SDCard, "Tools", l.Platform) }
func (l Layout) Emus() string           { return path.Join(l.SDCard, "Emus", l.Platform) }
func (l Layout) Paks() string           { return path.Join(l.SDCard, ".system", l.Platform, "paks") }
func (l Layout) Userdata() string       { return path.Join(l.SDCard, ".userdata", l.Platform) }
func (l Layout) ArchUserdata() string   { return path.Join(l.SDCard, ".userdata", l.ArchTag) }
func (l Layout) SharedUserdata() string { return path.Join(l.SDCard, ".userdata", "shared") }

func (l Layout) RecentFile() string     { return path.Join(l.ArchUserdata(), ".minui", "recent.txt") }
func (l Layout) AutoResumeFile() string { return path.Join(l.ArchUserdata(), ".minui", "auto_resume.txt") }
func (l Layout) PlayLogFile() string    { return path.Join(l.ArchUserdata(), ".minui", "playlog.db") }
func (l Layout) SimpleModeFlag() string { return path.Join(l.Userdata(), "enable-simple-mode") }

func (l Layout) LastFile() string       { return path.Join(l.TempDir, "last.txt") }
func (l Layout) SnapshotFile() string   { return path.Join(l.TempDir, "last.json") }
func (l Layout) ChangeDiscFile() string { return path.Join(l.TempDir, "change_disc.txt") }
func (l Layout) ResumeSlotFile() string { return path.Join(l.TempDir, "resume_slot.txt") }
func (l Layout) NextFile() string       { return path.Join(l.TempDir, "next") }

// SlotDir is where the emulator frontend records per-game save slot state.
func (l Layout) SlotDir(emuTag string) string {
	return path.Join(l.SharedUserdata(), ".minui", emuTag)
}

func (l Layout) IsRoot(p string) bool {
	return p == l.SDCard
}

// IsConsoleDir reports whether p is a direct child of the ROM root.
func (l Layout) IsConsoleDir(p string) bool {
	return path.Dir(p) == l.Roms() && p != l.Roms()
}

func (l Layout) UnderRoms(p string) bool {
	return pathutil.PrefixMatch(l.Roms()+"/", p)
}

// UnderCollections reports whether p lives strictly inside the Collections
// folder.
func (l Layout) UnderCollections(p string) bool {
	return pathutil.PrefixMatch(l.Collections()+"/", p)
}

// Relative strips the storage root from p. Paths outside the root are
// returned unchanged.
func (l Layout) Relative(p string) string {
	if strings.HasPrefix(p, l.SDCard+"/") {
		return p[len(l.SDCard):]
	}
	return p
}

func (l Layout) Absolute(rel string) string {
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return l.SDCard + rel
}

func (l Layout) EmuTag(p string) string {
	return pathutil.EmuTag(p, l.Roms())
}

func (l Layout) DisplayName(p string) string {
	return pathutil.DisplayName(p, l.Platform)
}
