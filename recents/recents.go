package recents

import (
	"minui/cfw"
	"minui/disc"
	"minui/internal/fileutil"
	"minui/internal/logging"
	"minui/internal/pathutil"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

const Capacity = 24

// Recent is one recently played game. Path is relative to the storage root
// and keeps its leading slash so the ledger survives a remount.
type Recent struct {
	Path      string
	Alias     string
	Available bool
}

// Ledger is the newest-first list of recently played games backed by
// recent.txt.
type Ledger struct {
	fs     afero.Fs
	layout cfw.Layout
	emus   *cfw.Emulators
	discs  *disc.Resolver
	items  []Recent
}

func NewLedger(fs afero.Fs, layout cfw.Layout, emus *cfw.Emulators, discs *disc.Resolver) *Ledger {
	return &Ledger{fs: fs, layout: layout, emus: emus, discs: discs}
}

func (l *Ledger) newRecent(rel, alias string) Recent {
	return Recent{
		Path:      rel,
		Alias:     alias,
		Available: l.emus.ForPath(l.layout.Absolute(rel)),
	}
}

// parentOf returns the folder of a relative path with its trailing slash.
func parentOf(rel string) string {
	return path.Dir(rel) + "/"
}

// Load rebuilds the ledger from disk. A pending disc change moves the new
// disc to the top. Games that no longer exist are dropped and the cleaned
// ledger is written back. Older discs of a multi-disc game stay in the file
// but are hidden by Records and Visible.
func (l *Ledger) Load() error {
	logger := logging.Get()

	l.items = l.items[:0]

	changeDisc := l.layout.ChangeDiscFile()
	if fileutil.FileExists(l.fs, changeDisc) {
		target, err := fileutil.ReadFirstLine(l.fs, changeDisc)
		if err == nil && target != "" && fileutil.FileExists(l.fs, target) {
			rel := l.layout.Relative(target)
			l.items = append(l.items, l.newRecent(rel, ""))
			logger.Debug("Promoted changed disc", "path", rel)
		}
		if err := fileutil.RemoveIfExists(l.fs, changeDisc); err != nil {
			logger.Error("Unable to remove change disc marker", "error", err)
		}
	}

	lines, err := fileutil.ReadLines(l.fs, l.layout.RecentFile())
	if err != nil && !os.IsNotExist(err) {
		logger.Error("Unable to read recents", "error", err)
	}

	for _, line := range lines {
		rel, alias, _ := strings.Cut(line, "\t")
		if rel == "" || len(l.items) >= Capacity || l.IndexOf(rel) >= 0 {
			continue
		}
		if !fileutil.FileExists(l.fs, l.layout.Absolute(rel)) {
			continue
		}
		l.items = append(l.items, l.newRecent(rel, alias))
	}

	logger.Debug("Loaded recents", "count", len(l.items), "visible", len(l.Visible()))

	return l.Save()
}

// collapsed returns the ledger with every multi-disc game reduced to its
// most recently played disc.
func (l *Ledger) collapsed() []Recent {
	var families []string
	items := make([]Recent, 0, len(l.items))
	for _, recent := range l.items {
		if _, ok := l.discs.HasM3u(l.layout.Absolute(recent.Path)); ok {
			parent := parentOf(recent.Path)
			if containsPrefix(families, parent) {
				continue
			}
			families = append(families, parent)
		}
		items = append(items, recent)
	}
	return items
}

func containsPrefix(prefixes []string, p string) bool {
	for _, prefix := range prefixes {
		if pathutil.PrefixMatch(prefix, p) {
			return true
		}
	}
	return false
}

// Save writes the ledger as path[\talias] lines, newest first.
func (l *Ledger) Save() error {
	lines := make([]string, 0, len(l.items))
	for _, recent := range l.items {
		line := recent.Path
		if recent.Alias != "" {
			line += "\t" + recent.Alias
		}
		lines = append(lines, line)
	}
	return fileutil.WriteLines(l.fs, l.layout.RecentFile(), lines)
}

// Bump moves the game at the absolute path p to the top, adding it when
// new and evicting the oldest entries past Capacity. A game already in the
// ledger keeps its alias.
func (l *Ledger) Bump(p, alias string) error {
	rel := l.layout.Relative(p)
	idx := l.IndexOf(rel)
	switch {
	case idx == -1:
		if len(l.items) >= Capacity {
			l.items = l.items[:Capacity-1]
		}
		l.items = append([]Recent{l.newRecent(rel, alias)}, l.items...)
	case idx > 0:
		recent := l.items[idx]
		copy(l.items[1:idx+1], l.items[:idx])
		l.items[0] = recent
	}
	return l.Save()
}

func (l *Ledger) IndexOf(rel string) int {
	for i, recent := range l.items {
		if recent.Path == rel {
			return i
		}
	}
	return -1
}

// Visible returns the games whose emulator is installed.
func (l *Ledger) Visible() []Recent {
	var visible []Recent
	for _, recent := range l.collapsed() {
		if recent.Available {
			visible = append(visible, recent)
		}
	}
	return visible
}

// Records returns every game in the ledger, including unavailable ones.
func (l *Ledger) Records() []Recent {
	return l.collapsed()
}

// Len counts the stored lines, hidden discs included.
func (l *Ledger) Len() int {
	return len(l.items)
}
