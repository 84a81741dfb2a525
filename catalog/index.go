package catalog

import (
	"fmt"
	"minui/cfw"
	"minui/disc"
	"minui/internal/fileutil"
	"minui/internal/logging"
	"minui/internal/pathutil"
	"minui/recents"
	"path"
	"strings"

	"github.com/spf13/afero"
)

const (
	discLabel = "Disc %d"
	m3uExt    = ".m3u"
	txtExt    = ".txt"
)

// RecentSource supplies the recently played games shown at the root.
type RecentSource interface {
	Visible() []recents.Recent
}

type IndexerOptions struct {
	Rows       int
	MaxPath    int
	SimpleMode bool
}

// Indexer turns a path into a populated Directory. It owns no state besides
// the alias cache held by its AliasLoader.
type Indexer struct {
	fs      afero.Fs
	layout  cfw.Layout
	emus    *cfw.Emulators
	aliases *AliasLoader
	recents RecentSource
	discs   *disc.Resolver
	order   Orderer
	opts    IndexerOptions
}

func NewIndexer(fs afero.Fs, layout cfw.Layout, emus *cfw.Emulators, aliases *AliasLoader, source RecentSource, discs *disc.Resolver, opts IndexerOptions) *Indexer {
	if opts.MaxPath == 0 {
		opts.MaxPath = pathutil.DefaultMaxPath
	}
	return &Indexer{
		fs:      fs,
		layout:  layout,
		emus:    emus,
		aliases: aliases,
		recents: source,
		discs:   discs,
		order:   Orderer{RomRoot: layout.Roms()},
		opts:    opts,
	}
}

func (ix *Indexer) Layout() cfw.Layout {
	return ix.layout
}

func (ix *Indexer) Aliases() *AliasLoader {
	return ix.aliases
}

// Build lists p. Only an over-long path is an error; anything unreadable
// produces an empty directory.
func (ix *Indexer) Build(p string) (*Directory, error) {
	if err := pathutil.Check(p, ix.opts.MaxPath); err != nil {
		return nil, newCatalogError("build", p, err)
	}

	logger := logging.Get()

	var entries []Entry
	switch {
	case ix.layout.IsRoot(p):
		entries = ix.rootEntries()
	case p == ix.layout.RecentlyPlayed():
		entries = ix.recentEntries()
	case ix.layout.UnderCollections(p) && pathutil.SuffixMatch(txtExt, p):
		entries = ix.collectionEntries(p)
	case pathutil.SuffixMatch(m3uExt, p):
		entries = ix.discEntries(p)
	default:
		entries = ix.listingEntries(p)
	}

	alphabetize := p != ix.layout.RecentlyPlayed() && !pathutil.PrefixMatch(ix.layout.Collections(), p)
	ordered, jumps := ix.order.Order(entries, ix.aliases.Load(p), alphabetize)

	logger.Debug("Built directory", "path", p, "entries", len(ordered), "alpha_buckets", len(jumps))

	return NewDirectory(p, ix.layout.DisplayName(p), ordered, jumps, ix.opts.Rows), nil
}

func (ix *Indexer) newEntry(p string, kind Kind) (Entry, bool) {
	if err := pathutil.Check(p, ix.opts.MaxPath); err != nil {
		logging.Get().Debug("Skipping entry", "error", err)
		return Entry{}, false
	}
	return Entry{
		Path:        p,
		Name:        ix.layout.DisplayName(p),
		Kind:        kind,
		AlphaBucket: -1,
	}, true
}

func kindBySuffix(p string) Kind {
	if pathutil.SuffixMatch(cfw.PakSuffix, p) {
		return KindPackage
	}
	return KindRom
}

// HasRoms reports whether a system folder is worth showing: its emulator is
// installed and it holds at least one visible file.
func (ix *Indexer) HasRoms(dirName string) bool {
	if !ix.emus.Exists(pathutil.EmuTag(dirName, "")) {
		return false
	}
	listing := fileutil.ListDirectory(ix.fs, path.Join(ix.layout.Roms(), dirName))
	return len(fileutil.FilterVisible(listing, pathutil.IsHidden)) > 0
}

func (ix *Indexer) HasCollections() bool {
	listing := fileutil.ListDirectory(ix.fs, ix.layout.Collections())
	return len(fileutil.FilterVisible(listing, pathutil.IsHidden)) > 0
}

func (ix *Indexer) HasRecents() bool {
	return ix.recents != nil && len(ix.recents.Visible()) > 0
}

func (ix *Indexer) rootEntries() []Entry {
	var root []Entry
	if ix.HasRecents() {
		if entry, ok := ix.newEntry(ix.layout.RecentlyPlayed(), KindDirectory); ok {
			root = append(root, entry)
		}
	}

	systems := ix.systemEntries()

	if ix.HasCollections() {
		if len(systems) > 0 {
			if entry, ok := ix.newEntry(ix.layout.Collections(), KindDirectory); ok {
				root = append(root, entry)
			}
		} else {
			for _, info := range fileutil.FilterVisible(fileutil.ListDirectory(ix.fs, ix.layout.Collections()), pathutil.IsHidden) {
				if entry, ok := ix.newEntry(path.Join(ix.layout.Collections(), info.Name()), KindDirectory); ok {
					systems = append(systems, entry)
				}
			}
			SortEntries(systems)
		}
	}

	root = append(root, systems...)

	tools := ix.layout.Tools()
	if !ix.opts.SimpleMode && fileutil.FileExists(ix.fs, tools) {
		if entry, ok := ix.newEntry(tools, KindDirectory); ok {
			root = append(root, entry)
		}
	}
	return root
}

// systemEntries lists the system folders under the ROM root. Collated
// variants share a display name and appear once. The ROM root map.txt may
// rename systems but cannot hide them.
func (ix *Indexer) systemEntries() []Entry {
	var found []Entry
	for _, info := range fileutil.ListDirectory(ix.fs, ix.layout.Roms()) {
		if pathutil.IsHidden(info.Name()) || !ix.HasRoms(info.Name()) {
			continue
		}
		if entry, ok := ix.newEntry(path.Join(ix.layout.Roms(), info.Name()), KindDirectory); ok {
			found = append(found, entry)
		}
	}
	SortEntries(found)

	systems := make([]Entry, 0, len(found))
	for _, entry := range found {
		if n := len(systems); n > 0 && pathutil.ExactMatch(systems[n-1].Name, entry.Name) {
			continue
		}
		systems = append(systems, entry)
	}

	if len(systems) == 0 {
		return systems
	}

	renames := ix.aliases.Load(ix.layout.Roms())
	renamed := false
	for i := range systems {
		if alias, ok := renames.Lookup(systems[i].Filename()); ok {
			systems[i].Name = alias
			renamed = true
		}
	}
	if renamed {
		SortEntries(systems)
	}
	return systems
}

func (ix *Indexer) recentEntries() []Entry {
	if ix.recents == nil {
		return nil
	}
	var entries []Entry
	for _, recent := range ix.recents.Visible() {
		p := ix.layout.Absolute(recent.Path)
		entry, ok := ix.newEntry(p, kindBySuffix(p))
		if !ok {
			continue
		}
		if recent.Alias != "" {
			entry.Name = recent.Alias
		}
		entries = append(entries, entry)
	}
	return entries
}

// collectionEntries resolves each line of a collection file against the
// storage root, in file order, skipping games that no longer exist.
func (ix *Indexer) collectionEntries(p string) []Entry {
	lines, err := fileutil.ReadLines(ix.fs, p)
	if err != nil {
		logging.Get().Debug("Unable to read collection", "path", p, "error", err)
		return nil
	}
	var entries []Entry
	for _, line := range lines {
		target := ix.layout.Absolute(line)
		if !fileutil.FileExists(ix.fs, target) {
			continue
		}
		if entry, ok := ix.newEntry(target, kindBySuffix(target)); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (ix *Indexer) discEntries(p string) []Entry {
	var entries []Entry
	for i, discPath := range ix.discs.Discs(p) {
		entry, ok := ix.newEntry(discPath, KindRom)
		if !ok {
			continue
		}
		entry.Name = discName(i + 1)
		entries = append(entries, entry)
	}
	return entries
}

func discName(n int) string {
	return fmt.Sprintf(discLabel, n)
}

// CollatePrefix returns the prefix shared by collated system folders: the
// path up to and including its last "(", or the whole path.
func CollatePrefix(p string) string {
	if i := strings.LastIndex(p, "("); i >= 0 {
		return p[:i+1]
	}
	return p
}

func (ix *Indexer) listingEntries(p string) []Entry {
	var entries []Entry
	if ix.layout.IsConsoleDir(p) {
		prefix := CollatePrefix(p)
		for _, info := range fileutil.ListDirectory(ix.fs, ix.layout.Roms()) {
			if !info.IsDir() || pathutil.IsHidden(info.Name()) {
				continue
			}
			system := path.Join(ix.layout.Roms(), info.Name())
			if !pathutil.PrefixMatch(prefix, system) {
				continue
			}
			entries = ix.appendListing(entries, system)
		}
	} else {
		entries = ix.appendListing(entries, p)
	}
	SortEntries(entries)
	return entries
}

func (ix *Indexer) appendListing(entries []Entry, dir string) []Entry {
	for _, info := range fileutil.FilterVisible(fileutil.ListDirectory(ix.fs, dir), pathutil.IsHidden) {
		if ix.aliases.Hides(info.Name()) {
			continue
		}
		full := path.Join(dir, info.Name())
		var kind Kind
		switch {
		case info.IsDir() && pathutil.SuffixMatch(cfw.PakSuffix, info.Name()):
			kind = KindPackage
		case info.IsDir():
			kind = KindDirectory
		case pathutil.PrefixMatch(ix.layout.Collections(), full):
			kind = KindDirectory
		default:
			kind = KindRom
		}
		if entry, ok := ix.newEntry(full, kind); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
