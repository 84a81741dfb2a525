package catalog

import (
	"fmt"
	"minui/internal/pathutil"
	"slices"
)

// SortEntries stable-sorts entries by name, ignoring case.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return pathutil.CompareFold(a.Name, b.Name)
	})
}

// Orderer applies aliases, disambiguates equal names and builds the alpha
// jump table for a set of entries.
type Orderer struct {
	RomRoot string
}

// Order consumes entries and returns the final listing. Entries whose alias
// is hidden are dropped; the listing is re-sorted when any alias applied so
// that structural orderings (ledger, playlist, collection) survive
// otherwise. When alphabetize is false no jump table is built and every
// entry gets AlphaBucket -1.
func (o Orderer) Order(entries []Entry, aliases AliasMap, alphabetize bool) ([]Entry, []AlphaJump) {
	ordered := make([]Entry, 0, len(entries))
	aliased := false
	for _, entry := range entries {
		if alias, ok := aliases.Lookup(entry.Filename()); ok {
			entry.Name = alias
			aliased = true
			if pathutil.IsHidden(alias) {
				continue
			}
		}
		ordered = append(ordered, entry)
	}

	if aliased {
		SortEntries(ordered)
	}

	var jumps []AlphaJump
	bucket := -1
	for i := range ordered {
		entry := &ordered[i]
		entry.Disambiguator = ""
		entry.AlphaBucket = -1

		if i > 0 {
			prior := &ordered[i-1]
			if pathutil.ExactMatch(prior.Name, entry.Name) {
				if pathutil.ExactMatch(prior.Filename(), entry.Filename()) {
					prior.Disambiguator = o.uniqueName(*prior)
					entry.Disambiguator = o.uniqueName(*entry)
				} else {
					prior.Disambiguator = prior.Filename()
					entry.Disambiguator = entry.Filename()
				}
			}
		}

		if alphabetize {
			b := pathutil.AlphaBucket(entry.Name)
			if b != bucket {
				jumps = append(jumps, AlphaJump{Bucket: b, Index: i})
				bucket = b
			}
			entry.AlphaBucket = len(jumps) - 1
		}
	}

	return ordered, jumps
}

// uniqueName labels a duplicate ROM with the system folder that holds it.
func (o Orderer) uniqueName(entry Entry) string {
	system := pathutil.EmuTag(entry.Path, o.RomRoot)
	if o.RomRoot != "" && pathutil.PrefixMatch(o.RomRoot+"/", entry.Path) {
		system = pathutil.SystemDir(entry.Path, o.RomRoot)
	}
	return fmt.Sprintf("%s (%s)", entry.Name, system)
}
