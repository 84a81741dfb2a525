package catalog

import (
	"bufio"
	"io"
	"minui/internal/gamelist"
	"minui/internal/logging"
	"minui/internal/pathutil"
	"path"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// AliasMap maps a filename to the label shown in its place. A label that
// starts with "." hides the file.
type AliasMap map[string]string

func (m AliasMap) Lookup(filename string) (string, bool) {
	alias, ok := m[filename]
	return alias, ok
}

// ParseAliasMap reads map.txt content. Lines without a tab are skipped and a
// repeated filename keeps its last label.
func ParseAliasMap(r io.Reader) AliasMap {
	aliases := make(AliasMap)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := pathutil.NormalizeLine(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		aliases[key] = value
	}
	return aliases
}

// AliasLoader reads and caches the alias map of each directory.
type AliasLoader struct {
	fs          afero.Fs
	cache       *lru.Cache[string, AliasMap]
	useGamelist bool
}

func NewAliasLoader(fs afero.Fs, size int, useGamelist bool) *AliasLoader {
	cache, err := lru.New[string, AliasMap](max(size, 1))
	if err != nil {
		logging.Get().Error("Unable to create alias cache", "error", err)
	}
	return &AliasLoader{fs: fs, cache: cache, useGamelist: useGamelist}
}

// Load returns the alias map for dir. Missing or unreadable files yield an
// empty map. Names from gamelist.xml apply only where map.txt is silent.
func (l *AliasLoader) Load(dir string) AliasMap {
	if l.cache != nil {
		if aliases, ok := l.cache.Get(dir); ok {
			return aliases
		}
	}

	aliases := make(AliasMap)

	if l.useGamelist {
		gl, err := gamelist.Load(l.fs, dir)
		if err != nil {
			logging.Get().Debug("Ignoring malformed gamelist", "dir", dir, "error", err)
		}
		for filename, name := range gl.Names() {
			if !strings.HasPrefix(name, ".") {
				aliases[filename] = name
			}
		}
	}

	if f, err := l.fs.Open(path.Join(dir, pathutil.MapFile)); err == nil {
		for key, value := range ParseAliasMap(f) {
			aliases[key] = value
		}
		f.Close()
	}

	if l.cache != nil {
		l.cache.Add(dir, aliases)
	}
	return aliases
}

// Hides reports whether a listing should leave out filename because it
// only feeds the alias map.
func (l *AliasLoader) Hides(filename string) bool {
	return l.useGamelist && filename == gamelist.FileName
}

func (l *AliasLoader) Forget(dir string) {
	if l.cache != nil {
		l.cache.Remove(dir)
	}
}

func (l *AliasLoader) Purge() {
	if l.cache != nil {
		l.cache.Purge()
	}
}

// ExportGamelist writes the aliases of dir's map.txt into dir's gamelist.xml,
// updating games already listed there. It returns the number of aliases
// written.
func ExportGamelist(fs afero.Fs, dir string) (int, error) {
	f, err := fs.Open(path.Join(dir, pathutil.MapFile))
	if err != nil {
		return 0, newCatalogError("export", dir, err)
	}
	aliases := ParseAliasMap(f)
	f.Close()

	gl, err := gamelist.Load(fs, dir)
	if err != nil {
		return 0, newCatalogError("export", dir, err)
	}

	filenames := make([]string, 0, len(aliases))
	for filename, alias := range aliases {
		if alias == "" || strings.HasPrefix(alias, ".") {
			continue
		}
		filenames = append(filenames, filename)
	}
	slices.Sort(filenames)

	for _, filename := range filenames {
		gl.AddOrUpdateEntry("./"+filename, map[string]string{gamelist.NameElement: aliases[filename]})
	}
	if err := gl.Save(fs, dir); err != nil {
		return 0, newCatalogError("export", dir, err)
	}
	return len(filenames), nil
}
