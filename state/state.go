package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"minui/catalog"
	"minui/cfw"
	"minui/internal/fileutil"
	"minui/internal/logging"
	"minui/internal/pathutil"
	"minui/navigation"
	"os"
	"path"
	"time"

	"github.com/spf13/afero"
)

var ErrNoState = errors.New("no saved state")

// Level is the cursor of one open directory at the time of a save.
type Level struct {
	Path         string `json:"path"`
	SelectedPath string `json:"selected_path,omitempty"`
	Selected     int    `json:"selected"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
}

// Snapshot is the sidecar written next to last.txt. It lets a restore put
// every window back exactly where it was instead of recomputing it.
type Snapshot struct {
	Leaf    string    `json:"leaf"`
	Levels  []Level   `json:"levels"`
	SavedAt time.Time `json:"saved_at"`
}

// Store persists the navigation position across launches.
type Store struct {
	fs      afero.Fs
	layout  cfw.Layout
	maxPath int
}

func NewStore(fs afero.Fs, layout cfw.Layout, maxPath int) *Store {
	if maxPath == 0 {
		maxPath = pathutil.DefaultMaxPath
	}
	return &Store{fs: fs, layout: layout, maxPath: maxPath}
}

// Save records leaf as the last opened item. While Recently Played is on
// top the leaf is replaced by that folder so a restore returns to it.
func (s *Store) Save(stack *navigation.Stack, leaf string) error {
	if top := stack.Top(); top != nil && top.Path == s.layout.RecentlyPlayed() {
		leaf = s.layout.RecentlyPlayed()
	}
	if err := pathutil.Check(leaf, s.maxPath); err != nil {
		return err
	}

	if err := fileutil.AtomicWriteFile(s.fs, s.layout.LastFile(), []byte(leaf), 0644); err != nil {
		return fmt.Errorf("saving last path: %w", err)
	}

	snapshot := Snapshot{Leaf: leaf, SavedAt: time.Now().UTC()}
	for _, dir := range stack.Levels() {
		level := Level{Path: dir.Path, Selected: dir.Selected, Start: dir.Start, End: dir.End}
		if entry, ok := dir.Current(); ok {
			level.SelectedPath = entry.Path
		}
		snapshot.Levels = append(snapshot.Levels, level)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := fileutil.AtomicWriteFile(s.fs, s.layout.SnapshotFile(), data, 0644); err != nil {
		logging.Get().Error("Unable to write snapshot", "error", err)
	}

	logging.Get().Debug("Saved state", "leaf", leaf, "levels", len(snapshot.Levels))
	return nil
}

// Last returns the saved leaf path.
func (s *Store) Last() (string, error) {
	leaf, err := fileutil.ReadFirstLine(s.fs, s.layout.LastFile())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoState
		}
		return "", err
	}
	if leaf == "" {
		return "", ErrNoState
	}
	return leaf, pathutil.Check(leaf, s.maxPath)
}

func (s *Store) snapshot() (Snapshot, bool) {
	data, err := afero.ReadFile(s.fs, s.layout.SnapshotFile())
	if err != nil {
		return Snapshot{}, false
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logging.Get().Debug("Ignoring malformed snapshot", "error", err)
		return Snapshot{}, false
	}
	return snapshot, true
}

// segments lists the ancestors of leaf below the storage root, outermost
// first, leaf last.
func (s *Store) segments(leaf string) []string {
	var chain []string
	for p := leaf; p != s.layout.SDCard; p = path.Dir(p) {
		if p == "/" || p == "." {
			return nil
		}
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Restore replays the saved leaf onto a stack holding only the root. Each
// ancestor is selected in the current top and opened when it is a folder,
// stopping at the deepest level that still resolves. It reports whether a
// saved position was found.
func (s *Store) Restore(stack *navigation.Stack) (bool, error) {
	leaf, err := s.Last()
	if err != nil {
		if errors.Is(err, ErrNoState) {
			return false, nil
		}
		return false, err
	}
	if stack.Top() == nil {
		return false, nil
	}

	logger := logging.Get()
	chain := s.segments(leaf)
	inCollection := pathutil.PrefixMatch(s.layout.Collections(), leaf)
	filename := "/" + path.Base(leaf)

	for i, segment := range chain {
		if segment == s.layout.Roms() {
			continue
		}
		final := i == len(chain)-1

		collated := ""
		if pathutil.SuffixMatch(")", segment) && s.layout.IsConsoleDir(segment) {
			collated = catalog.CollatePrefix(segment)
		}

		top := stack.Top()
		for j, entry := range top.Entries {
			if !pathutil.ExactMatch(entry.Path, segment) &&
				!(collated != "" && pathutil.PrefixMatch(collated, entry.Path)) &&
				!(inCollection && pathutil.SuffixMatch(filename, entry.Path)) {
				continue
			}

			top.Reveal(j)

			if final && entry.Path != s.layout.RecentlyPlayed() && !s.layout.UnderCollections(entry.Path) {
				break
			}
			if entry.Kind == catalog.KindDirectory {
				if _, err := stack.Push(entry.Path, false); err != nil {
					return true, err
				}
			}
			break
		}
	}

	s.applySnapshot(stack, leaf)
	logger.Debug("Restored state", "leaf", leaf, "depth", stack.Depth())
	return true, nil
}

// applySnapshot reinstates saved windows for the levels that still list the
// same item at the saved cursor.
func (s *Store) applySnapshot(stack *navigation.Stack, leaf string) {
	snapshot, ok := s.snapshot()
	if !ok || snapshot.Leaf != leaf {
		return
	}
	levels := stack.Levels()
	for i, level := range snapshot.Levels {
		if i >= len(levels) || levels[i].Path != level.Path {
			return
		}
		dir := levels[i]
		if level.Selected < 0 || level.Selected >= dir.Len() || dir.Entries[level.Selected].Path != level.SelectedPath {
			continue
		}
		dir.SetWindow(level.Selected, level.Start, level.End)
	}
}

// TakeAutoResume consumes the auto-resume marker written by the power
// manager. It returns the absolute path of the game to resume when the
// marker named one that still exists.
func (s *Store) TakeAutoResume() (string, bool) {
	marker := s.layout.AutoResumeFile()
	if !fileutil.FileExists(s.fs, marker) {
		return "", false
	}
	rel, err := fileutil.ReadFirstLine(s.fs, marker)
	if rmErr := fileutil.RemoveIfExists(s.fs, marker); rmErr != nil {
		logging.Get().Error("Unable to remove auto resume marker", "error", rmErr)
	}
	if err != nil || rel == "" {
		return "", false
	}
	rom := s.layout.Absolute(rel)
	if !fileutil.FileExists(s.fs, rom) {
		return "", false
	}
	return rom, true
}
