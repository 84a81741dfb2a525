package navigation

import (
	"minui/catalog"
	"minui/disc"
	"minui/internal/logging"
)

// Builder produces the listing for a path.
type Builder interface {
	Build(p string) (*catalog.Directory, error)
}

// PushResult is either a new top directory or, when a game folder was
// followed, the ROM that should be launched instead.
type PushResult struct {
	Directory *catalog.Directory
	Launch    string
}

// restoreHint remembers the cursor of the last popped directory so that
// reopening it from the same parent selection lands on the same spot.
type restoreHint struct {
	depth    int
	relative int
	selected int
	start    int
	end      int
}

// Stack is the chain of open directories from the root to the current one.
type Stack struct {
	builder Builder
	discs   *disc.Resolver
	levels  []*catalog.Directory
	hint    restoreHint
}

func NewStack(builder Builder, discs *disc.Resolver) *Stack {
	return &Stack{
		builder: builder,
		discs:   discs,
		hint:    restoreHint{depth: -1, relative: -1},
	}
}

// Push opens p on top of the stack. With follow set, a folder holding a
// <dir>.cue, or a <dir>.m3u whose first disc exists, is not opened: the
// result names the ROM to launch and the stack is unchanged.
func (s *Stack) Push(p string, follow bool) (PushResult, error) {
	logger := logging.Get()

	if follow && s.discs != nil {
		if cue, ok := s.discs.HasCue(p); ok {
			logger.Debug("Following cue sheet", "dir", p, "cue", cue)
			return PushResult{Launch: cue}, nil
		}
		if m3u, ok := s.discs.DirM3u(p); ok {
			if first, ok := s.discs.FirstDisc(m3u); ok {
				logger.Debug("Following playlist", "dir", p, "disc", first)
				return PushResult{Launch: first}, nil
			}
		}
	}

	dir, err := s.builder.Build(p)
	if err != nil {
		return PushResult{}, err
	}

	if top := s.Top(); top != nil && top.Len() > 0 && s.hint.depth == len(s.levels) && top.Selected == s.hint.relative {
		if !dir.SetWindow(s.hint.selected, s.hint.start, s.hint.end) {
			logger.Debug("Discarding stale restore hint", "path", p)
		}
	}

	s.levels = append(s.levels, dir)
	logger.Debug("Pushed directory", "path", p, "depth", len(s.levels), "entries", dir.Len())
	return PushResult{Directory: dir}, nil
}

// Pop closes the top directory and remembers its cursor. The root is never
// popped.
func (s *Stack) Pop() bool {
	if len(s.levels) <= 1 {
		return false
	}
	top := s.levels[len(s.levels)-1]
	s.hint.selected, s.hint.start, s.hint.end = top.Selected, top.Start, top.End

	s.levels[len(s.levels)-1] = nil
	s.levels = s.levels[:len(s.levels)-1]

	s.hint.depth = len(s.levels)
	s.hint.relative = s.Top().Selected
	logging.Get().Debug("Popped directory", "path", top.Path, "depth", len(s.levels))
	return true
}

// Top returns the current directory, or nil when the stack is empty.
func (s *Stack) Top() *catalog.Directory {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[len(s.levels)-1]
}

func (s *Stack) Depth() int {
	return len(s.levels)
}

// Levels returns the open directories from the root up.
func (s *Stack) Levels() []*catalog.Directory {
	return s.levels
}

// Reset drops every level and any pending restore hint.
func (s *Stack) Reset() {
	clear(s.levels)
	s.levels = s.levels[:0]
	s.hint = restoreHint{depth: -1, relative: -1}
}
