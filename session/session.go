package session

import (
	"minui/catalog"
	"minui/cfw"
	"minui/disc"
	"minui/internal"
	"minui/internal/fileutil"
	"minui/internal/logging"
	"minui/launch"
	"minui/navigation"
	"minui/playlog"
	"minui/recents"
	"minui/state"

	"github.com/spf13/afero"
	"go.uber.org/atomic"
)

// Session wires every catalog component for one launcher run.
type Session struct {
	Layout     cfw.Layout
	Emulators  *cfw.Emulators
	Discs      *disc.Resolver
	Aliases    *catalog.AliasLoader
	Ledger     *recents.Ledger
	Indexer    *catalog.Indexer
	Stack      *navigation.Stack
	Store      *state.Store
	Dispatcher *launch.Dispatcher

	fs         afero.Fs
	config     *internal.Config
	playLog    *playlog.Log
	simpleMode bool
	quit       atomic.Bool
}

type Option func(*Session)

// WithPlayLog records launches in log and closes it with the session.
func WithPlayLog(log *playlog.Log) Option {
	return func(s *Session) {
		s.playLog = log
	}
}

// LayoutFor resolves the device layout described by config, falling back to
// the environment for the storage root and platform.
func LayoutFor(config *internal.Config) cfw.Layout {
	sdcard := config.SDCardPath
	if sdcard == "" {
		sdcard = cfw.GetBasePath()
	}
	return cfw.NewLayout(sdcard, cfw.GetPlatform(config.Platform), config.ArchTag, config.TempDir)
}

func New(config *internal.Config, fs afero.Fs, opts ...Option) *Session {
	s := &Session{fs: fs, config: config}
	for _, opt := range opts {
		opt(s)
	}

	s.Layout = LayoutFor(config)
	s.simpleMode = config.SimpleMode || fileutil.FileExists(fs, s.Layout.SimpleModeFlag())

	s.Emulators = cfw.NewEmulators(fs, s.Layout)
	s.Discs = disc.NewResolver(fs, s.Layout)
	s.Aliases = catalog.NewAliasLoader(fs, config.AliasCacheSize, config.UseGamelist)
	s.Ledger = recents.NewLedger(fs, s.Layout, s.Emulators, s.Discs)
	s.Indexer = catalog.NewIndexer(fs, s.Layout, s.Emulators, s.Aliases, s.Ledger, s.Discs, catalog.IndexerOptions{
		Rows:       config.RowCount,
		MaxPath:    config.MaxPathLength,
		SimpleMode: s.simpleMode,
	})
	s.Stack = navigation.NewStack(s.Indexer, s.Discs)
	s.Store = state.NewStore(fs, s.Layout, config.MaxPathLength)

	var recorder launch.Recorder
	if s.playLog != nil {
		recorder = s.playLog
	}
	s.Dispatcher = launch.NewDispatcher(fs, s.Layout, s.Emulators, s.Discs, s.Ledger, s.Stack, s.Store, recorder)
	return s
}

// PlayLog returns the attached play log, or nil.
func (s *Session) PlayLog() *playlog.Log {
	return s.playLog
}

func (s *Session) SimpleMode() bool {
	return s.simpleMode
}

// Start loads the ledger and either auto-resumes a game or opens the root
// and restores the last position. An auto-resume ends the session at once.
func (s *Session) Start() (launch.Result, error) {
	logger := logging.Get()

	if s.playLog != nil {
		if closed, err := s.playLog.CloseOpen(); err != nil {
			logger.Error("Unable to close play activity", "error", err)
		} else if closed > 0 {
			logger.Debug("Closed play activity", "count", closed)
		}
	}

	if err := s.Ledger.Load(); err != nil {
		logger.Error("Unable to load recents", "error", err)
	}

	result, resumed, err := s.Dispatcher.AutoResume()
	if err != nil {
		return launch.Result{}, err
	}
	if resumed {
		s.Quit()
		return result, nil
	}

	s.Stack.Reset()
	s.Aliases.Purge()
	pushed, err := s.Stack.Push(s.Layout.SDCard, false)
	if err != nil {
		return launch.Result{}, err
	}

	if _, err := s.Store.Restore(s.Stack); err != nil {
		logger.Error("Unable to restore state", "error", err)
	}
	return launch.Result{Directory: pushed.Directory}, nil
}

func (s *Session) Top() *catalog.Directory {
	return s.Stack.Top()
}

// Open acts on entry. Launching a game or tool ends the session.
func (s *Session) Open(entry catalog.Entry) (launch.Result, error) {
	result, err := s.Dispatcher.Open(entry)
	if err == nil && result.Launched() {
		s.Quit()
	}
	return result, err
}

func (s *Session) Resume(entry catalog.Entry) (launch.Result, error) {
	result, err := s.Dispatcher.Resume(entry)
	if err == nil && result.Launched() {
		s.Quit()
	}
	return result, err
}

func (s *Session) CanResume(entry catalog.Entry) bool {
	return s.Dispatcher.CanResume(entry)
}

// Back closes the current directory. It reports false at the root.
func (s *Session) Back() bool {
	return s.Stack.Pop()
}

func (s *Session) Quit() {
	s.quit.Store(true)
}

func (s *Session) ShouldQuit() bool {
	return s.quit.Load()
}

func (s *Session) Close() error {
	return s.playLog.Close()
}
