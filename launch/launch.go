package launch

import (
	"errors"
	"fmt"
	"minui/catalog"
	"minui/cfw"
	"minui/disc"
	"minui/internal/fileutil"
	"minui/internal/logging"
	"minui/internal/pathutil"
	"minui/navigation"
	"minui/recents"
	"minui/state"
	"path"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

const (
	// DefaultSlot tells the emulator to load its hidden resume state.
	DefaultSlot = 8
	// AutoResumeSlot is the slot the power manager saves to before sleep.
	AutoResumeSlot = 9
)

var (
	ErrNoEmulator    = errors.New("no emulator installed for system")
	ErrNotLaunchable = errors.New("entry cannot be launched")
	ErrNoResumeState = errors.New("no resume state")
)

// Recorder receives every ROM launch.
type Recorder interface {
	RecordLaunch(relPath, name, kind string) error
}

// Result describes what opening an entry did. Exactly one of Command and
// Directory is set on success.
type Result struct {
	Command   string
	Directory *catalog.Directory
}

func (r Result) Launched() bool {
	return r.Command != ""
}

// Dispatcher turns an opened entry into either a pushed directory or a
// queued shell command for the launch script.
type Dispatcher struct {
	fs       afero.Fs
	layout   cfw.Layout
	emus     *cfw.Emulators
	discs    *disc.Resolver
	ledger   *recents.Ledger
	stack    *navigation.Stack
	store    *state.Store
	recorder Recorder
}

func NewDispatcher(fs afero.Fs, layout cfw.Layout, emus *cfw.Emulators, discs *disc.Resolver, ledger *recents.Ledger, stack *navigation.Stack, store *state.Store, recorder Recorder) *Dispatcher {
	return &Dispatcher{
		fs:       fs,
		layout:   layout,
		emus:     emus,
		discs:    discs,
		ledger:   ledger,
		stack:    stack,
		store:    store,
		recorder: recorder,
	}
}

// EscapeSingleQuotes makes s safe inside a single-quoted shell word.
func EscapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

// Command joins args as single-quoted shell words.
func Command(args ...string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = "'" + EscapeSingleQuotes(arg) + "'"
	}
	return strings.Join(quoted, " ")
}

func (d *Dispatcher) queue(cmd string) error {
	logging.Get().Info("Queueing next command", "cmd", cmd)
	if err := fileutil.AtomicWriteFile(d.fs, d.layout.NextFile(), []byte(cmd), 0644); err != nil {
		return fmt.Errorf("writing next command: %w", err)
	}
	return nil
}

func (d *Dispatcher) writeSlot(value string) error {
	return fileutil.AtomicWriteFile(d.fs, d.layout.ResumeSlotFile(), []byte(value), 0644)
}

// Open acts on entry as if the user selected it in the current top
// directory.
func (d *Dispatcher) Open(entry catalog.Entry) (Result, error) {
	return d.open(entry, nil)
}

// Resume launches entry from the save slot the emulator last used.
func (d *Dispatcher) Resume(entry catalog.Entry) (Result, error) {
	slot, ok := d.discs.ResumeSlot(entry.Path, entry.Kind == catalog.KindDirectory)
	if !ok {
		return Result{}, ErrNoResumeState
	}
	return d.open(entry, &slot)
}

// CanResume reports whether entry has a save slot to resume from.
func (d *Dispatcher) CanResume(entry catalog.Entry) bool {
	if entry.Kind == catalog.KindPackage {
		return false
	}
	_, ok := d.discs.ResumeSlot(entry.Path, entry.Kind == catalog.KindDirectory)
	return ok
}

func (d *Dispatcher) open(entry catalog.Entry, slot *disc.Slot) (Result, error) {
	switch entry.Kind {
	case catalog.KindRom:
		last := ""
		if top := d.stack.Top(); top != nil && pathutil.PrefixMatch(d.layout.Collections(), top.Path) {
			last = top.Path + "/" + entry.Filename()
		}
		return d.openRom(entry, entry.Path, last, slot)
	case catalog.KindPackage:
		return d.openPak(entry)
	case catalog.KindDirectory:
		pushed, err := d.stack.Push(entry.Path, true)
		if err != nil {
			return Result{}, err
		}
		if pushed.Launch != "" {
			return d.openRom(entry, pushed.Launch, entry.Path, slot)
		}
		return Result{Directory: pushed.Directory}, nil
	}
	return Result{}, fmt.Errorf("%w: %s", ErrNotLaunchable, entry.Path)
}

// recentAlias keeps the entry's label in the ledger only when it differs
// from what the ledger would derive itself.
func (d *Dispatcher) recentAlias(entry catalog.Entry, recentPath string) string {
	if entry.Path != recentPath || entry.Name == d.layout.DisplayName(entry.Path) {
		return ""
	}
	return entry.Name
}

func (d *Dispatcher) openRom(entry catalog.Entry, rom, last string, slot *disc.Slot) (Result, error) {
	logger := logging.Get()

	recentPath := rom
	m3u, hasM3u := d.discs.HasM3u(rom)
	if hasM3u {
		recentPath = m3u
		if pathutil.SuffixMatch(disc.M3uExt, rom) {
			if first, ok := d.discs.FirstDisc(m3u); ok {
				rom = first
			}
		}
	}

	emu := d.layout.EmuTag(rom)
	launcher, ok := d.emus.LaunchPath(emu)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNoEmulator, emu)
	}

	if slot != nil {
		if err := d.writeSlot(strconv.Itoa(slot.Number)); err != nil {
			return Result{}, err
		}
		if hasM3u {
			if recorded, ok := d.discs.SlotDisc(m3u, slot.Number); ok {
				rom = recorded
			}
		}
	} else if err := d.writeSlot(strconv.Itoa(DefaultSlot)); err != nil {
		return Result{}, err
	}

	if err := d.ledger.Bump(recentPath, d.recentAlias(entry, recentPath)); err != nil {
		logger.Error("Unable to save recents", "error", err)
	}

	if last == "" {
		last = rom
	}
	if err := d.store.Save(d.stack, last); err != nil {
		logger.Error("Unable to save state", "error", err)
	}

	if d.recorder != nil {
		if err := d.recorder.RecordLaunch(d.layout.Relative(recentPath), entry.Label(), emu); err != nil {
			logger.Error("Unable to record launch", "error", err)
		}
	}

	cmd := Command(launcher, rom)
	if err := d.queue(cmd); err != nil {
		return Result{}, err
	}
	return Result{Command: cmd}, nil
}

func (d *Dispatcher) openPak(entry catalog.Entry) (Result, error) {
	logger := logging.Get()

	if d.layout.UnderRoms(entry.Path) {
		if err := d.ledger.Bump(entry.Path, d.recentAlias(entry, entry.Path)); err != nil {
			logger.Error("Unable to save recents", "error", err)
		}
	}
	if err := d.store.Save(d.stack, entry.Path); err != nil {
		logger.Error("Unable to save state", "error", err)
	}

	cmd := Command(path.Join(entry.Path, cfw.LaunchScript))
	if err := d.queue(cmd); err != nil {
		return Result{}, err
	}
	return Result{Command: cmd}, nil
}

// AutoResume launches the game named by the auto-resume marker from the
// auto-resume slot. It bypasses the recents ledger and the saved state.
func (d *Dispatcher) AutoResume() (Result, bool, error) {
	rom, ok := d.store.TakeAutoResume()
	if !ok {
		return Result{}, false, nil
	}

	launcher, ok := d.emus.LaunchPath(d.layout.EmuTag(rom))
	if !ok {
		logging.Get().Info("Skipping auto resume, emulator missing", "rom", rom)
		return Result{}, false, nil
	}

	if err := d.writeSlot(strconv.Itoa(AutoResumeSlot)); err != nil {
		return Result{}, false, err
	}

	cmd := Command(launcher, rom)
	if err := d.queue(cmd); err != nil {
		return Result{}, false, err
	}
	return Result{Command: cmd}, true, nil
}
