package launch

import (
	"minui/catalog"
	"minui/cfw"
	"minui/disc"
	"minui/navigation"
	"minui/recents"
	"minui/state"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sd     = "/mnt/SDCARD"
	gbDir  = sd + "/Roms/Game Boy (GB)"
	psDir  = sd + "/Roms/Sony PlayStation (PS)"
	gbEmu  = sd + "/Emus/tg5040/GB.pak/launch.sh"
	psEmu  = sd + "/.system/tg5040/paks/Emus/PS.pak/launch.sh"
	colls  = sd + "/Collections"
	ff7Dir = psDir + "/FF7"
)

type launchRecord struct {
	path, name, kind string
}

type fakeRecorder struct {
	launches []launchRecord
}

func (f *fakeRecorder) RecordLaunch(relPath, name, kind string) error {
	f.launches = append(f.launches, launchRecord{relPath, name, kind})
	return nil
}

type harness struct {
	fs         afero.Fs
	layout     cfw.Layout
	ledger     *recents.Ledger
	stack      *navigation.Stack
	recorder   *fakeRecorder
	dispatcher *Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fs := afero.NewMemMapFs()
	layout := cfw.NewLayout(sd, "tg5040", "", "/tmp")
	emus := cfw.NewEmulators(fs, layout)
	discs := disc.NewResolver(fs, layout)
	ledger := recents.NewLedger(fs, layout, emus, discs)
	indexer := catalog.NewIndexer(fs, layout, emus, catalog.NewAliasLoader(fs, 8, false), ledger, discs, catalog.IndexerOptions{Rows: 6})
	stack := navigation.NewStack(indexer, discs)
	store := state.NewStore(fs, layout, 0)
	recorder := &fakeRecorder{}

	h := &harness{
		fs:         fs,
		layout:     layout,
		ledger:     ledger,
		stack:      stack,
		recorder:   recorder,
		dispatcher: NewDispatcher(fs, layout, emus, discs, ledger, stack, store, recorder),
	}
	h.touch(t, gbEmu)
	h.touch(t, psEmu)
	h.touch(t, gbDir+"/Tetris.gb")
	h.touch(t, ff7Dir+"/FF7.m3u", "FF7 (Disc 1).bin", "FF7 (Disc 2).bin")
	h.touch(t, ff7Dir+"/FF7 (Disc 1).bin")
	h.touch(t, ff7Dir+"/FF7 (Disc 2).bin")

	_, err := stack.Push(sd, false)
	require.NoError(t, err)
	return h
}

func (h *harness) touch(t *testing.T, p string, content ...string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.fs, p, []byte(strings.Join(content, "\n")), 0644))
}

func (h *harness) read(t *testing.T, p string) string {
	t.Helper()
	data, err := afero.ReadFile(h.fs, p)
	require.NoError(t, err)
	return string(data)
}

func (h *harness) push(t *testing.T, p string) *catalog.Directory {
	t.Helper()
	res, err := h.stack.Push(p, false)
	require.NoError(t, err)
	return res.Directory
}

func rom(p string) catalog.Entry {
	return catalog.Entry{Path: p, Name: "x", Kind: catalog.KindRom}
}

func TestCommandQuoting(t *testing.T) {
	assert.Equal(t, `'a' 'b c'`, Command("a", "b c"))
	assert.Equal(t, `'/Roms/Pac-Man'\''s Revenge.gb'`, Command("/Roms/Pac-Man's Revenge.gb"))
	assert.Equal(t, `it'\''s`, EscapeSingleQuotes("it's"))
}

func TestOpenRom(t *testing.T) {
	h := newHarness(t)
	h.push(t, gbDir)

	res, err := h.dispatcher.Open(catalog.Entry{Path: gbDir + "/Tetris.gb", Name: "Tetris", Kind: catalog.KindRom})
	require.NoError(t, err)
	assert.True(t, res.Launched())

	want := "'" + gbEmu + "' '" + gbDir + "/Tetris.gb'"
	assert.Equal(t, want, res.Command)
	assert.Equal(t, want, h.read(t, h.layout.NextFile()))
	assert.Equal(t, "8", h.read(t, h.layout.ResumeSlotFile()))
	assert.Equal(t, gbDir+"/Tetris.gb", h.read(t, h.layout.LastFile()))

	records := h.ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "/Roms/Game Boy (GB)/Tetris.gb", records[0].Path)
	assert.Empty(t, records[0].Alias)

	require.Len(t, h.recorder.launches, 1)
	assert.Equal(t, launchRecord{"/Roms/Game Boy (GB)/Tetris.gb", "Tetris", "GB"}, h.recorder.launches[0])
}

func TestOpenRomKeepsAlias(t *testing.T) {
	h := newHarness(t)
	_, err := h.dispatcher.Open(catalog.Entry{Path: gbDir + "/Tetris.gb", Name: "Tetris DX", Kind: catalog.KindRom})
	require.NoError(t, err)
	assert.Equal(t, "Tetris DX", h.ledger.Records()[0].Alias)
}

func TestOpenRomFromCollection(t *testing.T) {
	h := newHarness(t)
	h.touch(t, colls+"/Favs.txt", "/Roms/Game Boy (GB)/Tetris.gb")
	h.push(t, colls+"/Favs.txt")

	_, err := h.dispatcher.Open(rom(gbDir + "/Tetris.gb"))
	require.NoError(t, err)
	assert.Equal(t, colls+"/Favs.txt/Tetris.gb", h.read(t, h.layout.LastFile()))
}

func TestOpenDiscRecordsPlaylist(t *testing.T) {
	h := newHarness(t)
	dir := h.push(t, ff7Dir+"/FF7.m3u")
	require.Equal(t, 2, dir.Len())

	res, err := h.dispatcher.Open(dir.Entries[1])
	require.NoError(t, err)
	assert.Equal(t, "'"+psEmu+"' '"+ff7Dir+"/FF7 (Disc 2).bin'", res.Command)

	records := h.ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "/Roms/Sony PlayStation (PS)/FF7/FF7.m3u", records[0].Path)
	assert.Empty(t, records[0].Alias, "disc labels never become aliases")
}

func TestOpenPlaylistLaunchesFirstDisc(t *testing.T) {
	h := newHarness(t)
	res, err := h.dispatcher.Open(rom(ff7Dir + "/FF7.m3u"))
	require.NoError(t, err)
	assert.Equal(t, "'"+psEmu+"' '"+ff7Dir+"/FF7 (Disc 1).bin'", res.Command)
}

func TestOpenGameFolderFollowsPlaylist(t *testing.T) {
	h := newHarness(t)
	h.push(t, psDir)

	res, err := h.dispatcher.Open(catalog.Entry{Path: ff7Dir, Name: "FF7", Kind: catalog.KindDirectory})
	require.NoError(t, err)
	assert.Equal(t, "'"+psEmu+"' '"+ff7Dir+"/FF7 (Disc 1).bin'", res.Command)
	assert.Equal(t, ff7Dir, h.read(t, h.layout.LastFile()))
	assert.Equal(t, 2, h.stack.Depth())
}

func TestOpenDirectoryPushes(t *testing.T) {
	h := newHarness(t)
	res, err := h.dispatcher.Open(catalog.Entry{Path: gbDir, Kind: catalog.KindDirectory})
	require.NoError(t, err)
	assert.False(t, res.Launched())
	require.NotNil(t, res.Directory)
	assert.Equal(t, gbDir, h.stack.Top().Path)
}

func TestOpenPak(t *testing.T) {
	h := newHarness(t)
	tool := sd + "/Tools/tg5040/Clock.pak"
	port := sd + "/Roms/Ports (PORTS)/Doom.pak"

	res, err := h.dispatcher.Open(catalog.Entry{Path: tool, Name: "Clock", Kind: catalog.KindPackage})
	require.NoError(t, err)
	assert.Equal(t, "'"+tool+"/launch.sh'", res.Command)
	assert.Equal(t, tool, h.read(t, h.layout.LastFile()))
	assert.Equal(t, 0, h.ledger.Len())

	_, err = h.dispatcher.Open(catalog.Entry{Path: port, Name: "Doom", Kind: catalog.KindPackage})
	require.NoError(t, err)
	assert.Equal(t, 1, h.ledger.Len())
	assert.Empty(t, h.recorder.launches)
}

func TestOpenWithoutEmulator(t *testing.T) {
	h := newHarness(t)
	h.touch(t, sd+"/Roms/Nintendo (NES)/Mario.nes")

	_, err := h.dispatcher.Open(rom(sd + "/Roms/Nintendo (NES)/Mario.nes"))
	assert.ErrorIs(t, err, ErrNoEmulator)
	exists, _ := afero.Exists(h.fs, h.layout.NextFile())
	assert.False(t, exists)
}

func TestOpenUnknownKind(t *testing.T) {
	h := newHarness(t)
	_, err := h.dispatcher.Open(catalog.Entry{Path: "/x", Kind: catalog.Kind(42)})
	assert.ErrorIs(t, err, ErrNotLaunchable)
}

func TestResume(t *testing.T) {
	h := newHarness(t)
	entry := rom(gbDir + "/Tetris.gb")

	assert.False(t, h.dispatcher.CanResume(entry))
	_, err := h.dispatcher.Resume(entry)
	assert.ErrorIs(t, err, ErrNoResumeState)

	h.touch(t, sd+"/.userdata/shared/.minui/GB/Tetris.gb.txt", "2")
	assert.True(t, h.dispatcher.CanResume(entry))

	_, err = h.dispatcher.Resume(entry)
	require.NoError(t, err)
	assert.Equal(t, "2", h.read(t, h.layout.ResumeSlotFile()))
}

func TestResumeMultiDiscUsesRecordedDisc(t *testing.T) {
	h := newHarness(t)
	h.touch(t, sd+"/.userdata/shared/.minui/PS/FF7.m3u.txt", "3")
	h.touch(t, sd+"/.userdata/shared/.minui/PS/FF7.m3u.3.txt", "FF7 (Disc 2).bin")

	res, err := h.dispatcher.Resume(catalog.Entry{Path: ff7Dir, Name: "FF7", Kind: catalog.KindDirectory})
	require.NoError(t, err)
	assert.Equal(t, "'"+psEmu+"' '"+ff7Dir+"/FF7 (Disc 2).bin'", res.Command)
	assert.Equal(t, "3", h.read(t, h.layout.ResumeSlotFile()))
}

func TestAutoResume(t *testing.T) {
	h := newHarness(t)

	_, ok, err := h.dispatcher.AutoResume()
	require.NoError(t, err)
	assert.False(t, ok)

	h.touch(t, h.layout.AutoResumeFile(), "/Roms/Game Boy (GB)/Tetris.gb")
	res, ok, err := h.dispatcher.AutoResume()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "'"+gbEmu+"' '"+gbDir+"/Tetris.gb'", res.Command)
	assert.Equal(t, "9", h.read(t, h.layout.ResumeSlotFile()))
	assert.Equal(t, 0, h.ledger.Len(), "auto resume bypasses recents")
}

func TestAutoResumeWithoutEmulator(t *testing.T) {
	h := newHarness(t)
	h.touch(t, sd+"/Roms/Nintendo (NES)/Mario.nes")
	h.touch(t, h.layout.AutoResumeFile(), "/Roms/Nintendo (NES)/Mario.nes")

	_, ok, err := h.dispatcher.AutoResume()
	require.NoError(t, err)
	assert.False(t, ok)
}
