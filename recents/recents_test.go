package recents

import (
	"fmt"
	"minui/cfw"
	"minui/disc"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sd     = "/mnt/SDCARD"
	gbDir  = sd + "/Roms/Game Boy (GB)"
	psGame = sd + "/Roms/Sony PlayStation (PS)/FF7"
)

func setup(t *testing.T) (afero.Fs, cfw.Layout, *Ledger) {
	t.Helper()
	fs := afero.NewMemMapFs()
	layout := cfw.NewLayout(sd, "tg5040", "", "/tmp")
	emus := cfw.NewEmulators(fs, layout)
	require.NoError(t, afero.WriteFile(fs, sd+"/Emus/tg5040/GB.pak/launch.sh", nil, 0755))
	return fs, layout, NewLedger(fs, layout, emus, disc.NewResolver(fs, layout))
}

func touch(t *testing.T, fs afero.Fs, p string, content ...string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, p, []byte(strings.Join(content, "\n")), 0644))
}

func paths(recents []Recent) []string {
	out := make([]string, len(recents))
	for i, r := range recents {
		out[i] = r.Path
	}
	return out
}

func TestBumpAddsAndMovesToTop(t *testing.T) {
	fs, layout, ledger := setup(t)

	require.NoError(t, ledger.Bump(gbDir+"/a.gb", "Alpha"))
	require.NoError(t, ledger.Bump(gbDir+"/b.gb", ""))
	require.NoError(t, ledger.Bump(gbDir+"/c.gb", ""))
	require.NoError(t, ledger.Bump(gbDir+"/a.gb", "Ignored"))

	records := ledger.Records()
	assert.Equal(t, []string{"/Roms/Game Boy (GB)/a.gb", "/Roms/Game Boy (GB)/c.gb", "/Roms/Game Boy (GB)/b.gb"}, paths(records))
	assert.Equal(t, "Alpha", records[0].Alias)
	assert.True(t, records[0].Available)

	data, err := afero.ReadFile(fs, layout.RecentFile())
	require.NoError(t, err)
	assert.Equal(t, "/Roms/Game Boy (GB)/a.gb\tAlpha\n/Roms/Game Boy (GB)/c.gb\n/Roms/Game Boy (GB)/b.gb\n", string(data))
}

func TestBumpEvictsOldest(t *testing.T) {
	_, _, ledger := setup(t)

	for i := 0; i < Capacity+5; i++ {
		require.NoError(t, ledger.Bump(fmt.Sprintf("%s/%02d.gb", gbDir, i), ""))
		assert.LessOrEqual(t, ledger.Len(), Capacity)
	}

	records := ledger.Records()
	require.Len(t, records, Capacity)
	assert.Equal(t, fmt.Sprintf("/Roms/Game Boy (GB)/%02d.gb", Capacity+4), records[0].Path)
	assert.Equal(t, "/Roms/Game Boy (GB)/05.gb", records[Capacity-1].Path)

	seen := map[string]bool{}
	for _, r := range records {
		assert.False(t, seen[r.Path], "duplicate %s", r.Path)
		seen[r.Path] = true
	}
}

func TestVisibleFiltersUnavailable(t *testing.T) {
	_, _, ledger := setup(t)

	require.NoError(t, ledger.Bump(sd+"/Roms/Nintendo (NES)/mario.nes", ""))
	require.NoError(t, ledger.Bump(gbDir+"/tetris.gb", ""))

	assert.Equal(t, 2, ledger.Len())
	assert.Equal(t, []string{"/Roms/Game Boy (GB)/tetris.gb"}, paths(ledger.Visible()))
}

func TestLoadDropsMissingAndKeepsUnavailable(t *testing.T) {
	fs, layout, ledger := setup(t)
	touch(t, fs, gbDir+"/tetris.gb")
	touch(t, fs, sd+"/Roms/Nintendo (NES)/mario.nes")
	touch(t, fs, layout.RecentFile(),
		"/Roms/Game Boy (GB)/gone.gb",
		"/Roms/Nintendo (NES)/mario.nes",
		"",
		"/Roms/Game Boy (GB)/tetris.gb\tTetris DX\r")

	require.NoError(t, ledger.Load())

	records := ledger.Records()
	assert.Equal(t, []string{"/Roms/Nintendo (NES)/mario.nes", "/Roms/Game Boy (GB)/tetris.gb"}, paths(records))
	assert.False(t, records[0].Available)
	assert.Equal(t, "Tetris DX", records[1].Alias)

	data, err := afero.ReadFile(fs, layout.RecentFile())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "gone.gb")
}

func TestLoadCollapsesMultiDiscGames(t *testing.T) {
	fs, layout, ledger := setup(t)
	touch(t, fs, psGame+"/FF7.m3u", "d1.bin", "d2.bin", "d3.bin")
	touch(t, fs, psGame+"/d1.bin")
	touch(t, fs, psGame+"/d2.bin")
	touch(t, fs, psGame+"/d3.bin")
	touch(t, fs, gbDir+"/tetris.gb")
	touch(t, fs, layout.RecentFile(),
		"/Roms/Sony PlayStation (PS)/FF7/d2.bin",
		"/Roms/Game Boy (GB)/tetris.gb",
		"/Roms/Sony PlayStation (PS)/FF7/d1.bin",
		"/Roms/Sony PlayStation (PS)/FF7/d3.bin")

	require.NoError(t, ledger.Load())
	assert.Equal(t, []string{"/Roms/Sony PlayStation (PS)/FF7/d2.bin", "/Roms/Game Boy (GB)/tetris.gb"}, paths(ledger.Records()))
	assert.Equal(t, 4, ledger.Len())

	data, err := afero.ReadFile(fs, layout.RecentFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "FF7/d1.bin")
	assert.Contains(t, string(data), "FF7/d3.bin")
}

func TestBumpOlderDiscReplacesVisibleDisc(t *testing.T) {
	fs, layout, ledger := setup(t)
	touch(t, fs, psGame+"/FF7.m3u", "d1.bin", "d2.bin")
	touch(t, fs, psGame+"/d1.bin")
	touch(t, fs, psGame+"/d2.bin")
	touch(t, fs, layout.RecentFile(),
		"/Roms/Sony PlayStation (PS)/FF7/d2.bin",
		"/Roms/Sony PlayStation (PS)/FF7/d1.bin")

	require.NoError(t, ledger.Load())
	require.NoError(t, ledger.Bump(psGame+"/d1.bin", ""))

	assert.Equal(t, []string{"/Roms/Sony PlayStation (PS)/FF7/d1.bin"}, paths(ledger.Records()))
	assert.Equal(t, 2, ledger.Len())
}

func TestLoadPromotesChangedDisc(t *testing.T) {
	fs, layout, ledger := setup(t)
	touch(t, fs, psGame+"/FF7.m3u", "d1.bin", "d2.bin")
	touch(t, fs, psGame+"/d1.bin")
	touch(t, fs, psGame+"/d2.bin")
	touch(t, fs, gbDir+"/tetris.gb")
	touch(t, fs, layout.RecentFile(),
		"/Roms/Game Boy (GB)/tetris.gb",
		"/Roms/Sony PlayStation (PS)/FF7/d1.bin")
	touch(t, fs, layout.ChangeDiscFile(), psGame+"/d2.bin")

	require.NoError(t, ledger.Load())

	assert.Equal(t, []string{"/Roms/Sony PlayStation (PS)/FF7/d2.bin", "/Roms/Game Boy (GB)/tetris.gb"}, paths(ledger.Records()))
	exists, err := afero.Exists(fs, layout.ChangeDiscFile())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoadCapsAtCapacity(t *testing.T) {
	fs, layout, ledger := setup(t)
	var lines []string
	for i := 0; i < Capacity+10; i++ {
		p := fmt.Sprintf("%s/%02d.gb", gbDir, i)
		touch(t, fs, p)
		lines = append(lines, layout.Relative(p))
	}
	touch(t, fs, layout.RecentFile(), lines...)

	require.NoError(t, ledger.Load())
	assert.Equal(t, Capacity, ledger.Len())
	assert.Equal(t, lines[:Capacity], paths(ledger.Records()))
}

func TestLoadWithoutFile(t *testing.T) {
	_, _, ledger := setup(t)
	require.NoError(t, ledger.Load())
	assert.Equal(t, 0, ledger.Len())
	assert.Empty(t, ledger.Visible())
}
