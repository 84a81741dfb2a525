package pathutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const romRoot = "/mnt/SDCARD/Roms"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"test.txt", "test"},
		{"/path/to/file.txt", "file"},
		{"game.p8.png", "game"},
		{"Game (USA).gb", "Game"},
		{"Game [v1.0].gba", "Game"},
		{"Game  ", "Game"},
		{"Super Mario Bros (USA) (Rev 1).nes", "Super Mario Bros"},
		{"game.doom", "game"},
		{"Game [b] (Europe).sfc", "Game"},
		{"(Homebrew).gb", "(Homebrew)"},
		{"/mnt/SDCARD/Roms/Game Boy (GB)", "Game Boy"},
		{"/mnt/SDCARD/Tools/tg5040", "Tools"},
		{"Final Fantasy VII.longext", "Final Fantasy VII.longext"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayName(tt.input, "tg5040"))
		})
	}
}

func TestEmuTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"game.gb", "game.gb"},
		{"test (GB).gb", "GB"},
		{romRoot + "/Game Boy (GB)/mario.gb", "GB"},
		{romRoot + "/Game Boy (GB)/Sub (USA)/mario.gb", "GB"},
		{romRoot + "/NES/mario.nes", "NES"},
		{romRoot + "/GB (Game Boy Color)", "Game Boy Color"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EmuTag(tt.input, romRoot))
		})
	}
}

func TestSystemDir(t *testing.T) {
	assert.Equal(t, "GB (Game Boy)", SystemDir(romRoot+"/GB (Game Boy)/mario.gb", romRoot))
	assert.Equal(t, "NES", SystemDir(romRoot+"/NES", romRoot))
	assert.Equal(t, "mario.gb", SystemDir("/elsewhere/mario.gb", romRoot))
}

func TestIsHidden(t *testing.T) {
	tests := map[string]bool{
		".hidden":        true,
		"game.disabled":  true,
		"game.DISABLED":  true,
		"map.txt":        true,
		"Map.txt":        false,
		"game.gb":        false,
		"Game (USA).sfc": false,
	}

	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, IsHidden(name))
		})
	}
}

func TestMatching(t *testing.T) {
	assert.True(t, PrefixMatch("/mnt/sdcard/roms", "/mnt/SDCARD/Roms/GB"))
	assert.False(t, PrefixMatch("/mnt/SDCARD/Roms/GB/x", "/mnt/SDCARD/Roms/GB"))
	assert.True(t, SuffixMatch(".M3U", "disc.m3u"))
	assert.False(t, SuffixMatch(".cue", "cue"))
	assert.True(t, ExactMatch("a", "a"))
	assert.False(t, ExactMatch("a", "A"))
	assert.Negative(t, CompareFold("apple", "Banana"))
	assert.Zero(t, CompareFold("MARIO", "mario"))
}

func TestAlphaBucket(t *testing.T) {
	assert.Equal(t, 0, AlphaBucket(""))
	assert.Equal(t, 0, AlphaBucket("1942"))
	assert.Equal(t, 1, AlphaBucket("alpha"))
	assert.Equal(t, 1, AlphaBucket("Alpha"))
	assert.Equal(t, 26, AlphaBucket("Zelda"))
	assert.Equal(t, 0, AlphaBucket("éclair"))
}

func TestTrimSortingMeta(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"001) Mario", "Mario"},
		{"1)\tZelda", "Zelda"},
		{"Mario", "Mario"},
		{"1942", "1942"},
		{"12 Mario", "12 Mario"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimSortingMeta(tt.input))
		})
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("/short", 10))
	assert.NoError(t, Check(strings.Repeat("a", 1000), 0))

	err := Check(strings.Repeat("a", 20), 10)
	assert.True(t, errors.Is(err, ErrPathTooLong))
}

func TestUnder(t *testing.T) {
	assert.True(t, Under("/mnt/SDCARD/Roms", "/mnt/SDCARD/Roms"))
	assert.True(t, Under("/mnt/SDCARD/Roms", "/mnt/SDCARD/Roms/GB/a.gb"))
	assert.False(t, Under("/mnt/SDCARD/Roms", "/mnt/SDCARD/RomsExtra"))
}
