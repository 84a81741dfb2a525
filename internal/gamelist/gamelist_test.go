package gamelist

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0"?>
<gameList>
	<game>
		<path>./mario.gb</path>
		<name>Super Mario Land</name>
	</game>
	<game>
		<path>./sub/zelda.gb</path>
		<name>Zelda</name>
	</game>
	<game>
		<path>./tetris.gb</path>
	</game>
	<game>
		<path>kirby.gb</path>
		<name> Kirby's Dream Land </name>
	</game>
</gameList>`

func TestNames(t *testing.T) {
	gl := New()
	require.NoError(t, gl.Parse([]byte(sample)))

	names := gl.Names()
	assert.Equal(t, map[string]string{
		"mario.gb": "Super Mario Land",
		"kirby.gb": "Kirby's Dream Land",
	}, names)
	assert.True(t, gl.Contains(NameElement, "Zelda"))
	assert.Equal(t, 4, gl.Len())
}

func TestLoadMissing(t *testing.T) {
	gl, err := Load(afero.NewMemMapFs(), "/nowhere")
	require.NoError(t, err)
	assert.Empty(t, gl.Names())
}

func TestLoadMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/roms/gamelist.xml", []byte("<gameList><</gameList>"), 0644))

	gl, err := Load(fs, "/roms")
	assert.Error(t, err)
	assert.NotNil(t, gl)
}

func TestSaveRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/roms", 0755))

	gl := New()
	gl.AddOrUpdateEntry("./a.gb", map[string]string{NameElement: "A"})
	gl.AddOrUpdateEntry("./b.gb", map[string]string{NameElement: "B"})
	gl.AddOrUpdateEntry("./a.gb", map[string]string{NameElement: "A Prime"})
	require.NoError(t, gl.Save(fs, "/roms"))

	loaded, err := Load(fs, "/roms")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.gb": "A Prime", "b.gb": "B"}, loaded.Names())
}
