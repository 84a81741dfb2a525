package gamelist

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

const (
	FileName        = "gamelist.xml"
	NameElement     = "name"
	PathElement     = "path"
	GameListElement = "gameList"
	GameElement     = "game"
)

// GameList wraps an EmulationStation gamelist.xml document.
type GameList struct {
	document *etree.Document
}

func New() *GameList {
	return &GameList{
		document: emptyGameList(),
	}
}

func emptyGameList() *etree.Document {
	document := etree.NewDocument()
	document.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	document.CreateElement(GameListElement)
	return document
}

func (gl *GameList) Parse(b []byte) error {
	document := etree.NewDocument()
	if err := document.ReadFromBytes(b); err != nil {
		return err
	}
	if document.SelectElement(GameListElement) == nil {
		document.CreateElement(GameListElement)
	}

	gl.document = document
	return nil
}

// Load parses dir/gamelist.xml. A missing file yields an empty list.
func Load(fs afero.Fs, dir string) (*GameList, error) {
	gl := New()
	data, err := afero.ReadFile(fs, filepath.Join(dir, FileName))
	if err != nil {
		return gl, nil
	}
	if err := gl.Parse(data); err != nil {
		return gl, err
	}
	return gl, nil
}

func (gl *GameList) games() []*etree.Element {
	root := gl.document.SelectElement(GameListElement)
	if root == nil {
		return nil
	}
	return root.SelectElements(GameElement)
}

func (gl *GameList) Contains(element, value string) bool {
	for _, game := range gl.games() {
		e := game.FindElement(element)
		if e != nil && e.Text() == value {
			return true
		}
	}
	return false
}

// Names maps each game's filename to its <name>. Only entries whose <path>
// points directly into the list's own directory are returned.
func (gl *GameList) Names() map[string]string {
	names := make(map[string]string)
	for _, game := range gl.games() {
		pathElement := game.FindElement(PathElement)
		nameElement := game.FindElement(NameElement)
		if pathElement == nil || nameElement == nil {
			continue
		}

		p := strings.TrimSpace(pathElement.Text())
		name := strings.TrimSpace(nameElement.Text())
		if p == "" || name == "" {
			continue
		}

		p = strings.TrimPrefix(p, "./")
		if strings.Contains(p, "/") {
			continue
		}
		names[path.Base(p)] = name
	}
	return names
}

func (gl *GameList) AddGameEntry(info map[string]string) {
	root := gl.document.SelectElement(GameListElement)
	newGame := root.CreateElement(GameElement)

	for _, key := range []string{PathElement, NameElement} {
		if value, ok := info[key]; ok {
			newGame.CreateElement(key).SetText(value)
		}
	}
	for key, value := range info {
		if key == PathElement || key == NameElement {
			continue
		}
		newGame.CreateElement(key).SetText(value)
	}
}

// AddOrUpdateEntry updates the game whose <path> matches gamePath, or adds
// a new one.
func (gl *GameList) AddOrUpdateEntry(gamePath string, info map[string]string) {
	for _, game := range gl.games() {
		e := game.FindElement(PathElement)
		if e == nil || e.Text() != gamePath {
			continue
		}
		for key, value := range info {
			if element := game.FindElement(key); element != nil {
				element.SetText(value)
			} else {
				game.CreateElement(key).SetText(value)
			}
		}
		return
	}

	info[PathElement] = gamePath
	gl.AddGameEntry(info)
}

func (gl *GameList) Len() int {
	return len(gl.games())
}

func (gl *GameList) Save(fs afero.Fs, dir string) error {
	gl.document.Indent(4)
	f, err := fs.Create(filepath.Join(dir, FileName))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := gl.document.WriteTo(f); err != nil {
		return err
	}
	return nil
}
