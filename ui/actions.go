package ui

type BrowserAction int

const (
	BrowserActionOpen BrowserAction = iota
	BrowserActionMenu
	BrowserActionBack
)

type MenuAction int

const (
	MenuActionSearch MenuAction = iota
	MenuActionPlayTime
	MenuActionBack
)

type SearchAction int

const (
	SearchActionOpen SearchAction = iota
	SearchActionCancel
)
