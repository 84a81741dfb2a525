package main

import (
	"minui/session"
	"minui/ui"

	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/router"
)

func runWithRouter(sess *session.Session) error {
	r := router.New()
	registerScreens(r, sess)
	r.OnTransition(buildTransitionFunc(sess))
	return r.Run(ScreenBrowser, browserInput(sess))
}

func browserInput(sess *session.Session) ui.BrowserInput {
	return ui.BrowserInput{
		Directory: sess.Top(),
		AtRoot:    sess.Stack.Depth() == 1,
		CanResume: sess.CanResume,
	}
}

func registerScreens(r *router.Router, sess *session.Session) {
	r.Register(ScreenBrowser, func(input any) (any, error) {
		screen := ui.NewBrowserScreen()
		return screen.Draw(input.(ui.BrowserInput))
	})

	r.Register(ScreenMenu, func(input any) (any, error) {
		screen := ui.NewMenuScreen()
		return screen.Draw(input.(ui.MenuInput))
	})

	r.Register(ScreenSearch, func(input any) (any, error) {
		screen := ui.NewSearchScreen()
		return screen.Draw(input.(ui.SearchInput))
	})

	r.Register(ScreenPlayTime, func(input any) (any, error) {
		screen := ui.NewPlayTimeScreen()
		return nil, screen.Draw(input.(ui.PlayTimeInput))
	})
}
