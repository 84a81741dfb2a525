package main

import (
	"errors"
	"minui/catalog"
	"minui/launch"
	"minui/session"
	"minui/ui"
	"time"

	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/router"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

func buildTransitionFunc(sess *session.Session) router.TransitionFunc {
	return func(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
		switch from {
		case ScreenBrowser:
			return transitionBrowser(sess, result.(ui.BrowserOutput))
		case ScreenMenu:
			return transitionMenu(sess, result.(ui.MenuOutput))
		case ScreenSearch:
			return transitionSearch(sess, result.(ui.SearchOutput))
		case ScreenPlayTime:
			return ScreenBrowser, browserInput(sess)
		}

		return router.ScreenExit, nil
	}
}

func transitionBrowser(sess *session.Session, r ui.BrowserOutput) (router.Screen, any) {
	switch r.Action {
	case ui.BrowserActionOpen:
		return openEntry(sess, r.Entry, r.Resume)
	case ui.BrowserActionMenu:
		return ScreenMenu, ui.MenuInput{ShowPlayTime: sess.PlayLog() != nil}
	}

	if !sess.Back() {
		return router.ScreenExit, nil
	}
	return ScreenBrowser, browserInput(sess)
}

func transitionMenu(sess *session.Session, r ui.MenuOutput) (router.Screen, any) {
	switch r.Action {
	case ui.MenuActionSearch:
		top := sess.Top()
		return ScreenSearch, ui.SearchInput{Scope: top.Name, Entries: top.Entries}
	case ui.MenuActionPlayTime:
		return ScreenPlayTime, ui.PlayTimeInput{Log: sess.PlayLog()}
	}
	return ScreenBrowser, browserInput(sess)
}

func transitionSearch(sess *session.Session, r ui.SearchOutput) (router.Screen, any) {
	if r.Action != ui.SearchActionOpen {
		return ScreenBrowser, browserInput(sess)
	}

	top := sess.Top()
	if i := top.IndexOf(r.Entry.Path); i >= 0 {
		top.Reveal(i)
	}
	resume := sess.CanResume(r.Entry) && ui.ConfirmResume(r.Entry)
	return openEntry(sess, r.Entry, resume)
}

func openEntry(sess *session.Session, entry catalog.Entry, resume bool) (router.Screen, any) {
	logger := gaba.GetLogger()

	var result launch.Result
	var err error
	if resume {
		result, err = sess.Resume(entry)
	} else {
		result, err = sess.Open(entry)
	}

	if err != nil {
		logger.Error("Unable to open entry", "error", err, "path", entry.Path)
		showOpenError(err)
		return ScreenBrowser, browserInput(sess)
	}

	if result.Launched() || sess.ShouldQuit() {
		logger.Info("Launching", "cmd", result.Command)
		return router.ScreenExit, nil
	}
	return ScreenBrowser, browserInput(sess)
}

func showOpenError(err error) {
	message := &goi18n.Message{ID: "error_open_failed", Other: "Unable to open!\nPlease check the logs for more info."}
	switch {
	case errors.Is(err, launch.ErrNoEmulator):
		message = &goi18n.Message{ID: "error_no_emulator", Other: "No emulator installed\nfor this system."}
	case errors.Is(err, catalog.ErrPathTooLong):
		message = &goi18n.Message{ID: "error_path_too_long", Other: "Path is too long!\nPlease shorten folder names."}
	}

	gaba.ProcessMessage(
		i18n.Localize(message, nil),
		gaba.ProcessMessageOptions{ShowThemeBackground: true},
		func() (interface{}, error) {
			time.Sleep(2 * time.Second)
			return nil, nil
		},
	)
}
