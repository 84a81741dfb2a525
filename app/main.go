package main

import (
	"minui/session"
	"os"

	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	_ "github.com/BrandonKowalski/certifiable"
)

func cleanup(sess *session.Session) {
	if err := sess.Close(); err != nil {
		gaba.GetLogger().Error("Failed to close session", "error", err)
	}
	gaba.Close()
}

func main() {
	sess := setup()
	logger := gaba.GetLogger()
	logger.Debug("Starting MinUI", "sdcard", sess.Layout.SDCard, "platform", sess.Layout.Platform)

	result, err := sess.Start()
	if err != nil {
		logger.Error("Unable to open catalog", "error", err)
		cleanup(sess)
		os.Exit(1)
	}
	if result.Launched() {
		logger.Info("Auto resuming", "cmd", result.Command)
	}

	if !sess.ShouldQuit() {
		if err := runWithRouter(sess); err != nil {
			logger.Error("Router error", "error", err)
		}
	}

	cleanup(sess)
}
