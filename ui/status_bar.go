package ui

import (
	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
)

var defaultStatusBar = gaba.StatusBarOptions{
	Enabled:    true,
	ShowTime:   true,
	TimeFormat: gaba.TimeFormat24Hour,
}

func StatusBar() gaba.StatusBarOptions {
	return defaultStatusBar
}
