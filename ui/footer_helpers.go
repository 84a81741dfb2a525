package ui

import (
	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

func footerItem(button, msgID, fallback string) gaba.FooterHelpItem {
	return gaba.FooterHelpItem{
		ButtonName: button,
		HelpText:   i18n.Localize(&goi18n.Message{ID: msgID, Other: fallback}, nil),
	}
}

func FooterOpen() gaba.FooterHelpItem   { return footerItem("A", "button_open", "Open") }
func FooterSelect() gaba.FooterHelpItem { return footerItem("A", "button_select", "Select") }
func FooterBack() gaba.FooterHelpItem   { return footerItem("B", "button_back", "Back") }
func FooterQuit() gaba.FooterHelpItem   { return footerItem("B", "button_quit", "Quit") }
func FooterMenu() gaba.FooterHelpItem   { return footerItem("X", "button_menu", "Menu") }
func FooterResume() gaba.FooterHelpItem { return footerItem("A", "button_resume", "Resume") }
func FooterStart() gaba.FooterHelpItem  { return footerItem("B", "button_start_over", "Start Over") }

func BrowserFooter(atRoot bool) []gaba.FooterHelpItem {
	back := FooterBack()
	if atRoot {
		back = FooterQuit()
	}
	return []gaba.FooterHelpItem{back, FooterMenu(), FooterOpen()}
}
