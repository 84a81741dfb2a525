package ui

import (
	"errors"

	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

type MenuInput struct {
	ShowPlayTime bool
}

type MenuOutput struct {
	Action MenuAction
}

type MenuScreen struct{}

func NewMenuScreen() *MenuScreen {
	return &MenuScreen{}
}

func (s *MenuScreen) Draw(input MenuInput) (MenuOutput, error) {
	output := MenuOutput{Action: MenuActionBack}

	menuItems := []gaba.MenuItem{
		{
			Text:     i18n.Localize(&goi18n.Message{ID: "menu_search", Other: "Search"}, nil),
			Metadata: MenuActionSearch,
		},
	}
	if input.ShowPlayTime {
		menuItems = append(menuItems, gaba.MenuItem{
			Text:     i18n.Localize(&goi18n.Message{ID: "menu_play_time", Other: "Play Time"}, nil),
			Metadata: MenuActionPlayTime,
		})
	}

	options := gaba.DefaultListOptions(i18n.Localize(&goi18n.Message{ID: "menu_title", Other: "Menu"}, nil), menuItems)
	options.FooterHelpItems = []gaba.FooterHelpItem{FooterBack(), FooterSelect()}
	options.StatusBar = StatusBar()

	sel, err := gaba.List(options)
	if err != nil {
		if errors.Is(err, gaba.ErrCancelled) {
			return output, nil
		}
		return output, err
	}

	if sel.Action == gaba.ListActionSelected && len(sel.Selected) > 0 {
		output.Action = sel.Items[sel.Selected[0]].Metadata.(MenuAction)
	}
	return output, nil
}
