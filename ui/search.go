package ui

import (
	"errors"
	"minui/catalog"
	"time"

	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

type SearchInput struct {
	Scope       string
	Entries     []catalog.Entry
	InitialText string
}

type SearchOutput struct {
	Action SearchAction
	Query  string
	Entry  catalog.Entry
}

// SearchScreen asks for a query and lists the matching entries of one
// directory.
type SearchScreen struct{}

func NewSearchScreen() *SearchScreen {
	return &SearchScreen{}
}

func (s *SearchScreen) Draw(input SearchInput) (SearchOutput, error) {
	output := SearchOutput{Action: SearchActionCancel, Query: input.InitialText}

	res, err := gaba.Keyboard(input.InitialText, i18n.Localize(&goi18n.Message{ID: "help_exit_text", Other: "Press any button to close help"}, nil))
	if err != nil {
		if errors.Is(err, gaba.ErrCancelled) {
			return output, nil
		}
		gaba.GetLogger().Error("Error with keyboard", "error", err)
		return output, err
	}
	output.Query = res.Text

	matches := catalog.Filter(input.Entries, res.Text)
	if len(matches) == 0 {
		s.showNoResults(res.Text)
		return output, nil
	}

	menuItems := make([]gaba.MenuItem, len(matches))
	for i, entry := range matches {
		menuItems[i] = gaba.MenuItem{
			Text:     entry.Label(),
			Metadata: entry,
		}
	}

	title := i18n.Localize(&goi18n.Message{ID: "search_results_title", Other: "[Search: \"{{.Query}}\"] | {{.Scope}}"}, map[string]interface{}{
		"Query": res.Text,
		"Scope": input.Scope,
	})
	options := gaba.DefaultListOptions(title, menuItems)
	options.UseSmallTitle = true
	options.FooterHelpItems = []gaba.FooterHelpItem{FooterBack(), FooterOpen()}
	options.StatusBar = StatusBar()

	sel, err := gaba.List(options)
	if err != nil {
		if errors.Is(err, gaba.ErrCancelled) {
			return output, nil
		}
		return output, err
	}

	if sel.Action == gaba.ListActionSelected && len(sel.Selected) > 0 {
		output.Action = SearchActionOpen
		output.Entry = sel.Items[sel.Selected[0]].Metadata.(catalog.Entry)
	}
	return output, nil
}

func (s *SearchScreen) showNoResults(query string) {
	gaba.ProcessMessage(
		i18n.Localize(&goi18n.Message{ID: "search_no_results", Other: "No results found for \"{{.Query}}\""}, map[string]interface{}{"Query": query}),
		gaba.ProcessMessageOptions{ShowThemeBackground: true},
		func() (interface{}, error) {
			time.Sleep(time.Second * 1)
			return nil, nil
		},
	)
}
