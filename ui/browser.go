package ui

import (
	"errors"
	"minui/catalog"
	"time"

	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	buttons "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/constants"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

type BrowserInput struct {
	Directory *catalog.Directory
	AtRoot    bool
	CanResume func(catalog.Entry) bool
}

type BrowserOutput struct {
	Action BrowserAction
	Entry  catalog.Entry
	Resume bool
}

// BrowserScreen lists one catalog directory. The directory's cursor and
// window seed the list and are updated from whatever the user focused.
type BrowserScreen struct{}

func NewBrowserScreen() *BrowserScreen {
	return &BrowserScreen{}
}

func (s *BrowserScreen) Draw(input BrowserInput) (BrowserOutput, error) {
	dir := input.Directory
	output := BrowserOutput{Action: BrowserActionBack}

	if dir.Len() == 0 {
		s.showEmptyMessage(input.AtRoot)
		return output, nil
	}

	menuItems := make([]gaba.MenuItem, dir.Len())
	for i, entry := range dir.Entries {
		menuItems[i] = gaba.MenuItem{
			Text:     entry.Label(),
			Selected: false,
			Focused:  false,
			Metadata: entry,
		}
	}

	title := dir.Name
	if input.AtRoot {
		title = i18n.Localize(&goi18n.Message{ID: "browser_root_title", Other: "MinUI"}, nil)
	}

	options := gaba.DefaultListOptions(title, menuItems)
	options.UseSmallTitle = !input.AtRoot
	options.ActionButton = buttons.VirtualButtonX
	options.FooterHelpItems = BrowserFooter(input.AtRoot)
	options.SelectedIndex = dir.Selected
	options.VisibleStartIndex = dir.Start
	options.StatusBar = StatusBar()

	sel, err := gaba.List(options)
	if err != nil {
		if errors.Is(err, gaba.ErrCancelled) {
			return output, nil
		}
		gaba.GetLogger().Error("Browser list error", "error", err, "path", dir.Path)
		return output, err
	}

	if len(sel.Selected) > 0 {
		dir.Focus(sel.Selected[0], sel.VisiblePosition)
	}

	switch sel.Action {
	case gaba.ListActionSelected:
		idx := sel.Selected[0]
		entry := sel.Items[idx].Metadata.(catalog.Entry)
		output.Action = BrowserActionOpen
		output.Entry = entry
		if input.CanResume != nil && input.CanResume(entry) {
			output.Resume = ConfirmResume(entry)
		}
		return output, nil

	case gaba.ListActionTriggered:
		output.Action = BrowserActionMenu
		return output, nil
	}

	return output, nil
}

func (s *BrowserScreen) showEmptyMessage(atRoot bool) {
	message := i18n.Localize(&goi18n.Message{ID: "browser_empty_folder", Other: "Empty folder"}, nil)
	if atRoot {
		message = i18n.Localize(&goi18n.Message{ID: "browser_no_roms", Other: "No ROMs found.\nAdd games to the Roms folder."}, nil)
	}

	gaba.ProcessMessage(
		message,
		gaba.ProcessMessageOptions{ShowThemeBackground: true},
		func() (interface{}, error) {
			time.Sleep(time.Second * 1)
			return nil, nil
		},
	)
}

// ConfirmResume asks whether to continue from the entry's save slot.
func ConfirmResume(entry catalog.Entry) bool {
	message := i18n.Localize(&goi18n.Message{ID: "browser_resume_prompt", Other: "Resume {{.Name}}?"}, map[string]interface{}{"Name": entry.Label()})

	result, err := gaba.ConfirmationMessage(message, []gaba.FooterHelpItem{FooterStart(), FooterResume()}, gaba.MessageOptions{})
	return err == nil && result != nil && result.Confirmed
}
