package ui

import (
	"errors"
	"minui/playlog"

	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

const playTimeLimit = 20

type PlayTimeInput struct {
	Log *playlog.Log
}

type PlayTimeScreen struct{}

func NewPlayTimeScreen() *PlayTimeScreen {
	return &PlayTimeScreen{}
}

func (s *PlayTimeScreen) Draw(input PlayTimeInput) error {
	stats, err := input.Log.Top(playTimeLimit)
	if err != nil {
		gaba.GetLogger().Error("Unable to read play log", "error", err)
		return err
	}

	metadata := make([]gaba.MetadataItem, 0, len(stats))
	for _, stat := range stats {
		metadata = append(metadata, gaba.MetadataItem{
			Label: stat.Name,
			Value: playlog.FormatDuration(stat.PlayTime),
		})
	}
	if len(metadata) == 0 {
		metadata = append(metadata, gaba.MetadataItem{
			Label: i18n.Localize(&goi18n.Message{ID: "play_time_empty", Other: "Nothing played yet"}, nil),
		})
	}

	options := gaba.DefaultInfoScreenOptions()
	options.Sections = []gaba.Section{
		gaba.NewInfoSection(i18n.Localize(&goi18n.Message{ID: "menu_play_time", Other: "Play Time"}, nil), metadata),
	}
	options.ShowThemeBackground = false
	options.ShowScrollbar = true

	_, err = gaba.DetailScreen("", options, []gaba.FooterHelpItem{FooterBack()})
	if err != nil && !errors.Is(err, gaba.ErrCancelled) {
		return err
	}
	return nil
}
