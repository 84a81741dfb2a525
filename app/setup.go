package main

import (
	"log"
	"log/slog"
	"minui/internal"
	"minui/internal/environment"
	"minui/internal/logging"
	"minui/playlog"
	"minui/resources"
	"minui/session"
	"os"

	gaba "github.com/BrandonKowalski/gabagool/v2/pkg/gabagool"
	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
	"github.com/spf13/afero"
)

func setup() *session.Session {
	gaba.SetLogFilename("minui.log")

	gaba.Init(gaba.Options{
		WindowTitle:          "MinUI",
		PrimaryThemeColorHex: 0xFFFFFF,
		ShowBackground:       false,
		IsNextUI:             false,
	})

	gaba.SetLogLevel(slog.LevelDebug)
	logger := gaba.GetLogger()
	logging.Set(logger)

	localeFiles, err := resources.GetLocaleMessageFiles()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to load locale files: %v", err)
	}
	if err := i18n.InitI18NFromBytes(localeFiles); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to initialize i18n: %v", err)
	}

	config, err := internal.LoadConfig()
	if err != nil {
		logger.Debug("No configuration found, using defaults", "error", err)
		config = internal.DefaultConfig()
		if err := internal.SaveConfig(config); err != nil {
			logger.Error("Unable to save default configuration", "error", err)
		}
	}

	if environment.IsDevelopment() {
		config.LogLevel = internal.LogLevelDebug
	}
	gaba.SetRawLogLevel(string(config.LogLevel))

	if err := i18n.SetWithCode(config.Language); err != nil {
		logger.Error("Failed to set language", "error", err, "language", config.Language)
	}

	logger.Debug("Configuration Loaded!", "config", config.ToLoggable())

	fs := afero.NewOsFs()
	var opts []session.Option
	if config.PlayLog {
		playLog, err := playlog.Open(fs, session.LayoutFor(config).PlayLogFile())
		if err != nil {
			logger.Error("Unable to open play log", "error", err)
		} else {
			opts = append(opts, session.WithPlayLog(playLog))
		}
	}

	return session.New(config, fs, opts...)
}
