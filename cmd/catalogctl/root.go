package main

import (
	"io"
	"log/slog"
	"minui/cfw"
	"minui/internal"
	"minui/internal/logging"
	"minui/session"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type options struct {
	fs        afero.Fs
	configDir string
	sdcard    string
	platform  string
	verbose   bool
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	opts := &options{fs: fs}

	cmd := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Inspect and drive the MinUI catalog",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.setupLogging(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", ".", "directory holding config.json")
	flags.StringVar(&opts.sdcard, "sdcard", "", "storage root, overriding config and BASE_PATH")
	flags.StringVar(&opts.platform, "platform", "", "platform tag, overriding config and PLATFORM")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(
		newLsCommand(opts),
		newRecentsCommand(opts),
		newRestoreCommand(opts),
		newOpenCommand(opts),
		newGamelistCommand(opts),
		newPlaytimeCommand(opts),
	)
	return cmd
}

func (o *options) setupLogging(w io.Writer) {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	logging.Set(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (o *options) config() *internal.Config {
	config, err := internal.LoadConfigFrom(o.fs, o.configDir)
	if err != nil {
		logging.Get().Debug("Using default configuration", "error", err)
		config = internal.DefaultConfig()
	}
	if o.sdcard != "" {
		config.SDCardPath = o.sdcard
	}
	if o.platform != "" {
		config.Platform = o.platform
	}
	return config
}

// session wires a catalog session with the recents ledger loaded. It never
// records play activity.
func (o *options) session() *session.Session {
	sess := session.New(o.config(), o.fs)
	if err := sess.Ledger.Load(); err != nil {
		logging.Get().Error("Unable to load recents", "error", err)
	}
	return sess
}

// resolve accepts paths either absolute or relative to the storage root.
func resolve(layout cfw.Layout, p string) string {
	if p == "" {
		return layout.SDCard
	}
	if p == layout.SDCard || strings.HasPrefix(p, layout.SDCard+"/") {
		return p
	}
	return layout.Absolute(p)
}
