package main

import (
	"errors"
	"fmt"
	"io"
	"minui/catalog"
	"minui/internal/gamelist"
	"minui/launch"
	"minui/playlog"
	"minui/session"
	"path"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func printDirectory(w io.Writer, dir *catalog.Directory) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, entry := range dir.Entries {
		marker := " "
		if i == dir.Selected {
			marker = ">"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, entry.Kind, entry.Label(), entry.Path)
	}
	tw.Flush()
}

func newLsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a catalog directory the way the launcher shows it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := opts.session()
			p := sess.Layout.SDCard
			if len(args) == 1 {
				p = resolve(sess.Layout, args[0])
			}

			dir, err := sess.Indexer.Build(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", dir.Name, dir.Len())
			printDirectory(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newRecentsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "recents",
		Short: "Print the recently played ledger, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := opts.session()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, recent := range sess.Ledger.Records() {
				status := "ok"
				if !recent.Available {
					status = "no-emu"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", status, recent.Path, recent.Alias)
			}
			return tw.Flush()
		},
	}
}

func restoredSession(opts *options) (*session.Session, bool, error) {
	sess := opts.session()
	if _, err := sess.Stack.Push(sess.Layout.SDCard, false); err != nil {
		return nil, false, err
	}
	found, err := sess.Store.Restore(sess.Stack)
	return sess, found, err
}

func newRestoreCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Replay the saved position and print the resulting directory stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, found, err := restoredSession(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintln(out, "no saved position")
			}
			for depth, dir := range sess.Stack.Levels() {
				selected := ""
				if entry, ok := dir.Current(); ok {
					selected = entry.Path
				}
				fmt.Fprintf(out, "%d\t%s\t[%d %d:%d]\t%s\n", depth, dir.Path, dir.Selected, dir.Start, dir.End, selected)
			}
			return nil
		},
	}
}

func newOpenCommand(opts *options) *cobra.Command {
	var from string
	var resume bool

	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open an entry as the launcher would and print the queued command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := opts.session()
			target := resolve(sess.Layout, args[0])

			listing := path.Dir(target)
			if from != "" {
				listing = resolve(sess.Layout, from)
			}
			if listing == sess.Layout.Roms() {
				listing = sess.Layout.SDCard
			}

			if _, err := sess.Stack.Push(sess.Layout.SDCard, false); err != nil {
				return err
			}
			if listing != sess.Layout.SDCard {
				if _, err := sess.Stack.Push(listing, false); err != nil {
					return err
				}
			}

			top := sess.Top()
			i := top.IndexOf(target)
			if i < 0 {
				return fmt.Errorf("%s is not listed in %s", target, top.Path)
			}
			top.Reveal(i)
			entry := top.Entries[i]

			var result launch.Result
			var err error
			if resume {
				result, err = sess.Resume(entry)
			} else {
				result, err = sess.Open(entry)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Launched() {
				fmt.Fprintln(out, result.Command)
				return nil
			}
			fmt.Fprintf(out, "%s (%d)\n", result.Directory.Name, result.Directory.Len())
			printDirectory(out, result.Directory)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "directory whose listing holds the entry (defaults to its parent)")
	cmd.Flags().BoolVar(&resume, "resume", false, "resume from the save slot the emulator last used")
	return cmd
}

func newGamelistCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gamelist",
		Short: "Work with EmulationStation gamelist.xml files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <dir>",
		Short: "Write the aliases of a directory's map.txt into its gamelist.xml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := session.LayoutFor(opts.config())
			dir := resolve(layout, args[0])

			written, err := catalog.ExportGamelist(opts.fs, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d aliases to %s\n", written, path.Join(dir, gamelist.FileName))
			return nil
		},
	})
	return cmd
}

func newPlaytimeCommand(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "playtime",
		Short: "Print the most played games from the play log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return errors.New("limit must be positive")
			}
			layout := session.LayoutFor(opts.config())

			log, err := playlog.Open(opts.fs, layout.PlayLogFile())
			if err != nil {
				return err
			}
			defer log.Close()

			stats, err := log.Top(limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, stat := range stats {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", playlog.FormatDuration(stat.PlayTime), stat.Launches, stat.Name, stat.Path)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of games to show")
	return cmd
}
