// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the "caplog status" command showing the state of the running
// capture session, optionally following along as new capture files appear.

package command

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
)

// statusCmd defines the "caplog status" command.
var statusCmd = &cobra.Command{
	Use:   "status [flags]",
	Short: "Show the state of the running capture session",
	Args:  cobra.NoArgs,
	RunE:  status,
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(StatusSetupCLI, plugger.WithPlugin("status"))
}

// StatusSetupCLI adds the “status” command.
func StatusSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolP("follow", "F", false,
		"keep watching the session, reporting new capture files as they appear")
}

func status(cmd *cobra.Command, args []string) error {
	cfg := Settings()
	out := cmd.OutOrStdout()
	s, err := caplog.CurrentSession(cfg.Root)
	if err != nil {
		return err
	}
	if s == nil {
		fmt.Fprintln(out, "no capture session running")
		if last, _ := caplog.LastSession(cfg.Root); last != nil {
			fmt.Fprintf(out, "last session: %s\n", last.Name)
		}
		return nil
	}
	system, iface := caplog.Markers(cfg.Root)
	fmt.Fprintf(out, "session:   %s\n", s.Name)
	fmt.Fprintf(out, "system:    %s\n", system)
	fmt.Fprintf(out, "interface: %s\n", iface)
	capturing := fmt.Sprintf("capturing: %s", s.Elapsed())
	if pid, err := caplog.ReadPid(s.Dir); err != nil {
		capturing += " (capture process unknown)"
	} else if caplog.ProcessAlive(pid) {
		capturing += fmt.Sprintf(" (PID %d)", pid)
	} else {
		capturing += fmt.Sprintf(" (PID %d, not running!)", pid)
	}
	fmt.Fprintln(out, capturing)
	for _, sum := range mustSummarize(cfg.Root, cfg.FilePattern) {
		if sum.Name != s.Name {
			continue
		}
		fmt.Fprintf(out, "files:     %d (%s)\n", sum.Files, sum.Size)
	}
	if follow, _ := cmd.Flags().GetBool("follow"); follow {
		return followSession(cmd, cfg, s)
	}
	return nil
}

// mustSummarize lists the session summaries, degrading to an empty list
// should the capture log root have gone away in the meantime.
func mustSummarize(root, pattern string) []*caplog.SessionSummary {
	summaries, err := caplog.Summarize(root, pattern)
	if err != nil {
		log.Debugf("cannot summarize sessions: %s", err.Error())
		return nil
	}
	return summaries
}

// followSession watches the running session's directory, reporting new
// capture files as the capture process rotates, until interrupted or the
// session ends.
func followSession(cmd *cobra.Command, cfg *caplog.Settings, s *caplog.Session) error {
	out := cmd.OutOrStdout()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(s.Dir); err != nil {
		return err
	}
	// Watching the root too tells us when the "current" symlink moves or
	// goes away, that is, when the session ends.
	if err := watcher.Add(cfg.Root); err != nil {
		return err
	}
	glob := caplog.CaptureGlob(cfg.FilePattern)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case <-done:
			return nil
		case err := <-watcher.Errors:
			return err
		case ev := <-watcher.Events:
			base := filepath.Base(ev.Name)
			if ev.Op.Has(fsnotify.Create) && filepath.Dir(ev.Name) == s.Dir {
				if ok, _ := filepath.Match(glob, base); ok {
					fmt.Fprintf(out, "new capture file %s\n", base)
				}
				continue
			}
			if base == caplog.CurrentLink &&
				(ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)) {
				fmt.Fprintln(out, "capture session ended")
				return nil
			}
		}
	}
}
