// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the "caplog save" command for finalizing the running capture
// session under an optional name, seamlessly continuing to capture into a
// fresh session.

package command

import (
	"errors"
	"fmt"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
)

// saveCmd defines the "caplog save" command.
var saveCmd = &cobra.Command{
	Use:   "save [flags] [NAME]",
	Short: "Save the running capture session and continue capturing",
	Long: `Save the running capture session, optionally tagging it with NAME, and
immediately start a fresh session with the same system and interface. The
conversion of the saved session's newest capture file runs in the background,
so capturing resumes without delay.`,
	Args: cobra.MaximumNArgs(1),
	RunE: save,
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(SaveSetupCLI, plugger.WithPlugin("save"))
}

// SaveSetupCLI adds the “save” command.
func SaveSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(saveCmd)
}

func save(cmd *cobra.Command, args []string) error {
	tag := ""
	if len(args) > 0 {
		tag = args[0]
	}
	mgr, err := NewManager()
	if err != nil {
		return err
	}
	saved, started, err := mgr.Save(tag)
	if err != nil {
		if errors.Is(err, caplog.ErrNoSession) {
			log.Warn("nothing to save: no capture session is running")
			return nil
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"saved capture session as %s; capturing continues into %s\n",
		saved.Name, started.Name)
	return nil
}
