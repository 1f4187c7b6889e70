// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the "caplog discard" command for throwing away the running
// capture session after confirmation, then continuing to capture into a
// fresh session.

package command

import (
	"fmt"

	"github.com/siemens/caplog/cli"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
)

// discardCmd defines the "caplog discard" command.
var discardCmd = &cobra.Command{
	Use:   "discard [flags]",
	Short: "Discard the running capture session and continue capturing",
	Long: `Discard the running capture session: after confirmation, its session
directory gets deleted without a trace, and a fresh session with the same
system and interface starts immediately.`,
	Args: cobra.NoArgs,
	RunE: discard,
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(DiscardSetupCLI, plugger.WithPlugin("discard"))
}

// DiscardSetupCLI adds the “discard” command.
func DiscardSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(discardCmd)
	discardCmd.Flags().BoolP("yes", "y", false,
		"discard without asking for confirmation")
}

func discard(cmd *cobra.Command, args []string) error {
	mgr, err := NewManager()
	if err != nil {
		return err
	}
	s, err := mgr.Current()
	if err != nil {
		return err
	}
	if s == nil {
		log.Warn("nothing to discard: no capture session is running")
		return nil
	}
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !askYesNo(cmd, fmt.Sprintf(
			"discard capture session %s, capturing for %s?",
			s.Name, s.Elapsed())) {
			fmt.Fprintln(cmd.OutOrStdout(), "keeping capture session")
			return nil
		}
	}
	started, err := mgr.Discard()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"discarded capture session %s; capturing continues into %s\n",
		s.Name, started.Name)
	return nil
}
