// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the "caplog stop" command for terminating the running capture
// session for good: the session gets finalized as "last" and its newest
// capture file converted.

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

// stopCmd defines the "caplog stop" command.
var stopCmd = &cobra.Command{
	Use:   "stop [flags]",
	Short: "Stop the running capture session",
	Long: `Stop the running capture session: the capture process gets terminated,
the session becomes the "last" session, and its newest capture file gets
converted. The conversion normally runs to completion before stop returns;
use --nowait to background it at reduced priority instead.`,
	Args: cobra.NoArgs,
	RunE: stop,
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(StopSetupCLI, plugger.WithPlugin("stop"))
}

// StopSetupCLI adds the “stop” command, with its mutually exclusive
// conversion control flags.
func StopSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(stopCmd)
	fs := stopCmd.Flags()
	fs.Bool("nowait", false,
		"don't wait for the final conversion; run it in the background at reduced priority")
	fs.Bool("no-convert", false,
		"skip the final conversion entirely")
	Annotate(fs, "nowait", MutualFlagGroupAnnotation, ConvertGroup)
	Annotate(fs, "no-convert", MutualFlagGroupAnnotation, ConvertGroup)
}

func stop(cmd *cobra.Command, args []string) error {
	nowait, _ := cmd.Flags().GetBool("nowait")
	noconvert, _ := cmd.Flags().GetBool("no-convert")
	mgr, err := NewManager()
	if err != nil {
		return err
	}
	s, err := mgr.Stop("", caplog.StopOptions{NoWait: nowait, NoConvert: noconvert})
	if err != nil {
		if errors.Is(err, caplog.ErrNoSession) {
			log.Warn("nothing to stop: no capture session is running")
			return nil
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stopped capture session %s\n", s.Name)
	return nil
}
