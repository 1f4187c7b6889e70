// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Implements the hidden "stream" plumbing command: the detached capture
// worker process the packetflix backend re-executes. Operators are not
// expected to invoke it themselves, so it stays out of the help output.

package packetflix

import (
	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/siemens/caplog/cli/command"
	"github.com/siemens/caplog/stream"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
)

func init() {
	plugger.Group[cli.SetupCLI]().Register(
		StreamSetupCLI, plugger.WithPlugin("stream"))
}

// StreamSetupCLI adds the hidden capture stream worker command.
func StreamSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(streamCmd)
	f := streamCmd.Flags()
	f.String("nif", caplog.DefaultInterface,
		"network interface to capture from, on the capture service's side")
	f.String("meta", caplog.MetadataFile,
		"session metadata descriptor to stamp into the capture stream")
	f.String("file-pattern", caplog.DefaultFilePattern,
		"capture file naming pattern, in strftime(3) notation")
	f.String("hook", "",
		"executable to run on each completed capture file")
}

// streamCmd captures from a remote capture service into the current working
// directory, which the launching backend sets to the session directory. All
// capture parameters arrive explicitly on the command line (partly through
// the global flags), so the worker never depends on picking up the same
// ambient configuration as its parent.
var streamCmd = &cobra.Command{
	Use:    "stream",
	Short:  "capture stream worker process (internal use)",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := command.Settings()
		nif, _ := cmd.Flags().GetString("nif")
		meta, _ := cmd.Flags().GetString("meta")
		pattern, _ := cmd.Flags().GetString("file-pattern")
		hook, _ := cmd.Flags().GetString("hook")
		return stream.Run(&stream.Config{
			ServiceURL:     cfg.Remote,
			Token:          cfg.Token,
			Insecure:       cfg.Insecure,
			Timeout:        caplog.DefaultServiceTimeout,
			Dir:            ".",
			MetaPath:       meta,
			Interface:      nif,
			Filter:         cfg.Filter,
			NoPromiscuous:  cfg.NoPromiscuous,
			SnapLen:        cfg.SnapLen,
			RotateInterval: cfg.RotateInterval,
			FilePattern:    pattern,
			PostRotate:     hook,
		})
	},
}
