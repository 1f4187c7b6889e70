// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"strings"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
)

// Provides the “caplog version” command. The semantic version is the one
// defined for the main caplog package, so there's no separate version number
// for the caplog CLI command. In addition, the version command lists the
// compiled-in capture backends.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version (with compiled-in capture backends).",
	Run: func(cmd *cobra.Command, args []string) {
		semver := caplog.SemVersion
		for _, pluginsemver := range plugger.Group[cli.SemVer]().Symbols() {
			semver = pluginsemver()
			break
		}
		fmt.Printf("%s version %s (capture backends: %s)\n",
			cmd.Parent().Name(),
			semver,
			strings.Join(plugger.Group[cli.NewBackend]().Plugins(), ", "))
	},
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(
		VersionSetupCLI, plugger.WithPlugin("version"))
}

// VersionSetupCLI adds the “version” command.
func VersionSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(versionCmd)
}
