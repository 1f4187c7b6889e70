// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the "caplog start" command for starting a new capture session,
// with the session's system name and capture interface either given as
// arguments or taken from the configuration.

package command

import (
	"errors"
	"fmt"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/siemens/caplog/nif"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
)

// startCmd defines the "caplog start" command.
var startCmd = &cobra.Command{
	Use:   "start [flags] [SYSTEM [INTERFACE]]",
	Short: "Start a new capture session",
	Long: `Start a new capture session for the given system, capturing from the given
network interface. System and interface default to the configured ones; they
get recorded so that later save and discard cycles keep capturing with the
same configuration.`,
	Args: cobra.MaximumNArgs(2),
	RunE: start,
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(StartSetupCLI, plugger.WithPlugin("start"))
}

// StartSetupCLI adds the “start” command.
func StartSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(startCmd)
}

func start(cmd *cobra.Command, args []string) error {
	cfg := Settings()
	system, iface := cfg.System, cfg.Interface
	if len(args) > 0 {
		system = args[0]
	}
	if len(args) > 1 {
		iface = args[1]
	}
	// Catch system name typos that would silently end up outside any
	// externally synchronized system list.
	switch match, known := caplog.RecognizeSystem(system, cfg.Systems); match {
	case caplog.SystemUnchecked:
		log.Warn("no known systems configured, accepting any system name")
	case caplog.SystemNearMatch:
		if !askYesNo(cmd, fmt.Sprintf(
			"system %q differs from known system %q only in case; really continue with %q?",
			system, known, system)) {
			return errors.New("start aborted")
		}
	case caplog.SystemUnknown:
		log.Warnf("system %q is not in the list of known systems", system)
	}
	if cfg.Remote == "" && !nif.Exists(iface) {
		log.Warnf("no network interface %q on this host", iface)
	}
	mgr, err := NewManager()
	if err != nil {
		return err
	}
	s, err := mgr.Start(system, iface)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"started capture session %s (system %s, interface %s)\n",
		s.Name, system, iface)
	return nil
}
