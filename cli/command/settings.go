// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Wires up the configuration: the optional configuration file, the CAPLOG_*
// environment variables, and those global CLI flags that override individual
// settings. Commands access the effective settings via Settings().

package command

import (
	"fmt"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/go-plugger/v3"
)

// cfgFile optionally names an explicit configuration file, instead of the
// usual locations.
var cfgFile string

// settings are the effective settings, bound by ConfigBeforeCommand before
// any command runs.
var settings *caplog.Settings

func init() {
	plugger.Group[cli.SetupCLI]().Register(
		ConfigSetupCLI, plugger.WithPlugin("config"))
	// The configuration must be bound before any other before-command plugin
	// gets a chance to consult it.
	plugger.Group[cli.BeforeCommand]().Register(
		ConfigBeforeCommand, plugger.WithPlugin("config"), plugger.WithPlacement("<"))
}

// ConfigSetupCLI registers the global configuration-related CLI flags and
// binds the overriding flags to their settings.
func ConfigSetupCLI(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "",
		"configuration file (default is config.yaml in $XDG_CONFIG_HOME/caplog, then /etc/caplog)")
	pf.String("root", caplog.DefaultRoot,
		"capture log root directory keeping the session directories")
	pf.StringP("filter", "f", "",
		"pcap filter expression; applies to all captured packets")
	pf.IntP("snaplen", "s", 0,
		"truncate captured packets to this many bytes; 0 keeps the sniffer's default")
	pf.BoolP("no-promiscuous", "p", false,
		"don't put the capture interface into promiscuous mode")
	pf.Duration("rotate-interval", caplog.DefaultRotateInterval,
		"how often the capture starts a new capture file")
	viper.BindPFlag("root", pf.Lookup("root"))
	viper.BindPFlag("filter", pf.Lookup("filter"))
	viper.BindPFlag("snaplen", pf.Lookup("snaplen"))
	viper.BindPFlag("no_promiscuous", pf.Lookup("no-promiscuous"))
	viper.BindPFlag("rotate_interval", pf.Lookup("rotate-interval"))
}

// ConfigBeforeCommand reads the configuration file (if any) and settles the
// effective settings from defaults, configuration file, environment, and
// flags.
func ConfigBeforeCommand(*cobra.Command) error {
	if err := caplog.InitConfig(cfgFile); err != nil {
		return fmt.Errorf("broken configuration: %w", err)
	}
	s, err := caplog.LoadSettings()
	if err != nil {
		return fmt.Errorf("broken configuration: %w", err)
	}
	settings = s
	return nil
}

// Settings returns the effective settings. They are available from the moment
// the before-command plugins have run; asking earlier is a programming error.
func Settings() *caplog.Settings {
	if settings == nil {
		panic("settings queried before ConfigBeforeCommand has run")
	}
	return settings
}
