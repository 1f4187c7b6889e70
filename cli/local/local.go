// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Package local provides the capture backend plugin driving the local
// packet sniffer. It registers itself at the end of the backend factory
// group, so it is the fallback whenever no remote capture service has been
// configured.
package local

import (
	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/siemens/caplog/sniffer"
	"github.com/thediveo/go-plugger/v3"
)

func init() {
	plugger.Group[cli.NewBackend]().Register(
		NewSnifferBackend, plugger.WithPlugin("local"), plugger.WithPlacement(">"))
	plugger.Group[cli.CommandExamples]().Register(
		func() map[string]string {
			return map[string]string{
				"start": `# Start capturing for the configured default system and interface.
caplog start

# Start capturing control plane traffic of system "plant-a" from eth1.
caplog start plant-a eth1 --filter "port 102"`,
				"save": `# Finalize the running session under a name and keep capturing.
caplog save commissioning-run-3`,
				"stop": `# Stop capturing; don't wait for the final conversion.
caplog stop --nowait`,
			}
		},
		plugger.WithPlugin("local"))
}

// NewSnifferBackend returns the capture backend running the configured
// local sniffer; it always feels responsible, so it must stay the last
// backend factory asked.
func NewSnifferBackend(cfg *caplog.Settings) (caplog.Backend, error) {
	return sniffer.New(cfg.Sniffer), nil
}
