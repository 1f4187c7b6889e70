// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the "caplog interfaces" command for listing the network
// interfaces of this host that a capture session could capture from.

package command

import (
	"os"
	"strings"

	"github.com/siemens/caplog/cli"
	"github.com/siemens/caplog/nif"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
	"github.com/thediveo/klo"
)

// Builtin custom-columns templates
const (
	// NifListTemplate defines the custom columns when listing network
	// interfaces.
	NifListTemplate = "INTERFACE:{.Name},STATE:{.OperState},MTU:{.MTU}"
	// NifWideListTemplate additionally shows the MAC and network addresses.
	NifWideListTemplate = NifListTemplate + ",HWADDR:{.HardwareAddr},ADDRESSES:{.Addrs}"

	// NifNameListTemplate for handling "-o name".
	NifNameListTemplate = "NAME:{.Name}"
)

// nifRow is the listing model for one network interface, with the address
// list already rendered for columnar output.
type nifRow struct {
	Index        int
	Name         string
	OperState    string
	MTU          int
	HardwareAddr string
	Addrs        string
}

// interfacesCmd defines the "caplog interfaces" command.
var interfacesCmd = &cobra.Command{
	Use:     "interfaces [flags]",
	Aliases: []string{"nifs"},
	Short:   "List network interfaces available for capturing",
	RunE:    interfaces,
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(InterfacesSetupCLI, plugger.WithPlugin("interfaces"))
}

// InterfacesSetupCLI adds the “interfaces” command.
func InterfacesSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(interfacesCmd)
	listingFlags(interfacesCmd, "{.Index}")
}

// interfaces lists this host's network interfaces for output using a
// template.
func interfaces(cmd *cobra.Command, args []string) error {
	prn, err := getPrinter(cmd, &klo.Specs{
		DefaultColumnSpec: NifListTemplate,
		WideColumnSpec:    NifWideListTemplate,
	}, NifNameListTemplate)
	if err != nil {
		return err
	}
	nifs, err := nif.List()
	if err != nil {
		return err
	}
	rows := make([]nifRow, 0, len(nifs))
	for _, n := range nifs {
		rows = append(rows, nifRow{
			Index:        n.Index,
			Name:         n.Name,
			OperState:    n.OperState,
			MTU:          n.MTU,
			HardwareAddr: n.HardwareAddr,
			Addrs:        strings.Join(n.Addrs, ","),
		})
	}
	prn.Fprint(os.Stdout, rows)
	return nil
}
