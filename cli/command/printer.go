// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package command

import (
	"github.com/spf13/cobra"
	"github.com/thediveo/klo"
)

// getPrinter returns a value printer configured according to the output
// format chosen by the user, and some more optional output configuration
// flags. The given column specs supply the default and wide custom-columns
// templates; nameTemplate serves "-o name" output, which hides the column
// header, as kubectl and others do.
func getPrinter(cmd *cobra.Command, specs *klo.Specs, nameTemplate string) (prn klo.ValuePrinter, err error) {
	outfmt, err := cmd.LocalFlags().GetString("output")
	if err != nil {
		return
	}
	if outfmt == "name" {
		prn, err = klo.PrinterFromFlag("custom-columns="+nameTemplate, nil)
		if err != nil {
			panic(err)
		}
		prn.(*klo.CustomColumnsPrinter).HideHeaders = true
	} else {
		// For the other output format options, let the kubectl-like output
		// package handle the details and give us just the printer suitable
		// for dumping the list onto our users.
		prn, err = klo.PrinterFromFlag(outfmt, specs)
		if err != nil {
			return
		}
		if ccprn, ok := prn.(*klo.CustomColumnsPrinter); ok {
			ccprn.Padding = 3
			if noheaders, err := cmd.LocalFlags().GetBool("no-headers"); err == nil {
				ccprn.HideHeaders = noheaders
			}
		}
	}
	// ...throwing in sorting, if not explicitly forbidden. It depends on the
	// object printer if it will honor the sorted data or will just impose its
	// own order anyway.
	if sortby, err := cmd.LocalFlags().GetString("sort-by"); err == nil && sortby != "" {
		prn, err = klo.NewSortingPrinter(sortby, prn)
		if err != nil {
			return nil, err
		}
	}
	return prn, nil
}

// listingFlags registers the usual output format flags of the listing
// commands: the output format itself, header suppression, and sorting.
func listingFlags(cmd *cobra.Command, sortby string) {
	cmd.Flags().StringP("output", "o", "",
		"Output format. One of: json|yaml|wide|custom-columns=...|custom-columns-file=...|jsonpath=...|jsonpath-file=...")
	cmd.Flags().Bool("no-headers", false,
		"When using the default or custom-column output format, don't print headers (default print headers).")
	cmd.Flags().String("sort-by", sortby,
		"If non-empty, sort list using this field specification. The field specification is expressed as a JSONPath expression (e.g. '{.Name}').")
}
