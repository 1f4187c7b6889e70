// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package command

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// askYesNo asks the user the given question and returns true only for an
// explicit "y" or "yes" answer; anything else, including just pressing
// enter or the input ending, sticks to the safe default of "no".
func askYesNo(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		fmt.Fprintln(cmd.OutOrStdout())
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
