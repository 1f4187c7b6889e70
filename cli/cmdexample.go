// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"github.com/thediveo/go-plugger/v3"
)

// Examples collects all examples for the specified command from the registered
// plugins, in plugin order. The individual example texts get separated by
// empty lines, without any trailing newline for the overall section.
func Examples(command string) string {
	examples := ""
	for _, example := range plugger.Group[CommandExamples]().Symbols() {
		text := strings.TrimSuffix(example()[command], "\n")
		if text == "" {
			continue
		}
		if examples != "" {
			examples += "\n\n"
		}
		examples += text
	}
	return examples
}
