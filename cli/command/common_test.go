// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package command

import (
	"github.com/spf13/cobra"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CLI plumbing", func() {

	It("wires up the root command with its lifecycle commands", func() {
		root := SetupCLI()
		names := []string{}
		for _, cmd := range root.Commands() {
			names = append(names, cmd.Name())
		}
		Expect(names).Should(ContainElements(
			"start", "save", "discard", "stop",
			"status", "sessions", "interfaces", "version"))
	})

	It("groups annotated flags as mutually exclusive", func() {
		cmd := &cobra.Command{
			Use:  "grumpy",
			RunE: func(*cobra.Command, []string) error { return nil },
		}
		cmd.Flags().Bool("left", false, "")
		cmd.Flags().Bool("right", false, "")
		Annotate(cmd.Flags(), "left", MutualFlagGroupAnnotation, "direction")
		Annotate(cmd.Flags(), "right", MutualFlagGroupAnnotation, "direction")
		mutuallyExclusives(cmd)

		cmd.SetArgs([]string{"--left", "--right"})
		Expect(cmd.Execute()).ShouldNot(Succeed())

		cmd = &cobra.Command{
			Use:  "happy",
			RunE: func(*cobra.Command, []string) error { return nil },
		}
		cmd.Flags().Bool("left", false, "")
		cmd.Flags().Bool("right", false, "")
		Annotate(cmd.Flags(), "left", MutualFlagGroupAnnotation, "direction")
		Annotate(cmd.Flags(), "right", MutualFlagGroupAnnotation, "direction")
		mutuallyExclusives(cmd)

		cmd.SetArgs([]string{"--left"})
		Expect(cmd.Execute()).Should(Succeed())
	})

})
