// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("confirmation prompting", func() {

	ask := func(input string) (bool, string) {
		cmd := &cobra.Command{}
		cmd.SetIn(strings.NewReader(input))
		var out bytes.Buffer
		cmd.SetOut(&out)
		answer := askYesNo(cmd, "discard all your work?")
		return answer, out.String()
	}

	It("prompts with a safe-default question", func() {
		_, prompted := ask("\n")
		Expect(prompted).Should(Equal("discard all your work? [y/N] "))
	})

	It("accepts only an explicit yes", func() {
		for _, input := range []string{"y\n", "Y\n", "yes\n", " YES \n"} {
			answer, _ := ask(input)
			Expect(answer).Should(BeTrue(), "input %q", input)
		}
	})

	It("sticks to no for everything else", func() {
		for _, input := range []string{"\n", "n\n", "no\n", "yessir\n", "j\n"} {
			answer, _ := ask(input)
			Expect(answer).Should(BeFalse(), "input %q", input)
		}
	})

	It("sticks to no when the input simply ends", func() {
		answer, prompted := ask("")
		Expect(answer).Should(BeFalse())
		Expect(prompted).Should(HaveSuffix("\n"))
	})

})
