// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package nif

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("network interface discovery", func() {

	It("lists this host's interfaces", func() {
		nifs, err := List()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(nifs).ShouldNot(BeEmpty())
		names := []string{}
		for _, nif := range nifs {
			Expect(nif.Name).ShouldNot(BeEmpty())
			Expect(nif.Index).Should(BeNumerically(">", 0))
			names = append(names, nif.Name)
		}
		Expect(names).Should(ContainElement("lo"))
	})

	It("knows the loopback interface exists", func() {
		Expect(Exists("lo")).Should(BeTrue())
	})

	It("always accepts capturing from any interface", func() {
		Expect(Exists("any")).Should(BeTrue())
	})

	It("denies knowledge of fantasy interfaces", func() {
		Expect(Exists("eth-definitely-not-here0")).Should(BeFalse())
	})

})
