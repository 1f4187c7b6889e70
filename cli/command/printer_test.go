// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"

	"github.com/siemens/caplog"
	"github.com/spf13/cobra"
	"github.com/thediveo/klo"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("listing output", func() {

	summaries := []*caplog.SessionSummary{
		{
			Name: "2025-11-03_08.00.00", Started: "2025-11-03_08.00.00",
			Files: 0, Size: "0B", Mark: "current", System: "plant-b",
		},
		{
			Name: "2025-11-03_07.05.09-smoke", Started: "2025-11-03_07.05.09",
			Files: 2, Size: "8B", Mark: "last", Tag: "smoke", System: "plant-a",
		},
	}

	specs := &klo.Specs{
		DefaultColumnSpec: SessionListTemplate,
		WideColumnSpec:    SessionWideListTemplate,
	}

	printed := func(args ...string) string {
		cmd := &cobra.Command{Use: "listing"}
		listingFlags(cmd, "{.Name}")
		Expect(cmd.ParseFlags(args)).Should(Succeed())
		prn, err := getPrinter(cmd, specs, SessionNameListTemplate)
		Expect(err).ShouldNot(HaveOccurred())
		var out bytes.Buffer
		Expect(prn.Fprint(&out, summaries)).Should(Succeed())
		return out.String()
	}

	It("lists sessions in default columns, sorted by name", func() {
		out := printed()
		Expect(out).Should(MatchRegexp(
			`(?m)^SESSION\s+STARTED\s+FILES\s+SIZE\s+MARK`))
		Expect(out).Should(MatchRegexp(
			`(?s)2025-11-03_07\.05\.09-smoke.*2025-11-03_08\.00\.00`))
		Expect(out).Should(MatchRegexp(
			`(?m)^2025-11-03_07\.05\.09-smoke\s+2025-11-03_07\.05\.09\s+2\s+8B\s+last`))
	})

	It("adds system and tag columns in wide output", func() {
		out := printed("-o", "wide")
		Expect(out).Should(MatchRegexp(`(?m)^SESSION\s+.*SYSTEM\s+TAG`))
		Expect(out).Should(ContainSubstring("plant-a"))
	})

	It("lists only names without headers for scripting", func() {
		out := printed("-o", "name")
		Expect(out).ShouldNot(ContainSubstring("NAME"))
		Expect(out).Should(ContainSubstring("2025-11-03_07.05.09-smoke\n"))
	})

	It("suppresses headers on request", func() {
		out := printed("--no-headers")
		Expect(out).ShouldNot(ContainSubstring("SESSION"))
	})

})
