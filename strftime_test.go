// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("capture file patterns", func() {

	t := time.Date(2025, 11, 3, 7, 5, 9, 0, time.UTC)

	It("renders the strftime conversions the sniffer understands", func() {
		Expect(Strftime("trace_%Y-%m-%d_%H.%M.%S.pcap", t)).
			Should(Equal("trace_2025-11-03_07.05.09.pcap"))
		Expect(Strftime("%y%j", t)).Should(Equal("25307"))
		Expect(Strftime("at_%s", t)).Should(Equal("at_1762153509"))
		Expect(Strftime("in_%Z", t)).Should(Equal("in_UTC"))
	})

	It("keeps literals, escapes, and unknown conversions verbatim", func() {
		Expect(Strftime("plain.pcap", t)).Should(Equal("plain.pcap"))
		Expect(Strftime("100%% sure", t)).Should(Equal("100% sure"))
		Expect(Strftime("what is %q", t)).Should(Equal("what is %q"))
		Expect(Strftime("dangling %", t)).Should(Equal("dangling %"))
	})

	It("turns patterns into globs matching all their renderings", func() {
		Expect(CaptureGlob("trace_%Y-%m-%d_%H.%M.%S.pcap")).
			Should(Equal("trace_*-*-*_*.*.*.pcap"))
		Expect(CaptureGlob("trace_%Y%m%d.pcap")).Should(Equal("trace_*.pcap"))
		Expect(CaptureGlob("100%%_%d.pcap")).Should(Equal("100%_*.pcap"))
		Expect(CaptureGlob("plain.pcap")).Should(Equal("plain.pcap"))
	})

})
