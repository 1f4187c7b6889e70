// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("session naming", func() {

	It("names sessions after their start time", func() {
		t := time.Date(2025, 11, 3, 7, 5, 9, 0, time.Local)
		Expect(NewSessionName(t)).Should(Equal("2025-11-03_07.05.09"))
	})

	It("parses untagged session names", func() {
		started, tag, err := ParseSessionName("2025-11-03_07.05.09")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(started).Should(Equal(time.Date(2025, 11, 3, 7, 5, 9, 0, time.Local)))
		Expect(tag).Should(BeEmpty())
	})

	It("parses tagged session names, padding included", func() {
		started, tag, err := ParseSessionName("2025-11-03_07.05.09-before-upgrade_")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(started).Should(Equal(time.Date(2025, 11, 3, 7, 5, 9, 0, time.Local)))
		Expect(tag).Should(Equal("before-upgrade_"))
	})

	It("rejects names not following the session naming scheme", func() {
		for _, name := range []string{
			"", "lost+found", "2025-11-03", "2025-11-03_07.05.xx",
			"2025-11-03_07.05.091", "2025-11-03_07.05.09+tag",
		} {
			_, _, err := ParseSessionName(name)
			Expect(err).Should(HaveOccurred(), "name %q", name)
		}
	})

	It("tags and re-tags session names", func() {
		Expect(TaggedName("2025-11-03_07.05.09", "smoke")).
			Should(Equal("2025-11-03_07.05.09-smoke"))
		Expect(TaggedName("2025-11-03_07.05.09-smoke", "mirrors")).
			Should(Equal("2025-11-03_07.05.09-mirrors"))
	})

	It("sanitizes unpalatable tags", func() {
		Expect(SanitizeTag("before upgrade!")).Should(Equal("before-upgrade-"))
		Expect(SanitizeTag("v1.2_rc-3")).Should(Equal("v1.2_rc-3"))
	})

	It("derives sessions from their directories", func() {
		s, err := SessionAt("/var/lib/caplog/2025-11-03_07.05.09-smoke")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Name).Should(Equal("2025-11-03_07.05.09-smoke"))
		Expect(s.Tag).Should(Equal("smoke"))
		Expect(s.StartedAt).Should(
			Equal(time.Date(2025, 11, 3, 7, 5, 9, 0, time.Local)))
		Expect(s.MetadataPath()).Should(
			Equal("/var/lib/caplog/2025-11-03_07.05.09-smoke/session.yaml"))
	})

})

var _ = Describe("capture log scanning", func() {

	var root string

	mksession := func(name string, captures ...string) string {
		dir := filepath.Join(root, name)
		Expect(os.Mkdir(dir, 0755)).Should(Succeed())
		for _, capture := range captures {
			Expect(os.WriteFile(
				filepath.Join(dir, capture), []byte("pcap"), 0644)).Should(Succeed())
		}
		return dir
	}

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "caplog-test-*")
		Expect(err).ShouldNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, root)
	})

	It("scans only session directories", func() {
		mksession("2025-11-03_07.05.09")
		mksession("2025-11-03_08.00.00-smoke")
		mksession("lost+found")
		Expect(os.WriteFile(
			filepath.Join(root, "README"), []byte("nope"), 0644)).Should(Succeed())
		Expect(os.Symlink("2025-11-03_07.05.09",
			filepath.Join(root, CurrentLink))).Should(Succeed())

		sessions, err := Sessions(root)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(sessions).Should(HaveLen(2))
		Expect(sessions[0].Name).Should(Equal("2025-11-03_07.05.09"))
		Expect(sessions[1].Name).Should(Equal("2025-11-03_08.00.00-smoke"))
	})

	It("returns no sessions for a not-yet existing capture log root", func() {
		sessions, err := Sessions(filepath.Join(root, "not-yet"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(sessions).Should(BeEmpty())
	})

	It("summarizes sessions with their marks and capture files", func() {
		mksession("2025-11-03_07.05.09-smoke",
			"trace_2025-11-03_07.05.09.pcap", "trace_2025-11-03_07.10.09.pcap")
		mksession("2025-11-03_08.00.00")
		Expect(os.Symlink("2025-11-03_08.00.00",
			filepath.Join(root, CurrentLink))).Should(Succeed())
		Expect(os.Symlink("2025-11-03_07.05.09-smoke",
			filepath.Join(root, LastLink))).Should(Succeed())

		summaries, err := Summarize(root, DefaultFilePattern)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(summaries).Should(HaveLen(2))
		Expect(summaries[0].Name).Should(Equal("2025-11-03_07.05.09-smoke"))
		Expect(summaries[0].Mark).Should(Equal("last"))
		Expect(summaries[0].Tag).Should(Equal("smoke"))
		Expect(summaries[0].Files).Should(Equal(2))
		Expect(summaries[0].Size).Should(Equal("8B"))
		Expect(summaries[1].Mark).Should(Equal("current"))
		Expect(summaries[1].Files).Should(BeZero())
	})

	It("picks the newest capture file for the final conversion", func() {
		dir := mksession("2025-11-03_07.05.09",
			"trace_2025-11-03_07.05.09.pcap", "trace_2025-11-03_07.10.09.pcap")
		older := filepath.Join(dir, "trace_2025-11-03_07.05.09.pcap")
		newer := filepath.Join(dir, "trace_2025-11-03_07.10.09.pcap")
		past := time.Now().Add(-time.Hour)
		Expect(os.Chtimes(older, past, past)).Should(Succeed())

		Expect(NewestCapture(dir, DefaultFilePattern)).Should(Equal(newer))
		Expect(NewestCapture(dir, "other_%S.log")).Should(BeEmpty())
	})

	It("renders byte counts for human consumption", func() {
		Expect(byteSize(0)).Should(Equal("0B"))
		Expect(byteSize(1023)).Should(Equal("1023B"))
		Expect(byteSize(1024)).Should(Equal("1.0KiB"))
		Expect(byteSize(1536)).Should(Equal("1.5KiB"))
		Expect(byteSize(5 * 1024 * 1024)).Should(Equal("5.0MiB"))
	})

})
