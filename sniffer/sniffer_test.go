// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package sniffer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/siemens/caplog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("local sniffer backend", func() {

	spec := &caplog.LaunchSpec{
		Dir:            "/var/lib/caplog/2025-11-03_07.05.09",
		Interface:      "eth0",
		RotateInterval: 5 * time.Minute,
		FilePattern:    "trace_%Y-%m-%d_%H.%M.%S.pcap",
	}

	It("assembles the minimal capture command line", func() {
		Expect(Args("tcpdump", spec)).Should(Equal([]string{
			"tcpdump",
			"-i", "eth0",
			"-G", "300",
			"-w", "trace_%Y-%m-%d_%H.%M.%S.pcap",
		}))
	})

	It("assembles the full-blown capture command line", func() {
		full := *spec
		full.Filter = "port 4840"
		full.SnapLen = 256
		full.NoPromiscuous = true
		full.PostRotate = "/usr/local/bin/caplog-convert"
		Expect(Args("tcpdump", &full)).Should(Equal([]string{
			"tcpdump",
			"-i", "eth0",
			"-G", "300",
			"-w", "trace_%Y-%m-%d_%H.%M.%S.pcap",
			"-z", "/usr/local/bin/caplog-convert",
			"-p",
			"-s", "256",
			"port 4840",
		}))
	})

	It("is named after the capture program", func() {
		Expect(New("/usr/sbin/tcpdump").Name()).Should(Equal("tcpdump"))
		Expect(New("dumpcap").Name()).Should(Equal("dumpcap"))
	})

	It("checks that the capture program is installed", func() {
		Expect(New("sh").Check()).Should(Succeed())
		Expect(New("no-such-sniffer-anywhere").Check()).ShouldNot(Succeed())
	})

	It("launches the capture program detached, logging to the session", func() {
		dir, err := os.MkdirTemp("", "caplog-test-*")
		Expect(err).ShouldNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		// A fake capture program: it announces listening on its
		// interface argument just like tcpdump would on stderr, then
		// lingers.
		fake := filepath.Join(dir, "fakedump")
		Expect(os.WriteFile(fake, []byte(
			"#!/bin/sh\necho \"listening on $2, link-type EN10MB\" >&2\nsleep 60\n"),
			0755)).Should(Succeed())

		launch := *spec
		launch.Dir = dir
		launch.LogPath = filepath.Join(dir, caplog.SnifferLog)
		s := New(fake)
		Expect(s.Check()).Should(Succeed())

		pid, err := s.Launch(&launch)
		Expect(err).ShouldNot(HaveOccurred())
		DeferCleanup(func() { _ = caplog.Terminate(pid, time.Second) })

		Expect(caplog.WaitListening(
			launch.LogPath, caplog.ListenConfirmTimeout)).Should(Succeed())
		Expect(caplog.ProcessAlive(pid)).Should(BeTrue())
		logged, err := os.ReadFile(launch.LogPath)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(logged)).Should(ContainSubstring("listening on eth0"))
	})

})
