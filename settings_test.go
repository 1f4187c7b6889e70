// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("settings", func() {

	var cfgFile string

	writeConfig := func(yaml string) {
		Expect(os.WriteFile(cfgFile, []byte(yaml), 0644)).Should(Succeed())
	}

	BeforeEach(func() {
		dir, err := os.MkdirTemp("", "caplog-test-*")
		Expect(err).ShouldNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
		cfgFile = filepath.Join(dir, "config.yaml")
		viper.Reset()
		DeferCleanup(viper.Reset)
	})

	It("settles on the baked-in defaults", func() {
		writeConfig("# nothing configured\n")
		Expect(InitConfig(cfgFile)).Should(Succeed())
		s, err := LoadSettings()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Root).Should(Equal(DefaultRoot))
		Expect(s.System).Should(Equal(DefaultSystem))
		Expect(s.Interface).Should(Equal(DefaultInterface))
		Expect(s.Systems).Should(BeEmpty())
		Expect(s.Sniffer).Should(Equal(DefaultSniffer))
		Expect(s.Converter).Should(Equal(DefaultConverter))
		Expect(s.RotateInterval).Should(Equal(DefaultRotateInterval))
		Expect(s.FilePattern).Should(Equal(DefaultFilePattern))
		Expect(s.Remote).Should(BeEmpty())
	})

	It("honors the configuration file", func() {
		writeConfig(`root: /tmp/captures
system: Plant-A
interface: eth1
systems:
  - Plant-A
  - Plant-B
sniffer: dumpcap
rotate_interval: 30s
snaplen: 128
no_promiscuous: true
`)
		Expect(InitConfig(cfgFile)).Should(Succeed())
		s, err := LoadSettings()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Root).Should(Equal("/tmp/captures"))
		Expect(s.System).Should(Equal("Plant-A"))
		Expect(s.Interface).Should(Equal("eth1"))
		Expect(s.Systems).Should(ConsistOf("Plant-A", "Plant-B"))
		Expect(s.Sniffer).Should(Equal("dumpcap"))
		Expect(s.RotateInterval).Should(Equal(30 * time.Second))
		Expect(s.SnapLen).Should(Equal(128))
		Expect(s.NoPromiscuous).Should(BeTrue())
	})

	It("lets the environment override the configuration file", func() {
		writeConfig("converter: from-config\n")
		os.Setenv("CAPLOG_CONVERTER", "from-env")
		DeferCleanup(os.Unsetenv, "CAPLOG_CONVERTER")
		Expect(InitConfig(cfgFile)).Should(Succeed())
		s, err := LoadSettings()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s.Converter).Should(Equal("from-env"))
	})

	It("rejects an explicitly named but missing configuration file", func() {
		Expect(InitConfig(filepath.Join(
			filepath.Dir(cfgFile), "no-such-config.yaml"))).ShouldNot(Succeed())
	})

	It("rejects broken configuration files", func() {
		writeConfig(":: this is not yaml ::\n")
		Expect(InitConfig(cfgFile)).ShouldNot(Succeed())
	})

})
