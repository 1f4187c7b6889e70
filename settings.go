// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings are the user-configurable knobs of the capture log tool,
// as read from the configuration file, environment variables with the
// "CAPLOG_" prefix, and command line flags (in ascending order of
// precedence).
type Settings struct {
	// Root is the capture log root directory keeping the session
	// directories.
	Root string `mapstructure:"root"`
	// System is the default system name for new sessions.
	System string `mapstructure:"system"`
	// Interface is the default network interface to capture from.
	Interface string `mapstructure:"interface"`
	// Systems is the list of known system names; when non-empty,
	// system names given on the command line get checked against it.
	Systems []string `mapstructure:"systems"`
	// Sniffer is the external packet capture program.
	Sniffer string `mapstructure:"sniffer"`
	// Converter is the external post-processing program turning capture
	// files into the analysis format.
	Converter string `mapstructure:"converter"`
	// FormatFile is the format description passed to the converter.
	FormatFile string `mapstructure:"format_file"`
	// RotateInterval is how often the sniffer starts a new capture
	// file.
	RotateInterval time.Duration `mapstructure:"rotate_interval"`
	// FilePattern names capture files, in strftime(3) notation.
	FilePattern string `mapstructure:"file_pattern"`
	// Filter is an optional pcap filter expression.
	Filter string `mapstructure:"filter"`
	// SnapLen optionally truncates captured packets to this size; zero
	// keeps the sniffer's default.
	SnapLen int `mapstructure:"snaplen"`
	// NoPromiscuous disables promiscuous mode on the capture
	// interface.
	NoPromiscuous bool `mapstructure:"no_promiscuous"`
	// Remote is the base URL of a packetflix capture service; when
	// set, capturing is remote instead of via the local sniffer.
	Remote string `mapstructure:"remote"`
	// Token is an optional bearer token for the capture service.
	Token string `mapstructure:"token"`
	// Insecure skips TLS certificate verification when contacting the
	// capture service.
	Insecure bool `mapstructure:"insecure"`
}

// SetDefaults registers the baked-in defaults for all settings with
// viper, so they apply whenever neither configuration file nor
// environment nor flags say otherwise.
func SetDefaults() {
	viper.SetDefault("root", DefaultRoot)
	viper.SetDefault("system", DefaultSystem)
	viper.SetDefault("interface", DefaultInterface)
	viper.SetDefault("systems", []string{})
	viper.SetDefault("sniffer", DefaultSniffer)
	viper.SetDefault("converter", DefaultConverter)
	viper.SetDefault("format_file", DefaultFormatFile)
	viper.SetDefault("rotate_interval", DefaultRotateInterval)
	viper.SetDefault("file_pattern", DefaultFilePattern)
	viper.SetDefault("filter", "")
	viper.SetDefault("snaplen", 0)
	viper.SetDefault("no_promiscuous", false)
	viper.SetDefault("remote", "")
	viper.SetDefault("token", "")
	viper.SetDefault("insecure", false)
}

// InitConfig wires up viper: it registers the defaults, points viper
// at the configuration file (either an explicitly given one or the
// usual suspects), and switches on the environment variable overrides.
// A missing configuration file is fine; a present but broken one is
// not.
func InitConfig(cfgFile string) error {
	SetDefaults()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		if dir, err := ConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath("/etc/caplog")
	}
	viper.SetEnvPrefix("CAPLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// LoadSettings returns the effective settings, with configuration file,
// environment, and flag overrides already applied.
func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := viper.Unmarshal(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ConfigDir returns the per-user configuration directory for the
// capture log tool, following the XDG base directory convention.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "caplog"), nil
}
