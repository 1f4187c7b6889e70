// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Package packetflix provides the capture backend plugin for capturing via a
// remote Packetflix capture service, instead of running the local sniffer.
// The backend launches a detached "caplog stream" worker process that taps
// the capture service and lays down the rotating capture files, so that the
// capture's lifetime decouples from the CLI invocation exactly like the
// local sniffer's does.
package packetflix

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/go-plugger/v3"
)

func init() {
	plugger.Group[cli.SetupCLI]().Register(
		RemoteSetupCLI, plugger.WithPlugin("packetflix"))
	plugger.Group[cli.NewBackend]().Register(
		NewRemoteBackend, plugger.WithPlugin("packetflix"))
	plugger.Group[cli.CommandExamples]().Register(
		func() map[string]string {
			return map[string]string{
				"start": `# Capture from a Packetflix capture service instead of the local sniffer.
caplog start plant-a eth0 --remote http://capture-host:5001`,
			}
		},
		plugger.WithPlugin("packetflix"))
}

// RemoteSetupCLI registers the global CLI flags selecting and parameterizing
// the remote capture service, binding them to their settings.
func RemoteSetupCLI(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("remote", "",
		`[http://|https://]hostname[:port][/path] of a Packetflix capture service
to capture from, instead of the local sniffer`)
	pf.String("token", "",
		"Bearer token for authentication with the capture service")
	pf.BoolP("insecure", "k", false,
		"Danger: skip invalid server certificates when contacting the capture service")
	viper.BindPFlag("remote", pf.Lookup("remote"))
	viper.BindPFlag("token", pf.Lookup("token"))
	viper.BindPFlag("insecure", pf.Lookup("insecure"))
}

// NewRemoteBackend returns the remote capture backend if a capture service
// has been configured, otherwise it passes and the factory chain moves on to
// the local sniffer fallback.
func NewRemoteBackend(cfg *caplog.Settings) (caplog.Backend, error) {
	if cfg.Remote == "" {
		return nil, nil
	}
	return &remoteBackend{cfg: cfg}, nil
}

// remoteBackend launches detached capture stream workers tapping a
// Packetflix capture service.
type remoteBackend struct {
	cfg *caplog.Settings
}

// Name identifies this backend in logs and session descriptors.
func (r *remoteBackend) Name() string { return "packetflix" }

// Check verifies that the configured capture service URL at least parses,
// before any session directory gets created for it.
func (r *remoteBackend) Check() error {
	u, err := url.Parse(r.cfg.Remote)
	if err != nil {
		return fmt.Errorf("invalid capture service URL %q: %w", r.cfg.Remote, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss", "":
		return nil
	}
	return fmt.Errorf("unsupported capture service URL scheme %q", u.Scheme)
}

// Launch re-executes this very binary as a detached "caplog stream" worker
// process, with everything the worker needs passed explicitly on its command
// line; the worker then confirms "listening on ..." through the session's
// sniffer log like the local sniffer would.
func (r *remoteBackend) Launch(spec *caplog.LaunchSpec) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, err
	}
	argv := []string{exe, "stream",
		"--remote", r.cfg.Remote,
		"--nif", spec.Interface,
		"--meta", caplog.MetadataFile,
		"--rotate-interval", spec.RotateInterval.String(),
		"--file-pattern", spec.FilePattern,
	}
	if spec.Filter != "" {
		argv = append(argv, "--filter", spec.Filter)
	}
	if spec.SnapLen > 0 {
		argv = append(argv, "--snaplen", strconv.Itoa(spec.SnapLen))
	}
	if spec.NoPromiscuous {
		argv = append(argv, "--no-promiscuous")
	}
	if spec.PostRotate != "" {
		argv = append(argv, "--hook", spec.PostRotate)
	}
	if r.cfg.Token != "" {
		argv = append(argv, "--token", r.cfg.Token)
	}
	if r.cfg.Insecure {
		argv = append(argv, "--insecure")
	}
	return caplog.LaunchDetached(argv, spec.Dir, spec.LogPath, 0)
}
