// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/siemens/caplog"
	"github.com/spf13/cobra"
)

// SetupCLI defines an exposed plugin symbol type for adding “things” to a
// cobra root command (the caplog root command in particular).
type SetupCLI func(*cobra.Command)

// CommandExamples defines an exposed symbol with CLI examples, indexed by a
// particular (sub) command, such as “start” and “sessions”.
type CommandExamples func() map[string]string

// BeforeCommand defines an exposed plugin symbol type for running checks after
// the command line args have been processed and before running the (chosen)
// command.
type BeforeCommand func(*cobra.Command) error

// NewBackend defines an exposed plugin symbol type for returning a suitable
// capture backend based on the effective settings. If a registered backend
// factory isn't responsible, it must return a nil backend as well as a nil
// error. If a factory returns a non-nil error, the attempt to find a suitable
// factory will be aborted and the returned error reported to the CLI user.
type NewBackend func(cfg *caplog.Settings) (caplog.Backend, error)

// SemVer defines an exposed plugin symbol type for returning (overriding) the
// CLI binary's semantic version. The first plugin will win.
type SemVer func() string
