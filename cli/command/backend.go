// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"strings"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/thediveo/go-plugger/v3"
)

// NewBackend returns a suitable capture backend by asking the registered
// backend factories one after another until the first one returns a backend
// or an error. The local sniffer backend registers itself at the end of the
// factory group, so it serves as the fallback whenever no other backend feels
// responsible.
func NewBackend() (caplog.Backend, error) {
	cfg := Settings()
	for _, newBackend := range plugger.Group[cli.NewBackend]().Symbols() {
		be, err := newBackend(cfg)
		if err != nil {
			return nil, err
		}
		if be != nil {
			return be, nil
		}
	}
	plugins := strings.Join(plugger.Group[cli.NewBackend]().Plugins(), ", ")
	if plugins == "" {
		plugins = "(none)"
	}
	return nil, errors.New("no suitable capture backend; available backends: " + plugins)
}

// NewManager returns the session lifecycle manager for the effective settings
// and the suitable capture backend.
func NewManager() (*caplog.Manager, error) {
	be, err := NewBackend()
	if err != nil {
		return nil, err
	}
	return caplog.NewManager(Settings(), be), nil
}
