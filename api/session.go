// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package api

import (
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// SessionInfo is the metadata descriptor of a single capture session.
// It is written as "session.yaml" into the session directory right
// after the directory has been created, before the capture process is
// launched.
type SessionInfo struct {
	// ID uniquely identifies this capture session across renames.
	ID string `yaml:"id,omitempty"`
	// Session is the name of the session directory, that is, the start
	// timestamp plus any later tag.
	Session string `yaml:"session"`
	// System is the name of the system the capture was taken from.
	System string `yaml:"system"`
	// Interface is the network interface captured from.
	Interface string `yaml:"interface"`
	// Host is the hostname of the capturing workstation. For remote
	// captures this is still the operator's workstation, not the
	// capture service's host.
	Host string `yaml:"host"`
	// Author identifies the operator, as "login" or "login (Real
	// Name)" where the real name is known.
	Author string `yaml:"author"`
	// Started is the (local) wallclock time the session was started.
	Started time.Time `yaml:"started"`
	// Tool records the capturing tool and its version.
	Tool string `yaml:"tool,omitempty"`
	// Backend names the capture backend used, such as "tcpdump" or
	// "packetflix".
	Backend string `yaml:"backend,omitempty"`
	// Filter is the pcap filter expression in effect, if any.
	Filter string `yaml:"capture-filter,omitempty"`
	// NoPromiscuous is true when the interface was deliberately not
	// switched into promiscuous mode.
	NoPromiscuous bool `yaml:"no-promiscuous-mode,omitempty"`
	// Revision describes the source revision state of the workspace
	// the capture was taken from, if it is under version control.
	Revision *Revision `yaml:"revision,omitempty"`
}

// Revision pins down the source revision state of a workspace at
// capture time, including any not-yet-committed changes.
type Revision struct {
	// Commit is the identifier of the checked-out revision.
	Commit string `yaml:"commit"`
	// Branch is the checked-out branch, if on one.
	Branch string `yaml:"branch,omitempty"`
	// Dirty is true when the working tree had uncommitted changes.
	Dirty bool `yaml:"dirty,omitempty"`
	// Diff is the unified diff of those uncommitted changes.
	Diff string `yaml:"diff,omitempty"`
}

// Save writes this session metadata descriptor to the given file.
func (i *SessionInfo) Save(path string) error {
	b, err := yaml.Marshal(i)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte("# capture session information\n"), b...), 0644)
}

// LoadSessionInfo reads a session metadata descriptor back from the
// given file.
func LoadSessionInfo(path string) (*SessionInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info := &SessionInfo{}
	if err := yaml.Unmarshal(b, info); err != nil {
		return nil, err
	}
	return info, nil
}
