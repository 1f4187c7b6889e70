// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"errors"
	"time"

	"github.com/siemens/caplog/api"
)

// ErrNoListenConfirm is returned when a freshly launched capture
// process does not confirm within the grace period that it is actually
// listening on its network interface.
var ErrNoListenConfirm = errors.New(
	"capture process did not confirm listening on the interface")

// Backend starts the actual packet capturing for new sessions. The
// local backend runs the external sniffer; the packetflix backend
// taps a remote capture service instead.
type Backend interface {
	// Name identifies this backend in logs and session descriptors.
	Name() string
	// Check verifies this backend's prerequisites before a session
	// gets started, such as the sniffer being installed at all.
	Check() error
	// Launch starts a capture process, fully detached from the
	// calling process, and returns its PID. The capture process must
	// write a line containing "listening on" to the session's sniffer
	// log as soon as it actually captures packets.
	Launch(spec *LaunchSpec) (int, error)
}

// LaunchSpec tells a capture backend everything it needs to know to
// start capturing into a particular session directory.
type LaunchSpec struct {
	// Dir is the absolute path of the session directory; all capture
	// files go here.
	Dir string
	// Interface is the network interface to capture from.
	Interface string
	// Filter is an optional pcap filter expression; empty captures
	// everything.
	Filter string
	// SnapLen optionally truncates captured packets; zero keeps the
	// sniffer's default.
	SnapLen int
	// NoPromiscuous disables promiscuous mode on the interface.
	NoPromiscuous bool
	// RotateInterval is how often to start a new capture file.
	RotateInterval time.Duration
	// FilePattern names the capture files, in strftime(3) notation.
	FilePattern string
	// PostRotate is the path of the executable to run on each completed
	// capture file, invoked with the file path as its sole argument;
	// empty disables post-rotation processing. The executable runs
	// with the session directory as its working directory, where the
	// format descriptor has been placed.
	PostRotate string
	// LogPath is the capture process's log file, inside Dir.
	LogPath string
	// Info is the session metadata; backends that own the capture
	// stream stamp it into the stream's section header.
	Info *api.SessionInfo
}
