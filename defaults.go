// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import "time"

const (
	// DefaultRoot is the capture log root used unless the configuration
	// says otherwise. All session directories, the current/last
	// symlinks, and the marker files live underneath it.
	DefaultRoot = "/var/lib/caplog"

	// DefaultSniffer is the external capture executable launched by the
	// local capture backend.
	DefaultSniffer = "tcpdump"

	// DefaultConverter is the external post-processing executable that
	// converts raw capture files into the analysis format. It doubles
	// as the post-rotation hook handed to the sniffer.
	DefaultConverter = "caplog-convert"

	// DefaultFormatFile is the format descriptor that gets copied into
	// every new session directory, so the analysis side always finds
	// the payload format description next to the capture files.
	DefaultFormatFile = "/etc/caplog/format.yaml"

	// DefaultInterface is captured from when neither the command line,
	// the environment, nor the configuration name an interface.
	DefaultInterface = "any"

	// DefaultSystem names the system a capture belongs to when nobody
	// says otherwise. Scratch captures are not expected to be in the
	// recognized-systems list, so starting one warns.
	DefaultSystem = "scratch"

	// DefaultRotateInterval is how often the capture process starts a
	// new output file.
	DefaultRotateInterval = 5 * time.Minute

	// DefaultFilePattern names the rotated capture files; it uses
	// strftime conversions because that is what the sniffer expects in
	// its output path.
	DefaultFilePattern = "trace_%Y-%m-%d_%H.%M.%S.pcap"

	// DefaultServiceTimeout limits establishing a stream connection to
	// a remote Packetflix capture service, including the websocket
	// handshake phase.
	DefaultServiceTimeout = 30 * time.Second
)

const (
	// ListenConfirmTimeout is the short fixed delay within which a
	// freshly launched capture process must report that it is
	// listening; otherwise starting the session is considered failed
	// (while the process, if any, is left untouched).
	ListenConfirmTimeout = 3 * time.Second

	// StopGraceTimeout is how long stopping waits for a signalled
	// capture process to actually terminate before carrying on with
	// finalizing the session. The sniffer flushes its last output file
	// on termination, so waiting a bit keeps the final conversion from
	// seeing a truncated file.
	StopGraceTimeout = 5 * time.Second

	// ConvertNiceness is the niceness applied to a backgrounded
	// post-processing run, so it does not compete with the next capture
	// session for the CPU.
	ConvertNiceness = 10
)

// Well-known names inside the capture log root. The markers are hidden
// files at the root (not inside the session directory) so they survive
// session directories coming and going across save/discard cycles.
const (
	// CurrentLink is the symlink to the active session directory; it
	// exists exactly as long as a capture is in progress.
	CurrentLink = "current"
	// LastLink is the symlink to the most recently finalized session.
	LastLink = "last"
	// SystemMarker records the active system name for save/discard
	// cycles to reuse.
	SystemMarker = ".system"
	// InterfaceMarker records the active capture interface, ditto.
	InterfaceMarker = ".interface"
)

// Well-known names inside a session directory. The capture process's
// PID is kept here rather than at the root: it is found through the
// "current" symlink and is gone again before finalizing renames the
// directory.
const (
	// PidFile records the pid of the detached capture process.
	PidFile = ".capture.pid"
	// MetadataFile is the session metadata descriptor.
	MetadataFile = "session.yaml"
	// SnifferLog receives the capture process's stderr; the session
	// starter scans it for the listen confirmation.
	SnifferLog = "sniffer.log"
	// ConvertLog receives the output of a backgrounded post-processing
	// run.
	ConvertLog = "convert.log"
)

// SessionStampLayout is the reference layout of the timestamp that
// names a session directory. Dots instead of colons keep the names
// palatable to file systems and shells alike.
const SessionStampLayout = "2006-01-02_15.04.05"
