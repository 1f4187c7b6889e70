// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

/*
Package caplog manages raw network packet capture sessions on a single
(container) host. A session is one bounded interval of capturing,
materialized as a timestamped directory under a capture log root. caplog
does not capture packets itself: it delegates the capturing to an
external sniffer (tcpdump, by default) or to a Packetflix capture
service reachable over a websocket, and it delegates format conversion
of the captured files to an external post-processing tool. What caplog
owns is the lifecycle around those collaborators: session directories,
the “current” and “last” symlinks, the metadata descriptor written into
every session, marker files that let a follow-up session reuse the same
system and interface, and the signalling that starts and stops the
background capture process.

The lifecycle operations are Start, Save, Discard, and Stop, available
on a [Manager]. Start creates a fresh session and launches the capture
in the background; Save finalizes the running session (optionally
tagging it) and immediately starts the next one with the same
configuration; Discard throws the running session away and also starts
the next one; Stop finalizes the running session and leaves capturing
off. At most one session is “current” at any time, marked by the
“current” symlink; the most recently finalized session is kept
reachable through the “last” symlink.

All state lives in the file system and in the OS process table. caplog
invocations are short-lived processes that read that state afresh, so
there is no daemon, no IPC, and no locking: the design assumes a single
operator driving a single capture host.
*/
package caplog
