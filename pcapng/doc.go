// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

/*
Package pcapng implements the minimal slice of the pcapng capture file
format needed for remote capture sessions: editing the section header
block of a packet stream to stamp capture session metadata into its
comment option, and framing a continuous packet stream into whole
blocks so the stream can be cut into self-contained capture files at
rotation boundaries.

This is deliberately not a general pcapng codec: packet blocks pass
through completely untouched, and only the handful of section header
options we care about are ever interpreted.
*/
package pcapng
