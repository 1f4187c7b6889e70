// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

/*
Package api defines the statically typed data model of the session
metadata descriptor: the "session.yaml" file written into every capture
session directory when the session starts. The descriptor records who
captured what, where, and when, together with the source revision state
of the workspace the capture was taken from, so that a capture file
found months later can still be traced back to its circumstances.

The same data model, reduced to its stream-relevant fields, also gets
stamped into the section header of remotely captured packet streams.
*/
package api
