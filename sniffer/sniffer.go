// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Package sniffer runs the external packet capture program (tcpdump,
// unless configured otherwise) as a detached background process,
// capturing into a session directory with periodic file rotation and a
// post-rotation hook for converting completed capture files.
package sniffer

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/siemens/caplog"
)

// Sniffer is the capture backend driving a local packet capture
// program; it implements the Backend contract of the session lifecycle
// manager.
type Sniffer struct {
	program string
}

// New returns a capture backend running the given local packet capture
// program, which must understand the usual tcpdump command line
// conventions.
func New(program string) *Sniffer {
	return &Sniffer{program: program}
}

// Name returns the (base) name of the capture program.
func (s *Sniffer) Name() string {
	return filepath.Base(s.program)
}

// Check verifies that the capture program is installed at all.
func (s *Sniffer) Check() error {
	if _, err := exec.LookPath(s.program); err != nil {
		return fmt.Errorf("sniffer not available: %w", err)
	}
	return nil
}

// Launch starts the capture program detached from the calling process,
// capturing into the session directory described by the launch spec.
// It returns the capture process's PID. The capture program announces
// "listening on ..." in the session's sniffer log once it captures.
func (s *Sniffer) Launch(spec *caplog.LaunchSpec) (int, error) {
	return caplog.LaunchDetached(Args(s.program, spec), spec.Dir, spec.LogPath, 0)
}

// Args assembles the capture program's command line for the given
// launch spec. The capture file pattern stays relative, as the capture
// process runs with the session directory as its working directory;
// this keeps the post-rotation hook's file arguments relative, too.
func Args(program string, spec *caplog.LaunchSpec) []string {
	argv := []string{
		program,
		"-i", spec.Interface,
		"-G", strconv.Itoa(int(spec.RotateInterval.Seconds())),
		"-w", spec.FilePattern,
	}
	if spec.PostRotate != "" {
		argv = append(argv, "-z", spec.PostRotate)
	}
	if spec.NoPromiscuous {
		argv = append(argv, "-p")
	}
	if spec.SnapLen > 0 {
		argv = append(argv, "-s", strconv.Itoa(spec.SnapLen))
	}
	if spec.Filter != "" {
		argv = append(argv, spec.Filter)
	}
	return argv
}
