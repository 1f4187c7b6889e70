// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ListenConfirmation is the log line fragment a capture process emits
// once it actually captures packets; tcpdump prints it natively, the
// capture stream worker mimics it.
const ListenConfirmation = "listening on"

// LaunchDetached starts the given command line fully detached from the
// calling process: in its own session, with stdout and stderr appended
// to the given log file, and re-parented to init as soon as the caller
// exits. It returns the PID of the detached process. A non-zero
// niceness lowers the new process's scheduling priority, for
// housekeeping jobs that should stay out of the capture's way.
func LaunchDetached(argv []string, dir, logPath string, niceness int) (int, error) {
	logf, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return 0, err
	}
	defer logf.Close()
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if niceness != 0 {
		// Best effort; unprivileged users can only lower priority.
		_ = unix.Setpriority(unix.PRIO_PROCESS, pid, niceness)
	}
	// Reap the child in case it dies while we are still around, so it
	// won't linger as our zombie; once we exit, init inherits it.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

// WaitListening waits for a freshly launched capture process to
// confirm in its log file that it is listening on its interface,
// returning ErrNoListenConfirm when the confirmation doesn't appear
// within the given grace period. The log file is polled instead of
// piped, as the capture process must outlive us.
func WaitListening(logPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		b, err := os.ReadFile(logPath)
		if err == nil && strings.Contains(string(b), ListenConfirmation) {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrNoListenConfirm
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// ProcessAlive reports whether a process with the given PID currently
// exists. An EPERM probe outcome still means "exists", just owned by
// someone else.
func ProcessAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// Terminate asks the process with the given PID to terminate and waits
// for it to go away, escalating to SIGKILL after the grace period. A
// process that is already gone is not an error.
func Terminate(pid int, grace time.Duration) error {
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		if errors.Is(err, unix.ESRCH) {
			return nil
		}
		return err
	}
	deadline := time.Now().Add(grace)
	for ProcessAlive(pid) {
		if time.Now().After(deadline) {
			if err := unix.Kill(pid, unix.SIGKILL); err != nil &&
				!errors.Is(err, unix.ESRCH) {
				return err
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
