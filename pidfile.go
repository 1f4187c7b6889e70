// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WritePid records the PID of a session's capture process in the
// session directory, so later invocations can signal it.
func WritePid(dir string, pid int) error {
	return os.WriteFile(
		filepath.Join(dir, PidFile),
		[]byte(strconv.Itoa(pid)+"\n"),
		0644)
}

// ReadPid returns the PID of a session's capture process, as recorded
// when the session was started.
func ReadPid(dir string) (int, error) {
	b, err := os.ReadFile(filepath.Join(dir, PidFile))
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("corrupt PID file in session %q", filepath.Base(dir))
	}
	return pid, nil
}

// RemovePid removes a session's PID file after the capture process has
// been stopped; a missing PID file is fine.
func RemovePid(dir string) error {
	err := os.Remove(filepath.Join(dir, PidFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
