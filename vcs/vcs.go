// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Package vcs queries the source revision state of an operator's
// workspace, so capture sessions can record which exact code revision
// (plus local modifications) was running when the packets were taken.
// Everything here is best effort: a workspace that is not under
// version control, or a workstation without the git client installed,
// simply yields no revision information instead of an error.
package vcs

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/siemens/caplog/api"
)

// Describe returns the revision state of the workspace containing dir:
// the checked-out commit and branch, and, if the working tree has
// uncommitted changes, the unified diff of those changes. It returns
// nil when dir is not inside a (git) workspace or the git client is
// not available.
func Describe(dir string) *api.Revision {
	commit, err := git(dir, "rev-parse", "HEAD")
	if err != nil {
		return nil
	}
	rev := &api.Revision{Commit: commit}
	if branch, err := git(dir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil &&
		branch != "HEAD" {
		rev.Branch = branch
	}
	status, err := git(dir, "status", "--porcelain")
	if err != nil || status == "" {
		return rev
	}
	rev.Dirty = true
	if diff, err := git(dir, "diff", "HEAD"); err == nil {
		rev.Diff = diff
	}
	return rev
}

// git runs a git subcommand in the given directory and returns its
// trimmed output.
func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimRight(out.String(), "\n"), nil
}
