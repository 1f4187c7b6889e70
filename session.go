// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the session naming scheme and the session directory scanning
// used by the lifecycle operations and the "caplog sessions" listing.

package caplog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/siemens/caplog/api"
)

// Session describes one capture session directory under the capture log
// root, whether still active or already finalized.
type Session struct {
	// Name is the directory base name: the start timestamp, optionally
	// followed by "-" and a tag.
	Name string
	// Dir is the full path of the session directory.
	Dir string
	// StartedAt is the session start time as encoded in the name.
	StartedAt time.Time
	// Tag is the optional user-supplied tag, empty for untagged
	// sessions. Collision padding ("_") is part of the tag.
	Tag string
}

// NewSessionName returns the directory name for a session started at
// the given time.
func NewSessionName(t time.Time) string {
	return t.Format(SessionStampLayout)
}

// ParseSessionName splits a session directory name into its start time
// and optional tag. It returns an error for names that do not begin
// with a well-formed session timestamp, such as stray directories an
// operator parked under the capture log root.
func ParseSessionName(name string) (started time.Time, tag string, err error) {
	stamplen := len(SessionStampLayout)
	if len(name) < stamplen {
		return time.Time{}, "", fmt.Errorf("not a session name: %q", name)
	}
	started, err = time.ParseInLocation(SessionStampLayout, name[:stamplen], time.Local)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("not a session name: %q", name)
	}
	rest := name[stamplen:]
	if rest == "" {
		return started, "", nil
	}
	if !strings.HasPrefix(rest, "-") {
		return time.Time{}, "", fmt.Errorf("not a session name: %q", name)
	}
	return started, rest[1:], nil
}

// TaggedName returns the directory name of a session after tagging it:
// the original timestamp with "-" and the (sanitized) tag appended.
// Existing tags are not stacked; tagging a tagged session replaces the
// tag.
func TaggedName(name, tag string) string {
	stamplen := len(SessionStampLayout)
	if len(name) > stamplen {
		name = name[:stamplen]
	}
	return name + "-" + SanitizeTag(tag)
}

// SanitizeTag makes a user-supplied session tag safe for use in a
// directory name: anything outside letters, digits, dot, underscore,
// and dash becomes a dash.
func SanitizeTag(tag string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '-'
	}, tag)
}

// SessionAt returns the Session for the given directory path, deriving
// start time and tag from the directory name.
func SessionAt(dir string) (*Session, error) {
	name := filepath.Base(dir)
	started, tag, err := ParseSessionName(name)
	if err != nil {
		return nil, err
	}
	return &Session{
		Name:      name,
		Dir:       dir,
		StartedAt: started,
		Tag:       tag,
	}, nil
}

// Elapsed returns how long this session has been (or was) capturing,
// measured from the start timestamp encoded in its name.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.StartedAt).Round(time.Second)
}

// MetadataPath returns the path of this session's metadata descriptor.
func (s *Session) MetadataPath() string {
	return filepath.Join(s.Dir, MetadataFile)
}

// Sessions scans the capture log root and returns all session
// directories, sorted by name and thus by start time. Symlinks (that
// is, the current and last pointers) and directories that do not
// follow the session naming scheme are skipped.
func Sessions(root string) ([]*Session, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot scan capture log root: %w", err)
	}
	sessions := []*Session{}
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink != 0 || !entry.IsDir() {
			continue
		}
		s, err := SessionAt(filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Name < sessions[j].Name
	})
	return sessions, nil
}

// SessionSummary is the listing model for a session directory, with
// everything already rendered for columnar output.
type SessionSummary struct {
	// Name of the session directory.
	Name string
	// Started is the session start time in the stamp layout.
	Started string
	// Tag is the user-supplied tag, if any.
	Tag string
	// Files is the number of capture files in the session.
	Files int
	// Size is the total size of the capture files, human-readable.
	Size string
	// Mark is "current", "last", or empty.
	Mark string
	// System is the system name from the metadata descriptor; only
	// shown in wide output.
	System string
}

// Summarize scans the capture log root and builds the listing model for
// all sessions found there. The capture file pattern (strftime style)
// determines which files count as capture output.
func Summarize(root, pattern string) ([]*SessionSummary, error) {
	sessions, err := Sessions(root)
	if err != nil {
		return nil, err
	}
	currentName := linkTarget(filepath.Join(root, CurrentLink))
	lastName := linkTarget(filepath.Join(root, LastLink))
	summaries := make([]*SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		files, total := captureFiles(s.Dir, pattern)
		sum := &SessionSummary{
			Name:    s.Name,
			Started: s.StartedAt.Format(SessionStampLayout),
			Tag:     s.Tag,
			Files:   len(files),
			Size:    byteSize(total),
			System:  descriptorSystem(s.MetadataPath()),
		}
		switch s.Name {
		case currentName:
			sum.Mark = "current"
		case lastName:
			sum.Mark = "last"
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// linkTarget resolves a symlink to the base name of its target, or
// returns an empty string if there is no such symlink.
func linkTarget(link string) string {
	target, err := os.Readlink(link)
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

// captureFiles globs the capture files of a session directory and
// returns their paths together with the accumulated size.
func captureFiles(dir, pattern string) (paths []string, total int64) {
	paths, err := filepath.Glob(filepath.Join(dir, CaptureGlob(pattern)))
	if err != nil {
		return nil, 0
	}
	sort.Strings(paths)
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil {
			total += fi.Size()
		}
	}
	return paths, total
}

// NewestCapture returns the most recently modified capture file of a
// session directory, or an empty string if there is none (yet). The
// most recent file is the one the post-rotation hook has not seen, so
// it is the one the session stopper hands to the converter.
func NewestCapture(dir, pattern string) string {
	paths, _ := captureFiles(dir, pattern)
	newest := ""
	var newestTime time.Time
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		if newest == "" || fi.ModTime().After(newestTime) {
			newest = p
			newestTime = fi.ModTime()
		}
	}
	return newest
}

// byteSize renders a byte count in a compact human-readable form for
// the session listing.
func byteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// descriptorSystem peeks the system name out of a session metadata
// descriptor; best effort only, for listing purposes.
func descriptorSystem(path string) string {
	info, err := api.LoadSessionInfo(path)
	if err != nil {
		return ""
	}
	return info.System
}
