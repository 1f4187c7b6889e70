// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/siemens/caplog/api"
	"github.com/siemens/caplog/vcs"
)

// ErrNoSession is returned by lifecycle operations that need a running
// capture session when there is none.
var ErrNoSession = errors.New("no capture session is running")

// Manager performs the capture session lifecycle operations (start,
// save, discard, stop) on a capture log root directory. It keeps no
// state of its own: all session state lives in the file system and the
// OS process table, so every CLI invocation starts from a clean slate.
type Manager struct {
	cfg     *Settings
	backend Backend
}

// NewManager returns a session lifecycle manager using the given
// settings and capture backend.
func NewManager(cfg *Settings, backend Backend) *Manager {
	return &Manager{cfg: cfg, backend: backend}
}

// StopOptions control how a session stop deals with the final
// conversion of the most recent capture file.
type StopOptions struct {
	// NoWait backgrounds the conversion at reduced priority instead of
	// waiting for it.
	NoWait bool
	// NoConvert skips the conversion entirely.
	NoConvert bool
}

// Current returns the active capture session, or nil if there is none.
// A dangling "current" symlink counts as no session.
func (m *Manager) Current() (*Session, error) {
	return CurrentSession(m.cfg.Root)
}

// CurrentSession returns the session the "current" symlink of the given
// capture log root points to, or nil if there is none. A dangling
// symlink counts as no session.
func CurrentSession(root string) (*Session, error) {
	return linkedSession(root, CurrentLink)
}

// LastSession returns the most recently finalized session, as pointed
// to by the "last" symlink, or nil if there is none.
func LastSession(root string) (*Session, error) {
	return linkedSession(root, LastLink)
}

func linkedSession(root, link string) (*Session, error) {
	target, err := os.Readlink(filepath.Join(root, link))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	if fi, err := os.Stat(target); err != nil || !fi.IsDir() {
		return nil, nil
	}
	return SessionAt(target)
}

// Markers returns the system and interface recorded in the capture log
// root's marker files; missing markers yield empty strings.
func Markers(root string) (system, iface string) {
	if b, err := os.ReadFile(filepath.Join(root, SystemMarker)); err == nil {
		system = strings.TrimSpace(string(b))
	}
	if b, err := os.ReadFile(filepath.Join(root, InterfaceMarker)); err == nil {
		iface = strings.TrimSpace(string(b))
	}
	return
}

// Start begins a new capture session for the given system, capturing
// from the given network interface: it creates the timestamped session
// directory, points the "current" symlink at it, records system and
// interface in the marker files, writes the metadata descriptor,
// copies in the format descriptor, and launches the capture process.
// It fails when another session is already running, and it returns
// ErrNoListenConfirm (wrapped) when the capture process does not
// confirm within the grace period that it is listening.
func (m *Manager) Start(system, iface string) (*Session, error) {
	if err := m.backend.Check(); err != nil {
		return nil, err
	}
	converter, err := m.converterPath()
	if err != nil {
		return nil, err
	}
	if s, err := m.Current(); err != nil {
		return nil, err
	} else if s != nil {
		return nil, fmt.Errorf(
			"capture session %s is already running; save, discard, or stop it first",
			s.Name)
	}
	if err := os.MkdirAll(m.cfg.Root, 0755); err != nil {
		return nil, fmt.Errorf("cannot create capture log root: %w", err)
	}
	now := time.Now()
	name := NewSessionName(now)
	dir := filepath.Join(m.cfg.Root, name)
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create session directory: %w", err)
	}
	if err := m.recordConfig(system, iface); err != nil {
		return nil, err
	}
	info := m.describe(name, system, iface, now)
	if err := info.Save(filepath.Join(dir, MetadataFile)); err != nil {
		return nil, fmt.Errorf("cannot write session metadata: %w", err)
	}
	m.placeFormatDescriptor(dir)
	// Stale "current" symlinks from crashed sessions get silently
	// replaced.
	link := filepath.Join(m.cfg.Root, CurrentLink)
	_ = os.Remove(link)
	if err := os.Symlink(name, link); err != nil {
		return nil, fmt.Errorf("cannot mark session as current: %w", err)
	}
	logPath := filepath.Join(dir, SnifferLog)
	pid, err := m.backend.Launch(&LaunchSpec{
		Dir:            dir,
		Interface:      iface,
		Filter:         m.cfg.Filter,
		SnapLen:        m.cfg.SnapLen,
		NoPromiscuous:  m.cfg.NoPromiscuous,
		RotateInterval: m.cfg.RotateInterval,
		FilePattern:    m.cfg.FilePattern,
		PostRotate:     converter,
		LogPath:        logPath,
		Info:           info,
	})
	if err != nil {
		_ = os.Remove(link)
		return nil, fmt.Errorf("cannot launch capture process: %w", err)
	}
	if err := WritePid(dir, pid); err != nil {
		return nil, err
	}
	log.Debugf("capture process launched, PID %d", pid)
	if err := WaitListening(logPath, ListenConfirmTimeout); err != nil {
		return nil, fmt.Errorf(
			"%w; see %s", err, logPath)
	}
	log.Infof("capturing from %q into session %s", iface, name)
	return SessionAt(dir)
}

// Stop terminates the active capture session: it signals the capture
// process to stop, optionally tags the session directory (padding the
// name on collision), moves the "current" symlink over to "last",
// removes the system/interface marker files, and finally runs the
// converter on the most recent capture file. It returns the finalized
// session, and ErrNoSession when no session is running.
func (m *Manager) Stop(tag string, opts StopOptions) (*Session, error) {
	s, err := m.Current()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSession
	}
	m.stopCapture(s)
	name := s.Name
	if tag != "" {
		if name, err = m.tagSession(s, tag); err != nil {
			return nil, err
		}
	}
	if err := m.finalize(name); err != nil {
		return nil, err
	}
	final, err := SessionAt(filepath.Join(m.cfg.Root, name))
	if err != nil {
		return nil, err
	}
	if !opts.NoConvert {
		// The converter gets the tag as it ended up in the session name,
		// sanitized and collision padding included.
		if err := m.convert(final, final.Tag, opts.NoWait); err != nil {
			return final, err
		}
	}
	log.Infof("capture session %s stopped", name)
	return final, nil
}

// Save finalizes the active capture session under an optional name and
// seamlessly starts a new one with the same system and interface as
// recorded in the marker files. The finalized session's conversion is
// backgrounded so capturing resumes as quickly as possible. Save
// returns the finalized and the newly started session, and
// ErrNoSession when no session is running.
func (m *Manager) Save(tag string) (saved, started *Session, err error) {
	s, err := m.Current()
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, ErrNoSession
	}
	system, iface := m.recordedConfig()
	if saved, err = m.Stop(tag, StopOptions{NoWait: true}); err != nil {
		return nil, nil, err
	}
	started, err = m.Start(system, iface)
	if err != nil {
		return saved, nil, err
	}
	return saved, started, nil
}

// Discard throws away the active capture session (capture process
// signalled to stop, session directory deleted, no trace left) and
// then starts a fresh session with the same system and interface. The
// confirmation prompting is the caller's duty; Discard itself asks no
// questions. It returns the newly started session, and ErrNoSession
// when no session is running.
func (m *Manager) Discard() (*Session, error) {
	s, err := m.Current()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSession
	}
	system, iface := m.recordedConfig()
	m.stopCapture(s)
	if err := os.Remove(filepath.Join(m.cfg.Root, CurrentLink)); err != nil &&
		!os.IsNotExist(err) {
		return nil, err
	}
	if err := os.RemoveAll(s.Dir); err != nil {
		return nil, fmt.Errorf("cannot remove session directory: %w", err)
	}
	log.Infof("capture session %s discarded", s.Name)
	return m.Start(system, iface)
}

// stopCapture signals a session's capture process to terminate and
// waits for it to go away. A missing PID file or an already-gone
// process is only worth a warning: the session still gets finalized,
// as its capture files are there regardless of what happened to the
// process.
func (m *Manager) stopCapture(s *Session) {
	pid, err := ReadPid(s.Dir)
	if err != nil {
		log.Warnf("capture process unknown for session %s: %s", s.Name, err.Error())
		return
	}
	if !ProcessAlive(pid) {
		log.Warnf("capture process %d already gone", pid)
	} else if err := Terminate(pid, StopGraceTimeout); err != nil {
		log.Warnf("cannot stop capture process %d: %s", pid, err.Error())
	}
	_ = RemovePid(s.Dir)
}

// tagSession renames a session directory to carry the given tag,
// appending padding when a session of that tagged name already exists.
func (m *Manager) tagSession(s *Session, tag string) (string, error) {
	name := TaggedName(s.Name, tag)
	for {
		if _, err := os.Lstat(filepath.Join(m.cfg.Root, name)); os.IsNotExist(err) {
			break
		}
		name += "_"
	}
	if err := os.Rename(s.Dir, filepath.Join(m.cfg.Root, name)); err != nil {
		return "", fmt.Errorf("cannot tag session: %w", err)
	}
	return name, nil
}

// finalize moves the "current" symlink over to "last" (pointing it at
// the final session name) and removes the marker files.
func (m *Manager) finalize(name string) error {
	if err := os.Remove(filepath.Join(m.cfg.Root, CurrentLink)); err != nil &&
		!os.IsNotExist(err) {
		return err
	}
	last := filepath.Join(m.cfg.Root, LastLink)
	_ = os.Remove(last)
	if err := os.Symlink(name, last); err != nil {
		return fmt.Errorf("cannot mark session as last: %w", err)
	}
	for _, marker := range []string{SystemMarker, InterfaceMarker} {
		if err := os.Remove(filepath.Join(m.cfg.Root, marker)); err != nil &&
			!os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// convert runs the converter on the most recent capture file of a
// finalized session; the older files have already been taken care of
// by the post-rotation hook. With nowait, the converter runs detached
// and nice'd so it doesn't get into a follow-up capture's way.
func (m *Manager) convert(s *Session, tag string, nowait bool) error {
	converter, err := m.converterPath()
	if err != nil || converter == "" {
		return err
	}
	newest := NewestCapture(s.Dir, m.cfg.FilePattern)
	if newest == "" {
		log.Warnf("session %s has no capture files to convert", s.Name)
		return nil
	}
	argv := []string{converter, newest}
	if tag != "" {
		argv = append(argv, tag)
	}
	logPath := filepath.Join(s.Dir, ConvertLog)
	if nowait {
		pid, err := LaunchDetached(argv, s.Dir, logPath, ConvertNiceness)
		if err != nil {
			return fmt.Errorf("cannot launch converter: %w", err)
		}
		log.Debugf("converter running in background, PID %d", pid)
		return nil
	}
	logf, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logf.Close()
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = s.Dir
	cmd.Stdout = logf
	cmd.Stderr = logf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("converting %s failed: %w; see %s",
			filepath.Base(newest), err, logPath)
	}
	return nil
}

// converterPath resolves the configured converter to an absolute
// executable path, as the capture process hands it to the shell
// without consulting our idea of a search path. An unset converter
// resolves to the empty path, disabling conversion; a configured but
// missing converter is a hard error.
func (m *Manager) converterPath() (string, error) {
	if m.cfg.Converter == "" {
		return "", nil
	}
	path, err := exec.LookPath(m.cfg.Converter)
	if err != nil {
		return "", fmt.Errorf("converter not available: %w", err)
	}
	return filepath.Abs(path)
}

// recordConfig writes the system and interface marker files into the
// capture log root, so save and discard cycles can resume the very
// same configuration.
func (m *Manager) recordConfig(system, iface string) error {
	for marker, value := range map[string]string{
		SystemMarker:    system,
		InterfaceMarker: iface,
	} {
		if err := os.WriteFile(
			filepath.Join(m.cfg.Root, marker), []byte(value+"\n"), 0644); err != nil {
			return fmt.Errorf("cannot record capture configuration: %w", err)
		}
	}
	return nil
}

// recordedConfig reads the system and interface back from the marker
// files, falling back to the configured defaults where markers are
// missing.
func (m *Manager) recordedConfig() (system, iface string) {
	system, iface = Markers(m.cfg.Root)
	if system == "" {
		system = m.cfg.System
	}
	if iface == "" {
		iface = m.cfg.Interface
	}
	return
}

// describe gathers the metadata descriptor for a new session: operator,
// host, capture configuration, and the source revision state of the
// workspace the session is started from.
func (m *Manager) describe(name, system, iface string, now time.Time) *api.SessionInfo {
	info := &api.SessionInfo{
		ID:            uuid.New().String(),
		Session:       name,
		System:        system,
		Interface:     iface,
		Author:        operator(),
		Started:       now,
		Tool:          "caplog " + SemVersion,
		Backend:       m.backend.Name(),
		Filter:        m.cfg.Filter,
		NoPromiscuous: m.cfg.NoPromiscuous,
	}
	if hostname, err := os.Hostname(); err == nil {
		info.Host = hostname
	}
	if cwd, err := os.Getwd(); err == nil {
		info.Revision = vcs.Describe(cwd)
	}
	return info
}

// placeFormatDescriptor copies the configured format descriptor into
// the session directory, next to where the capture files will appear,
// so the converter finds it without further ado. A missing descriptor
// is only a warning: the capture itself is not impaired.
func (m *Manager) placeFormatDescriptor(dir string) {
	src := m.cfg.FormatFile
	if src == "" {
		return
	}
	if err := copyFile(filepath.Join(dir, filepath.Base(src)), src); err != nil {
		log.Warnf("no format descriptor: %s", err.Error())
	}
}

// copyFile copies a (small) file.
func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// operator identifies the user running this tool, as "login" or
// "login (Real Name)" when the real name is on record.
func operator() string {
	u, err := user.Current()
	if err != nil {
		return os.Getenv("USER")
	}
	name := strings.TrimSpace(strings.Split(u.Name, ",")[0])
	if name != "" && name != u.Username {
		return fmt.Sprintf("%s (%s)", u.Username, name)
	}
	return u.Username
}
