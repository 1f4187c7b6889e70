// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package stream

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/pcapng"
)

// Rotator writes a continuous pcapng packet stream into a session
// directory as a series of self-contained capture files, starting a
// new file whenever the rotation interval has passed, mirroring what
// tcpdump's "-G" does for local captures. Self-contained means every
// file replays the stream's section header and interface description
// blocks before the packets, so each file opens cleanly in analysis
// tools on its own.
//
// Files are only ever cut between pcapng blocks, and the rotation
// check happens lazily as packet blocks arrive, so an idle capture
// simply keeps its current file open.
type Rotator struct {
	dir      string
	pattern  string
	interval time.Duration
	hook     string
	framer   *pcapng.Framer

	f      *os.File
	path   string
	opened time.Time
	shb    []byte
	idbs   [][]byte
	files  int
}

// NewRotator returns a Rotator writing capture files into dir, naming
// them by the strftime-style pattern, cutting a new file after every
// interval, and running the hook executable on every completed file
// except the final one. Intervals below one second get clamped, as the
// file naming resolution is one second.
func NewRotator(dir, pattern string, interval time.Duration, hook string) *Rotator {
	if interval < time.Second {
		interval = time.Second
	}
	r := &Rotator{
		dir:      dir,
		pattern:  pattern,
		interval: interval,
		hook:     hook,
	}
	r.framer = pcapng.NewFramer(r.block)
	return r
}

// Write accepts the next chunk of pcapng stream data; whole blocks get
// written to the current capture file, rotating to a new file as the
// rotation interval passes.
func (r *Rotator) Write(b []byte) (int, error) {
	return r.framer.Write(b)
}

// Close finishes the current capture file. The hook deliberately does
// not run on this final file: that is the session stopper's business,
// which may want to convert it synchronously or not at all.
func (r *Rotator) Close() error {
	return r.cut(false)
}

// Files returns how many capture files have been written so far,
// including the currently open one.
func (r *Rotator) Files() int {
	return r.files
}

// block handles one complete pcapng block: section header and
// interface description blocks get remembered for replay into later
// files, packet blocks trigger the rotation check.
func (r *Rotator) block(blk pcapng.Block) error {
	meta := blk.Type == pcapng.BlockTypeSHB || blk.Type == pcapng.BlockTypeIDB
	if r.f != nil && !meta && time.Since(r.opened) >= r.interval {
		if err := r.cut(true); err != nil {
			return err
		}
	}
	if r.f == nil {
		if err := r.open(blk.Type == pcapng.BlockTypeSHB); err != nil {
			return err
		}
	}
	if _, err := r.f.Write(blk.Raw); err != nil {
		return err
	}
	switch blk.Type {
	case pcapng.BlockTypeSHB:
		r.shb = blk.Raw
		r.idbs = nil
	case pcapng.BlockTypeIDB:
		r.idbs = append(r.idbs, blk.Raw)
	}
	return nil
}

// open starts the next capture file; unless the very block triggering
// the open starts a new section anyway, the remembered section
// preamble gets replayed first.
func (r *Rotator) open(startsSection bool) error {
	name := caplog.Strftime(r.pattern, time.Now())
	f, err := os.OpenFile(
		filepath.Join(r.dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	r.f = f
	r.path = filepath.Join(r.dir, name)
	r.opened = time.Now()
	r.files++
	log.Debugf("capturing into %q", name)
	if startsSection {
		return nil
	}
	if r.shb != nil {
		if _, err := r.f.Write(r.shb); err != nil {
			return err
		}
	}
	for _, idb := range r.idbs {
		if _, err := r.f.Write(idb); err != nil {
			return err
		}
	}
	return nil
}

// cut closes the current capture file, optionally letting the hook
// loose on it.
func (r *Rotator) cut(hook bool) error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	if err != nil {
		return err
	}
	if hook && r.hook != "" {
		r.runHook(filepath.Base(r.path))
	}
	return nil
}

// runHook runs the post-rotation hook on a completed capture file,
// detached from the capture loop so a slow conversion never backs up
// the packet stream. The file name is passed relative to the session
// directory, matching how the local sniffer invokes its hook.
func (r *Rotator) runHook(name string) {
	cmd := exec.Command(r.hook, name)
	cmd.Dir = r.dir
	go func() {
		if err := cmd.Run(); err != nil {
			log.Warnf("post-rotation hook failed on %q: %s", name, err.Error())
		}
	}()
}
