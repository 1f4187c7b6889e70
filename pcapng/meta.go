// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package pcapng

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v3"

	"github.com/siemens/caplog/api"
)

// MetaMarker is the magic signature starting the capture session
// information YAML document inside a section header comment.
const MetaMarker = "---\n# capture session information\n"

var (
	// metaStart matches the start of the session information YAML
	// document within a comment.
	metaStart = regexp.MustCompile(`(?s)(^|\n)` + regexp.QuoteMeta(MetaMarker))
	// metaEnd matches an optional YAML end/next document marker after
	// the session information. Not fully YAML-correct, but sufficient.
	metaEnd = regexp.MustCompile(`(?s)\n---($|\n)`)
)

// SessionMeta is the stream-relevant subset of the session metadata
// descriptor, as stamped into the section header comment of captured
// packet streams.
type SessionMeta struct {
	Session       string `yaml:"session"`
	System        string `yaml:"system"`
	Interface     string `yaml:"interface"`
	CaptureFilter string `yaml:"capture-filter,omitempty"`
	NoProm        bool   `yaml:"no-promiscuous-mode,omitempty"`
}

// NewSessionMeta reduces a session metadata descriptor to its
// stream-relevant subset.
func NewSessionMeta(info *api.SessionInfo) SessionMeta {
	return SessionMeta{
		Session:       info.Session,
		System:        info.System,
		Interface:     info.Interface,
		CaptureFilter: info.Filter,
		NoProm:        info.NoPromiscuous,
	}
}

// StampComment returns the given section header comment with the
// session information YAML document updated: any previous session
// information is cut out first, whatever else the comment says stays
// untouched, and the fresh session information goes to the end.
func (meta SessionMeta) StampComment(comment string) string {
	if start := metaStart.FindStringIndex(comment); len(start) == 2 {
		if comment[start[0]] == '\n' {
			start[0]++
		}
		if end := metaEnd.FindStringIndex(comment[start[1]:]); len(end) == 2 {
			// Another YAML document follows the session information, so
			// keep its separator intact.
			comment = comment[:start[0]] + comment[start[1]+end[0]+1:]
		} else {
			comment = comment[:start[0]]
		}
	}
	if comment != "" && !strings.HasSuffix(comment, "\n") {
		comment += "\n"
	}
	comment += MetaMarker
	y, err := yaml.Marshal(meta)
	if err != nil {
		// Cannot happen for this plain struct; still, don't lose the
		// comment over it.
		log.Errorf("cannot marshal session meta information: %s", err.Error())
		return comment
	}
	return comment + string(y)
}
