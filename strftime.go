// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Strftime renders the subset of strftime(3) conversion specifications
// that matter for capture file names, as understood by tcpdump's "-w"
// option when rotating with "-G". Unsupported specifications are kept
// verbatim, mirroring what tcpdump does on platforms without strftime
// support.
//
// We deliberately do not convert the pattern into a Go time layout:
// the reference-time layout scheme cannot express literal digits (a
// literal "15" in a file name would turn into the hour), whereas
// capture file patterns are exactly the kind of place where literal
// digits occur.
func Strftime(pattern string, t time.Time) string {
	var sb strings.Builder
	sb.Grow(len(pattern) + 16)
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			sb.WriteByte(pattern[i])
			continue
		}
		i++
		switch pattern[i] {
		case 'Y':
			sb.WriteString(t.Format("2006"))
		case 'y':
			sb.WriteString(t.Format("06"))
		case 'm':
			sb.WriteString(t.Format("01"))
		case 'd':
			sb.WriteString(t.Format("02"))
		case 'H':
			sb.WriteString(t.Format("15"))
		case 'M':
			sb.WriteString(t.Format("04"))
		case 'S':
			sb.WriteString(t.Format("05"))
		case 'j':
			sb.WriteString(fmt.Sprintf("%03d", t.YearDay()))
		case 's':
			sb.WriteString(strconv.FormatInt(t.Unix(), 10))
		case 'Z':
			sb.WriteString(t.Format("MST"))
		case '%':
			sb.WriteByte('%')
		default:
			sb.WriteByte('%')
			sb.WriteByte(pattern[i])
		}
	}
	return sb.String()
}

// CaptureGlob turns a capture file pattern into a glob matching all
// files the pattern can produce: every conversion specification
// becomes a "*", with adjacent wildcards collapsed.
func CaptureGlob(pattern string) string {
	var sb strings.Builder
	sb.Grow(len(pattern))
	star := false
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '%' && i+1 < len(pattern) {
			i++
			if pattern[i] == '%' {
				sb.WriteByte('%')
				star = false
				continue
			}
			if !star {
				sb.WriteByte('*')
				star = true
			}
			continue
		}
		sb.WriteByte(pattern[i])
		star = false
	}
	return sb.String()
}
