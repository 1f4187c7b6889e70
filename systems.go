// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

import "strings"

// SystemMatch classifies how a system name given on the command line
// relates to the configured list of known systems.
type SystemMatch int

const (
	// SystemUnchecked: no known-systems list has been configured, so
	// any system name goes.
	SystemUnchecked SystemMatch = iota
	// SystemKnown: the name exactly matches a known system.
	SystemKnown
	// SystemNearMatch: the name matches a known system except for
	// case; most probably a typo.
	SystemNearMatch
	// SystemUnknown: the name matches no known system at all.
	SystemUnknown
)

// RecognizeSystem checks a system name against the list of known
// systems and classifies the outcome. For near matches, the returned
// match name is the correctly-cased known system name, so it can be
// offered to the user as the suggested spelling.
func RecognizeSystem(system string, known []string) (SystemMatch, string) {
	if len(known) == 0 {
		return SystemUnchecked, system
	}
	for _, k := range known {
		if k == system {
			return SystemKnown, k
		}
	}
	for _, k := range known {
		if strings.EqualFold(k, system) {
			return SystemNearMatch, k
		}
	}
	return SystemUnknown, system
}
