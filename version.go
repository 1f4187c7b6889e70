// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package caplog

// SemVersion is the semantic version of the caplog module; the caplog
// CLI reports this version unless a plugin overrides it.
const SemVersion = "0.9.1"
