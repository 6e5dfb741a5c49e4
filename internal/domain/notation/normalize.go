// Package notation implements parsing and normalization of StilBAR codes, the
// compact notation that encodes stilbenoid monomer composition and
// inter-monomer linkage chemistry as a string (e.g. "T|–04r.15r–|H").
package notation

import "strings"

// Normalize returns the canonical form of a StilBAR code: surrounding
// whitespace trimmed, interior spaces removed, and every ASCII hyphen mapped
// to the en dash used by the curated library.  Normalize is idempotent.
func Normalize(raw string) string {
	s := Clean(raw)
	return strings.ReplaceAll(s, "-", "–")
}

// Clean trims surrounding whitespace and removes interior spaces without
// touching dash characters.  Library codes that were authored with ASCII
// hyphens are matched through this weaker form before full normalization.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	return strings.ReplaceAll(s, " ", "")
}
