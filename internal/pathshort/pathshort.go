// Package pathshort computes the minimal trailing path suffix that keeps a
// window's directory distinguishable from every other directory-named
// window in the session.
package pathshort

import (
	"os"
	"strings"
)

const sep = "/"

// Shorten returns the shortest suffix of target (fewest trailing path
// segments) whose last-k segments differ from the last-k segments of every
// sibling. Siblings equal to target are excluded from the comparison, so
// two windows in the literal same directory both get the short form while
// windows in different directories sharing a leaf are lengthened until
// they diverge. If target is exhausted without disambiguation the full
// path is returned.
//
// When useTilde is set, the user's home directory prefix is rewritten to
// "~" on target and siblings alike, before comparison and in the output.
func Shorten(target string, siblings []string, useTilde bool) string {
	if useTilde {
		home, err := os.UserHomeDir()
		if err == nil && home != "" {
			target = ApplyTilde(target, home)
			tilded := make([]string, len(siblings))
			for i, s := range siblings {
				tilded[i] = ApplyTilde(s, home)
			}
			siblings = tilded
		}
	}

	segments := Split(target)
	if len(segments) == 0 {
		return target
	}

	// Precompute sibling segment lists, dropping full-path duplicates of
	// the target: identical directories cannot be told apart and must not
	// force the full-path form on each other.
	var others [][]string
	for _, s := range siblings {
		if s == target {
			continue
		}
		others = append(others, Split(s))
	}

	for k := 1; k < len(segments); k++ {
		candidate := suffix(segments, k)
		if unique(candidate, others, k) {
			return strings.Join(candidate, sep)
		}
	}

	// Full length reached: either unique now, or a genuine collision that
	// is allowed to remain.
	return strings.Join(segments, sep)
}

// unique reports whether no sibling's last-k segments equal candidate.
func unique(candidate []string, others [][]string, k int) bool {
	for _, o := range others {
		if equal(candidate, suffix(o, k)) {
			return false
		}
	}
	return true
}

// suffix returns the last k segments (all of them when k exceeds length).
func suffix(segments []string, k int) []string {
	if k >= len(segments) {
		return segments
	}
	return segments[len(segments)-k:]
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Split breaks a path into its ordered segments, root to leaf. Leading
// and trailing separators are ignored; "/" yields a single empty-free
// slice of length zero.
func Split(path string) []string {
	trimmed := strings.Trim(path, sep)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, sep)
}

// ApplyTilde replaces the home-directory prefix of path with "~".
func ApplyTilde(path, home string) string {
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+sep) {
		return "~" + path[len(home):]
	}
	return path
}
