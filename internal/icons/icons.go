// Package icons maps program names to nerd-font glyphs.
//
// Glyph source: https://www.nerdfonts.com/cheat-sheet
package icons

import (
	"strconv"
	"strings"
)

// Default is the built-in program icon table. User-supplied custom icons
// take precedence over these.
var Default = map[string]string{
	"nvim":    "", // nf-dev-vim
	"vim":     "", // nf-dev-vim
	"vi":      "", // nf-dev-vim
	"git":     "", // nf-dev-git
	"python":  "", // nf-dev-python
	"node":    "", // nf-dev-nodejs
	"npm":     "", // nf-dev-nodejs
	"yarn":    "", // nf-dev-nodejs
	"docker":  "", // nf-dev-docker
	"kubectl": "", // nf-dev-kubernetes
	"go":      "", // nf-dev-go
	"rust":    "", // nf-dev-rust
	"cargo":   "", // nf-dev-rust
	"php":     "", // nf-dev-php
	"ruby":    "", // nf-dev-ruby
	"java":    "", // nf-dev-java
	"mvn":     "", // nf-dev-java
	"gradle":  "", // nf-dev-java
	"bash":    "", // nf-dev-terminal
	"zsh":     "", // nf-dev-terminal
	"fish":    "", // nf-dev-terminal
	"sh":      "", // nf-dev-terminal
}

// Lookup returns the glyph for a program, or "" when none is mapped.
// The input may be a full command line: only the first token's basename is
// considered, and a trailing ":suffix" (as produced by dir-program labels)
// is ignored. Custom icons override the built-in table, and may use
// \uXXXX escape notation.
func Lookup(program string, custom map[string]string) string {
	base := baseName(program)
	if base == "" {
		return ""
	}

	if icon, ok := custom[base]; ok {
		return decodeEscapes(icon)
	}
	if icon, ok := Default[base]; ok {
		return icon
	}
	return ""
}

// baseName reduces a command line to the bare program name.
func baseName(program string) string {
	fields := strings.Fields(program)
	if len(fields) == 0 {
		return ""
	}
	base := fields[0]
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.IndexByte(base, ':'); idx >= 0 {
		base = base[:idx]
	}
	return base
}

// decodeEscapes turns literal "\uXXXX" sequences in user-configured icon
// values into the glyphs they name. Values without escapes pass through.
func decodeEscapes(icon string) string {
	if !strings.Contains(icon, `\u`) {
		return icon
	}
	// strconv.Unquote handles \uXXXX (and surrogate pairs) for us.
	decoded, err := strconv.Unquote(`"` + strings.ReplaceAll(icon, `"`, `\"`) + `"`)
	if err != nil {
		return icon
	}
	return decoded
}
