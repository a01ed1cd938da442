// Package classify assigns each pane's foreground process to a naming
// category: shell, ignored, directory-aware program, or regular program.
package classify

import (
	"strings"

	"github.com/timvw/window-namer/internal/config"
	"github.com/timvw/window-namer/internal/model"
)

// Classify maps a pane's command line and working directory to a Category.
// It is a total function: every input yields exactly one category, and it
// performs no I/O.
//
// The first token of commandLine is reduced to its basename and compared
// against the configured program lists. A leading "-" (login shell marker)
// is stripped before comparison. An empty command line classifies as Shell.
// An empty directory is tolerated as the filesystem root.
func Classify(commandLine, directory string, cfg *config.Config) model.Category {
	if directory == "" {
		directory = "/"
	}

	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return model.Category{Kind: model.Shell, Directory: directory}
	}

	fields[0] = strings.TrimPrefix(fields[0], "-")
	program := baseName(fields[0])
	args := strings.Join(fields[1:], " ")
	raw := strings.Join(fields, " ")

	switch {
	case config.Contains(cfg.IgnoredPrograms, program):
		// The pane is treated as if the process were absent; directory
		// naming applies.
		return model.Category{Kind: model.Ignored, Program: program, Directory: directory}
	case config.Contains(cfg.Shells, program):
		return model.Category{Kind: model.Shell, Directory: directory}
	case config.Contains(cfg.DirPrograms, program):
		return model.Category{Kind: model.DirProgram, Program: program, Args: args, CommandLine: raw, Directory: directory}
	default:
		return model.Category{Kind: model.RegularProgram, Program: program, Args: args, CommandLine: raw}
	}
}

// baseName strips any directory prefix from a program token.
func baseName(token string) string {
	if idx := strings.LastIndexByte(token, '/'); idx >= 0 {
		return token[idx+1:]
	}
	return token
}
