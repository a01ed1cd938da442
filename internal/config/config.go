// Package config loads window-namer configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables (WINDOW_NAMER_*)
//  2. tmux global options (@window_name_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. .window-namer.yaml in current directory
//  2. ~/.config/window-namer/config.yaml
//
// tmux option values are JSON-encoded for structured fields (lists, rule
// pairs, icon maps), matching how plugin users set them:
//
//	set -g @window_name_dir_programs '["nvim", "vim", "git"]'
//
// A value that fails to parse or validate never aborts loading: the field
// keeps its default and a config_default event is emitted.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timvw/window-namer/internal/events"
)

// OptionPrefix namespaces every option window-namer stores in tmux.
const OptionPrefix = "@window_name_"

// IconStyle selects how program names are rendered.
type IconStyle string

const (
	IconStyleName        IconStyle = "name"
	IconStyleIcon        IconStyle = "icon"
	IconStyleNameAndIcon IconStyle = "name_and_icon"
)

func (s IconStyle) valid() bool {
	switch s {
	case IconStyleName, IconStyleIcon, IconStyleNameAndIcon:
		return true
	default:
		return false
	}
}

// Rule is one (pattern, replacement) substitution pair. Declaration order
// is significant: rules apply in order and each sees the previous rule's
// output.
type Rule [2]string

// Pattern returns the regular expression source.
func (r Rule) Pattern() string { return r[0] }

// Replacement returns the replacement text, which may reference capture
// groups.
func (r Rule) Replacement() string { return r[1] }

// Config holds all window-namer options. Built once per invocation and
// never mutated afterward.
type Config struct {
	Shells            []string          `yaml:"shells"`
	DirPrograms       []string          `yaml:"dir_programs"`
	IgnoredPrograms   []string          `yaml:"ignored_programs"`
	SubstituteSets    []Rule            `yaml:"substitute_sets"`
	DirSubstituteSets []Rule            `yaml:"dir_substitute_sets"`
	MaxNameLen        int               `yaml:"max_name_len"`
	UseTilde          bool              `yaml:"use_tilde"`
	ShowProgramArgs   bool              `yaml:"show_program_args"`
	IconStyle         IconStyle         `yaml:"icon_style"`
	CustomIcons       map[string]string `yaml:"custom_icons"`
	LogLevel          string            `yaml:"log_level"` // "debug" enables the debug log file

	// OTEL export (optional; empty endpoint disables).
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"`

	// ConfigFile is the path of the loaded config file (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Shells:          []string{"bash", "fish", "sh", "zsh"},
		DirPrograms:     []string{"nvim", "vim", "vi", "git"},
		IgnoredPrograms: []string{},
		SubstituteSets: []Rule{
			{`.+ipython([32])`, `ipython${1}`},
			{`^(/usr)?/bin/(.+)`, `${2}`},
			{`(bash) (.+)/(.+[ $])(.+)`, `${3}${4}`},
			{`.+poetry shell`, `poetry`},
		},
		DirSubstituteSets: []Rule{},
		MaxNameLen:        20,
		UseTilde:          false,
		ShowProgramArgs:   true,
		IconStyle:         IconStyleName,
		CustomIcons:       map[string]string{},
		LogLevel:          "warning",
	}
}

// OptionStore reads option values from the multiplexer's global store.
// Implemented by mux.Tmux.
type OptionStore interface {
	// ShowOption returns the value of a global option and whether it is set.
	ShowOption(ctx context.Context, name string) (string, bool, error)
}

// Load builds a Config from defaults, config file, tmux options, and
// environment. store may be nil (file/env only). Recoverable problems are
// reported to sink and never fail the load.
func Load(ctx context.Context, store OptionStore, sink events.Sink) *Config {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg fileConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			events.Emit(sink, events.KindConfigDefault, "config file %s unreadable: %v", path, err)
		} else {
			cfg.ConfigFile = path
			mergeFile(cfg, &fileCfg)
		}
	}

	if store != nil {
		mergeStore(ctx, cfg, store, sink)
	}

	mergeEnv(cfg)
	cfg.validate(sink)

	return cfg
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".window-namer.yaml"); err == nil {
		return ".window-namer.yaml", data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "window-namer", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// fileConfig mirrors Config for yaml decoding. Booleans are pointers so an
// explicit "false" in the file is distinguishable from an absent key.
type fileConfig struct {
	Shells            []string          `yaml:"shells"`
	DirPrograms       []string          `yaml:"dir_programs"`
	IgnoredPrograms   []string          `yaml:"ignored_programs"`
	SubstituteSets    []Rule            `yaml:"substitute_sets"`
	DirSubstituteSets []Rule            `yaml:"dir_substitute_sets"`
	MaxNameLen        int               `yaml:"max_name_len"`
	UseTilde          *bool             `yaml:"use_tilde"`
	ShowProgramArgs   *bool             `yaml:"show_program_args"`
	IconStyle         IconStyle         `yaml:"icon_style"`
	CustomIcons       map[string]string `yaml:"custom_icons"`
	LogLevel          string            `yaml:"log_level"`
	OTELEndpoint      string            `yaml:"otel_endpoint"`
	OTELHeaders       string            `yaml:"otel_headers"`
}

// mergeFile applies set file values onto cfg.
func mergeFile(cfg *Config, file *fileConfig) {
	if file.Shells != nil {
		cfg.Shells = file.Shells
	}
	if file.DirPrograms != nil {
		cfg.DirPrograms = file.DirPrograms
	}
	if file.IgnoredPrograms != nil {
		cfg.IgnoredPrograms = file.IgnoredPrograms
	}
	if file.SubstituteSets != nil {
		cfg.SubstituteSets = file.SubstituteSets
	}
	if file.DirSubstituteSets != nil {
		cfg.DirSubstituteSets = file.DirSubstituteSets
	}
	if file.MaxNameLen > 0 {
		cfg.MaxNameLen = file.MaxNameLen
	}
	if file.UseTilde != nil {
		cfg.UseTilde = *file.UseTilde
	}
	if file.ShowProgramArgs != nil {
		cfg.ShowProgramArgs = *file.ShowProgramArgs
	}
	if file.IconStyle != "" {
		cfg.IconStyle = file.IconStyle
	}
	if file.CustomIcons != nil {
		cfg.CustomIcons = file.CustomIcons
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeStore applies tmux global options onto cfg. Option names are the
// yaml field names with the @window_name_ prefix.
func mergeStore(ctx context.Context, cfg *Config, store OptionStore, sink events.Sink) {
	get := func(field string) (string, bool) {
		raw, ok, err := store.ShowOption(ctx, OptionPrefix+field)
		if err != nil || !ok {
			return "", false
		}
		return raw, true
	}

	if raw, ok := get("shells"); ok {
		parseJSONField(raw, "shells", &cfg.Shells, sink)
	}
	if raw, ok := get("dir_programs"); ok {
		parseJSONField(raw, "dir_programs", &cfg.DirPrograms, sink)
	}
	if raw, ok := get("ignored_programs"); ok {
		parseJSONField(raw, "ignored_programs", &cfg.IgnoredPrograms, sink)
	}
	if raw, ok := get("substitute_sets"); ok {
		parseJSONField(raw, "substitute_sets", &cfg.SubstituteSets, sink)
	}
	if raw, ok := get("dir_substitute_sets"); ok {
		parseJSONField(raw, "dir_substitute_sets", &cfg.DirSubstituteSets, sink)
	}
	if raw, ok := get("custom_icons"); ok {
		parseJSONField(raw, "custom_icons", &cfg.CustomIcons, sink)
	}
	if raw, ok := get("max_name_len"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			cfg.MaxNameLen = n
		} else {
			events.Emit(sink, events.KindConfigDefault, "max_name_len %q is not an integer", raw)
		}
	}
	if raw, ok := get("use_tilde"); ok {
		cfg.UseTilde = parseBool(raw)
	}
	if raw, ok := get("show_program_args"); ok {
		cfg.ShowProgramArgs = parseBool(raw)
	}
	if raw, ok := get("icon_style"); ok {
		// Plain string, not JSON — matches how plugin users set it.
		cfg.IconStyle = IconStyle(strings.TrimSpace(raw))
	}
	if raw, ok := get("log_level"); ok {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw))
	}
	if raw, ok := get("otel_endpoint"); ok {
		cfg.OTELEndpoint = strings.TrimSpace(raw)
	}
	if raw, ok := get("otel_headers"); ok {
		cfg.OTELHeaders = strings.TrimSpace(raw)
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("WINDOW_NAMER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("WINDOW_NAMER_MAX_NAME_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxNameLen = n
		}
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}

// validate repairs out-of-contract values in place, emitting an event per
// substitution. Never fails: a Config coming out of here is always usable.
func (c *Config) validate(sink events.Sink) {
	def := Defaults()

	if c.MaxNameLen <= 0 {
		events.Emit(sink, events.KindConfigDefault,
			"max_name_len %d is not positive, using %d", c.MaxNameLen, def.MaxNameLen)
		c.MaxNameLen = def.MaxNameLen
	}
	if !c.IconStyle.valid() {
		events.Emit(sink, events.KindConfigDefault,
			"icon_style %q is not one of name, icon, name_and_icon", c.IconStyle)
		c.IconStyle = def.IconStyle
	}
	if c.CustomIcons == nil {
		c.CustomIcons = map[string]string{}
	}
	for _, r := range append(append([]Rule{}, c.SubstituteSets...), c.DirSubstituteSets...) {
		if strings.TrimSpace(r.Pattern()) == "" {
			events.Emit(sink, events.KindConfigDefault, "substitution rule with empty pattern will be skipped")
		}
	}
}

// DebugEnabled reports whether the debug log sink should be active.
func (c *Config) DebugEnabled() bool {
	return c.LogLevel == "debug"
}

// parseJSONField decodes a JSON-encoded option value into dst, keeping the
// previous value and emitting an event on failure.
func parseJSONField[T any](raw, field string, dst *T, sink events.Sink) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		events.Emit(sink, events.KindConfigDefault, "%s %q is not valid JSON: %v", field, raw, err)
		return
	}
	*dst = v
}

// parseBool accepts the spellings tmux users actually write.
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// Contains reports whether list contains name (exact match).
func Contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
