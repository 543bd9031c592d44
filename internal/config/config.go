// Package config loads the codesniff.toml ruleset.
//
// The file is looked up from the target directory upwards. Layout:
//
//	[run]
//	tab_width = 4
//	jobs = 8
//	encoding = "windows-1251"
//	max_passes = 50
//	cache = ".codesniff.cache"
//	extensions = [".php", ".inc"]
//	exclude = ["vendor/"]
//
//	[[sniff]]
//	code = "Core.Files.LineLength"
//	severity = "warning"
//	exclude = ["*.tpl.php"]
//	properties = { lineLimit = 100, absoluteLineLimit = 160 }
//
// Without [[sniff]] entries every built-in sniff is active. A code naming a
// category ("Core.Arrays") selects every built-in sniff inside it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"codesniff/internal/diag"
	"codesniff/internal/sniff"
	"codesniff/internal/sniffs"
)

// FileName is the config file looked up from the target upwards.
const FileName = "codesniff.toml"

// ErrNoConfig is returned by Discover when no config file exists.
var ErrNoConfig = errors.New("no " + FileName + " found")

// Config is a loaded ruleset.
type Config struct {
	Path   string // пусто для конфигурации по умолчанию
	Root   string
	Run    RunConfig
	Sniffs []SniffConfig
}

// RunConfig is the [run] table.
type RunConfig struct {
	TabWidth   int      `toml:"tab_width"`
	Jobs       int      `toml:"jobs"`
	Encoding   string   `toml:"encoding"`
	MaxPasses  int      `toml:"max_passes"`
	Cache      string   `toml:"cache"`
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

// SniffConfig is one [[sniff]] entry.
type SniffConfig struct {
	Code       string         `toml:"code"`
	Severity   string         `toml:"severity"`
	Exclude    []string       `toml:"exclude"`
	Properties map[string]any `toml:"properties"`
}

type fileConfig struct {
	Run   RunConfig     `toml:"run"`
	Sniff []SniffConfig `toml:"sniff"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{Run: RunConfig{Extensions: []string{".php"}}}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the config for startDir. It returns ErrNoConfig
// when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoConfig
	}
	return Load(path)
}

// Load parses and validates the config at path.
func Load(path string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if meta.IsDefined("run") {
		ext := cfg.Run.Extensions
		cfg.Run = raw.Run
		if !meta.IsDefined("run", "extensions") {
			cfg.Run.Extensions = ext
		}
	}
	if err := cfg.Run.validate(); err != nil {
		return nil, fmt.Errorf("%s: [run]: %w", path, err)
	}
	for i, sc := range raw.Sniff {
		if strings.TrimSpace(sc.Code) == "" {
			return nil, fmt.Errorf("%s: [[sniff]] #%d: missing code", path, i+1)
		}
	}
	cfg.Sniffs = raw.Sniff
	if _, err := cfg.Registrations(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (r *RunConfig) validate() error {
	switch {
	case r.TabWidth < 0:
		return fmt.Errorf("tab_width must not be negative, got %d", r.TabWidth)
	case r.Jobs < 0:
		return fmt.Errorf("jobs must not be negative, got %d", r.Jobs)
	case r.MaxPasses < 0:
		return fmt.Errorf("max_passes must not be negative, got %d", r.MaxPasses)
	}
	for _, ext := range r.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// Registrations resolves the [[sniff]] entries against the built-in
// catalog, keeping file order. A category expands to its sniffs in catalog
// order; a sniff selected twice keeps the first position and the last
// settings.
func (c *Config) Registrations() ([]sniff.Registration, error) {
	if len(c.Sniffs) == 0 {
		return sniffs.Default(), nil
	}
	var (
		regs []sniff.Registration
		pos  = make(map[string]int)
	)
	for _, sc := range c.Sniffs {
		codes := expand(sc.Code)
		if len(codes) == 0 {
			return nil, fmt.Errorf("unknown sniff %q", sc.Code)
		}
		reg := sniff.Registration{Exclude: slices.Clone(sc.Exclude)}
		if sc.Severity != "" {
			sev, err := diag.ParseSeverity(sc.Severity)
			if err != nil {
				return nil, fmt.Errorf("sniff %s: %w", sc.Code, err)
			}
			reg.Severity = &sev
		}
		if len(sc.Properties) > 0 {
			reg.Properties = make(map[string]string, len(sc.Properties))
			for k, v := range sc.Properties {
				reg.Properties[k] = fmt.Sprint(v)
			}
		}
		for _, code := range codes {
			r := reg
			r.Code = code
			r.New, _ = sniffs.Lookup(code)
			if i, ok := pos[code]; ok {
				regs[i] = r
				continue
			}
			pos[code] = len(regs)
			regs = append(regs, r)
		}
	}
	return regs, nil
}

func expand(code string) []string {
	code = strings.TrimSpace(code)
	if _, ok := sniffs.Lookup(code); ok {
		return []string{code}
	}
	var out []string
	for _, e := range sniffs.Catalog() {
		if strings.HasPrefix(e.Code, code+".") {
			out = append(out, e.Code)
		}
	}
	return out
}

// Excluded reports whether path is excluded by [run].exclude.
func (c *Config) Excluded(path string) bool {
	reg := sniff.Registration{Exclude: c.Run.Exclude}
	if c.Root != "" {
		if rel, err := filepath.Rel(c.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return reg.Excludes(path)
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	exts := c.Run.Extensions
	if len(exts) == 0 {
		exts = Default().Run.Extensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
