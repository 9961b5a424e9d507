// Package config loads fmtguard.toml.
package config

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"fmtguard/internal/callsite"
	"fmtguard/internal/check"
	"fmtguard/internal/ctype"
)

// FileName is the configuration file searched for next to the inputs.
const FileName = "fmtguard.toml"

type Config struct {
	Path string `toml:"-"` // пусто для конфигурации по умолчанию

	Check CheckConfig       `toml:"check"`
	Casts map[string]string `toml:"casts"` // spelling -> family
	Cache CacheConfig       `toml:"cache"`
}

type CheckConfig struct {
	WarningsAsErrors bool     `toml:"warnings_as_errors"`
	NoWarnings       bool     `toml:"no_warnings"`
	Context          int      `toml:"context"`
	MaxDiagnostics   int      `toml:"max_diagnostics"`
	Jobs             int      `toml:"jobs"`
	Disable          []string `toml:"disable"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // default: $XDG_CACHE_HOME/fmtguard
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Check: CheckConfig{Context: 2},
		Cache: CacheConfig{Enabled: true},
	}
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
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
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
			return "", false, nil
		}
		dir = parent
	}
}

// Discover loads the nearest FileName above start, or Default.
func Discover(start string) (Config, error) {
	path, ok, err := Find(start)
	if err != nil || !ok {
		return Default(), err
	}
	return Load(path)
}

// Load decodes and validates the file at path. Keys missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML decoding cannot.
func (c Config) Validate() error {
	if c.Check.Context < 0 {
		return fmt.Errorf("[check].context must not be negative, got %d", c.Check.Context)
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must not be negative, got %d", c.Check.MaxDiagnostics)
	}
	for _, name := range c.Check.Disable {
		if _, ok := callsite.Lookup(name); !ok {
			return fmt.Errorf("[check].disable: %q is not a tracked function", name)
		}
	}
	_, err := c.Vocabulary()
	return err
}

// Functions is the tracked function set after [check].disable.
func (c Config) Functions() *callsite.Set {
	return callsite.NewSet(c.Check.Disable...)
}

// Vocabulary is the default cast vocabulary extended with [casts].
func (c Config) Vocabulary() (*check.Vocabulary, error) {
	v := check.DefaultVocabulary()
	spellings := make([]string, 0, len(c.Casts))
	for s := range c.Casts {
		spellings = append(spellings, s)
	}
	sort.Strings(spellings)
	for _, s := range spellings {
		fam, ok := ctype.ParseFamily(c.Casts[s])
		if !ok || fam == ctype.Unknown {
			return nil, fmt.Errorf("[casts].%q: unknown family %q", s, c.Casts[s])
		}
		if err := v.Add(s, fam); err != nil {
			return nil, fmt.Errorf("[casts].%q: %w", s, err)
		}
	}
	return v, nil
}

// AnalysisOptions builds check.Options from the configuration.
func (c Config) AnalysisOptions() (check.Options, error) {
	vocab, err := c.Vocabulary()
	if err != nil {
		return check.Options{}, err
	}
	return check.Options{Functions: c.Functions(), Vocabulary: vocab}, nil
}

// Fingerprint hashes the settings that change analysis results, for cache keys.
func (c Config) Fingerprint() ([32]byte, error) {
	disable := append([]string(nil), c.Check.Disable...)
	sort.Strings(disable)
	var buf bytes.Buffer
	err := toml.NewEncoder(&buf).Encode(struct {
		Disable []string          `toml:"disable"`
		Casts   map[string]string `toml:"casts"`
	}{disable, c.Casts})
	if err != nil {
		return [32]byte{}, fmt.Errorf("encode config fingerprint: %w", err)
	}
	return sha256.Sum256(buf.Bytes()), nil
}
