package project

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] or [package].name is missing.
	ErrPackageSectionMissing = errors.New("missing [package].name")
	// ErrCheckSectionMissing indicates that [check] is missing.
	ErrCheckSectionMissing = errors.New("missing [check]")
)

// Config mirrors guard.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// CheckConfig holds the defaults of `guardc check`. Zero values mean "use the CLI default".
type CheckConfig struct {
	Jobs             int      `toml:"jobs"`
	MaxDiagnostics   int      `toml:"max_diagnostics"`
	NoWarnings       bool     `toml:"no_warnings"`
	WarningsAsErrors bool     `toml:"warnings_as_errors"`
	Format           string   `toml:"format"`
	Exclude          []string `toml:"exclude"`
}

// Manifest is a decoded guard.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

var knownFormats = map[string]bool{"": true, "pretty": true, "short": true, "json": true, "sarif": true}

// LoadManifest finds guard.toml starting at startDir and decodes it.
// Returns ErrNoManifest when there is none.
func LoadManifest(startDir string) (*Manifest, error) {
	manifestPath, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, nil
}

// LoadConfig decodes and validates one guard.toml file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("check") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrCheckSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Check.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *CheckConfig) validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("[check].jobs must be >= 0, got %d", c.Jobs)
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must be >= 0, got %d", c.MaxDiagnostics)
	}
	if !knownFormats[c.Format] {
		return fmt.Errorf("[check].format: unknown format %q", c.Format)
	}
	for _, pattern := range c.Exclude {
		if _, err := path.Match(strings.TrimSuffix(pattern, "/"), ""); err != nil {
			return fmt.Errorf("[check].exclude: bad pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Excluded reports whether rel (a slash-separated path relative to the project root)
// matches one of the exclude patterns. A pattern ending in "/" excludes a whole directory;
// other patterns are matched against the full path and against the base name.
func (c *CheckConfig) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if dir, ok := strings.CutSuffix(pattern, "/"); ok {
			if rel == dir || strings.HasPrefix(rel, dir+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// DefaultManifest returns the guard.toml written by `guardc init`.
func DefaultManifest(name string) string {
	return fmt.Sprintf(`# guardc project manifest
[package]
name = %q

[check]
jobs = 0
max_diagnostics = 0
no_warnings = false
warnings_as_errors = false
format = "pretty"
exclude = []
`, name)
}

// WriteDefault creates guard.toml in dir. The project name is derived from the
// directory name. An existing manifest is never overwritten.
func WriteDefault(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	if st, err := os.Stat(abs); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err = os.MkdirAll(abs, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", abs, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", abs)
	}

	name := strings.TrimSpace(filepath.Base(abs))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "guard-project"
	}

	manifestPath := filepath.Join(abs, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(DefaultManifest(name)), 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return manifestPath, nil
}
