// Package project locates and decodes the walle.toml manifest.
package project

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Limits for [canvas].size.
const (
	DefaultCanvasSize = 64
	MaxCanvasSize     = 1024
)

// OutputFormats lists the accepted [output].format values.
var OutputFormats = []string{"ansi", "text", "json", "none"}

// Config mirrors the manifest tables.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Run    RunConfig    `toml:"run"`
	Output OutputConfig `toml:"output"`
}

type CanvasConfig struct {
	Size int `toml:"size"`
}

type RunConfig struct {
	Main           string `toml:"main"`
	MaxSteps       int    `toml:"max_steps"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	ForwardLabels  bool   `toml:"forward_labels"`
}

type OutputConfig struct {
	Format   string `toml:"format"`
	Snapshot string `toml:"snapshot"`
}

// DefaultConfig is used when no manifest exists; Load starts from it too,
// so absent keys keep these values.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{Size: DefaultCanvasSize},
		Output: OutputConfig{Format: "ansi"},
	}
}

// Manifest is a decoded walle.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// MainPath resolves [run].main against the manifest directory.
func (m *Manifest) MainPath() (string, bool) {
	if m == nil || strings.TrimSpace(m.Config.Run.Main) == "" {
		return "", false
	}
	return filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Run.Main))), true
}

// Load decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if meta.IsDefined("run", "main") && !strings.HasSuffix(cfg.Run.Main, ".pw") {
		return nil, fmt.Errorf("%s: [run].main must name a .pw file", path)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// LoadNearest finds walle.toml above startDir and loads it. ok is false
// when there is no manifest.
func LoadNearest(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func (c Config) validate() error {
	if c.Canvas.Size < 1 || c.Canvas.Size > MaxCanvasSize {
		return fmt.Errorf("[canvas].size must be between 1 and %d, got %d", MaxCanvasSize, c.Canvas.Size)
	}
	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("[run].max_steps must not be negative")
	}
	if c.Run.MaxDiagnostics < 0 {
		return fmt.Errorf("[run].max_diagnostics must not be negative")
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("[output].format must be one of %s, got %q", strings.Join(OutputFormats, "|"), c.Output.Format)
	}
	return nil
}
