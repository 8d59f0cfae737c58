package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only game.yaml version this loader reads
const SupportedVersion = 1

const (
	gameFile  = "game.yaml"
	levelsDir = "levels"
	levelExt  = ".yaml"
)

// Loader loads game configuration from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}

// LevelsPath returns the on-disk levels directory
func (l *Loader) LevelsPath() string {
	return path.Join(l.basePath, levelsDir)
}

// LoadGame loads game.yaml and fills in defaults
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, gameFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", gameFile, err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", gameFile, err)
	}
	if cfg.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported %s version: %d", gameFile, cfg.Version)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadLevel loads levels/<name>.yaml
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	p, err := levelPath(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	return &cfg, nil
}

// HasLevel reports whether a level file exists for name
func (l *Loader) HasLevel(name string) bool {
	p, err := levelPath(name)
	if err != nil {
		return false
	}
	info, err := fs.Stat(l.fsys, p)
	return err == nil && !info.IsDir()
}

// Levels lists the available level names, sorted
func (l *Loader) Levels() ([]string, error) {
	matches, err := fs.Glob(l.fsys, levelsDir+"/*"+levelExt)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, LevelName(m))
	}
	sort.Strings(names)
	return names, nil
}

// LevelName returns the level name for a level file path
func LevelName(file string) string {
	return strings.TrimSuffix(path.Base(strings.ReplaceAll(file, "\\", "/")), levelExt)
}

// IsLevelFile reports whether file looks like a level file
func IsLevelFile(file string) bool {
	return strings.EqualFold(path.Ext(strings.ReplaceAll(file, "\\", "/")), levelExt)
}

func levelPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid level name %q", name)
	}
	p := path.Join(levelsDir, name+levelExt)
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid level name %q", name)
	}
	return p, nil
}
