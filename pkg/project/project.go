package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project settings file at the project root.
const ConfigFileName = "blueprint.yml"

// DefaultCacheFile is where the extractor writes its line-delimited JSON
// output when the project file doesn't say otherwise.
const DefaultCacheFile = ".cache/extracted-blueprint.jsonl"

// Config is the blueprint.yml schema.
type Config struct {
	CacheFile    string `yaml:"cache_file"`
	BlueprintDir string `yaml:"blueprint_dir"`
	LeanDir      string `yaml:"lean_dir"`
}

// Project is a located blueprint project.
type Project struct {
	Root   string
	Config Config
}

// Find walks up from start looking for a blueprint.yml. When none exists,
// the start directory itself is treated as the project root with default
// settings, so the tool still works in unconfigured checkouts.
func Find(start string) (*Project, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir: %w", err)
	}

	for cur := dir; ; cur = filepath.Dir(cur) {
		cfgPath := filepath.Join(cur, ConfigFileName)
		if _, err := os.Stat(cfgPath); err == nil {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return nil, err
			}
			return &Project{Root: cur, Config: *cfg}, nil
		}
		if filepath.Dir(cur) == cur {
			break
		}
	}

	return &Project{Root: dir}, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}

// CachePath resolves the extraction cache file against the project root.
func (p *Project) CachePath() string {
	cache := p.Config.CacheFile
	if cache == "" {
		cache = DefaultCacheFile
	}
	if filepath.IsAbs(cache) {
		return cache
	}
	return filepath.Join(p.Root, cache)
}

// BlueprintDir resolves the LaTeX source directory, defaulting to
// blueprint/ under the root.
func (p *Project) BlueprintDir() string {
	dir := p.Config.BlueprintDir
	if dir == "" {
		dir = "blueprint"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Root, dir)
}

// LeanDir resolves the Lean source directory, defaulting to the root.
func (p *Project) LeanDir() string {
	dir := p.Config.LeanDir
	if dir == "" {
		return p.Root
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Root, dir)
}
