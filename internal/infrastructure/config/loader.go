package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	World      *WorldConfig
	Archetypes *ArchetypesConfig
}

// Loader loads game configuration using fs.FS interface
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

// BasePath returns the path the loader was created with (for messages)
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadWorld loads world.json
func (l *Loader) LoadWorld() (*WorldConfig, error) {
	data, err := fs.ReadFile(l.fsys, "world.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read world.json: %w", err)
	}

	var cfg WorldConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse world.json: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world.json: %w", err)
	}

	return &cfg, nil
}

// LoadArchetypes loads archetypes.yaml
func (l *Loader) LoadArchetypes() (*ArchetypesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "archetypes.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read archetypes.yaml: %w", err)
	}

	var cfg ArchetypesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse archetypes.yaml: %w", err)
	}

	return &cfg, nil
}

// ReadLevel reads the four map layers of a level. Paths are relative to maps/.
func (l *Loader) ReadLevel(level LevelConfig) (*LevelFiles, error) {
	files := &LevelFiles{Name: level.Name}
	layers := []struct {
		name string
		dst  *[]byte
	}{
		{level.Terrain, &files.Terrain},
		{level.TerrainMask, &files.TerrainMask},
		{level.Decoration, &files.Decoration},
		{level.DecorationMask, &files.DecorationMask},
	}

	for _, layer := range layers {
		data, err := fs.ReadFile(l.fsys, path.Join("maps", layer.name))
		if err != nil {
			return nil, fmt.Errorf("failed to read map %s of level %s: %w", layer.name, level.Name, err)
		}
		*layer.dst = data
	}

	return files, nil
}

// LoadAll loads all base configurations (world, archetypes)
func (l *Loader) LoadAll() (*GameConfig, error) {
	world, err := l.LoadWorld()
	if err != nil {
		return nil, err
	}

	archetypes, err := l.LoadArchetypes()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		World:      world,
		Archetypes: archetypes,
	}, nil
}
