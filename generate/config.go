// Package generate runs the artifact pipelines: marching-cubes table
// transcoding and glTF fixture generation. Every pipeline takes its paths
// from an explicit Config and writes its artifact atomically, so a failed run
// leaves no output behind.
package generate

import (
	"path/filepath"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/tables"
)

// Config holds the base paths every pipeline reads from and writes to.
type Config struct {
	// SourcePath is the table source text.
	SourcePath string
	// TablesOut is the transcoded table artifact.
	TablesOut string
	// AssetsDir receives <name>.gltf fixtures.
	AssetsDir string
	// EnvDir receives fetched environment maps.
	EnvDir string
	// Format of the table artifact.
	Format tables.Format
}

// DefaultConfig lays paths out under root the way the renderer repository
// expects them.
func DefaultConfig(root string) Config {
	return Config{
		SourcePath: filepath.Join(root, "src", "surface.js"),
		TablesOut:  filepath.Join(root, "wasm", "ses", "src", "tables.rs"),
		AssetsDir:  filepath.Join(root, "assets"),
		EnvDir:     filepath.Join(root, "assets", "env"),
		Format:     tables.FormatRust,
	}
}

// AssetPath returns where the fixture for mesh name is written.
func (c Config) AssetPath(name string) string {
	return filepath.Join(c.AssetsDir, name+".gltf")
}

func (c Config) requireTables() error {
	if c.SourcePath == "" || c.TablesOut == "" {
		return errors.InvalidInput(errors.PhaseRead, "table source and output paths are required")
	}
	return nil
}

func (c Config) requireAssets() error {
	if c.AssetsDir == "" {
		return errors.InvalidInput(errors.PhaseWrite, "assets directory is required")
	}
	return nil
}
