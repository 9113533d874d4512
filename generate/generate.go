package generate

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/assetgen/envmap"
	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/geometry"
	"github.com/wippyai/assetgen/gltf"
	"github.com/wippyai/assetgen/internal/fsutil"
	"github.com/wippyai/assetgen/tables"
)

// Tables transcodes cfg.SourcePath into cfg.TablesOut.
func Tables(cfg Config) error {
	if err := cfg.requireTables(); err != nil {
		return err
	}

	src, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		return errors.IO("read", cfg.SourcePath, err)
	}

	out, err := tables.Transcode(string(src), tables.Options{
		Source: filepath.ToSlash(filepath.Base(cfg.SourcePath)),
		Format: cfg.Format,
	})
	if err != nil {
		Logger().Error("table transcoding failed",
			zap.String("source", cfg.SourcePath),
			zap.Error(err))
		return err
	}

	if err := fsutil.WriteFile(cfg.TablesOut, out, 0o644); err != nil {
		return errors.IO("write", cfg.TablesOut, err)
	}

	Logger().Info("wrote tables",
		zap.String("source", cfg.SourcePath),
		zap.String("out", cfg.TablesOut),
		zap.String("format", string(cfg.Format)),
		zap.Int("bytes", len(out)))
	return nil
}

// Example packs m into a glTF fixture and returns the written path.
func Example(cfg Config, m *geometry.Mesh) (string, error) {
	if err := cfg.requireAssets(); err != nil {
		return "", err
	}

	doc, blob, err := gltf.MeshDocument(m)
	if err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}
	out, err := gltf.Marshal(doc)
	if err != nil {
		return "", err
	}

	path := cfg.AssetPath(m.Name)
	if err := fsutil.WriteFile(path, out, 0o644); err != nil {
		return "", errors.IO("write", path, err)
	}

	Logger().Info("wrote example",
		zap.String("mesh", m.Name),
		zap.String("out", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", len(m.Indices)),
		zap.Int("blob", len(blob.Data)),
		zap.Int("padding", blob.Padding))
	return path, nil
}

// Examples writes every fixture mesh in order, stopping at the first failure.
func Examples(cfg Config) ([]string, error) {
	var paths []string
	for _, m := range geometry.Examples() {
		p, err := Example(cfg, m)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// EnvMaps fetches maps into cfg.EnvDir. Each map is fetched independently;
// the first error is returned after all have been attempted.
func EnvMaps(ctx context.Context, cfg Config, f envmap.Fetcher, maps []envmap.Map) error {
	if cfg.EnvDir == "" {
		return errors.InvalidInput(errors.PhaseFetch, "environment map directory is required")
	}
	var first error
	for _, m := range maps {
		dest := filepath.Join(cfg.EnvDir, m.Filename)
		if err := f.Fetch(ctx, m.Name, dest); err != nil {
			Logger().Warn("environment map failed", zap.String("asset", m.Name), zap.Error(err))
			if first == nil {
				first = err
			}
			continue
		}
		Logger().Info("fetched environment map", zap.String("asset", m.Name), zap.String("dest", dest))
	}
	return first
}

// All runs the table pipeline and every example concurrently. The artifacts
// are disjoint files, so a failure in one leaves the others intact.
func All(cfg Config) error {
	var g errgroup.Group

	g.Go(func() error { return Tables(cfg) })
	for _, m := range geometry.Examples() {
		m := m
		g.Go(func() error {
			_, err := Example(cfg, m)
			return err
		})
	}
	return g.Wait()
}
