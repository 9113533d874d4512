// Package assetgen generates the binary artifacts the renderer builds and
// tests against.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	assetgen/
//	├── tables/          Marching-cubes table transcoder (EDGE_TABLE, TRI_TABLE)
//	├── geometry/        Canonical fixture meshes: triangle, cube, composite cubes
//	├── pack/            Block packing into one 4-byte aligned buffer
//	├── gltf/            Minimal glTF 2.0 document assembly and reading
//	├── generate/        Pipelines with explicit paths and atomic writes
//	├── envmap/          Environment map fetcher (external collaborator)
//	├── errors/          Structured error types
//	└── cmd/assetgen/    Command line and interactive front end
//
// # Pipelines
//
// Table transcoding and mesh generation share no state. Each run is a single
// pass that either writes a complete artifact or nothing:
//
//	cfg := generate.DefaultConfig(".")
//	if err := generate.Tables(cfg); err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := generate.Examples(cfg)
//
// The mesh pipeline is geometry -> pack -> gltf:
//
//	blocks, _ := pack.MeshBlocks(geometry.Cube())
//	blob, _ := pack.Pack(blocks...)
//	doc, _ := gltf.Build(blob, gltf.DescribeMesh(geometry.Cube()))
//	out, _ := gltf.Marshal(doc)
//
// # Thread Safety
//
// All generators are pure functions of their inputs. Distinct artifacts may
// be generated concurrently; generate.All does exactly that.
package assetgen
