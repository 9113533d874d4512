package gltf

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/geometry"
	"github.com/wippyai/assetgen/internal/binary"
	"github.com/wippyai/assetgen/pack"
)

// Generator is written to asset.generator.
const Generator = "assetgen"

const dataURIPrefix = "data:application/octet-stream;base64,"

// PrimitiveDesc names the packed blocks that make up one mesh.
type PrimitiveDesc struct {
	Name          string
	PositionBlock string
	IndexBlock    string
	IndexType     geometry.ComponentType
	VertexCount   int
	IndexCount    int
}

// DescribeMesh returns the descriptor for a mesh packed with pack.MeshBlocks.
func DescribeMesh(m *geometry.Mesh) PrimitiveDesc {
	return PrimitiveDesc{
		Name:          m.Name,
		PositionBlock: pack.PositionsName(m.Name),
		IndexBlock:    pack.IndicesName(m.Name),
		IndexType:     m.IndexType(),
		VertexCount:   m.VertexCount(),
		IndexCount:    len(m.Indices),
	}
}

// Build assembles a document around blob. Every block becomes a buffer view;
// each descriptor contributes a POSITION accessor, an index accessor, a mesh
// and a node. One scene references all nodes.
func Build(blob *pack.Blob, prims ...PrimitiveDesc) (*Document, error) {
	if err := blob.Validate(); err != nil {
		return nil, err
	}
	if len(prims) == 0 {
		return nil, errors.InvalidInput(errors.PhaseBuild, "no primitives")
	}

	doc := &Document{
		Asset: Asset{Version: Version, Generator: Generator},
		Buffers: []Buffer{{
			ByteLength: len(blob.Data),
			URI:        dataURIPrefix + base64.StdEncoding.EncodeToString(blob.Data),
		}},
		Scenes: []Scene{{Nodes: []int{}}},
		Scene:  ptr(0),
	}

	views := make(map[string]int, len(blob.Layout))
	for _, l := range blob.Layout {
		views[l.Name] = len(doc.BufferViews)
		doc.BufferViews = append(doc.BufferViews, BufferView{
			Buffer:     0,
			ByteOffset: l.Offset,
			ByteLength: l.Length,
		})
	}

	for _, p := range prims {
		pos, err := positionAccessor(blob, views, p)
		if err != nil {
			return nil, err
		}
		idx, err := indexAccessor(blob, views, p)
		if err != nil {
			return nil, err
		}

		posIdx := len(doc.Accessors)
		doc.Accessors = append(doc.Accessors, pos, idx)

		meshIdx := len(doc.Meshes)
		doc.Meshes = append(doc.Meshes, Mesh{
			Name: p.Name,
			Primitives: []Primitive{{
				Attributes: map[string]int{AttributePosition: posIdx},
				Indices:    ptr(posIdx + 1),
			}},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, Node{Name: p.Name, Mesh: ptr(meshIdx)})
	}

	return doc, nil
}

func lookupView(blob *pack.Blob, views map[string]int, prim, block string) (int, pack.Layout, error) {
	i, ok := views[block]
	if !ok {
		return 0, pack.Layout{}, errors.New(errors.PhaseBuild, errors.KindNotFound).
			Table(prim).
			Detail("block %q not in blob", block).
			Build()
	}
	return i, blob.Layout[i], nil
}

func sizeMismatch(prim, block string, count, elem, length int) error {
	return errors.New(errors.PhaseBuild, errors.KindShape).
		Table(prim).
		Path(block).
		Detail("count %d x %d bytes != view length %d", count, elem, length).
		Build()
}

func positionAccessor(blob *pack.Blob, views map[string]int, p PrimitiveDesc) (Accessor, error) {
	view, l, err := lookupView(blob, views, p.Name, p.PositionBlock)
	if err != nil {
		return Accessor{}, err
	}
	if l.Type != geometry.Float || l.Components != 3 {
		return Accessor{}, errors.New(errors.PhaseBuild, errors.KindShape).
			Table(p.Name).
			Path(p.PositionBlock).
			Detail("positions must be %s x 3, block is %s x %d", geometry.Float, l.Type, l.Components).
			Build()
	}
	elem := 3 * geometry.Float.Size()
	if p.VertexCount*elem != l.Length {
		return Accessor{}, sizeMismatch(p.Name, p.PositionBlock, p.VertexCount, elem, l.Length)
	}

	lo, hi := bounds(blob.Data[l.Offset:l.End()], p.VertexCount)
	return Accessor{
		BufferView:    view,
		ComponentType: uint32(geometry.Float),
		Count:         p.VertexCount,
		Type:          TypeVec3,
		Min:           lo,
		Max:           hi,
	}, nil
}

func indexAccessor(blob *pack.Blob, views map[string]int, p PrimitiveDesc) (Accessor, error) {
	view, l, err := lookupView(blob, views, p.Name, p.IndexBlock)
	if err != nil {
		return Accessor{}, err
	}
	if l.Type != p.IndexType || l.Components != 1 {
		return Accessor{}, errors.New(errors.PhaseBuild, errors.KindShape).
			Table(p.Name).
			Path(p.IndexBlock).
			Detail("indices declared %s, block is %s x %d", p.IndexType, l.Type, l.Components).
			Build()
	}
	elem := p.IndexType.Size()
	if p.IndexCount*elem != l.Length {
		return Accessor{}, sizeMismatch(p.Name, p.IndexBlock, p.IndexCount, elem, l.Length)
	}
	return Accessor{
		BufferView:    view,
		ComponentType: uint32(p.IndexType),
		Count:         p.IndexCount,
		Type:          TypeScalar,
	}, nil
}

// bounds returns per-axis min and max of packed VEC3 float32 data.
func bounds(data []byte, count int) (lo, hi []float64) {
	if count == 0 {
		return nil, nil
	}
	r := binary.NewReader(data)
	lo = make([]float64, 3)
	hi = make([]float64, 3)
	for i := 0; i < count; i++ {
		for c := 0; c < 3; c++ {
			f, _ := r.F32()
			v := float64(f)
			if i == 0 || v < lo[c] {
				lo[c] = v
			}
			if i == 0 || v > hi[c] {
				hi[c] = v
			}
		}
	}
	return lo, hi
}

// Marshal encodes doc as indented JSON with a trailing newline.
func Marshal(doc *Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidData, err, "marshal document")
	}
	return append(out, '\n'), nil
}

// MeshDocument packs a single mesh and builds its document.
func MeshDocument(m *geometry.Mesh) (*Document, *pack.Blob, error) {
	blocks, err := pack.MeshBlocks(m)
	if err != nil {
		return nil, nil, err
	}
	blob, err := pack.Pack(blocks...)
	if err != nil {
		return nil, nil, err
	}
	doc, err := Build(blob, DescribeMesh(m))
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", m.Name, err)
	}
	return doc, blob, nil
}
