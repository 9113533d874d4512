package pack

import (
	"fmt"
	"math"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/geometry"
	"github.com/wippyai/assetgen/internal/binary"
)

// Block is a named byte sequence with a declared element type and count.
type Block struct {
	Name       string
	Data       []byte
	Type       geometry.ComponentType
	Components int // components per element: 1 for scalars, 3 for VEC3
	Count      int // number of elements
}

// ElementSize returns the byte size of one element.
func (b Block) ElementSize() int {
	return b.Type.Size() * b.Components
}

func (b Block) validate() error {
	if b.Name == "" {
		return errors.InvalidInput(errors.PhasePack, "block without a name")
	}
	if b.ElementSize() == 0 {
		return errors.New(errors.PhasePack, errors.KindInvalidInput).
			Table(b.Name).
			Detail("element type %s x %d has no size", b.Type, b.Components).
			Build()
	}
	if b.Count <= 0 {
		return errors.New(errors.PhasePack, errors.KindShape).
			Table(b.Name).
			Detail("block has no elements").
			Build()
	}
	if want := b.Count * b.ElementSize(); len(b.Data) != want {
		return errors.New(errors.PhasePack, errors.KindShape).
			Table(b.Name).
			Detail("%d bytes, want %d elements x %d bytes = %d", len(b.Data), b.Count, b.ElementSize(), want).
			Build()
	}
	return nil
}

// Float32Block encodes values as little-endian float32, components per element.
func Float32Block(name string, values []float32, components int) Block {
	w := binary.NewWriter(len(values) * 4)
	for _, v := range values {
		w.WriteF32LE(v)
	}
	count := 0
	if components > 0 {
		count = len(values) / components
	}
	return Block{
		Name:       name,
		Data:       w.Bytes(),
		Type:       geometry.Float,
		Components: components,
		Count:      count,
	}
}

// IndexBlock encodes indices at the given unsigned width. It fails when an
// index does not fit.
func IndexBlock(name string, indices []uint32, t geometry.ComponentType) (Block, error) {
	var limit uint32
	switch t {
	case geometry.UnsignedByte:
		limit = math.MaxUint8
	case geometry.UnsignedShort:
		limit = math.MaxUint16
	case geometry.UnsignedInt:
		limit = math.MaxUint32
	default:
		return Block{}, errors.Unsupported(errors.PhasePack, fmt.Sprintf("index component type %s", t))
	}

	w := binary.NewWriter(len(indices) * t.Size())
	for i, idx := range indices {
		if idx > limit {
			return Block{}, errors.New(errors.PhasePack, errors.KindOutOfRange).
				Table(name).
				Path("indices", fmt.Sprint(i)).
				Value(idx).
				Detail("index %d overflows %s", idx, t).
				Build()
		}
		switch t {
		case geometry.UnsignedByte:
			w.Byte(uint8(idx))
		case geometry.UnsignedShort:
			w.WriteU16LE(uint16(idx))
		default:
			w.WriteU32LE(idx)
		}
	}
	return Block{
		Name:       name,
		Data:       w.Bytes(),
		Type:       t,
		Components: 1,
		Count:      len(indices),
	}, nil
}

// PositionsName and IndicesName are the block names MeshBlocks assigns.
func PositionsName(mesh string) string { return mesh + ".positions" }
func IndicesName(mesh string) string   { return mesh + ".indices" }

// MeshBlocks validates m and encodes it as a positions block followed by an
// indices block at the mesh's index width.
func MeshBlocks(m *geometry.Mesh) ([]Block, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	idx, err := IndexBlock(IndicesName(m.Name), m.Indices, m.IndexType())
	if err != nil {
		return nil, err
	}
	return []Block{
		Float32Block(PositionsName(m.Name), m.Positions, 3),
		idx,
	}, nil
}
