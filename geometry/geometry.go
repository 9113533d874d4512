// Package geometry builds the canonical primitive meshes used as scene fixtures.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wippyai/assetgen/errors"
)

// ComponentType is a glTF accessor component type code.
type ComponentType uint32

const (
	UnsignedByte  ComponentType = 5121
	UnsignedShort ComponentType = 5123
	UnsignedInt   ComponentType = 5125
	Float         ComponentType = 5126
)

// Size returns the byte width of one component.
func (c ComponentType) Size() int {
	switch c {
	case UnsignedByte:
		return 1
	case UnsignedShort:
		return 2
	case UnsignedInt, Float:
		return 4
	}
	return 0
}

func (c ComponentType) String() string {
	switch c {
	case UnsignedByte:
		return "u8"
	case UnsignedShort:
		return "u16"
	case UnsignedInt:
		return "u32"
	case Float:
		return "f32"
	}
	return fmt.Sprintf("component(%d)", uint32(c))
}

// IndexTypeFor returns the smallest practical unsigned index width able to
// hold maxIndex. Byte indices are never chosen: several GPU APIs reject them.
func IndexTypeFor(maxIndex uint32) ComponentType {
	if maxIndex <= math.MaxUint16 {
		return UnsignedShort
	}
	return UnsignedInt
}

// Mesh is an indexed triangle list. Positions hold 3 floats per vertex.
type Mesh struct {
	Name      string
	Positions []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// IndexType returns the index width used when the mesh is packed.
func (m *Mesh) IndexType() ComponentType {
	var maxIndex uint32
	for _, idx := range m.Indices {
		maxIndex = max(maxIndex, idx)
	}
	return IndexTypeFor(maxIndex)
}

// Validate checks the position stride and that every index addresses a vertex.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return errors.New(errors.PhaseValidate, errors.KindShape).
			Table(m.Name).
			Detail("%d position components is not a multiple of 3", len(m.Positions)).
			Build()
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return errors.New(errors.PhaseValidate, errors.KindOutOfRange).
				Table(m.Name).
				Path("indices", fmt.Sprint(i)).
				Value(idx).
				Detail("index %d >= vertex count %d", idx, n).
				Build()
		}
	}
	return nil
}

// Vertex returns vertex i as a vector.
func (m *Mesh) Vertex(i int) r3.Vec {
	p := m.Positions[i*3 : i*3+3]
	return r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

// Bounds returns the per-axis minimum and maximum of all positions.
func (m *Mesh) Bounds() r3.Box {
	if m.VertexCount() == 0 {
		return r3.Box{}
	}
	box := r3.Box{Min: m.Vertex(0), Max: m.Vertex(0)}
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		box.Min = r3.Vec{X: math.Min(box.Min.X, v.X), Y: math.Min(box.Min.Y, v.Y), Z: math.Min(box.Min.Z, v.Z)}
		box.Max = r3.Vec{X: math.Max(box.Max.X, v.X), Y: math.Max(box.Max.Y, v.Y), Z: math.Max(box.Max.Z, v.Z)}
	}
	return box
}

func (m *Mesh) appendVertex(v r3.Vec) {
	m.Positions = append(m.Positions, float32(v.X), float32(v.Y), float32(v.Z))
}
