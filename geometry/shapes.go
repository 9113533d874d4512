package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// cubeCorners are the corners of [-1,1]^3, bottom face first.
var cubeCorners = [8]r3.Vec{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
}

// CubeIndices is the local index template for one cube: 12 triangles over
// cubeCorners, each face wound clockwise as seen from outside. Under glTF's
// counter-clockwise front-face rule the faces point inward; the template is
// kept as-is so the fixtures match the established output.
var CubeIndices = [36]uint32{
	0, 1, 2, 0, 2, 3,
	4, 6, 5, 4, 7, 6,
	0, 4, 5, 0, 5, 1,
	1, 5, 6, 1, 6, 2,
	2, 6, 7, 2, 7, 3,
	3, 7, 4, 3, 4, 0,
}

// CubeVertexCount is the number of vertices one cube contributes.
const CubeVertexCount = len(cubeCorners)

// Placement positions one cube inside a composite.
type Placement struct {
	Center r3.Vec
	Scale  float64
}

// Triangle returns the unit right triangle in the XY plane.
func Triangle() *Mesh {
	return &Mesh{
		Name: "triangle",
		Positions: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
		},
		Indices: []uint32{0, 1, 2},
	}
}

// Cube returns the cube spanning [-1,1]^3.
func Cube() *Mesh {
	m := &Mesh{Name: "cube"}
	AppendCube(m, Placement{Scale: 1})
	return m
}

// AppendCube adds a scaled, translated cube to m. Its indices are offset by
// the vertex count of m before the call, so earlier shapes keep their range.
func AppendCube(m *Mesh, p Placement) {
	offset := uint32(m.VertexCount())
	for _, c := range cubeCorners {
		m.appendVertex(r3.Add(p.Center, r3.Scale(p.Scale, c)))
	}
	for _, idx := range CubeIndices {
		m.Indices = append(m.Indices, offset+idx)
	}
}

// Composite builds one mesh from several cubes.
func Composite(name string, placements ...Placement) *Mesh {
	m := &Mesh{Name: name}
	for _, p := range placements {
		AppendCube(m, p)
	}
	return m
}

// OverlapBoxes is three intersecting cubes, used to exercise overlapping
// geometry inside a single primitive.
func OverlapBoxes() *Mesh {
	return Composite("overlap_boxes",
		Placement{Center: r3.Vec{X: 0, Y: 0, Z: 0}, Scale: 0.9},
		Placement{Center: r3.Vec{X: 0.6, Y: 0.3, Z: 0}, Scale: 0.75},
		Placement{Center: r3.Vec{X: -0.5, Y: 0.2, Z: 0.4}, Scale: 0.7},
	)
}

// Examples returns the fixture meshes in generation order.
func Examples() []*Mesh {
	return []*Mesh{Triangle(), Cube(), OverlapBoxes()}
}
