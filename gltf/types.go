// Package gltf assembles minimal, self-contained glTF 2.0 documents from a
// packed buffer and reads them back.
//
// Only the subset the fixtures need is modelled: one inline buffer, one
// bufferView per packed block, POSITION and index accessors, and one
// mesh/node per primitive gathered under a single scene.
package gltf

// Version is the only asset version produced and accepted.
const Version = "2.0"

// Accessor element types.
const (
	TypeScalar = "SCALAR"
	TypeVec3   = "VEC3"
)

// AttributePosition is the vertex position attribute semantic.
const AttributePosition = "POSITION"

// Document is the root of a glTF JSON document. Field order follows the
// order the fixtures have always been written in.
type Document struct {
	Asset       Asset        `json:"asset"`
	Buffers     []Buffer     `json:"buffers"`
	BufferViews []BufferView `json:"bufferViews"`
	Accessors   []Accessor   `json:"accessors"`
	Meshes      []Mesh       `json:"meshes"`
	Nodes       []Node       `json:"nodes"`
	Scenes      []Scene      `json:"scenes"`
	Scene       *int         `json:"scene,omitempty"`
}

// Asset carries the format version and the producing tool.
type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// Buffer references the packed blob through a data URI.
type Buffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri"`
}

// BufferView is a byte range of a buffer.
type BufferView struct {
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset"`
	ByteLength int    `json:"byteLength"`
	Name       string `json:"name,omitempty"`
}

// Accessor gives a buffer view a typed interpretation.
type Accessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType uint32    `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}

// Mesh is a set of primitives.
type Mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive binds attribute accessors and an index accessor.
type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
}

// Node places a mesh in the scene.
type Node struct {
	Name string `json:"name,omitempty"`
	Mesh *int   `json:"mesh,omitempty"`
}

// Scene lists root nodes.
type Scene struct {
	Nodes []int `json:"nodes"`
}

func ptr(i int) *int { return &i }

// components returns the number of components of an accessor type.
func components(typ string) int {
	switch typ {
	case TypeScalar:
		return 1
	case "VEC2":
		return 2
	case TypeVec3:
		return 3
	case "VEC4":
		return 4
	}
	return 0
}
