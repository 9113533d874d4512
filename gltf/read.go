package gltf

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/geometry"
	"github.com/wippyai/assetgen/internal/binary"
)

// Decode parses and validates a document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "parse document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// BufferData decodes the data URI of buffer i.
func (d *Document) BufferData(i int) ([]byte, error) {
	if i < 0 || i >= len(d.Buffers) {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{"buffers"}, fmt.Sprintf("buffer %d out of range", i))
	}
	path := []string{"buffers", strconv.Itoa(i)}
	uri := d.Buffers[i].URI
	if !strings.HasPrefix(uri, "data:") {
		return nil, errors.Unsupported(errors.PhaseDecode, "only data: URIs are supported for buffers")
	}
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, errors.Unsupported(errors.PhaseDecode, "only base64-encoded data URIs are supported")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).Path(path...).Cause(err).Detail("decode base64").Build()
	}
	if len(data) != d.Buffers[i].ByteLength {
		return nil, errors.InvalidData(errors.PhaseDecode, path,
			fmt.Sprintf("decoded %d bytes, byteLength is %d", len(data), d.Buffers[i].ByteLength))
	}
	return data, nil
}

// accessorBytes returns the bytes a tightly packed accessor reads.
func (d *Document) accessorBytes(i int) (Accessor, []byte, error) {
	if i < 0 || i >= len(d.Accessors) {
		return Accessor{}, nil, errors.InvalidData(errors.PhaseDecode, []string{"accessors"}, fmt.Sprintf("accessor %d out of range", i))
	}
	a := d.Accessors[i]
	if a.BufferView < 0 || a.BufferView >= len(d.BufferViews) {
		return a, nil, errors.InvalidData(errors.PhaseDecode, []string{"accessors", strconv.Itoa(i)},
			fmt.Sprintf("bufferView %d out of range", a.BufferView))
	}
	v := d.BufferViews[a.BufferView]
	buf, err := d.BufferData(v.Buffer)
	if err != nil {
		return a, nil, err
	}
	end := v.ByteOffset + v.ByteLength
	if v.ByteOffset < 0 || end > len(buf) {
		return a, nil, errors.InvalidData(errors.PhaseDecode, []string{"bufferViews", strconv.Itoa(a.BufferView)},
			fmt.Sprintf("range [%d, %d) outside buffer of %d bytes", v.ByteOffset, end, len(buf)))
	}
	return a, buf[v.ByteOffset:end], nil
}

// ReadPositions returns the float32 components of a VEC3 float accessor.
func (d *Document) ReadPositions(i int) ([]float32, error) {
	a, data, err := d.accessorBytes(i)
	if err != nil {
		return nil, err
	}
	if geometry.ComponentType(a.ComponentType) != geometry.Float || a.Type != TypeVec3 {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{"accessors", strconv.Itoa(i)},
			"POSITION accessors must be float VEC3")
	}
	r := binary.NewReader(data)
	out := make([]float32, 0, a.Count*3)
	for k, n := 0, a.Count*3; k < n; k++ {
		v, ok := r.F32()
		if !ok {
			return nil, errors.InvalidData(errors.PhaseDecode, []string{"accessors", strconv.Itoa(i)}, "accessor runs past its view")
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadIndices returns the values of an unsigned scalar accessor.
func (d *Document) ReadIndices(i int) ([]uint32, error) {
	a, data, err := d.accessorBytes(i)
	if err != nil {
		return nil, err
	}
	r := binary.NewReader(data)
	out := make([]uint32, 0, a.Count)
	for k, n := 0, a.Count; k < n; k++ {
		var v uint32
		var ok bool
		switch geometry.ComponentType(a.ComponentType) {
		case geometry.UnsignedByte:
			var b uint8
			b, ok = r.U8()
			v = uint32(b)
		case geometry.UnsignedShort:
			var s uint16
			s, ok = r.U16()
			v = uint32(s)
		case geometry.UnsignedInt:
			v, ok = r.U32()
		default:
			return nil, errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("index componentType %d", a.ComponentType))
		}
		if !ok {
			return nil, errors.InvalidData(errors.PhaseDecode, []string{"accessors", strconv.Itoa(i)}, "accessor runs past its view")
		}
		out = append(out, v)
	}
	return out, nil
}

// Validate checks the structural invariants of the fixture subset: version,
// view bounds, accessor sizes matching their views, and index bounds.
func (d *Document) Validate() error {
	if d.Asset.Version != Version {
		return errors.InvalidData(errors.PhaseDecode, []string{"asset", "version"}, fmt.Sprintf("version %q, want %q", d.Asset.Version, Version))
	}

	for i, v := range d.BufferViews {
		path := []string{"bufferViews", strconv.Itoa(i)}
		if v.Buffer < 0 || v.Buffer >= len(d.Buffers) {
			return errors.InvalidData(errors.PhaseDecode, path, fmt.Sprintf("buffer %d out of range", v.Buffer))
		}
		if v.ByteOffset < 0 || v.ByteLength <= 0 || v.ByteOffset+v.ByteLength > d.Buffers[v.Buffer].ByteLength {
			return errors.InvalidData(errors.PhaseDecode, path,
				fmt.Sprintf("range [%d, %d) outside buffer of %d bytes", v.ByteOffset, v.ByteOffset+v.ByteLength, d.Buffers[v.Buffer].ByteLength))
		}
	}

	for i, a := range d.Accessors {
		path := []string{"accessors", strconv.Itoa(i)}
		if a.BufferView < 0 || a.BufferView >= len(d.BufferViews) {
			return errors.InvalidData(errors.PhaseDecode, path, fmt.Sprintf("bufferView %d out of range", a.BufferView))
		}
		elem := geometry.ComponentType(a.ComponentType).Size() * components(a.Type)
		if elem == 0 {
			return errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("accessor %d: componentType %d type %s", i, a.ComponentType, a.Type))
		}
		if got := d.BufferViews[a.BufferView].ByteLength; a.Count*elem != got {
			return errors.InvalidData(errors.PhaseDecode, path,
				fmt.Sprintf("count %d x %d bytes != bufferView length %d", a.Count, elem, got))
		}
	}

	for mi, m := range d.Meshes {
		for pi, p := range m.Primitives {
			if err := d.validatePrimitive(p, []string{"meshes", strconv.Itoa(mi), "primitives", strconv.Itoa(pi)}); err != nil {
				return err
			}
		}
	}

	for ni, n := range d.Nodes {
		if n.Mesh != nil && (*n.Mesh < 0 || *n.Mesh >= len(d.Meshes)) {
			return errors.InvalidData(errors.PhaseDecode, []string{"nodes", strconv.Itoa(ni)}, fmt.Sprintf("mesh %d out of range", *n.Mesh))
		}
	}
	for si, s := range d.Scenes {
		for _, n := range s.Nodes {
			if n < 0 || n >= len(d.Nodes) {
				return errors.InvalidData(errors.PhaseDecode, []string{"scenes", strconv.Itoa(si)}, fmt.Sprintf("node %d out of range", n))
			}
		}
	}
	if d.Scene != nil && (*d.Scene < 0 || *d.Scene >= len(d.Scenes)) {
		return errors.InvalidData(errors.PhaseDecode, []string{"scene"}, fmt.Sprintf("scene %d out of range", *d.Scene))
	}
	return nil
}

func (d *Document) validatePrimitive(p Primitive, path []string) error {
	pos, ok := p.Attributes[AttributePosition]
	if !ok {
		return errors.InvalidData(errors.PhaseDecode, path, "primitive without POSITION")
	}
	if pos < 0 || pos >= len(d.Accessors) {
		return errors.InvalidData(errors.PhaseDecode, path, fmt.Sprintf("POSITION accessor %d out of range", pos))
	}
	if p.Indices == nil {
		return nil
	}
	indices, err := d.ReadIndices(*p.Indices)
	if err != nil {
		return err
	}
	vertices := uint32(d.Accessors[pos].Count)
	for i, idx := range indices {
		if idx >= vertices {
			return errors.New(errors.PhaseDecode, errors.KindOutOfRange).
				Path(append(path, "indices", strconv.Itoa(i))...).
				Value(idx).
				Detail("index %d >= vertex count %d", idx, vertices).
				Build()
		}
	}
	return nil
}
