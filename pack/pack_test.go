package pack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/geometry"
)

func rawBlock(name string, n int) Block {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + len(name))
	}
	return Block{Name: name, Data: data, Type: geometry.UnsignedByte, Components: 1, Count: n}
}

func TestPackTriangle(t *testing.T) {
	blocks, err := MeshBlocks(geometry.Triangle())
	require.NoError(t, err)

	blob, err := Pack(blocks...)
	require.NoError(t, err)

	assert.Len(t, blob.Data, 44)
	assert.Equal(t, 2, blob.Padding)
	require.Len(t, blob.Layout, 2)
	assert.Equal(t, 0, blob.Layout[0].Offset)
	assert.Equal(t, 36, blob.Layout[0].Length)
	assert.Equal(t, 36, blob.Layout[1].Offset)
	assert.Equal(t, 6, blob.Layout[1].Length)
	assert.Equal(t, geometry.UnsignedShort, blob.Layout[1].Type)
	assert.Equal(t, []byte{0, 0}, blob.Data[42:])
	require.NoError(t, blob.Validate())
}

func TestPackAlignment(t *testing.T) {
	tests := []struct {
		name    string
		sizes   []int
		padding int
	}{
		{"aligned", []int{4, 8}, 0},
		{"one short", []int{3}, 1},
		{"two short", []int{5, 1}, 2},
		{"three short", []int{1}, 3},
		{"many", []int{1, 2, 3, 4, 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var blocks []Block
			total := 0
			for i, n := range tt.sizes {
				blocks = append(blocks, rawBlock(string(rune('a'+i)), n))
				total += n
			}
			blob, err := Pack(blocks...)
			require.NoError(t, err)
			assert.Zero(t, len(blob.Data)%Alignment)
			assert.Equal(t, tt.padding, blob.Padding)
			assert.Equal(t, total+tt.padding, len(blob.Data))
			require.NoError(t, blob.Validate())
		})
	}
}

func TestPackRoundTrip(t *testing.T) {
	blocks := []Block{rawBlock("x", 13), rawBlock("yy", 1), rawBlock("zzz", 40), rawBlock("w", 2)}
	blob, err := Pack(blocks...)
	require.NoError(t, err)

	parts := blob.Split()
	require.Len(t, parts, len(blocks))
	prevEnd := 0
	for i, b := range blocks {
		assert.True(t, bytes.Equal(b.Data, parts[i]), "block %s", b.Name)
		l := blob.Layout[i]
		assert.Equal(t, b.Name, l.Name)
		assert.Equal(t, prevEnd, l.Offset)
		prevEnd = l.End()

		data, layout, ok := blob.Block(b.Name)
		require.True(t, ok)
		assert.Equal(t, l, layout)
		assert.Equal(t, b.Data, data)
	}

	_, _, ok := blob.Block("missing")
	assert.False(t, ok)
}

func TestPackRejects(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
	}{
		{"empty", nil},
		{"unnamed", []Block{{Data: []byte{1}, Type: geometry.UnsignedByte, Components: 1, Count: 1}}},
		{"duplicate", []Block{rawBlock("a", 1), rawBlock("a", 2)}},
		{"count mismatch", []Block{{Name: "a", Data: []byte{1, 2}, Type: geometry.UnsignedShort, Components: 1, Count: 2}}},
		{"no elements", []Block{{Name: "a", Type: geometry.Float, Components: 3}}},
		{"unknown type", []Block{{Name: "a", Data: []byte{1}, Type: 1, Components: 1, Count: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.blocks...)
			require.Error(t, err)
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errors.PhasePack, e.Phase)
		})
	}
}

func TestFloat32Block(t *testing.T) {
	b := Float32Block("p", []float32{1, 0, 0, 0, 1, 0}, 3)
	assert.Equal(t, 2, b.Count)
	assert.Equal(t, 12, b.ElementSize())
	assert.Len(t, b.Data, 24)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b.Data[:4])
}

func TestIndexBlock(t *testing.T) {
	tests := []struct {
		typ  geometry.ComponentType
		want []byte
	}{
		{geometry.UnsignedByte, []byte{1, 2}},
		{geometry.UnsignedShort, []byte{1, 0, 2, 0}},
		{geometry.UnsignedInt, []byte{1, 0, 0, 0, 2, 0, 0, 0}},
	}
	for _, tt := range tests {
		b, err := IndexBlock("i", []uint32{1, 2}, tt.typ)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Data, "%s", tt.typ)
		assert.Equal(t, 2, b.Count)
	}

	_, err := IndexBlock("i", []uint32{256}, geometry.UnsignedByte)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflows u8")

	_, err = IndexBlock("i", []uint32{1}, geometry.Float)
	require.Error(t, err)
}

func TestMeshBlocks(t *testing.T) {
	blocks, err := MeshBlocks(geometry.OverlapBoxes())
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "overlap_boxes.positions", blocks[0].Name)
	assert.Equal(t, 24, blocks[0].Count)
	assert.Equal(t, "overlap_boxes.indices", blocks[1].Name)
	assert.Equal(t, 108, blocks[1].Count)

	_, err = MeshBlocks(&geometry.Mesh{Name: "bad", Positions: []float32{0, 0, 0}, Indices: []uint32{3}})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestBlobValidate(t *testing.T) {
	blob, err := Pack(rawBlock("a", 3), rawBlock("b", 3))
	require.NoError(t, err)
	require.NoError(t, blob.Validate())

	gap := *blob
	gap.Layout = append([]Layout(nil), blob.Layout...)
	gap.Layout[1].Offset++
	assert.Error(t, gap.Validate())

	dirty := *blob
	dirty.Data = append([]byte(nil), blob.Data...)
	dirty.Data[len(dirty.Data)-1] = 1
	assert.Error(t, dirty.Validate())

	short := *blob
	short.Padding = 0
	assert.Error(t, short.Validate())
}
