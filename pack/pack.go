package pack

import (
	"fmt"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/geometry"
	"github.com/wippyai/assetgen/internal/binary"
)

// Alignment is the byte multiple every packed blob is padded to.
const Alignment = 4

// Layout records where one block was placed in a blob.
type Layout struct {
	Name       string
	Type       geometry.ComponentType
	Components int
	Count      int
	Offset     int
	Length     int
}

// End returns the offset one past the block's last byte.
func (l Layout) End() int {
	return l.Offset + l.Length
}

// Blob is the packed buffer plus its layout.
type Blob struct {
	Data    []byte
	Layout  []Layout
	Padding int
}

// Pack concatenates blocks in order and pads the result to Alignment.
func Pack(blocks ...Block) (*Blob, error) {
	if len(blocks) == 0 {
		return nil, errors.InvalidInput(errors.PhasePack, "no blocks to pack")
	}

	size := 0
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if err := b.validate(); err != nil {
			return nil, err
		}
		if seen[b.Name] {
			return nil, errors.New(errors.PhasePack, errors.KindInvalidInput).
				Table(b.Name).
				Detail("duplicate block name").
				Build()
		}
		seen[b.Name] = true
		size += len(b.Data)
	}

	w := binary.NewWriter(size + Alignment)
	layout := make([]Layout, 0, len(blocks))
	for _, b := range blocks {
		layout = append(layout, Layout{
			Name:       b.Name,
			Type:       b.Type,
			Components: b.Components,
			Count:      b.Count,
			Offset:     w.Len(),
			Length:     len(b.Data),
		})
		w.WriteBytes(b.Data)
	}
	padding := w.Pad(Alignment)

	return &Blob{
		Data:    w.Bytes(),
		Layout:  layout,
		Padding: padding,
	}, nil
}

// Split returns each block's bytes, in layout order.
func (b *Blob) Split() [][]byte {
	out := make([][]byte, len(b.Layout))
	for i, l := range b.Layout {
		out[i] = b.Data[l.Offset:l.End()]
	}
	return out
}

// Block returns the bytes and layout of the named block.
func (b *Blob) Block(name string) ([]byte, Layout, bool) {
	for _, l := range b.Layout {
		if l.Name == name {
			return b.Data[l.Offset:l.End()], l, true
		}
	}
	return nil, Layout{}, false
}

// Validate checks that layouts are non-empty, contiguous, in order, and cover
// the blob up to its padding.
func (b *Blob) Validate() error {
	if len(b.Data)%Alignment != 0 {
		return errors.InvalidData(errors.PhasePack, nil, fmt.Sprintf("blob length %d is not %d-byte aligned", len(b.Data), Alignment))
	}
	next := 0
	for i, l := range b.Layout {
		if l.Length <= 0 || l.Offset != next {
			return errors.InvalidData(errors.PhasePack, []string{l.Name},
				fmt.Sprintf("block %d spans [%d, %d), want a non-empty range starting at %d", i, l.Offset, l.End(), next))
		}
		next = l.End()
	}
	if next+b.Padding != len(b.Data) {
		return errors.InvalidData(errors.PhasePack, nil,
			fmt.Sprintf("blocks cover %d bytes + %d padding, blob has %d", next, b.Padding, len(b.Data)))
	}
	for _, c := range b.Data[next:] {
		if c != 0 {
			return errors.InvalidData(errors.PhasePack, nil, "non-zero padding byte")
		}
	}
	return nil
}
