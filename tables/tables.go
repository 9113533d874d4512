package tables

import (
	"math"
	"strconv"

	"github.com/wippyai/assetgen/errors"
)

const (
	EdgeTableSize     = 256
	TriangleTableRows = 256
	TriangleRowWidth  = 16

	// Sentinel marks "no further entry" in a padded triangle row.
	Sentinel int8 = -1
)

// EdgeTable maps a cube-corner activation pattern to a 12-bit edge mask.
type EdgeTable [EdgeTableSize]uint16

// TriangleTable maps a cube-corner activation pattern to a padded list of
// edge indices, three per triangle.
type TriangleTable [TriangleTableRows][TriangleRowWidth]int8

// Triangles returns the entries of row before the first sentinel.
func (t *TriangleTable) Triangles(row int) []int8 {
	r := t[row][:]
	for i, v := range r {
		if v == Sentinel {
			return r[:i]
		}
	}
	return r
}

// PadRow right-pads row to TriangleRowWidth with Sentinel. Rows longer than
// the width are truncated; callers validate first.
func PadRow(row []int8) [TriangleRowWidth]int8 {
	var out [TriangleRowWidth]int8
	n := copy(out[:], row)
	for i := n; i < TriangleRowWidth; i++ {
		out[i] = Sentinel
	}
	return out
}

// ParseEdgeTable extracts and validates EDGE_TABLE from src.
func ParseEdgeTable(src string) (*EdgeTable, error) {
	lit, err := Extract(src, EdgeSpec)
	if err != nil {
		return nil, err
	}
	return EdgeTableFrom(lit)
}

// EdgeTableFrom validates an extracted literal as an edge table.
func EdgeTableFrom(lit *Literal) (*EdgeTable, error) {
	name := EdgeSpec.Name
	if len(lit.Items) != EdgeSpec.Rows {
		return nil, errors.CountMismatch(name, "entries", EdgeSpec.Rows, len(lit.Items))
	}

	var t EdgeTable
	for i, item := range lit.Items {
		if item.IsList {
			return nil, errors.New(errors.PhaseValidate, errors.KindShape).
				Table(name).
				Path("entry", strconv.Itoa(i)).
				Detail("line %d: entry %d is a list, want a scalar", item.Line, i).
				Build()
		}
		if item.Value < 0 || item.Value > math.MaxUint16 {
			return nil, errors.OutOfRange(name, []string{"entry", strconv.Itoa(i)}, item.Value, "u16")
		}
		t[i] = uint16(item.Value)
	}
	return &t, nil
}

// ParseTriangleTable extracts, validates and pads TRI_TABLE from src.
func ParseTriangleTable(src string) (*TriangleTable, error) {
	lit, err := Extract(src, TriangleSpec)
	if err != nil {
		return nil, err
	}
	return TriangleTableFrom(lit)
}

// TriangleTableFrom validates an extracted literal as a triangle table.
func TriangleTableFrom(lit *Literal) (*TriangleTable, error) {
	name := TriangleSpec.Name
	if len(lit.Items) != TriangleSpec.Rows {
		return nil, errors.CountMismatch(name, "rows", TriangleSpec.Rows, len(lit.Items))
	}

	var t TriangleTable
	row := make([]int8, 0, TriangleRowWidth)
	for i, item := range lit.Items {
		if !item.IsList {
			return nil, errors.New(errors.PhaseValidate, errors.KindShape).
				Table(name).
				Path("row", strconv.Itoa(i)).
				Detail("line %d: row %d is a scalar, want a list", item.Line, i).
				Build()
		}
		if len(item.Items) > TriangleSpec.MaxWidth {
			return nil, errors.RowTooLong(name, i, len(item.Items), TriangleSpec.MaxWidth)
		}

		row = row[:0]
		for j, v := range item.Items {
			path := []string{"row", strconv.Itoa(i), strconv.Itoa(j)}
			if v.IsList {
				return nil, errors.New(errors.PhaseValidate, errors.KindShape).
					Table(name).
					Path(path...).
					Detail("line %d: nested list inside row %d", v.Line, i).
					Build()
			}
			if v.Value < math.MinInt8 || v.Value > math.MaxInt8 {
				return nil, errors.OutOfRange(name, path, v.Value, "i8")
			}
			row = append(row, int8(v.Value))
		}
		t[i] = PadRow(row)
	}
	return &t, nil
}
