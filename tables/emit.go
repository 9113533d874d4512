package tables

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/assetgen/errors"
)

// Format selects the target language of the emitted constant arrays.
type Format string

const (
	FormatRust Format = "rust"
	FormatGo   Format = "go"
)

const edgeEntriesPerLine = 8

// Options controls emission.
type Options struct {
	// Source is named in the generated header. Defaults to "source".
	Source string
	// Format defaults to FormatRust.
	Format Format
	// Package is the Go package clause for FormatGo. Defaults to "tables".
	Package string
}

func (o Options) withDefaults() Options {
	if o.Source == "" {
		o.Source = "source"
	}
	if o.Format == "" {
		o.Format = FormatRust
	}
	if o.Package == "" {
		o.Package = "tables"
	}
	return o
}

// Transcode extracts both tables from src, validates them and renders them.
// Nothing is returned unless both tables are valid.
func Transcode(src string, opts Options) ([]byte, error) {
	edge, err := ParseEdgeTable(src)
	if err != nil {
		return nil, err
	}
	tri, err := ParseTriangleTable(src)
	if err != nil {
		return nil, err
	}
	return Render(edge, tri, opts)
}

// Render emits both tables. Output is a pure function of its inputs.
func Render(edge *EdgeTable, tri *TriangleTable, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	var b strings.Builder
	switch opts.Format {
	case FormatRust:
		renderRust(&b, edge, tri, opts)
	case FormatGo:
		renderGo(&b, edge, tri, opts)
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("table format %q", opts.Format))
	}
	return []byte(b.String()), nil
}

func renderRust(b *strings.Builder, edge *EdgeTable, tri *TriangleTable, opts Options) {
	fmt.Fprintf(b, "// Auto-generated from %s by assetgen. Do not edit.\n", opts.Source)

	fmt.Fprintf(b, "pub const %s: [u16; %d] = [\n", EdgeSpec.Name, EdgeTableSize)
	writeEdgeRows(b, edge, "  ")
	b.WriteString("];\n\n")

	fmt.Fprintf(b, "pub const %s: [[i8; %d]; %d] = [\n", TriangleSpec.Name, TriangleRowWidth, TriangleTableRows)
	for i := range tri {
		b.WriteString("  [")
		writeRow(b, &tri[i])
		b.WriteString("],\n")
	}
	b.WriteString("];\n")
}

func renderGo(b *strings.Builder, edge *EdgeTable, tri *TriangleTable, opts Options) {
	fmt.Fprintf(b, "// Code generated by assetgen from %s. DO NOT EDIT.\n\n", opts.Source)
	fmt.Fprintf(b, "package %s\n\n", opts.Package)

	fmt.Fprintf(b, "var EdgeTable = [%d]uint16{\n", EdgeTableSize)
	writeEdgeRows(b, edge, "\t")
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "var TriTable = [%d][%d]int8{\n", TriangleTableRows, TriangleRowWidth)
	for i := range tri {
		b.WriteString("\t{")
		writeRow(b, &tri[i])
		b.WriteString("},\n")
	}
	b.WriteString("}\n")
}

// writeEdgeRows writes 0x%03x literals, edgeEntriesPerLine per line.
func writeEdgeRows(b *strings.Builder, edge *EdgeTable, indent string) {
	for i := 0; i < len(edge); i += edgeEntriesPerLine {
		b.WriteString(indent)
		for j := i; j < i+edgeEntriesPerLine && j < len(edge); j++ {
			if j > i {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "0x%03x", edge[j])
		}
		b.WriteString(",\n")
	}
}

func writeRow(b *strings.Builder, row *[TriangleRowWidth]int8) {
	for j, v := range row {
		if j > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
}
