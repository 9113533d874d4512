package tables

import (
	"strconv"
	"strings"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/tables/internal/scan"
)

// TableSpec names a declaration in the source and the shape it must have.
type TableSpec struct {
	Name     string
	Rows     int
	MaxWidth int // 0 for flat tables of scalars
}

var (
	EdgeSpec     = TableSpec{Name: "EDGE_TABLE", Rows: EdgeTableSize}
	TriangleSpec = TableSpec{Name: "TRI_TABLE", Rows: TriangleTableRows, MaxWidth: TriangleRowWidth}
)

// Literal is a nested integer list as written in the source.
type Literal struct {
	Items  []Literal
	Value  int64
	Line   int
	IsList bool
}

// Extract locates the declaration of spec.Name in src and parses the
// bracketed region it is initialised with. Uses of the name that are not a
// declaration are skipped.
func Extract(src string, spec TableSpec) (*Literal, error) {
	return extractTokens(scan.Tokenize(src), spec)
}

// declKeywords may directly precede a declared name. `mut` covers
// `static mut`; `pub` always comes before one of the others.
var declKeywords = map[string]bool{
	"const":  true,
	"let":    true,
	"var":    true,
	"static": true,
	"mut":    true,
}

// declarationAt reports whether tokens[i] names a declaration: a keyword
// before it and `=` or a `:` type annotation after it.
func declarationAt(tokens []scan.Token, i int) bool {
	if i == 0 || i+1 >= len(tokens) {
		return false
	}
	prev := tokens[i-1]
	if prev.Type != scan.Ident || !declKeywords[prev.Value] {
		return false
	}
	next := tokens[i+1]
	if next.Type != scan.Punct {
		return false
	}
	switch next.Value {
	case ":":
		return true
	case "=":
		// `==` tokenizes as two `=`.
		return i+2 >= len(tokens) || tokens[i+2].Type != scan.Punct || tokens[i+2].Value != "="
	}
	return false
}

func extractTokens(tokens []scan.Token, spec TableSpec) (*Literal, error) {
	start := -1
	for i, tok := range tokens {
		if tok.Type == scan.Ident && tok.Value == spec.Name && declarationAt(tokens, i) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, errors.NotFound(errors.PhaseScan, "declaration", spec.Name)
	}

	// A type annotation (`: [u16; 256]`) holds brackets of its own.
	if tokens[start].Value == ":" {
		for start < len(tokens) && !(tokens[start].Type == scan.Punct && tokens[start].Value == "=") {
			start++
		}
	}

	// Skip the declaration tail (`= new Uint16Array(`) up to the region.
	for start < len(tokens) && tokens[start].Type != scan.LBracket {
		if tokens[start].Type == scan.Semicolon {
			return nil, errors.New(errors.PhaseScan, errors.KindNotFound).
				Table(spec.Name).
				Detail("line %d: declaration ends before a bracketed region", tokens[start].Line).
				Build()
		}
		start++
	}
	if start >= len(tokens) {
		return nil, errors.New(errors.PhaseScan, errors.KindNotFound).
			Table(spec.Name).
			Detail("no bracketed region after declaration").
			Build()
	}

	p := &regionParser{tokens: tokens, pos: start, table: spec.Name}
	return p.parseList()
}

type regionParser struct {
	table  string
	tokens []scan.Token
	pos    int
}

func (p *regionParser) parseList() (*Literal, error) {
	open := p.tokens[p.pos]
	p.pos++
	lit := &Literal{IsList: true, Line: open.Line}

	for {
		if p.pos >= len(p.tokens) {
			return nil, errors.New(errors.PhaseScan, errors.KindUnterminated).
				Table(p.table).
				Detail("line %d: bracketed region is never closed", open.Line).
				Build()
		}
		tok := p.tokens[p.pos]
		switch tok.Type {
		case scan.RBracket:
			p.pos++
			return lit, nil
		case scan.LBracket:
			child, err := p.parseList()
			if err != nil {
				return nil, err
			}
			lit.Items = append(lit.Items, *child)
		case scan.Number:
			v, err := parseInt(tok.Value)
			if err != nil {
				return nil, errors.InvalidToken(p.table, tok.Line, tok.Value)
			}
			lit.Items = append(lit.Items, Literal{Value: v, Line: tok.Line})
			p.pos++
		default:
			return nil, errors.InvalidToken(p.table, tok.Line, tok.Value)
		}

		if err := p.separator(); err != nil {
			return nil, err
		}
	}
}

// separator consumes the comma between elements. A trailing comma before the
// closing bracket is accepted.
func (p *regionParser) separator() error {
	if p.pos >= len(p.tokens) {
		return nil
	}
	switch tok := p.tokens[p.pos]; tok.Type {
	case scan.Comma:
		p.pos++
		if p.pos < len(p.tokens) && p.tokens[p.pos].Type == scan.Comma {
			return errors.InvalidToken(p.table, p.tokens[p.pos].Line, ",")
		}
		return nil
	case scan.RBracket:
		return nil
	default:
		return errors.InvalidToken(p.table, tok.Line, tok.Value)
	}
}

// parseInt accepts decimal and 0x-prefixed hex literals with an optional sign.
func parseInt(s string) (int64, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	var v uint64
	var err error
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 63)
	} else {
		v, err = strconv.ParseUint(s, 10, 63)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}
