// Package scan tokenizes table source text just far enough to locate
// bracketed numeric literal regions. It is not a parser for the host language.
package scan

import (
	"unicode"
)

type Type int

const (
	LBracket Type = iota
	RBracket
	LParen
	RParen
	Comma
	Semicolon
	Ident
	Number
	String
	Punct
)

func (t Type) String() string {
	switch t {
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	case Semicolon:
		return "';'"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Punct:
		return "punctuation"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  Type
	Line  int
}

// Tokenize splits input into tokens. Comments (// and /* */) and whitespace
// are dropped. String and template literals become a single String token so
// that brackets inside them never open a region.
func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i+1 < len(runes) && runes[i+1] != '\n' {
				i++
			}
			continue
		}

		// Block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			i += 2
			for i < len(runes) && !(runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/') {
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			i++
			continue
		}

		switch r {
		case '[':
			tokens = append(tokens, Token{"[", LBracket, line})
			continue
		case ']':
			tokens = append(tokens, Token{"]", RBracket, line})
			continue
		case '(':
			tokens = append(tokens, Token{"(", LParen, line})
			continue
		case ')':
			tokens = append(tokens, Token{")", RParen, line})
			continue
		case ',':
			tokens = append(tokens, Token{",", Comma, line})
			continue
		case ';':
			tokens = append(tokens, Token{";", Semicolon, line})
			continue
		}

		// String literal
		if r == '"' || r == '\'' || r == '`' {
			quote := r
			startLine := line
			start := i + 1
			i++
			for i < len(runes) && runes[i] != quote {
				if runes[i] == '\\' {
					i++
				} else if runes[i] == '\n' {
					line++
				}
				i++
			}
			end := min(i, len(runes))
			tokens = append(tokens, Token{string(runes[start:end]), String, startLine})
			continue
		}

		// Number, optionally signed. A sign only binds when a digit follows.
		if unicode.IsDigit(r) || ((r == '-' || r == '+') && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			start := i
			i++
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || unicode.IsLetter(c) || c == '_' || c == '.' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		// Identifier
		if r == '$' || r == '_' || unicode.IsLetter(r) {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '$' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		tokens = append(tokens, Token{string(r), Punct, line})
	}

	return tokens
}
