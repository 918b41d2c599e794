package token

import (
	"unicode"
)

type Type int

const (
	Ident Type = iota
	Number
	String
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Semicolon
	Comma
	Star
	Question
	Equal
	Ellipsis
	Illegal
)

var typeNames = [...]string{
	Ident:     "identifier",
	Number:    "number",
	String:    "string",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	LBracket:  "'['",
	RBracket:  "']'",
	Colon:     "':'",
	Semicolon: "';'",
	Comma:     "','",
	Star:      "'*'",
	Question:  "'?'",
	Equal:     "'='",
	Ellipsis:  "'...'",
	Illegal:   "illegal character",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

var punct = map[rune]Type{
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	':': Colon,
	';': Semicolon,
	',': Comma,
	'*': Star,
	'?': Question,
	'=': Equal,
}

// Token is one lexeme. Line and Col are 1-based.
type Token struct {
	Value string
	Type  Type
	Line  int
	Col   int
}

// Tokenize splits declaration text into tokens. It never fails: characters
// outside the grammar become Illegal tokens for the parser to report.
func Tokenize(input string) []Token {
	var tokens []Token
	line, lineStart := 1, 0
	runes := []rune(input)

	emit := func(value string, typ Type, at int) {
		tokens = append(tokens, Token{value, typ, line, at - lineStart + 1})
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			lineStart = i + 1
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			i--
			continue
		}

		if typ, ok := punct[r]; ok {
			emit(string(r), typ, i)
			continue
		}

		if r == '.' {
			if i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.' {
				emit("...", Ellipsis, i)
				i += 2
				continue
			}
			emit(".", Illegal, i)
			continue
		}

		// String literal
		if r == '"' {
			start := i
			i++
			for i < len(runes) && runes[i] != '"' && runes[i] != '\n' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(runes) || runes[i] != '"' {
				emit(string(runes[start:min(i, len(runes))]), Illegal, start)
				i--
				continue
			}
			emit(string(runes[start+1:i]), String, start)
			continue
		}

		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) && (isHexDigit(runes[i]) || runes[i] == 'x' || runes[i] == 'X' || runes[i] == '_') {
				i++
			}
			emit(string(runes[start:i]), Number, start)
			i--
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			emit(string(runes[start:i]), Ident, start)
			i--
			continue
		}

		emit(string(r), Illegal, i)
	}

	return tokens
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
