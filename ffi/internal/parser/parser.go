package parser

import (
	"fmt"

	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/ffi/internal/token"
)

// Error is a syntax error. Notes point at related locations, such as the
// opening brace of an unclosed container, and always follow the error
// they belong to.
type Error struct {
	Msg  string
	Pos  ast.Pos
	Note bool
}

func (e *Error) Error() string {
	if e.Note {
		return fmt.Sprintf("%d:%d: note: %s", e.Pos.Line, e.Pos.Col, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// bail aborts the current declaration.
type bail struct{}

type Parser struct {
	errs   []*Error
	tokens []token.Token
	open   []token.Token
	pos    int
	// synthetic is the index of a caller-appended terminator, or -1.
	synthetic int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, synthetic: -1}
}

// Parse reads every top-level declaration. A declaration with a syntax error
// is dropped and parsing resumes after its terminating ';'.
func Parse(src string) (*ast.File, []*Error) {
	return New(token.Tokenize(src)).Parse()
}

// ParseWrapped parses src whose final token was appended by the caller to
// terminate a fragment. Errors at that token describe it as end of input.
func ParseWrapped(src string) (*ast.File, []*Error) {
	p := New(token.Tokenize(src))
	if n := len(p.tokens); n > 0 && p.tokens[n-1].Type == token.Semicolon {
		p.synthetic = n - 1
	}
	return p.Parse()
}

func (p *Parser) Parse() (*ast.File, []*Error) {
	file := &ast.File{}
	for p.peek() != nil {
		if d := p.declOrRecover(); d != nil {
			file.Decls = append(file.Decls, d)
		}
	}
	return file, p.errs
}

func (p *Parser) declOrRecover() (decl ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bail); !ok {
				panic(r)
			}
			decl = nil
			p.skipDecl()
		}
	}()
	d := p.parseDecl()
	p.expect(token.Semicolon)
	return d
}

// skipDecl skips to the ';' that ends the broken declaration.
func (p *Parser) skipDecl() {
	depth := len(p.open)
	p.open = p.open[:0]
	for {
		t := p.next()
		if t == nil {
			return
		}
		switch t.Type {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				return
			}
		}
	}
}

func (p *Parser) fail(pos ast.Pos, format string, args ...any) {
	p.errs = append(p.errs, &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
	for i := len(p.open) - 1; i >= 0; i-- {
		o := p.open[i]
		p.errs = append(p.errs, &Error{
			Pos:  ast.Pos{Line: o.Line, Col: o.Col},
			Msg:  fmt.Sprintf("to match this %s", o.Type),
			Note: true,
		})
	}
	panic(bail{})
}

func (p *Parser) failAt(t *token.Token, format string, args ...any) {
	if t == nil {
		p.fail(p.endPos(), format, args...)
	}
	p.fail(posOf(t), format, args...)
}

func (p *Parser) peek() *token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) *token.Token {
	if p.pos+n >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos+n]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) expect(typ token.Type) *token.Token {
	t := p.next()
	if t == nil {
		p.fail(p.endPos(), "expected %v, found end of input", typ)
	}
	if t.Type != typ {
		p.fail(posOf(t), "expected %v, found %s", typ, p.describe(t))
	}
	return t
}

func (p *Parser) accept(typ token.Type) bool {
	if t := p.peek(); t != nil && t.Type == typ {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) acceptKeyword(kw string) bool {
	if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == kw {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) isKeyword(t *token.Token, kws ...string) bool {
	if t == nil || t.Type != token.Ident {
		return false
	}
	for _, kw := range kws {
		if t.Value == kw {
			return true
		}
	}
	return false
}

func (p *Parser) openDelim(typ token.Type) {
	p.open = append(p.open, *p.expect(typ))
}

func (p *Parser) endPos() ast.Pos {
	if len(p.tokens) == 0 {
		return ast.Pos{Line: 1, Col: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	return ast.Pos{Line: last.Line, Col: last.Col + len(last.Value)}
}

func posOf(t *token.Token) ast.Pos {
	return ast.Pos{Line: t.Line, Col: t.Col}
}

func (p *Parser) describe(t *token.Token) string {
	if t == nil || (p.synthetic >= 0 && t == &p.tokens[p.synthetic]) {
		return "end of input"
	}
	return describeToken(t)
}

func describeToken(t *token.Token) string {
	switch t.Type {
	case token.Ident:
		if keywords[t.Value] {
			return fmt.Sprintf("'%s'", t.Value)
		}
		return fmt.Sprintf("identifier %q", t.Value)
	case token.Number:
		return fmt.Sprintf("number %s", t.Value)
	case token.String:
		return fmt.Sprintf("string %q", t.Value)
	case token.Illegal:
		if len(t.Value) > 0 && t.Value[0] == '"' {
			return "unterminated string literal"
		}
		return fmt.Sprintf("invalid character %q", t.Value)
	}
	return t.Type.String()
}
