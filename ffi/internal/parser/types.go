package parser

import (
	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/ffi/internal/token"
)

func (p *Parser) parseType() ast.Node {
	t := p.peek()
	if t == nil {
		p.fail(p.endPos(), "expected type expression, found end of input")
	}

	switch t.Type {
	case token.Star:
		p.next()
		return p.parsePointerRest(&ast.PointerType{Pos: posOf(t), Size: ast.PtrOne})
	case token.Question:
		p.next()
		return &ast.Optional{Pos: posOf(t), Elem: p.parseType()}
	case token.LBracket:
		return p.parseBracketType()
	case token.Ident:
		switch {
		case p.isKeyword(t, "extern", "packed"):
			if n := p.peekN(1); n == nil || n.Type != token.Ident || !containerKeywords[n.Value] {
				if p.isKeyword(n, "fn") && t.Value == "extern" {
					return p.parseFnProto()
				}
				p.failAt(n, "expected container keyword after '%s', found %s", t.Value, p.describe(n))
			}
			return p.parseContainer()
		case containerKeywords[t.Value]:
			return p.parseContainer()
		case t.Value == "fn":
			return p.parseFnProto()
		case keywords[t.Value]:
			p.fail(posOf(t), "expected type expression, found '%s'", t.Value)
		}
		p.next()
		return &ast.Ident{Name: t.Value, Pos: posOf(t)}
	}

	p.fail(posOf(t), "expected type expression, found %s", p.describe(t))
	return nil
}

// parseBracketType handles every form that starts with '['.
func (p *Parser) parseBracketType() ast.Node {
	open := p.next()
	ptr := &ast.PointerType{Pos: posOf(open)}

	t := p.peek()
	switch {
	case t == nil:
		p.fail(p.endPos(), "expected type expression, found end of input")
	case t.Type == token.RBracket:
		p.next()
		ptr.Size = ast.PtrSlice
	case t.Type == token.Colon:
		p.next()
		ptr.Size = ast.PtrSlice
		ptr.Sentinel = p.parseNumber()
		p.expect(token.RBracket)
	case t.Type == token.Star:
		p.next()
		ptr.Size = ast.PtrMany
		switch n := p.peek(); {
		case n != nil && n.Type == token.Ident && n.Value == "c":
			p.next()
			ptr.Size = ast.PtrC
		case n != nil && n.Type == token.Colon:
			p.next()
			ptr.Sentinel = p.parseNumber()
		}
		p.expect(token.RBracket)
	case t.Type == token.Number:
		length := p.parseNumber()
		p.expect(token.RBracket)
		return &ast.ArrayType{Pos: posOf(open), Len: length, Elem: p.parseType()}
	default:
		p.fail(posOf(t), "expected array length or pointer size, found %s", p.describe(t))
	}
	return p.parsePointerRest(ptr)
}

func (p *Parser) parsePointerRest(ptr *ast.PointerType) ast.Node {
	for {
		switch {
		case p.acceptKeyword("const"):
			if ptr.Const {
				p.failAt(p.tokenBefore(), "duplicate 'const' qualifier")
			}
			ptr.Const = true
			continue
		case p.acceptKeyword("volatile"):
			if ptr.Volatile {
				p.failAt(p.tokenBefore(), "duplicate 'volatile' qualifier")
			}
			ptr.Volatile = true
			continue
		}
		break
	}
	ptr.Elem = p.parseType()
	return ptr
}

func (p *Parser) tokenBefore() *token.Token {
	return &p.tokens[p.pos-1]
}

func (p *Parser) parseNumber() *ast.NumberLit {
	t := p.expect(token.Number)
	return &ast.NumberLit{Value: t.Value, Pos: posOf(t)}
}

func (p *Parser) parseContainer() ast.Node {
	start := p.peek()
	c := &ast.Container{Pos: posOf(start)}
	if p.isKeyword(start, "extern", "packed") {
		c.Layout = start.Value
		p.next()
	}
	c.Keyword = p.next().Value

	p.openDelim(token.LBrace)
	for !p.accept(token.RBrace) {
		c.Fields = append(c.Fields, p.parseField())
		if t := p.peek(); t == nil || t.Type != token.RBrace {
			p.expect(token.Comma)
		}
	}
	p.open = p.open[:len(p.open)-1]
	return c
}

func (p *Parser) parseField() *ast.Field {
	name := p.expect(token.Ident)
	if keywords[name.Value] {
		p.fail(posOf(name), "expected field name, found '%s'", name.Value)
	}
	f := &ast.Field{Name: name.Value, Pos: posOf(name)}
	if p.accept(token.Colon) {
		f.Type = p.parseType()
	}
	return f
}
