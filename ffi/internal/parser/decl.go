package parser

import (
	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/ffi/internal/token"
)

var keywords = map[string]bool{
	"pub": true, "const": true, "var": true, "extern": true, "packed": true,
	"fn": true, "struct": true, "union": true, "enum": true, "opaque": true,
	"volatile": true,
}

var containerKeywords = map[string]bool{
	"struct": true, "union": true, "enum": true, "opaque": true,
}

func (p *Parser) parseDecl() ast.Node {
	start := p.peek()
	public := p.acceptKeyword("pub")

	t := p.peek()
	switch {
	case p.isKeyword(t, "const", "var"):
		d := p.parseVarDecl()
		d.Public = public
		d.Pos = posOf(start)
		return d
	case p.isKeyword(t, "extern", "fn"):
		fn := p.parseFnProto()
		fn.Public = public
		fn.Pos = posOf(start)
		return fn
	}
	p.failAt(t, "expected declaration, found %s", p.describe(t))
	return nil
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	kw := p.next()
	d := &ast.VarDecl{Pos: posOf(kw), Mutable: kw.Value == "var"}

	name := p.expect(token.Ident)
	if keywords[name.Value] {
		p.fail(posOf(name), "expected identifier, found '%s'", name.Value)
	}
	d.Name = name.Value

	if p.accept(token.Colon) {
		d.Type = p.parseType()
	}
	if p.accept(token.Equal) {
		d.Init = p.parseExpr()
	}
	return d
}

func (p *Parser) parseExpr() ast.Node {
	t := p.peek()
	if t == nil {
		p.fail(p.endPos(), "expected expression, found end of input")
	}
	switch t.Type {
	case token.Number:
		p.next()
		return &ast.NumberLit{Value: t.Value, Pos: posOf(t)}
	case token.String:
		p.next()
		return &ast.StringLit{Value: t.Value, Pos: posOf(t)}
	}
	return p.parseType()
}

func (p *Parser) parseFnProto() *ast.FnProto {
	fn := &ast.FnProto{Pos: posOf(p.peek())}

	if p.acceptKeyword("extern") {
		fn.Extern = true
		if t := p.peek(); t != nil && t.Type == token.String {
			fn.Library = t.Value
			p.next()
		}
	}

	if kw := p.next(); kw == nil || !p.isKeyword(kw, "fn") {
		p.failAt(kw, "expected 'fn', found %s", p.describe(kw))
	}

	if t := p.peek(); t != nil && t.Type == token.Ident {
		if keywords[t.Value] {
			p.fail(posOf(t), "expected function name, found '%s'", t.Value)
		}
		fn.Name = t.Value
		p.next()
	}

	p.openDelim(token.LParen)
	for !p.accept(token.RParen) {
		if fn.Variadic {
			p.failAt(p.peek(), "'...' must be the last parameter")
		}
		if t := p.peek(); t != nil && t.Type == token.Ellipsis {
			p.next()
			fn.Variadic = true
		} else {
			fn.Params = append(fn.Params, p.parseParam())
		}
		if t := p.peek(); t == nil || t.Type != token.RParen {
			p.expect(token.Comma)
		}
	}
	p.open = p.open[:len(p.open)-1]

	if p.startsType(p.peek()) {
		fn.Return = p.parseType()
	}
	return fn
}

func (p *Parser) parseParam() *ast.Param {
	t := p.peek()
	if t == nil {
		p.fail(p.endPos(), "expected parameter, found end of input")
	}
	param := &ast.Param{Pos: posOf(t)}
	if t.Type == token.Ident && !keywords[t.Value] {
		if n := p.peekN(1); n != nil && n.Type == token.Colon {
			param.Name = t.Value
			p.pos += 2
		}
	}
	param.Type = p.parseType()
	return param
}

func (p *Parser) startsType(t *token.Token) bool {
	if t == nil {
		return false
	}
	switch t.Type {
	case token.Star, token.LBracket, token.Question:
		return true
	case token.Ident:
		return !p.isKeyword(t, "pub", "const", "var", "volatile")
	}
	return false
}
