package ast

// Pos is a 1-based line and column inside declaration text.
type Pos struct {
	Line int
	Col  int
}

// Node is any syntax tree node.
type Node interface {
	Position() Pos
}

type File struct {
	Decls []Node // *VarDecl or *FnProto
}

// VarDecl is `const name: T = init`.
type VarDecl struct {
	Type    Node
	Init    Node
	Name    string
	Pos     Pos
	Mutable bool
	Public  bool
}

// FnProto is a function prototype, either a top-level declaration or a
// function type inside another expression.
type FnProto struct {
	Return   Node
	Params   []*Param
	Name     string
	Library  string
	Pos      Pos
	Extern   bool
	Public   bool
	Variadic bool
}

type Param struct {
	Type Node
	Name string
	Pos  Pos
}

type Ident struct {
	Name string
	Pos  Pos
}

type PtrSize uint8

const (
	PtrOne PtrSize = iota
	PtrMany
	PtrSlice
	PtrC
)

// PointerType covers `*T`, `[*]T`, `[*c]T`, `[*:S]T`, `[]T` and `[:S]T`.
type PointerType struct {
	Elem     Node
	Sentinel *NumberLit
	Pos      Pos
	Size     PtrSize
	Const    bool
	Volatile bool
}

type Optional struct {
	Elem Node
	Pos  Pos
}

type ArrayType struct {
	Len  *NumberLit
	Elem Node
	Pos  Pos
}

// Container is `extern struct { ... }` and its union, enum, opaque and
// packed relatives. Layout is "" when no qualifier was written.
type Container struct {
	Fields  []*Field
	Layout  string
	Keyword string
	Pos     Pos
}

// Field is one container member. Type is nil for bare enum members.
type Field struct {
	Type Node
	Name string
	Pos  Pos
}

type NumberLit struct {
	Value string
	Pos   Pos
}

type StringLit struct {
	Value string
	Pos   Pos
}

func (n *VarDecl) Position() Pos     { return n.Pos }
func (n *FnProto) Position() Pos     { return n.Pos }
func (n *Param) Position() Pos       { return n.Pos }
func (n *Ident) Position() Pos       { return n.Pos }
func (n *PointerType) Position() Pos { return n.Pos }
func (n *Optional) Position() Pos    { return n.Pos }
func (n *ArrayType) Position() Pos   { return n.Pos }
func (n *Container) Position() Pos   { return n.Pos }
func (n *Field) Position() Pos       { return n.Pos }
func (n *NumberLit) Position() Pos   { return n.Pos }
func (n *StringLit) Position() Pos   { return n.Pos }

// Kind names a node for diagnostics.
func Kind(n Node) string {
	switch v := n.(type) {
	case *VarDecl:
		if v.Mutable {
			return "var declaration"
		}
		return "const declaration"
	case *FnProto:
		return "function prototype"
	case *Param:
		return "parameter"
	case *Ident:
		return "identifier"
	case *PointerType:
		return "pointer type"
	case *Optional:
		return "optional type"
	case *ArrayType:
		return "array type"
	case *Container:
		return v.Keyword + " declaration"
	case *Field:
		return "container field"
	case *NumberLit:
		return "number literal"
	case *StringLit:
		return "string literal"
	case nil:
		return "nothing"
	}
	return "unknown node"
}
