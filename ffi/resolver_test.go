package ffi

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/layout"
	"github.com/wippyai/zdef/types"
)

func TestPointers(t *testing.T) {
	tests := []struct {
		text     string
		host     types.HostKind
		name     string
		isConst  bool
		nullTerm bool
	}{
		{"[*:0]const u8", types.HostString, "string", true, true},
		{"[:0]const u8", types.HostString, "string", true, true},
		{"[*:0x0]const i8", types.HostString, "string", true, true},
		{"[*:0]u8", types.HostHandle, "unknown", false, true},
		{"[*:0]const u16", types.HostHandle, "unknown", true, true},
		{"[*:1]const u8", types.HostHandle, "unknown", true, false},
		{"[*]const u8", types.HostHandle, "unknown", true, false},
		{"*const u8", types.HostHandle, "unknown", true, false},
		{"*i32", types.HostHandle, "unknown", false, false},
		{"[*c]f64", types.HostHandle, "unknown", false, false},
		{"**u8", types.HostHandle, "unknown", false, false},
	}
	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := e.ParseTypeExpression(tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if d.Host.Kind != tt.host {
				t.Errorf("host = %s, want %s", d.Host.Kind, tt.host)
			}
			if d.Name != tt.name {
				t.Errorf("name = %q, want %q", d.Name, tt.name)
			}
			if d.ABI.Kind != types.ShapePointer || d.ABI.PtrSize != types.PtrC {
				t.Errorf("abi = %+v, want C pointer", d.ABI)
			}
			if d.ABI.Const != tt.isConst || d.ABI.NullTerminated != tt.nullTerm {
				t.Errorf("const=%v nullterm=%v", d.ABI.Const, d.ABI.NullTerminated)
			}
			if d.ABI.Child == nil {
				t.Error("child shape must be retained")
			}
		})
	}
}

func TestPointerToUnknownKeepsChild(t *testing.T) {
	e := newEngine(t)
	d, err := e.ParseTypeExpression("*Opaque")
	if err != nil {
		t.Fatal(err)
	}
	if d.Host.Kind != types.HostHandle || d.ABI.Child.Kind != types.ShapeVoid {
		t.Errorf("got %s / %s", d.Host, d.ABI)
	}
	if countKind(e.Diagnostics(), errors.KindUnknownType) != 1 {
		t.Error("expected unknown type diagnostic")
	}
}

func TestStructLayout(t *testing.T) {
	e := newEngine(t)

	t.Run("i32_f64", func(t *testing.T) {
		d, err := e.ParseTypeExpression("extern struct { a: i32, b: f64 }")
		if err != nil {
			t.Fatal(err)
		}
		a, _ := d.ABI.Field("a")
		b, _ := d.ABI.Field("b")
		if a.Offset != 0 || b.Offset != 8 {
			t.Errorf("offsets a=%d b=%d, want 0 and 8", a.Offset, b.Offset)
		}
		if layout.NewCalculator(0).Calculate(a.Shape).Size != 4 {
			t.Error("a should be 4 bytes")
		}
		if ha, _ := d.Host.Field("a"); ha.Kind != types.HostInteger {
			t.Errorf("host a = %s", ha)
		}
		if hb, _ := d.Host.Field("b"); hb.Kind != types.HostFloat {
			t.Errorf("host b = %s", hb)
		}
		if d.ABI.Size != 16 || d.ABI.Align != 8 || d.ABI.Layout != types.LayoutExtern {
			t.Errorf("size=%d align=%d layout=%s", d.ABI.Size, d.ABI.Align, d.ABI.Layout)
		}
		if off, ok := d.Offset("b"); !ok || off != 8 {
			t.Errorf("Offset(b) = %d, %v", off, ok)
		}
	})

	t.Run("string_field", func(t *testing.T) {
		d, err := e.ParseDeclaration("const Msg = extern struct { msg: [*:0]const u8, id: i32 };", nil, ModeDeclaration)
		if err != nil {
			t.Fatal(err)
		}
		if d.Name != "Msg" || !d.IsStruct() {
			t.Fatalf("got %v", d)
		}
		if h, _ := d.Host.Field("msg"); h.Kind != types.HostString {
			t.Errorf("msg host = %s", h)
		}
		if h, _ := d.Host.Field("id"); h.Kind != types.HostInteger {
			t.Errorf("id host = %s", h)
		}
		if off, _ := d.Offset("msg"); off != 0 {
			t.Errorf("msg offset = %d", off)
		}
		if off, _ := d.Offset("id"); off != layout.PlatformPointerSize {
			t.Errorf("id offset = %d, want %d", off, layout.PlatformPointerSize)
		}
	})

	t.Run("field_order", func(t *testing.T) {
		d, err := e.ParseTypeExpression("extern struct { z: u8, a: u16, m: u32, b: u8 }")
		if err != nil {
			t.Fatal(err)
		}
		want := []types.FieldOffset{{Name: "z", Offset: 0}, {Name: "a", Offset: 2}, {Name: "m", Offset: 4}, {Name: "b", Offset: 8}}
		for i, fo := range d.Offsets {
			if fo != want[i] {
				t.Errorf("field %d = %+v, want %+v", i, fo, want[i])
			}
			if d.Host.Fields[i].Name != want[i].Name || d.ABI.Fields[i].Name != want[i].Name {
				t.Errorf("field %d name order broken", i)
			}
		}
		if d.ABI.Size != 12 || d.ABI.Align != 4 {
			t.Errorf("size=%d align=%d, want 12 and 4", d.ABI.Size, d.ABI.Align)
		}
	})

	t.Run("nested", func(t *testing.T) {
		d, err := e.ParseTypeExpression("extern struct { tag: u8, inner: extern struct { x: u8, y: f64 } }")
		if err != nil {
			t.Fatal(err)
		}
		if off, _ := d.Offset("inner"); off != 8 {
			t.Errorf("inner offset = %d, want 8", off)
		}
		inner, _ := d.Host.Field("inner")
		if inner.Kind != types.HostStruct || len(inner.Fields) != 2 {
			t.Errorf("inner host = %s", inner)
		}
		if d.ABI.Size != 24 {
			t.Errorf("size = %d, want 24", d.ABI.Size)
		}
	})

	t.Run("empty", func(t *testing.T) {
		d, err := e.ParseTypeExpression("extern struct {}")
		if err != nil {
			t.Fatal(err)
		}
		if d.ABI.Size != 0 || len(d.Offsets) != 0 {
			t.Errorf("got %s", d.ABI)
		}
	})

	t.Run("field_names_backfilled", func(t *testing.T) {
		d, err := e.ParseTypeExpression("extern struct { p: *u8, n: usize }")
		if err != nil {
			t.Fatal(err)
		}
		if d.ABI.Fields[0].Name != "p" || d.ABI.Fields[1].Name != "n" {
			t.Errorf("fields = %+v", d.ABI.Fields)
		}
	})

	t.Run("duplicate_field", func(t *testing.T) {
		e := newEngine(t)
		d, err := e.ParseTypeExpression("extern struct { a: i32, a: i32 }")
		if err != nil || d == nil {
			t.Fatalf("duplicate field should not fail the struct: %v", err)
		}
		if countKind(e.Diagnostics(), errors.KindUnsupported) != 1 {
			t.Errorf("diagnostics = %v", e.Diagnostics())
		}
	})
}

func TestStructPointerSize(t *testing.T) {
	e := New(Options{PointerSize: 4})
	d, err := e.ParseTypeExpression("extern struct { p: *u8, n: usize, x: f64 }")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]uint32{"p": 0, "n": 4, "x": 8}
	for name, off := range want {
		if got, _ := d.Offset(name); got != off {
			t.Errorf("%s offset = %d, want %d", name, got, off)
		}
	}
	if n, _ := d.ABI.Field("n"); n.Shape.Bits != 32 {
		t.Errorf("usize bits = %d on a 32-bit target", n.Shape.Bits)
	}
}

func TestLayoutConstraint(t *testing.T) {
	tests := []string{
		"extern union { a: i32 }",
		"struct { a: i32 }",
		"packed struct { a: u8, b: u32 }",
		"extern enum { a: i32 }",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			e := newEngine(t)
			d, err := e.ParseTypeExpression(text)
			if err != nil {
				t.Fatalf("layout should still be computed: %v", err)
			}
			if d == nil || !d.IsStruct() {
				t.Fatalf("got %v", d)
			}
			diags := e.Diagnostics()
			if len(diags) != 1 || diags[0].Kind != errors.KindLayoutConstraint {
				t.Errorf("diagnostics = %v", diags)
			}
		})
	}

	t.Run("declaration", func(t *testing.T) {
		e := newEngine(t)
		d, err := e.ParseDeclaration("const U = extern union { a: i32 };", nil, ModeDeclaration)
		if err != nil || d.Name != "U" {
			t.Fatalf("got %v, %v", d, err)
		}
		diags := e.Diagnostics()
		if len(diags) != 1 || len(diags[0].Path) != 1 || diags[0].Path[0] != "U" {
			t.Errorf("diagnostics = %v", diags)
		}
	})
}

func TestStructFailurePropagates(t *testing.T) {
	e := newEngine(t)
	d, err := e.ParseTypeExpression("extern struct { a: i32, b: [4]u8, c: f64 }")
	if d != nil {
		t.Fatal("a failing field must fail the struct")
	}
	var de *errors.Error
	if !stderrors.As(err, &de) || de.Kind != errors.KindUnsupported {
		t.Fatalf("err = %v", err)
	}
	if len(de.Path) != 1 || de.Path[0] != "b" {
		t.Errorf("path = %v, want [b]", de.Path)
	}
}

func TestUnknownFieldTypeContinues(t *testing.T) {
	e := newEngine(t)
	d, err := e.ParseTypeExpression("extern struct { a: Foo, b: i32, c: Bar }")
	if err != nil {
		t.Fatal(err)
	}
	if off, _ := d.Offset("b"); off != 0 {
		t.Errorf("void field takes no space, b offset = %d", off)
	}
	if countKind(e.Diagnostics(), errors.KindUnknownType) != 2 {
		t.Errorf("both unknown names should be reported: %v", e.Diagnostics())
	}
}

func TestFunctions(t *testing.T) {
	t.Run("acos", func(t *testing.T) {
		e := newEngine(t)
		d, err := e.ParseDeclaration("fn acos(value: f64) f64;", nil, ModeDeclaration)
		if err != nil {
			t.Fatal(err)
		}
		if d.Name != "acos" || !d.IsFunction() {
			t.Fatalf("got %v", d)
		}
		if len(d.Host.Params) != 1 || d.Host.Params[0].Name != "value" || d.Host.Params[0].Type.Kind != types.HostFloat {
			t.Errorf("params = %s", d.Host)
		}
		if d.Host.Return.Kind != types.HostFloat {
			t.Errorf("return = %s", d.Host.Return)
		}
		if d.ABI.CallConv != types.CallConvC || d.ABI.Variadic {
			t.Errorf("abi = %s", d.ABI)
		}
		if len(d.ABI.Params) != 1 || d.ABI.Params[0].Kind != types.ShapeFloat || d.ABI.Return.Bits != 64 {
			t.Errorf("abi params = %s", d.ABI)
		}
		if d.ID == 0 {
			t.Error("function descriptors carry an id")
		}
		if len(e.Diagnostics()) != 0 {
			t.Errorf("diagnostics = %v", e.Diagnostics())
		}
	})

	t.Run("void_return", func(t *testing.T) {
		e := newEngine(t)
		d, err := e.ParseDeclaration(`pub extern "c" fn reset(ctx: *anyopaque_t);`, nil, ModeDeclaration)
		if err != nil {
			t.Fatal(err)
		}
		if d.Host.Return.Kind != types.HostVoid || d.ABI.Return.Kind != types.ShapeVoid {
			t.Errorf("return = %s / %s", d.Host.Return, d.ABI.Return)
		}
	})

	t.Run("ids", func(t *testing.T) {
		e := newEngine(t)
		a, _ := e.ParseDeclaration("fn sin(x: f64) f64;", nil, ModeDeclaration)
		b, _ := e.ParseDeclaration("fn cos(x: f64) f64;", nil, ModeDeclaration)
		if a.ID == b.ID || b.ID <= a.ID {
			t.Errorf("ids %d, %d should be unique and increasing", a.ID, b.ID)
		}
		if a.Host != b.Host {
			t.Error("equal signatures share an interned host type")
		}
	})

	t.Run("missing_names", func(t *testing.T) {
		e := newEngine(t)
		d, err := e.ParseDeclaration("fn (i32, b: f64) void;", nil, ModeDeclaration)
		if err != nil {
			t.Fatalf("missing names are recoverable: %v", err)
		}
		if d.Name != "unknown" {
			t.Errorf("name = %q", d.Name)
		}
		if d.Host.Params[0].Name != "$" || d.Host.Params[1].Name != "b" {
			t.Errorf("params = %s", d.Host)
		}
		diags := e.Diagnostics()
		if countKind(diags, errors.KindMissingName) != 2 {
			t.Fatalf("diagnostics = %v", diags)
		}
		if diags[1].Detail != "parameter 1 must have a name" {
			t.Errorf("detail = %q", diags[1].Detail)
		}
	})

	t.Run("variadic", func(t *testing.T) {
		e := newEngine(t)
		d, err := e.ParseDeclaration("fn printf(fmt: [*:0]const u8, ...) i32;", nil, ModeDeclaration)
		if err != nil {
			t.Fatal(err)
		}
		if d.ABI.Variadic {
			t.Error("shape must stay non-variadic")
		}
		if countKind(e.Diagnostics(), errors.KindUnsupported) != 1 {
			t.Errorf("diagnostics = %v", e.Diagnostics())
		}
		if p, _ := d.Host.Param("fmt"); p.Kind != types.HostString {
			t.Errorf("fmt = %s", p)
		}
	})

	t.Run("failing_return", func(t *testing.T) {
		e := newEngine(t)
		d, err := e.ParseDeclaration("fn f() [2]u8;", nil, ModeDeclaration)
		if d != nil || err == nil {
			t.Errorf("got %v, %v", d, err)
		}
	})

	t.Run("struct_param", func(t *testing.T) {
		e := newEngine(t)
		e.Symbols().Define("Point", mustStruct(t, e, "const Point = extern struct { x: i32, y: i32 };"))
		d, err := e.ParseDeclaration("fn dist(a: Point, b: *const Point) f64;", nil, ModeDeclaration)
		if err != nil {
			t.Fatal(err)
		}
		a, _ := d.Host.Param("a")
		if a.Kind != types.HostStruct || len(a.Fields) != 2 {
			t.Errorf("a = %s", a)
		}
		if d.ABI.Params[0].Size != 8 {
			t.Errorf("struct param size = %d", d.ABI.Params[0].Size)
		}
	})
}

func mustStruct(t *testing.T, e *Engine, src string) *types.Descriptor {
	t.Helper()
	d, err := e.ParseDeclaration(src, nil, ModeDeclaration)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
