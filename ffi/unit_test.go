package ffi

import (
	"testing"

	"go.uber.org/multierr"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/types"
)

const bindings = `
// geometry bindings
const Vec2 = extern struct { x: f32, y: f32 };
const Rect = extern struct {
    min: Vec2,
    max: Vec2,
};
fn area(r: *const Rect) f32;
const Broken = extern struct { a i32 };
fn scale(v: Vec2, by: f32) Vec2;
fn label(r: *const Rect) [*:0]const u8;
`

func TestParseUnit(t *testing.T) {
	e := newEngine(t)
	descs, err := e.ParseUnit(bindings, "geometry.zdef")

	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	want := []string{"Vec2", "Rect", "area", "scale", "label"}
	if len(names) != len(want) {
		t.Fatalf("resolved %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("decl %d = %s, want %s", i, names[i], want[i])
		}
	}

	errs := multierr.Errors(err)
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want the single syntax error", errs)
	}
	syn := errs[0].(*errors.Error)
	if syn.Kind != errors.KindSyntax || syn.Location.File != "geometry.zdef" || syn.Location.Line != 9 {
		t.Errorf("syntax error = %v", syn)
	}

	t.Run("struct_references", func(t *testing.T) {
		rect := descs[1]
		if off, _ := rect.Offset("max"); off != 8 {
			t.Errorf("max offset = %d, want 8", off)
		}
		if rect.ABI.Size != 16 || rect.ABI.Align != 4 {
			t.Errorf("rect size=%d align=%d", rect.ABI.Size, rect.ABI.Align)
		}
		min, _ := rect.Host.Field("min")
		if min != descs[0].Host {
			t.Error("Rect.min should reference the interned Vec2 host type")
		}
	})

	t.Run("functions", func(t *testing.T) {
		scale := descs[3]
		if scale.Host.Return != descs[0].Host {
			t.Error("scale should return Vec2")
		}
		label := descs[4]
		if label.Host.Return.Kind != types.HostString {
			t.Errorf("label return = %s", label.Host.Return)
		}
	})

	t.Run("scope_visible_to_type_expressions", func(t *testing.T) {
		d, err := e.ParseTypeExpression("Rect")
		if err != nil {
			t.Fatal(err)
		}
		if d.Host != descs[1].Host || d.Name != "Rect" {
			t.Errorf("got %v", d)
		}
		if _, ok := e.Symbols().Lookup("Broken"); ok {
			t.Error("broken declarations must not be defined")
		}
	})
}

func TestParseUnitLocations(t *testing.T) {
	e := newEngine(t)
	_, err := e.ParseUnit("const A = extern struct { a: i32 };\nfn f(x: Nope) void;\nconst B = struct { b: u8 };", "lib.zdef")
	if err == nil {
		t.Fatal("expected diagnostics")
	}

	diags := e.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %v", diags)
	}
	tests := []struct {
		kind errors.Kind
		loc  string
	}{
		{errors.KindUnknownType, "lib.zdef:2:1"},
		{errors.KindLayoutConstraint, "lib.zdef:3:1"},
	}
	for i, tt := range tests {
		if diags[i].Kind != tt.kind || diags[i].Location.String() != tt.loc {
			t.Errorf("diag %d = %s at %s, want %s at %s", i, diags[i].Kind, diags[i].Location, tt.kind, tt.loc)
		}
	}
}

func TestParseUnitLaterUnitsSeeEarlierStructs(t *testing.T) {
	e := newEngine(t)
	if _, err := e.ParseUnit("const Header = extern struct { len: u32, kind: u8 };", "a.zdef"); err != nil {
		t.Fatal(err)
	}
	descs, err := e.ParseUnit("fn send(h: *const Header, body: [*]const u8) i32;", "b.zdef")
	if err != nil {
		t.Fatal(err)
	}
	if len(descs) != 1 || !descs[0].IsFunction() {
		t.Fatalf("got %v", descs)
	}
	if descs[0].ABI.Params[0].Child.Kind != types.ShapeStruct {
		t.Error("pointer child should be the Header struct shape")
	}
}
