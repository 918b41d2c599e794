package main

import (
	"strings"
	"testing"

	"github.com/wippyai/zdef/ffi"
)

func TestIsDeclaration(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"i32", false},
		{"[*:0]const u8", false},
		{"*const Point", false},
		{"fn acos(value: f64) f64;", true},
		{"const P = extern struct { x: i32 };", true},
		{"pub const P = extern struct {}", true},
		{"extern \"c\" fn puts(s: [*:0]const u8) i32", true},
		{"u8;", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := isDeclaration(tt.text); got != tt.want {
				t.Errorf("isDeclaration(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRenderStruct(t *testing.T) {
	e := ffi.New(ffi.DefaultOptions())
	d, err := e.ParseDeclaration("const Pair = extern struct { a: i32, b: f64 };", nil, ffi.ModeDeclaration)
	if err != nil {
		t.Fatal(err)
	}

	out := newRenderer(e.PointerSize(), false, true).descriptor(d)
	for _, want := range []string{"struct Pair", "size 16 B, align 8", "offset", "wit   pair = record {"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("unstyled output contains escape sequences")
	}
}

func TestRenderDiagnostics(t *testing.T) {
	e := ffi.New(ffi.DefaultOptions())
	if _, err := e.ParseTypeExpression("NoSuchType"); err != nil {
		t.Fatalf("unknown types fall back, got %v", err)
	}

	out := newRenderer(e.PointerSize(), false, false).diagnostics(e.Diagnostics())
	if !strings.Contains(out, "NoSuchType") {
		t.Errorf("diagnostics = %q", out)
	}
}
