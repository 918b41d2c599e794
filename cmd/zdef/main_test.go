package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExecuteExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.zdef")
	if err := os.WriteFile(good, []byte("const P = extern struct { x: i32 };\nfn f(p: *const P) void;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.zdef")
	if err := os.WriteFile(bad, []byte("const P = extern struct { x: i32 ;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no_input", nil, 1},
		{"unknown_flag", []string{"-nope"}, 2},
		{"bad_pointer_size", []string{"-e", "i32", "-ptr", "3"}, 1},
		{"expression", []string{"-e", "[*:0]const u8", "-ptr", "4"}, 0},
		{"expression_wit", []string{"-e", "u16", "-wit"}, 0},
		{"syntax_error", []string{"-e", "[*:"}, 1},
		{"file", []string{"-f", good}, 0},
		{"file_with_error", []string{"-f", bad}, 1},
		{"missing_file", []string{"-f", filepath.Join(dir, "absent.zdef")}, 1},
		{"verbose_failure_returns", []string{"-v", "-e", "[*:"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := execute(tt.args); got != tt.want {
				t.Errorf("execute(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
