package token

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"scalar",
			"i32",
			[]Token{{"i32", Ident, 1, 1}},
		},
		{
			"var_decl",
			"const x: u8;",
			[]Token{
				{"const", Ident, 1, 1}, {"x", Ident, 1, 7}, {":", Colon, 1, 8},
				{"u8", Ident, 1, 10}, {";", Semicolon, 1, 12},
			},
		},
		{
			"sentinel_pointer",
			"[*:0]const u8",
			[]Token{
				{"[", LBracket, 1, 1}, {"*", Star, 1, 2}, {":", Colon, 1, 3}, {"0", Number, 1, 4},
				{"]", RBracket, 1, 5}, {"const", Ident, 1, 6}, {"u8", Ident, 1, 12},
			},
		},
		{
			"newlines",
			"fn\n  acos",
			[]Token{{"fn", Ident, 1, 1}, {"acos", Ident, 2, 3}},
		},
		{
			"comment",
			"i32 // trailing\nf64",
			[]Token{{"i32", Ident, 1, 1}, {"f64", Ident, 2, 1}},
		},
		{
			"string",
			`extern "c" fn`,
			[]Token{{"extern", Ident, 1, 1}, {"c", String, 1, 8}, {"fn", Ident, 1, 12}},
		},
		{
			"ellipsis",
			"(a: i32, ...)",
			[]Token{
				{"(", LParen, 1, 1}, {"a", Ident, 1, 2}, {":", Colon, 1, 3}, {"i32", Ident, 1, 5},
				{",", Comma, 1, 8}, {"...", Ellipsis, 1, 10}, {")", RParen, 1, 13},
			},
		},
		{
			"hex_number",
			"[0x10]u8",
			[]Token{{"[", LBracket, 1, 1}, {"0x10", Number, 1, 2}, {"]", RBracket, 1, 6}, {"u8", Ident, 1, 7}},
		},
		{
			"optional",
			"?*T",
			[]Token{{"?", Question, 1, 1}, {"*", Star, 1, 2}, {"T", Ident, 1, 3}},
		},
		{
			"illegal",
			"i32 # x",
			[]Token{{"i32", Ident, 1, 1}, {"#", Illegal, 1, 5}, {"x", Ident, 1, 7}},
		},
		{
			"lone_dot",
			".C",
			[]Token{{".", Illegal, 1, 1}, {"C", Ident, 1, 2}},
		},
		{
			"unterminated_string",
			`extern "c`,
			[]Token{{"extern", Ident, 1, 1}, {`"c`, Illegal, 1, 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	if Semicolon.String() != "';'" {
		t.Errorf("Semicolon = %s", Semicolon)
	}
	if Type(99).String() != "unknown" {
		t.Error("out of range type should be unknown")
	}
}
