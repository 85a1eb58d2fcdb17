package lexer

import (
	"testing"

	"github.com/o2l-lang/o2l/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := New(src)
	var out []token.Kind
	for {
		tok := l.NextToken()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

func wantKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	want = append(want, token.EOF)
	got := kinds(t, src)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch for %q: got %v, want %v", src, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d mismatch for %q: got %s, want %s", i, src, got[i], want[i])
		}
	}
}

func TestNumericLiteralSuffixes(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.INT},
		{"42l", token.LONG},
		{"42L", token.LONG},
		{"3.5", token.DOUBLE},
		{"3.5f", token.FLOAT},
		{"3.5F", token.FLOAT},
		{"3.5d", token.DOUBLE},
		{"3.5D", token.DOUBLE},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l := New(tt.src)
			tok := l.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("NextToken(%q).Kind = %s, want %s", tt.src, tok.Kind, tt.kind)
			}
		})
	}
}

func TestLineComment(t *testing.T) {
	wantKinds(t, "1 # trailing comment\n2", token.INT, token.NEWLINE, token.INT)
}

func TestBlockComment(t *testing.T) {
	wantKinds(t, "1 ### a block\ncomment ### 2", token.INT, token.INT)
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\"d"`)
	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("got kind %s, want STRING", tok.Kind)
	}
	want := "a\nb\tc\"d"
	if tok.Lexeme != want {
		t.Errorf("lexeme = %q, want %q", tok.Lexeme, want)
	}
}

func TestAnnotations(t *testing.T) {
	wantKinds(t, "@external @import", token.AT_EXTERNAL, token.AT_IMPORT)
}

func TestIdentifierWithUnderscoreAndDigits(t *testing.T) {
	wantKinds(t, "_foo bar123 Baz_Qux", token.IDENT, token.IDENT, token.IDENT)
}

func TestOperators(t *testing.T) {
	wantKinds(t, "== != <= >= && || . $",
		token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.AND, token.OR, token.DOT, token.DOLLAR)
}

func TestNoRangeOperatorLexed(t *testing.T) {
	// "1..9" lexes as INT DOT DOT INT: two adjacent DOT tokens, not a
	// dedicated range token (the language has no range operator).
	wantKinds(t, "1..9", token.INT, token.DOT, token.DOT, token.INT)
}
