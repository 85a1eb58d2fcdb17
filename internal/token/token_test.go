package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"Object", OBJECT},
		{"method", METHOD},
		{"const", CONST},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"return", RETURN},
		{"throw", THROW},
		{"try", TRY},
		{"catch", CATCH},
		{"finally", FINALLY},
		{"true", TRUE},
		{"false", FALSE},
		{"new", NEW},
		{"import", IMPORT},
		{"this", THIS},
		{"notAKeyword", IDENT},
		{"myVariable123", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupIdent(tt.ident); got != tt.want {
				t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
			}
		})
	}
}

func TestNoRangeOperator(t *testing.T) {
	// The language has no native range operator; ".." must not resolve to
	// a keyword or operator kind distinct from its constituent DOT tokens.
	if _, ok := keywords[".."]; ok {
		t.Error("\"..\" unexpectedly registered as a keyword")
	}
}
