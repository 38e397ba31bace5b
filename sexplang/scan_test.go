package sexplang

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.sexplang")
	defer teardown()
	//
	scan, err := NewScanner("(let [d# 1.5] ; comment\n `(log ~d# ~@more) :key \"str\")")
	if err != nil {
		t.Fatalf(err.Error())
	}
	scan.Error = func(e error) {
		t.Error(e)
	}
	expected := []int{
		LPAREN, ID, LBRACK, ID, NUM, RBRACK,
		SYNTAXQUOTE, LPAREN, ID, UNQUOTE, ID, UNQUOTESPLICE, ID, RPAREN,
		KEYWORD, STRING, RPAREN, EOF,
	}
	for i, want := range expected {
		token := scan.Next()
		t.Logf("token = %q of type %s", token.Lexeme, TokenName(token.Typ))
		if token.Typ != want {
			t.Fatalf("token %d: expected %s, got %s (%q)",
				i, TokenName(want), TokenName(token.Typ), token.Lexeme)
		}
	}
}

func TestScannerLexemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.sexplang")
	defer teardown()
	//
	tests := []struct {
		input string
		typ   int
	}{
		{"default-to", ID},
		{"lib.core/helper", ID},
		{"d#", ID},
		{"&", ID},
		{"+", ID},
		{"-12", NUM},
		{"3.25", NUM},
		{":color", KEYWORD},
		{`"a b c"`, STRING},
		{"~@", UNQUOTESPLICE},
	}
	for _, test := range tests {
		scan, err := NewScanner(test.input)
		if err != nil {
			t.Fatalf(err.Error())
		}
		token := scan.Next()
		if token.Typ != test.typ || token.Lexeme != test.input {
			t.Errorf("expected %q as one %s token, got %q of type %s",
				test.input, TokenName(test.typ), token.Lexeme, TokenName(token.Typ))
		}
		if rest := scan.Next(); rest.Typ != EOF {
			t.Errorf("expected %q to scan as a single token, got trailing %q", test.input, rest.Lexeme)
		}
	}
}

func TestScannerSkipsNoise(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.sexplang")
	defer teardown()
	//
	scan, err := NewScanner("; a comment line\n  ,,, x")
	if err != nil {
		t.Fatalf(err.Error())
	}
	token := scan.Next()
	if token.Typ != ID || token.Lexeme != "x" {
		t.Errorf("expected comments, whitespace and commas to be skipped, got %q", token.Lexeme)
	}
}
