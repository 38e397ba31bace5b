package sexplang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types produced by the scanner.
const (
	EOF int = iota
	ID
	NUM
	STRING
	KEYWORD
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	QUOTE
	SYNTAXQUOTE
	UNQUOTE
	UNQUOTESPLICE
)

var tokenNames = map[int]string{
	EOF: "EOF", ID: "ID", NUM: "NUM", STRING: "STRING", KEYWORD: "KEYWORD",
	LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]",
	QUOTE: "'", SYNTAXQUOTE: "`", UNQUOTE: "~", UNQUOTESPLICE: "~@",
}

// TokenName returns a printable name for a token type.
func TokenName(typ int) string {
	if name, ok := tokenNames[typ]; ok {
		return name
	}
	return "<unknown token>"
}

// Token is the scanner's output unit.
type Token struct {
	Typ    int
	Lexeme string
	Pos    int // byte offset into the input
}

var lexer *lexmachine.Lexer
var lexerErr error

var initOnce sync.Once // monitors one-time creation of the lexer DFA

// Symbols may contain the usual Lisp identifier characters, a '/' separating
// a namespace part, and a trailing '#' auto-gensym marker. The reader splits
// namespaces and interprets the marker; the scanner keeps lexemes verbatim.
func initLexer() {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`;[^\n]*\n?`), skip) // comments up to end of line
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), skip)
		lexer.Add([]byte(`~@`), makeToken(UNQUOTESPLICE))
		lexer.Add([]byte(`~`), makeToken(UNQUOTE))
		lexer.Add([]byte("`"), makeToken(SYNTAXQUOTE))
		lexer.Add([]byte(`'`), makeToken(QUOTE))
		lexer.Add([]byte(`\(`), makeToken(LPAREN))
		lexer.Add([]byte(`\)`), makeToken(RPAREN))
		lexer.Add([]byte(`\[`), makeToken(LBRACK))
		lexer.Add([]byte(`\]`), makeToken(RBRACK))
		lexer.Add([]byte(`\"[^"]*\"`), makeToken(STRING))
		lexer.Add([]byte(`:([a-z]|[A-Z]|[0-9]|_|-)+`), makeToken(KEYWORD))
		lexer.Add([]byte(`[\+\-]?[0-9]+(\.[0-9]+)?`), makeToken(NUM))
		lexer.Add([]byte(
			`([a-z]|[A-Z]|_|&|\+|-|\*|/|=|<|>|!|\?|\.)`+
				`([a-z]|[A-Z]|[0-9]|_|&|\+|-|\*|/|=|<|>|!|\?|\.)*\#?`),
			makeToken(ID))
		lexerErr = lexer.Compile()
	})
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}

// Scanner tokenizes one input string.
type Scanner struct {
	scanner *lexmachine.Scanner
	Error   func(error) // handler for scanning errors, defaults to tracing
}

// NewScanner creates a scanner for an input. Compiling the token DFA happens
// once per process; a compile failure surfaces on every call.
func NewScanner(input string) (*Scanner, error) {
	initLexer()
	if lexerErr != nil {
		return nil, lexerErr
	}
	s, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: s, Error: logError}, nil
}

func logError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// Next returns the next token, or a token of type EOF at the end of the
// input. Unrecognized input is reported to the error handler and skipped.
func (s *Scanner) Next() Token {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		s.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
		}
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return Token{Typ: EOF}
	}
	token := tok.(*lexmachine.Token)
	return Token{
		Typ:    token.Type,
		Lexeme: string(token.Lexeme),
		Pos:    token.TC,
	}
}
