package sexplang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	macro "github.com/BrunoBonacci/clojure-simple-macro"
	"github.com/BrunoBonacci/clojure-simple-macro/expand"
)

// Reader reads a sequence of forms from an input string.
type Reader struct {
	scan   *Scanner
	tok    Token
	peeked bool
}

// NewReader creates a reader over an input string.
func NewReader(input string) (*Reader, error) {
	scan, err := NewScanner(input)
	if err != nil {
		return nil, err
	}
	return &Reader{scan: scan}, nil
}

// ReadString reads exactly one form from the input. Trailing input after the
// form is an error.
func ReadString(input string) (macro.Node, error) {
	r, err := NewReader(input)
	if err != nil {
		return macro.NilNode, err
	}
	form, err := r.Read()
	if err != nil {
		return macro.NilNode, err
	}
	if tok := r.peek(); tok.Typ != EOF {
		return macro.NilNode, fmt.Errorf("trailing input at offset %d: %q", tok.Pos, tok.Lexeme)
	}
	return form, nil
}

// ReadAll reads all forms from the input, in order.
func ReadAll(input string) ([]macro.Node, error) {
	r, err := NewReader(input)
	if err != nil {
		return nil, err
	}
	var forms []macro.Node
	for {
		form, err := r.Read()
		if err == io.EOF {
			return forms, nil
		}
		if err != nil {
			return forms, err
		}
		forms = append(forms, form)
	}
}

// Read returns the next form, or io.EOF after the last one.
func (r *Reader) Read() (macro.Node, error) {
	tok := r.next()
	if tok.Typ == EOF {
		return macro.NilNode, io.EOF
	}
	return r.form(tok)
}

func (r *Reader) next() Token {
	if r.peeked {
		r.peeked = false
		return r.tok
	}
	return r.scan.Next()
}

func (r *Reader) peek() Token {
	if !r.peeked {
		r.tok = r.scan.Next()
		r.peeked = true
	}
	return r.tok
}

func (r *Reader) form(tok Token) (macro.Node, error) {
	switch tok.Typ {
	case LPAREN:
		return r.list(RPAREN)
	case LBRACK:
		return r.list(RBRACK)
	case QUOTE:
		return r.wrapped(expand.SymQuote)
	case SYNTAXQUOTE:
		return r.wrapped(expand.SymSyntaxQuote)
	case UNQUOTE:
		return r.wrapped(expand.SymUnquote)
	case UNQUOTESPLICE:
		return r.wrapped(expand.SymUnquoteSplice)
	case NUM:
		return number(tok)
	case STRING:
		return macro.Lit(strings.Trim(tok.Lexeme, `"`)), nil
	case KEYWORD:
		return macro.Lit(macro.Keyword(tok.Lexeme[1:])), nil
	case ID:
		return symbol(tok), nil
	case RPAREN, RBRACK:
		return macro.NilNode, fmt.Errorf("unbalanced '%s' at offset %d", tok.Lexeme, tok.Pos)
	}
	return macro.NilNode, fmt.Errorf("unexpected token %s at offset %d", TokenName(tok.Typ), tok.Pos)
}

func (r *Reader) list(closing int) (macro.Node, error) {
	var children []macro.Node
	for {
		tok := r.next()
		if tok.Typ == closing {
			return macro.List(children...), nil
		}
		if tok.Typ == EOF {
			return macro.NilNode, fmt.Errorf("unexpected end of input, '%s' missing", TokenName(closing))
		}
		child, err := r.form(tok)
		if err != nil {
			return macro.NilNode, err
		}
		children = append(children, child)
	}
}

// wrapped reads the next form f and returns (head f), which is how the
// quoting prefixes desugar.
func (r *Reader) wrapped(head string) (macro.Node, error) {
	tok := r.next()
	if tok.Typ == EOF {
		return macro.NilNode, fmt.Errorf("unexpected end of input after %s", head)
	}
	form, err := r.form(tok)
	if err != nil {
		return macro.NilNode, err
	}
	return macro.List(macro.Sym(head), form), nil
}

func number(tok Token) (macro.Node, error) {
	if strings.ContainsRune(tok.Lexeme, '.') {
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return macro.NilNode, fmt.Errorf("malformed number %q at offset %d", tok.Lexeme, tok.Pos)
		}
		return macro.Lit(f), nil
	}
	i, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return macro.NilNode, fmt.Errorf("malformed number %q at offset %d", tok.Lexeme, tok.Pos)
	}
	return macro.Lit(i), nil
}

// symbol reads an ID lexeme into a symbol node, splitting a namespace part
// at the first inner '/'. The lexemes nil, true and false read as literals.
func symbol(tok Token) macro.Node {
	lex := tok.Lexeme
	switch lex {
	case "nil":
		return macro.Lit(nil)
	case "true":
		return macro.Lit(true)
	case "false":
		return macro.Lit(false)
	case "/": // the division symbol, not a separator
		return macro.Sym(lex)
	}
	if idx := strings.Index(lex, "/"); idx > 0 && idx < len(lex)-1 {
		return macro.SymIn(lex[:idx], lex[idx+1:])
	}
	return macro.Sym(lex)
}
