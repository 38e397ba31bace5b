package expand

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	macro "github.com/BrunoBonacci/clojure-simple-macro"
)

// Head symbols with special meaning inside templates. A reader producing
// trees for this engine encodes the escape notation as plain list forms with
// these heads (see package sexplang).
const (
	SymQuote         = "quote"
	SymSyntaxQuote   = "syntax-quote"
	SymUnquote       = "unquote"
	SymUnquoteSplice = "unquote-splicing"
	SymDo            = "do"
	AutoGensymMarker = "#"
)

// expansion is the context of one macro-expansion call: the argument
// bindings, the rename table for auto-gensym symbols, and the allocator
// handle. A fresh context is created per call to Expand1 and never shared,
// which is what makes two expansions of the same macro produce distinct
// renamings.
type expansion struct {
	def      *MacroDef
	bindings map[string]macro.Node // formal parameter name ⇒ argument node
	renames  map[string]macro.Node // auto-gensym name ⇒ fresh symbol
	gensym   *macro.Gensym
}

// bind creates an expansion context for a call's arguments. Fixed parameters
// bind in order; a variadic parameter binds to the list of all remaining
// arguments, possibly empty.
func bind(def *MacroDef, args []macro.Node, gensym *macro.Gensym) (*expansion, error) {
	if len(args) < len(def.Params) {
		return nil, &ArityMismatchError{
			Name:        def.Name,
			ExpectedMin: len(def.Params),
			Got:         len(args),
		}
	}
	bindings := make(map[string]macro.Node, len(def.Params)+1)
	for i, param := range def.Params {
		bindings[param] = args[i]
	}
	rest := args[len(def.Params):]
	if def.VarArg != "" {
		bindings[def.VarArg] = macro.List(rest...)
	} else if len(rest) > 0 {
		tracer().Debugf("macro '%s' ignores %d surplus argument(s)", def.Name, len(rest))
	}
	return &expansion{
		def:      def,
		bindings: bindings,
		renames:  make(map[string]macro.Node),
		gensym:   gensym,
	}, nil
}

// Expand materializes the macro's body template under this context.
func (x *expansion) Expand() (macro.Node, error) {
	return x.build(x.def.Body, 0)
}

// build is the recursive descent over a template tree. depth counts
// syntax-quote nesting: escapes resolve at depth 1; at depth 0 the node is
// ordinary (non-template) code and copied verbatim.
func (x *expansion) build(tmpl macro.Node, depth int) (macro.Node, error) {
	switch tmpl.Type() {
	case macro.SymbolType:
		if depth == 0 {
			return tmpl, nil
		}
		return x.buildSymbol(tmpl), nil
	case macro.ListType:
		return x.buildList(tmpl, depth)
	default:
		// literals and the zero node are opaque to expansion
		return tmpl, nil
	}
}

// buildSymbol applies the hygiene rules to a symbol inside a template:
// auto-gensym marked symbols are renamed consistently per expansion, bare
// symbols are qualified with the macro's defining namespace, qualified
// symbols are copied verbatim.
func (x *expansion) buildSymbol(sym macro.Node) macro.Node {
	if isAutoGensym(sym) {
		return x.rename(sym.Name())
	}
	if sym.IsQualified() || x.def.Namespace == "" {
		return sym
	}
	return macro.SymIn(x.def.Namespace, sym.Name())
}

func (x *expansion) buildList(list macro.Node, depth int) (macro.Node, error) {
	head := list.Head()
	if head.Type() == macro.SymbolType && !head.IsQualified() {
		switch head.Name() {
		case SymSyntaxQuote:
			if depth > 0 {
				// nested templates are tracked but not materialized
				return macro.NilNode, &NestedTemplateError{Depth: depth + 1}
			}
			if list.Length() != 2 {
				return macro.NilNode, fmt.Errorf("syntax-quote expects one form: %s", list)
			}
			return x.build(list.Children()[1], depth+1)
		case SymUnquote, SymUnquoteSplice:
			if depth == 0 {
				return macro.NilNode, fmt.Errorf("%s outside of syntax-quote: %s", head.Name(), list)
			}
			if list.Length() != 2 {
				return macro.NilNode, fmt.Errorf("%s expects one form: %s", head.Name(), list)
			}
			resolved := x.resolve(list.Children()[1])
			if head.Name() == SymUnquote {
				return resolved, nil
			}
			if resolved.Type() != macro.ListType && resolved.Type() != macro.SpliceType {
				return macro.NilNode, &MalformedSpliceError{Name: x.def.Name, At: resolved}
			}
			return macro.Splice(resolved.Children()...), nil
		}
	}
	// ordinary list: build children, flattening splices into siblings
	children := make([]macro.Node, 0, list.Length())
	for _, child := range list.Children() {
		built, err := x.build(child, depth)
		if err != nil {
			return macro.NilNode, err
		}
		if built.Type() == macro.SpliceType {
			children = append(children, built.Children()...)
		} else {
			children = append(children, built)
		}
	}
	return macro.List(children...), nil
}

// resolve maps an unquoted form to the node it stands for. A bare symbol
// naming a formal parameter resolves to the argument node bound to it, the
// supplied call-site code as-is: the builder never evaluates. Any other form
// is inserted verbatim and left for the host evaluator.
func (x *expansion) resolve(expr macro.Node) macro.Node {
	if expr.Type() == macro.SymbolType && !expr.IsQualified() {
		if bound, ok := x.bindings[expr.Name()]; ok {
			return bound
		}
	}
	return expr
}

// rename looks a marked symbol up in the rename table, allocating a fresh
// name on first sight. Every occurrence within one expansion maps to the
// same fresh symbol; a separate expansion gets a different one.
func (x *expansion) rename(name string) macro.Node {
	if fresh, ok := x.renames[name]; ok {
		return fresh
	}
	stripped := strings.TrimSuffix(name, AutoGensymMarker)
	fresh := macro.Sym(x.gensym.Next(stripped + "__"))
	tracer().Debugf("macro '%s': renaming %s ⇒ %s", x.def.Name, name, fresh.Name())
	x.renames[name] = fresh
	return fresh
}

// isAutoGensym reports whether a symbol carries the auto-gensym marker: an
// unqualified symbol whose source spelling ends in '#'.
func isAutoGensym(sym macro.Node) bool {
	return sym.Type() == macro.SymbolType && !sym.IsQualified() &&
		len(sym.Name()) > 1 && strings.HasSuffix(sym.Name(), AutoGensymMarker)
}
