package expand

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	macro "github.com/BrunoBonacci/clojure-simple-macro"
)

// DefaultMaxDepth is the default bound for fixpoint expansion. A well-formed
// macro library stays far below it; hitting the bound almost always means a
// macro expands into a call of itself.
const DefaultMaxDepth = 64

// Expander rewrites call sites using a macro registry. Expanders are
// stateless apart from their configuration; a single Expander may serve
// concurrent expansion calls, the shared gensym counter being the only
// point of coordination.
type Expander struct {
	reg      *Registry
	gensym   *macro.Gensym
	maxDepth int
}

// Option configures an Expander.
type Option func(*Expander)

// MaxDepth bounds fixpoint expansion. Values < 1 are ignored.
func MaxDepth(n int) Option {
	return func(e *Expander) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// Allocator injects a gensym allocator, replacing the process-wide default.
// Mainly useful for tests which need reproducible renaming.
func Allocator(g *macro.Gensym) Option {
	return func(e *Expander) {
		if g != nil {
			e.gensym = g
		}
	}
}

// NewExpander creates an expander over a registry.
func NewExpander(reg *Registry, opts ...Option) *Expander {
	e := &Expander{
		reg:      reg,
		gensym:   macro.GlobalAllocator,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand1 performs a single rewrite step on a call site. The call must be a
// list whose head is a symbol naming a registered macro; otherwise an
// UnknownMacroError is returned and the host should treat the node as
// ordinary code. Arguments are bound unevaluated; the returned node is the
// materialized body template, which may itself contain further macro calls.
//
// If the body template's top level produced a multi-form splice, the forms
// are wrapped in an explicit (do …) sequencing form, in order.
func (e *Expander) Expand1(call macro.Node) (macro.Node, error) {
	name, ok := macroHead(call)
	if !ok {
		return call, &UnknownMacroError{Call: call}
	}
	def, found := e.reg.Lookup(name)
	if !found {
		return call, &UnknownMacroError{Name: name, Call: call}
	}
	x, err := bind(def, call.Tail(), e.gensym)
	if err != nil {
		return call, err
	}
	result, err := x.Expand()
	if err != nil {
		return call, err
	}
	if result.Type() == macro.SpliceType {
		children := append([]macro.Node{macro.Sym(SymDo)}, result.Children()...)
		result = macro.List(children...)
	}
	tracer().Debugf("expand-1 %s ⇒ %s", call, result)
	return result, nil
}

// ExpandAll rewrites a node to its fixpoint: the node is expanded outermost
// call first, then the children of the result are expanded recursively,
// until no list's head names a registered macro. A node whose head misses
// the registry is returned unchanged.
func (e *Expander) ExpandAll(node macro.Node) (macro.Node, error) {
	return e.expandFix(node, 0)
}

// expandFix expands one node to its head-position fixpoint, then recurses
// into children. depth accumulates along the rewrite path, so mutually
// recursive macros trip the bound as reliably as directly recursive ones.
func (e *Expander) expandFix(node macro.Node, depth int) (macro.Node, error) {
	for {
		name, ok := macroHead(node)
		if !ok {
			break
		}
		if _, found := e.reg.Lookup(name); !found {
			break // not a macro call, leave as-is
		}
		if depth >= e.maxDepth {
			return node, &DepthExceededError{Name: name, Depth: e.maxDepth}
		}
		expanded, err := e.Expand1(node)
		if err != nil {
			return node, err
		}
		node = expanded
		depth++
	}
	if node.Type() != macro.ListType {
		return node, nil
	}
	children := make([]macro.Node, node.Length())
	for i, child := range node.Children() {
		expanded, err := e.expandFix(child, depth)
		if err != nil {
			return node, err
		}
		children[i] = expanded
	}
	return macro.List(children...), nil
}

// macroHead extracts the name a call site would dispatch on: the head symbol
// of a list, disregarding any namespace qualification.
func macroHead(node macro.Node) (string, bool) {
	if node.Type() != macro.ListType {
		return "", false
	}
	head := node.Head()
	if head.Type() != macro.SymbolType {
		return "", false
	}
	return head.Name(), true
}
