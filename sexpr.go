package macro

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
)

// --- Node types ------------------------------------------------------------

// NodeType classifies nodes of a symbolic tree.
type NodeType int

// Types of nodes. NoType is the type of the zero Node, which clients may use
// as a "no node here" value.
const (
	NoType NodeType = iota
	SymbolType
	LiteralType
	ListType
	SpliceType
)

func (t NodeType) String() string {
	switch t {
	case NoType:
		return "none"
	case SymbolType:
		return "symbol"
	case LiteralType:
		return "literal"
	case ListType:
		return "list"
	case SpliceType:
		return "splice"
	}
	return fmt.Sprintf("type(%d)", t)
}

// Keyword is a literal value type for keywords, e.g. ':color'. The colon is
// not part of the underlying string.
type Keyword string

func (k Keyword) String() string {
	return ":" + string(k)
}

// Node is a node of a symbolic tree, representing code as data. It is a
// tagged union over symbols, literals, lists and splices. Nodes are created
// with one of the constructor functions and are immutable thereafter; all
// "modifying" operations return a fresh node.
//
// A splice is an intermediate marker produced during template construction
// only: it holds nodes which are to become siblings in a surrounding list,
// not children of a nested one. A finished tree handed to an evaluator never
// contains a splice (see package expand).
type Node struct {
	typ      NodeType
	name     string      // symbol name
	ns       string      // symbol namespace, empty = unqualified
	value    interface{} // literal value
	children []Node      // list or splice elements
}

// NilNode is the zero node, of NoType.
var NilNode = Node{}

// Sym creates an unqualified symbol node.
func Sym(name string) Node {
	return Node{typ: SymbolType, name: name}
}

// SymIn creates a symbol node qualified with a namespace.
func SymIn(ns string, name string) Node {
	return Node{typ: SymbolType, name: name, ns: ns}
}

// Lit creates a literal node. Literal values are opaque to expansion; they
// are expected to be comparable Go values (numbers, strings, booleans,
// keywords).
func Lit(value interface{}) Node {
	return Node{typ: LiteralType, value: value}
}

// List creates a list node from the given children, in order.
func List(children ...Node) Node {
	return Node{typ: ListType, children: children}
}

// Splice creates a splice marker node from the given children, in order.
func Splice(children ...Node) Node {
	return Node{typ: SpliceType, children: children}
}

// --- Accessors -------------------------------------------------------------

// Type returns the type tag of a node.
func (n Node) Type() NodeType {
	return n.typ
}

// IsNil returns true for the zero node.
func (n Node) IsNil() bool {
	return n.typ == NoType
}

// Name returns the name of a symbol node, without a namespace part.
func (n Node) Name() string {
	return n.name
}

// Namespace returns the namespace of a symbol node, empty for unqualified
// symbols.
func (n Node) Namespace() string {
	return n.ns
}

// IsQualified returns true if n is a symbol carrying a namespace.
func (n Node) IsQualified() bool {
	return n.typ == SymbolType && n.ns != ""
}

// Value returns the value of a literal node.
func (n Node) Value() interface{} {
	return n.value
}

// Children returns the elements of a list or splice node. Callers must not
// modify the returned slice.
func (n Node) Children() []Node {
	return n.children
}

// Length returns the number of elements of a list or splice node, 0 for
// other node types.
func (n Node) Length() int {
	return len(n.children)
}

// Head returns the first element of a list, or the zero node.
// For a list representing a call, the head is the operator.
func (n Node) Head() Node {
	if n.typ != ListType || len(n.children) == 0 {
		return NilNode
	}
	return n.children[0]
}

// Tail returns the elements of a list after the head.
// For a list representing a call, these are the arguments.
func (n Node) Tail() []Node {
	if n.typ != ListType || len(n.children) == 0 {
		return nil
	}
	return n.children[1:]
}

// --- Structural equality ---------------------------------------------------

// Equal compares two nodes structurally: two lists are equal iff they have
// the same length and each pair of children is equal. Literals compare by
// their values.
func (n Node) Equal(other Node) bool {
	if n.typ != other.typ {
		return false
	}
	switch n.typ {
	case NoType:
		return true
	case SymbolType:
		return n.name == other.name && n.ns == other.ns
	case LiteralType:
		return n.value == other.value
	case ListType, SpliceType:
		if len(n.children) != len(other.children) {
			return false
		}
		for i, child := range n.children {
			if !child.Equal(other.children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// --- Traversal -------------------------------------------------------------

// Map applies a mapper to every child of a list or splice node and returns a
// node with the mapped children. Non-list nodes are returned unchanged.
func (n Node) Map(mapper func(Node) Node) Node {
	if n.typ != ListType && n.typ != SpliceType {
		return n
	}
	children := make([]Node, len(n.children))
	for i, child := range n.children {
		children[i] = mapper(child)
	}
	return Node{typ: n.typ, children: children}
}

// Walk calls a visitor for n and all nodes below n, parents before children.
// If the visitor returns false, the children of the current node are skipped.
func (n Node) Walk(visit func(Node) bool) {
	if !visit(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(visit)
	}
}

// --- Printing --------------------------------------------------------------

// String returns a node in s-expression notation. Qualified symbols print as
// 'ns/name', splices with a '#splice' marker, which never survives template
// construction.
func (n Node) String() string {
	switch n.typ {
	case NoType:
		return "nil"
	case SymbolType:
		if n.ns != "" {
			return n.ns + "/" + n.name
		}
		return n.name
	case LiteralType:
		return litString(n.value)
	case ListType:
		return "(" + n.childString() + ")"
	case SpliceType:
		return "#splice(" + n.childString() + ")"
	}
	return "<invalid node>"
}

func (n Node) childString() string {
	var b strings.Builder
	for i, child := range n.children {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(child.String())
	}
	return b.String()
}

func litString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	case Keyword:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
