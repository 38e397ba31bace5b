package macro

import (
	"testing"
)

func TestNodeConstructors(t *testing.T) {
	sym := SymIn("user", "inc")
	if sym.Type() != SymbolType || sym.Name() != "inc" || sym.Namespace() != "user" {
		t.Errorf("expected qualified symbol user/inc, got %s", sym)
	}
	if !sym.IsQualified() {
		t.Errorf("expected user/inc to be qualified")
	}
	if Sym("inc").IsQualified() {
		t.Errorf("expected bare inc to be unqualified")
	}
	lit := Lit(int64(42))
	if lit.Type() != LiteralType || lit.Value() != int64(42) {
		t.Errorf("expected literal 42, got %s", lit)
	}
	if !NilNode.IsNil() {
		t.Errorf("expected the zero node to be nil")
	}
}

func TestNodeHeadTail(t *testing.T) {
	call := List(Sym("f"), Lit(int64(1)), Lit(int64(2)))
	if call.Head().Name() != "f" {
		t.Errorf("expected head f, got %s", call.Head())
	}
	if len(call.Tail()) != 2 {
		t.Errorf("expected 2 arguments, got %d", len(call.Tail()))
	}
	if !List().Head().IsNil() {
		t.Errorf("expected head of empty list to be the zero node")
	}
}

func TestStructuralEquality(t *testing.T) {
	a := List(Sym("f"), List(Lit(int64(1)), Lit("x")), SymIn("user", "y"))
	b := List(Sym("f"), List(Lit(int64(1)), Lit("x")), SymIn("user", "y"))
	if !a.Equal(b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	c := List(Sym("f"), List(Lit(int64(1)), Lit("x")), Sym("y"))
	if a.Equal(c) {
		t.Errorf("expected %s not to equal %s (qualification differs)", a, c)
	}
	if a.Equal(List(Sym("f"))) {
		t.Errorf("lists of different length may not be equal")
	}
	if Lit(int64(1)).Equal(Sym("1")) {
		t.Errorf("literal and symbol may not be equal")
	}
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{Sym("inc"), "inc"},
		{SymIn("user", "inc"), "user/inc"},
		{Lit("hi"), `"hi"`},
		{Lit(Keyword("color")), ":color"},
		{Lit(nil), "nil"},
		{Lit(true), "true"},
		{List(Sym("f"), Lit(int64(1)), List()), "(f 1 ())"},
		{Splice(Sym("a"), Sym("b")), "#splice(a b)"},
	}
	for _, test := range tests {
		if s := test.node.String(); s != test.expected {
			t.Errorf("expected %s, got %s", test.expected, s)
		}
	}
}

func TestNodeMap(t *testing.T) {
	list := List(Sym("a"), Sym("b"))
	mapped := list.Map(func(n Node) Node {
		return SymIn("user", n.Name())
	})
	expected := List(SymIn("user", "a"), SymIn("user", "b"))
	if !mapped.Equal(expected) {
		t.Errorf("expected %s, got %s", expected, mapped)
	}
	if !list.Equal(List(Sym("a"), Sym("b"))) {
		t.Errorf("Map must not modify the receiver, got %s", list)
	}
}

func TestNodeWalk(t *testing.T) {
	tree := List(Sym("f"), List(Sym("g"), Lit(int64(1))), Sym("h"))
	count := 0
	tree.Walk(func(n Node) bool {
		if n.Type() == SymbolType {
			count++
		}
		return true
	})
	if count != 3 {
		t.Errorf("expected to visit 3 symbols, visited %d", count)
	}
	count = 0
	tree.Walk(func(n Node) bool {
		count++
		return n.Type() != ListType || n.Head().Name() != "g"
	})
	if count != 4 { // root, f, (g 1), h -- children of (g 1) skipped
		t.Errorf("expected 4 visits with pruning, got %d", count)
	}
}
