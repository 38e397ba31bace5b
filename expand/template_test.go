package expand_test

import (
	"errors"
	"strings"
	"testing"

	macro "github.com/BrunoBonacci/clojure-simple-macro"
	"github.com/BrunoBonacci/clojure-simple-macro/expand"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// gensymNames collects the distinct renamed symbols in a tree which carry
// the given gensym stem, e.g. "x__".
func gensymNames(tree macro.Node, stem string) map[string]int {
	names := make(map[string]int)
	tree.Walk(func(n macro.Node) bool {
		if n.Type() == macro.SymbolType && strings.HasPrefix(n.Name(), stem) {
			names[n.Name()]++
		}
		return true
	})
	return names
}

func TestHygienicRenaming(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.expand")
	defer teardown()
	//
	reg := expand.NewRegistry()
	mustDefine(t, reg, "(defmacro once [v] `(let [x# ~v] (use x# x#)))", "user")
	ex := expand.NewExpander(reg, expand.Allocator(&macro.Gensym{}))
	//
	first, err := ex.Expand1(mustRead(t, "(once (f))"))
	if err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	second, err := ex.Expand1(mustRead(t, "(once (f))"))
	if err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	firstNames := gensymNames(first, "x__")
	secondNames := gensymNames(second, "x__")
	if len(firstNames) != 1 || len(secondNames) != 1 {
		t.Fatalf("expected exactly one renamed symbol per expansion, got %v and %v",
			firstNames, secondNames)
	}
	for name, count := range firstNames {
		if count != 3 { // binding plus two uses
			t.Errorf("expected 3 consistent occurrences of %s, got %d", name, count)
		}
		if secondNames[name] != 0 {
			t.Errorf("expansions share the introduced name %s", name)
		}
	}
	// the marked spelling itself must be gone
	first.Walk(func(n macro.Node) bool {
		if n.Type() == macro.SymbolType && n.Name() == "x#" {
			t.Errorf("auto-gensym marked symbol survived expansion: %s", first)
		}
		return true
	})
}

func TestSplicingFlattensSiblings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.expand")
	defer teardown()
	//
	reg := expand.NewRegistry()
	mustDefine(t, reg, "(defmacro call-f [& args] `(f ~@args))", "user")
	mustDefine(t, reg, "(defmacro call-g [& args] `(g ~args))", "user")
	ex := expand.NewExpander(reg)
	//
	spliced, err := ex.Expand1(mustRead(t, "(call-f a b c)"))
	if err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	expected := macro.List(macro.SymIn("user", "f"), macro.Sym("a"), macro.Sym("b"), macro.Sym("c"))
	if !spliced.Equal(expected) {
		t.Errorf("expected flat %s, got %s", expected, spliced)
	}
	//
	unspliced, err := ex.Expand1(mustRead(t, "(call-g a b c)"))
	if err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	expected = macro.List(macro.SymIn("user", "g"),
		macro.List(macro.Sym("a"), macro.Sym("b"), macro.Sym("c")))
	if !unspliced.Equal(expected) {
		t.Errorf("expected nested %s, got %s", expected, unspliced)
	}
}

func TestDefiningNamespaceQualification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.expand")
	defer teardown()
	//
	reg := expand.NewRegistry()
	mustDefine(t, reg, "(defmacro wrap [x] `(helper other.ns/done ~x))", "lib.core")
	ex := expand.NewExpander(reg)
	//
	result, err := ex.Expand1(mustRead(t, "(wrap caller-arg)"))
	if err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	expected := macro.List(
		macro.SymIn("lib.core", "helper"), // bare symbol: defining namespace
		macro.SymIn("other.ns", "done"),   // qualified symbol: verbatim
		macro.Sym("caller-arg"),           // argument code: untouched
	)
	if !result.Equal(expected) {
		t.Errorf("expected %s, got %s", expected, result)
	}
}

func TestUnquoteInsertsArgumentUnevaluated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.expand")
	defer teardown()
	//
	reg := expand.NewRegistry()
	mustDefine(t, reg, "(defmacro keep [x] `(f ~x))", "user")
	ex := expand.NewExpander(reg)
	//
	result, err := ex.Expand1(mustRead(t, "(keep (side-effect!))"))
	if err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	expected := macro.List(macro.SymIn("user", "f"), macro.List(macro.Sym("side-effect!")))
	if !result.Equal(expected) {
		t.Errorf("expected the argument form as-is, got %s", result)
	}
}

func TestMalformedSplice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.expand")
	defer teardown()
	//
	reg := expand.NewRegistry()
	mustDefine(t, reg, "(defmacro bad [x] `(f ~@x))", "user")
	ex := expand.NewExpander(reg)
	//
	_, err := ex.Expand1(mustRead(t, "(bad 5)"))
	var splice *expand.MalformedSpliceError
	if !errors.As(err, &splice) {
		t.Fatalf("expected MalformedSpliceError, got %v", err)
	}
	if splice.Name != "bad" {
		t.Errorf("error does not name the macro: %v", splice)
	}
}

func TestNestedTemplateUnsupported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.expand")
	defer teardown()
	//
	reg := expand.NewRegistry()
	mustDefine(t, reg, "(defmacro nested [] `(f `(g)))", "user")
	ex := expand.NewExpander(reg)
	//
	_, err := ex.Expand1(mustRead(t, "(nested)"))
	var nested *expand.NestedTemplateError
	if !errors.As(err, &nested) {
		t.Fatalf("expected NestedTemplateError, got %v", err)
	}
	if nested.Depth != 2 {
		t.Errorf("expected nesting depth 2, got %d", nested.Depth)
	}
}

func TestStrayUnquoteOutsideTemplate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "macro.expand")
	defer teardown()
	//
	reg := expand.NewRegistry()
	mustDefine(t, reg, "(defmacro stray [x] (f ~x))", "user")
	ex := expand.NewExpander(reg)
	//
	if _, err := ex.Expand1(mustRead(t, "(stray 1)")); err == nil {
		t.Errorf("expected an unquote outside syntax-quote to be a construction error")
	}
}
