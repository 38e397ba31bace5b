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
	"sync"

	macro "github.com/BrunoBonacci/clojure-simple-macro"
	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/treemap"
)

// --- Macro definitions -----------------------------------------------------

// VarArgMarker is the symbol separating fixed from variadic parameters in a
// defmacro parameter vector: (defmacro m (x & more) …).
const VarArgMarker = "&"

// MacroDef is the definition of a macro: a parameter list plus a body
// template. Definitions are created once, at definition time, and are
// immutable thereafter; the registry owns them and clients receive read-only
// views.
type MacroDef struct {
	Name      string     // macro name, unqualified
	Params    []string   // fixed parameter names, in order
	VarArg    string     // variadic tail parameter name, empty = none
	Namespace string     // namespace active at the definition site
	Body      macro.Node // body template, usually a syntax-quote form
}

// Arity returns the number of fixed parameters and whether a variadic tail
// parameter is present.
func (d *MacroDef) Arity() (int, bool) {
	return len(d.Params), d.VarArg != ""
}

// Fingerprint returns a version-tagged hash over the definition, usable to
// detect redefinition with a different shape. Two definitions with equal
// name, parameters and body text hash equally.
func (d *MacroDef) Fingerprint() string {
	hashable := struct {
		Name   string
		Params []string
		VarArg string
		Ns     string
		Body   string
	}{d.Name, d.Params, d.VarArg, d.Namespace, d.Body.String()}
	h, err := structhash.Hash(hashable, 1)
	if err != nil {
		return ""
	}
	return h
}

func (d *MacroDef) String() string {
	params := append([]string(nil), d.Params...)
	if d.VarArg != "" {
		params = append(params, VarArgMarker, d.VarArg)
	}
	return fmt.Sprintf("(defmacro %s (%s) …)", d.Name, strings.Join(params, " "))
}

// --- Registry --------------------------------------------------------------

// Registry maps macro names to their definitions. Lookups during expansion
// are read-mostly; Define takes exclusive access, so concurrent redefinition
// while other goroutines expand is safe.
type Registry struct {
	mu   sync.RWMutex
	defs *treemap.Map // macro name ⇒ *MacroDef, sorted by name
}

// NewRegistry creates an empty macro registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: treemap.NewWithStringComparator(),
	}
}

// Define registers or replaces the macro definition for a name and returns a
// read-only view of the entry. Replacing a definition does not change call
// sites already expanded with the previous one; expansion results are never
// cached.
func (r *Registry) Define(name string, params []string, varArg string, ns string,
	body macro.Node) *MacroDef {
	//
	def := &MacroDef{
		Name:      name,
		Params:    append([]string(nil), params...),
		VarArg:    varArg,
		Namespace: ns,
		Body:      body,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.defs.Get(name); ok {
		tracer().Infof("redefining macro '%s': %s ⇒ %s", name,
			old.(*MacroDef).Fingerprint(), def.Fingerprint())
	}
	r.defs.Put(name, def)
	return def
}

// Lookup returns the definition registered for a name. A miss is a normal
// negative lookup, not a fault.
func (r *Registry) Lookup(name string) (*MacroDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs.Get(name)
	if !ok {
		return nil, false
	}
	return def.(*MacroDef), true
}

// Names returns the names of all registered macros, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, r.defs.Size())
	r.defs.Each(func(key interface{}, _ interface{}) {
		names = append(names, key.(string))
	})
	return names
}

// Snapshot returns read-only views of all registered definitions, sorted by
// name.
func (r *Registry) Snapshot() []*MacroDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*MacroDef, 0, r.defs.Size())
	r.defs.Each(func(_ interface{}, value interface{}) {
		defs = append(defs, value.(*MacroDef))
	})
	return defs
}

// --- defmacro forms --------------------------------------------------------

// DefineFromForm registers a macro from a surface form
//
//	(defmacro name (p1 p2 & rest) body)
//
// with ns recorded as the defining namespace. The parameter vector may list
// at most one variadic tail parameter after the '&' marker.
func (r *Registry) DefineFromForm(form macro.Node, ns string) (*MacroDef, error) {
	head := form.Head()
	if head.Type() != macro.SymbolType || head.Name() != "defmacro" {
		return nil, fmt.Errorf("not a defmacro form: %s", form)
	}
	args := form.Tail()
	if len(args) < 3 {
		return nil, fmt.Errorf("defmacro needs a name, a parameter vector and a body: %s", form)
	}
	name := args[0]
	if name.Type() != macro.SymbolType {
		return nil, fmt.Errorf("macro name is not a symbol: %s", name)
	}
	params, varArg, err := parseParams(args[1])
	if err != nil {
		return nil, fmt.Errorf("macro '%s': %w", name.Name(), err)
	}
	body := args[2]
	if len(args) > 3 { // multi-form body expands as an implicit sequence
		children := append([]macro.Node{macro.Sym(SymDo)}, args[2:]...)
		body = macro.List(children...)
	}
	tracer().Debugf("defmacro %s (%v & %s)", name.Name(), params, varArg)
	return r.Define(name.Name(), params, varArg, ns, body), nil
}

func parseParams(vector macro.Node) ([]string, string, error) {
	if vector.Type() != macro.ListType {
		return nil, "", fmt.Errorf("parameter vector is not a list: %s", vector)
	}
	var params []string
	varArg := ""
	rest := false
	for _, p := range vector.Children() {
		if p.Type() != macro.SymbolType || p.IsQualified() {
			return nil, "", fmt.Errorf("parameter is not a plain symbol: %s", p)
		}
		switch {
		case p.Name() == VarArgMarker:
			if rest {
				return nil, "", fmt.Errorf("duplicate '%s' in parameter vector", VarArgMarker)
			}
			rest = true
		case rest:
			if varArg != "" {
				return nil, "", fmt.Errorf("more than one variadic parameter: %s", p.Name())
			}
			varArg = p.Name()
		default:
			params = append(params, p.Name())
		}
	}
	if rest && varArg == "" {
		return nil, "", fmt.Errorf("missing parameter name after '%s'", VarArgMarker)
	}
	return params, varArg, nil
}
