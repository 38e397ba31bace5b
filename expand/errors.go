package expand

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	macro "github.com/BrunoBonacci/clojure-simple-macro"
)

// Expansion errors are returned as values, never panicked. Each kind is a
// distinct type so hosts can select on them with errors.As and point at the
// originating call-site node where one is attached.

// UnknownMacroError is returned by Expand1 when the head of a call does not
// name a registered macro. Hosts usually treat this as "not a macro call"
// and leave the node alone; ExpandAll does so internally.
type UnknownMacroError struct {
	Name string     // name the call head resolves to, may be empty
	Call macro.Node // the offending call site
}

func (e *UnknownMacroError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("not a macro call: %s", e.Call)
	}
	return fmt.Sprintf("unknown macro '%s'", e.Name)
}

// ArityMismatchError is returned when a call supplies fewer arguments than
// the macro's fixed parameter list requires.
type ArityMismatchError struct {
	Name        string // macro name
	ExpectedMin int    // number of fixed parameters
	Got         int    // number of supplied arguments
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("macro '%s' expects at least %d argument(s), got %d",
		e.Name, e.ExpectedMin, e.Got)
}

// MalformedSpliceError is returned when an unquote-splicing escape resolved
// to something which is not a sequence of nodes.
type MalformedSpliceError struct {
	Name string     // macro being expanded
	At   macro.Node // the node the escape resolved to
}

func (e *MalformedSpliceError) Error() string {
	return fmt.Sprintf("macro '%s': unquote-splicing of non-sequence %s", e.Name, e.At)
}

// DepthExceededError is returned by ExpandAll when fixpoint expansion did
// not terminate within the configured bound. This is diagnosed as a likely
// self-recursive macro definition, not silently truncated.
type DepthExceededError struct {
	Name  string // macro head at the point the bound tripped
	Depth int    // the configured bound
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("expansion of macro '%s' exceeded depth %d; macro may be self-recursive",
		e.Name, e.Depth)
}

// NestedTemplateError is returned for a syntax-quote within a syntax-quote.
// Templates nested deeper than one level are a known limitation of this
// engine.
type NestedTemplateError struct {
	Depth int // nesting depth reached
}

func (e *NestedTemplateError) Error() string {
	return fmt.Sprintf("nested syntax-quote (depth %d) is not supported", e.Depth)
}
