/*
Package expand performs hygienic macro expansion on symbolic trees.

Clients register macro definitions with a Registry and hand call sites to an
Expander. Expand1 performs a single rewrite step: it binds the call arguments
to the macro's parameters and materializes the macro's body template, with
unquote and unquote-splicing escapes resolved and hygienic renaming applied.
ExpandAll repeats this, outermost call first, until no macro heads remain or
a configurable depth bound trips.

The expander never evaluates anything: argument forms are inserted into the
expansion as unevaluated code; evaluation timing is entirely the business of
a host evaluator, after expansion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expand

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'macro.expand'.
func tracer() tracing.Trace {
	return tracing.Select("macro.expand")
}
