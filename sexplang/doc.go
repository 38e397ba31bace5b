/*
Package sexplang reads source text into symbolic trees.

The notation is Clojure-flavored s-expressions:

	(f x 1.5 "str" :key)   call forms and lists
	[a b c]                vectors read as plain lists
	'form                  quote
	`form                  syntax-quote (template)
	~form  ~@form          unquote, unquote-splicing
	ns/name                qualified symbol
	name#                  auto-gensym marked symbol
	; comment              skipped up to end of line

Quoting notation is read into plain list forms — (quote …),
(syntax-quote …), (unquote …), (unquote-splicing …) — which is what the
template builder of package expand operates on. The reader performs no
expansion and no evaluation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sexplang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'macro.sexplang'.
func tracer() tracing.Trace {
	return tracing.Select("macro.sexplang")
}
