/*
Package macro implements hygienic macro expansion for a small Lisp-like
symbolic language.

A macro is a named source-to-source rewrite rule: its body is a template
(a syntax-quoted form with embedded unquote and unquote-splicing escapes)
which, applied to an unevaluated call site, produces new code. The engine
guarantees hygiene: identifiers a macro introduces for its own use are
renamed to fresh, unique names on every expansion, so they can never
collide with identifiers of the caller or of another expansion.

Package structure is as follows:

■ expand: Package expand holds the macro registry, the template builder and
the expander proper, performing single-step and fixpoint rewriting of call
sites.

■ sexplang: Package sexplang reads source text into symbolic trees, using a
Clojure-flavored notation for quoting, syntax-quoting and the escapes.

■ sexplang/mrepl: An interactive sandbox for defining macros and inspecting
their expansions without evaluating them.

The base package contains the data types which are used throughout all the
other packages: the symbolic tree type Node and the Gensym allocator.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package macro
