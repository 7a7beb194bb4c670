// Package grammar implements the safe, non-eval arithmetic/boolean
// expression grammar spec.md §9 requires for the fallback predicate path of
// the constraint-string parser: "a safe expression evaluator that does not
// expose host-language eval ... re-implementable without calling into the
// host interpreter." Parsing is done with participle (the one parser-
// combinator library present anywhere in the retrieval pack, carried from
// kanso-lang-kanso's grammar package); evaluation walks the resulting AST
// directly, never calling into Go's own expression evaluation.
package grammar

import "github.com/alecthomas/participle/v2/lexer"

// ExprLexer tokenizes the mini-language spec.md §9 documents: arithmetic
// (+ - * / **), comparisons (< <= == != >= >), boolean and/or, identifiers,
// and numeric literals. ** is recognised only so it isn't mis-lexed as two
// '*' tokens; it is not implemented as an operator, matching the original
// parser's own "power operations are not yet supported" stance (spec.md §9
// non-goals).
var ExprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(\.\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Operator", Pattern: `<=|>=|==|!=|\*\*|[-+*/()<>]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
