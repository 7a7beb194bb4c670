package grammar

import "github.com/alecthomas/participle/v2"

// Expression is the root of the parsed AST: a chain of "or"-joined AndExpr,
// each a chain of "and"-joined Comparison, each an optional comparator
// applied to two Arith sides. Arith/Term/Factor implement the usual
// precedence-climbing shape for + - and * /.
type Expression struct {
	Or *OrExpr `@@`
}

// OrExpr is one or more AndExpr joined by "or".
type OrExpr struct {
	Left *AndExpr   `@@`
	Rest []*AndExpr `("or" @@)*`
}

// AndExpr is one or more Comparison joined by "and".
type AndExpr struct {
	Left *Comparison   `@@`
	Rest []*Comparison `("and" @@)*`
}

// Comparison is a single Arith, optionally compared against a second Arith.
type Comparison struct {
	Left  *Arith  `@@`
	Op    *string `( @("<="|">="|"=="|"!="|"<"|">")`
	Right *Arith  `  @@ )?`
}

// Arith is a Term chain joined by + or -.
type Arith struct {
	Left *Term     `@@`
	Rest []*OpTerm `@@*`
}

// OpTerm is one "+ Term" or "- Term" link in an Arith chain.
type OpTerm struct {
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// Term is a Factor chain joined by * or /.
type Term struct {
	Left *Factor     `@@`
	Rest []*OpFactor `@@*`
}

// OpFactor is one "* Factor" or "/ Factor" link in a Term chain.
type OpFactor struct {
	Op     string  `@("*" | "/")`
	Factor *Factor `@@`
}

// Factor is a numeric literal, a variable identifier, or a parenthesised
// sub-expression, with an optional leading unary minus.
type Factor struct {
	Negative bool        `@"-"?`
	Number   *float64    `(  @Number`
	Ident    *string     ` | @Ident`
	Sub      *Expression ` | "(" @@ ")" )`
}

var parser = participle.MustBuild[Expression](
	participle.Lexer(ExprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse compiles source into an Expression AST. It never evaluates
// host-language code; the returned AST is walked by Eval.
func Parse(source string) (*Expression, error) {
	return parser.ParseString("", source)
}
