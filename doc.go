// Package symdiff parses, evaluates, and symbolically differentiates
// arithmetic expressions over real or complex numbers.
//
// The grammar is small: numbers, variables, + - * / ^ with the usual
// precedence (^ is right-associative), parentheses, and the functions sin,
// cos, ln, and exp. There is no unary minus in the grammar, but trees built
// with Expr.Neg and derivatives may contain negations.
//
// Expressions are generic over the numeric domain. Real evaluates with a
// fixed 64-bit mantissa, the same as x87 extended precision. Complex
// evaluates with complex128. Parse once and evaluate many times, or
// differentiate to get a new expression:
//
//	f, err := symdiff.ParseString[symdiff.Real]("x^3/2 - x")
//	df := f.Diff("x")
//	y, err := df.Eval(map[string]symdiff.Real{"x": symdiff.NewReal(2)})
//
// Derivatives are not simplified, so "x*1" and "0+y" appear verbatim in
// their rendered forms.
package symdiff
