package symdiff

// Expr is an expression tree over the numeric domain T. Copying an Expr is
// cheap and shares the tree. Every method that builds an expression returns a
// new Expr and leaves its operands unchanged, so an Expr is safe to use from
// multiple goroutines at once.
//
// The zero Expr is not a valid expression; most methods panic on it.
type Expr[T Scalar[T]] struct {
	// n is the root node of the expression.
	n *node[T]
}

// Const creates an expression with the constant value v.
func Const[T Scalar[T]](v T) Expr[T] {
	return Expr[T]{&node[T]{kind: nodeNum, num: v}}
}

// Var creates an expression referring to the variable name.
func Var[T Scalar[T]](name string) Expr[T] {
	return Expr[T]{&node[T]{kind: nodeName, name: name}}
}

// constint creates a constant expression with an integer value.
func constint[T Scalar[T]](n int64) Expr[T] {
	var z T
	return Const(z.fromInt(n))
}

func (e Expr[T]) unary(k nodeKind) Expr[T] {
	return Expr[T]{&node[T]{kind: k, left: e.must()}}
}

func (e Expr[T]) binary(k nodeKind, f Expr[T]) Expr[T] {
	return Expr[T]{&node[T]{kind: k, left: e.must(), right: f.must()}}
}

func (e Expr[T]) must() *node[T] {
	if e.n == nil {
		panic("symdiff: use of zero Expr")
	}
	return e.n
}

// Neg returns -e.
func (e Expr[T]) Neg() Expr[T] { return e.unary(nodeNeg) }

// Add returns e + f.
func (e Expr[T]) Add(f Expr[T]) Expr[T] { return e.binary(nodeAdd, f) }

// Sub returns e - f.
func (e Expr[T]) Sub(f Expr[T]) Expr[T] { return e.binary(nodeSub, f) }

// Mul returns e * f.
func (e Expr[T]) Mul(f Expr[T]) Expr[T] { return e.binary(nodeMul, f) }

// Div returns e / f.
func (e Expr[T]) Div(f Expr[T]) Expr[T] { return e.binary(nodeDiv, f) }

// Pow returns e ^ f.
func (e Expr[T]) Pow(f Expr[T]) Expr[T] { return e.binary(nodePow, f) }

// Sin returns sin(e).
func (e Expr[T]) Sin() Expr[T] { return e.unary(nodeSin) }

// Cos returns cos(e).
func (e Expr[T]) Cos() Expr[T] { return e.unary(nodeCos) }

// Ln returns ln(e).
func (e Expr[T]) Ln() Expr[T] { return e.unary(nodeLn) }

// Exp returns exp(e).
func (e Expr[T]) Exp() Expr[T] { return e.unary(nodeExp) }

// IsZero reports whether e is the zero Expr.
func (e Expr[T]) IsZero() bool {
	return e.n == nil
}

// String renders e in fully parenthesized form. Every binary operation is
// written as "(l op r)", negation as "-(x)", and function calls as "f(x)".
func (e Expr[T]) String() string {
	if e.n == nil {
		return "<nil>"
	}
	return e.n.String()
}

// Vars returns the sorted names of the variables used in the expression.
func (e Expr[T]) Vars() []string {
	m := make(map[string]bool)
	e.must().names(m)
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Depends reports whether e refers to the variable name.
func (e Expr[T]) Depends(name string) bool {
	return e.must().depends(name)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
