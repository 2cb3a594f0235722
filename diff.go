package symdiff

// Diff returns the derivative of e with respect to the variable name. The
// result is not simplified and shares unchanged subtrees with e.
//
// Diff never fails. An evaluation of the result may still fail where e does
// not; in particular, the derivative of b^e for an exponent that depends on
// name contains ln(b) and division by b.
func (e Expr[T]) Diff(name string) Expr[T] {
	return e.must().diff(name)
}

func (n *node[T]) diff(name string) Expr[T] {
	switch n.kind {
	case nodeNum:
		return constint[T](0)
	case nodeName:
		if n.name == name {
			return constint[T](1)
		}
		return constint[T](0)
	case nodeNeg:
		return n.left.diff(name).Neg()
	case nodeAdd:
		return n.left.diff(name).Add(n.right.diff(name))
	case nodeSub:
		return n.left.diff(name).Sub(n.right.diff(name))
	case nodeMul:
		// (l r)' = l' r + l r'
		l, r := Expr[T]{n.left}, Expr[T]{n.right}
		return n.left.diff(name).Mul(r).Add(l.Mul(n.right.diff(name)))
	case nodeDiv:
		// (l/r)' = (l' r - l r') / r^2
		l, r := Expr[T]{n.left}, Expr[T]{n.right}
		num := n.left.diff(name).Mul(r).Sub(l.Mul(n.right.diff(name)))
		return num.Div(r.Pow(constint[T](2)))
	case nodePow:
		b, x := Expr[T]{n.left}, Expr[T]{n.right}
		if !n.right.depends(name) {
			// (b^x)' = x b^(x-1) b'
			return x.Mul(b.Pow(x.Sub(constint[T](1)))).Mul(n.left.diff(name))
		}
		// (b^x)' = b^x (ln(b) x' + b' x / b)
		t := b.Ln().Mul(n.right.diff(name))
		u := n.left.diff(name).Mul(x).Div(b)
		return Expr[T]{n}.Mul(t.Add(u))
	case nodeSin:
		// sin(a)' = a' cos(a)
		return n.left.diff(name).Mul(Expr[T]{n.left}.Cos())
	case nodeCos:
		// cos(a)' = -(a' sin(a))
		return n.left.diff(name).Mul(Expr[T]{n.left}.Sin()).Neg()
	case nodeLn:
		// ln(a)' = a' / a
		return n.left.diff(name).Div(Expr[T]{n.left})
	case nodeExp:
		// exp(a)' = exp(a) a'
		return Expr[T]{n}.Mul(n.left.diff(name))
	default:
		panic("symdiff: invalid AST node " + n.kind.String())
	}
}
