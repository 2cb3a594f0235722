package symdiff

import (
	"io"
	"strconv"
	"strings"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context[T Scalar[T]] struct {
	stack []T
	names map[string]T
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption[T Scalar[T]] interface {
	ctxOption(names map[string]T)
}

type (
	varopt[T Scalar[T]] struct {
		name string
		val  T
	}
	varsopt[T Scalar[T]] map[string]T
)

func (o varopt[T]) ctxOption(names map[string]T) {
	names[o.name] = o.val
}

func (o varsopt[T]) ctxOption(names map[string]T) {
	for k, v := range o {
		names[k] = v
	}
}

// SetVar sets the value of a variable in the context.
func SetVar[T Scalar[T]](name string, val T) ContextOption[T] {
	return varopt[T]{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars[T Scalar[T]](vars map[string]T) ContextOption[T] {
	return varsopt[T](vars)
}

// NewContext creates a new evaluation context.
func NewContext[T Scalar[T]](opts ...ContextOption[T]) *Context[T] {
	var ctx Context[T]
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. a missing variable definition or an argument to a function is outside
// the function's domain, then the result is the zero value and ctx.Err
// returns the error.
func (ctx *Context[T]) Eval(e Expr[T]) T {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack = ctx.stack[:0]
	default:
		panic("symdiff: Eval during Eval")
	}
	err := e.must().eval(ctx)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		var zero T
		return zero
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns the zero value if
// an error occurred during evaluation.
func (ctx *Context[T]) Result() T {
	if ctx.err != nil {
		var zero T
		return zero
	}
	switch len(ctx.stack) {
	case 0:
		panic("symdiff: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("symdiff: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error from the last expression evaluated with ctx, if any.
func (ctx *Context[T]) Err() error {
	return ctx.err
}

// Set sets the value of a variable. Returns ctx for chaining. Calling Set
// while the context is being used to evaluate an expression panics.
func (ctx *Context[T]) Set(name string, value T) *Context[T] {
	if len(ctx.stack) > 1 {
		panic("symdiff: Set on in-use context")
	}
	if ctx.names == nil {
		ctx.names = make(map[string]T)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is defined.
func (ctx *Context[T]) Lookup(name string) (T, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context[T]) Clone(opts ...ContextOption[T]) *Context[T] {
	n := Context[T]{
		stack: make([]T, 0, cap(ctx.stack)),
		names: make(map[string]T, len(ctx.names)),
	}
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.ctxOption(n.names)
	}
	return &n
}

// Eval evaluates e with the given variable bindings. vars is only read.
func (e Expr[T]) Eval(vars map[string]T) (T, error) {
	ctx := Context[T]{names: vars}
	r := ctx.Eval(e)
	return r, ctx.err
}

// push pushes a value onto the stack.
func (ctx *Context[T]) push(v T) {
	ctx.stack = append(ctx.stack, v)
}

// pop removes the top from the stack and returns it.
func (ctx *Context[T]) pop() T {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node[T]) eval(ctx *Context[T]) error {
	switch n.kind {
	case nodeNum:
		ctx.push(n.num)
	case nodeName:
		v, ok := ctx.names[n.name]
		if !ok {
			return &NameError{Name: n.name}
		}
		ctx.push(v)
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		ctx.push(ctx.pop().neg())
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.pop()
		var v T
		var err error
		switch n.kind {
		case nodeAdd:
			v, err = l.add(r)
		case nodeSub:
			v, err = l.sub(r)
		case nodeMul:
			v, err = l.mul(r)
		case nodeDiv:
			v, err = l.quo(r)
		case nodePow:
			v, err = l.pow(r)
		}
		if err != nil {
			return err
		}
		ctx.push(v)
	case nodeSin, nodeCos, nodeLn, nodeExp:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		x := ctx.pop()
		var v T
		var err error
		switch n.kind {
		case nodeSin:
			v, err = x.sin()
		case nodeCos:
			v, err = x.cos()
		case nodeLn:
			v, err = x.ln()
		case nodeExp:
			v, err = x.exp()
		}
		if err != nil {
			return err
		}
		ctx.push(v)
	default:
		panic("symdiff: invalid AST node " + n.kind.String())
	}
	return nil
}

// EvalReader is a shortcut to parse an expression and return its result.
func EvalReader[T Scalar[T]](src io.RuneScanner, opts ...ContextOption[T]) (T, error) {
	a, err := Parse[T](src)
	if err != nil {
		var zero T
		return zero, err
	}
	ctx := NewContext(opts...)
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString[T Scalar[T]](src string, opts ...ContextOption[T]) (T, error) {
	return EvalReader[T](strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
