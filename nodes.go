package symdiff

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Nodes are never
// modified after construction, so any number of trees may share a subtree.
type node[T Scalar[T]] struct {
	kind nodeKind

	num  T
	name string

	left  *node[T]
	right *node[T]
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // num
	nodeName // lookup(name)

	nodeNeg // -left
	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right

	nodeSin // sin(left)
	nodeCos // cos(left)
	nodeLn  // ln(left)
	nodeExp // exp(left)
)

var nodeKindNames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeName: "Name",
	nodeNeg:  "Neg",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodePow:  "Pow",
	nodeSin:  "Sin",
	nodeCos:  "Cos",
	nodeLn:   "Ln",
	nodeExp:  "Exp",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// binops maps binary node kinds to their operators.
var binops = [...]string{
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " * ",
	nodeDiv: " / ",
	nodePow: " ^ ",
}

func (n *node[T]) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the fully parenthesized form of n.
func (n *node[T]) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(n.num.literal())
	case nodeName:
		b.WriteString(n.name)
	case nodeNeg:
		b.WriteString("-(")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(binops[n.kind])
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeSin, nodeCos, nodeLn, nodeExp:
		b.WriteString(funcnames[n.kind])
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	default:
		panic("symdiff: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// depends reports whether n contains a reference to the variable name.
func (n *node[T]) depends(name string) bool {
	if n == nil {
		return false
	}
	if n.kind == nodeName {
		return n.name == name
	}
	return n.left.depends(name) || n.right.depends(name)
}

// names adds the variable names in n to m.
func (n *node[T]) names(m map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeName {
		m[n.name] = true
		return
	}
	n.left.names(m)
	n.right.names(m)
}
