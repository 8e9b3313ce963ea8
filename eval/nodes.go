package eval

import (
	"strings"
)

// node is an operation in a parsed expression. Operators keep their operands
// in args, left to right, and calls keep their arguments there.
type node struct {
	kind nodeKind
	// text is the number, variable, or function name.
	text string
	fn   Func
	args []*node
}

type nodeKind int8

const (
	numNode nodeKind = iota
	varNode
	callNode
	negNode
	addNode
	subNode
	mulNode
	divNode
	powNode
)

// binaries maps operator tokens to node kinds.
var binaries = map[string]nodeKind{
	"+": addNode,
	"-": subNode,
	"*": mulNode,
	"×": mulNode,
	"/": divNode,
	"÷": divNode,
	"^": powNode,
}

var opText = [...]string{
	addNode: " + ",
	subNode: " - ",
	mulNode: " * ",
	divNode: " / ",
	powNode: " ^ ",
}

func binary(op string, l, r *node) *node {
	return &node{kind: binaries[op], args: []*node{l, r}}
}

// format writes n with every operation in parentheses.
func (n *node) format(b *strings.Builder) {
	switch n.kind {
	case numNode, varNode:
		b.WriteString(n.text)
	case callNode:
		b.WriteString(n.text)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.format(b)
		}
		b.WriteByte(')')
	case negNode:
		b.WriteString("(-")
		n.args[0].format(b)
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		n.args[0].format(b)
		b.WriteString(opText[n.kind])
		n.args[1].format(b)
		b.WriteByte(')')
	}
}

// vars adds the variables used anywhere in n to m.
func (n *node) vars(m map[string]bool) {
	if n.kind == varNode {
		m[n.text] = true
	}
	for _, a := range n.args {
		a.vars(m)
	}
}
