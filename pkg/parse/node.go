package parse

import "github.com/kianmeng/ogma/pkg/diag"

// Node represents a parse tree node.
type Node interface {
	diag.Ranger
	parse(*parser)
	n() *node
}

// node is the base of all node types. It implements the parts of the Node
// interface common to all node types, and is meant to be embedded.
type node struct {
	diag.Ranging
	sourceText string
	parent     Node
	children   []Node
}

func (n *node) n() *node { return n }

func (n *node) addChild(ch Node) { n.children = append(n.children, ch) }

// SourceText returns the part of the source code parsed into the node.
func SourceText(n Node) string { return n.n().sourceText }

// Parent returns the parent of a node. It returns nil if the node is the
// root of the parse tree.
func Parent(n Node) Node { return n.n().parent }

// Children returns the children of a node.
func Children(n Node) []Node { return n.n().children }
