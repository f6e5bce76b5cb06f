// Package syntax adapts parsed source trees to the small node view used by
// the keyword classifier.
package syntax

import sitter "github.com/smacker/go-tree-sitter"

// Node is a read-only view of one syntax tree element.
type Node interface {
	Kind() string
	StartByte() int
	// Parent returns nil at the root or for a detached node.
	Parent() Node
}

// MaxDepth bounds every ancestor walk.
const MaxDepth = 512

// Root climbs from n while climb(child, parent) holds and returns the
// outermost node reached. It returns nil only for a nil n.
func Root(n Node, climb func(child, parent Node) bool) Node {
	if n == nil {
		return nil
	}
	cur := n
	for i := 0; i < MaxDepth; i++ {
		parent := cur.Parent()
		if parent == nil || !climb(cur, parent) {
			return cur
		}
		cur = parent
	}
	return cur
}

type sitterNode struct {
	n *sitter.Node
}

// Wrap adapts a tree-sitter node. A nil node yields a nil Node.
func Wrap(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return sitterNode{n: n}
}

func (s sitterNode) Kind() string {
	return s.n.Type()
}

func (s sitterNode) StartByte() int {
	return int(s.n.StartByte())
}

func (s sitterNode) Parent() Node {
	return Wrap(s.n.Parent())
}
