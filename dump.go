package sqlparse

import (
	"fmt"
	"strings"
)

// Dump produces an indented debug view of the tree, one line per node with
// each child one level deeper than its parent. Leaves show their payload on
// the same line. Dump is diagnostic only and never fails.
func Dump(n *SqlNode) string {
	var sb strings.Builder
	dumpNode(&sb, n, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *SqlNode, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())
	if n.IsLeaf() {
		fmt.Fprintf(sb, " '%s'", n.Value)
	}
	sb.WriteString("\n")
	for _, c := range n.children {
		dumpNode(sb, c, depth+1)
	}
}
