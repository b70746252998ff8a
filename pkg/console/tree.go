package console

import "strings"

// TreeNode is a node in a labeled tree, rendered with box-drawing
// connectors.
type TreeNode struct {
	Value    string
	Children []TreeNode
}

// RenderTree renders the tree rooted at node.
func RenderTree(node TreeNode) string {
	var b strings.Builder
	b.WriteString(node.Value)
	b.WriteString("\n")
	for i, child := range node.Children {
		b.WriteString(renderTreeSimple(child, "", i == len(node.Children)-1))
	}
	return b.String()
}

func renderTreeSimple(node TreeNode, prefix string, isLast bool) string {
	var b strings.Builder

	connector := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		connector = "└── "
		childPrefix = prefix + "    "
	}

	b.WriteString(prefix)
	b.WriteString(connector)
	b.WriteString(node.Value)
	b.WriteString("\n")

	for i, child := range node.Children {
		b.WriteString(renderTreeSimple(child, childPrefix, i == len(node.Children)-1))
	}

	return b.String()
}
