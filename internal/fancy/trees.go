package fancy

import (
	"github.com/charmbracelet/lipgloss/tree"
)

// ComponentTree creates a component-specific styled tree
type ComponentTree struct {
	tree *tree.Tree
}

// NewComponentTree creates a new component tree with appropriate styling
func NewComponentTree(title string) *ComponentTree {
	return &ComponentTree{tree: Tree().Root(title)}
}

// Tree returns the underlying tree
func (c *ComponentTree) Tree() *tree.Tree {
	return c.tree
}

// AddChild adds a child node to the root branch
func (c *ComponentTree) AddChild(child any) *ComponentTree {
	c.tree.Child(child)
	return c
}

// String renders the tree
func (c *ComponentTree) String() string {
	return c.tree.String()
}

// ScriptTree creates a tree for one loaded script
func ScriptTree(name string, example bool) *ComponentTree {
	if example {
		return NewComponentTree(ExampleText(name))
	}
	return NewComponentTree(ScriptText(name))
}

// FailureTree creates a tree for one failed source path
func FailureTree(path string) *ComponentTree {
	return NewComponentTree(ErrorText(path))
}
