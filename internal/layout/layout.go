package layout

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Direction defines how a split arranges its children.
type Direction string

const (
	DirectionVertical   Direction = "vertical"   // Children side-by-side, left to right.
	DirectionHorizontal Direction = "horizontal" // Children stacked, top to bottom.
)

// Node is a layout tree node: either a Pane (leaf) or a Split (internal).
type Node interface {
	node()
}

// Pane is a leaf node: one shell command and where to run it.
type Pane struct {
	Command string `yaml:"command"`
	// Directory overrides the inherited root. Absolute and ~-relative
	// paths win outright; relative paths join the enclosing root.
	Directory string `yaml:"directory,omitempty"`
	// SizePercent is display-only metadata. The controlled terminal
	// decides actual pane sizes; this is never enforced.
	SizePercent int `yaml:"size_percent,omitempty"`
}

// Split is an internal node: a direction and an ordered list of children.
// Child order defines left-to-right / top-to-bottom placement and the
// order in which panes are created.
type Split struct {
	Direction Direction `yaml:"direction"`
	Panes     []Node    `yaml:"panes"`
}

func (*Pane) node()  {}
func (*Split) node() {}

// Layout is a named, storable layout document.
type Layout struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// Root is the default working directory for every pane without an
	// override. May use ~; expanded at execution time.
	Root string `yaml:"root,omitempty"`
	Tree Tree   `yaml:"tree"`
}

// Tree wraps the polymorphic Node so yaml can decode it.
type Tree struct {
	Node
}

// rawNode mirrors the union of pane and split fields for decoding.
type rawNode struct {
	Command     string      `yaml:"command"`
	Directory   string      `yaml:"directory"`
	SizePercent int         `yaml:"size_percent"`
	Direction   Direction   `yaml:"direction"`
	Panes       []yaml.Node `yaml:"panes"`
}

// UnmarshalYAML decodes either node shape. A mapping with panes is a
// Split; a mapping with command is a Pane; anything else is an error.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	n, err := decodeNode(value)
	if err != nil {
		return err
	}
	t.Node = n
	return nil
}

func decodeNode(value *yaml.Node) (Node, error) {
	var raw rawNode
	if err := value.Decode(&raw); err != nil {
		return nil, err
	}

	isSplit := raw.Direction != "" || len(raw.Panes) > 0
	if isSplit && raw.Command != "" {
		return nil, fmt.Errorf("line %d: node cannot have both command and panes", value.Line)
	}

	if !isSplit {
		return &Pane{
			Command:     raw.Command,
			Directory:   raw.Directory,
			SizePercent: raw.SizePercent,
		}, nil
	}

	children := make([]Node, 0, len(raw.Panes))
	for i := range raw.Panes {
		child, err := decodeNode(&raw.Panes[i])
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return &Split{Direction: raw.Direction, Panes: children}, nil
}

// MarshalYAML emits the node in the same shape UnmarshalYAML accepts.
func (t Tree) MarshalYAML() (interface{}, error) {
	return marshalNode(t.Node)
}

func marshalNode(n Node) (interface{}, error) {
	switch v := n.(type) {
	case *Pane:
		return v, nil
	case *Split:
		children := make([]interface{}, 0, len(v.Panes))
		for _, child := range v.Panes {
			m, err := marshalNode(child)
			if err != nil {
				return nil, err
			}
			children = append(children, m)
		}
		return map[string]interface{}{
			"direction": v.Direction,
			"panes":     children,
		}, nil
	case nil:
		return nil, fmt.Errorf("empty layout tree")
	default:
		return nil, fmt.Errorf("unknown node type %T", n)
	}
}

// PaneCount returns the number of leaves under n.
func PaneCount(n Node) int {
	switch v := n.(type) {
	case *Pane:
		return 1
	case *Split:
		total := 0
		for _, child := range v.Panes {
			total += PaneCount(child)
		}
		return total
	default:
		return 0
	}
}
