package layout

import (
	"fmt"
	"strings"
)

// ValidationError reports an invalid value and where in the tree it lives.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the structural invariants the execution engine assumes:
// every Split has at least one child, every Pane has a command, and size
// percentages stay inside 1..100. The engine performs no validation of
// its own, so a tree must pass here before execution.
func Validate(n Node) error {
	return validateNode(n, "tree")
}

// ValidateLayout validates a full layout document.
func ValidateLayout(l *Layout) error {
	if l == nil {
		return &ValidationError{Path: "layout", Err: fmt.Errorf("layout is nil")}
	}
	if strings.TrimSpace(l.Name) == "" {
		return &ValidationError{Path: "name", Err: fmt.Errorf("name is required")}
	}
	return Validate(l.Tree.Node)
}

func validateNode(n Node, path string) error {
	switch v := n.(type) {
	case *Pane:
		if strings.TrimSpace(v.Command) == "" {
			return &ValidationError{Path: path, Err: fmt.Errorf("pane command must not be empty")}
		}
		if v.SizePercent != 0 && (v.SizePercent < 1 || v.SizePercent > 100) {
			return &ValidationError{Path: path + ".size_percent", Err: fmt.Errorf("size_percent must be between 1 and 100")}
		}
		return nil

	case *Split:
		switch v.Direction {
		case DirectionVertical, DirectionHorizontal:
		default:
			return &ValidationError{Path: path + ".direction", Err: fmt.Errorf("invalid direction %q", v.Direction)}
		}
		if len(v.Panes) == 0 {
			return &ValidationError{Path: path + ".panes", Err: fmt.Errorf("split must have at least one pane")}
		}
		for i, child := range v.Panes {
			if err := validateNode(child, fmt.Sprintf("%s.panes[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	case nil:
		return &ValidationError{Path: path, Err: fmt.Errorf("node is empty")}

	default:
		return &ValidationError{Path: path, Err: fmt.Errorf("unknown node type %T", n)}
	}
}
