package layout

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestUnmarshalPane(t *testing.T) {
	doc := `
name: single
tree:
  command: nvim .
  directory: src
  size_percent: 40
`
	var l Layout
	if err := yaml.Unmarshal([]byte(doc), &l); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	pane, ok := l.Tree.Node.(*Pane)
	if !ok {
		t.Fatalf("tree = %T, want *Pane", l.Tree.Node)
	}
	if pane.Command != "nvim ." {
		t.Errorf("Command = %q, want %q", pane.Command, "nvim .")
	}
	if pane.Directory != "src" {
		t.Errorf("Directory = %q, want %q", pane.Directory, "src")
	}
	if pane.SizePercent != 40 {
		t.Errorf("SizePercent = %d, want 40", pane.SizePercent)
	}
}

func TestUnmarshalNestedSplit(t *testing.T) {
	doc := `
name: nested
root: ~/code
tree:
  direction: vertical
  panes:
    - command: nvim .
    - direction: horizontal
      panes:
        - command: zsh
        - command: npm run dev
`
	var l Layout
	if err := yaml.Unmarshal([]byte(doc), &l); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	root, ok := l.Tree.Node.(*Split)
	if !ok {
		t.Fatalf("tree = %T, want *Split", l.Tree.Node)
	}
	if root.Direction != DirectionVertical {
		t.Errorf("Direction = %q, want vertical", root.Direction)
	}
	if len(root.Panes) != 2 {
		t.Fatalf("len(Panes) = %d, want 2", len(root.Panes))
	}

	inner, ok := root.Panes[1].(*Split)
	if !ok {
		t.Fatalf("Panes[1] = %T, want *Split", root.Panes[1])
	}
	if inner.Direction != DirectionHorizontal {
		t.Errorf("inner Direction = %q, want horizontal", inner.Direction)
	}
	if PaneCount(l.Tree.Node) != 3 {
		t.Errorf("PaneCount = %d, want 3", PaneCount(l.Tree.Node))
	}
}

func TestUnmarshalRejectsAmbiguousNode(t *testing.T) {
	doc := `
tree:
  command: nvim .
  direction: vertical
  panes:
    - command: zsh
`
	var l Layout
	err := yaml.Unmarshal([]byte(doc), &l)
	if err == nil {
		t.Fatal("Unmarshal() should reject a node with both command and panes")
	}
	if !strings.Contains(err.Error(), "both command and panes") {
		t.Errorf("error = %v, want mention of ambiguous node", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	original := Layout{
		Name: "rt",
		Tree: Tree{Node: &Split{
			Direction: DirectionVertical,
			Panes: []Node{
				&Pane{Command: "nvim ."},
				&Pane{Command: "zsh", Directory: "sub"},
			},
		}},
	}

	data, err := yaml.Marshal(&original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Layout
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	split, ok := decoded.Tree.Node.(*Split)
	if !ok {
		t.Fatalf("decoded tree = %T, want *Split", decoded.Tree.Node)
	}
	if len(split.Panes) != 2 {
		t.Fatalf("len(Panes) = %d, want 2", len(split.Panes))
	}
	second, ok := split.Panes[1].(*Pane)
	if !ok || second.Command != "zsh" || second.Directory != "sub" {
		t.Errorf("Panes[1] = %+v, want zsh pane with directory sub", split.Panes[1])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr string
	}{
		{
			name: "valid tree",
			node: &Split{Direction: DirectionVertical, Panes: []Node{
				&Pane{Command: "nvim ."},
				&Pane{Command: "zsh", SizePercent: 30},
			}},
		},
		{
			name:    "empty split",
			node:    &Split{Direction: DirectionVertical},
			wantErr: "at least one pane",
		},
		{
			name: "nested empty split",
			node: &Split{Direction: DirectionVertical, Panes: []Node{
				&Pane{Command: "zsh"},
				&Split{Direction: DirectionHorizontal},
			}},
			wantErr: "at least one pane",
		},
		{
			name:    "empty command",
			node:    &Pane{Command: "  "},
			wantErr: "command must not be empty",
		},
		{
			name:    "bad direction",
			node:    &Split{Direction: "diagonal", Panes: []Node{&Pane{Command: "zsh"}}},
			wantErr: "invalid direction",
		},
		{
			name:    "size out of range",
			node:    &Pane{Command: "zsh", SizePercent: 120},
			wantErr: "size_percent",
		},
		{
			name:    "nil node",
			node:    nil,
			wantErr: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateErrorCarriesPath(t *testing.T) {
	node := &Split{Direction: DirectionVertical, Panes: []Node{
		&Pane{Command: "zsh"},
		&Split{Direction: DirectionHorizontal, Panes: []Node{
			&Pane{Command: ""},
		}},
	}}

	err := Validate(node)
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "tree.panes[1].panes[0]") {
		t.Errorf("error path = %v, want tree.panes[1].panes[0]", err)
	}
}
