package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLayoutsDir returns the directory holding user layout files.
func DefaultLayoutsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "paneweave", "layouts"), nil
}

// Store resolves named layouts from a directory of yaml files, falling
// back to the built-in library. File layouts shadow builtins of the
// same name.
type Store struct {
	dir string
}

// NewStore creates a store over dir. An empty dir means builtins only.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// List returns all available layout names, sorted.
func (s *Store) List() ([]string, error) {
	names := make(map[string]bool)
	for name := range BuiltinLayouts() {
		names[name] = true
	}

	if s.dir != "" {
		entries, err := os.ReadDir(s.dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read layouts directory %s: %w", s.dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			names[strings.TrimSuffix(entry.Name(), ext)] = true
		}
	}

	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Load resolves a layout by name: user file first, then builtin. The
// returned layout is validated.
func (s *Store) Load(name string) (*Layout, error) {
	if s.dir != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(s.dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return LoadFile(path)
			}
		}
	}

	if l, ok := BuiltinLayouts()[name]; ok {
		l := l
		return &l, nil
	}
	return nil, fmt.Errorf("layout %q not found", name)
}

// LoadFile reads and validates a layout document from a yaml file. A
// file without an explicit name takes its basename.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}
	if l.Name == "" {
		base := filepath.Base(path)
		l.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := ValidateLayout(&l); err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return &l, nil
}

func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "bash"
}

// BuiltinLayouts returns the built-in layout library.
//
// These are always available without a layouts directory. User files of
// the same name take precedence.
func BuiltinLayouts() map[string]Layout {
	return map[string]Layout{
		"dev": {
			Name:        "dev",
			Description: "Editor on the left, shell on the right",
			Tree: Tree{Node: &Split{
				Direction: DirectionVertical,
				Panes: []Node{
					&Pane{Command: "nvim ."},
					&Pane{Command: defaultShell()},
				},
			}},
		},
		"dev-server": {
			Name:        "dev-server",
			Description: "Editor left; shell and dev server stacked right",
			Tree: Tree{Node: &Split{
				Direction: DirectionVertical,
				Panes: []Node{
					&Pane{Command: "nvim ."},
					&Split{
						Direction: DirectionHorizontal,
						Panes: []Node{
							&Pane{Command: defaultShell()},
							&Pane{Command: "npm run dev", SizePercent: 30},
						},
					},
				},
			}},
		},
		"triple": {
			Name:        "triple",
			Description: "Three shells side by side",
			Tree: Tree{Node: &Split{
				Direction: DirectionVertical,
				Panes: []Node{
					&Pane{Command: defaultShell()},
					&Pane{Command: defaultShell()},
					&Pane{Command: defaultShell()},
				},
			}},
		},
	}
}
