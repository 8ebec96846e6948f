package layout

import (
	"os"
	"path/filepath"
	"strings"
)

// homeDir resolves the invoking user's home directory with the same
// fallback chain used elsewhere: UserHomeDir, then $HOME, then ".".
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		home = "."
	}
	return home
}

// ExpandTilde expands ~ and ~/... against the user's home directory.
// Other paths are returned unchanged.
func ExpandTilde(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// ResolveDir computes a pane's effective working directory. Absolute and
// tilde-prefixed overrides win outright; a relative override joins the
// enclosing root; an empty override inherits the root. The root itself
// may be tilde-prefixed.
func ResolveDir(root, override string) string {
	root = ExpandTilde(root)

	if override == "" {
		if root == "" {
			return ""
		}
		return filepath.Clean(root)
	}

	override = ExpandTilde(override)
	if filepath.IsAbs(override) {
		return filepath.Clean(override)
	}
	if root == "" {
		return filepath.Clean(override)
	}
	return filepath.Join(root, override)
}
