package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/paneweave/internal/config"
	"github.com/1broseidon/paneweave/internal/layout"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paneweave <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Execute a layout in the configured terminal")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout list         List available layouts")
	fmt.Fprintln(w, "  layout show         Show a layout's tree and preview")
	fmt.Fprintln(w, "  layout validate     Validate a layout file or name")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'paneweave <command> --help' for command-specific options.")
}

// loadConfig loads the effective configuration, from an explicit path
// when given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))
}

// layoutStore builds the layout store from config, falling back to the
// default layouts directory.
func layoutStore(cfg *config.Config) *layout.Store {
	dir := cfg.LayoutsDir
	if dir == "" {
		if d, err := layout.DefaultLayoutsDir(); err == nil {
			dir = d
		}
	}
	return layout.NewStore(layout.ExpandTilde(dir))
}
