package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/paneweave/internal/layout"
)

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  paneweave layout list [--json]")
	fmt.Fprintln(w, "  paneweave layout show <layout>")
	fmt.Fprintln(w, "  paneweave layout validate <layout|file.yaml>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'paneweave layout <command> --help' for command-specific options.")
}

func runLayout(args []string) int {
	if len(args) == 0 {
		printLayoutUsage(os.Stderr)
		return 2
	}
	switch args[0] {
	case "list":
		return runLayoutList(args[1:])
	case "show":
		return runLayoutShow(args[1:])
	case "validate":
		return runLayoutValidate(args[1:])
	case "help", "-h", "--help":
		printLayoutUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown layout command: %s\n\n", args[0])
		printLayoutUsage(os.Stderr)
		return 2
	}
}

func runLayoutList(args []string) int {
	fs := flag.NewFlagSet("layout list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "output as JSON")
	configPath := fs.String("config", "", "config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneweave layout list [--json]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	store := layoutStore(cfg)

	names, err := store.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Panes       int    `json:"panes"`
	}
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		l, err := store.Load(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", name, err)
			continue
		}
		entries = append(entries, entry{
			Name:        l.Name,
			Description: l.Description,
			Panes:       layout.PaneCount(l.Tree.Node),
		})
	}

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, e := range entries {
		fmt.Printf("%-16s %2d panes  %s\n", e.Name, e.Panes, e.Description)
	}
	return 0
}

func runLayoutShow(args []string) int {
	fs := flag.NewFlagSet("layout show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneweave layout show <layout>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "show takes exactly one layout name")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	l, err := resolveLayoutArg(layoutStore(cfg), fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("name: %s\n", l.Name)
	if l.Description != "" {
		fmt.Printf("description: %s\n", l.Description)
	}
	if l.Root != "" {
		fmt.Printf("root: %s\n", l.Root)
	}
	fmt.Printf("panes: %d\n\n", layout.PaneCount(l.Tree.Node))

	width := 60
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
			width = w - 2
		}
	}
	for _, line := range layout.Preview(l.Tree.Node, width, 16) {
		fmt.Println(line)
	}

	fmt.Println()
	data, err := yaml.Marshal(l)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}

func runLayoutValidate(args []string) int {
	fs := flag.NewFlagSet("layout validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneweave layout validate <layout|file.yaml>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "validate takes exactly one layout name or file")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	l, err := resolveLayoutArg(layoutStore(cfg), fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("%s: valid (%d panes)\n", l.Name, layout.PaneCount(l.Tree.Node))
	return 0
}

// resolveLayoutArg treats the argument as a file path when it looks
// like one, otherwise as a stored layout name.
func resolveLayoutArg(store *layout.Store, arg string) (*layout.Layout, error) {
	ext := strings.ToLower(arg)
	if strings.ContainsRune(arg, os.PathSeparator) || strings.HasSuffix(ext, ".yaml") || strings.HasSuffix(ext, ".yml") {
		return layout.LoadFile(arg)
	}
	return store.Load(arg)
}
