package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/paneweave/internal/engine"
	"github.com/1broseidon/paneweave/internal/layout"
	"github.com/1broseidon/paneweave/internal/mcp"
	"github.com/1broseidon/paneweave/internal/target"
	"github.com/1broseidon/paneweave/internal/x11"
)

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	root := fs.String("root", "", "root working directory for all panes")
	file := fs.String("file", "", "load the layout from a yaml file instead of by name")
	window := fs.Bool("window", false, "open the layout in a new terminal window")
	currentTab := fs.Bool("current-tab", false, "build the layout in the current tab instead of a new one")
	dryRun := fs.Bool("dry-run", false, "print the automation actions without touching the terminal")
	configPath := fs.String("config", "", "config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paneweave run [options] <layout>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Execute a named layout, or one from --file, in the configured terminal.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *file == "" && fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run takes exactly one layout name (or --file)")
		fs.Usage()
		return 2
	}
	if *file != "" && fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes either a layout name or --file, not both")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg)

	var l *layout.Layout
	if *file != "" {
		l, err = layout.LoadFile(*file)
	} else {
		l, err = layoutStore(cfg).Load(fs.Arg(0))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dryRun {
		actions, err := mcp.Plan(ctx, cfg.Terminal, l, *root, *window, *currentTab)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("Plan for layout %q (%d panes):\n", l.Name, layout.PaneCount(l.Tree.Node))
		for i, action := range actions {
			fmt.Printf("  %2d. %s\n", i+1, action)
		}
		return 0
	}

	bindings, ok := cfg.Bindings(cfg.Terminal)
	if !ok {
		fmt.Fprintf(os.Stderr, "terminal %q has no key bindings configured\n", cfg.Terminal)
		return 1
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to X server: %v\n", err)
		return 1
	}
	defer conn.Close()

	tgt := target.NewX11Target(conn, cfg.Terminal, target.KeyBindings{
		NewTab:          bindings.NewTab,
		NewWindow:       bindings.NewWindow,
		SplitVertical:   bindings.SplitVertical,
		SplitHorizontal: bindings.SplitHorizontal,
		NavigateLeft:    bindings.NavigateLeft,
		NavigateRight:   bindings.NavigateRight,
		NavigateUp:      bindings.NavigateUp,
		NavigateDown:    bindings.NavigateDown,
	}, logger)

	opts := engine.OptionsFromConfig(cfg)
	opts.Logger = logger
	eng := engine.New(tgt, opts)

	if err := eng.Prepare(ctx, *window, *currentTab); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := eng.Execute(ctx, l, *root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	names := make([]string, 0)
	for tag, stats := range eng.Delays().AllStats() {
		if tag != "" && stats.Samples > 0 {
			names = append(names, tag)
		}
	}
	logger.Debug("delay contexts used", "tags", strings.Join(names, ","))
	return 0
}
