// Package mcp exposes paneweave over the Model Context Protocol so
// agents can run, plan, and inspect layouts through stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/paneweave/internal/config"
	"github.com/1broseidon/paneweave/internal/engine"
	"github.com/1broseidon/paneweave/internal/layout"
	"github.com/1broseidon/paneweave/internal/target"
	"github.com/1broseidon/paneweave/internal/timing"
	"github.com/1broseidon/paneweave/internal/x11"
)

const (
	ServerName    = "paneweave"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for layout execution.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	store     *layout.Store
	logger    *slog.Logger

	// runFn executes a layout against the real terminal; tests stub it.
	runFn func(ctx context.Context, l *layout.Layout, root string, newWindow, currentTab bool) error
}

// NewServer creates an MCP server over the given config and layout store.
func NewServer(cfg *config.Config, store *layout.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}
	s.runFn = s.runOnTerminal

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_layout",
		Description: "Execute a pane layout in the configured terminal emulator. Accepts a stored layout name or an inline yaml document. By default the layout opens in a new tab; pass current_tab to reuse the focused tab or new_window for a separate window.",
	}, s.handleRunLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "plan_layout",
		Description: "Dry-run a layout and return the ordered list of automation actions (splits, navigation, commands) it would perform, without touching the terminal.",
	}, s.handlePlanLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the available layouts: built-ins plus yaml files from the layouts directory.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "validate_layout",
		Description: "Validate a layout by name or inline yaml and report the first problem found, if any.",
	}, s.handleValidateLayout)
}

// resolveLayout loads a layout from the store by name or parses an
// inline yaml document. Exactly one of the two must be given.
func (s *Server) resolveLayout(name, inline string) (*layout.Layout, error) {
	hasName := strings.TrimSpace(name) != ""
	hasYaml := strings.TrimSpace(inline) != ""
	switch {
	case hasName && hasYaml:
		return nil, fmt.Errorf("pass either name or yaml, not both")
	case hasName:
		return s.store.Load(name)
	case hasYaml:
		var l layout.Layout
		if err := yaml.Unmarshal([]byte(inline), &l); err != nil {
			return nil, fmt.Errorf("failed to parse layout yaml: %w", err)
		}
		if l.Name == "" {
			l.Name = "inline"
		}
		if err := layout.ValidateLayout(&l); err != nil {
			return nil, err
		}
		return &l, nil
	default:
		return nil, fmt.Errorf("either name or yaml is required")
	}
}

// runOnTerminal drives the real terminal over X11.
func (s *Server) runOnTerminal(ctx context.Context, l *layout.Layout, root string, newWindow, currentTab bool) error {
	bindings, ok := s.config.Bindings(s.config.Terminal)
	if !ok {
		return fmt.Errorf("terminal %q has no key bindings configured", s.config.Terminal)
	}

	conn, err := x11.NewConnection()
	if err != nil {
		return fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	tgt := target.NewX11Target(conn, s.config.Terminal, target.KeyBindings{
		NewTab:          bindings.NewTab,
		NewWindow:       bindings.NewWindow,
		SplitVertical:   bindings.SplitVertical,
		SplitHorizontal: bindings.SplitHorizontal,
		NavigateLeft:    bindings.NavigateLeft,
		NavigateRight:   bindings.NavigateRight,
		NavigateUp:      bindings.NavigateUp,
		NavigateDown:    bindings.NavigateDown,
	}, s.logger)

	opts := engine.OptionsFromConfig(s.config)
	opts.Logger = s.logger
	eng := engine.New(tgt, opts)

	if err := eng.Prepare(ctx, newWindow, currentTab); err != nil {
		return err
	}
	return eng.Execute(ctx, l, root)
}

func (s *Server) handleRunLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args RunLayoutInput) (*mcpsdk.CallToolResult, RunLayoutOutput, error) {
	l, err := s.resolveLayout(args.Name, args.Yaml)
	if err != nil {
		return nil, RunLayoutOutput{}, err
	}

	s.logger.Info("run_layout", "layout", l.Name, "root", args.Root, "new_window", args.NewWindow, "current_tab", args.CurrentTab)
	if err := s.runFn(ctx, l, args.Root, args.NewWindow, args.CurrentTab); err != nil {
		return nil, RunLayoutOutput{}, err
	}

	return nil, RunLayoutOutput{
		Layout: l.Name,
		Panes:  layout.PaneCount(l.Tree.Node),
	}, nil
}

func (s *Server) handlePlanLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args PlanLayoutInput) (*mcpsdk.CallToolResult, PlanLayoutOutput, error) {
	l, err := s.resolveLayout(args.Name, args.Yaml)
	if err != nil {
		return nil, PlanLayoutOutput{}, err
	}

	actions, err := Plan(ctx, s.config.Terminal, l, args.Root, args.NewWindow, args.CurrentTab)
	if err != nil {
		return nil, PlanLayoutOutput{}, err
	}

	return nil, PlanLayoutOutput{
		Layout:  l.Name,
		Panes:   layout.PaneCount(l.Tree.Node),
		Actions: actions,
	}, nil
}

// Plan executes a layout against an in-memory recorder and returns the
// action sequence the real run would perform.
func Plan(ctx context.Context, terminal string, l *layout.Layout, root string, newWindow, currentTab bool) ([]string, error) {
	rec := target.NewRecorder(terminal)

	opts := engine.DefaultOptions()
	opts.Timing = timing.Config{
		Base: time.Millisecond,
		Min:  time.Millisecond,
		Max:  time.Millisecond,
	}
	eng := engine.New(rec, opts)

	if err := eng.Prepare(ctx, newWindow, currentTab); err != nil {
		return nil, err
	}
	if err := eng.Execute(ctx, l, root); err != nil {
		return nil, err
	}
	return rec.CallStrings(), nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}

	out := ListLayoutsOutput{Layouts: make([]LayoutInfo, 0, len(names))}
	for _, name := range names {
		l, err := s.store.Load(name)
		if err != nil {
			s.logger.Warn("skipping unreadable layout", "layout", name, "error", err)
			continue
		}
		out.Layouts = append(out.Layouts, LayoutInfo{
			Name:        l.Name,
			Description: l.Description,
			Panes:       layout.PaneCount(l.Tree.Node),
		})
	}
	return nil, out, nil
}

func (s *Server) handleValidateLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args ValidateLayoutInput) (*mcpsdk.CallToolResult, ValidateLayoutOutput, error) {
	l, err := s.resolveLayout(args.Name, args.Yaml)
	if err != nil {
		return nil, ValidateLayoutOutput{Valid: false, Error: err.Error()}, nil
	}
	return nil, ValidateLayoutOutput{
		Valid: true,
		Panes: layout.PaneCount(l.Tree.Node),
	}, nil
}
