package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/1broseidon/paneweave/internal/config"
	"github.com/1broseidon/paneweave/internal/layout"
)

const inlineLayout = `
name: two-pane
root: /repo
tree:
  direction: vertical
  panes:
    - command: nvim .
    - command: zsh
`

func newTestServer() *Server {
	return NewServer(
		config.DefaultConfig(),
		layout.NewStore(""),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestResolveLayoutByName(t *testing.T) {
	s := newTestServer()
	l, err := s.resolveLayout("dev", "")
	if err != nil {
		t.Fatalf("resolveLayout() error = %v", err)
	}
	if l.Name != "dev" {
		t.Errorf("Name = %q, want dev", l.Name)
	}
}

func TestResolveLayoutInlineYaml(t *testing.T) {
	s := newTestServer()
	l, err := s.resolveLayout("", inlineLayout)
	if err != nil {
		t.Fatalf("resolveLayout() error = %v", err)
	}
	if l.Name != "two-pane" {
		t.Errorf("Name = %q, want two-pane", l.Name)
	}
	if got := layout.PaneCount(l.Tree.Node); got != 2 {
		t.Errorf("PaneCount = %d, want 2", got)
	}
}

func TestResolveLayoutArgumentErrors(t *testing.T) {
	s := newTestServer()
	if _, err := s.resolveLayout("", ""); err == nil {
		t.Error("neither name nor yaml should be an error")
	}
	if _, err := s.resolveLayout("dev", inlineLayout); err == nil {
		t.Error("both name and yaml should be an error")
	}
	if _, err := s.resolveLayout("no-such-layout", ""); err == nil {
		t.Error("unknown name should be an error")
	}
}

func TestHandleRunLayoutInvokesRunner(t *testing.T) {
	s := newTestServer()

	var gotName, gotRoot string
	var gotWindow, gotCurrent bool
	s.runFn = func(_ context.Context, l *layout.Layout, root string, newWindow, currentTab bool) error {
		gotName = l.Name
		gotRoot = root
		gotWindow = newWindow
		gotCurrent = currentTab
		return nil
	}

	_, out, err := s.handleRunLayout(context.Background(), nil, RunLayoutInput{
		Name: "dev",
		Root: "/work",
	})
	if err != nil {
		t.Fatalf("handleRunLayout() error = %v", err)
	}
	if gotName != "dev" || gotRoot != "/work" || gotWindow || gotCurrent {
		t.Errorf("runner got (%q, %q, %v, %v)", gotName, gotRoot, gotWindow, gotCurrent)
	}
	if out.Layout != "dev" || out.Panes != 2 {
		t.Errorf("output = %+v, want dev with 2 panes", out)
	}
}

func TestPlanLayoutActionSequence(t *testing.T) {
	s := newTestServer()
	_, out, err := s.handlePlanLayout(context.Background(), nil, PlanLayoutInput{
		Yaml:       inlineLayout,
		CurrentTab: true,
	})
	if err != nil {
		t.Fatalf("handlePlanLayout() error = %v", err)
	}

	want := []string{
		"activate",
		`sendText(cd "/repo" && nvim .)`,
		"enter",
		"split(vertical)",
		"navigate(right)",
		`sendText(cd "/repo" && zsh)`,
		"enter",
		"navigate(left)",
	}
	if len(out.Actions) != len(want) {
		t.Fatalf("actions = %v\nwant %v", out.Actions, want)
	}
	for i := range want {
		if out.Actions[i] != want[i] {
			t.Fatalf("action %d = %q, want %q", i, out.Actions[i], want[i])
		}
	}
}

func TestPlanLayoutNewTabByDefault(t *testing.T) {
	s := newTestServer()
	_, out, err := s.handlePlanLayout(context.Background(), nil, PlanLayoutInput{Yaml: inlineLayout})
	if err != nil {
		t.Fatalf("handlePlanLayout() error = %v", err)
	}
	if len(out.Actions) < 2 || out.Actions[0] != "activate" || out.Actions[1] != "newTab" {
		t.Errorf("actions = %v, want activate then newTab first", out.Actions)
	}
}

func TestHandleListLayoutsIncludesBuiltins(t *testing.T) {
	s := newTestServer()
	_, out, err := s.handleListLayouts(context.Background(), nil, ListLayoutsInput{})
	if err != nil {
		t.Fatalf("handleListLayouts() error = %v", err)
	}

	found := map[string]bool{}
	for _, info := range out.Layouts {
		found[info.Name] = true
	}
	for _, name := range []string{"dev", "dev-server", "triple"} {
		if !found[name] {
			t.Errorf("builtin layout %q missing from list", name)
		}
	}
}

func TestHandleValidateLayout(t *testing.T) {
	s := newTestServer()

	_, out, err := s.handleValidateLayout(context.Background(), nil, ValidateLayoutInput{Yaml: inlineLayout})
	if err != nil {
		t.Fatalf("handleValidateLayout() error = %v", err)
	}
	if !out.Valid || out.Panes != 2 {
		t.Errorf("output = %+v, want valid with 2 panes", out)
	}

	bad := strings.Replace(inlineLayout, "command: zsh", "command: \"\"", 1)
	_, out, err = s.handleValidateLayout(context.Background(), nil, ValidateLayoutInput{Yaml: bad})
	if err != nil {
		t.Fatalf("handleValidateLayout() error = %v", err)
	}
	if out.Valid || out.Error == "" {
		t.Errorf("output = %+v, want invalid with an error message", out)
	}
}
