package layout

import (
	"strings"
	"testing"
)

func TestPreviewSingleLeaf(t *testing.T) {
	lines := Preview(&Pane{Command: "nvim ."}, 20, 5)
	if len(lines) != 5 {
		t.Fatalf("len(lines) = %d, want 5", len(lines))
	}
	if !strings.HasPrefix(lines[0], "+") || !strings.HasSuffix(lines[0], "+") {
		t.Errorf("top border = %q, want corner-framed row", lines[0])
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "nvim .") {
		t.Errorf("preview missing command label:\n%s", joined)
	}
}

func TestPreviewVerticalSplitDrawsSideBySide(t *testing.T) {
	node := &Split{Direction: DirectionVertical, Panes: []Node{
		&Pane{Command: "a"},
		&Pane{Command: "b"},
	}}
	lines := Preview(node, 40, 7)

	mid := lines[3]
	left := mid[:20]
	right := mid[20:]
	if !strings.Contains(left, "a") {
		t.Errorf("left half missing pane a: %q", mid)
	}
	if !strings.Contains(right, "b") {
		t.Errorf("right half missing pane b: %q", mid)
	}
}

func TestPreviewTooSmallCanvas(t *testing.T) {
	lines := Preview(&Pane{Command: "zsh"}, 3, 1)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want blank canvas of height 1", len(lines))
	}
	if strings.TrimSpace(lines[0]) != "" {
		t.Errorf("tiny canvas should be blank, got %q", lines[0])
	}
}

func TestSplitSizesHonorsSizePercent(t *testing.T) {
	children := []Node{
		&Pane{Command: "a", SizePercent: 25},
		&Pane{Command: "b"},
	}
	sizes := splitSizes(children, 100)
	if sizes[0] != 25 {
		t.Errorf("sizes[0] = %d, want 25", sizes[0])
	}
	if sizes[0]+sizes[1] != 100 {
		t.Errorf("sizes sum = %d, want 100", sizes[0]+sizes[1])
	}
}
