package layout

import "strings"

// Preview renders an ASCII representation of the pane arrangement onto a
// width×height character canvas, one bordered box per pane labelled with
// its command. Sizes honor SizePercent where set; remaining space is
// shared equally.
func Preview(n Node, width, height int) []string {
	if n == nil || width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	drawNode(canvas, n, 0, 0, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func emptyCanvas(width, height int) []string {
	if width < 1 || height < 1 {
		return nil
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return lines
}

func drawNode(canvas [][]rune, n Node, x, y, w, h int) {
	if w < 2 || h < 2 {
		return
	}

	switch v := n.(type) {
	case *Pane:
		drawBox(canvas, x, y, w, h, v.Command)

	case *Split:
		count := len(v.Panes)
		if count == 0 {
			return
		}

		total := w
		if v.Direction == DirectionHorizontal {
			total = h
		}
		sizes := splitSizes(v.Panes, total)

		offset := 0
		for i, child := range v.Panes {
			size := sizes[i]
			if v.Direction == DirectionVertical {
				drawNode(canvas, child, x+offset, y, size, h)
			} else {
				drawNode(canvas, child, x, y+offset, w, size)
			}
			offset += size
		}
	}
}

// splitSizes divides total cells among children. Children with a
// SizePercent claim that share; the rest split the remainder evenly.
// The last child absorbs rounding slack.
func splitSizes(children []Node, total int) []int {
	sizes := make([]int, len(children))
	remaining := total
	flexible := 0

	for i, child := range children {
		if pane, ok := child.(*Pane); ok && pane.SizePercent > 0 {
			sizes[i] = total * pane.SizePercent / 100
			remaining -= sizes[i]
		} else {
			flexible++
		}
	}

	for i := range sizes {
		if sizes[i] == 0 && flexible > 0 {
			sizes[i] = remaining / flexible
		}
	}

	used := 0
	for _, s := range sizes[:len(sizes)-1] {
		used += s
	}
	sizes[len(sizes)-1] = total - used
	return sizes
}

func drawBox(canvas [][]rune, x, y, w, h int, label string) {
	maxY := len(canvas)
	if maxY == 0 {
		return
	}
	maxX := len(canvas[0])

	for row := y; row < y+h && row < maxY; row++ {
		for col := x; col < x+w && col < maxX; col++ {
			top := row == y
			bottom := row == y+h-1
			left := col == x
			right := col == x+w-1

			switch {
			case (top || bottom) && (left || right):
				canvas[row][col] = '+'
			case top || bottom:
				canvas[row][col] = '-'
			case left || right:
				canvas[row][col] = '|'
			}
		}
	}

	// Center the label on the middle row, truncated to fit the interior.
	if label == "" || h < 3 || w < 4 {
		return
	}
	interior := w - 2
	runes := []rune(label)
	if len(runes) > interior {
		if interior <= 1 {
			return
		}
		runes = append(runes[:interior-1], '…')
	}
	row := y + h/2
	col := x + 1 + (interior-len(runes))/2
	if row >= maxY {
		return
	}
	for i, r := range runes {
		if col+i >= maxX || col+i >= x+w-1 {
			break
		}
		canvas[row][col+i] = r
	}
}
