package render

import (
	"fmt"
	"image/color"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"habitmap/internal/layout"
)

const (
	cornerRadius = 8
	fontFamily   = "system-ui,sans-serif"
	labelPad     = 12
	subRowHeight = 32
	nextMarkerID = "next-arrow"
)

// WriteSVG renders the map as a standalone SVG document.
func WriteSVG(w io.Writer, res layout.Result, style Style) error {
	canvas := svg.New(w)
	canvas.Start(res.Width, res.Height)
	canvas.Def()
	// Arrowhead for directed next edges, pointing along the line.
	canvas.Marker(nextMarkerID, 9, 5, 10, 10, `orient="auto"`)
	canvas.Path("M0,0 L10,5 L0,10 z", "fill:"+cssRGBA(style.EdgeNext))
	canvas.MarkerEnd()
	canvas.DefEnd()
	canvas.Rect(0, 0, res.Width, res.Height, "fill:"+cssRGBA(style.Background))

	byID := nodeIndex(res)
	for _, e := range res.Edges {
		drawEdgeSVG(canvas, byID, e, style)
	}
	for _, n := range res.Nodes {
		drawNodeSVG(canvas, n, style)
	}

	canvas.End()
	return nil
}

// SaveSVG renders the map to a file.
func SaveSVG(path string, res layout.Result, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	if err := WriteSVG(f, res, style); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func nodeIndex(res layout.Result) map[string]layout.Node {
	byID := make(map[string]layout.Node, len(res.Nodes))
	for _, n := range res.Nodes {
		byID[n.ID] = n
	}
	return byID
}

func drawNodeSVG(canvas *svg.SVG, n layout.Node, style Style) {
	fill, border := nodeColors(n, style)
	canvas.Roundrect(n.X, n.Y, n.Width, n.Height, cornerRadius, cornerRadius,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", cssRGBA(fill), cssRGBA(border)))

	textStyle := fmt.Sprintf("fill:%s;font-size:13px;font-family:%s", cssRGBA(style.Text), fontFamily)
	switch n.Kind {
	case layout.NodeGoal:
		canvas.Text(n.X+labelPad, n.Y+n.Height/2+5, clip(n.Label, n.Width),
			fmt.Sprintf("fill:%s;font-size:14px;font-family:%s;font-weight:600", cssRGBA(style.Text), fontFamily))
	case layout.NodeHabit:
		canvas.Text(n.X+labelPad, n.Y+24, clip(habitLabel(n), n.Width), textStyle)
	case layout.NodeMainGroup:
		canvas.Text(n.X+labelPad, n.Y+24, clip(habitLabel(n), n.Width), textStyle)
		subStyle := fmt.Sprintf("fill:%s;font-size:12px;font-family:%s", cssRGBA(style.TextMuted), fontFamily)
		for i, sub := range n.Subs {
			y := n.Y + 40 + i*subRowHeight
			canvas.Line(n.X+labelPad, y-6, n.X+n.Width-labelPad, y-6,
				fmt.Sprintf("stroke:%s;stroke-width:0.5", cssRGBA(style.Border)))
			canvas.Text(n.X+labelPad+8, y+12, clip(sub.Label, n.Width-8), subStyle)
		}
	}
}

func drawEdgeSVG(canvas *svg.SVG, byID map[string]layout.Node, e layout.Edge, style Style) {
	src, ok := byID[e.Source]
	if !ok {
		return
	}
	dst, ok := byID[e.Target]
	if !ok {
		return
	}
	switch e.Kind {
	case layout.EdgeGoalChild:
		// Elbow from the parent's bottom center to the child's top center.
		x1, y1 := src.X+src.Width/2, src.Y+src.Height
		x2, y2 := dst.X+dst.Width/2, dst.Y
		midY := (y1 + y2) / 2
		canvas.Path(fmt.Sprintf("M%d,%d L%d,%d L%d,%d L%d,%d", x1, y1, x1, midY, x2, midY, x2, y2),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", cssRGBA(style.EdgeChild)))
	case layout.EdgeGoalHabit:
		// Elbow from the goal's right edge down into the habit's left edge.
		x1, y1 := src.X+src.Width, src.Y+src.Height/2
		x2, y2 := dst.X, dst.Y+dst.Height/2
		canvas.Path(fmt.Sprintf("M%d,%d L%d,%d L%d,%d", x1, y1, x1+(x2-x1)/2, y1, x2, y2),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", cssRGBA(style.EdgeHabit)))
	case layout.EdgeNext:
		x1, y1 := src.X+src.Width/2, src.Y+src.Height
		x2, y2 := dst.X+dst.Width/2, dst.Y
		canvas.Line(x1, y1, x2, y2,
			fmt.Sprintf("stroke:%s;stroke-width:1.5;stroke-dasharray:6,4;marker-end:url(#%s)",
				cssRGBA(style.EdgeNext), nextMarkerID))
	}
}

func nodeColors(n layout.Node, style Style) (fill, border color.RGBA) {
	switch n.Kind {
	case layout.NodeGoal:
		if n.Done {
			return style.GoalDone, style.Border
		}
		return style.GoalFill, style.Border
	case layout.NodeMainGroup:
		return style.GroupFill, style.Border
	default:
		if n.Done {
			return style.HabitDone, style.Border
		}
		return style.HabitFill, style.Border
	}
}

// habitLabel appends completion progress when the habit has a target.
func habitLabel(n layout.Node) string {
	if n.Target > 0 {
		return fmt.Sprintf("%s (%d/%d)", n.Label, n.Count, n.Target)
	}
	if n.Count > 0 {
		return fmt.Sprintf("%s (%d)", n.Label, n.Count)
	}
	return n.Label
}

// clip truncates a label to roughly fit the node width at the render font.
func clip(label string, width int) string {
	max := (width - 2*labelPad) / 7
	if max < 4 {
		max = 4
	}
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max-1]) + "…"
}
