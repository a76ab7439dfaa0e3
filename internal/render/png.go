package render

import (
	"math"

	"git.sr.ht/~sbinet/gg"

	"habitmap/internal/layout"
)

const arrowSpread = math.Pi / 7

// SavePNG renders the map to a PNG file.
func SavePNG(path string, res layout.Result, style Style) error {
	dc := gg.NewContext(res.Width, res.Height)
	dc.SetColor(style.Background)
	dc.Clear()

	byID := nodeIndex(res)
	for _, e := range res.Edges {
		drawEdgePNG(dc, byID, e, style)
	}
	for _, n := range res.Nodes {
		drawNodePNG(dc, n, style)
	}

	return dc.SavePNG(path)
}

func drawNodePNG(dc *gg.Context, n layout.Node, style Style) {
	fill, border := nodeColors(n, style)
	x, y := float64(n.X), float64(n.Y)
	w, h := float64(n.Width), float64(n.Height)

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, cornerRadius)
	dc.Fill()
	dc.SetColor(border)
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(x, y, w, h, cornerRadius)
	dc.Stroke()

	dc.SetColor(style.Text)
	switch n.Kind {
	case layout.NodeGoal:
		dc.DrawStringAnchored(clip(n.Label, n.Width), x+labelPad, y+h/2, 0, 0.35)
	case layout.NodeHabit:
		dc.DrawStringAnchored(clip(habitLabel(n), n.Width), x+labelPad, y+20, 0, 0.35)
	case layout.NodeMainGroup:
		dc.DrawStringAnchored(clip(habitLabel(n), n.Width), x+labelPad, y+20, 0, 0.35)
		dc.SetColor(style.TextMuted)
		for i, sub := range n.Subs {
			rowY := y + 40 + float64(i*subRowHeight)
			dc.SetLineWidth(0.5)
			dc.SetColor(style.Border)
			dc.DrawLine(x+labelPad, rowY-6, x+w-labelPad, rowY-6)
			dc.Stroke()
			dc.SetColor(style.TextMuted)
			dc.DrawStringAnchored(clip(sub.Label, n.Width-8), x+labelPad+8, rowY+8, 0, 0.35)
		}
	}
}

func drawEdgePNG(dc *gg.Context, byID map[string]layout.Node, e layout.Edge, style Style) {
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
		x1, y1 := float64(src.X+src.Width/2), float64(src.Y+src.Height)
		x2, y2 := float64(dst.X+dst.Width/2), float64(dst.Y)
		midY := (y1 + y2) / 2
		dc.SetColor(style.EdgeChild)
		dc.SetLineWidth(2)
		dc.MoveTo(x1, y1)
		dc.LineTo(x1, midY)
		dc.LineTo(x2, midY)
		dc.LineTo(x2, y2)
		dc.Stroke()
	case layout.EdgeGoalHabit:
		x1, y1 := float64(src.X+src.Width), float64(src.Y+src.Height/2)
		x2, y2 := float64(dst.X), float64(dst.Y+dst.Height/2)
		dc.SetColor(style.EdgeHabit)
		dc.SetLineWidth(1.5)
		dc.MoveTo(x1, y1)
		dc.LineTo(x1+(x2-x1)/2, y1)
		dc.LineTo(x2, y2)
		dc.Stroke()
	case layout.EdgeNext:
		x1, y1 := float64(src.X+src.Width/2), float64(src.Y+src.Height)
		x2, y2 := float64(dst.X+dst.Width/2), float64(dst.Y)
		dc.SetColor(style.EdgeNext)
		dc.SetLineWidth(1.5)
		dc.SetDash(6, 4)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		dc.SetDash()
		drawArrowheadPNG(dc, x1, y1, x2, y2)
	}
}

// drawArrowheadPNG fills a triangle at (x2, y2) pointing along the line from
// (x1, y1), marking the edge direction.
func drawArrowheadPNG(dc *gg.Context, x1, y1, x2, y2 float64) {
	const size = 9.0
	angle := math.Atan2(y2-y1, x2-x1)
	left := angle + math.Pi - arrowSpread
	right := angle + math.Pi + arrowSpread
	dc.MoveTo(x2, y2)
	dc.LineTo(x2+size*math.Cos(left), y2+size*math.Sin(left))
	dc.LineTo(x2+size*math.Cos(right), y2+size*math.Sin(right))
	dc.ClosePath()
	dc.Fill()
}
