// Package chainplot renders planar chains, before and after a solve, with gonum/plot.
package chainplot

import (
	"image/color"
	"io"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size is the width and height of a rendered chain.
const Size = 5 * vg.Inch

var (
	startColor  = color.Gray{Y: 150}
	endColor    = color.RGBA{B: 200, A: 255}
	targetColor = color.RGBA{R: 200, A: 255}
)

// Plot draws the starting and final joint positions of a chain, both hanging off the origin, and
// the target. Axes share a scale so segment lengths read true.
func Plot(title string, start, end []r2.Point, target r2.Point) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	startLine, startJoints, err := plotter.NewLinePoints(chainXYs(start))
	if err != nil {
		return nil, errors.Wrap(err, "failed to plot starting pose")
	}
	startLine.Color = startColor
	startLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	startJoints.GlyphStyle.Color = startColor

	endLine, endJoints, err := plotter.NewLinePoints(chainXYs(end))
	if err != nil {
		return nil, errors.Wrap(err, "failed to plot solution")
	}
	endLine.Color = endColor
	endLine.Width = vg.Points(2)
	endJoints.GlyphStyle.Color = endColor

	goal, err := plotter.NewScatter(plotter.XYs{{X: target.X, Y: target.Y}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to plot target")
	}
	goal.GlyphStyle.Shape = draw.CrossGlyph{}
	goal.GlyphStyle.Color = targetColor
	goal.GlyphStyle.Radius = vg.Points(5)

	p.Add(startLine, startJoints, endLine, endJoints, goal)
	p.Legend.Add("start", startLine, startJoints)
	p.Legend.Add("solution", endLine, endJoints)
	p.Legend.Add("target", goal)
	p.Legend.Top = true

	squareAxes(p, append(append([]r2.Point{{}, target}, start...), end...))
	return p, nil
}

// Save renders the chain to path. The image format follows the file extension.
func Save(path, title string, start, end []r2.Point, target r2.Point) error {
	p, err := Plot(title, start, end, target)
	if err != nil {
		return err
	}
	return p.Save(Size, Size, path)
}

// Write renders the chain to w in the given format, e.g. "png" or "svg".
func Write(w io.Writer, format, title string, start, end []r2.Point, target r2.Point) error {
	p, err := Plot(title, start, end, target)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Size, Size, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// chainXYs lists the base followed by every joint.
func chainXYs(positions []r2.Point) plotter.XYs {
	xys := make(plotter.XYs, 0, len(positions)+1)
	xys = append(xys, plotter.XY{})
	for _, p := range positions {
		xys = append(xys, plotter.XY{X: p.X, Y: p.Y})
	}
	return xys
}

func squareAxes(p *plot.Plot, points []r2.Point) {
	rect := r2.RectFromPoints(points...)
	half := math.Max(rect.Size().X, rect.Size().Y)/2 + 0.1
	center := rect.Center()
	p.X.Min, p.X.Max = center.X-half, center.X+half
	p.Y.Min, p.Y.Max = center.Y-half, center.Y+half
}
