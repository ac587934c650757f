// Package plotting draws anomaly scores and ROC curves with gonum/plot.
package plotting

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoData = errors.New("plotting: nothing to plot")

var (
	scoreColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	thresholdColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	chanceColor    = color.RGBA{R: 127, G: 127, B: 127, A: 255}
	dashes         = []vg.Length{vg.Points(4), vg.Points(3)}
)

// AnomalyScore plots one score per sample and the decision threshold.
func AnomalyScore(scores []float64, threshold float64, opts ...Option) (*plot.Plot, error) {
	if len(scores) == 0 {
		return nil, ErrNoData
	}
	o := newOptions("Anomaly score", "Samples", "Anomaly score", opts...)
	p := newPlot(o)

	if o.hist {
		hist, err := plotter.NewHist(plotter.Values(scores), o.bins)
		if err != nil {
			return nil, fmt.Errorf("unable to create histogram: %w", err)
		}
		hist.FillColor = scoreColor
		hist.LineStyle.Color = color.White
		p.Add(hist)
		p.X.Label.Text = "Anomaly score"
		p.Y.Label.Text = "Samples"

		threshLine, err := plotter.NewLine(plotter.XYs{
			{X: threshold, Y: 0},
			{X: threshold, Y: float64(len(scores))},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to create threshold line: %w", err)
		}
		threshLine.LineStyle.Color = thresholdColor
		threshLine.LineStyle.Dashes = dashes
		p.Add(threshLine)
		p.Legend.Add("threshold", threshLine)
		return save(p, o)
	}

	pts := make(plotter.XYs, len(scores))
	for i, s := range scores {
		pts[i].X = float64(i)
		pts[i].Y = s
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("unable to create scatter: %w", err)
	}
	scatter.GlyphStyle.Color = scoreColor
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	threshLine, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: threshold},
		{X: float64(len(scores) - 1), Y: threshold},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create threshold line: %w", err)
	}
	threshLine.LineStyle.Color = thresholdColor
	threshLine.LineStyle.Dashes = dashes
	p.Add(threshLine)
	p.Legend.Add("samples", scatter)
	p.Legend.Add("threshold", threshLine)

	return save(p, o)
}

// ROCCurve plots a ROC curve given as paired false and true positive rates.
func ROCCurve(fpr, tpr []float64, auc float64, opts ...Option) (*plot.Plot, error) {
	if len(fpr) == 0 {
		return nil, ErrNoData
	}
	if len(fpr) != len(tpr) {
		return nil, fmt.Errorf("plotting: fpr and tpr lengths differ: %d != %d", len(fpr), len(tpr))
	}
	o := newOptions("ROC curve", "False positive rate", "True positive rate", opts...)
	p := newPlot(o)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(fpr))
	for i := range fpr {
		pts[i].X = fpr[i]
		pts[i].Y = tpr[i]
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("unable to create roc line: %w", err)
	}
	curve.LineStyle.Color = scoreColor
	curve.LineStyle.Width = vg.Points(2)
	p.Add(curve)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, fmt.Errorf("unable to create chance line: %w", err)
	}
	chance.LineStyle.Color = chanceColor
	chance.LineStyle.Dashes = dashes
	p.Add(chance)

	p.Legend.Add(fmt.Sprintf("ROC curve (area = %.3f)", auc), curve)
	p.Legend.Top = false
	p.Legend.Left = false

	return save(p, o)
}

func newPlot(o Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = o.xLabel
	p.Y.Label.Text = o.yLabel
	if o.grid {
		p.Add(plotter.NewGrid())
	}
	return p
}

func save(p *plot.Plot, o Options) (*plot.Plot, error) {
	if o.filename == "" {
		return p, nil
	}
	if err := p.Save(o.width, o.height, o.filename); err != nil {
		return nil, fmt.Errorf("unable to save plot to %s: %w", o.filename, err)
	}
	return p, nil
}
