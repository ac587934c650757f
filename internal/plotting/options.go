package plotting

import (
	"gonum.org/v1/plot/vg"
)

const (
	defaultWidth  = 6 * vg.Inch
	defaultHeight = 4 * vg.Inch
	defaultBins   = 10
)

type Option func(*Options)

// Options controls the decoration and output of a plot.
type Options struct {
	title    string
	xLabel   string
	yLabel   string
	grid     bool
	hist     bool
	bins     int
	width    vg.Length
	height   vg.Length
	filename string
}

func WithTitle(title string) Option {
	return func(o *Options) {
		o.title = title
	}
}

func WithXLabel(label string) Option {
	return func(o *Options) {
		o.xLabel = label
	}
}

func WithYLabel(label string) Option {
	return func(o *Options) {
		o.yLabel = label
	}
}

func WithGrid(grid bool) Option {
	return func(o *Options) {
		o.grid = grid
	}
}

// WithHist draws the score distribution as a histogram with the given number
// of bins instead of a per-sample scatter.
func WithHist(bins int) Option {
	return func(o *Options) {
		o.hist = true
		o.bins = bins
	}
}

func WithSize(width, height vg.Length) Option {
	return func(o *Options) {
		o.width = width
		o.height = height
	}
}

// WithFilename saves the plot once drawn. The format follows the extension.
func WithFilename(name string) Option {
	return func(o *Options) {
		o.filename = name
	}
}

func newOptions(title, xLabel, yLabel string, opts ...Option) Options {
	o := Options{
		title:  title,
		xLabel: xLabel,
		yLabel: yLabel,
		grid:   true,
		bins:   defaultBins,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, f := range opts {
		f(&o)
	}
	if o.bins <= 0 {
		o.bins = defaultBins
	}
	return o
}
