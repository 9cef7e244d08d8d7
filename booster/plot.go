package booster

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/goml-dev/goboost/pkg/errors"
)

// PlotImportance renders a feature importance bar chart and saves it to
// path. The output format follows the file extension (.png, .svg, .pdf).
func PlotImportance(b *Booster, importanceType, path string) error {
	importance, err := b.FeatureImportance(importanceType)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Feature importance (" + importanceType + ")"
	p.Y.Label.Text = importanceType

	bars, err := plotter.NewBarChart(plotter.Values(importance), vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "failed to build bar chart")
	}
	p.Add(bars)

	names := make([]string, b.NumFeatures)
	for i := range names {
		names[i] = b.FeatureName(i)
	}
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save importance plot to %s", path)
	}
	return nil
}
