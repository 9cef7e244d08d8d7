package booster

import "strconv"

// LinearWeights holds the trained parameters of a linear booster: a bias
// term plus one weight per feature.
type LinearWeights struct {
	Bias    float64
	Weights []float64
}

func (w *LinearWeights) predict(features []float64) float64 {
	score := w.Bias
	for i, v := range features {
		if i < len(w.Weights) {
			score += w.Weights[i] * v
		}
	}
	return score
}

// trainLinear fits a linear booster by full-batch gradient descent, one
// update per boosting round.
func trainLinear(ds *Dataset, params map[string]string, numRounds int) (*LinearWeights, error) {
	lr, err := strconv.ParseFloat(params[ParamLearningRate], 64)
	if err != nil || lr <= 0 {
		lr = defaultLearningRate
	}
	lambda, _ := strconv.ParseFloat(params[ParamLambda], 64)
	objective := params[ParamObjective]

	w := &LinearWeights{
		Bias:    initScore(ds.Label, objective),
		Weights: make([]float64, ds.numFeatures),
	}

	n := float64(ds.numData)
	preds := make([]float64, ds.numData)

	for round := 0; round < numRounds; round++ {
		for i := range preds {
			preds[i] = w.predict(ds.Data.RawRowView(i))
		}
		gradients, _ := computeGradients(preds, ds.Label, objective)

		biasGrad := 0.0
		featGrad := make([]float64, ds.numFeatures)
		for i, g := range gradients {
			biasGrad += g
			row := ds.Data.RawRowView(i)
			for j := range featGrad {
				featGrad[j] += g * row[j]
			}
		}

		w.Bias -= lr * biasGrad / n
		for j := range w.Weights {
			w.Weights[j] -= lr * (featGrad[j]/n + lambda*w.Weights[j])
		}
	}

	return w, nil
}
