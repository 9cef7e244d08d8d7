package booster

import (
	"gonum.org/v1/gonum/mat"

	"github.com/goml-dev/goboost/pkg/errors"
)

// ModelKind distinguishes the trained representation behind a handle.
type ModelKind int

const (
	// KindUnknown marks an uninitialized handle.
	KindUnknown ModelKind = iota
	// KindTreeEnsemble is a gradient-boosted decision tree ensemble.
	KindTreeEnsemble
	// KindLinear is a boosted linear model (bias plus one weight per feature).
	KindLinear
)

func (k ModelKind) String() string {
	switch k {
	case KindTreeEnsemble:
		return "tree"
	case KindLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Booster is an explicit handle to trained boosting state plus its attribute
// store. Handles are created by Train or Load and released by the garbage
// collector; they hold no resources beyond memory.
type Booster struct {
	Kind ModelKind

	// Training parameters, canonical key=value form.
	Params map[string]string

	// Objective function ("reg:squarederror", "binary:logistic").
	Objective string
	// InitScore is the baseline prediction before any round.
	InitScore float64

	NumFeatures  int
	FeatureNames []string

	// Trained parameters. Exactly one of these is populated, per Kind.
	Trees   []Tree
	Weights *LinearWeights

	// NumIter is the number of completed boosting rounds.
	NumIter int

	attrs attrStore
}

// check validates the handle before an operation.
func (b *Booster) check(op string) error {
	if b == nil {
		return errors.NewHandleError(op, "nil handle")
	}
	if b.Kind == KindUnknown {
		return errors.NewHandleError(op, "handle is not a trained model")
	}
	return nil
}

// requireTrees validates the handle and that it carries a tree ensemble.
func (b *Booster) requireTrees(op string) error {
	if err := b.check(op); err != nil {
		return err
	}
	if b.Kind != KindTreeEnsemble {
		return errors.NewUnsupportedKindError(op, b.Kind.String())
	}
	return nil
}

// NumTrees returns the number of trees in the ensemble, zero for linear
// models.
func (b *Booster) NumTrees() int {
	if b == nil {
		return 0
	}
	return len(b.Trees)
}

// FeatureName returns the name of feature i, falling back to "f<i>" when no
// names were supplied at training time.
func (b *Booster) FeatureName(i int) string {
	if i < len(b.FeatureNames) && b.FeatureNames[i] != "" {
		return b.FeatureNames[i]
	}
	return defaultFeatureName(i)
}

// Predict returns one prediction per row of X. Binary objectives are passed
// through the sigmoid; everything else is the raw margin.
func (b *Booster) Predict(X mat.Matrix) ([]float64, error) {
	if err := b.check("Predict"); err != nil {
		return nil, err
	}
	rows, cols := X.Dims()
	if cols != b.NumFeatures {
		return nil, errors.Newf("feature dimension mismatch: expected %d, got %d", b.NumFeatures, cols)
	}

	preds := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, X)
		preds[i] = b.predictRaw(row)
	}

	if b.Objective == ObjectiveBinary {
		for i := range preds {
			preds[i] = sigmoid(preds[i])
		}
	}
	return preds, nil
}

// predictRaw returns the untransformed margin for a single sample.
func (b *Booster) predictRaw(features []float64) float64 {
	switch b.Kind {
	case KindLinear:
		return b.Weights.predict(features)
	default:
		score := b.InitScore
		lr := b.learningRate()
		for i := range b.Trees {
			score += b.Trees[i].Predict(features) * lr
		}
		return score
	}
}

func (b *Booster) learningRate() float64 {
	lr, err := ParseFloat(b.Params[ParamLearningRate])
	if err != nil || lr <= 0 {
		return defaultLearningRate
	}
	return lr
}
