package booster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/goml-dev/goboost/pkg/errors"
)

func TestTrainRegressionReducesError(t *testing.T) {
	rows := 60
	X := mat.NewDense(rows, 1, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		X.Set(i, 0, float64(i))
		y[i] = 2.0 * float64(i)
	}

	ds, err := NewDataset(X, y)
	require.NoError(t, err)

	few, err := Train(ParseParams("max_depth=3"), ds, 1)
	require.NoError(t, err)
	many, err := Train(ParseParams("max_depth=3"), ds, 30)
	require.NoError(t, err)

	mse := func(b *Booster) float64 {
		preds, err2 := b.Predict(X)
		require.NoError(t, err2)
		sum := 0.0
		for i, p := range preds {
			sum += (p - y[i]) * (p - y[i])
		}
		return sum / float64(rows)
	}

	assert.Less(t, mse(many), mse(few), "more rounds fit the data better")
}

func TestTrainBinaryPredictsProbabilities(t *testing.T) {
	rows := 40
	X := mat.NewDense(rows, 1, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		X.Set(i, 0, float64(i))
		if i >= rows/2 {
			y[i] = 1
		}
	}

	ds, err := NewDataset(X, y)
	require.NoError(t, err)

	b, err := Train(ParseParams("objective=binary:logistic max_depth=2"), ds, 10)
	require.NoError(t, err)

	preds, err := b.Predict(X)
	require.NoError(t, err)
	for _, p := range preds {
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
	// The two halves are separable.
	assert.Less(t, preds[0], 0.5)
	assert.Greater(t, preds[rows-1], 0.5)
}

func TestTrainSetsNiter(t *testing.T) {
	ds, err := NewDatasetFromSlice([]float64{1, 2, 3, 4, 5, 6}, 6, 1, true, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	b, err := Train(nil, ds, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, b.NumIter)

	v, ok, err := b.Attr(AttrNumIter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "6", v, "niter holds the 0-based final round index")
}

func TestTrainValidation(t *testing.T) {
	ds, err := NewDatasetFromSlice([]float64{1, 2}, 2, 1, true, []float64{1, 2})
	require.NoError(t, err)

	_, err = Train(nil, nil, 5)
	assert.Error(t, err)

	_, err = Train(nil, ds, 0)
	assert.Error(t, err)

	_, err = Train(map[string]string{ParamObjective: "rank:pairwise"}, ds, 5)
	assert.Error(t, err)

	_, err = Train(map[string]string{ParamBooster: "dart"}, ds, 5)
	assert.Error(t, err)

	noLabels, err := NewDatasetFromSlice([]float64{1, 2}, 2, 1, true, nil)
	require.NoError(t, err)
	_, err = Train(nil, noLabels, 5)
	assert.Error(t, err)
}

func TestTrainLinearKind(t *testing.T) {
	b := trainedLinearBooster(t)

	assert.Equal(t, KindLinear, b.Kind)
	assert.Nil(t, b.Trees)
	require.NotNil(t, b.Weights)
	assert.Len(t, b.Weights.Weights, b.NumFeatures)
	assert.Equal(t, 0, b.NumTrees())
}

func TestPredictDimensionMismatch(t *testing.T) {
	b := trainedBooster(t)

	X := mat.NewDense(1, 5, nil)
	_, err := b.Predict(X)
	assert.Error(t, err)
}

func TestPredictInvalidHandle(t *testing.T) {
	var nilBooster *Booster
	_, err := nilBooster.Predict(mat.NewDense(1, 1, nil))
	var handleErr *errors.HandleError
	assert.True(t, errors.As(err, &handleErr))
}

func TestModelKindString(t *testing.T) {
	assert.Equal(t, "tree", KindTreeEnsemble.String())
	assert.Equal(t, "linear", KindLinear.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestFeatureNameFallback(t *testing.T) {
	ds, err := NewDatasetFromSlice([]float64{1, 2, 3, 4}, 2, 2, true, []float64{1, 2})
	require.NoError(t, err)

	b, err := Train(nil, ds, 1)
	require.NoError(t, err)
	assert.Equal(t, "f0", b.FeatureName(0))
	assert.Equal(t, "f1", b.FeatureName(1))
}

func TestParseParams(t *testing.T) {
	params := ParseParams("max_depth=4 learning_rate=0.1 objective=binary:logistic")
	assert.Equal(t, "4", params[ParamMaxDepth])
	assert.Equal(t, "0.1", params[ParamLearningRate])
	assert.Equal(t, "binary:logistic", params[ParamObjective])

	assert.Empty(t, ParseParams(""))
}
