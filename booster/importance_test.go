package booster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goml-dev/goboost/pkg/errors"
)

func TestFeatureImportanceSplit(t *testing.T) {
	b := trainedBooster(t)

	importance, err := b.FeatureImportance(ImportanceSplit)
	require.NoError(t, err)
	require.Len(t, importance, b.NumFeatures)

	sum := 0.0
	for _, v := range importance {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9, "importances sum to 1")
}

func TestFeatureImportanceGainFavorsSignal(t *testing.T) {
	b := trainedBooster(t)

	// The fixture target is dominated by feature 0.
	importance, err := b.FeatureImportance(ImportanceGain)
	require.NoError(t, err)
	require.Len(t, importance, 2)
	assert.Greater(t, importance[0], importance[1],
		"feature 0 carries most of the gain")
}

func TestFeatureImportanceCover(t *testing.T) {
	b := trainedBooster(t)

	importance, err := b.FeatureImportance(ImportanceCover)
	require.NoError(t, err)
	require.Len(t, importance, b.NumFeatures)
}

func TestFeatureImportanceUnsupportedForLinear(t *testing.T) {
	b := trainedLinearBooster(t)

	for _, typ := range []string{ImportanceSplit, ImportanceGain, ImportanceCover} {
		_, err := b.FeatureImportance(typ)
		var kindErr *errors.UnsupportedKindError
		assert.True(t, errors.As(err, &kindErr), "type %s", typ)
	}
}

func TestFeatureImportanceWeight(t *testing.T) {
	b := trainedLinearBooster(t)

	importance, err := b.FeatureImportance(ImportanceWeight)
	require.NoError(t, err)
	require.Len(t, importance, b.NumFeatures)

	// Weight importance is not available on tree ensembles.
	tree := trainedBooster(t)
	_, err = tree.FeatureImportance(ImportanceWeight)
	assert.Error(t, err)
}

func TestFeatureImportanceUnknownType(t *testing.T) {
	b := trainedBooster(t)

	_, err := b.FeatureImportance("nonsense")
	assert.Error(t, err)
}

func TestTreeInfos(t *testing.T) {
	b := trainedBooster(t)

	infos, err := b.TreeInfos()
	require.NoError(t, err)
	require.Len(t, infos, b.NumTrees())

	for i, info := range infos {
		assert.Equal(t, i, info.Index)
		assert.GreaterOrEqual(t, info.NumLeaves, 1)
		// A tree with n leaves has 2n-1 nodes.
		assert.Equal(t, 2*info.NumLeaves-1, info.NumNodes)
		assert.LessOrEqual(t, info.MaxDepth, 3, "max_depth=3 was requested")
	}
}

func TestTreeInfosUnsupportedForLinear(t *testing.T) {
	b := trainedLinearBooster(t)

	_, err := b.TreeInfos()
	var kindErr *errors.UnsupportedKindError
	assert.True(t, errors.As(err, &kindErr))
}
