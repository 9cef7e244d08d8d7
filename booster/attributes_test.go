package booster

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/goml-dev/goboost/pkg/errors"
)

func strPtr(s string) *string { return &s }

// trainedBooster returns a small trained tree-ensemble handle for tests.
func trainedBooster(t *testing.T) *Booster {
	t.Helper()

	rows := 40
	X := mat.NewDense(rows, 2, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		f0 := float64(i) / float64(rows)
		f1 := float64(i%5) / 5.0
		X.Set(i, 0, f0)
		X.Set(i, 1, f1)
		y[i] = 3.0*f0 + 0.5*f1
	}

	ds, err := NewDataset(X, y)
	require.NoError(t, err)
	require.NoError(t, ds.SetFeatureNames([]string{"age", "income"}))

	b, err := Train(ParseParams("max_depth=3 learning_rate=0.3"), ds, 5)
	require.NoError(t, err)
	return b
}

// trainedLinearBooster returns a small trained linear handle for tests.
func trainedLinearBooster(t *testing.T) *Booster {
	t.Helper()

	rows := 30
	X := mat.NewDense(rows, 2, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i%3))
		y[i] = 2.0*float64(i) + 1.0
	}

	ds, err := NewDataset(X, y)
	require.NoError(t, err)

	b, err := Train(ParseParams("booster=gblinear learning_rate=0.01"), ds, 50)
	require.NoError(t, err)
	return b
}

func TestAttrSetGet(t *testing.T) {
	b := trainedBooster(t)

	require.NoError(t, b.SetAttr("owner", strPtr("team-ml")))

	v, ok, err := b.Attr("owner")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "team-ml", v)

	// Last write wins.
	require.NoError(t, b.SetAttr("owner", strPtr("team-infra")))
	v, ok, err = b.Attr("owner")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "team-infra", v)
}

func TestAttrAbsentKey(t *testing.T) {
	b := trainedBooster(t)

	// Retrieving a missing key is not an error.
	_, ok, err := b.Attr("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttrNilValueDeletes(t *testing.T) {
	b := trainedBooster(t)

	require.NoError(t, b.SetAttr("temp", strPtr("x")))
	require.NoError(t, b.SetAttr("temp", nil))

	_, ok, err := b.Attr("temp")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an already-missing key is a no-op.
	require.NoError(t, b.SetAttr("temp", nil))
}

func TestAttrEmptyKey(t *testing.T) {
	b := trainedBooster(t)

	_, _, err := b.Attr("")
	var keyErr *errors.KeyError
	assert.True(t, errors.As(err, &keyErr))

	err = b.SetAttr("", strPtr("x"))
	assert.True(t, errors.As(err, &keyErr))
}

func TestAttrInvalidHandle(t *testing.T) {
	var nilBooster *Booster
	_, _, err := nilBooster.Attr("k")
	var handleErr *errors.HandleError
	assert.True(t, errors.As(err, &handleErr))

	untrained := &Booster{}
	err = untrained.SetAttr("k", strPtr("v"))
	assert.True(t, errors.As(err, &handleErr))
}

func TestAttrsNiterOnly(t *testing.T) {
	b := trainedBooster(t)

	// Training writes the reserved niter attribute: final round, 0-based.
	kv, ok, err := b.Attrs()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{AttrNumIter: "4"}, kv)
}

func TestAttrsAbsentWhenEmpty(t *testing.T) {
	b := trainedBooster(t)

	// Deleting every user attribute leaves niter behind.
	require.NoError(t, b.SetAttr("a", strPtr("1")))
	require.NoError(t, b.SetAttr("b", strPtr("2")))
	require.NoError(t, b.SetAttr("a", nil))
	require.NoError(t, b.SetAttr("b", nil))

	kv, ok, err := b.Attrs()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{AttrNumIter: "4"}, kv)

	// Explicitly deleting niter empties the store: absent, not an empty map.
	require.NoError(t, b.SetAttr(AttrNumIter, nil))
	kv, ok, err = b.Attrs()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, kv)
}

func TestSetAttrsBulk(t *testing.T) {
	b := trainedBooster(t)

	require.NoError(t, b.SetAttr("drop", strPtr("me")))
	require.NoError(t, b.SetAttrs(map[string]*string{
		"a":    strPtr("1"),
		"b":    strPtr("2"),
		"drop": nil,
	}))

	kv, ok, err := b.Attrs()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", kv["a"])
	assert.Equal(t, "2", kv["b"])
	_, exists := kv["drop"]
	assert.False(t, exists)

	// An empty key rejects the whole batch before any mutation.
	err = b.SetAttrs(map[string]*string{"": strPtr("x")})
	var keyErr *errors.KeyError
	assert.True(t, errors.As(err, &keyErr))
}

func TestAttrsReturnedMapIsACopy(t *testing.T) {
	b := trainedBooster(t)

	require.NoError(t, b.SetAttr("k", strPtr("v")))
	kv, ok, err := b.Attrs()
	require.NoError(t, err)
	require.True(t, ok)

	kv["k"] = "mutated"
	v, _, err := b.Attr("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestAttrDoesNotTouchTrainedParameters(t *testing.T) {
	b := trainedBooster(t)

	X := mat.NewDense(1, 2, []float64{0.5, 0.2})
	before, err := b.Predict(X)
	require.NoError(t, err)

	require.NoError(t, b.SetAttr("note", strPtr("metadata only")))
	require.NoError(t, b.SetAttr("note", nil))

	after, err := b.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFloatAttrRoundTrip(t *testing.T) {
	b := trainedBooster(t)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		// Magnitudes spanning 1e-20 .. 1e20.
		exponent := rng.Float64()*40 - 20
		x := rng.Float64() * math.Pow(10, exponent)
		if rng.Intn(2) == 0 {
			x = -x
		}

		require.NoError(t, b.SetAttr("x", strPtr(FormatFloat(x))))
		v, ok, err := b.Attr("x")
		require.NoError(t, err)
		require.True(t, ok)

		parsed, err := ParseFloat(v)
		require.NoError(t, err)
		assert.Equal(t, x, parsed, "17 significant digits round-trip exactly")
	}
}
