package booster

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/goml-dev/goboost/pkg/errors"
	"github.com/goml-dev/goboost/pkg/log"
)

// Canonical training parameter keys.
const (
	ParamBooster       = "booster"
	ParamObjective     = "objective"
	ParamLearningRate  = "learning_rate"
	ParamMaxDepth      = "max_depth"
	ParamMinDataInLeaf = "min_data_in_leaf"
	ParamLambda        = "lambda"
	ParamMinSplitGain  = "min_split_gain"
)

// Objective names.
const (
	ObjectiveSquared = "reg:squarederror"
	ObjectiveBinary  = "binary:logistic"
)

// Booster kinds accepted by the "booster" parameter.
const (
	BoosterGBTree   = "gbtree"
	BoosterGBLinear = "gblinear"
)

const defaultLearningRate = 0.3

// trainDeprecated maps deprecated parameter spellings onto canonical keys.
// ResolveParams consults it before training.
var trainDeprecated = map[string]string{
	"eta":              ParamLearningRate,
	"shrinkage_rate":   ParamLearningRate,
	"min_child_weight": ParamMinDataInLeaf,
	"reg_lambda":       ParamLambda,
	"gamma":            ParamMinSplitGain,
}

// trainCanonical lists every canonical training parameter.
var trainCanonical = []string{
	ParamBooster,
	ParamObjective,
	ParamLearningRate,
	ParamMaxDepth,
	ParamMinDataInLeaf,
	ParamLambda,
	ParamMinSplitGain,
}

// ParseParams parses a space-separated "key=value" parameter string.
func ParseParams(parameters string) map[string]string {
	params := make(map[string]string)
	if parameters == "" {
		return params
	}

	pairs := strings.Split(parameters, " ")
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 {
			params[kv[0]] = kv[1]
		}
	}

	return params
}

func applyDefaultParams(params map[string]string) {
	defaults := map[string]string{
		ParamBooster:       BoosterGBTree,
		ParamObjective:     ObjectiveSquared,
		ParamLearningRate:  "0.3",
		ParamMaxDepth:      "6",
		ParamMinDataInLeaf: "1",
		ParamLambda:        "1.0",
		ParamMinSplitGain:  "0.0",
	}

	for k, v := range defaults {
		if _, exists := params[k]; !exists {
			params[k] = v
		}
	}
}

// Train runs numRounds boosting rounds over ds and returns a trained handle.
// Deprecated parameter spellings are resolved onto canonical names with a
// warning first. On completion the reserved "niter" attribute records the
// final 0-based round index.
func Train(params map[string]string, ds *Dataset, numRounds int) (*Booster, error) {
	if ds == nil || ds.numData == 0 {
		return nil, errors.ErrEmptyData
	}
	if ds.Label == nil {
		return nil, errors.NewValueError("Train", "dataset has no labels")
	}
	if numRounds <= 0 {
		return nil, errors.NewValueError("Train", "numRounds must be positive")
	}

	resolved := ResolveParams(params, trainCanonical, trainDeprecated)
	applyDefaultParams(resolved)

	objective := resolved[ParamObjective]
	switch objective {
	case ObjectiveSquared, ObjectiveBinary:
	default:
		return nil, errors.NewValueError("Train", "unknown objective: "+objective)
	}

	var kind ModelKind
	switch resolved[ParamBooster] {
	case BoosterGBTree:
		kind = KindTreeEnsemble
	case BoosterGBLinear:
		kind = KindLinear
	default:
		return nil, errors.NewValueError("Train", "unknown booster: "+resolved[ParamBooster])
	}

	b := &Booster{
		Kind:         kind,
		Params:       resolved,
		Objective:    objective,
		NumFeatures:  ds.numFeatures,
		FeatureNames: ds.FeatureNames,
	}

	if kind == KindLinear {
		weights, err := trainLinear(ds, resolved, numRounds)
		if err != nil {
			return nil, err
		}
		b.Weights = weights
	} else {
		b.InitScore = initScore(ds.Label, objective)
		b.Trees = make([]Tree, 0, numRounds)

		for round := 0; round < numRounds; round++ {
			preds := make([]float64, ds.numData)
			for i := range preds {
				preds[i] = b.predictRaw(ds.Data.RawRowView(i))
			}

			gradients, hessians := computeGradients(preds, ds.Label, objective)
			tree := buildTree(ds.Data, gradients, hessians, resolved)
			b.Trees = append(b.Trees, tree)
		}
	}

	b.NumIter = numRounds
	b.attrs.set(AttrNumIter, strconv.Itoa(numRounds-1))

	slog.Debug("training completed",
		log.OperationKey, "train",
		slog.String(log.ModelKindKey, kind.String()),
		slog.Int(log.RoundKey, numRounds),
		slog.Int(log.SamplesKey, ds.numData),
		slog.Int(log.FeaturesKey, ds.numFeatures),
	)

	return b, nil
}

// initScore computes the baseline prediction for the objective.
func initScore(labels []float64, objective string) float64 {
	if len(labels) == 0 {
		return 0.0
	}

	switch objective {
	case ObjectiveBinary:
		positive := 0
		for _, v := range labels {
			if v > 0.5 {
				positive++
			}
		}
		ratio := float64(positive) / float64(len(labels))
		if ratio <= 0 {
			ratio = 1e-10
		} else if ratio >= 1 {
			ratio = 1 - 1e-10
		}
		return math.Log(ratio / (1 - ratio))

	default:
		sum := 0.0
		for _, v := range labels {
			sum += v
		}
		return sum / float64(len(labels))
	}
}

// computeGradients returns first and second order gradients of the loss.
func computeGradients(predictions, labels []float64, objective string) ([]float64, []float64) {
	n := len(predictions)
	gradients := make([]float64, n)
	hessians := make([]float64, n)

	switch objective {
	case ObjectiveBinary:
		for i := range predictions {
			p := sigmoid(predictions[i])
			gradients[i] = p - labels[i]
			hessians[i] = p * (1.0 - p)
		}

	default:
		// Squared loss: grad = pred - y, hess = 1.
		for i := range predictions {
			gradients[i] = predictions[i] - labels[i]
			hessians[i] = 1.0
		}
	}

	return gradients, hessians
}

func sigmoid(x float64) float64 {
	if x > 0 {
		expNegX := math.Exp(-x)
		return 1.0 / (1.0 + expNegX)
	}
	expX := math.Exp(x)
	return expX / (1.0 + expX)
}

func defaultFeatureName(i int) string {
	return "f" + strconv.Itoa(i)
}
