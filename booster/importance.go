package booster

import (
	"math"

	"github.com/goml-dev/goboost/pkg/errors"
)

// Importance types accepted by FeatureImportance.
const (
	ImportanceSplit  = "split"
	ImportanceGain   = "gain"
	ImportanceCover  = "cover"
	ImportanceWeight = "weight"
)

// FeatureImportance returns one normalized importance score per feature.
//
// "split", "gain", and "cover" walk the tree ensemble and fail with
// UnsupportedKindError on linear handles. "weight" is the linear
// counterpart: the absolute value of each coefficient.
func (b *Booster) FeatureImportance(importanceType string) ([]float64, error) {
	if err := b.check("FeatureImportance"); err != nil {
		return nil, err
	}

	importance := make([]float64, b.NumFeatures)

	switch importanceType {
	case ImportanceWeight:
		if b.Kind != KindLinear {
			return nil, errors.NewValueError("FeatureImportance",
				"importance type 'weight' requires a linear model")
		}
		for i, w := range b.Weights.Weights {
			importance[i] = math.Abs(w)
		}

	case ImportanceSplit, ImportanceGain, ImportanceCover:
		if err := b.requireTrees("FeatureImportance"); err != nil {
			return nil, err
		}
		for i := range b.Trees {
			accumulateImportance(b.Trees[i].Root, importanceType, importance)
		}

	default:
		return nil, errors.NewValueError("FeatureImportance",
			"unknown importance type: "+importanceType)
	}

	// Normalize so scores sum to 1.
	total := 0.0
	for _, v := range importance {
		total += v
	}
	if total > 0 {
		for i := range importance {
			importance[i] /= total
		}
	}

	return importance, nil
}

func accumulateImportance(n *TreeNode, importanceType string, importance []float64) {
	if n == nil || n.IsLeaf {
		return
	}
	switch importanceType {
	case ImportanceSplit:
		importance[n.SplitFeature]++
	case ImportanceGain:
		importance[n.SplitFeature] += n.Gain
	case ImportanceCover:
		importance[n.SplitFeature] += n.Cover
	}
	accumulateImportance(n.LeftChild, importanceType, importance)
	accumulateImportance(n.RightChild, importanceType, importance)
}

// TreeInfo summarizes the structure of one tree in the ensemble.
type TreeInfo struct {
	Index     int
	NumNodes  int
	NumLeaves int
	MaxDepth  int
}

// TreeInfos returns structural information for every tree. It is a
// tree-structure operation and fails with UnsupportedKindError on linear
// handles.
func (b *Booster) TreeInfos() ([]TreeInfo, error) {
	if err := b.requireTrees("TreeInfos"); err != nil {
		return nil, err
	}

	infos := make([]TreeInfo, len(b.Trees))
	for i := range b.Trees {
		info := TreeInfo{Index: i, NumNodes: b.Trees[i].numNodes()}
		walkTreeStats(b.Trees[i].Root, 0, &info)
		infos[i] = info
	}
	return infos, nil
}

func walkTreeStats(n *TreeNode, depth int, info *TreeInfo) {
	if n == nil {
		return
	}
	if depth > info.MaxDepth {
		info.MaxDepth = depth
	}
	if n.IsLeaf {
		info.NumLeaves++
		return
	}
	walkTreeStats(n.LeftChild, depth+1, info)
	walkTreeStats(n.RightChild, depth+1, info)
}
