package booster

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Tree is a single regression tree in the ensemble.
type Tree struct {
	Root *TreeNode
}

// TreeNode is a node in a regression tree. Gain and Cover are kept for
// dumps with statistics; Cover is the sum of hessians routed through the
// node.
type TreeNode struct {
	IsLeaf       bool
	SplitFeature int
	Threshold    float64
	LeafValue    float64
	LeftChild    *TreeNode
	RightChild   *TreeNode

	Gain      float64
	Cover     float64
	DataCount int
}

// Predict returns the leaf value for a single sample.
func (t *Tree) Predict(sample []float64) float64 {
	if t.Root == nil {
		return 0.0
	}
	return t.Root.predict(sample)
}

func (n *TreeNode) predict(sample []float64) float64 {
	if n.IsLeaf {
		return n.LeafValue
	}

	if sample[n.SplitFeature] <= n.Threshold {
		if n.LeftChild != nil {
			return n.LeftChild.predict(sample)
		}
	} else {
		if n.RightChild != nil {
			return n.RightChild.predict(sample)
		}
	}

	return n.LeafValue
}

// numNodes counts all nodes in the tree.
func (t *Tree) numNodes() int {
	var count func(*TreeNode) int
	count = func(n *TreeNode) int {
		if n == nil {
			return 0
		}
		return 1 + count(n.LeftChild) + count(n.RightChild)
	}
	return count(t.Root)
}

// buildTree constructs a regression tree from gradients and hessians.
func buildTree(data *mat.Dense, gradients, hessians []float64, params map[string]string) Tree {
	maxDepth, _ := strconv.Atoi(params[ParamMaxDepth])
	minDataInLeaf, _ := strconv.Atoi(params[ParamMinDataInLeaf])
	lambda, _ := strconv.ParseFloat(params[ParamLambda], 64)
	minGainToSplit, _ := strconv.ParseFloat(params[ParamMinSplitGain], 64)

	if maxDepth <= 0 {
		maxDepth = 6
	}
	if minDataInLeaf <= 0 {
		minDataInLeaf = 1
	}

	nrow, ncol := data.Dims()
	indices := make([]int, nrow)
	for i := range indices {
		indices[i] = i
	}

	root := buildNode(
		data,
		indices,
		gradients,
		hessians,
		0, // depth
		maxDepth,
		minDataInLeaf,
		lambda,
		minGainToSplit,
		ncol,
	)

	return Tree{Root: root}
}

func buildNode(
	data *mat.Dense,
	indices []int,
	gradients, hessians []float64,
	depth, maxDepth, minDataInLeaf int,
	lambda, minGainToSplit float64,
	numFeatures int,
) *TreeNode {
	sumGrad := 0.0
	sumHess := 0.0
	for _, idx := range indices {
		sumGrad += gradients[idx]
		sumHess += hessians[idx]
	}

	// Stopping conditions.
	if depth >= maxDepth || len(indices) < 2*minDataInLeaf {
		return &TreeNode{
			IsLeaf:    true,
			LeafValue: -sumGrad / (sumHess + lambda),
			Cover:     sumHess,
			DataCount: len(indices),
		}
	}

	bestSplit := findBestSplit(
		data,
		indices,
		gradients,
		hessians,
		sumGrad,
		sumHess,
		minDataInLeaf,
		lambda,
		numFeatures,
	)

	if bestSplit.gain <= minGainToSplit {
		return &TreeNode{
			IsLeaf:    true,
			LeafValue: -sumGrad / (sumHess + lambda),
			Cover:     sumHess,
			DataCount: len(indices),
		}
	}

	leftIndices, rightIndices := splitData(data, indices, bestSplit.feature, bestSplit.threshold)

	leftChild := buildNode(
		data,
		leftIndices,
		gradients,
		hessians,
		depth+1,
		maxDepth,
		minDataInLeaf,
		lambda,
		minGainToSplit,
		numFeatures,
	)

	rightChild := buildNode(
		data,
		rightIndices,
		gradients,
		hessians,
		depth+1,
		maxDepth,
		minDataInLeaf,
		lambda,
		minGainToSplit,
		numFeatures,
	)

	return &TreeNode{
		IsLeaf:       false,
		SplitFeature: bestSplit.feature,
		Threshold:    bestSplit.threshold,
		LeftChild:    leftChild,
		RightChild:   rightChild,
		Gain:         bestSplit.gain,
		Cover:        sumHess,
		DataCount:    len(indices),
	}
}

type splitInfo struct {
	feature   int
	threshold float64
	gain      float64
}

func findBestSplit(
	data *mat.Dense,
	indices []int,
	gradients, hessians []float64,
	totalGrad, totalHess float64,
	minDataInLeaf int,
	lambda float64,
	numFeatures int,
) splitInfo {
	bestSplit := splitInfo{gain: -math.MaxFloat64}

	for feature := 0; feature < numFeatures; feature++ {
		sortedIndices := make([]int, len(indices))
		copy(sortedIndices, indices)
		sort.Slice(sortedIndices, func(i, j int) bool {
			return data.At(sortedIndices[i], feature) < data.At(sortedIndices[j], feature)
		})

		leftGrad := 0.0
		leftHess := 0.0

		for i := 0; i < len(sortedIndices)-1; i++ {
			idx := sortedIndices[i]
			leftGrad += gradients[idx]
			leftHess += hessians[idx]

			leftCount := i + 1
			rightCount := len(sortedIndices) - leftCount
			if leftCount < minDataInLeaf || rightCount < minDataInLeaf {
				continue
			}

			// No threshold exists between identical values.
			currentVal := data.At(sortedIndices[i], feature)
			nextVal := data.At(sortedIndices[i+1], feature)
			if currentVal == nextVal {
				continue
			}

			rightGrad := totalGrad - leftGrad
			rightHess := totalHess - leftHess

			gain := splitGain(
				leftGrad, leftHess,
				rightGrad, rightHess,
				totalGrad, totalHess,
				lambda,
			)

			if gain > bestSplit.gain {
				bestSplit.feature = feature
				bestSplit.threshold = (currentVal + nextVal) / 2.0
				bestSplit.gain = gain
			}
		}
	}

	return bestSplit
}

func splitGain(
	leftGrad, leftHess,
	rightGrad, rightHess,
	totalGrad, totalHess,
	lambda float64,
) float64 {
	leftScore := (leftGrad * leftGrad) / (leftHess + lambda)
	rightScore := (rightGrad * rightGrad) / (rightHess + lambda)
	totalScore := (totalGrad * totalGrad) / (totalHess + lambda)

	return 0.5 * (leftScore + rightScore - totalScore)
}

func splitData(data *mat.Dense, indices []int, feature int, threshold float64) ([]int, []int) {
	leftIndices := make([]int, 0)
	rightIndices := make([]int, 0)

	for _, idx := range indices {
		if data.At(idx, feature) <= threshold {
			leftIndices = append(leftIndices, idx)
		} else {
			rightIndices = append(rightIndices, idx)
		}
	}

	return leftIndices, rightIndices
}
