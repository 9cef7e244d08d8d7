package booster

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goml-dev/goboost/pkg/errors"
)

// DumpModel renders the trained parameters as an ordered sequence of text
// blocks: one per tree for tree ensembles, a single coefficient block for
// linear models. When withStats is true each split line carries its gain
// and cover and each leaf its cover.
func (b *Booster) DumpModel(withStats bool) ([]string, error) {
	if err := b.check("DumpModel"); err != nil {
		return nil, err
	}

	if b.Kind == KindLinear {
		return []string{b.dumpLinearText()}, nil
	}

	blocks := make([]string, 0, len(b.Trees))
	for i := range b.Trees {
		block, err := b.DumpTree(i, withStats)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// DumpTree renders a single tree as a text block. Unlike DumpModel it is a
// tree-structure operation and fails with UnsupportedKindError on linear
// handles.
func (b *Booster) DumpTree(index int, withStats bool) (string, error) {
	if err := b.requireTrees("DumpTree"); err != nil {
		return "", err
	}
	if index < 0 || index >= len(b.Trees) {
		return "", errors.Newf("tree index out of range: %d", index)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("booster[%d]:\n", index))
	nextID := 0
	b.writeNodeText(&sb, b.Trees[index].Root, 0, &nextID, withStats)
	return sb.String(), nil
}

// writeNodeText writes one line per node in preorder, indenting by depth.
// Node identifiers are assigned in preorder so yes/no references resolve to
// line ids within the same block.
func (b *Booster) writeNodeText(sb *strings.Builder, n *TreeNode, depth int, nextID *int, withStats bool) {
	if n == nil {
		return
	}
	id := *nextID
	*nextID++

	sb.WriteString(strings.Repeat("\t", depth))
	if n.IsLeaf {
		sb.WriteString(fmt.Sprintf("%d:leaf=%s", id, FormatFloat(n.LeafValue)))
		if withStats {
			sb.WriteString(fmt.Sprintf(",cover=%s", FormatFloat(n.Cover)))
		}
		sb.WriteString("\n")
		return
	}

	// Left child is written first, so it takes the next preorder id; the
	// right child id is left's id plus its subtree size.
	leftID := *nextID
	rightID := leftID + (&Tree{Root: n.LeftChild}).numNodes()

	sb.WriteString(fmt.Sprintf("%d:[%s<%s] yes=%d,no=%d",
		id, b.FeatureName(n.SplitFeature), FormatFloat(n.Threshold), leftID, rightID))
	if withStats {
		sb.WriteString(fmt.Sprintf(",gain=%s,cover=%s", FormatFloat(n.Gain), FormatFloat(n.Cover)))
	}
	sb.WriteString("\n")

	b.writeNodeText(sb, n.LeftChild, depth+1, nextID, withStats)
	b.writeNodeText(sb, n.RightChild, depth+1, nextID, withStats)
}

func (b *Booster) dumpLinearText() string {
	var sb strings.Builder
	sb.WriteString("bias:\n")
	sb.WriteString(FormatFloat(b.Weights.Bias))
	sb.WriteString("\nweight:\n")
	for _, w := range b.Weights.Weights {
		sb.WriteString(FormatFloat(w))
		sb.WriteString("\n")
	}
	return sb.String()
}

// jsonNode mirrors one tree node in the structured dump.
type jsonNode struct {
	NodeID         int         `json:"nodeid"`
	Depth          int         `json:"depth"`
	Split          string      `json:"split,omitempty"`
	SplitCondition *float64    `json:"split_condition,omitempty"`
	Yes            *int        `json:"yes,omitempty"`
	No             *int        `json:"no,omitempty"`
	Leaf           *float64    `json:"leaf,omitempty"`
	Gain           *float64    `json:"gain,omitempty"`
	Cover          *float64    `json:"cover,omitempty"`
	Children       []*jsonNode `json:"children,omitempty"`
}

// jsonDump is the top-level structured dump document.
type jsonDump struct {
	ModelKind   string      `json:"model_kind"`
	Objective   string      `json:"objective"`
	NumFeatures int         `json:"num_features"`
	Trees       []*jsonNode `json:"trees,omitempty"`
	Bias        *float64    `json:"bias,omitempty"`
	Weights     []float64   `json:"weights,omitempty"`
}

// DumpModelJSON renders the trained parameters as a single JSON document
// carrying the same structure as the text dump.
func (b *Booster) DumpModelJSON(withStats bool) (string, error) {
	if err := b.check("DumpModelJSON"); err != nil {
		return "", err
	}

	doc := jsonDump{
		ModelKind:   b.Kind.String(),
		Objective:   b.Objective,
		NumFeatures: b.NumFeatures,
	}

	if b.Kind == KindLinear {
		bias := b.Weights.Bias
		doc.Bias = &bias
		doc.Weights = append([]float64(nil), b.Weights.Weights...)
	} else {
		doc.Trees = make([]*jsonNode, 0, len(b.Trees))
		for i := range b.Trees {
			nextID := 0
			doc.Trees = append(doc.Trees, b.buildJSONNode(b.Trees[i].Root, 0, &nextID, withStats))
		}
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal model dump")
	}
	return string(data), nil
}

func (b *Booster) buildJSONNode(n *TreeNode, depth int, nextID *int, withStats bool) *jsonNode {
	if n == nil {
		return nil
	}
	id := *nextID
	*nextID++

	node := &jsonNode{NodeID: id, Depth: depth}
	if withStats {
		cover := n.Cover
		node.Cover = &cover
	}

	if n.IsLeaf {
		leaf := n.LeafValue
		node.Leaf = &leaf
		return node
	}

	cond := n.Threshold
	node.Split = b.FeatureName(n.SplitFeature)
	node.SplitCondition = &cond
	if withStats {
		gain := n.Gain
		node.Gain = &gain
	}

	left := b.buildJSONNode(n.LeftChild, depth+1, nextID, withStats)
	right := b.buildJSONNode(n.RightChild, depth+1, nextID, withStats)
	if left != nil {
		yes := left.NodeID
		node.Yes = &yes
		node.Children = append(node.Children, left)
	}
	if right != nil {
		no := right.NodeID
		node.No = &no
		node.Children = append(node.Children, right)
	}
	return node
}
