package decisiontree

import (
	"math"

	"github.com/kiteco/difficulty/kite-golib/errors"
)

// A Node represents a splitting decision of the form "x[FeatureIndex] < Threshold ?" in a decision tree
type Node struct {
	// FeatureIndex indicates which feature is used in this splitting decision
	FeatureIndex int `json:"feature_index"`
	// Threshold indicates the cutoff value between the left and right subtrees
	Threshold float64 `json:"threshold"`
	// LeftChild is the index of the node representing the left subtree
	LeftChild int `json:"left_child"`
	// LeftIsLeaf indicates whether the left subtree is a leaf node
	LeftIsLeaf bool `json:"left_is_leaf"`
	// RightChild is the index of the node representing the right subtree
	RightChild int `json:"right_child"`
	// RightIsLeaf indicates wherther the right subtree is a leaf node
	RightIsLeaf bool `json:"right_is_leaf"`
}

// A DecisionTree is a mapping from a feature space to real numbers implemented with a decision tree
type DecisionTree struct {
	// Nodes is a flat list of all nodes in the tree
	Nodes []Node `json:"nodes"`
	// Outputs is an array containing the outputs for each bin
	Outputs []float64 `json:"outputs"`
	// FeatureSize is the length of feature vectors processed by this tree
	FeatureSize int `json:"feature_size"`
	// Depth is the maximum depth of any leaf in the tree
	Depth int `json:"depth"`
}

// Bin drops a feature vector down a decision tree and returns the index of the bin that it ends up in
func (t *DecisionTree) Bin(x []float64) int {
	if len(x) != t.FeatureSize {
		panic("feature vector had incorrect length")
	}
	if t.Nodes == nil {
		panic("tree not initialized")
	}
	cur := t.Nodes[0]
	for i := 0; i < t.Depth; i++ {
		if x[cur.FeatureIndex] < cur.Threshold {
			if cur.LeftIsLeaf {
				return cur.LeftChild
			}
			cur = t.Nodes[cur.LeftChild]
		} else {
			if cur.RightIsLeaf {
				return cur.RightChild
			}
			cur = t.Nodes[cur.RightChild]
		}
	}
	panic("tree traversal did not terminate")
}

// Evaluate drops a feature vector down a decision tree and returns the output associated with the bin
// it ends up in.
func (t *DecisionTree) Evaluate(x []float64) float64 {
	return t.Outputs[t.Bin(x)]
}

// Validate checks that every child reference is in range and every output is finite.
func (t *DecisionTree) Validate() error {
	if len(t.Nodes) == 0 {
		return errors.Errorf("tree has no nodes")
	}
	if t.Depth < 1 || t.Depth > len(t.Nodes) {
		return errors.Errorf("tree depth %d inconsistent with %d nodes", t.Depth, len(t.Nodes))
	}
	for i, n := range t.Nodes {
		if n.FeatureIndex < 0 || n.FeatureIndex >= t.FeatureSize {
			return errors.Errorf("node %d splits on feature %d outside [0, %d)", i, n.FeatureIndex, t.FeatureSize)
		}
		if !childInRange(n.LeftChild, n.LeftIsLeaf, len(t.Nodes), len(t.Outputs)) ||
			!childInRange(n.RightChild, n.RightIsLeaf, len(t.Nodes), len(t.Outputs)) {
			return errors.Errorf("node %d has a child out of range", i)
		}
	}
	for i, o := range t.Outputs {
		if math.IsNaN(o) || math.IsInf(o, 0) {
			return errors.Errorf("output %d is not finite", i)
		}
	}
	return nil
}

func childInRange(child int, isLeaf bool, numNodes, numOutputs int) bool {
	if isLeaf {
		return child >= 0 && child < numOutputs
	}
	return child > 0 && child < numNodes
}

// An Ensemble outputs the sum of several decision trees plus a constant bias
type Ensemble struct {
	Bias  float64        `json:"bias"`
	Trees []DecisionTree `json:"trees"`
}

// Evaluate computes the sum of the outputs of the component decision trees
func (e *Ensemble) Evaluate(x []float64) float64 {
	sum := e.Bias
	for i := range e.Trees {
		sum += e.Trees[i].Evaluate(x)
	}
	return sum
}

// FeatureSize is the length of the feature vectors the ensemble accepts.
func (e *Ensemble) FeatureSize() int {
	if len(e.Trees) == 0 {
		return 0
	}
	return e.Trees[0].FeatureSize
}

// Validate checks every tree and that all trees agree on the feature size.
func (e *Ensemble) Validate() error {
	if len(e.Trees) == 0 {
		return errors.Errorf("ensemble has no trees")
	}
	size := e.FeatureSize()
	for i := range e.Trees {
		if e.Trees[i].FeatureSize != size {
			return errors.Errorf("tree %d has feature size %d, expected %d", i, e.Trees[i].FeatureSize, size)
		}
		if err := e.Trees[i].Validate(); err != nil {
			return errors.Wrapf(err, "tree %d", i)
		}
	}
	return nil
}
