package model

import "fmt"

// TreeNode is one node of a fitted decision tree, flattened into an array.
// Interior nodes route on vector[Feature] <= Threshold; a node with Left < 0
// is a leaf and carries the training-sample class distribution in Value.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// DecisionTree is a flattened tree; node 0 is the root.
type DecisionTree []TreeNode

// leafDistribution walks the tree for one vector and returns the leaf's
// class distribution. Malformed trees (bad child indexes, cycles) surface
// as errors instead of panics since the artifact is external input.
func (t DecisionTree) leafDistribution(vector []float64) ([]float64, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("empty tree")
	}
	idx := 0
	for steps := 0; steps <= len(t); steps++ {
		node := t[idx]
		if node.Left < 0 {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(vector) {
			return nil, fmt.Errorf("node %d routes on feature %d, vector width %d", idx, node.Feature, len(vector))
		}
		next := node.Right
		if vector[node.Feature] <= node.Threshold {
			next = node.Left
		}
		if next < 0 || next >= len(t) {
			return nil, fmt.Errorf("node %d has child index %d outside tree of %d nodes", idx, next, len(t))
		}
		idx = next
	}
	return nil, fmt.Errorf("tree walk exceeded node count, cycle suspected")
}

// RandomForest evaluates a fitted ensemble of decision trees. Prediction
// averages the per-tree leaf distributions and takes the arg-max class,
// which is deterministic for a given artifact and vector.
type RandomForest struct {
	trees      []DecisionTree
	numClasses int
}

// NewRandomForest builds a forest from fitted trees.
func NewRandomForest(trees []DecisionTree, numClasses int) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	if numClasses <= 0 {
		return nil, fmt.Errorf("forest declares %d classes", numClasses)
	}
	return &RandomForest{trees: trees, numClasses: numClasses}, nil
}

// NumClasses returns the number of target classes the forest was fitted for.
func (f *RandomForest) NumClasses() int {
	return f.numClasses
}

// Predict returns the class index with the highest averaged probability.
// Ties break toward the lower index so results stay deterministic.
func (f *RandomForest) Predict(vector []float64) (int, error) {
	proba, err := f.PredictProba(vector)
	if err != nil {
		return 0, err
	}
	best := 0
	for i, p := range proba {
		if p > proba[best] {
			best = i
		}
	}
	return best, nil
}

// PredictProba averages the normalized leaf distributions across all trees.
// The result sums to 1 within floating tolerance.
func (f *RandomForest) PredictProba(vector []float64) ([]float64, error) {
	sum := make([]float64, f.numClasses)
	for ti, tree := range f.trees {
		leaf, err := tree.leafDistribution(vector)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
		if len(leaf) != f.numClasses {
			return nil, fmt.Errorf("tree %d leaf has %d classes, forest declares %d", ti, len(leaf), f.numClasses)
		}
		var total float64
		for _, v := range leaf {
			total += v
		}
		if total == 0 {
			return nil, fmt.Errorf("tree %d leaf distribution sums to zero", ti)
		}
		for i, v := range leaf {
			sum[i] += v / total
		}
	}
	for i := range sum {
		sum[i] /= float64(len(f.trees))
	}
	return sum, nil
}
