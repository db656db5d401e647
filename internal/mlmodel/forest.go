// Package mlmodel implements the pre-trained classification artifact: the
// encode/impute/classify pipeline, the ensemble it ends in, and the
// companion per-feature attribution function over the same feature space.
package mlmodel

import "fmt"

// Node is one node of a binary decision tree. Leaves carry Feature == -1.
// Value holds the class tally observed at the node during training; it is
// present on internal nodes too, which is what makes path attribution
// possible.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// Tree is a single decision tree, nodes stored in an array with index 0 as
// the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is the trained ensemble.
type Forest struct {
	NClasses int    `json:"n_classes"`
	Trees    []Tree `json:"trees"`
}

// distribution normalizes a node's class tally into probabilities.
func distribution(value []float64, nClasses int) []float64 {
	out := make([]float64, nClasses)
	var total float64
	for i := 0; i < nClasses && i < len(value); i++ {
		total += value[i]
	}
	if total == 0 {
		return out
	}
	for i := 0; i < nClasses && i < len(value); i++ {
		out[i] = value[i] / total
	}
	return out
}

// predict walks x down the tree and returns the leaf class distribution.
// Left is taken when x[feature] <= threshold.
func (t *Tree) predict(x []float64) []float64 {
	i := 0
	for t.Nodes[i].Feature >= 0 {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// PredictProba returns the class probabilities for x, averaged over all
// trees in the ensemble.
func (f *Forest) PredictProba(x []float64) []float64 {
	probs := make([]float64, f.NClasses)
	if len(f.Trees) == 0 {
		return probs
	}
	for ti := range f.Trees {
		leaf := distribution(f.Trees[ti].predict(x), f.NClasses)
		for c := range probs {
			probs[c] += leaf[c]
		}
	}
	for c := range probs {
		probs[c] /= float64(len(f.Trees))
	}
	return probs
}

// Validate checks structural integrity: child indexes in range, leaf values
// sized to the class count.
func (f *Forest) Validate(nFeatures int) error {
	if f.NClasses < 2 {
		return fmt.Errorf("forest: need at least 2 classes, got %d", f.NClasses)
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("forest: tree %d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Feature >= nFeatures {
				return fmt.Errorf("forest: tree %d node %d references feature %d of %d", ti, ni, n.Feature, nFeatures)
			}
			if n.Feature >= 0 {
				if n.Left < 0 || n.Left >= len(tree.Nodes) || n.Right < 0 || n.Right >= len(tree.Nodes) {
					return fmt.Errorf("forest: tree %d node %d has child out of range", ti, ni)
				}
			}
			if len(n.Value) < f.NClasses {
				return fmt.Errorf("forest: tree %d node %d value has %d classes, want %d", ti, ni, len(n.Value), f.NClasses)
			}
		}
	}
	return nil
}
