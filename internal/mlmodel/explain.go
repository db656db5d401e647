package mlmodel

// Explainer computes per-feature contributions toward one class for a
// scored row: walking each tree root to leaf, the change in the class
// probability at every split is attributed to the split feature, and the
// per-tree attributions are averaged over the ensemble. Contributions sum
// to the difference between the row's score and the ensemble's base rate.
type Explainer struct {
	forest *Forest
	class  int
}

// NewExplainer builds an explainer for the given class index of the forest.
func NewExplainer(forest *Forest, class int) *Explainer {
	return &Explainer{forest: forest, class: class}
}

// Contributions returns one contribution per expanded feature column for
// the transformed row x.
func (e *Explainer) Contributions(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(e.forest.Trees) == 0 {
		return out
	}

	for ti := range e.forest.Trees {
		tree := &e.forest.Trees[ti]
		i := 0
		prev := distribution(tree.Nodes[i].Value, e.forest.NClasses)[e.class]
		for tree.Nodes[i].Feature >= 0 {
			n := tree.Nodes[i]
			if x[n.Feature] <= n.Threshold {
				i = n.Left
			} else {
				i = n.Right
			}
			cur := distribution(tree.Nodes[i].Value, e.forest.NClasses)[e.class]
			out[n.Feature] += cur - prev
			prev = cur
		}
	}

	for i := range out {
		out[i] /= float64(len(e.forest.Trees))
	}
	return out
}
