package mlmodel

import (
	"fmt"
	"math"
)

// FeatureRow is one raw input row prior to encoding: numeric cells (NaN for
// missing) and categorical cells, keyed by feature name.
type FeatureRow struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// Encoder one-hot expands categorical features. Categories lists, per
// categorical feature, the category values seen at training time; an
// unknown category encodes as all zeros.
type Encoder struct {
	Categories map[string][]string `json:"categories"`
}

// Imputer fills missing numeric cells with the training-time median of the
// expanded column.
type Imputer struct {
	Medians map[string]float64 `json:"medians"`
}

// Pipeline is the encode -> impute -> classify chain the bundle ships.
// The expanded column order is fixed at construction and shared by the
// forest and the attribution function.
type Pipeline struct {
	features []string
	encoder  Encoder
	imputer  Imputer
	forest   *Forest

	expanded []string
	index    map[string]int
}

// NewPipeline builds the pipeline over the ordered raw feature list,
// deriving the expanded column order from the encoder's category lists.
func NewPipeline(features []string, enc Encoder, imp Imputer, forest *Forest) (*Pipeline, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("pipeline: empty feature list")
	}
	if forest == nil {
		return nil, fmt.Errorf("pipeline: nil forest")
	}

	p := &Pipeline{
		features: features,
		encoder:  enc,
		imputer:  imp,
		forest:   forest,
		index:    make(map[string]int),
	}
	for _, feat := range features {
		if cats, ok := enc.Categories[feat]; ok {
			for _, cat := range cats {
				p.addColumn(feat + "_" + cat)
			}
			continue
		}
		p.addColumn(feat)
	}

	if err := forest.Validate(len(p.expanded)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) addColumn(name string) {
	p.index[name] = len(p.expanded)
	p.expanded = append(p.expanded, name)
}

// Columns returns the expanded column order the forest scores.
func (p *Pipeline) Columns() []string { return p.expanded }

// Forest exposes the trained ensemble for the attribution function.
func (p *Pipeline) Forest() *Forest { return p.forest }

// Transform encodes and imputes one raw row into the expanded vector.
func (p *Pipeline) Transform(row FeatureRow) []float64 {
	x := make([]float64, len(p.expanded))
	i := 0
	for _, feat := range p.features {
		if cats, ok := p.encoder.Categories[feat]; ok {
			val := row.Categorical[feat]
			for _, cat := range cats {
				if val == cat {
					x[i] = 1
				}
				i++
			}
			continue
		}

		v, ok := row.Numeric[feat]
		if !ok {
			v = math.NaN()
		}
		if math.IsNaN(v) {
			v = p.imputer.Medians[p.expanded[i]]
		}
		x[i] = v
		i++
	}
	return x
}

// PredictProba transforms and scores one raw row. Class order follows the
// bundle manifest.
func (p *Pipeline) PredictProba(row FeatureRow) []float64 {
	return p.forest.PredictProba(p.Transform(row))
}
