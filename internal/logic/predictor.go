package logic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ekoly/ufc-fight-prediction/internal/mlmodel"
	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// maxFactors caps each of the supporting/opposing factor lists.
const maxFactors = 3

const (
	classWinner = "True"
	classLoser  = "False"
)

type predictionService struct {
	snapshots map[string]models.FighterSnapshot
	bundle    *mlmodel.Bundle
	explainer *mlmodel.Explainer
	trueIdx   int
	falseIdx  int
}

// NewPredictionService wires the bout predictor over the loaded snapshots
// and model bundle.
func NewPredictionService(snapshots []models.FighterSnapshot, bundle *mlmodel.Bundle) (PredictionService, error) {
	trueIdx := bundle.ClassIndex(classWinner)
	falseIdx := bundle.ClassIndex(classLoser)
	if trueIdx < 0 || falseIdx < 0 {
		return nil, fmt.Errorf("model bundle classes %v: want %q and %q",
			bundle.Manifest.Classes, classWinner, classLoser)
	}

	byName := make(map[string]models.FighterSnapshot, len(snapshots))
	for _, snap := range snapshots {
		byName[snap.Name] = snap
	}

	return &predictionService{
		snapshots: byName,
		bundle:    bundle,
		explainer: mlmodel.NewExplainer(bundle.Pipeline.Forest(), trueIdx),
		trueIdx:   trueIdx,
		falseIdx:  falseIdx,
	}, nil
}

// Predict scores a hypothetical bout. Structurally impossible requests
// (empty or identical corners, unknown fighters) return the defined
// sentinel results and never an error.
func (s *predictionService) Predict(ctx context.Context, redFighter, blueFighter string) *models.BoutPrediction {
	pred := &models.BoutPrediction{
		RedFighter:        redFighter,
		BlueFighter:       blueFighter,
		Confidence:        100,
		SupportingFactors: []string{},
		OpposingFactors:   []string{},
	}

	switch {
	case redFighter != "" && blueFighter == "":
		pred.Winner = redFighter
		return pred
	case redFighter == "" && blueFighter != "":
		pred.Winner = blueFighter
		return pred
	case redFighter == "" && blueFighter == "":
		pred.Winner = models.NoWinner
		return pred
	case redFighter == blueFighter:
		pred.Winner = redFighter
		return pred
	}

	redSnap, redOK := s.snapshots[redFighter]
	blueSnap, blueOK := s.snapshots[blueFighter]
	if !redOK || !blueOK {
		pred.Winner = models.NoWinner
		return pred
	}

	// Score the bout in both orientations and average each fighter's two
	// readings so the declared winner does not depend on row order.
	xRed := s.bundle.Pipeline.Transform(buildBoutRow(redSnap, blueSnap))
	xBlue := s.bundle.Pipeline.Transform(buildBoutRow(blueSnap, redSnap))

	forest := s.bundle.Pipeline.Forest()
	pRed := forest.PredictProba(xRed)
	pBlue := forest.PredictProba(xBlue)

	redProb := (pRed[s.trueIdx] + pBlue[s.falseIdx]) / 2
	blueProb := (pRed[s.falseIdx] + pBlue[s.trueIdx]) / 2

	var x []float64
	if redProb > blueProb {
		pred.Winner = redFighter
		pred.Confidence = redProb * 100
		x = xRed
	} else {
		pred.Winner = blueFighter
		pred.Confidence = blueProb * 100
		x = xBlue
	}

	supporting, opposing := s.pickFactors(s.explainer.Contributions(x))
	pred.SupportingFactors = supporting
	pred.OpposingFactors = opposing
	pred.Scored = true
	return pred
}

// buildBoutRow concatenates the self snapshot with the opponent's: every
// per-fighter column appears plain, with an _opponent mirror, and for
// numeric columns with a derived ratio, offset by one to avoid division by
// zero. The combined stance descriptor is categorical.
func buildBoutRow(self, opponent models.FighterSnapshot) mlmodel.FeatureRow {
	row := mlmodel.FeatureRow{
		Numeric:     make(map[string]float64, 3*len(self.Numeric)),
		Categorical: make(map[string]string, 2*len(self.Categorical)+3),
	}

	for col, v := range self.Numeric {
		opp, ok := opponent.Numeric[col]
		if !ok {
			opp = math.NaN()
		}
		row.Numeric[col] = v
		row.Numeric[col+"_opponent"] = opp
		row.Numeric[col+"_ratio"] = (v + 1) / (opp + 1)
	}

	for col, v := range self.Categorical {
		row.Categorical[col] = v
		row.Categorical[col+"_opponent"] = opponent.Categorical[col]
	}
	row.Categorical["weight_class"] = self.WeightClass
	row.Categorical["weight_class_opponent"] = opponent.WeightClass
	row.Categorical["stance_config"] = self.Stance() + "-" + opponent.Stance()

	return row
}

// pickFactors maps the attribution vector to display labels: sorted
// ascending, the top three become supporting factors and the bottom three
// opposing factors. Labels are trimmed, unknown codes skipped, and no label
// repeats within or across the two lists.
func (s *predictionService) pickFactors(contribs []float64) (supporting, opposing []string) {
	cols := s.bundle.Pipeline.Columns()

	order := make([]int, len(contribs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if contribs[order[a]] != contribs[order[b]] {
			return contribs[order[a]] < contribs[order[b]]
		}
		return cols[order[a]] < cols[order[b]]
	})

	supporting = []string{}
	opposing = []string{}
	used := make(map[string]bool)

	for i := len(order) - 1; i >= 0 && len(supporting) < maxFactors; i-- {
		if label := s.factorLabel(order[i], used); label != "" {
			supporting = append(supporting, label)
		}
	}
	for i := 0; i < len(order) && len(opposing) < maxFactors; i++ {
		if label := s.factorLabel(order[i], used); label != "" {
			opposing = append(opposing, label)
		}
	}
	return supporting, opposing
}

func (s *predictionService) factorLabel(col int, used map[string]bool) string {
	label := strings.TrimSpace(s.bundle.Labels[s.bundle.Pipeline.Columns()[col]])
	if label == "" || used[label] {
		return ""
	}
	used[label] = true
	return label
}
