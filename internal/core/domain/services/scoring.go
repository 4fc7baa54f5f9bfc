package services

import (
	"fmt"
	"strings"

	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/station"
)

// ScoreBreakdown is the result of scoring one candidate station for one item.
type ScoreBreakdown struct {
	Confidence           float64 // 0..100
	Reason               string
	EstimatedWaitMinutes int
	ProjectedUtilization float64
	SpecializationMatch  bool
	EquipmentMatch       bool
}

// ScoringStrategy ranks an eligible candidate station for an item.
// tentativeLoad is the number of items already proposed onto the station in
// the current pass, on top of its persisted workload. Implementations must be
// pure: no station state is mutated by scoring.
type ScoringStrategy interface {
	Score(item *kitchenorder.Item, candidate *station.Station, tentativeLoad int) ScoreBreakdown
}

// ScoringWeights distributes the confidence score across the scoring factors.
// Each weight is the maximum contribution of its factor; a full match on every
// factor yields the sum of the weights.
type ScoringWeights struct {
	Headroom       float64
	Specialization float64
	Equipment      float64
	Wait           float64
}

// Total returns the maximum achievable confidence.
func (w ScoringWeights) Total() float64 {
	return w.Headroom + w.Specialization + w.Equipment + w.Wait
}

// DefaultScoringWeights favours available capacity, with skill and equipment
// fit as tie-breakers.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Headroom:       45,
		Specialization: 20,
		Equipment:      15,
		Wait:           20,
	}
}

// OverloadThresholds define the projected-utilization levels at which the
// assignment engine raises advisory warnings.
type OverloadThresholds struct {
	Warning  float64
	Critical float64
}

// DefaultOverloadThresholds warns at 80% projected utilization and flags
// critical at full projected capacity.
func DefaultOverloadThresholds() OverloadThresholds {
	return OverloadThresholds{Warning: 0.8, Critical: 1.0}
}

// WeightedScoring is the default ScoringStrategy: a weighted sum over headroom,
// specialization fit, equipment fit, and estimated wait.
type WeightedScoring struct {
	weights ScoringWeights
}

// NewWeightedScoring creates the default strategy with the given weights.
func NewWeightedScoring(weights ScoringWeights) WeightedScoring {
	return WeightedScoring{weights: weights}
}

// Score rates one candidate. The caller has already filtered for eligibility
// (type match, assignable status, remaining headroom), so every factor here
// only shades the ranking.
func (ws WeightedScoring) Score(item *kitchenorder.Item, candidate *station.Station, tentativeLoad int) ScoreBreakdown {
	projectedWorkload := candidate.Workload() + tentativeLoad
	projectedUtilization := float64(projectedWorkload+1) / float64(candidate.Capacity())

	headroomLeft := candidate.Capacity() - projectedWorkload
	headroomScore := ws.weights.Headroom * float64(headroomLeft) / float64(candidate.Capacity())

	specializationMatch := matchesAll(item.RequiredSkills(), candidate.HasSpecialization)
	equipmentMatch := matchesAll(item.RequiredEquipment(), candidate.HasEquipment)

	var specializationScore, equipmentScore float64
	if specializationMatch {
		specializationScore = ws.weights.Specialization
	}
	if equipmentMatch {
		equipmentScore = ws.weights.Equipment
	}

	waitMinutes := projectedWorkload * candidate.AvgProcessingMinutes()
	waitScore := ws.weights.Wait / (1 + float64(waitMinutes)/15)

	confidence := headroomScore + specializationScore + equipmentScore + waitScore
	if total := ws.weights.Total(); total > 0 && total != 100 {
		confidence = confidence * 100 / total
	}

	return ScoreBreakdown{
		Confidence:           confidence,
		Reason:               buildReason(candidate, headroomLeft, specializationMatch, equipmentMatch, waitMinutes),
		EstimatedWaitMinutes: waitMinutes,
		ProjectedUtilization: projectedUtilization,
		SpecializationMatch:  specializationMatch,
		EquipmentMatch:       equipmentMatch,
	}
}

func matchesAll(required []string, has func(string) bool) bool {
	for _, r := range required {
		if !has(r) {
			return false
		}
	}
	return true
}

func buildReason(candidate *station.Station, headroomLeft int, specializationMatch, equipmentMatch bool, waitMinutes int) string {
	parts := []string{
		fmt.Sprintf("%d slot(s) free after proposal", headroomLeft),
	}
	if specializationMatch {
		parts = append(parts, "specialization match")
	} else {
		parts = append(parts, "missing specialization")
	}
	if !equipmentMatch {
		parts = append(parts, "missing equipment")
	}
	if waitMinutes > 0 {
		parts = append(parts, fmt.Sprintf("~%dm wait", waitMinutes))
	}
	return fmt.Sprintf("%s: %s", candidate.Name(), strings.Join(parts, ", "))
}
