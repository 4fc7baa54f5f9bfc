package services

import (
	"fmt"
	"sort"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/station"
)

// ManualItem is a pending item the engine could not place; a human routes it.
type ManualItem struct {
	ItemID kernel.UUID
	Reason string
}

// AssignmentResult is the full advisory output of one proposal pass.
// Nothing in it is committed: suggestions become assignments only when an
// operator accepts them through the assignment command.
type AssignmentResult struct {
	Suggestions     []station.AssignmentSuggestion
	ManualItems     []ManualItem
	Overloads       []station.OverloadWarning
	Redistributions []station.RedistributionSuggestion
	CrossTraining   []station.CrossTrainingSuggestion
}

// StationAssigner proposes station placements for pending kitchen items.
//
// The engine is a pure function over a snapshot: it never mutates the stations
// it is given and never reserves capacity. Within one pass it tracks the load
// its own proposals would add, so two items in the same batch are not both
// proposed onto a station's last open slot.
type StationAssigner struct {
	scoring    ScoringStrategy
	thresholds OverloadThresholds
}

// NewStationAssigner creates an assigner with the given strategy and
// overload thresholds.
func NewStationAssigner(scoring ScoringStrategy, thresholds OverloadThresholds) StationAssigner {
	return StationAssigner{
		scoring:    scoring,
		thresholds: thresholds,
	}
}

// Propose ranks every pending item against the eligible stations and returns
// the advisory result. Longer items are placed first so the hardest work gets
// the widest choice of stations.
func (a StationAssigner) Propose(items []*kitchenorder.Item, stations []*station.Station) AssignmentResult {
	var result AssignmentResult

	ordered := make([]*kitchenorder.Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EstimatedMinutes() > ordered[j].EstimatedMinutes()
	})

	// Proposed-but-not-committed load per station within this pass.
	tentative := make(map[string]int, len(stations))
	placed := make(map[string][]kernel.UUID, len(stations))

	for _, item := range ordered {
		if item.Status() != kitchenorder.ItemStatusPending {
			continue
		}

		best, breakdown, ok := a.pickBest(item, stations, tentative)
		if !ok {
			result.ManualItems = append(result.ManualItems, ManualItem{
				ItemID: item.ID(),
				Reason: fmt.Sprintf("no assignable %s station with free capacity", item.StationType()),
			})
			continue
		}

		key := best.ID().String()
		tentative[key]++
		placed[key] = append(placed[key], item.ID())

		result.Suggestions = append(result.Suggestions, station.AssignmentSuggestion{
			ItemID:               item.ID(),
			StationID:            best.ID(),
			StationName:          best.Name(),
			Confidence:           breakdown.Confidence,
			Reason:               breakdown.Reason,
			EstimatedWaitMinutes: breakdown.EstimatedWaitMinutes,
			ProjectedUtilization: breakdown.ProjectedUtilization,
			SpecializationMatch:  breakdown.SpecializationMatch,
			EquipmentMatch:       breakdown.EquipmentMatch,
		})
	}

	result.Overloads = a.overloadWarnings(stations, tentative)
	result.Redistributions = a.redistributions(stations, tentative, placed)
	result.CrossTraining = a.crossTraining(result.ManualItems, ordered, stations)
	return result
}

// pickBest returns the highest-scoring eligible station for the item, if any.
func (a StationAssigner) pickBest(
	item *kitchenorder.Item,
	stations []*station.Station,
	tentative map[string]int,
) (*station.Station, ScoreBreakdown, bool) {
	var (
		best      *station.Station
		bestScore ScoreBreakdown
	)

	for _, s := range stations {
		if s.StationType() != item.StationType() || !s.IsAssignable() {
			continue
		}
		load := tentative[s.ID().String()]
		if s.Headroom()-load <= 0 {
			continue
		}

		breakdown := a.scoring.Score(item, s, load)
		if best == nil || breakdown.Confidence > bestScore.Confidence {
			best = s
			bestScore = breakdown
		}
	}

	return best, bestScore, best != nil
}

func (a StationAssigner) overloadWarnings(stations []*station.Station, tentative map[string]int) []station.OverloadWarning {
	var warnings []station.OverloadWarning
	for _, s := range stations {
		if !s.IsAssignable() {
			continue
		}
		projected := float64(s.Workload()+tentative[s.ID().String()]) / float64(s.Capacity())
		if projected < a.thresholds.Warning {
			continue
		}

		severity := station.SeverityWarning
		message := fmt.Sprintf("projected utilization %.0f%%", projected*100)
		if projected >= a.thresholds.Critical {
			severity = station.SeverityCritical
			message = fmt.Sprintf("projected at full capacity (%.0f%%)", projected*100)
		}

		warnings = append(warnings, station.OverloadWarning{
			StationID:            s.ID(),
			StationName:          s.Name(),
			Severity:             severity,
			ProjectedUtilization: projected,
			Message:              message,
		})
	}
	return warnings
}
