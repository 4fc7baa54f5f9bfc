package services

import (
	"sort"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/station"
)

// redistributions proposes moving tentatively placed work away from stations
// the current pass would push past the warning threshold, onto same-type
// stations that still have comfortable headroom. Advisory only.
func (a StationAssigner) redistributions(
	stations []*station.Station,
	tentative map[string]int,
	placed map[string][]kernel.UUID,
) []station.RedistributionSuggestion {
	var suggestions []station.RedistributionSuggestion

	for _, from := range stations {
		fromKey := from.ID().String()
		itemIDs := placed[fromKey]
		if len(itemIDs) == 0 {
			continue
		}
		projected := float64(from.Workload()+tentative[fromKey]) / float64(from.Capacity())
		if projected < a.thresholds.Warning {
			continue
		}

		to := a.reliefTarget(from, stations, tentative)
		if to == nil {
			continue
		}

		// Move enough items to bring the donor back under the warning line.
		excess := from.Workload() + tentative[fromKey] - int(a.thresholds.Warning*float64(from.Capacity()))
		if excess < 1 {
			excess = 1
		}
		reliefHeadroom := to.Headroom() - tentative[to.ID().String()]
		if excess > reliefHeadroom {
			excess = reliefHeadroom
		}
		if excess > len(itemIDs) {
			excess = len(itemIDs)
		}

		moved := itemIDs[len(itemIDs)-excess:]
		saved := excess * diffOrZero(from.AvgProcessingMinutes(), to.AvgProcessingMinutes())

		suggestions = append(suggestions, station.RedistributionSuggestion{
			FromStationID:         from.ID(),
			ToStationID:           to.ID(),
			ItemIDs:               moved,
			EstimatedMinutesSaved: saved,
			Priority:              a.redistributionPriority(projected),
		})
	}

	return suggestions
}

// reliefTarget returns the least-loaded assignable station of the same type
// still under the warning threshold after its tentative load, or nil.
func (a StationAssigner) reliefTarget(from *station.Station, stations []*station.Station, tentative map[string]int) *station.Station {
	var best *station.Station
	bestProjected := a.thresholds.Warning

	for _, s := range stations {
		if s.IsEqual(from) || s.StationType() != from.StationType() || !s.IsAssignable() {
			continue
		}
		projected := float64(s.Workload()+tentative[s.ID().String()]) / float64(s.Capacity())
		if projected < bestProjected {
			best = s
			bestProjected = projected
		}
	}
	return best
}

// crossTraining flags recurring skill gaps behind manual routings: when items
// go manual and the matching stations lack the required specializations, it
// proposes training existing staff on those skills. Advisory only.
func (a StationAssigner) crossTraining(
	manual []ManualItem,
	items []*kitchenorder.Item,
	stations []*station.Station,
) []station.CrossTrainingSuggestion {
	if len(manual) == 0 {
		return nil
	}

	manualIDs := make(map[string]struct{}, len(manual))
	for _, m := range manual {
		manualIDs[m.ItemID.String()] = struct{}{}
	}

	// Aggregate missing skills per station type across the manual items.
	gaps := make(map[station.Type]map[string]struct{})
	for _, item := range items {
		if _, ok := manualIDs[item.ID().String()]; !ok {
			continue
		}
		for _, skill := range item.RequiredSkills() {
			if anyStationHasSkill(stations, item.StationType(), skill) {
				continue
			}
			if gaps[item.StationType()] == nil {
				gaps[item.StationType()] = make(map[string]struct{})
			}
			gaps[item.StationType()][skill] = struct{}{}
		}
	}

	var suggestions []station.CrossTrainingSuggestion
	for stationType, skills := range gaps {
		target := staffedStationOfType(stations, stationType)
		if target == nil {
			continue
		}

		skillGap := make([]string, 0, len(skills))
		for skill := range skills {
			skillGap = append(skillGap, skill)
		}
		sort.Strings(skillGap)

		suggestions = append(suggestions, station.CrossTrainingSuggestion{
			StaffName:             target.Staff()[0],
			TargetStationID:       target.ID(),
			StationType:           stationType,
			SkillGap:              skillGap,
			EstimatedTrainingDays: 3 * len(skillGap),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].StationType < suggestions[j].StationType
	})
	return suggestions
}

func anyStationHasSkill(stations []*station.Station, stationType station.Type, skill string) bool {
	for _, s := range stations {
		if s.StationType() == stationType && s.IsAssignable() && s.HasSpecialization(skill) {
			return true
		}
	}
	return false
}

func staffedStationOfType(stations []*station.Station, stationType station.Type) *station.Station {
	for _, s := range stations {
		if s.StationType() == stationType && len(s.Staff()) > 0 {
			return s
		}
	}
	return nil
}

func (a StationAssigner) redistributionPriority(projected float64) string {
	if projected >= a.thresholds.Critical {
		return "high"
	}
	return "medium"
}

func diffOrZero(a, b int) int {
	if a > b {
		return a - b
	}
	return 0
}
