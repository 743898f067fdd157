package aggregator

import (
	"sort"
	"strings"

	"github.com/joaomarcelooneua/CaliaDash/internal/types"
)

// GroupTotal is one cost-center line in the ranked breakdown.
type GroupTotal struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

// Snapshot is the full set of derived indicators for one record collection.
// It is recomputed from scratch on every call; nothing here is cached or
// mutated across inputs.
type Snapshot struct {
	TotalItems          int     `json:"total_items"`
	TotalDepreciation   float64 `json:"total_depreciation"`
	TotalAssetValue     float64 `json:"total_asset_value"`
	AverageDepreciation float64 `json:"average_depreciation"`

	MacDepreciation     float64 `json:"mac_depreciation"`
	MacCount            int     `json:"mac_count"`
	LicenseDepreciation float64 `json:"license_depreciation"`
	LicenseCount        int     `json:"license_count"`

	TrackedShare float64 `json:"tracked_share"`
	TrackedCount int     `json:"tracked_count"`

	LowCostDepreciation float64 `json:"low_cost_depreciation"`
	LowCostCount        int     `json:"low_cost_count"`
	LowCostShare        float64 `json:"low_cost_share"`

	IdleShare float64 `json:"idle_share"`
	IdleCount int     `json:"idle_count"`

	GroupTotals    []GroupTotal `json:"group_totals"`
	TopGroupsShare float64      `json:"top_groups_share"`
	TopGroupsNames string       `json:"top_groups_names"`
}

// Aggregate computes a Snapshot over records. It never fails: an empty
// collection yields zero counts and zero shares, not NaN.
//
// Totals sum the policy-adjusted reference depreciation, not the raw unit
// figure. The idle stat is an exact status match, unlike the substring-based
// flags, which mirrors how the source system counts idle assets.
func Aggregate(records []types.CanonicalRecord, idleStatus string) Snapshot {
	s := Snapshot{TotalItems: len(records), GroupTotals: []GroupTotal{}}

	groupSums := map[string]float64{}
	var groupOrder []string

	for _, r := range records {
		s.TotalDepreciation += r.ReferenceDepreciation
		s.TotalAssetValue += r.UnitValue

		if r.IsMac {
			s.MacDepreciation += r.ReferenceDepreciation
			s.MacCount++
		}
		if r.IsLicense {
			s.LicenseDepreciation += r.ReferenceDepreciation
			s.LicenseCount++
		}
		if r.IsTracked {
			s.TrackedCount++
		}
		if r.IsLowCost {
			s.LowCostDepreciation += r.ReferenceDepreciation
			s.LowCostCount++
		}
		if r.Status == idleStatus {
			s.IdleCount++
		}

		if _, seen := groupSums[r.Group]; !seen {
			groupOrder = append(groupOrder, r.Group)
		}
		groupSums[r.Group] += r.UnitValue
	}

	if s.TotalItems > 0 {
		n := float64(s.TotalItems)
		s.AverageDepreciation = s.TotalDepreciation / n
		s.TrackedShare = float64(s.TrackedCount) / n * 100
		s.LowCostShare = float64(s.LowCostCount) / n * 100
		s.IdleShare = float64(s.IdleCount) / n * 100
	}

	// Rank groups by value descending; the stable sort keeps first-seen
	// order for ties.
	for _, g := range groupOrder {
		s.GroupTotals = append(s.GroupTotals, GroupTotal{Group: g, Value: groupSums[g]})
	}
	sort.SliceStable(s.GroupTotals, func(i, j int) bool {
		return s.GroupTotals[i].Value > s.GroupTotals[j].Value
	})

	top := s.GroupTotals
	if len(top) > 2 {
		top = top[:2]
	}
	var topSum float64
	var topNames []string
	for _, g := range top {
		topSum += g.Value
		topNames = append(topNames, g.Group)
	}
	if s.TotalAssetValue > 0 && len(top) > 0 {
		s.TopGroupsShare = topSum / s.TotalAssetValue * 100
	}
	s.TopGroupsNames = strings.Join(topNames, ", ")

	return s
}

// FilterByPriority returns the records whose priority matches selection.
// The "all" sentinel, or a selection no present record carries, returns the
// input collection unchanged.
func FilterByPriority(records []types.CanonicalRecord, selection string) []types.CanonicalRecord {
	if selection == types.PriorityAll || !priorityPresent(records, selection) {
		return records
	}
	out := make([]types.CanonicalRecord, 0, len(records))
	for _, r := range records {
		if r.Priority == selection {
			out = append(out, r)
		}
	}
	return out
}

func priorityPresent(records []types.CanonicalRecord, selection string) bool {
	for _, r := range records {
		if r.Priority == selection {
			return true
		}
	}
	return false
}
