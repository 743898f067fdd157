package aggregator

import (
	"sort"

	"github.com/joaomarcelooneua/CaliaDash/internal/types"
)

// PremiumSegments splits total reference depreciation into the mac share,
// the license share, and whatever is left.
type PremiumSegments struct {
	MacDepreciation     float64 `json:"mac_depreciation"`
	LicenseDepreciation float64 `json:"license_depreciation"`
	OtherDepreciation   float64 `json:"other_depreciation"`
}

// CategoryStat is one line of the per-category depreciation breakdown.
type CategoryStat struct {
	Category            string  `json:"category"`
	TotalDepreciation   float64 `json:"total_depreciation"`
	Items               int     `json:"items"`
	AverageDepreciation float64 `json:"average_depreciation"`
}

// StatusCount is one (item type, status) cell of the status distribution.
type StatusCount struct {
	ItemType string `json:"item_type"`
	Status   string `json:"status"`
	Items    int    `json:"items"`
}

// LowCostItem aggregates the low-cost records sharing a name.
type LowCostItem struct {
	Name              string  `json:"name"`
	Items             int     `json:"items"`
	TotalDepreciation float64 `json:"total_depreciation"`
}

// Segments computes the premium-vs-rest split. The remainder is clamped at
// zero: a record that is both mac and license is summed into both segments.
func Segments(records []types.CanonicalRecord) PremiumSegments {
	var seg PremiumSegments
	var total float64
	for _, r := range records {
		total += r.ReferenceDepreciation
		if r.IsMac {
			seg.MacDepreciation += r.ReferenceDepreciation
		}
		if r.IsLicense {
			seg.LicenseDepreciation += r.ReferenceDepreciation
		}
	}
	seg.OtherDepreciation = total - seg.MacDepreciation - seg.LicenseDepreciation
	if seg.OtherDepreciation < 0 {
		seg.OtherDepreciation = 0
	}
	return seg
}

// CategoryBreakdown ranks categories by average reference depreciation,
// descending, and keeps the top limit entries. Ties keep first-seen order.
func CategoryBreakdown(records []types.CanonicalRecord, limit int) []CategoryStat {
	sums := map[string]*CategoryStat{}
	var order []string
	for _, r := range records {
		st, ok := sums[r.Category]
		if !ok {
			st = &CategoryStat{Category: r.Category}
			sums[r.Category] = st
			order = append(order, r.Category)
		}
		st.TotalDepreciation += r.ReferenceDepreciation
		st.Items++
	}

	out := make([]CategoryStat, 0, len(order))
	for _, c := range order {
		st := *sums[c]
		st.AverageDepreciation = st.TotalDepreciation / float64(st.Items)
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageDepreciation > out[j].AverageDepreciation
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// StatusDistribution counts records per (item type, status) pair, ranked by
// count descending.
func StatusDistribution(records []types.CanonicalRecord) []StatusCount {
	type key struct{ itemType, status string }
	counts := map[key]int{}
	var order []key
	for _, r := range records {
		k := key{r.ItemType, r.Status}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]StatusCount, 0, len(order))
	for _, k := range order {
		out = append(out, StatusCount{ItemType: k.itemType, Status: k.status, Items: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Items > out[j].Items
	})
	return out
}

// LowCostTopItems groups the low-cost records by name and keeps the limit
// most numerous, so the long tail of small purchases becomes visible.
func LowCostTopItems(records []types.CanonicalRecord, limit int) []LowCostItem {
	sums := map[string]*LowCostItem{}
	var order []string
	for _, r := range records {
		if !r.IsLowCost {
			continue
		}
		it, ok := sums[r.Name]
		if !ok {
			it = &LowCostItem{Name: r.Name}
			sums[r.Name] = it
			order = append(order, r.Name)
		}
		it.Items++
		it.TotalDepreciation += r.ReferenceDepreciation
	}

	out := make([]LowCostItem, 0, len(order))
	for _, nm := range order {
		out = append(out, *sums[nm])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Items > out[j].Items
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
