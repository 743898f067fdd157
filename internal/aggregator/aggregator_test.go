package aggregator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joaomarcelooneua/CaliaDash/internal/types"
)

const idle = "Sem Uso"

func rec(overrides func(*types.CanonicalRecord)) types.CanonicalRecord {
	r := types.CanonicalRecord{
		Name:                  "Notebook Dell",
		Status:                "Em uso",
		Group:                 "TI",
		Owner:                 "ana",
		InventoryCode:         "INV-001",
		ItemType:              "Computador",
		Category:              "Hardware",
		UnitValue:             1000,
		UnitDepreciation:      200,
		ReferenceDepreciation: 200,
		HasOwner:              true,
		HasInventoryCode:      true,
		IsTracked:             true,
		Priority:              types.PriorityEssential,
	}
	if overrides != nil {
		overrides(&r)
	}
	return r
}

func TestAggregate_EmptyCollection(t *testing.T) {
	s := Aggregate(nil, idle)

	assert.Equal(t, 0, s.TotalItems)
	assert.Zero(t, s.TotalDepreciation)
	assert.Zero(t, s.AverageDepreciation)
	assert.Zero(t, s.TrackedShare)
	assert.Zero(t, s.LowCostShare)
	assert.Zero(t, s.IdleShare)
	assert.Zero(t, s.TopGroupsShare)
	assert.Empty(t, s.GroupTotals)
	assert.Empty(t, s.TopGroupsNames)

	for _, pct := range []float64{s.TrackedShare, s.LowCostShare, s.IdleShare, s.TopGroupsShare} {
		assert.False(t, math.IsNaN(pct))
	}
}

func TestAggregate_GroupTotalsRankedByValue(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(func(r *types.CanonicalRecord) { r.Group = "RH"; r.UnitValue = 500 }),
		rec(func(r *types.CanonicalRecord) { r.Group = "TI"; r.UnitValue = 1000 }),
	}
	s := Aggregate(records, idle)

	require.Len(t, s.GroupTotals, 2)
	assert.Equal(t, GroupTotal{Group: "TI", Value: 1000}, s.GroupTotals[0])
	assert.Equal(t, GroupTotal{Group: "RH", Value: 500}, s.GroupTotals[1])
	assert.Equal(t, "TI, RH", s.TopGroupsNames)
	assert.InDelta(t, 100.0, s.TopGroupsShare, 1e-9)

	var sum float64
	for _, g := range s.GroupTotals {
		sum += g.Value
	}
	assert.InDelta(t, s.TotalAssetValue, sum, 1e-9)
}

func TestAggregate_GroupTiesKeepFirstSeenOrder(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(func(r *types.CanonicalRecord) { r.Group = "Ops"; r.UnitValue = 300 }),
		rec(func(r *types.CanonicalRecord) { r.Group = "Fin"; r.UnitValue = 300 }),
		rec(func(r *types.CanonicalRecord) { r.Group = "Dir"; r.UnitValue = 900 }),
	}
	s := Aggregate(records, idle)

	require.Len(t, s.GroupTotals, 3)
	assert.Equal(t, "Dir", s.GroupTotals[0].Group)
	assert.Equal(t, "Ops", s.GroupTotals[1].Group)
	assert.Equal(t, "Fin", s.GroupTotals[2].Group)
	assert.Equal(t, "Dir, Ops", s.TopGroupsNames)
}

func TestAggregate_SumsReferenceDepreciation(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(func(r *types.CanonicalRecord) {
			r.IsMac = true
			r.UnitDepreciation = 300
			r.ReferenceDepreciation = 2145
		}),
		rec(nil),
	}
	s := Aggregate(records, idle)

	assert.InDelta(t, 2345.0, s.TotalDepreciation, 1e-9)
	assert.InDelta(t, 1172.5, s.AverageDepreciation, 1e-9)
	assert.Equal(t, 1, s.MacCount)
	assert.InDelta(t, 2145.0, s.MacDepreciation, 1e-9)
	assert.Equal(t, 0, s.LicenseCount)
}

func TestAggregate_SharesAndCounts(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(nil),
		rec(func(r *types.CanonicalRecord) {
			r.IsTracked = false
			r.IsLowCost = true
			r.ReferenceDepreciation = 50
		}),
		rec(func(r *types.CanonicalRecord) {
			r.Status = idle
			r.IsLowCost = true
			r.ReferenceDepreciation = 30
		}),
		rec(func(r *types.CanonicalRecord) { r.IsTracked = false }),
	}
	s := Aggregate(records, idle)

	assert.Equal(t, 4, s.TotalItems)
	assert.Equal(t, 2, s.TrackedCount)
	assert.InDelta(t, 50.0, s.TrackedShare, 1e-9)
	assert.Equal(t, 2, s.LowCostCount)
	assert.InDelta(t, 50.0, s.LowCostShare, 1e-9)
	assert.InDelta(t, 80.0, s.LowCostDepreciation, 1e-9)
	assert.Equal(t, 1, s.IdleCount)
	assert.InDelta(t, 25.0, s.IdleShare, 1e-9)
}

func TestAggregate_IdleIsExactMatch(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(func(r *types.CanonicalRecord) { r.Status = "sem uso" }),
		rec(func(r *types.CanonicalRecord) { r.Status = "Sem Uso mesmo" }),
		rec(func(r *types.CanonicalRecord) { r.Status = idle }),
	}
	s := Aggregate(records, idle)
	assert.Equal(t, 1, s.IdleCount)
}

func TestFilterByPriority_AllSentinelReturnsInputUnchanged(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(nil),
		rec(func(r *types.CanonicalRecord) { r.Priority = types.PriorityPremium }),
	}
	got := FilterByPriority(records, types.PriorityAll)
	assert.Equal(t, records, got)
	assert.Len(t, got, len(records))
}

func TestFilterByPriority_UnknownSelectionReturnsInput(t *testing.T) {
	records := []types.CanonicalRecord{rec(nil)}
	got := FilterByPriority(records, "Does-not-exist")
	assert.Equal(t, records, got)
}

func TestFilterByPriority_SelectsMatchingRecords(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(func(r *types.CanonicalRecord) { r.Name = "MacBook"; r.Priority = types.PriorityPremium }),
		rec(nil),
		rec(func(r *types.CanonicalRecord) { r.Name = "Cadeira"; r.Priority = types.PriorityNonEssential }),
	}
	got := FilterByPriority(records, types.PriorityPremium)
	require.Len(t, got, 1)
	assert.Equal(t, "MacBook", got[0].Name)
}

func TestFilterByPriority_ViewAndGlobalAreIndependent(t *testing.T) {
	records := []types.CanonicalRecord{
		rec(func(r *types.CanonicalRecord) { r.Priority = types.PriorityPremium; r.UnitValue = 5000 }),
		rec(nil),
	}
	global := Aggregate(records, idle)
	view := Aggregate(FilterByPriority(records, types.PriorityPremium), idle)

	assert.Equal(t, 2, global.TotalItems)
	assert.Equal(t, 1, view.TotalItems)
	// filtering must not have touched the source collection
	assert.Equal(t, 2, Aggregate(records, idle).TotalItems)
}
