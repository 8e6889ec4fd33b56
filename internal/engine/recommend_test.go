package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adboard/adboard-go/internal/models"
)

func testRules() models.OptimizationRules {
	return models.OptimizationRules{
		PauseROASBelow:      0.5,
		PauseROASSpendFloor: 200,
		PauseCPAAbove:       250,
		PauseCPASpendFloor:  100,
		PauseCTRBelow:       0.15,
		PauseCTRSpendFloor:  150,
		PauseNoBookingSpend: 300,
		PauseCPCAbove:       15,
		PauseCPCSpendFloor:  100,

		ScaleROASAbove:        2.0,
		ScaleSpendFloor:       100,
		ScaleCTRAbove:         1.5,
		ScaleCPABelow:         60,
		ScaleBookingConvAbove: 5.0,

		PriorityHighSpend:   500,
		PriorityMediumSpend: 150,
	}
}

func TestPauseFirstRuleWins(t *testing.T) {
	// triggers both the ROAS rule and the CPA rule; reason must come from
	// the ROAS rule, which runs first
	records := []models.JoinedAdRecord{{
		AdName: "bad", Spend: 400, ROAS: 0.2, CPA: 400, CTR: 0.5, AttributedBookings: 1,
	}}
	out := Recommend(records, testRules())
	require.Len(t, out, 1)
	assert.Equal(t, "pause", out[0].Action)
	assert.Contains(t, out[0].Reason, "ROAS")
}

func TestPausedAdNotScaled(t *testing.T) {
	// exceptional CTR but zero bookings over the spend floor: pause wins
	records := []models.JoinedAdRecord{{
		AdName: "weird", Spend: 400, CTR: 3.0, ROAS: 0.9, AttributedBookings: 0,
	}}
	out := Recommend(records, testRules())
	require.Len(t, out, 1)
	assert.Equal(t, "pause", out[0].Action)
	assert.Contains(t, out[0].Reason, "no bookings")
}

func TestScaleOnROAS(t *testing.T) {
	records := []models.JoinedAdRecord{{
		AdName: "winner", Spend: 300, ROAS: 3.0, CTR: 0.8, CPA: 80, AttributedBookings: 4,
	}}
	out := Recommend(records, testRules())
	require.Len(t, out, 1)
	assert.Equal(t, "scale", out[0].Action)
	assert.Contains(t, out[0].Reason, "ROAS")
}

func TestScaleRequiresSuccessFlag(t *testing.T) {
	rules := testRules()
	rules.ScaleRequiresSuccess = true
	records := []models.JoinedAdRecord{{
		AdName: "almost", Spend: 300, ROAS: 3.0, AttributedBookings: 4, AllCriteriaMet: false,
	}}
	out := Recommend(records, rules)
	assert.Empty(t, out)

	records[0].AllCriteriaMet = true
	out = Recommend(records, rules)
	require.Len(t, out, 1)
	assert.Equal(t, "scale", out[0].Action)
}

func TestScaleOnLowCPANeedsBookings(t *testing.T) {
	records := []models.JoinedAdRecord{
		{AdName: "cheap", Spend: 50, CPA: 30, AttributedBookings: 2, ROAS: 1.0},
		{AdName: "nodata", Spend: 50, CPA: 0, AttributedBookings: 0, ROAS: 1.0},
	}
	out := Recommend(records, testRules())
	require.Len(t, out, 1)
	assert.Equal(t, "cheap", out[0].AdName)
}

func TestPriorityFromSpendOnly(t *testing.T) {
	records := []models.JoinedAdRecord{
		{AdName: "high", Spend: 900, ROAS: 0.1},
		{AdName: "medium", Spend: 250, ROAS: 0.1},
		{AdName: "low", Spend: 210, ROAS: 0.1},
	}
	rules := testRules()
	rules.PriorityMediumSpend = 220
	out := Recommend(records, rules)
	require.Len(t, out, 3)
	assert.Equal(t, "high", out[0].Priority)
	assert.Equal(t, "medium", out[1].Priority)
	assert.Equal(t, "low", out[2].Priority)
}

func TestRecommendationsRankedBySpend(t *testing.T) {
	records := []models.JoinedAdRecord{
		{AdName: "small", Spend: 210, ROAS: 0.1},
		{AdName: "big", Spend: 900, ROAS: 0.1},
	}
	out := Recommend(records, testRules())
	require.Len(t, out, 2)
	assert.Equal(t, "big", out[0].AdName)
	assert.Equal(t, "small", out[1].AdName)
}

func TestNoRecommendationWhenHealthy(t *testing.T) {
	records := []models.JoinedAdRecord{{
		AdName: "fine", Spend: 120, ROAS: 1.5, CPA: 100, CTR: 0.5, CPC: 5, AttributedBookings: 2,
	}}
	out := Recommend(records, testRules())
	assert.Empty(t, out)
}
