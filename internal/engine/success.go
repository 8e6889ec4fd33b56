package engine

import "github.com/adboard/adboard-go/internal/models"

// Criterion names, stable across the API surface.
const (
	CriterionCTR         = "ctr_good"
	CriterionFunnelStart = "funnel_start_good"
	CriterionCPA         = "cpa_good"
	CriterionClicks      = "clicks_good"
	CriterionROAS        = "roas_good"
	CriterionCPC         = "cpc_good"
	CriterionCPM         = "cpm_good"
	CriterionBookingConv = "booking_conversion_good"
)

// NumCriteria is the size of the success bitset.
const NumCriteria = 8

// EvaluateSuccess fills the record's success map, count and overall flag.
// Rate and volume criteria pass at-or-above their threshold. Cost criteria
// (cpa, cpc, cpm) additionally require a strictly positive value: a zero
// cost means "no data", not "free", and must not pass.
//
// minCriteria is how many of the eight must hold for the record to count as
// a successful ad; 8 is the strict variant, lower values the lenient one.
func EvaluateSuccess(r *models.JoinedAdRecord, th models.KpiThresholds, minCriteria int) {
	crit := map[string]bool{
		CriterionCTR:         r.CTR >= th.CTR,
		CriterionFunnelStart: r.FunnelStartRate >= th.FunnelStartRate,
		CriterionCPA:         costGood(r.CPA, th.CPA),
		CriterionClicks:      float64(r.Clicks) >= th.Clicks,
		CriterionROAS:        r.ROAS >= th.ROAS,
		CriterionCPC:         costGood(r.CPC, th.CPC),
		CriterionCPM:         costGood(r.CPM, th.CPM),
		CriterionBookingConv: r.BookingConversionRate >= th.BookingConversionRate,
	}
	count := 0
	for _, ok := range crit {
		if ok {
			count++
		}
	}
	if minCriteria <= 0 || minCriteria > NumCriteria {
		minCriteria = NumCriteria
	}
	r.SuccessCriteria = crit
	r.SuccessCount = count
	r.AllCriteriaMet = count >= minCriteria
}

// Reevaluate re-runs success evaluation over an existing record set with new
// thresholds. Raw counts and derived ratios are untouched; a thresholds
// change never requires a re-join.
func Reevaluate(records []models.JoinedAdRecord, th models.KpiThresholds, minCriteria int) []models.JoinedAdRecord {
	out := make([]models.JoinedAdRecord, len(records))
	for i := range records {
		out[i] = records[i]
		EvaluateSuccess(&out[i], th, minCriteria)
	}
	return out
}

func costGood(value, threshold float64) bool {
	return value > 0 && value <= threshold
}
