package engine

import "github.com/adboard/adboard-go/internal/models"

// Completion rate is a predicted value from the attribution source; anything
// outside the plausible band is replaced by the default. 0.45 is also what an
// unmatched join ends up with, since a predicted rate of 0 falls outside the
// band.
const (
	DefaultCompletionRate = 0.45
	MinCompletionRate     = 0.39
	MaxCompletionRate     = 0.51
)

// ClampCompletionRate applies the business sanity check on the predicted
// completion rate.
func ClampCompletionRate(predicted float64) float64 {
	if predicted < MinCompletionRate || predicted > MaxCompletionRate {
		return DefaultCompletionRate
	}
	return predicted
}

// Derive computes every ratio on a joined record from its raw counts.
//
// Definitions settled here after the source history flip-flopped on them:
// cpa is spend per attributed booking (NPR), roas is revenue over spend, and
// funnel_start_rate is per click. A zero denominator always yields 0, never
// NaN or an infinity.
func Derive(r *models.JoinedAdRecord) {
	// counts are clamped at decode, but a negative slipping in through any
	// other path must not produce a negative ratio
	clicks := NonNegative(float64(r.Clicks))
	impressions := NonNegative(float64(r.Impressions))

	r.CTR = safeDiv(clicks, impressions) * 100
	r.CPC = safeDiv(r.Spend, clicks)
	r.CPM = safeDiv(r.Spend, impressions) * 1000
	r.FunnelStartRate = safeDiv(r.FunnelStarts, clicks) * 100
	r.BookingConversionRate = safeDiv(r.AttributedBookings, clicks) * 100
	r.SurveyCompletionRate = safeDiv(r.SurveyCompletions, r.FunnelStarts) * 100
	r.CheckoutStartRate = safeDiv(r.CheckoutStarts, r.SurveyCompletions) * 100
	r.CPA = safeDiv(r.Spend, r.AttributedBookings)

	r.CompletionRate = ClampCompletionRate(r.PredictedCompletionRate)
	r.EffectiveBookings = r.AttributedBookings * r.CompletionRate
	r.TotalCost = r.Spend + r.OfferSpend
	r.CAC = safeDiv(r.TotalCost, r.EffectiveBookings)
	r.LTV = safeDiv(r.Revenue, r.EffectiveBookings)
	r.ROAS = safeDiv(r.Revenue, r.Spend)
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
