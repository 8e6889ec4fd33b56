package engine

import (
	"fmt"
	"sort"

	"github.com/adboard/adboard-go/internal/models"
)

// Recommend scans joined records against the pause/scale rules. Pause rules
// run in a fixed order and the first one that fires wins; a paused ad is
// never also recommended for scaling. Priority depends only on spend
// magnitude, not on which rule fired. Output is ranked by spend descending,
// ad name ascending on ties.
func Recommend(records []models.JoinedAdRecord, rules models.OptimizationRules) []models.Recommendation {
	out := make([]models.Recommendation, 0)
	for i := range records {
		r := &records[i]
		if rec, ok := evaluatePause(r, rules); ok {
			out = append(out, rec)
			continue
		}
		if rec, ok := evaluateScale(r, rules); ok {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Spend != out[j].Spend {
			return out[i].Spend > out[j].Spend
		}
		return out[i].AdName < out[j].AdName
	})
	return out
}

func evaluatePause(r *models.JoinedAdRecord, rules models.OptimizationRules) (models.Recommendation, bool) {
	var reason string
	switch {
	case r.ROAS < rules.PauseROASBelow && r.Spend > rules.PauseROASSpendFloor:
		reason = fmt.Sprintf("ROAS %.2f below %.2f with $%.2f spent", r.ROAS, rules.PauseROASBelow, r.Spend)
	case r.CPA > rules.PauseCPAAbove && r.Spend > rules.PauseCPASpendFloor:
		reason = fmt.Sprintf("CPA $%.2f above $%.2f ceiling", r.CPA, rules.PauseCPAAbove)
	case r.CTR < rules.PauseCTRBelow && r.Spend > rules.PauseCTRSpendFloor:
		reason = fmt.Sprintf("CTR %.2f%% below %.2f%% floor", r.CTR, rules.PauseCTRBelow)
	case r.AttributedBookings == 0 && r.Spend > rules.PauseNoBookingSpend:
		reason = fmt.Sprintf("no bookings after $%.2f spent", r.Spend)
	case r.CPC > rules.PauseCPCAbove && r.Spend > rules.PauseCPCSpendFloor:
		reason = fmt.Sprintf("CPC $%.2f above $%.2f ceiling", r.CPC, rules.PauseCPCAbove)
	default:
		return models.Recommendation{}, false
	}
	return build(r, "pause", reason, rules), true
}

func evaluateScale(r *models.JoinedAdRecord, rules models.OptimizationRules) (models.Recommendation, bool) {
	var reason string
	switch {
	case r.ROAS > rules.ScaleROASAbove && r.Spend > rules.ScaleSpendFloor &&
		(!rules.ScaleRequiresSuccess || r.AllCriteriaMet):
		reason = fmt.Sprintf("ROAS %.2f above %.2f with proven spend", r.ROAS, rules.ScaleROASAbove)
	case r.CTR > rules.ScaleCTRAbove:
		reason = fmt.Sprintf("exceptional CTR %.2f%%", r.CTR)
	case r.CPA > 0 && r.CPA < rules.ScaleCPABelow && r.AttributedBookings > 0:
		reason = fmt.Sprintf("CPA $%.2f well under target", r.CPA)
	case r.BookingConversionRate > rules.ScaleBookingConvAbove:
		reason = fmt.Sprintf("booking conversion %.2f%% above %.2f%%", r.BookingConversionRate, rules.ScaleBookingConvAbove)
	default:
		return models.Recommendation{}, false
	}
	return build(r, "scale", reason, rules), true
}

func build(r *models.JoinedAdRecord, action, reason string, rules models.OptimizationRules) models.Recommendation {
	return models.Recommendation{
		AdSetName: r.AdSetName,
		AdName:    r.AdName,
		Action:    action,
		Reason:    reason,
		Priority:  priority(r.Spend, rules),
		Spend:     r.Spend,
		ROAS:      r.ROAS,
		CPA:       r.CPA,
		CTR:       r.CTR,
	}
}

func priority(spend float64, rules models.OptimizationRules) string {
	switch {
	case spend >= rules.PriorityHighSpend:
		return "high"
	case spend >= rules.PriorityMediumSpend:
		return "medium"
	default:
		return "low"
	}
}
