package engine

import (
	"sort"

	"github.com/adboard/adboard-go/internal/models"
)

// GroupKey selects the rollup dimension.
type GroupKey string

const (
	GroupByAd    GroupKey = "ad_name"
	GroupByAdSet GroupKey = "ad_set_name"
)

// AggregateBy rolls joined records up by the given key. Ratios are derived
// from the summed numerators and denominators; averaging the per-record
// ratios instead skews toward low-volume ads and is exactly the bug this
// replaces. Output is sorted by total spend descending, key ascending on
// ties.
func AggregateBy(records []models.JoinedAdRecord, key GroupKey) []models.Aggregate {
	groups := make(map[string]*models.Aggregate)
	order := make([]string, 0)
	for _, r := range records {
		k := r.AdName
		if key == GroupByAdSet {
			k = r.AdSetName
		}
		agg, ok := groups[k]
		if !ok {
			agg = &models.Aggregate{Key: k}
			groups[k] = agg
			order = append(order, k)
		}
		agg.Ads++
		agg.TotalAds++
		agg.Spend += r.Spend
		agg.Impressions += r.Impressions
		agg.Clicks += r.Clicks
		agg.Revenue += r.Revenue
		agg.OfferSpend += r.OfferSpend
		agg.AttributedBookings += r.AttributedBookings
		agg.FunnelStarts += r.FunnelStarts
		agg.SurveyCompletions += r.SurveyCompletions
		agg.CheckoutStarts += r.CheckoutStarts
		if r.AllCriteriaMet {
			agg.SuccessfulAds++
		}
	}

	out := make([]models.Aggregate, 0, len(order))
	for _, k := range order {
		agg := groups[k]
		deriveAggregate(agg)
		out = append(out, *agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Spend != out[j].Spend {
			return out[i].Spend > out[j].Spend
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func deriveAggregate(a *models.Aggregate) {
	clicks := NonNegative(float64(a.Clicks))
	impressions := NonNegative(float64(a.Impressions))
	a.CTR = safeDiv(clicks, impressions) * 100
	a.CPC = safeDiv(a.Spend, clicks)
	a.CPM = safeDiv(a.Spend, impressions) * 1000
	a.CPA = safeDiv(a.Spend, a.AttributedBookings)
	a.ROAS = safeDiv(a.Revenue, a.Spend)
	a.FunnelStartRate = safeDiv(a.FunnelStarts, clicks) * 100
	a.BookingConversionRate = safeDiv(a.AttributedBookings, clicks) * 100
}
