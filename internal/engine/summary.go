package engine

import "github.com/adboard/adboard-go/internal/models"

// Summarize folds a record set into grand totals with overall ratios
// computed from those totals. Same invariant as AggregateBy: never average
// per-record ratios.
func Summarize(records []models.JoinedAdRecord) models.Summary {
	var s models.Summary
	s.TotalAds = len(records)
	for _, r := range records {
		s.TotalSpend += r.Spend
		s.TotalRevenue += r.Revenue
		s.TotalImpressions += r.Impressions
		s.TotalClicks += r.Clicks
		s.TotalBookings += r.AttributedBookings
		if r.AllCriteriaMet {
			s.SuccessfulAds++
		}
	}
	clicks := float64(s.TotalClicks)
	impressions := float64(s.TotalImpressions)
	s.CTR = safeDiv(clicks, impressions) * 100
	s.CPC = safeDiv(s.TotalSpend, clicks)
	s.CPM = safeDiv(s.TotalSpend, impressions) * 1000
	s.CPA = safeDiv(s.TotalSpend, s.TotalBookings)
	s.ROAS = safeDiv(s.TotalRevenue, s.TotalSpend)
	return s
}
