package engine

import "github.com/adboard/adboard-go/internal/models"

// Tables are the two auxiliary sources pre-indexed for fuzzy lookup.
type Tables struct {
	Attribution *Index[models.AttributionRecord]
	Funnel      *Index[models.FunnelRecord]
}

// BuildTables indexes the attribution and funnel exports. Summary rows are
// dropped by the index itself.
func BuildTables(attribution []models.AttributionRecord, funnel []models.FunnelRecord) Tables {
	t := Tables{
		Attribution: NewIndex[models.AttributionRecord](),
		Funnel:      NewIndex[models.FunnelRecord](),
	}
	for _, a := range attribution {
		t.Attribution.Add(a.KeyTerm, a.KeyContent, a)
	}
	for _, f := range funnel {
		t.Funnel.Add(f.KeyTerm, f.KeyContent, f)
	}
	return t
}

// JoinAll produces one derived record per spend row. Pure: same inputs give
// bit-identical output, so a superseded refresh cycle can simply be thrown
// away. A spend row that matches neither auxiliary table still comes out,
// with zero contributions.
func JoinAll(spend []models.SpendRecord, t Tables) []models.JoinedAdRecord {
	out := make([]models.JoinedAdRecord, 0, len(spend))
	for _, s := range spend {
		if IsSummaryLabel(s.AdName) || IsSummaryLabel(s.AdSetName) {
			continue
		}
		out = append(out, JoinOne(s, t))
	}
	return out
}

// JoinOne joins a single spend row against the auxiliary tables and derives
// its full metric set.
func JoinOne(s models.SpendRecord, t Tables) models.JoinedAdRecord {
	r := models.JoinedAdRecord{
		AdSetName:   s.AdSetName,
		AdName:      s.AdName,
		Spend:       NonNegative(s.Spend),
		Impressions: NonNegativeInt(s.Impressions),
		Clicks:      NonNegativeInt(s.Clicks),
	}
	if a, ok := t.Attribution.Lookup(s.AdSetName, s.AdName); ok {
		r.AttributionMatched = true
		r.Revenue = NonNegative(a.Revenue)
		r.OfferSpend = NonNegative(a.OfferSpend)
		r.AttributedBookings = NonNegative(a.AttributedBookings)
		r.PredictedCompletionRate = a.PredictedCompletionRate
	}
	if f, ok := t.Funnel.Lookup(s.AdSetName, s.AdName); ok {
		r.FunnelMatched = true
		r.FunnelStarts = NonNegative(f.FunnelStarts)
		r.SurveyCompletions = NonNegative(f.SurveyCompletions)
		r.CheckoutStarts = NonNegative(f.CheckoutStarts)
		r.SiteVisits = NonNegative(f.SiteVisits)
	}
	Derive(&r)
	return r
}
