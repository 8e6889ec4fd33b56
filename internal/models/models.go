package models

import "time"

// SpendRecord is one row of the ad platform's spend export,
// one per (ad set, ad) pair. Summary rows ("Total") are dropped at decode.
type SpendRecord struct {
	AdSetName   string  `json:"ad_set_name"`
	AdName      string  `json:"ad_name"`
	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
}

// AttributionRecord is one row of the attribution export, keyed by UTM
// term/content rather than by the ad platform's own naming.
type AttributionRecord struct {
	KeyTerm                 string  `json:"utm_term"`
	KeyContent              string  `json:"utm_content"`
	Revenue                 float64 `json:"revenue"`
	OfferSpend              float64 `json:"offer_spend"`
	AttributedBookings      float64 `json:"attributed_bookings"`
	PredictedCompletionRate float64 `json:"predicted_completion_rate"`
}

// FunnelRecord is one row of the web-funnel export, same UTM keying.
type FunnelRecord struct {
	KeyTerm           string  `json:"utm_term"`
	KeyContent        string  `json:"utm_content"`
	FunnelStarts      float64 `json:"funnel_starts"`
	SurveyCompletions float64 `json:"survey_completions"`
	CheckoutStarts    float64 `json:"checkout_starts"`
	SiteVisits        float64 `json:"site_visits"`
}

// JoinedAdRecord is one spend row enriched with its matched attribution and
// funnel contributions plus every derived ratio. Built fresh each refresh
// cycle; only success evaluation is recomputed in place after a thresholds
// update.
type JoinedAdRecord struct {
	AdSetName string `json:"ad_set_name"`
	AdName    string `json:"ad_name"`

	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`

	Revenue                 float64 `json:"revenue"`
	OfferSpend              float64 `json:"offer_spend"`
	AttributedBookings      float64 `json:"attributed_bookings"`
	PredictedCompletionRate float64 `json:"-"`

	FunnelStarts      float64 `json:"funnel_starts"`
	SurveyCompletions float64 `json:"survey_completions"`
	CheckoutStarts    float64 `json:"checkout_starts"`
	SiteVisits        float64 `json:"site_visits"`

	CTR                   float64 `json:"ctr"`
	CPC                   float64 `json:"cpc"`
	CPM                   float64 `json:"cpm"`
	CPA                   float64 `json:"cpa"`
	ROAS                  float64 `json:"roas"`
	FunnelStartRate       float64 `json:"funnel_start_rate"`
	BookingConversionRate float64 `json:"booking_conversion_rate"`
	SurveyCompletionRate  float64 `json:"survey_completion_rate"`
	CheckoutStartRate     float64 `json:"checkout_start_rate"`
	CompletionRate        float64 `json:"completion_rate"`
	EffectiveBookings     float64 `json:"effective_bookings"`
	TotalCost             float64 `json:"total_cost"`
	CAC                   float64 `json:"cac"`
	LTV                   float64 `json:"ltv"`

	AttributionMatched bool `json:"attribution_matched"`
	FunnelMatched      bool `json:"funnel_matched"`

	SuccessCriteria map[string]bool `json:"success_criteria"`
	SuccessCount    int             `json:"success_count"`
	AllCriteriaMet  bool            `json:"all_criteria_met"`
}

// KpiThresholds are the eight user-tunable success thresholds. Rate and
// volume metrics pass at-or-above their threshold; cost metrics pass only
// when strictly positive and at-or-below.
type KpiThresholds struct {
	CTR                   float64 `json:"ctr" yaml:"ctr"`
	FunnelStartRate       float64 `json:"funnel_start_rate" yaml:"funnel_start_rate"`
	CPA                   float64 `json:"cpa" yaml:"cpa"`
	Clicks                float64 `json:"clicks" yaml:"clicks"`
	ROAS                  float64 `json:"roas" yaml:"roas"`
	CPC                   float64 `json:"cpc" yaml:"cpc"`
	CPM                   float64 `json:"cpm" yaml:"cpm"`
	BookingConversionRate float64 `json:"booking_conversion_rate" yaml:"booking_conversion_rate"`
}

// OptimizationRules drive the pause/scale recommendation scan.
type OptimizationRules struct {
	PauseROASBelow      float64 `json:"pause_roas_below" yaml:"pause_roas_below"`
	PauseROASSpendFloor float64 `json:"pause_roas_spend_floor" yaml:"pause_roas_spend_floor"`
	PauseCPAAbove       float64 `json:"pause_cpa_above" yaml:"pause_cpa_above"`
	PauseCPASpendFloor  float64 `json:"pause_cpa_spend_floor" yaml:"pause_cpa_spend_floor"`
	PauseCTRBelow       float64 `json:"pause_ctr_below" yaml:"pause_ctr_below"`
	PauseCTRSpendFloor  float64 `json:"pause_ctr_spend_floor" yaml:"pause_ctr_spend_floor"`
	PauseNoBookingSpend float64 `json:"pause_no_booking_spend" yaml:"pause_no_booking_spend"`
	PauseCPCAbove       float64 `json:"pause_cpc_above" yaml:"pause_cpc_above"`
	PauseCPCSpendFloor  float64 `json:"pause_cpc_spend_floor" yaml:"pause_cpc_spend_floor"`

	ScaleROASAbove        float64 `json:"scale_roas_above" yaml:"scale_roas_above"`
	ScaleSpendFloor       float64 `json:"scale_spend_floor" yaml:"scale_spend_floor"`
	ScaleRequiresSuccess  bool    `json:"scale_requires_success" yaml:"scale_requires_success"`
	ScaleCTRAbove         float64 `json:"scale_ctr_above" yaml:"scale_ctr_above"`
	ScaleCPABelow         float64 `json:"scale_cpa_below" yaml:"scale_cpa_below"`
	ScaleBookingConvAbove float64 `json:"scale_booking_conv_above" yaml:"scale_booking_conv_above"`

	PriorityHighSpend   float64 `json:"priority_high_spend" yaml:"priority_high_spend"`
	PriorityMediumSpend float64 `json:"priority_medium_spend" yaml:"priority_medium_spend"`
}

// Recommendation is one pause/scale action emitted by the rule scan.
type Recommendation struct {
	AdSetName string  `json:"ad_set_name"`
	AdName    string  `json:"ad_name"`
	Action    string  `json:"action"` // "pause" or "scale"
	Reason    string  `json:"reason"`
	Priority  string  `json:"priority"` // "high", "medium", "low"
	Spend     float64 `json:"spend"`
	ROAS      float64 `json:"roas"`
	CPA       float64 `json:"cpa"`
	CTR       float64 `json:"ctr"`
}

// Aggregate is a rollup of joined records by ad name or ad set name. Ratios
// are re-derived from the summed numerators and denominators, never averaged
// from per-record ratios.
type Aggregate struct {
	Key                   string  `json:"key"`
	Ads                   int     `json:"ads"`
	Spend                 float64 `json:"spend"`
	Impressions           int     `json:"impressions"`
	Clicks                int     `json:"clicks"`
	Revenue               float64 `json:"revenue"`
	OfferSpend            float64 `json:"offer_spend"`
	AttributedBookings    float64 `json:"attributed_bookings"`
	FunnelStarts          float64 `json:"funnel_starts"`
	SurveyCompletions     float64 `json:"survey_completions"`
	CheckoutStarts        float64 `json:"checkout_starts"`
	CTR                   float64 `json:"ctr"`
	CPC                   float64 `json:"cpc"`
	CPM                   float64 `json:"cpm"`
	CPA                   float64 `json:"cpa"`
	ROAS                  float64 `json:"roas"`
	FunnelStartRate       float64 `json:"funnel_start_rate"`
	BookingConversionRate float64 `json:"booking_conversion_rate"`
	SuccessfulAds         int     `json:"successful_ads"`
	TotalAds              int     `json:"total_ads"`
}

// Summary is the grand-total view over one snapshot. Overall ratios come
// from the totals, not from averaging per-record ratios.
type Summary struct {
	TotalAds         int     `json:"total_ads"`
	TotalSpend       float64 `json:"total_spend"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalImpressions int     `json:"total_impressions"`
	TotalClicks      int     `json:"total_clicks"`
	TotalBookings    float64 `json:"total_bookings"`
	CTR              float64 `json:"ctr"`
	CPC              float64 `json:"cpc"`
	CPM              float64 `json:"cpm"`
	CPA              float64 `json:"cpa"`
	ROAS             float64 `json:"roas"`
	SuccessfulAds    int     `json:"successful_ads"`
}

// Snapshot is the result of one refresh cycle: the full joined record set
// plus fetch metadata. Swapped atomically; never partially updated.
type Snapshot struct {
	Records   []JoinedAdRecord `json:"records"`
	FetchedAt time.Time        `json:"fetched_at"`
	Degraded  []string         `json:"degraded,omitempty"` // sources that failed and were treated as empty
}
