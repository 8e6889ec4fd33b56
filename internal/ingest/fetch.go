package ingest

import (
	"context"
	"log/slog"

	"github.com/adboard/adboard-go/internal/config"
	"github.com/adboard/adboard-go/internal/engine"
	"github.com/adboard/adboard-go/internal/models"
)

// Fetcher pulls the three source exports and decodes them into typed
// records. Rows arrive as loose JSON objects; every field goes through the
// configured field map and numeric coercion, so a "$1,234.56" spend or a
// blank impressions cell degrades to a usable number instead of killing the
// row.
type Fetcher struct {
	c   HTTPClient
	cfg config.Config
	log *slog.Logger
}

func NewFetcher(c HTTPClient, cfg config.Config, log *slog.Logger) *Fetcher {
	return &Fetcher{c: c, cfg: cfg, log: log}
}

type rawRows []map[string]any

func str(row map[string]any, key string) string {
	if v, ok := row[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// FetchSpend pulls the ad platform spend export. Summary rows ("Total",
// "Sum", "Grand") are dropped here so they never reach the joiner's input.
func (f *Fetcher) FetchSpend(ctx context.Context, fm config.FieldMap) ([]models.SpendRecord, error) {
	var rows rawRows
	if err := GetJSONWithRetry(ctx, f.c, f.cfg.SpendURL, &rows); err != nil {
		return nil, err
	}
	out := make([]models.SpendRecord, 0, len(rows))
	for _, row := range rows {
		r := models.SpendRecord{
			AdSetName:   str(row, fm.Key("ad_set_name")),
			AdName:      str(row, fm.Key("ad_name")),
			Spend:       engine.NonNegative(engine.Coerce(row[fm.Key("spend")], 0)),
			Impressions: engine.NonNegativeInt(engine.CoerceInt(row[fm.Key("impressions")], 0)),
			Clicks:      engine.NonNegativeInt(engine.CoerceInt(row[fm.Key("clicks")], 0)),
		}
		if engine.IsSummaryLabel(r.AdName) || engine.IsSummaryLabel(r.AdSetName) {
			continue
		}
		if r.AdName == "" && r.AdSetName == "" {
			continue
		}
		out = append(out, r)
	}
	f.log.Debug("spend export fetched", slog.Int("rows", len(out)))
	return out, nil
}

// FetchAttribution pulls the revenue/booking attribution export.
func (f *Fetcher) FetchAttribution(ctx context.Context, fm config.FieldMap) ([]models.AttributionRecord, error) {
	var rows rawRows
	if err := GetJSONWithRetry(ctx, f.c, f.cfg.AttributionURL, &rows); err != nil {
		return nil, err
	}
	out := make([]models.AttributionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.AttributionRecord{
			KeyTerm:                 str(row, fm.Key("utm_term")),
			KeyContent:              str(row, fm.Key("utm_content")),
			Revenue:                 engine.NonNegative(engine.Coerce(row[fm.Key("revenue")], 0)),
			OfferSpend:              engine.NonNegative(engine.Coerce(row[fm.Key("offer_spend")], 0)),
			AttributedBookings:      engine.NonNegative(engine.Coerce(row[fm.Key("attributed_bookings")], 0)),
			PredictedCompletionRate: engine.Coerce(row[fm.Key("predicted_completion_rate")], 0),
		})
	}
	f.log.Debug("attribution export fetched", slog.Int("rows", len(out)))
	return out, nil
}

// FetchFunnel pulls the web-funnel event counts export.
func (f *Fetcher) FetchFunnel(ctx context.Context, fm config.FieldMap) ([]models.FunnelRecord, error) {
	var rows rawRows
	if err := GetJSONWithRetry(ctx, f.c, f.cfg.FunnelURL, &rows); err != nil {
		return nil, err
	}
	out := make([]models.FunnelRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.FunnelRecord{
			KeyTerm:           str(row, fm.Key("utm_term")),
			KeyContent:        str(row, fm.Key("utm_content")),
			FunnelStarts:      engine.NonNegative(engine.Coerce(row[fm.Key("funnel_starts")], 0)),
			SurveyCompletions: engine.NonNegative(engine.Coerce(row[fm.Key("survey_completions")], 0)),
			CheckoutStarts:    engine.NonNegative(engine.Coerce(row[fm.Key("checkout_starts")], 0)),
			SiteVisits:        engine.NonNegative(engine.Coerce(row[fm.Key("site_visits")], 0)),
		})
	}
	f.log.Debug("funnel export fetched", slog.Int("rows", len(out)))
	return out, nil
}
