package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adboard/adboard-go/internal/config"
	"github.com/adboard/adboard-go/internal/store"
)

func TestRefreshFullCycle(t *testing.T) {
	spendSrv := jsonServer(t, `[
		{"ad_set_name": "AdSetA", "ad_name": "Ad1", "spend": 1000, "impressions": 20000, "clicks": 150}
	]`)
	attrSrv := jsonServer(t, `[
		{"utm_term": "", "utm_content": "Ad1", "revenue": 1500, "offer_spend": 0,
		 "attributed_bookings": 5, "predicted_completion_rate": 0.45}
	]`)
	funnelSrv := jsonServer(t, `[
		{"utm_term": "AdSetA", "utm_content": "Ad1", "funnel_starts": 30,
		 "survey_completions": 12, "checkout_starts": 4, "site_visits": 800}
	]`)

	cfg := config.Config{SpendURL: spendSrv.URL, AttributionURL: attrSrv.URL, FunnelURL: funnelSrv.URL}
	st := store.NewStore(config.DefaultSettings())
	ref := NewRefresher(NewFetcher(NewHTTPClient(2*time.Second), cfg, testLogger()), st, testLogger())

	snap := ref.Run(context.Background())
	require.Len(t, snap.Records, 1)
	assert.Empty(t, snap.Degraded)

	r := snap.Records[0]
	assert.True(t, r.AttributionMatched, "content-only key must match via fallback")
	assert.True(t, r.FunnelMatched)
	assert.InDelta(t, 0.75, r.CTR, 1e-9)
	assert.InDelta(t, 200.0, r.CPA, 1e-9)
	assert.InDelta(t, 1.5, r.ROAS, 1e-9)
	assert.NotNil(t, r.SuccessCriteria)

	// the snapshot is what the store now serves
	assert.Equal(t, snap.Records, st.Snapshot().Records)
	assert.False(t, st.Snapshot().FetchedAt.IsZero())
}

func TestRefreshDegradedSourceStillSwaps(t *testing.T) {
	spendSrv := jsonServer(t, `[
		{"ad_set_name": "A", "ad_name": "Ad1", "spend": 100, "impressions": 1000, "clicks": 10}
	]`)
	brokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer brokenSrv.Close()
	funnelSrv := jsonServer(t, `[]`)

	cfg := config.Config{SpendURL: spendSrv.URL, AttributionURL: brokenSrv.URL, FunnelURL: funnelSrv.URL}
	st := store.NewStore(config.DefaultSettings())
	ref := NewRefresher(NewFetcher(NewHTTPClient(2*time.Second), cfg, testLogger()), st, testLogger())

	snap := ref.Run(context.Background())
	assert.Equal(t, []string{"attribution"}, snap.Degraded)
	require.Len(t, snap.Records, 1)

	// attribution degraded to an empty table: zero contribution, not a failure
	r := snap.Records[0]
	assert.False(t, r.AttributionMatched)
	assert.Zero(t, r.Revenue)
	assert.InDelta(t, 1.0, r.CTR, 1e-9)
}

func TestRefreshReentrant(t *testing.T) {
	spendSrv := jsonServer(t, `[
		{"ad_set_name": "A", "ad_name": "Ad1", "spend": 100, "impressions": 1000, "clicks": 10}
	]`)
	attrSrv := jsonServer(t, `[]`)
	funnelSrv := jsonServer(t, `[]`)

	cfg := config.Config{SpendURL: spendSrv.URL, AttributionURL: attrSrv.URL, FunnelURL: funnelSrv.URL}
	st := store.NewStore(config.DefaultSettings())
	ref := NewRefresher(NewFetcher(NewHTTPClient(2*time.Second), cfg, testLogger()), st, testLogger())

	a := ref.Run(context.Background())
	b := ref.Run(context.Background())
	assert.Equal(t, a.Records, b.Records)
}
