package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adboard/adboard-go/internal/engine"
	"github.com/adboard/adboard-go/internal/models"
	"github.com/adboard/adboard-go/internal/obs"
	"github.com/adboard/adboard-go/internal/store"
)

// Refresher runs one full data-refresh cycle: fetch the three exports
// concurrently, join and derive once all three are materialized, then swap
// the snapshot. A source that fails to load degrades to an empty table and a
// flag on the snapshot; the cycle itself never fails.
type Refresher struct {
	f   *Fetcher
	st  *store.Store
	log *slog.Logger
}

func NewRefresher(f *Fetcher, st *store.Store, log *slog.Logger) *Refresher {
	return &Refresher{f: f, st: st, log: log}
}

// Run executes a cycle and returns the snapshot it installed.
func (r *Refresher) Run(ctx context.Context) models.Snapshot {
	start := time.Now()
	settings := r.st.Settings()

	var (
		wg          sync.WaitGroup
		spend       []models.SpendRecord
		attribution []models.AttributionRecord
		funnel      []models.FunnelRecord
		errSpend    error
		errAttr     error
		errFunnel   error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		spend, errSpend = r.f.FetchSpend(ctx, settings.SpendFields)
	}()
	go func() {
		defer wg.Done()
		attribution, errAttr = r.f.FetchAttribution(ctx, settings.AttributionFields)
	}()
	go func() {
		defer wg.Done()
		funnel, errFunnel = r.f.FetchFunnel(ctx, settings.FunnelFields)
	}()
	wg.Wait()

	var degraded []string
	for _, s := range []struct {
		name string
		err  error
	}{
		{"spend", errSpend},
		{"attribution", errAttr},
		{"funnel", errFunnel},
	} {
		if s.err != nil {
			degraded = append(degraded, s.name)
			obs.SourceFailures.WithLabelValues(s.name).Inc()
			r.log.Warn("source degraded to empty table", slog.String("source", s.name), slog.String("err", s.err.Error()))
		}
	}

	tables := engine.BuildTables(attribution, funnel)
	records := engine.JoinAll(spend, tables)
	for i := range records {
		engine.EvaluateSuccess(&records[i], settings.Thresholds, settings.SuccessMinCriteria)
		if !records[i].AttributionMatched {
			obs.UnmatchedJoins.WithLabelValues("attribution").Inc()
		}
		if !records[i].FunnelMatched {
			obs.UnmatchedJoins.WithLabelValues("funnel").Inc()
		}
	}

	snap := models.Snapshot{
		Records:   records,
		FetchedAt: time.Now().UTC(),
		Degraded:  degraded,
	}
	r.st.Swap(snap)

	outcome := "ok"
	if len(degraded) > 0 {
		outcome = "degraded"
	}
	obs.RefreshTotal.WithLabelValues(outcome).Inc()
	obs.RefreshDuration.Observe(time.Since(start).Seconds())
	obs.RecordsJoined.Set(float64(len(records)))
	r.log.Info("refresh complete",
		slog.Int("records", len(records)),
		slog.Int("attribution_rows", tables.Attribution.Len()),
		slog.Int("funnel_rows", tables.Funnel.Len()),
		slog.Any("degraded", degraded),
		slog.Duration("took", time.Since(start)))
	return snap
}
