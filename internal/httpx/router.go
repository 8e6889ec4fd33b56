package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adboard/adboard-go/internal/engine"
	"github.com/adboard/adboard-go/internal/ingest"
	"github.com/adboard/adboard-go/internal/insights"
	"github.com/adboard/adboard-go/internal/models"
	"github.com/adboard/adboard-go/internal/store"
	"github.com/adboard/adboard-go/internal/utils"
)

// NewRouter wires the dashboard API. gen may be nil when no insights key is
// configured; the endpoint then answers 503.
func NewRouter(log *slog.Logger, ref *ingest.Refresher, st *store.Store, gen insights.Generator) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/refresh/run", func(w http.ResponseWriter, r *http.Request) {
		snap := ref.Run(r.Context())
		writeJSON(w, map[string]any{
			"records":  len(snap.Records),
			"degraded": snap.Degraded,
			"fetched":  snap.FetchedAt,
		})
	})

	mux.Get("/ads", func(w http.ResponseWriter, r *http.Request) {
		snap := st.Snapshot()
		limit := atoiDef(r.URL.Query().Get("limit"), 100)
		offset := atoiDef(r.URL.Query().Get("offset"), 0)
		limit, offset = clampLimitOffset(limit, offset, len(snap.Records))
		writeJSON(w, map[string]any{
			"ads":      paginate(snap.Records, limit, offset),
			"total":    len(snap.Records),
			"degraded": snap.Degraded,
			"fetched":  snap.FetchedAt,
		})
	})

	mux.Get("/summary", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Summarize(st.Snapshot().Records))
	})

	mux.Get("/aggregates/adsets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.AggregateBy(st.Snapshot().Records, engine.GroupByAdSet))
	})

	mux.Get("/aggregates/ads", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.AggregateBy(st.Snapshot().Records, engine.GroupByAd))
	})

	mux.Get("/recommendations", func(w http.ResponseWriter, r *http.Request) {
		snap := st.Snapshot()
		writeJSON(w, engine.Recommend(snap.Records, st.Settings().Rules))
	})

	mux.Get("/settings/thresholds", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, st.Settings().Thresholds)
	})

	mux.Put("/settings/thresholds", func(w http.ResponseWriter, r *http.Request) {
		var th models.KpiThresholds
		if err := json.NewDecoder(r.Body).Decode(&th); err != nil {
			http.Error(w, "bad thresholds payload", 400)
			return
		}
		if !validThresholds(th) {
			http.Error(w, "thresholds must be non-negative", 422)
			return
		}
		snap := st.UpdateThresholds(th)
		writeJSON(w, map[string]any{
			"thresholds":  th,
			"reevaluated": len(snap.Records),
		})
	})

	mux.Get("/settings/rules", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, st.Settings().Rules)
	})

	mux.Put("/settings/rules", func(w http.ResponseWriter, r *http.Request) {
		var rules models.OptimizationRules
		if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
			http.Error(w, "bad rules payload", 400)
			return
		}
		if !validRules(rules) {
			http.Error(w, "rule values must be non-negative", 422)
			return
		}
		st.UpdateRules(rules)
		writeJSON(w, rules)
	})

	mux.Get("/insights", func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			http.Error(w, "insights not configured", 503)
			return
		}
		snap := st.Snapshot()
		summary := engine.Summarize(snap.Records)
		top := engine.AggregateBy(snap.Records, engine.GroupByAdSet)
		text, err := gen.Insight(r.Context(), summary, top)
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		writeJSON(w, map[string]string{"insight": text})
	})

	return mux
}

// Thresholds are validated at this boundary; the engine itself assumes sane
// config.
func validThresholds(th models.KpiThresholds) bool {
	for _, v := range []float64{th.CTR, th.FunnelStartRate, th.CPA, th.Clicks, th.ROAS, th.CPC, th.CPM, th.BookingConversionRate} {
		if v < 0 {
			return false
		}
	}
	return true
}

func validRules(r models.OptimizationRules) bool {
	for _, v := range []float64{
		r.PauseROASBelow, r.PauseROASSpendFloor,
		r.PauseCPAAbove, r.PauseCPASpendFloor,
		r.PauseCTRBelow, r.PauseCTRSpendFloor,
		r.PauseNoBookingSpend,
		r.PauseCPCAbove, r.PauseCPCSpendFloor,
		r.ScaleROASAbove, r.ScaleSpendFloor,
		r.ScaleCTRAbove, r.ScaleCPABelow, r.ScaleBookingConvAbove,
		r.PriorityHighSpend, r.PriorityMediumSpend,
	} {
		if v < 0 {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
