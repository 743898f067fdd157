package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/joaomarcelooneua/CaliaDash/internal/aggregator"
	"github.com/joaomarcelooneua/CaliaDash/internal/config"
	"github.com/joaomarcelooneua/CaliaDash/internal/dataset"
	"github.com/joaomarcelooneua/CaliaDash/internal/logger"
	"github.com/joaomarcelooneua/CaliaDash/internal/normalizer"
	"github.com/joaomarcelooneua/CaliaDash/internal/types"
)

const (
	categoryLimit    = 8
	lowCostItemLimit = 10
)

// insightsResponse carries the filtered view next to the unfiltered global
// snapshot, so the dashboard can show fixed KPIs above a filtered section.
type insightsResponse struct {
	Selection          string                     `json:"selection"`
	Shown              int                        `json:"shown"`
	Global             aggregator.Snapshot        `json:"global"`
	View               aggregator.Snapshot        `json:"view"`
	Segments           aggregator.PremiumSegments `json:"segments"`
	Categories         []aggregator.CategoryStat  `json:"categories"`
	StatusDistribution []aggregator.StatusCount   `json:"status_distribution"`
	LowCostItems       []aggregator.LowCostItem   `json:"low_cost_items"`
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "calia-inventory").Info("starting service")

	opts := config.FromEnv()

	raw, err := loadRaw(log)
	if err != nil {
		log.WithError(err).Fatal("failed to load inventory source")
	}

	// Normalize once at startup; the canonical collection is immutable and
	// every query derives from it.
	records, err := normalizer.New(opts).Normalize(raw)
	if err != nil {
		log.WithError(err).Fatal("failed to normalize inventory")
	}
	log.WithField("records", len(records)).Info("inventory normalized")

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("/records", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "records")
		selection := selectionParam(r)
		filtered := aggregator.FilterByPriority(records, selection)
		reqLog.WithField("selection", selection).WithField("shown", len(filtered)).Info("records request")
		writeJSON(w, filtered)
	})

	mux.HandleFunc("/insights", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "insights")
		selection := selectionParam(r)
		filtered := aggregator.FilterByPriority(records, selection)

		resp := insightsResponse{
			Selection:          selection,
			Shown:              len(filtered),
			Global:             aggregator.Aggregate(records, opts.IdleStatus),
			View:               aggregator.Aggregate(filtered, opts.IdleStatus),
			Segments:           aggregator.Segments(filtered),
			Categories:         aggregator.CategoryBreakdown(filtered, categoryLimit),
			StatusDistribution: aggregator.StatusDistribution(filtered),
			LowCostItems:       aggregator.LowCostTopItems(filtered, lowCostItemLimit),
		}
		reqLog.WithField("selection", selection).WithField("shown", resp.Shown).Info("insights computed")
		writeJSON(w, resp)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func loadRaw(log *logger.Logger) ([]types.RawRecord, error) {
	if url := os.Getenv("DATASET_URL"); url != "" {
		log.WithField("dataset_url", url).Info("loading remote dataset")
		return dataset.LoadURL(url)
	}
	path := envOr("DATASET_PATH", "data/valores.xlsx")
	log.WithField("dataset_path", path).Info("loading local dataset")
	return dataset.Load(path)
}

func selectionParam(r *http.Request) string {
	if s := r.URL.Query().Get("priority"); s != "" {
		return s
	}
	return types.PriorityAll
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
