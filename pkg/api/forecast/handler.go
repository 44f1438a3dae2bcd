// Package forecast serves the projection endpoints: single forecast,
// three-rate comparison, and hover resolution.
package forecast

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/calgal7-del/1040-paydays/pkg/api/middleware"
	"github.com/calgal7-del/1040-paydays/pkg/core/chart"
	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
	"github.com/calgal7-del/1040-paydays/pkg/core/report"
	"github.com/calgal7-del/1040-paydays/pkg/core/store"
	"github.com/calgal7-del/1040-paydays/pkg/models"
)

// DefaultCacheTTL bounds how long a computed projection stays cached.
const DefaultCacheTTL = 15 * time.Minute

// Handler holds the dependencies for the projection endpoints.
type Handler struct {
	Cache    store.ResultCache
	CacheTTL time.Duration
}

// NewHandler creates a handler over the given cache. A nil cache disables
// caching; every request computes fresh.
func NewHandler(cache store.ResultCache) *Handler {
	return &Handler{Cache: cache, CacheTTL: DefaultCacheTTL}
}

// ForecastRequest is the forecast/compare payload: the raw form plus the
// chart state carried over from the previous cycle.
type ForecastRequest struct {
	projection.FormValues
	Scale      string          `json:"scale,omitempty"`
	Axis       chart.AxisState `json:"axis"`
	ResetToken int             `json:"resetToken"`
}

// ForecastResponse carries the sanitized input, the projection, and the
// ready-to-draw geometry.
type ForecastResponse struct {
	Meta     models.CalculationMeta      `json:"meta"`
	Input    projection.ProjectionInput  `json:"input"`
	Result   projection.ProjectionResult `json:"result"`
	Geometry chart.Geometry              `json:"geometry"`
}

// CompareResponse is the three-variant counterpart, ordered low, base, high.
type CompareResponse struct {
	Meta     models.CalculationMeta        `json:"meta"`
	Input    projection.ProjectionInput    `json:"input"`
	Rates    []float64                     `json:"rates"`
	Results  []projection.ProjectionResult `json:"results"`
	Geometry chart.Geometry                `json:"geometry"`
}

// HandleForecast runs one projection and returns it with chart geometry.
func (h *Handler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "POST") {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := req.FormValues.Sanitize()
	res, hit := h.cachedRun(r.Context(), in)

	geo := chart.BuildGeometry(forecastSeries(res), chart.ParseScaleMode(req.Scale), req.Axis, req.ResetToken)

	meta := models.NewCalculationMeta(start)
	meta.Cached = hit
	fmt.Printf("[FORECAST] %d periods, %d points, cached=%v\n", res.TotalPeriods, len(res.Points), hit)

	writeJSON(w, ForecastResponse{Meta: meta, Input: in, Result: res, Geometry: geo})
}

// HandleCompare reruns the projection at base-2/base/base+2 percent.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "POST") {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := req.FormValues.Sanitize()
	rates := projection.ComparisonRates(in.AnnualRatePct)
	results, hit := h.cachedComparison(r.Context(), in)

	geo := chart.BuildGeometry(comparisonSeries(rates, results), chart.ParseScaleMode(req.Scale), req.Axis, req.ResetToken)

	meta := models.NewCalculationMeta(start)
	meta.Cached = hit
	fmt.Printf("[COMPARE] rates %v, %d periods, cached=%v\n", rates, in.MaxPoints, hit)

	writeJSON(w, CompareResponse{Meta: meta, Input: in, Rates: rates, Results: results, Geometry: geo})
}

// BoxSize is the measured tooltip box, in canvas pixels.
type BoxSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HoverRequest resolves a cursor position against a projection. T is the
// horizontal cursor fraction across the plot area; DisplayMax and Scale are
// echoed from the last geometry so the anchor lands on the drawn curve.
type HoverRequest struct {
	projection.FormValues
	Compare    bool     `json:"compare,omitempty"`
	T          float64  `json:"t"`
	Scale      string   `json:"scale,omitempty"`
	DisplayMax float64  `json:"displayMax,omitempty"`
	Box        *BoxSize `json:"box,omitempty"`
}

// HoverResponse identifies the sample under the cursor: the full base-series
// point plus every plotted series' value, and the tooltip corner when the
// request carried a box size.
type HoverResponse struct {
	Meta    models.CalculationMeta     `json:"meta"`
	Index   int                        `json:"index"`
	X       float64                    `json:"x"`
	Point   projection.ProjectionPoint `json:"point"`
	Values  []chart.HoverValue         `json:"values"`
	Tooltip *chart.Point               `json:"tooltip,omitempty"`
}

// HandleHover resolves the nearest sample for a cursor fraction.
func (h *Handler) HandleHover(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "POST") {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	var req HoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := req.FormValues.Sanitize()

	var series []chart.HoverSeries
	var base projection.ProjectionResult
	var hit bool
	if req.Compare {
		var results []projection.ProjectionResult
		results, hit = h.cachedComparison(r.Context(), in)
		base = results[1]
		series = comparisonSeries(projection.ComparisonRates(in.AnnualRatePct), results)
	} else {
		base, hit = h.cachedRun(r.Context(), in)
		series = forecastSeries(base)
	}

	hr := chart.ResolveHover(req.T, chart.DefaultPlotRect(), series)

	resp := HoverResponse{Index: hr.Index, X: hr.X, Values: hr.Values}
	if n := len(base.Points); n > 0 {
		idx := hr.Index
		if idx > n-1 {
			idx = n - 1
		}
		resp.Point = base.Points[idx]
	}

	if req.Box != nil {
		m := chart.Mapper{
			Rect: chart.DefaultPlotRect(),
			Mode: chart.ParseScaleMode(req.Scale),
			YMax: req.DisplayMax,
		}
		anchor := chart.Point{X: hr.X, Y: m.Y(resp.Point.Balance)}
		tip := chart.PlaceTooltip(anchor, req.Box.Width, req.Box.Height)
		resp.Tooltip = &tip
	}

	resp.Meta = models.NewCalculationMeta(start)
	resp.Meta.Cached = hit

	writeJSON(w, resp)
}

// cachedRun returns the projection for in, reading and filling the result
// cache. The second return reports a cache hit.
func (h *Handler) cachedRun(ctx context.Context, in projection.ProjectionInput) (projection.ProjectionResult, bool) {
	if h.Cache == nil {
		return projection.Run(in), false
	}

	key := "forecast:" + store.InputDigest(in)
	if payload, ok := h.Cache.Get(ctx, key); ok {
		var res projection.ProjectionResult
		if err := json.Unmarshal(payload, &res); err == nil {
			return res, true
		}
	}

	res := projection.Run(in)
	if payload, err := json.Marshal(res); err == nil {
		h.Cache.Set(ctx, key, payload, h.CacheTTL)
	}
	return res, false
}

func (h *Handler) cachedComparison(ctx context.Context, in projection.ProjectionInput) ([]projection.ProjectionResult, bool) {
	if h.Cache == nil {
		return projection.RunComparison(in), false
	}

	key := "compare:" + store.InputDigest(in)
	if payload, ok := h.Cache.Get(ctx, key); ok {
		var results []projection.ProjectionResult
		if err := json.Unmarshal(payload, &results); err == nil && len(results) == 3 {
			return results, true
		}
	}

	results := projection.RunComparison(in)
	if payload, err := json.Marshal(results); err == nil {
		h.Cache.Set(ctx, key, payload, h.CacheTTL)
	}
	return results, false
}

// forecastSeries builds the plotted series for a single projection: the
// balance curve and the contribution baseline.
func forecastSeries(res projection.ProjectionResult) []chart.HoverSeries {
	return []chart.HoverSeries{
		{Label: "balance", Values: balanceValues(res)},
		{Label: "contributions", Values: contributionValues(res)},
	}
}

// comparisonSeries builds one balance series per rate plus the shared
// contribution baseline (contributions do not depend on the rate).
func comparisonSeries(rates []float64, results []projection.ProjectionResult) []chart.HoverSeries {
	series := make([]chart.HoverSeries, 0, len(results)+1)
	for i, res := range results {
		label := "variant"
		if i < len(rates) {
			label = report.FormatPct(rates[i])
		}
		series = append(series, chart.HoverSeries{Label: label, Values: balanceValues(res)})
	}
	if len(results) > 1 {
		series = append(series, chart.HoverSeries{Label: "contributions", Values: contributionValues(results[1])})
	}
	return series
}

func balanceValues(res projection.ProjectionResult) []float64 {
	out := make([]float64, len(res.Points))
	for i, p := range res.Points {
		out[i] = p.Balance
	}
	return out
}

func contributionValues(res projection.ProjectionResult) []float64 {
	out := make([]float64, len(res.Points))
	for i, p := range res.Points {
		out[i] = p.TotalContrib
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
