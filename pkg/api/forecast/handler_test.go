package forecast

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/calgal7-del/1040-paydays/pkg/core/store"
)

const tol = 1e-9

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

const baseForm = `"currentAge":"29","retirementAge":"30","startingAmount":"1000","contributionPerPayday":"100","annualRatePct":"12","frequency":"monthly"`

func TestHandleForecast(t *testing.T) {
	h := NewHandler(store.NewMemoryResultCache())

	rec := postJSON(t, h.HandleForecast, `{`+baseForm+`,"scale":"linear"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp ForecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// One year monthly: 12 periods, all 13 samples kept under the default cap.
	if resp.Result.TotalPeriods != 12 {
		t.Errorf("TotalPeriods = %d, want 12", resp.Result.TotalPeriods)
	}
	if len(resp.Result.Points) != 13 {
		t.Errorf("points = %d, want 13", len(resp.Result.Points))
	}
	if math.Abs(resp.Result.FinalContrib-1200) > tol {
		t.Errorf("FinalContrib = %v, want 1200", resp.Result.FinalContrib)
	}
	// balance = starting + contributions + interest
	identity := resp.Result.FinalBalance - resp.Result.FinalContrib - 1000
	if math.Abs(identity-resp.Result.FinalInterest) > 1e-6 {
		t.Errorf("accounting identity off: interest %v vs %v", resp.Result.FinalInterest, identity)
	}

	// Envelope and geometry.
	if resp.Meta.CalculationID == "" || resp.Meta.CompletedAt == "" {
		t.Errorf("meta incomplete: %+v", resp.Meta)
	}
	if resp.Meta.Cached {
		t.Error("first call reported a cache hit")
	}
	if resp.Geometry.Rect.Left != 48 || resp.Geometry.Rect.Height != 376 {
		t.Errorf("plot rect = %+v", resp.Geometry.Rect)
	}
	if math.Abs(resp.Geometry.Axis.DisplayMax-resp.Result.FinalBalance) > tol {
		t.Errorf("first cycle DisplayMax = %v, want snap to final balance %v",
			resp.Geometry.Axis.DisplayMax, resp.Result.FinalBalance)
	}
	if len(resp.Geometry.Series) != 2 {
		t.Fatalf("geometry series = %d, want balance + contributions", len(resp.Geometry.Series))
	}
	if resp.Geometry.Series[0].Label != "balance" || resp.Geometry.Series[1].Label != "contributions" {
		t.Errorf("series labels = %q, %q", resp.Geometry.Series[0].Label, resp.Geometry.Series[1].Label)
	}
	if len(resp.Geometry.Ticks) == 0 {
		t.Error("no ticks generated")
	}
}

func TestHandleForecast_SecondCallHitsCache(t *testing.T) {
	h := NewHandler(store.NewMemoryResultCache())
	body := `{` + baseForm + `}`

	postJSON(t, h.HandleForecast, body)
	rec := postJSON(t, h.HandleForecast, body)

	var resp ForecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Meta.Cached {
		t.Error("second identical request did not hit the cache")
	}
	if resp.Result.TotalPeriods != 12 {
		t.Errorf("cached TotalPeriods = %d", resp.Result.TotalPeriods)
	}
}

func TestHandleForecast_NilCache(t *testing.T) {
	h := NewHandler(nil)
	rec := postJSON(t, h.HandleForecast, `{`+baseForm+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleForecast_Rejects(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HandleForecast(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status %d, want 405", rec.Code)
	}

	rec = postJSON(t, h.HandleForecast, `{"currentAge"`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("truncated body status %d, want 400", rec.Code)
	}

	// Preflight passes through with CORS headers.
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	rec = httptest.NewRecorder()
	h.HandleForecast(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header on preflight")
	}
}

func TestHandleCompare(t *testing.T) {
	h := NewHandler(store.NewMemoryResultCache())

	body := `{"currentAge":"29","retirementAge":"30","startingAmount":"1000","contributionPerPayday":"100","annualRatePct":"7","frequency":"monthly"}`
	rec := postJSON(t, h.HandleCompare, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp CompareResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	wantRates := []float64{5, 7, 9}
	if len(resp.Rates) != 3 {
		t.Fatalf("rates = %v", resp.Rates)
	}
	for i, want := range wantRates {
		if math.Abs(resp.Rates[i]-want) > tol {
			t.Errorf("rates[%d] = %v, want %v", i, resp.Rates[i], want)
		}
	}
	if len(resp.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(resp.Results))
	}
	if !(resp.Results[0].FinalBalance < resp.Results[1].FinalBalance &&
		resp.Results[1].FinalBalance < resp.Results[2].FinalBalance) {
		t.Errorf("final balances not increasing: %v %v %v",
			resp.Results[0].FinalBalance, resp.Results[1].FinalBalance, resp.Results[2].FinalBalance)
	}

	// Three rate curves plus the shared contribution baseline.
	if len(resp.Geometry.Series) != 4 {
		t.Fatalf("geometry series = %d, want 4", len(resp.Geometry.Series))
	}
	if resp.Geometry.Series[0].Label != "5%" || resp.Geometry.Series[3].Label != "contributions" {
		t.Errorf("series labels = %q ... %q", resp.Geometry.Series[0].Label, resp.Geometry.Series[3].Label)
	}
	// The axis covers the tallest (9%) curve.
	if math.Abs(resp.Geometry.Axis.DisplayMax-resp.Results[2].FinalBalance) > tol {
		t.Errorf("DisplayMax = %v, want %v", resp.Geometry.Axis.DisplayMax, resp.Results[2].FinalBalance)
	}
}

func TestHandleHover(t *testing.T) {
	h := NewHandler(store.NewMemoryResultCache())

	rec := postJSON(t, h.HandleHover, `{`+baseForm+`,"t":0.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp HoverResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// 13 samples, so the midpoint lands on index 6, which is period 6 when
	// every point is kept.
	if resp.Index != 6 {
		t.Errorf("Index = %d, want 6", resp.Index)
	}
	if resp.Point.PeriodIndex != 6 {
		t.Errorf("Point.PeriodIndex = %d, want 6", resp.Point.PeriodIndex)
	}
	if len(resp.Values) != 2 {
		t.Errorf("values = %d, want 2", len(resp.Values))
	}
	if resp.Tooltip != nil {
		t.Error("tooltip placed without a box size")
	}
}

func TestHandleHover_CompareWithTooltip(t *testing.T) {
	h := NewHandler(store.NewMemoryResultCache())

	body := `{` + baseForm + `,"compare":true,"t":1,"displayMax":5000,"box":{"width":160,"height":90}}`
	rec := postJSON(t, h.HandleHover, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp HoverResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Index != 12 {
		t.Errorf("Index = %d, want last sample", resp.Index)
	}
	if len(resp.Values) != 4 {
		t.Errorf("values = %d, want 3 rates + contributions", len(resp.Values))
	}
	if resp.Tooltip == nil {
		t.Fatal("tooltip missing despite box size")
	}
	if resp.Tooltip.X < 0 || resp.Tooltip.X+160 > 860 || resp.Tooltip.Y < 0 || resp.Tooltip.Y+90 > 420 {
		t.Errorf("tooltip %+v leaves the canvas", resp.Tooltip)
	}
}
