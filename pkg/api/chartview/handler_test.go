package chartview

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/calgal7-del/1040-paydays/pkg/core/plan"
	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

const baseQuery = "currentAge=29&retirementAge=30&startingAmount=1000&contributionPerPayday=100&annualRatePct=12&frequency=monthly"

func getChart(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler()
	req := httptest.NewRequest(http.MethodGet, "/chart?"+query, nil)
	rec := httptest.NewRecorder()
	h.HandleChart(rec, req)
	return rec
}

func TestHandleChart(t *testing.T) {
	rec := getChart(t, baseQuery)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"<svg",
		"<polyline",
		"Savings projection: age 29 to 30",
		// one year of monthly contributions at $100
		"$1,200.00",
		// goldmark-rendered report section
		"<h2>Inputs</h2>",
		"<h2>Outcome</h2>",
		"contributions",
		`class="axis-label"`,
		"calculation ",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// one polyline per series: balance and contributions
	if n := strings.Count(body, "<polyline"); n != 2 {
		t.Errorf("got %d polylines, want 2", n)
	}

	// a one year span labels both endpoint ages
	if !strings.Contains(body, ">29<") || !strings.Contains(body, ">30<") {
		t.Errorf("age labels missing from axis")
	}
}

func TestHandleChart_Compare(t *testing.T) {
	rec := getChart(t, baseQuery+"&compare=1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()

	// three rate variants plus the contribution baseline
	if n := strings.Count(body, "<polyline"); n != 4 {
		t.Errorf("got %d polylines, want 4", n)
	}
	for _, want := range []string{"10% balance", "12% balance", "14% balance"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing variant label %q", want)
		}
	}
	if !strings.Contains(body, "<h2>Rate comparison</h2>") {
		t.Errorf("report comparison section missing")
	}
}

func TestHandleChart_LogScale(t *testing.T) {
	rec := getChart(t, baseQuery+"&scale=log")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Errorf("log scale page missing chart")
	}
}

func TestHandleChart_ShareToken(t *testing.T) {
	tok, err := plan.EncodeShareToken(plan.SharePayload{
		Name: "Sabbatical fund",
		FormValues: projection.FormValues{
			CurrentAge:            "40",
			RetirementAge:         "45",
			StartingAmount:        "5000",
			ContributionPerPayday: "250",
			AnnualRatePct:         "6",
			Frequency:             "biweekly",
		},
	})
	if err != nil {
		t.Fatalf("EncodeShareToken: %v", err)
	}

	rec := getChart(t, "t="+url.QueryEscape(tok))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Savings projection: age 40 to 45") {
		t.Errorf("token form values not applied")
	}
}

func TestHandleChart_BadTokenFallsBack(t *testing.T) {
	// A damaged token renders the page with defaults instead of failing.
	rec := getChart(t, "t=%21%21%21")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Errorf("fallback page missing chart")
	}
}

func TestHandleChart_MethodNotAllowed(t *testing.T) {
	h := NewHandler()
	req := httptest.NewRequest(http.MethodPost, "/chart", nil)
	rec := httptest.NewRecorder()
	h.HandleChart(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHrefWith(t *testing.T) {
	q, _ := url.ParseQuery("currentAge=29&scale=log")

	got := hrefWith(q, "scale", "")
	if got != "/chart?currentAge=29" {
		t.Errorf("removing scale = %q", got)
	}

	got = hrefWith(q, "compare", "1")
	for _, want := range []string{"compare=1", "currentAge=29", "scale=log"} {
		if !strings.Contains(got, want) {
			t.Errorf("href %q missing %q", got, want)
		}
	}

	// the source values must not be mutated
	if q.Get("compare") != "" {
		t.Errorf("hrefWith mutated its input")
	}
}

func TestAxisLabel(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "$0"},
		{500, "$500"},
		{2500, "$2500"},
		{20000, "$20k"},
		{1500000, "$1.5M"},
		{2000000000, "$2.0B"},
	}
	for _, c := range cases {
		if got := axisLabel(c.v); got != c.want {
			t.Errorf("axisLabel(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
