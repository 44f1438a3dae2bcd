package chartview

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/calgal7-del/1040-paydays/pkg/core/chart"
	"github.com/calgal7-del/1040-paydays/pkg/core/plan"
	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
	"github.com/calgal7-del/1040-paydays/pkg/core/report"
	"github.com/calgal7-del/1040-paydays/pkg/models"
)

// Handler serves the server-rendered chart page at /chart. The page is a
// pure function of its query string: form fields arrive as parameters,
// scale=log flips the vertical axis, compare=1 adds the rate variants.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

var seriesColors = []string{"#58a6ff", "#8b949e"}

// compareColors keeps the base rate on the primary blue with the low and
// high variants on red and green either side of it.
var compareColors = []string{"#f85149", "#58a6ff", "#3fb950", "#8b949e"}

var funcMap = template.FuncMap{
	"fmtMoney": report.FormatMoney,
	"fmtAxis":  axisLabel,
}

type polyline struct {
	Label  string
	Color  string
	Points string
	Width  string
	Dashed bool
}

type xTick struct {
	X     float64
	Label string
}

type pageData struct {
	Title       string
	Compare     bool
	LogScale    bool
	LinearHref  string
	LogHref     string
	CompareHref string
	Result      projection.ProjectionResult
	Rect        chart.PlotRect
	RectRight   float64
	RectBottom  float64
	Ticks       []chart.Tick
	XTicks      []xTick
	Polylines   []polyline
	ReportHTML  template.HTML
	Meta        models.CalculationMeta
}

func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	q := r.URL.Query()
	form := formFromQuery(q)
	if tok := q.Get("t"); tok != "" {
		payload, err := plan.DecodeShareToken(tok)
		if err != nil {
			fmt.Printf("[CHART] %v\n", err)
		} else {
			form = payload.FormValues
		}
	}
	input := form.Sanitize()
	compare := q.Get("compare") == "1"
	mode := chart.ParseScaleMode(q.Get("scale"))

	var (
		result     projection.ProjectionResult
		comparison []projection.ProjectionResult
	)
	series := []chart.HoverSeries{}
	if compare {
		rates := projection.ComparisonRates(input.AnnualRatePct)
		comparison = projection.RunComparison(input)
		result = comparison[1]
		for i, res := range comparison {
			series = append(series, chart.HoverSeries{
				Label:  report.FormatPct(rates[i]) + " balance",
				Values: balances(res),
			})
		}
		series = append(series, chart.HoverSeries{Label: "contributions", Values: contributions(result)})
	} else {
		result = projection.Run(input)
		series = append(series,
			chart.HoverSeries{Label: "balance", Values: balances(result)},
			chart.HoverSeries{Label: "contributions", Values: contributions(result)},
		)
	}

	// A full page load carries no prior axis state, so the axis snaps
	// straight to the computed maximum.
	geo := chart.BuildGeometry(series, mode, chart.AxisState{}, 0)

	md := report.BuildMarkdown(report.Data{
		Input:       input,
		Result:      result,
		Comparison:  comparison,
		GeneratedAt: time.Now(),
	})
	reportHTML, err := report.ToHTML(md)
	if err != nil {
		fmt.Printf("[CHART] %v\n", err)
	}

	data := pageData{
		Title:       fmt.Sprintf("Savings projection: age %.0f to %.0f", input.CurrentAge, input.RetirementAge),
		Compare:     compare,
		LogScale:    geo.Mode == chart.ScaleLog,
		LinearHref:  hrefWith(q, "scale", ""),
		LogHref:     hrefWith(q, "scale", "log"),
		CompareHref: compareHref(q, compare),
		Result:      result,
		Rect:        geo.Rect,
		RectRight:   geo.Rect.Right(),
		RectBottom:  geo.Rect.Bottom(),
		Ticks:       geo.Ticks,
		XTicks:      ageTicks(input, geo.Rect),
		Polylines:   buildPolylines(geo, compare),
		ReportHTML:  template.HTML(reportHTML),
		Meta:        models.NewCalculationMeta(start),
	}
	render(w, tmplChart, data)
}

func render(w http.ResponseWriter, tmplStr string, data interface{}) {
	t, err := template.New("page").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		http.Error(w, "Template parse error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "page", data); err != nil {
		fmt.Printf("[CHART] RENDER_FAILED: %v\n", err)
	}
}

// formFromQuery lifts the raw query parameters into the same form shape the
// JSON endpoints accept. Parameter names match the JSON field names.
func formFromQuery(q url.Values) projection.FormValues {
	return projection.FormValues{
		CurrentAge:            q.Get("currentAge"),
		RetirementAge:         q.Get("retirementAge"),
		StartingAmount:        q.Get("startingAmount"),
		ContributionPerPayday: q.Get("contributionPerPayday"),
		AnnualRatePct:         q.Get("annualRatePct"),
		Frequency:             q.Get("frequency"),
		WindfallAmount:        q.Get("windfallAmount"),
		WindfallTiming:        q.Get("windfallTiming"),
		WindfallYear:          q.Get("windfallYear"),
		WindfallAge:           q.Get("windfallAge"),
		WindfallPayday:        q.Get("windfallPayday"),
	}
}

func buildPolylines(geo chart.Geometry, compare bool) []polyline {
	colors := seriesColors
	if compare {
		colors = compareColors
	}

	lines := make([]polyline, 0, len(geo.Series))
	for i, s := range geo.Series {
		var sb strings.Builder
		for j, p := range s.Points {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		}

		dashed := s.Label == "contributions"
		width := "2"
		if dashed {
			width = "1.5"
		}
		lines = append(lines, polyline{
			Label:  s.Label,
			Color:  colors[i%len(colors)],
			Points: sb.String(),
			Width:  width,
			Dashed: dashed,
		})
	}
	return lines
}

// ageTicks labels the horizontal axis with ages at roughly eight steps.
// Points are spread evenly by period, so a year offset maps onto the axis
// as its fraction of the full span.
func ageTicks(in projection.ProjectionInput, rect chart.PlotRect) []xTick {
	span := in.RetirementAge - in.CurrentAge
	if span <= 0 {
		return nil
	}

	step := int(math.Ceil(span / 8))
	if step < 1 {
		step = 1
	}

	ticks := []xTick{}
	for y := 0; float64(y) <= span; y += step {
		frac := float64(y) / span
		ticks = append(ticks, xTick{
			X:     rect.Left + frac*rect.Width,
			Label: strconv.Itoa(int(in.CurrentAge) + y),
		})
	}
	return ticks
}

// axisLabel compacts a dollar amount for the cramped tick gutter.
func axisLabel(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case av >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case av >= 1e4:
		return fmt.Sprintf("$%.0fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func balances(res projection.ProjectionResult) []float64 {
	out := make([]float64, len(res.Points))
	for i, p := range res.Points {
		out[i] = p.Balance
	}
	return out
}

func contributions(res projection.ProjectionResult) []float64 {
	out := make([]float64, len(res.Points))
	for i, p := range res.Points {
		out[i] = p.TotalContrib
	}
	return out
}

// hrefWith rebuilds the page URL with one parameter added, replaced, or
// removed so the scale and compare toggles round-trip the full form state.
func hrefWith(q url.Values, key, val string) string {
	c := url.Values{}
	for k, vs := range q {
		c[k] = append([]string(nil), vs...)
	}
	if val == "" {
		c.Del(key)
	} else {
		c.Set(key, val)
	}
	if enc := c.Encode(); enc != "" {
		return "/chart?" + enc
	}
	return "/chart"
}

func compareHref(q url.Values, active bool) string {
	if active {
		return hrefWith(q, "compare", "")
	}
	return hrefWith(q, "compare", "1")
}
