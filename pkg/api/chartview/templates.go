package chartview

// ── Page template ─────────────────────────────────────────────────────────────

const tmplChart = `
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>1040 Paydays</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px;margin-right:8px}
nav a{color:#8b949e;padding:4px 8px;border-radius:4px}
nav a.active{background:#1f6feb;color:#fff}
main{padding:16px;max-width:920px;margin:0 auto}
h1{font-size:16px;font-weight:700;color:#f0f6fc;margin-bottom:12px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:140px}
.card .val{font-size:22px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px}
.chart-wrap{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:8px;margin-bottom:16px}
svg{display:block;width:100%;height:auto}
.grid{stroke:#21262d;stroke-width:1}
.axis-label{fill:#8b949e;font-size:10px;font-family:inherit}
.legend{display:flex;gap:16px;padding:6px 10px;font-size:11px;color:#8b949e}
.legend .swatch{display:inline-block;width:10px;height:10px;border-radius:2px;margin-right:5px;vertical-align:middle}
.report{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:16px;margin-bottom:16px}
.report h1{font-size:15px;margin:0 0 8px}
.report h2{font-size:12px;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;margin:12px 0 6px}
.report ul{margin-left:18px}
.report li{margin:2px 0}
.meta{font-size:11px;color:#8b949e;padding:4px 0}
</style>
</head>
<body>
<nav>
  <span class="brand">1040 Paydays</span>
  <a href="{{.LinearHref}}" {{if not .LogScale}}class="active"{{end}}>linear</a>
  <a href="{{.LogHref}}" {{if .LogScale}}class="active"{{end}}>log</a>
  <a href="{{.CompareHref}}" {{if .Compare}}class="active"{{end}}>&plusmn;2%</a>
</nav>
<main>
<h1>{{.Title}}</h1>

<div class="cards">
  <div class="card"><div class="val">{{fmtMoney .Result.FinalBalance}}</div><div class="lbl">final balance</div></div>
  <div class="card"><div class="val">{{fmtMoney .Result.FinalContrib}}</div><div class="lbl">contributions</div></div>
  <div class="card"><div class="val">{{fmtMoney .Result.FinalInterest}}</div><div class="lbl">interest earned</div></div>
  <div class="card"><div class="val">{{.Result.Years}} yr</div><div class="lbl">{{.Result.TotalPeriods}} paydays</div></div>
</div>

<div class="chart-wrap">
<svg viewBox="0 0 860 420" xmlns="http://www.w3.org/2000/svg">
  {{range .Ticks}}
  <line class="grid" x1="{{$.Rect.Left}}" y1="{{.Y}}" x2="{{$.RectRight}}" y2="{{.Y}}"></line>
  <text class="axis-label" x="{{$.Rect.Left}}" y="{{.Y}}" dx="-6" dy="3" text-anchor="end">{{fmtAxis .Value}}</text>
  {{end}}
  {{range .XTicks}}
  <text class="axis-label" x="{{.X}}" y="{{$.RectBottom}}" dy="14" text-anchor="middle">{{.Label}}</text>
  {{end}}
  {{range .Polylines}}
  <polyline points="{{.Points}}" fill="none" stroke="{{.Color}}" stroke-width="{{.Width}}" {{if .Dashed}}stroke-dasharray="4 3"{{end}}></polyline>
  {{end}}
</svg>
<div class="legend">
  {{range .Polylines}}<span><span class="swatch" style="background:{{.Color}}"></span>{{.Label}}</span>{{end}}
</div>
</div>

<div class="report">{{.ReportHTML}}</div>

<div class="meta">calculation {{.Meta.CalculationID}} &middot; {{.Meta.DurationMs}}ms</div>
</main>
</body>
</html>{{end}}
`
