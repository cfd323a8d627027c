package outputter

import (
	"html/template"
	"io"
)

// htmlPage embeds the JSON document and a box plot of the run durations of
// every benchmark. Plotly is loaded from its CDN when the page is opened.
var htmlPage = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-latest.min.js"></script>
<script>
var benchkitOutput = {{.Document}};
var traces = {{.Traces}};
window.addEventListener("load", function() {
  Plotly.newPlot("plotContainer", traces, {
    title: {{.Title}},
    xaxis: {title: "Execution time (ms)"},
    yaxis: {showticklabels: false},
    hovermode: false
  });
});
</script>
</head>
<body>
<div id="plotContainer"></div>
</body>
</html>
`))

const htmlTitle = "Benchmark Results"

// boxTrace is one Plotly box trace.
type boxTrace struct {
	Type      string    `json:"type"`
	BoxPoints string    `json:"boxpoints"`
	Name      string    `json:"name"`
	X         []float64 `json:"x"`
}

// NewHTML creates a renderer writing a self-contained HTML page to w. Each
// benchmark becomes one box of run durations in milliseconds; disabled
// benchmarks get an empty box.
func NewHTML(w io.Writer) Outputter {
	return &documentOutputter{w: w, encode: encodeHTML}
}

func encodeHTML(w io.Writer, doc *Document) error {
	traces := make([]boxTrace, 0, len(doc.Benchmarks))
	for _, b := range doc.Benchmarks {
		x := make([]float64, 0, len(b.Runs))
		for _, r := range b.Runs {
			x = append(x, r.Duration)
		}
		traces = append(traces, boxTrace{
			Type:      "box",
			BoxPoints: "outliers",
			Name:      FormatName(b.Fixture, b.Name, b.Parameters),
			X:         x,
		})
	}
	return htmlPage.Execute(w, struct {
		Title    string
		Document *Document
		Traces   []boxTrace
	}{htmlTitle, doc, traces})
}
