package render

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"spscan/domain/scan"
)

// pageCSS matches the original report stylesheet.
const pageCSS = "body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem} h1{font-size:1.8rem} h2{font-size:1.3rem;margin-top:2rem} code,pre{background:#f6f8fa;border:1px solid #eaecef;border-radius:6px;padding:.2rem .4rem}"

// HTML renders a standalone report page. The Markdown body is embedded
// escaped, and the full report JSON is embedded in a
// <script id="report-data" type="application/json"> block so downstream
// tooling can extract the machine-readable report from the artifact.
func HTML(report *scan.Report, markdown string) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report for embedding: %w", err)
	}
	// "</" inside JSON strings would terminate the script block early.
	embedded := strings.ReplaceAll(string(payload), "</", `<\/`)

	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	b.WriteString("<title>SharePoint Audit</title>")
	fmt.Fprintf(&b, "<style>%s</style>", pageCSS)
	b.WriteString("</head><body>")
	fmt.Fprintf(&b, "<pre>%s</pre>", html.EscapeString(markdown))
	fmt.Fprintf(&b, `<script id="report-data" type="application/json">%s</script>`, embedded)
	b.WriteString("</body></html>")

	return b.String(), nil
}
