package render

import (
	"fmt"
	"regexp"
	"strings"
)

// reportDataPattern locates the embedded report payload: a script tag
// identified by id="report-data" and type="application/json". Single match
// over the whole document, case-insensitive, dot matches newline.
var reportDataPattern = regexp.MustCompile(
	`(?is)<script[^>]*\bid="report-data"[^>]*\btype="application/json"[^>]*>(.*?)</script>`)

// ExtractEmbeddedReport pulls the raw report JSON out of a rendered HTML
// artifact. Returns an error when no embedded report is present.
func ExtractEmbeddedReport(document string) ([]byte, error) {
	m := reportDataPattern.FindStringSubmatch(document)
	if m == nil {
		return nil, fmt.Errorf("no embedded report found")
	}
	payload := strings.ReplaceAll(m[1], `<\/`, "</")
	return []byte(strings.TrimSpace(payload)), nil
}
