package render

import (
	"fmt"
	"strings"
	"time"

	"spscan/domain/scan"
)

// Markdown renders the findings-and-recommendations report.
func Markdown(report *scan.Report, ratings []scan.Finding) string {
	m := report.Metrics

	var b strings.Builder
	b.WriteString("# SharePoint Audit — Findings & Recommendations\n\n")
	fmt.Fprintf(&b, "_Generated: %s_\n\n", time.Now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, "_Site: %s_\n\n", report.Site)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Items with unique permissions: **%d**\n", m.ItemsWithUniquePermissions)
	fmt.Fprintf(&b, "- External identities (item-level): **%d**\n", m.ExternalUsers)
	fmt.Fprintf(&b, "- Direct web assignments: **%d**\n", m.WebDirectAssignments)
	fmt.Fprintf(&b, "- Groups without owners: **%d**\n", m.OrphanedGroups)
	fmt.Fprintf(&b, "- Anyone/Everyone at web/site: **%t**\n", m.AnyoneOrEveryoneAtWeb)
	fmt.Fprintf(&b, "- External Owner present: **%t**\n", m.ExternalOwnerPresent)
	fmt.Fprintf(&b, "- Lists discovered: **%d**, items scanned: **%d**\n\n", m.TotalLists, m.TotalItemsScanned)

	if len(report.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, note := range report.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Risk Ratings\n\n")
	if len(ratings) > 0 {
		for _, f := range ratings {
			fmt.Fprintf(&b, "- **%s** — %s\n", f.Level, f.Message)
		}
	} else {
		b.WriteString("- No risks met the configured thresholds.\n")
	}
	b.WriteString("\n")

	if len(report.Findings) > 0 {
		b.WriteString("## Scan Findings\n\n")
		for _, f := range report.Findings {
			if f.Path != "" {
				fmt.Fprintf(&b, "- **%s** — %s (`%s`)\n", f.Level, f.Message, f.Path)
			} else {
				fmt.Fprintf(&b, "- **%s** — %s\n", f.Level, f.Message)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommendations (PnP Snippets)\n\n")
	b.WriteString("- Review anonymous sharing & site sharing settings.\n")
	b.WriteString("- Remove direct web permissions where unjustified.\n")
	b.WriteString("- Reduce item-level unique permissions where possible.\n")
	b.WriteString("- Ensure each SharePoint group has an owner.\n\n")
	b.WriteString("---\n")
	b.WriteString("_PII notice: contains user emails and access data. Handle per policy._\n")

	return b.String()
}
