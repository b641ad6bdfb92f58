package scan

import "time"

// SchemaVersion tags the report envelope format.
const SchemaVersion = "mvp-1"

// NoteNoInternalDomains is appended when classification accuracy is degraded
// because no internal domain allow-list was supplied.
const NoteNoInternalDomains = "internal domains not provided; all identities treated as not internal"

// Report is the versioned, immutable output of one scan invocation.
type Report struct {
	Version  string      `json:"version"`
	Site     string      `json:"site"`
	Metrics  Metrics     `json:"metrics"`
	Notes    []string    `json:"notes"`
	Details  []DetailRow `json:"details"`
	Findings []Finding   `json:"findings"`
}

// Assemble freezes the accumulator into a Report. The timestamp is captured
// here, at assembly time, so it reflects when scanning concluded. No risk
// logic runs here; this is pure aggregation plus caveat notes.
func Assemble(cfg *Config, acc *Accumulator) *Report {
	metrics := acc.Metrics
	metrics.SiteURL = cfg.SiteURL
	metrics.ScannedAt = time.Now().UTC()

	notes := []string{}
	if len(cfg.InternalDomains) == 0 {
		notes = append(notes, NoteNoInternalDomains)
	}

	return &Report{
		Version:  SchemaVersion,
		Site:     cfg.SiteURL,
		Metrics:  metrics,
		Notes:    notes,
		Details:  acc.Details,
		Findings: acc.Findings,
	}
}
