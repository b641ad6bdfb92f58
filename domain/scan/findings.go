package scan

// Severity rates a finding.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
)

// Finding is a discrete, severity-tagged risk observation.
type Finding struct {
	Level   Severity `json:"level"`
	Message string   `json:"message"`
	Path    string   `json:"path,omitempty"`
}

// DetailRow records one scanned item: the list it belongs to, its path, and
// whether it carries unique (inheritance-broken) permissions.
type DetailRow struct {
	List   string `json:"list"`
	URL    string `json:"url"`
	Unique bool   `json:"unique"`
}
