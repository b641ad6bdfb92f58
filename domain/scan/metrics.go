package scan

import "time"

// Metrics is the mutable aggregate of counters accumulated during a scan.
// All counts are monotonically non-decreasing while the scan runs, and
// TotalItemsScanned never exceeds the configured item budget.
type Metrics struct {
	SiteURL                    string    `json:"siteUrl"`
	ScannedAt                  time.Time `json:"scannedAt"`
	ItemsWithUniquePermissions int       `json:"itemsWithUniquePermissions"`
	ExternalUsers              int       `json:"externalUsers"`
	WebDirectAssignments       int       `json:"webDirectAssignments"`
	OrphanedGroups             int       `json:"orphanedGroups"`
	AnyoneOrEveryoneAtWeb      bool      `json:"anyoneOrEveryoneAtWeb"`
	ExternalOwnerPresent       bool      `json:"externalOwnerPresent"`
	TotalLists                 int       `json:"totalLists"`
	TotalItemsScanned          int       `json:"totalItemsScanned"`
}

// Accumulator is the single shared mutable state for one scan invocation.
// It is created empty at scan start, mutated exclusively by the engine's
// traversal, and frozen into a Report at scan end. It is owned by exactly one
// scan and must not be shared across invocations; the engine is
// single-threaded, so no locking is applied here.
type Accumulator struct {
	Metrics  Metrics
	Details  []DetailRow
	Findings []Finding
}

// NewAccumulator creates an empty accumulator for the given site.
// Detail and finding slices are non-nil so an empty scan still serializes as
// empty JSON arrays rather than null.
func NewAccumulator(siteURL string) *Accumulator {
	return &Accumulator{
		Metrics:  Metrics{SiteURL: siteURL},
		Details:  []DetailRow{},
		Findings: []Finding{},
	}
}

// AddFinding appends a finding; insertion order is discovery order.
func (a *Accumulator) AddFinding(level Severity, message, path string) {
	a.Findings = append(a.Findings, Finding{Level: level, Message: message, Path: path})
}

// AddDetail appends one detail row for a scanned item.
func (a *Accumulator) AddDetail(list, url string, unique bool) {
	a.Details = append(a.Details, DetailRow{List: list, URL: url, Unique: unique})
}

// BudgetReached reports whether the shared scanned-item counter has hit the
// configured budget. The counter is the single source of truth for how many
// items the engine has examined across all lists.
func (a *Accumulator) BudgetReached(maxItems int) bool {
	return a.Metrics.TotalItemsScanned >= maxItems
}
