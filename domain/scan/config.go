package scan

import (
	"fmt"
)

// Default scan limits.
const (
	DefaultMaxItemsToScan = 50000
	DefaultPageSize       = 200
)

// ApiConstraints defines the technical limits imposed by SharePoint APIs.
// These are infrastructure limits, not user preferences.
type ApiConstraints struct {
	MinPageSize int // Minimum valid page size (1)
	MaxPageSize int // SharePoint REST API limit (5000)
}

// DefaultApiConstraints returns SharePoint API technical limits.
func DefaultApiConstraints() *ApiConstraints {
	return &ApiConstraints{
		MinPageSize: 1,
		MaxPageSize: 5000, // SharePoint REST API limit
	}
}

// Config holds the user-supplied parameters for one scan invocation.
// It is immutable for the duration of the scan.
type Config struct {
	SiteURL         string   // Site collection being audited
	InternalDomains []string // Email domain suffixes considered internal; may be empty
	MaxItemsToScan  int      // Global item budget across all lists
	PageSize        int      // Items requested per page
}

// ValidateAndSetDefaults fills zero values with defaults, then validates
// against API constraints.
func (c *Config) ValidateAndSetDefaults(constraints *ApiConstraints) error {
	if c == nil {
		return fmt.Errorf("scan config cannot be nil")
	}
	if constraints == nil {
		constraints = DefaultApiConstraints()
	}

	if c.MaxItemsToScan == 0 {
		c.MaxItemsToScan = DefaultMaxItemsToScan
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}

	if c.SiteURL == "" {
		return fmt.Errorf("site URL cannot be empty")
	}
	if c.MaxItemsToScan < 0 {
		return fmt.Errorf("max_items_to_scan cannot be negative, got: %d", c.MaxItemsToScan)
	}
	if c.PageSize < constraints.MinPageSize {
		return fmt.Errorf("page_size must be at least %d, got: %d", constraints.MinPageSize, c.PageSize)
	}
	if c.PageSize > constraints.MaxPageSize {
		return fmt.Errorf("page_size cannot exceed %d (SharePoint API limit), got: %d", constraints.MaxPageSize, c.PageSize)
	}

	return nil
}
