package scan

import "strings"

// IsInternalEmail reports whether an email belongs to one of the configured
// internal domains. Matching is a case-insensitive suffix match on "@"+domain;
// domain entries may be supplied with or without a leading "@".
//
// The classification is deliberately conservative: an absent email or an empty
// domain set can never prove an identity internal, so both return false.
func IsInternalEmail(email string, internalDomains []string) bool {
	if email == "" || len(internalDomains) == 0 {
		return false
	}

	lowered := strings.ToLower(email)
	for _, domain := range internalDomains {
		d := strings.ToLower(strings.TrimPrefix(domain, "@"))
		if d == "" {
			continue
		}
		if strings.HasSuffix(lowered, "@"+d) {
			return true
		}
	}
	return false
}
