package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInternalEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		domains  []string
		internal bool
	}{
		{
			name:     "exact domain match",
			email:    "alice@contoso.com",
			domains:  []string{"contoso.com"},
			internal: true,
		},
		{
			name:     "case insensitive on both sides",
			email:    "Alice@Contoso.COM",
			domains:  []string{"CONTOSO.com"},
			internal: true,
		},
		{
			name:     "domain supplied with leading at sign",
			email:    "alice@contoso.com",
			domains:  []string{"@contoso.com"},
			internal: true,
		},
		{
			name:     "second configured domain matches",
			email:    "bob@contoso.de",
			domains:  []string{"contoso.com", "contoso.de"},
			internal: true,
		},
		{
			name:     "subdomain does not match parent domain",
			email:    "alice@sub.contoso.com",
			domains:  []string{"contoso.com"},
			internal: false,
		},
		{
			name:     "unrelated domain",
			email:    "mallory@fabrikam.com",
			domains:  []string{"contoso.com"},
			internal: false,
		},
		{
			name:     "superstring domain does not match",
			email:    "alice@notcontoso.com",
			domains:  []string{"contoso.com"},
			internal: false,
		},
		{
			name:     "empty email is never internal",
			email:    "",
			domains:  []string{"contoso.com"},
			internal: false,
		},
		{
			name:     "no configured domains is never internal",
			email:    "alice@contoso.com",
			domains:  nil,
			internal: false,
		},
		{
			name:     "blank domain entries are skipped",
			email:    "alice@contoso.com",
			domains:  []string{"", "@", "contoso.com"},
			internal: true,
		},
		{
			name:     "only blank domain entries",
			email:    "alice@contoso.com",
			domains:  []string{"", "@"},
			internal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.internal, IsInternalEmail(tt.email, tt.domains))
		})
	}
}
