package spauth

import (
	"fmt"
	"os"
	"strings"

	"github.com/koltyakov/gosip"
	"github.com/koltyakov/gosip/auth/azurecert"
)

// Config holds app-only (certificate) authentication settings for one tenant.
type Config struct {
	SiteURL      string
	TenantID     string
	ClientID     string
	CertPath     string
	CertPassword string
}

// FromEnv reads authentication settings from the environment. SiteURL is
// optional here because the scan CLI supplies the target site per invocation.
func FromEnv() (Config, error) {
	cfg := Config{
		SiteURL:      os.Getenv("SP_SITE_URL"),
		TenantID:     os.Getenv("SP_TENANT_ID"),
		ClientID:     os.Getenv("SP_CLIENT_ID"),
		CertPath:     os.Getenv("SP_CERT_PATH"),
		CertPassword: os.Getenv("SP_CERT_PASSWORD"),
	}

	var missing []string
	if cfg.TenantID == "" {
		missing = append(missing, "SP_TENANT_ID")
	}
	if cfg.ClientID == "" {
		missing = append(missing, "SP_CLIENT_ID")
	}
	if cfg.CertPath == "" {
		missing = append(missing, "SP_CERT_PATH")
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// NewClient builds a Gosip client for the given site using the azurecert
// auth strategy.
func NewClient(cfg Config, siteURL string) (*gosip.SPClient, error) {
	if siteURL == "" {
		siteURL = cfg.SiteURL
	}
	if siteURL == "" {
		return nil, fmt.Errorf("site URL is required")
	}

	ac := &azurecert.AuthCnfg{
		SiteURL:  siteURL,
		TenantID: cfg.TenantID,
		ClientID: cfg.ClientID,
		CertPath: cfg.CertPath,
		CertPass: cfg.CertPassword,
	}
	return &gosip.SPClient{AuthCnfg: ac}, nil
}
