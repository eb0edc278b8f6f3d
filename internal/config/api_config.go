package config

import (
	"strings"

	"github.com/cunservicios/portal/tenants"
)

const (
	apiURLVar        = "PORTAL_API_URL"
	legacyAPIURLVar  = "REACT_APP_API_URL"
	apiPrefixVar     = "PORTAL_API_PREFIX"
	defaultTenantVar = "PORTAL_DEFAULT_TENANT"
)

type APIConfig interface {
	GetAPIURL() string
	GetAPIPrefix() string
	GetDefaultTenantID() string
}

type API struct{}

var _ APIConfig = API{}

// GetAPIURL returns the backend base URL (e.g., "https://api.cunservicios.co").
// The legacy frontend variable is honoured when the portal one is unset.
func (API) GetAPIURL() string {
	url := GetEnv(apiURLVar, GetEnv(legacyAPIURLVar, "http://localhost:8000"))
	return strings.TrimRight(url, "/")
}

func (API) GetAPIPrefix() string {
	prefix := GetEnv(apiPrefixVar, "/api/v1")
	if prefix != "" && prefix[0] != '/' {
		prefix = "/" + prefix
	}
	return strings.TrimRight(prefix, "/")
}

// GetDefaultTenantID falls back to the public tenant when the configured
// value does not match the tenant id format.
func (API) GetDefaultTenantID() string {
	return tenants.Normalize(GetEnv(defaultTenantVar, tenants.DefaultID), tenants.DefaultID)
}
