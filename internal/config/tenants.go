package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

// SubdomainCase decides how a tenant code is turned into a portal subdomain.
type SubdomainCase string

const (
	SubdomainLower    SubdomainCase = "lower"
	SubdomainUpper    SubdomainCase = "upper"
	SubdomainPreserve SubdomainCase = "preserve"
)

// Apply normalizes code according to the case rule.
func (c SubdomainCase) Apply(code string) string {
	code = strings.TrimSpace(code)
	switch c {
	case SubdomainUpper:
		return strings.ToUpper(code)
	case SubdomainPreserve:
		return code
	default:
		return strings.ToLower(code)
	}
}

// MarkerMode decides what a failure marker in a login response means.
type MarkerMode string

const (
	// MarkerAuthoritative rejects the login when a marker is found.
	MarkerAuthoritative MarkerMode = "authoritative"

	// MarkerAdvisory only logs the marker; the schedule fetch decides.
	MarkerAdvisory MarkerMode = "advisory"
)

// TenantProfile holds the portal behavior that varies between tenants.
type TenantProfile struct {
	SubdomainCase  SubdomainCase `env:"PORTAL_SUBDOMAIN_CASE" envDefault:"lower" json:"subdomainCase" yaml:"subdomainCase"`
	FailureMarkers []string      `env:"PORTAL_FAILURE_MARKERS" envSeparator:"," envDefault:"invalid" json:"failureMarkers" yaml:"failureMarkers"`
	MarkerMode     MarkerMode    `env:"PORTAL_MARKER_MODE" envDefault:"authoritative" json:"markerMode" yaml:"markerMode"`
}

// DefaultTenantProfile returns the profile used when nothing is configured.
func DefaultTenantProfile() TenantProfile {
	return TenantProfile{
		SubdomainCase:  SubdomainLower,
		FailureMarkers: []string{"invalid"},
		MarkerMode:     MarkerAuthoritative,
	}
}

// Validate checks the profile values.
func (p TenantProfile) Validate() error {
	switch p.SubdomainCase {
	case SubdomainLower, SubdomainUpper, SubdomainPreserve:
	default:
		return fmt.Errorf("subdomain case must be one of: lower, upper, preserve; got %q", p.SubdomainCase)
	}

	switch p.MarkerMode {
	case MarkerAuthoritative, MarkerAdvisory:
	default:
		return fmt.Errorf("marker mode must be one of: authoritative, advisory; got %q", p.MarkerMode)
	}

	for i, m := range p.FailureMarkers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("failure marker %d is empty", i)
		}
	}

	return nil
}

// tenantsFile is the on-disk layout of PORTAL_TENANTS_FILE.
type tenantsFile struct {
	Tenants map[string]TenantProfile `json:"tenants" yaml:"tenants"`
}

// Tenants resolves the effective profile of every tenant.
type Tenants struct {
	defaults  TenantProfile
	overrides map[string]TenantProfile
}

// NewTenants creates a resolver with the given overrides keyed by tenant code (case-insensitive).
func NewTenants(defaults TenantProfile, overrides map[string]TenantProfile) *Tenants {
	normalized := make(map[string]TenantProfile, len(overrides))
	for code, profile := range overrides {
		normalized[strings.ToLower(strings.TrimSpace(code))] = profile
	}
	return &Tenants{
		defaults:  defaults,
		overrides: normalized,
	}
}

// LoadTenants reads overrides from path. An empty path yields defaults for every tenant.
func LoadTenants(path string, defaults TenantProfile) (*Tenants, error) {
	if path == "" {
		return NewTenants(defaults, nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tenants file: %w", err)
	}

	var file tenantsFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json", ".json5":
		err = json5.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported tenants file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode tenants file: %w", err)
	}

	tenants := NewTenants(defaults, file.Tenants)
	for code := range tenants.overrides {
		if err := tenants.Profile(code).Validate(); err != nil {
			return nil, fmt.Errorf("tenant %q: %w", code, err)
		}
	}
	return tenants, nil
}

// Profile returns the tenant's overrides merged over the defaults.
func (t *Tenants) Profile(code string) TenantProfile {
	profile := t.defaults
	profile.FailureMarkers = append([]string(nil), t.defaults.FailureMarkers...)

	override, ok := t.overrides[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return profile
	}
	if err := mergo.Merge(&profile, override, mergo.WithOverride); err != nil {
		return t.defaults
	}
	return profile
}
