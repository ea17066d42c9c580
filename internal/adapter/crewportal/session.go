// Package crewportal implements domain.Session against the crew scheduling portal.
// Every session owns its own cookie jar and HTTP client; nothing is shared between scrapes.
package crewportal

import (
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/net/publicsuffix"

	"github.com/crewlink/crew-schedule-scraper/internal/config"
	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
)

var tracer = otel.Tracer("crewportal")

// Portal endpoints, relative to the tenant base URL.
const (
	LoginPath    = "/wap/Login"
	SchedulePath = "/wap/LoadMonthlySchedule"
)

// Defaults used when Options leaves a field empty.
const (
	DefaultBaseURL   = "https://" + config.TenantPlaceholder + ".flica.net"
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	maxRedirects = 10
)

// Options configures a Factory.
type Options struct {
	// BaseURL is the portal address template; config.TenantPlaceholder is replaced by the subdomain
	BaseURL string

	// Timeout bounds each request
	Timeout   time.Duration
	UserAgent string

	// Tenants supplies per-tenant subdomain and marker rules
	Tenants *config.Tenants
	Logger  *logger.Logger
}

// Factory creates isolated portal sessions.
type Factory struct {
	opts Options
}

// NewFactory creates a Factory, filling empty options with defaults.
func NewFactory(opts Options) *Factory {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Tenants == nil {
		opts.Tenants = config.NewTenants(config.DefaultTenantProfile(), nil)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Factory{opts: opts}
}

// BaseURL returns the portal base URL for a tenant code.
func (f *Factory) BaseURL(tenantCode string) string {
	profile := f.opts.Tenants.Profile(tenantCode)
	return strings.ReplaceAll(f.opts.BaseURL, config.TenantPlaceholder, profile.SubdomainCase.Apply(tenantCode))
}

// NewSession returns a fresh session bound to the tenant's portal.
func (f *Factory) NewSession(tenantCode string) domain.Session {
	baseURL := f.BaseURL(tenantCode)

	// cookiejar.New never returns an error
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetCookieJar(jar)
	client.SetTimeout(f.opts.Timeout)
	client.SetHeader("user-agent", f.opts.UserAgent)
	if u, err := url.Parse(baseURL); err == nil {
		client.SetRedirectPolicy(
			resty.FlexibleRedirectPolicy(maxRedirects),
			resty.DomainCheckRedirectPolicy(u.Hostname()),
		)
	}
	instrument(client)

	return &session{
		http:    client,
		tenant:  strings.TrimSpace(tenantCode),
		profile: f.opts.Tenants.Profile(tenantCode),
		log:     f.opts.Logger.WithTenant(strings.TrimSpace(tenantCode)),
		state:   domain.LoginPending,
	}
}

// session is a single-operation portal session. It is not safe for concurrent use.
type session struct {
	http    *resty.Client
	tenant  string
	profile config.TenantProfile
	log     *logger.Logger
	state   domain.LoginState
}

// State returns the current login state.
func (s *session) State() domain.LoginState {
	return s.state
}

// Close drops the cookie jar and idle connections. The portal has no logout endpoint.
func (s *session) Close() {
	s.http.SetCookieJar(nil)
	s.http.GetClient().CloseIdleConnections()
}

var (
	_ domain.SessionFactory = (*Factory)(nil)
	_ domain.Session        = (*session)(nil)
)
