// Package mock provides test doubles for the crew schedule scraper.
// Portal is a fake crew portal served over httptest with configurable
// users, schedules, delays and failures for integration testing.
package mock

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookie is the cookie the fake portal issues on login.
	SessionCookie = "FLiCASession"

	loginPath    = "/wap/Login"
	schedulePath = "/wap/LoadMonthlySchedule"

	loginOKBody      = `<html><body><h1>Welcome</h1></body></html>`
	loginInvalidBody = `<html><body><p class="error">Invalid user ID or password</p></body></html>`
	loginFormBody    = `<html><body><form action="/wap/Login"><input name="userID"><input type="password" name="password"></form></body></html>`
)

// Request is one recorded portal request.
type Request struct {
	Path   string
	Month  string
	UserID string
	Cookie bool
}

// Portal is a configurable fake crew portal.
type Portal struct {
	server *httptest.Server

	mu           sync.Mutex
	users        map[string]string
	schedules    map[string]map[string]string
	defaultBody  string
	failMonths   map[string]int
	delay        time.Duration
	loginStatus  int
	markerOnFail bool
	sessions     map[string]string
	requests     []Request
}

// NewPortal creates a portal with no users. Configure it with the With* methods, then call Start.
func NewPortal() *Portal {
	return &Portal{
		users:        map[string]string{},
		schedules:    map[string]map[string]string{},
		defaultBody:  `{"events":[]}`,
		failMonths:   map[string]int{},
		markerOnFail: true,
		sessions:     map[string]string{},
	}
}

// WithUser registers valid credentials.
func (p *Portal) WithUser(userID, password string) *Portal {
	p.users[userID] = password
	return p
}

// WithSchedule sets the body returned to userID for month ("YYYY-MM").
func (p *Portal) WithSchedule(userID, month, body string) *Portal {
	if p.schedules[userID] == nil {
		p.schedules[userID] = map[string]string{}
	}
	p.schedules[userID][month] = body
	return p
}

// WithDefaultSchedule sets the body returned for months without a specific schedule.
func (p *Portal) WithDefaultSchedule(body string) *Portal {
	p.defaultBody = body
	return p
}

// WithMonthStatus makes every fetch of month answer with status.
func (p *Portal) WithMonthStatus(month string, status int) *Portal {
	p.failMonths[month] = status
	return p
}

// WithDelay delays every response.
func (p *Portal) WithDelay(d time.Duration) *Portal {
	p.delay = d
	return p
}

// WithLoginStatus makes failed logins answer with status instead of a 200 marker page.
func (p *Portal) WithLoginStatus(status int) *Portal {
	p.loginStatus = status
	return p
}

// WithoutFailureMarker makes failed logins answer 200 with a neutral page,
// so only the schedule fetch reveals the rejection.
func (p *Portal) WithoutFailureMarker() *Portal {
	p.markerOnFail = false
	return p
}

// Start begins serving. The server is closed when Close is called.
func (p *Portal) Start() *Portal {
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	return p
}

// URL returns the portal base URL.
func (p *Portal) URL() string {
	return p.server.URL
}

// Close shuts the server down.
func (p *Portal) Close() {
	if p.server != nil {
		p.server.Close()
	}
}

// Requests returns a copy of the recorded requests.
func (p *Portal) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Request(nil), p.requests...)
}

// RequestsFor returns the recorded requests made with userID's session.
func (p *Portal) RequestsFor(userID string) []Request {
	var out []Request
	for _, r := range p.Requests() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func (p *Portal) serve(w http.ResponseWriter, r *http.Request) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-r.Context().Done():
			return
		}
	}

	switch r.URL.Path {
	case loginPath:
		p.login(w, r)
	case schedulePath:
		p.schedule(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (p *Portal) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	userID := r.PostForm.Get("userID")
	password := r.PostForm.Get("password")

	p.mu.Lock()
	p.requests = append(p.requests, Request{Path: loginPath, UserID: userID})
	want, known := p.users[userID]
	p.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !known || want != password {
		if p.loginStatus != 0 {
			w.WriteHeader(p.loginStatus)
			return
		}
		if p.markerOnFail {
			_, _ = w.Write([]byte(loginInvalidBody))
			return
		}
		_, _ = w.Write([]byte(loginOKBody))
		return
	}

	token := uuid.NewString()
	p.mu.Lock()
	p.sessions[token] = userID
	p.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: token, Path: "/", HttpOnly: true})
	_, _ = w.Write([]byte(loginOKBody))
}

func (p *Portal) schedule(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	var userID string
	cookie, err := r.Cookie(SessionCookie)

	p.mu.Lock()
	if err == nil {
		userID = p.sessions[cookie.Value]
	}
	p.requests = append(p.requests, Request{Path: schedulePath, Month: month, UserID: userID, Cookie: err == nil})
	status, failing := p.failMonths[month]
	body, ok := p.schedules[userID][month]
	if !ok {
		body = p.defaultBody
	}
	p.mu.Unlock()

	if userID == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(loginFormBody))
		return
	}

	if failing {
		w.WriteHeader(status)
		return
	}

	if strings.HasPrefix(strings.TrimSpace(body), "<") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write([]byte(body))
}
