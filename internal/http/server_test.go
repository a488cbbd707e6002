package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"folio/app/internal/admin"
	"folio/app/internal/auth"
	"folio/app/internal/backend"
	"folio/app/internal/portfolio"
	"folio/app/internal/site"
)

const testAdminEmail = "admin@example.com"

func TestHomeRouteRendersPlaceholders(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: backend.Null{}})
	rec := serve(srv, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != htmlContentType {
		t.Fatalf("expected content type %q, got %q", htmlContentType, ct)
	}

	doc := parseHTML(t, rec.Body.String())
	for _, id := range []string{"home", "projects", "about", "contact"} {
		if findByID(doc, id) == nil {
			t.Fatalf("expected section #%s in page", id)
		}
	}

	hero := textOf(findByID(doc, "home"))
	if !contains(hero, site.DefaultName) || !contains(hero, site.CTAText) {
		t.Fatalf("expected default hero, got %q", hero)
	}
	if body := rec.Body.String(); !contains(body, "2026 Jane Doe. All rights reserved.") {
		t.Fatalf("expected footer with year and owner, got %q", body)
	}
}

func TestHomeRouteFiltersByCategory(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.projects = sampleProjects()
	srv := newTestServer(t, serverDeps{store: store})

	rec := serve(srv, httptest.NewRequest("GET", "/?category="+url.QueryEscape("Mobile Development"), nil))
	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	projects := textOf(findByID(parseHTML(t, rec.Body.String()), "projects"))
	if !contains(projects, "Fitness App") || !contains(projects, "Travel Companion") {
		t.Fatalf("expected mobile projects, got %q", projects)
	}
	if contains(projects, "Portfolio Website") {
		t.Fatalf("expected web projects to be filtered out, got %q", projects)
	}
}

func TestHomeRouteShowsLoadError(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.listErr = eris.New("projects table unavailable")
	srv := newTestServer(t, serverDeps{store: store})

	rec := serve(srv, httptest.NewRequest("GET", "/", nil))
	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !contains(rec.Body.String(), "projects table unavailable") {
		t.Fatalf("expected load error banner, got %q", rec.Body.String())
	}
}

func TestProjectRouteOpensCarousel(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.projects = sampleProjects()
	srv := newTestServer(t, serverDeps{store: store})

	rec := serve(srv, httptest.NewRequest("GET", "/projects/2?image=1", nil))
	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !contains(body, `src="b.png"`) {
		t.Fatalf("expected second image in overlay, got %q", body)
	}
	if !contains(body, "/projects/2?image=0") || !contains(body, "/projects/2?image=2") {
		t.Fatalf("expected carousel navigation links, got %q", body)
	}
}

func TestProjectRouteReturns404ForUnknownProject(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.projects = sampleProjects()
	srv := newTestServer(t, serverDeps{store: store})

	rec := serve(srv, httptest.NewRequest("GET", "/projects/missing", nil))
	if rec.Code != 404 {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestContactRouteValidates(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: backend.Null{}})

	rec := serve(srv, formRequest("/contact", url.Values{
		"name":    {"A"},
		"email":   {"nope"},
		"subject": {"Hi"},
		"message": {"short"},
	}))
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, message := range []string{
		"Name must be at least 2 characters",
		"Please enter a valid email address",
		"Subject must be at least 5 characters",
		"Message must be at least 10 characters",
	} {
		if !contains(body, message) {
			t.Fatalf("expected %q in body", message)
		}
	}

	rec = serve(srv, formRequest("/contact", url.Values{
		"name":    {"Grace"},
		"email":   {"grace@example.com"},
		"subject": {"Project inquiry"},
		"message": {"I would like to talk about a project."},
	}))
	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !contains(rec.Body.String(), site.MessageSent) {
		t.Fatalf("expected success message, got %q", rec.Body.String())
	}
	if contains(rec.Body.String(), "grace@example.com") {
		t.Fatal("expected contact form to be reset after success")
	}
}

func TestPortfolioAPIReturnsSnapshotWithCORS(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.projects = sampleProjects()
	srv := newTestServer(t, serverDeps{store: store, origins: []string{"https://example.com"}})

	req := httptest.NewRequest("GET", "/api/portfolio", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := serve(srv, req)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "https://example.com" {
		t.Fatalf("expected CORS origin header, got %q", origin)
	}

	var snapshot portfolio.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if snapshot.Profile != nil || len(snapshot.Projects) != 5 || snapshot.Loading {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestHealthRouteReportsBackend(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: backend.Null{}, health: pingFunc(func(context.Context) error { return nil })})
	rec := serve(srv, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || !contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("expected healthy response, got %d %q", rec.Code, rec.Body.String())
	}

	srv = newTestServer(t, serverDeps{store: backend.Null{}, health: pingFunc(func(context.Context) error {
		return eris.New("database is locked")
	})})
	rec = serve(srv, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != stdhttp.StatusServiceUnavailable || !contains(rec.Body.String(), `"status":"degraded"`) {
		t.Fatalf("expected degraded response, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: newMemStore()})

	rec := serve(srv, httptest.NewRequest("GET", "/admin", nil))
	if rec.Code != 200 || !contains(rec.Body.String(), "Admin Login") {
		t.Fatalf("expected login page, got %d", rec.Code)
	}

	rec = serve(srv, httptest.NewRequest("GET", "/admin/dashboard", nil))
	if rec.Code != stdhttp.StatusFound || rec.Header().Get("Location") != auth.LoginPath {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = serve(srv, httptest.NewRequest("GET", "/admin/settings", nil))
	if rec.Code != stdhttp.StatusFound || rec.Header().Get("Location") != auth.LoginPath {
		t.Fatalf("expected unknown admin path to redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = serve(srv, formRequest("/admin/skills", url.Values{"skill_name": {"Go"}}))
	if rec.Code != stdhttp.StatusSeeOther || rec.Header().Get("Location") != auth.LoginPath {
		t.Fatalf("expected anonymous mutation to redirect to login, got %d", rec.Code)
	}
}

func TestAdminLoginFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: newMemStore()})
	cookie := signIn(t, srv)

	rec := serve(srv, withCookie(httptest.NewRequest("GET", "/admin", nil), cookie))
	if rec.Code != stdhttp.StatusFound || rec.Header().Get("Location") != auth.DashboardPath {
		t.Fatalf("expected signed-in login page to redirect to dashboard, got %d", rec.Code)
	}

	rec = serve(srv, withCookie(httptest.NewRequest("GET", "/admin/dashboard", nil), cookie))
	if rec.Code != 200 {
		t.Fatalf("expected dashboard, got %d", rec.Code)
	}
	if !contains(rec.Body.String(), testAdminEmail) || !contains(rec.Body.String(), "Profile Information") {
		t.Fatalf("expected dashboard with admin email, got %q", rec.Body.String())
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("expected dashboard to be uncacheable, got %q", rec.Header().Get("Cache-Control"))
	}

	rec = serve(srv, withCookie(formRequest("/admin/logout", url.Values{}), cookie))
	if rec.Code != stdhttp.StatusSeeOther || rec.Header().Get("Location") != auth.LoginPath {
		t.Fatalf("expected logout redirect, got %d", rec.Code)
	}
	cleared := sessionCookieFrom(rec)
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("expected session cookie to be expired, got %+v", cleared)
	}

	rec = serve(srv, withCookie(httptest.NewRequest("GET", "/admin/dashboard", nil), cookie))
	if rec.Code != stdhttp.StatusFound {
		t.Fatalf("expected dashboard to require a new sign-in, got %d", rec.Code)
	}
}

func TestAdminLoginRejectsInvalidCredentials(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: newMemStore()})
	rec := serve(srv, formRequest("/admin/login", url.Values{
		"email":    {testAdminEmail},
		"password": {"wrong"},
	}))

	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if !contains(rec.Body.String(), "Invalid login credentials") {
		t.Fatalf("expected credentials error, got %q", rec.Body.String())
	}
	if sessionCookieFrom(rec) != nil {
		t.Fatal("expected no session cookie on failure")
	}
}

func TestAdminLoginWithNullBackendShowsGenericError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: backend.Null{}, authenticator: backend.Null{}})
	rec := serve(srv, formRequest("/admin/login", url.Values{
		"email":    {testAdminEmail},
		"password": {"secret"},
	}))

	if rec.Code != stdhttp.StatusUnauthorized || !contains(rec.Body.String(), MessageLoginFailed) {
		t.Fatalf("expected generic login error, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAdminSkillRequiresSavedProfile(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	srv := newTestServer(t, serverDeps{store: store})
	cookie := signIn(t, srv)

	rec := serve(srv, withCookie(formRequest("/admin/skills", url.Values{
		"skill_name":  {"Go"},
		"skill_level": {"80"},
	}), cookie))
	if rec.Code != stdhttp.StatusSeeOther || rec.Header().Get("Location") != "/admin/dashboard?tab=profile" {
		t.Fatalf("expected redirect to profile tab, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if store.calls("InsertSkill") != 0 {
		t.Fatal("expected no remote call without a saved profile")
	}

	rec = serve(srv, withCookie(httptest.NewRequest("GET", "/admin/dashboard", nil), cookie))
	if !contains(rec.Body.String(), admin.MessageSkillRequired) {
		t.Fatalf("expected skill guard banner, got %q", rec.Body.String())
	}
}

func TestAdminProfileSaveThenSkill(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	srv := newTestServer(t, serverDeps{store: store})
	cookie := signIn(t, srv)

	serve(srv, withCookie(formRequest("/admin/profile", url.Values{
		"name":    {"Ada Lovelace"},
		"tagline": {"Analyst"},
	}), cookie))
	if store.calls("InsertProfile") != 1 {
		t.Fatalf("expected first save to insert, got %d inserts", store.calls("InsertProfile"))
	}

	rec := serve(srv, withCookie(httptest.NewRequest("GET", "/admin/dashboard", nil), cookie))
	if !contains(rec.Body.String(), admin.MessageProfileSaved) {
		t.Fatalf("expected success banner, got %q", rec.Body.String())
	}

	serve(srv, withCookie(formRequest("/admin/profile", url.Values{"name": {"Ada"}}), cookie))
	if store.calls("InsertProfile") != 1 || store.calls("UpdateProfile") != 1 {
		t.Fatalf("expected second save to update, got %d inserts and %d updates", store.calls("InsertProfile"), store.calls("UpdateProfile"))
	}

	serve(srv, withCookie(formRequest("/admin/skills", url.Values{
		"skill_name":  {"Go"},
		"skill_level": {"140"},
	}), cookie))
	skills, _ := store.ListSkills(context.Background())
	if len(skills) != 1 || skills[0].Level != admin.MaxSkillLevel || skills[0].ProfileID == "" {
		t.Fatalf("expected clamped skill for the saved profile, got %+v", skills)
	}
}

func TestAdminAddProjectRequiresFields(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	srv := newTestServer(t, serverDeps{store: store})
	cookie := signIn(t, srv)

	serve(srv, withCookie(formRequest("/admin/projects/new", url.Values{}), cookie))
	rec := serve(srv, withCookie(formRequest("/admin/projects", url.Values{
		"title": {"Only a title"},
	}), cookie))
	if rec.Header().Get("Location") != "/admin/dashboard?tab=projects" {
		t.Fatalf("expected redirect to projects tab, got %q", rec.Header().Get("Location"))
	}
	if store.calls("InsertProject") != 0 {
		t.Fatal("expected no insert for an incomplete project")
	}

	rec = serve(srv, withCookie(httptest.NewRequest("GET", "/admin/dashboard?tab=projects", nil), cookie))
	if !contains(rec.Body.String(), admin.MessageRequiredFields) {
		t.Fatalf("expected required fields banner, got %q", rec.Body.String())
	}
}

func TestAdminAddProjectPersistsParsedLists(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	srv := newTestServer(t, serverDeps{store: store})
	cookie := signIn(t, srv)

	serve(srv, withCookie(formRequest("/admin/projects/new", url.Values{}), cookie))
	serve(srv, withCookie(formRequest("/admin/projects", url.Values{
		"title":        {"CLI"},
		"description":  {"A command line tool"},
		"image":        {"cover.png"},
		"images":       {""},
		"technologies": {"Go, Cobra ,"},
		"category":     {"Tools"},
	}), cookie))

	projects, _ := store.ListProjects(context.Background())
	if len(projects) != 1 {
		t.Fatalf("expected one project, got %+v", projects)
	}
	got := projects[0]
	if len(got.Images) != 1 || got.Images[0] != "cover.png" {
		t.Fatalf("expected images to default to the cover, got %v", got.Images)
	}
	if strings.Join(got.Technologies, "|") != "Go|Cobra|" {
		t.Fatalf("expected split and trimmed technologies, got %q", got.Technologies)
	}

	rec := serve(srv, withCookie(httptest.NewRequest("GET", "/admin/dashboard?tab=projects", nil), cookie))
	if !contains(rec.Body.String(), "A command line tool") {
		t.Fatalf("expected new project in list, got %q", rec.Body.String())
	}
}

func TestAdminDeleteProjectNeedsConfirmation(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.projects = sampleProjects()
	srv := newTestServer(t, serverDeps{store: store})
	cookie := signIn(t, srv)

	serve(srv, withCookie(formRequest("/admin/projects/3/delete", url.Values{}), cookie))
	if store.calls("DeleteProject") != 0 {
		t.Fatal("expected delete request to wait for confirmation")
	}

	rec := serve(srv, withCookie(httptest.NewRequest("GET", "/admin/dashboard?tab=projects", nil), cookie))
	if !contains(rec.Body.String(), "Are you sure you want to delete this project?") {
		t.Fatalf("expected confirmation prompt, got %q", rec.Body.String())
	}

	serve(srv, withCookie(formRequest("/admin/projects/delete/confirm", url.Values{}), cookie))
	projects, _ := store.ListProjects(context.Background())
	if store.calls("DeleteProject") != 1 || len(projects) != 4 {
		t.Fatalf("expected project to be deleted, got %d calls and %d projects", store.calls("DeleteProject"), len(projects))
	}
}

func TestAdminProjectCommandsAcceptEmptyBodies(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.projects = sampleProjects()
	srv := newTestServer(t, serverDeps{store: store})
	cookie := signIn(t, srv)

	post := func(path string) {
		t.Helper()
		req := httptest.NewRequest("POST", path, nil)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(srv, withCookie(req, cookie))
		if rec.Code != stdhttp.StatusSeeOther {
			t.Fatalf("expected %s to redirect, got %d %q", path, rec.Code, rec.Body.String())
		}
	}
	projects := func() admin.ProjectView {
		return srv.workspaces.Workspace(cookie.Value).Projects.View()
	}

	post("/admin/projects/new")
	if !projects().Adding {
		t.Fatal("expected the draft form to open")
	}

	post("/admin/projects")
	if projects().Error != admin.MessageRequiredFields {
		t.Fatalf("expected required fields error, got %q", projects().Error)
	}
	post("/admin/projects/dismiss")
	if projects().Error != "" {
		t.Fatalf("expected error to be dismissed, got %q", projects().Error)
	}

	post("/admin/projects/cancel")
	if projects().Adding {
		t.Fatal("expected the draft form to close")
	}

	post("/admin/projects/2/delete")
	post("/admin/projects/delete/cancel")
	if view := projects(); view.PendingDelete != "" || store.calls("DeleteProject") != 0 {
		t.Fatalf("expected deletion to be cancelled, got %+v", view)
	}

	post("/admin/projects/2/edit")
	post("/admin/projects/edit/cancel")
	if projects().Editing != nil {
		t.Fatal("expected editing to be cancelled")
	}

	post("/admin/projects/2/delete")
	post("/admin/projects/delete/confirm")
	if view := projects(); len(view.Projects) != 4 || store.calls("DeleteProject") != 1 {
		t.Fatalf("expected project 2 to be deleted, got %d projects", len(view.Projects))
	}
}

func TestAdminProjectFieldParsesLists(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: newMemStore()})
	cookie := signIn(t, srv)

	req := httptest.NewRequest("POST", "/admin/projects/field", strings.NewReader(`{"mode":"draft","field":"technologies","value":"Go, , Redis"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(srv, withCookie(req, cookie))
	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d %q", rec.Code, rec.Body.String())
	}

	var body struct {
		Field  string   `json:"field"`
		Values []string `json:"values"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Field != admin.FieldTechnologies || strings.Join(body.Values, "|") != "Go||Redis" {
		t.Fatalf("unexpected field response %+v", body)
	}

	req = httptest.NewRequest("POST", "/admin/projects/field", strings.NewReader(`{"mode":"draft","field":"owner","value":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = serve(srv, withCookie(req, cookie))
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected unknown field to be rejected, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown project field owner") {
		t.Fatalf("expected the field name in the error, got %s", rec.Body.String())
	}
}

func TestRateLimitBlocksFormFloods(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: backend.Null{}, requests: 1})
	form := url.Values{"name": {"A"}}

	first := serve(srv, formRequest("/contact", form))
	if first.Header().Get("X-RateLimit-Limit") != "1" {
		t.Fatalf("expected rate limit headers, got %v", first.Header())
	}

	second := serve(srv, formRequest("/contact", form))
	if second.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	if rec := serve(srv, httptest.NewRequest("GET", "/", nil)); rec.Code != 200 {
		t.Fatalf("expected page reads to stay unlimited, got %d", rec.Code)
	}
}

func TestStaticAssetsAreServed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, serverDeps{store: backend.Null{}})

	rec := serve(srv, httptest.NewRequest("GET", "/static/site.css", nil))
	if rec.Code != 200 || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css") {
		t.Fatalf("expected stylesheet, got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = serve(srv, httptest.NewRequest("GET", "/static/admin.js", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), `addEventListener("input"`) {
		t.Fatalf("expected field sync on every keystroke, got %d", rec.Code)
	}

	rec = serve(srv, httptest.NewRequest("GET", "/favicon.ico", nil))
	if rec.Code != 200 || rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("expected favicon, got %d", rec.Code)
	}
}

func TestNewServerRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Options{}); err == nil {
		t.Fatal("expected missing loader to fail")
	}
}

type serverDeps struct {
	store         portfolio.Store
	authenticator auth.Authenticator
	health        HealthChecker
	origins       []string
	requests      int64
}

func newTestServer(t *testing.T, deps serverDeps) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	loader, err := portfolio.NewLoader(deps.store, logger)
	if err != nil {
		t.Fatalf("NewLoader returned error: %v", err)
	}

	authenticator := deps.authenticator
	if authenticator == nil {
		authenticator = &stubAuthenticator{email: testAdminEmail, password: "secret"}
	}
	sessions, err := auth.NewManager(auth.NewMemoryStore(time.Hour), authenticator, logger)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	workspaces, err := admin.NewRegistry(deps.store, admin.RegistryOptions{Logger: logger})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	requests := deps.requests
	if requests == 0 {
		requests = 1000
	}

	srv, err := NewServer(Options{
		Loader:         loader,
		Sessions:       sessions,
		Workspaces:     workspaces,
		Contact:        site.NewContact(logger),
		Health:         deps.health,
		Logger:         logger,
		BackendKind:    "test",
		RateLimiter:    RateLimiterSettings{Requests: requests, Period: time.Minute},
		AllowedOrigins: deps.origins,
		Now:            func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewServer returned error: %v", err)
	}

	return srv
}

func serve(srv *Server, req *stdhttp.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func formRequest(path string, values url.Values) *stdhttp.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withCookie(req *stdhttp.Request, cookie *stdhttp.Cookie) *stdhttp.Request {
	req.AddCookie(&stdhttp.Cookie{Name: cookie.Name, Value: cookie.Value})
	return req
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *stdhttp.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

func signIn(t *testing.T, srv *Server) *stdhttp.Cookie {
	t.Helper()

	rec := serve(srv, formRequest("/admin/login", url.Values{
		"email":    {testAdminEmail},
		"password": {"secret"},
	}))
	if rec.Code != stdhttp.StatusSeeOther || rec.Header().Get("Location") != auth.DashboardPath {
		t.Fatalf("expected sign-in redirect, got %d %q", rec.Code, rec.Body.String())
	}

	cookie := sessionCookieFrom(rec)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookie)
	}
	return cookie
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

func findByID(node *html.Node, id string) *html.Node {
	if node == nil {
		return nil
	}
	if node.Type == html.ElementNode {
		for _, attr := range node.Attr {
			if attr.Key == "id" && attr.Val == id {
				return node
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func textOf(node *html.Node) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return b.String()
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

func sampleProjects() []portfolio.Project {
	return []portfolio.Project{
		{ID: "1", Title: "Portfolio Website", Description: "Personal site", Image: "site.png", Category: "Web Development"},
		{ID: "2", Title: "Fitness App", Description: "Workout tracker", Image: "a.png", Images: []string{"a.png", "b.png", "c.png"}, Category: "Mobile Development"},
		{ID: "3", Title: "E-commerce Dashboard", Description: "Sales analytics", Image: "shop.png", Category: "Web Development"},
		{ID: "4", Title: "Travel Companion", Description: "Trip planner", Image: "trip.png", Category: "Mobile Development"},
		{ID: "5", Title: "AI Image Generator", Description: "Diffusion demo", Image: "ai.png", Category: "AI & Machine Learning"},
	}
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type stubAuthenticator struct {
	email    string
	password string
}

func (s *stubAuthenticator) SignInWithPassword(_ context.Context, email, password string) (*auth.Session, error) {
	if email != s.email || password != s.password {
		return nil, eris.Wrap(auth.ErrInvalidCredentials, "stub sign-in")
	}
	return &auth.Session{
		AccessToken: "token-" + email,
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        auth.User{ID: "admin-1", Email: email},
	}, nil
}

func (s *stubAuthenticator) SignOut(context.Context, *auth.Session) error { return nil }

func (s *stubAuthenticator) Refresh(context.Context, string) (*auth.Session, error) {
	return nil, eris.New("refresh not supported")
}

// memStore is an in-memory portfolio.Store that counts calls per method.
type memStore struct {
	mu       sync.Mutex
	seq      int
	counts   map[string]int
	listErr  error
	profile  *portfolio.Profile
	skills   []portfolio.Skill
	journey  []portfolio.JourneyEntry
	projects []portfolio.Project
}

func newMemStore() *memStore {
	return &memStore{counts: map[string]int{}}
}

func (m *memStore) record(method string) {
	m.counts[method]++
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[method]
}

func (m *memStore) GetProfile(context.Context) (*portfolio.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetProfile")
	if m.profile == nil {
		return nil, eris.Wrap(portfolio.ErrNotFound, "profile")
	}
	out := *m.profile
	return &out, nil
}

func (m *memStore) InsertProfile(_ context.Context, profile portfolio.Profile) (*portfolio.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertProfile")
	profile.ID = m.nextID("profile")
	m.profile = &profile
	out := profile
	return &out, nil
}

func (m *memStore) UpdateProfile(_ context.Context, profile portfolio.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateProfile")
	m.profile = &profile
	return nil
}

func (m *memStore) ListSkills(context.Context) ([]portfolio.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListSkills")
	return append([]portfolio.Skill{}, m.skills...), nil
}

func (m *memStore) InsertSkill(_ context.Context, skill portfolio.Skill) ([]portfolio.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertSkill")
	skill.ID = m.nextID("skill")
	m.skills = append(m.skills, skill)
	return []portfolio.Skill{skill}, nil
}

func (m *memStore) DeleteSkill(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteSkill")
	m.skills = removeByID(m.skills, id)
	return nil
}

func (m *memStore) ListJourney(context.Context) ([]portfolio.JourneyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListJourney")
	return append([]portfolio.JourneyEntry{}, m.journey...), nil
}

func (m *memStore) InsertJourneyEntry(_ context.Context, entry portfolio.JourneyEntry) ([]portfolio.JourneyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertJourneyEntry")
	entry.ID = m.nextID("journey")
	m.journey = append(m.journey, entry)
	return []portfolio.JourneyEntry{entry}, nil
}

func (m *memStore) DeleteJourneyEntry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteJourneyEntry")
	m.journey = removeByID(m.journey, id)
	return nil
}

func (m *memStore) ListProjects(context.Context) ([]portfolio.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListProjects")
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]portfolio.Project{}, m.projects...), nil
}

func (m *memStore) InsertProject(_ context.Context, project portfolio.Project) ([]portfolio.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("InsertProject")
	project.ID = m.nextID("project")
	m.projects = append([]portfolio.Project{project}, m.projects...)
	return []portfolio.Project{project}, nil
}

func (m *memStore) UpdateProject(_ context.Context, project portfolio.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateProject")
	for i := range m.projects {
		if m.projects[i].ID == project.ID {
			m.projects[i] = project
			return nil
		}
	}
	return eris.Wrap(portfolio.ErrNotFound, "project")
}

func (m *memStore) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteProject")
	m.projects = removeByID(m.projects, id)
	return nil
}

func removeByID[T portfolio.Keyed](items []T, id string) []T {
	out := items[:0:0]
	for _, item := range items {
		if item.Key() != id {
			out = append(out, item)
		}
	}
	return out
}

var _ portfolio.Store = (*memStore)(nil)
var _ auth.Authenticator = (*stubAuthenticator)(nil)
