package http

import (
	"context"
	stdhttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"folio/app/internal/admin"
	"folio/app/internal/auth"
	"folio/app/internal/http/templates"
	"folio/app/internal/portfolio"
)

const (
	MessageLoginFailed   = "An error occurred during login"
	MessageLoginRequired = "Please enter your email and password"

	modeEdit        = "edit"
	formContentType = "application/x-www-form-urlencoded"
)

type adminInput struct {
	SessionID string `cookie:"folio_session"`
}

type dashboardInput struct {
	SessionID string `cookie:"folio_session"`
	Tab       string `query:"tab"`
}

type adminFormInput struct {
	SessionID string `cookie:"folio_session"`
	RawBody   []byte `contentType:"application/x-www-form-urlencoded" required:"false"`
}

type adminItemInput struct {
	SessionID string `cookie:"folio_session"`
	ID        string `path:"id"`
}

type projectFieldInput struct {
	SessionID string `cookie:"folio_session"`
	Body      struct {
		Mode  string `json:"mode" enum:"draft,edit"`
		Field string `json:"field"`
		Value string `json:"value,omitempty"`
	}
}

type projectFieldResponse struct {
	Body struct {
		Field  string   `json:"field"`
		Value  string   `json:"value,omitempty"`
		Values []string `json:"values,omitempty"`
	}
}

// adminAction mutates a signed-in admin's workspace from a submitted form.
type adminAction func(ctx context.Context, ws *admin.Workspace, form url.Values) error

// adminCommand mutates a signed-in admin's workspace without reading any form fields.
type adminCommand func(ctx context.Context, ws *admin.Workspace) error

// adminItemAction mutates a signed-in admin's workspace for one record id.
type adminItemAction func(ctx context.Context, ws *admin.Workspace, id string) error

func (s *Server) registerAdminRoutes() {
	huma.Get(s.api, auth.LoginPath, s.loginPageHandler, htmlOperation("Admin login", stdhttp.StatusFound))
	huma.Get(s.api, auth.DashboardPath, s.dashboardHandler, htmlOperation("Admin dashboard", stdhttp.StatusFound))

	huma.Post(s.api, "/admin/login", s.loginHandler, htmlOperation(
		"Sign in",
		stdhttp.StatusSeeOther,
		stdhttp.StatusBadRequest,
		stdhttp.StatusUnauthorized,
		stdhttp.StatusTooManyRequests,
	))
	huma.Post(s.api, "/admin/logout", s.logoutHandler, htmlOperation("Sign out", stdhttp.StatusSeeOther))

	s.registerAdminAction("/admin/profile", "Save profile", templates.TabProfile, saveProfile)
	s.registerAdminAction("/admin/profile/dismiss", "Dismiss profile banner", templates.TabProfile, dismissProfileBanner)
	s.registerAdminAction("/admin/skills", "Add skill", templates.TabProfile, addSkill)
	s.registerAdminItemAction("/admin/skills/{id}/delete", "Delete skill", templates.TabProfile, deleteSkill)
	s.registerAdminAction("/admin/journey", "Add journey item", templates.TabProfile, addJourneyEntry)
	s.registerAdminItemAction("/admin/journey/{id}/delete", "Delete journey item", templates.TabProfile, deleteJourneyEntry)

	s.registerAdminAction("/admin/projects", "Add project", templates.TabProjects, addProject)
	s.registerAdminCommand("/admin/projects/new", "Start adding project", templates.TabProjects, startAdding)
	s.registerAdminCommand("/admin/projects/cancel", "Cancel adding project", templates.TabProjects, cancelAdding)
	s.registerAdminAction("/admin/projects/update", "Update project", templates.TabProjects, updateProject)
	s.registerAdminCommand("/admin/projects/edit/cancel", "Cancel editing project", templates.TabProjects, cancelEditing)
	s.registerAdminCommand("/admin/projects/delete/confirm", "Confirm project deletion", templates.TabProjects, confirmDelete)
	s.registerAdminCommand("/admin/projects/delete/cancel", "Cancel project deletion", templates.TabProjects, cancelDelete)
	s.registerAdminCommand("/admin/projects/dismiss", "Dismiss project error", templates.TabProjects, dismissProjectError)
	s.registerAdminItemAction("/admin/projects/{id}/edit", "Edit project", templates.TabProjects, startEditing)
	s.registerAdminItemAction("/admin/projects/{id}/delete", "Request project deletion", templates.TabProjects, requestDelete)

	huma.Post(s.api, "/admin/projects/field", s.projectFieldHandler, func(op *huma.Operation) {
		op.Summary = "Update a project form field"
	})

	s.mux.HandleFunc("GET /admin/", s.adminFallbackHandler)
}

func (s *Server) registerAdminAction(path, summary, tab string, action adminAction) {
	huma.Post(s.api, path, func(ctx context.Context, input *adminFormInput) (*htmlResponse, error) {
		form, err := url.ParseQuery(string(input.RawBody))
		if err != nil {
			s.recordError(ctx, eris.Wrap(err, "parsing admin form"), summary+" failed", logrus.Fields{"path": path})
			return s.renderErrorResponse(ctx, stdhttp.StatusBadRequest, "We couldn't read the submitted form.")
		}
		return s.runAdminAction(ctx, input.SessionID, summary, tab, func(ctx context.Context, ws *admin.Workspace) error {
			return action(ctx, ws, form)
		})
	}, htmlOperation(summary, stdhttp.StatusSeeOther, stdhttp.StatusBadRequest, stdhttp.StatusTooManyRequests), optionalFormBody)
}

// optionalFormBody lets a form action run when the browser submits no fields.
func optionalFormBody(op *huma.Operation) {
	op.RequestBody = &huma.RequestBody{
		Required: false,
		Content: map[string]*huma.MediaType{
			formContentType: {Schema: &huma.Schema{Type: "string"}},
		},
	}
}

func (s *Server) registerAdminCommand(path, summary, tab string, command adminCommand) {
	huma.Post(s.api, path, func(ctx context.Context, input *adminInput) (*htmlResponse, error) {
		return s.runAdminAction(ctx, input.SessionID, summary, tab, command)
	}, htmlOperation(summary, stdhttp.StatusSeeOther, stdhttp.StatusTooManyRequests))
}

func (s *Server) registerAdminItemAction(path, summary, tab string, action adminItemAction) {
	huma.Post(s.api, path, func(ctx context.Context, input *adminItemInput) (*htmlResponse, error) {
		id := strings.TrimSpace(input.ID)
		return s.runAdminAction(ctx, input.SessionID, summary, tab, func(ctx context.Context, ws *admin.Workspace) error {
			return action(ctx, ws, id)
		})
	}, htmlOperation(summary, stdhttp.StatusSeeOther, stdhttp.StatusTooManyRequests))
}

// runAdminAction applies fn to the workspace of an authenticated session and redirects back
// to the dashboard tab. Failures are shown through the editor banners.
func (s *Server) runAdminAction(ctx context.Context, sessionID, summary, tab string, fn func(context.Context, *admin.Workspace) error) (*htmlResponse, error) {
	sid := strings.TrimSpace(sessionID)
	gate := s.openGate(ctx, sid)
	defer gate.Close()

	if gate.State() != auth.StateAuthenticated {
		return seeOther(auth.LoginPath), nil
	}

	ctx = auth.ContextWithSession(ctx, gate.Session())
	ws := s.workspaces.Workspace(sid)
	if err := ws.EnsureLoaded(ctx); err != nil {
		s.recordError(ctx, err, "loading admin workspace", nil)
	}

	if err := fn(ctx, ws); err != nil && !eris.Is(err, admin.ErrValidation) {
		s.recordError(ctx, err, strings.ToLower(summary)+" failed", logrus.Fields{"tab": tab})
	}

	return seeOther(dashboardURL(tab)), nil
}

func (s *Server) loginPageHandler(ctx context.Context, input *adminInput) (*htmlResponse, error) {
	gate := s.openGate(ctx, strings.TrimSpace(input.SessionID))
	defer gate.Close()

	decision := gate.Route(auth.LoginPath)
	switch {
	case decision.Redirect != "":
		return redirectTo(stdhttp.StatusFound, decision.Redirect), nil
	case decision.View == auth.ViewLoading:
		return s.renderPage(ctx, stdhttp.StatusOK, templates.LoadingPage(templates.LoadingPageData{Title: pageTitle("Loading")}), "rendering loading page")
	default:
		return s.renderLogin(ctx, stdhttp.StatusOK, "", "")
	}
}

func (s *Server) dashboardHandler(ctx context.Context, input *dashboardInput) (*htmlResponse, error) {
	sid := strings.TrimSpace(input.SessionID)
	gate := s.openGate(ctx, sid)
	defer gate.Close()

	decision := gate.Route(auth.DashboardPath)
	if decision.Redirect != "" {
		resp := redirectTo(stdhttp.StatusFound, decision.Redirect)
		if sid != "" {
			resp.SetCookie = s.expiredSessionCookie()
		}
		return resp, nil
	}
	if decision.View == auth.ViewLoading {
		return s.renderPage(ctx, stdhttp.StatusOK, templates.LoadingPage(templates.LoadingPageData{Title: pageTitle("Loading")}), "rendering loading page")
	}

	session := gate.Session()
	ctx = auth.ContextWithSession(ctx, session)
	ws := s.workspaces.Workspace(sid)
	if err := ws.EnsureLoaded(ctx); err != nil {
		s.recordError(ctx, err, "loading admin workspace", nil)
	}

	tab := input.Tab
	if tab != templates.TabProjects {
		tab = templates.TabProfile
	}

	resp, err := s.renderPage(ctx, stdhttp.StatusOK, templates.DashboardPage(templates.DashboardPageData{
		Title:    pageTitle("Admin Dashboard"),
		Email:    session.User.Email,
		Tab:      tab,
		Profile:  ws.Profile.View(),
		Projects: ws.Projects.View(),
	}), "rendering admin dashboard")
	if resp != nil {
		resp.CacheControl = "no-store"
	}
	return resp, err
}

func (s *Server) loginHandler(ctx context.Context, input *adminFormInput) (*htmlResponse, error) {
	form, err := url.ParseQuery(string(input.RawBody))
	if err != nil {
		return s.renderLogin(ctx, stdhttp.StatusBadRequest, "", MessageLoginRequired)
	}

	email := strings.TrimSpace(form.Get("email"))
	password := form.Get("password")
	if email == "" || password == "" {
		return s.renderLogin(ctx, stdhttp.StatusBadRequest, email, MessageLoginRequired)
	}

	// A fresh id on every sign-in so a pre-login cookie is never promoted.
	sid := auth.NewSessionID()
	if _, err := s.sessions.Provider(sid).SignInWithPassword(ctx, email, password); err != nil {
		if eris.Is(err, auth.ErrInvalidCredentials) {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{
					"email":      email,
					"request_id": RequestIDFromContext(ctx),
				}).Warn("admin sign-in rejected")
			}
		} else {
			s.recordError(ctx, err, "admin sign-in failed", logrus.Fields{"email": email})
		}
		return s.renderLogin(ctx, stdhttp.StatusUnauthorized, email, loginErrorMessage(err))
	}

	if previous := strings.TrimSpace(input.SessionID); previous != "" {
		s.workspaces.Forget(previous)
	}

	resp := seeOther(auth.DashboardPath)
	resp.SetCookie = s.sessionCookie(sid)
	return resp, nil
}

func (s *Server) logoutHandler(ctx context.Context, input *adminInput) (*htmlResponse, error) {
	sid := strings.TrimSpace(input.SessionID)
	if sid != "" {
		if err := s.sessions.Provider(sid).SignOut(ctx); err != nil {
			s.recordError(ctx, err, "admin sign-out failed", nil)
		}
		s.workspaces.Forget(sid)
	}

	resp := seeOther(auth.LoginPath)
	resp.SetCookie = s.expiredSessionCookie()
	return resp, nil
}

func (s *Server) projectFieldHandler(ctx context.Context, input *projectFieldInput) (*projectFieldResponse, error) {
	sid := strings.TrimSpace(input.SessionID)
	gate := s.openGate(ctx, sid)
	defer gate.Close()

	if gate.State() != auth.StateAuthenticated {
		return nil, huma.Error401Unauthorized("sign in to edit projects")
	}

	ws := s.workspaces.Workspace(sid)
	field := strings.TrimSpace(input.Body.Field)

	var err error
	if input.Body.Mode == modeEdit {
		err = ws.Projects.SetEditField(field, input.Body.Value)
	} else {
		err = ws.Projects.SetDraftField(field, input.Body.Value)
	}
	switch {
	case eris.Is(err, admin.ErrValidation):
		return nil, huma.Error400BadRequest(admin.ValidationMessage(err))
	case err != nil:
		return nil, huma.Error409Conflict(err.Error())
	}

	view := ws.Projects.View()
	project := view.Draft
	if input.Body.Mode == modeEdit && view.Editing != nil {
		project = *view.Editing
	}

	resp := &projectFieldResponse{}
	resp.Body.Field = field
	resp.Body.Value, resp.Body.Values = projectFieldValue(project, field)
	return resp, nil
}

// adminFallbackHandler redirects unknown admin paths according to the session state.
func (s *Server) adminFallbackHandler(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	gate := s.openGate(r.Context(), sessionIDFromRequest(r))
	defer gate.Close()

	decision := gate.Route(r.URL.Path)
	target := decision.Redirect
	if target == "" {
		target = auth.LoginPath
		if decision.View == auth.ViewDashboard {
			target = auth.DashboardPath
		}
	}
	stdhttp.Redirect(w, r, target, stdhttp.StatusFound)
}

func (s *Server) renderLogin(ctx context.Context, status int, email, message string) (*htmlResponse, error) {
	return s.renderPage(ctx, status, templates.LoginPage(templates.LoginPageData{
		Title: pageTitle("Admin Login"),
		Email: email,
		Error: message,
	}), "rendering login page")
}

func loginErrorMessage(err error) string {
	if eris.Is(err, auth.ErrInvalidCredentials) {
		return auth.ErrInvalidCredentials.Error()
	}
	return MessageLoginFailed
}

func dashboardURL(tab string) string {
	return auth.DashboardPath + "?tab=" + url.QueryEscape(tab)
}

func pageTitle(name string) string {
	return name + " • " + templates.SiteTitle
}

func saveProfile(ctx context.Context, ws *admin.Workspace, form url.Values) error {
	ws.Profile.UpdateProfile(admin.ProfileForm{
		Name:         form.Get("name"),
		Tagline:      form.Get("tagline"),
		Description:  form.Get("description"),
		ProfileImage: form.Get("profile_image"),
		ResumeURL:    form.Get("resume_url"),
		GitHub:       form.Get("github"),
		LinkedIn:     form.Get("linkedin"),
		Twitter:      form.Get("twitter"),
	})
	return ws.Profile.SaveProfile(ctx)
}

func dismissProfileBanner(_ context.Context, ws *admin.Workspace, form url.Values) error {
	if form.Get("kind") == "success" {
		ws.Profile.DismissSuccess()
	} else {
		ws.Profile.DismissError()
	}
	return nil
}

func addSkill(ctx context.Context, ws *admin.Workspace, form url.Values) error {
	level, err := strconv.Atoi(strings.TrimSpace(form.Get("skill_level")))
	if err != nil {
		level = admin.DefaultSkillLevel
	}
	return ws.Profile.AddSkill(ctx, form.Get("skill_name"), level)
}

func deleteSkill(ctx context.Context, ws *admin.Workspace, id string) error {
	return ws.Profile.DeleteSkill(ctx, id)
}

func addJourneyEntry(ctx context.Context, ws *admin.Workspace, form url.Values) error {
	return ws.Profile.AddJourneyEntry(ctx, form.Get("journey_description"))
}

func deleteJourneyEntry(ctx context.Context, ws *admin.Workspace, id string) error {
	return ws.Profile.DeleteJourneyEntry(ctx, id)
}

func startAdding(_ context.Context, ws *admin.Workspace) error {
	ws.Projects.StartAdding()
	return nil
}

func cancelAdding(_ context.Context, ws *admin.Workspace) error {
	ws.Projects.CancelAdding()
	return nil
}

func addProject(ctx context.Context, ws *admin.Workspace, form url.Values) error {
	if err := applyProjectFields(form, ws.Projects.SetDraftField); err != nil {
		return err
	}
	return ws.Projects.AddProject(ctx)
}

func startEditing(_ context.Context, ws *admin.Workspace, id string) error {
	return ws.Projects.StartEditing(id)
}

func cancelEditing(_ context.Context, ws *admin.Workspace) error {
	ws.Projects.CancelEditing()
	return nil
}

func updateProject(ctx context.Context, ws *admin.Workspace, form url.Values) error {
	if err := applyProjectFields(form, ws.Projects.SetEditField); err != nil {
		return err
	}
	return ws.Projects.UpdateProject(ctx)
}

func requestDelete(_ context.Context, ws *admin.Workspace, id string) error {
	ws.Projects.RequestDelete(id)
	return nil
}

func confirmDelete(ctx context.Context, ws *admin.Workspace) error {
	return ws.Projects.ConfirmDelete(ctx)
}

func cancelDelete(_ context.Context, ws *admin.Workspace) error {
	ws.Projects.CancelDelete()
	return nil
}

func dismissProjectError(_ context.Context, ws *admin.Workspace) error {
	ws.Projects.DismissError()
	return nil
}

// applyProjectFields copies the submitted project fields through set. Absent fields are left alone.
func applyProjectFields(form url.Values, set func(field, value string) error) error {
	for _, field := range admin.ProjectFields {
		if _, ok := form[field]; !ok {
			continue
		}
		if err := set(field, form.Get(field)); err != nil {
			return err
		}
	}
	return nil
}

func projectFieldValue(project portfolio.Project, field string) (string, []string) {
	switch field {
	case admin.FieldTitle:
		return project.Title, nil
	case admin.FieldDescription:
		return project.Description, nil
	case admin.FieldLongDescription:
		return project.LongDescription, nil
	case admin.FieldImage:
		return project.Image, nil
	case admin.FieldImages:
		return "", project.Images
	case admin.FieldTechnologies:
		return "", project.Technologies
	case admin.FieldCategory:
		return project.Category, nil
	case admin.FieldLiveURL:
		return project.LiveURL, nil
	case admin.FieldRepoURL:
		return project.RepoURL, nil
	default:
		return "", nil
	}
}
