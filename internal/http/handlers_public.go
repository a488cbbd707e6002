package http

import (
	"context"
	stdhttp "net/http"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"folio/app/internal/http/templates"
	"folio/app/internal/portfolio"
	"folio/app/internal/site"
)

type homeInput struct {
	Category string `query:"category"`
}

type projectInput struct {
	ID       string `path:"id"`
	Image    int    `query:"image"`
	Category string `query:"category"`
}

type formInput struct {
	RawBody []byte `contentType:"application/x-www-form-urlencoded"`
}

type portfolioResponse struct {
	Status int
	Body   portfolio.Snapshot
}

type healthResponse struct {
	Status int
	Body   struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
		Data    string `json:"data"`
	}
}

func (s *Server) registerPublicRoutes() {
	huma.Get(s.api, "/", s.homeHandler, htmlOperation("Portfolio home", stdhttp.StatusInternalServerError))

	huma.Post(s.api, "/contact", s.contactHandler, htmlOperation(
		"Submit contact form",
		stdhttp.StatusBadRequest,
		stdhttp.StatusUnprocessableEntity,
		stdhttp.StatusTooManyRequests,
	))

	huma.Get(s.api, "/projects/{id}", s.projectHandler, htmlOperation(
		"Open project details",
		stdhttp.StatusNotFound,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerAPIRoutes() {
	huma.Get(s.api, "/api/portfolio", s.portfolioHandler, func(op *huma.Operation) {
		op.Summary = "Portfolio snapshot"
	})
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) homeHandler(ctx context.Context, input *homeInput) (*htmlResponse, error) {
	snapshot := s.loader.Load(ctx)
	data := s.homeData(snapshot, input.Category)
	return s.renderPage(ctx, stdhttp.StatusOK, templates.HomePage(data), "rendering home page")
}

func (s *Server) contactHandler(ctx context.Context, input *formInput) (*htmlResponse, error) {
	values, err := url.ParseQuery(string(input.RawBody))
	if err != nil {
		s.recordError(ctx, eris.Wrap(err, "parsing contact form"), "invalid contact form", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusBadRequest, "We couldn't read your message. Please try again.")
	}

	result := s.contact.Submit(ctx, site.ContactForm{
		Name:    values.Get("name"),
		Email:   values.Get("email"),
		Subject: values.Get("subject"),
		Message: values.Get("message"),
	})

	status := stdhttp.StatusOK
	if len(result.Errors) > 0 {
		status = stdhttp.StatusUnprocessableEntity
	}

	data := s.homeData(s.loader.Load(ctx), "")
	data.Contact = result
	return s.renderPage(ctx, status, templates.HomePage(data), "rendering contact form")
}

func (s *Server) projectHandler(ctx context.Context, input *projectInput) (*htmlResponse, error) {
	id := strings.TrimSpace(input.ID)
	snapshot := s.loader.Load(ctx)
	if snapshot.Error != "" {
		s.recordError(ctx, eris.New(snapshot.Error), "loading project details", logrus.Fields{"project_id": id})
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't load this project right now.")
	}

	project, ok := site.FindProject(snapshot.Projects, id)
	if !ok {
		status, message := classifyError(eris.Wrapf(portfolio.ErrNotFound, "project %s", id))
		return s.renderErrorResponse(ctx, status, message)
	}

	data := s.homeData(snapshot, input.Category)
	data.Title = project.Title + " • " + data.Title
	data.Detail = &templates.ProjectDetail{
		Project:  project,
		Carousel: site.NewCarousel(project, input.Image),
	}
	return s.renderPage(ctx, stdhttp.StatusOK, templates.HomePage(data), "rendering project details")
}

func (s *Server) portfolioHandler(ctx context.Context, _ *struct{}) (*portfolioResponse, error) {
	snapshot := s.loader.Load(ctx)
	resp := &portfolioResponse{Status: stdhttp.StatusOK, Body: snapshot}
	if snapshot.Error != "" {
		resp.Status = stdhttp.StatusBadGateway
	}
	return resp, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{}
	resp.Body.Status = "ok"
	resp.Body.Backend = s.backendKind
	resp.Body.Data = "ok"

	if s.health == nil {
		resp.Body.Data = "unchecked"
	} else if err := s.health.Ping(ctx); err != nil {
		s.recordError(ctx, err, "pinging data backend", nil)
		resp.Body.Status = "degraded"
		resp.Body.Data = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}

func (s *Server) homeData(snapshot portfolio.Snapshot, category string) templates.HomePageData {
	page := site.BuildPage(snapshot, site.PageOptions{
		Category: category,
		Year:     s.now().Year(),
	})

	visible := page.Gallery.Projects
	var more []portfolio.Project
	if len(visible) > site.VisibleProjects {
		more = visible[site.VisibleProjects:]
		visible = visible[:site.VisibleProjects]
	}

	return templates.HomePageData{
		Title:   page.Owner + " • " + templates.SiteTitle,
		Page:    page,
		Visible: visible,
		More:    more,
	}
}
