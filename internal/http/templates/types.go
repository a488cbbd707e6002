package templates

import (
	"folio/app/internal/admin"
	"folio/app/internal/portfolio"
	"folio/app/internal/site"
)

// SiteTitle is the document title suffix used by every page.
const SiteTitle = "Portfolio"

// HomePageData contains everything rendered on the public single page.
type HomePageData struct {
	Title   string
	Page    site.Page
	Visible []portfolio.Project
	More    []portfolio.Project
	Contact site.ContactResult
	// Detail is set when a project overlay is open.
	Detail *ProjectDetail
}

// ProjectDetail is the project overlay with its carousel position.
type ProjectDetail struct {
	Project  portfolio.Project
	Carousel site.Carousel
}

// ErrorPageData holds information for rendering an error view.
type ErrorPageData struct {
	Title       string
	StatusLabel string
	Message     string
}

// LoginPageData backs the admin sign-in form.
type LoginPageData struct {
	Title string
	Email string
	Error string
}

// LoadingPageData backs the placeholder shown while the session is being resolved.
type LoadingPageData struct {
	Title string
}

// Admin dashboard tabs.
const (
	TabProfile  = "profile"
	TabProjects = "projects"
)

// DashboardPageData backs the admin dashboard.
type DashboardPageData struct {
	Title    string
	Email    string
	Tab      string
	Profile  admin.ProfileView
	Projects admin.ProjectView
}

// ProjectForm is the shared field set of the add and edit project forms.
type ProjectForm struct {
	Mode    string
	Project portfolio.Project
}
