package templates

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/rotisserie/eris"

	"folio/app/internal/portfolio"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"join": portfolio.JoinList,
	"add":  func(a, b int) int { return a + b },
	"projectForm": func(mode string, project portfolio.Project) ProjectForm {
		return ProjectForm{Mode: mode, Project: project}
	},
}

var pages = map[string]*template.Template{
	"home":      parse("home.html"),
	"error":     parse("error.html"),
	"login":     parse("login.html"),
	"loading":   parse("loading.html"),
	"dashboard": parse("dashboard.html"),
}

func parse(name string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).ParseFS(files, "layout.html", name))
}

// page adapts a parsed html/template page to the templ.Component contract.
func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		tmpl, ok := pages[name]
		if !ok {
			return eris.Errorf("unknown page template %q", name)
		}
		if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
			return eris.Wrapf(err, "executing %s template", name)
		}
		return nil
	})
}

// HomePage renders the public portfolio page.
func HomePage(data HomePageData) templ.Component { return page("home", data) }

// ErrorPage renders an error view.
func ErrorPage(data ErrorPageData) templ.Component { return page("error", data) }

// LoginPage renders the admin sign-in form.
func LoginPage(data LoginPageData) templ.Component { return page("login", data) }

// LoadingPage renders the session placeholder.
func LoadingPage(data LoadingPageData) templ.Component { return page("loading", data) }

// DashboardPage renders the admin dashboard.
func DashboardPage(data DashboardPageData) templ.Component { return page("dashboard", data) }
