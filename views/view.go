package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"

	users "github.com/AdamBeresnev/sinuca-bracket/internal/user"
	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"index": parse("index.html"),
	"admin": parse("admin.html"),
	"login": parse("login.html"),
}

func parse(page string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page))
}

func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "layout.html", data)
	})
}

func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// Index is the public bracket.
func Index(data BracketData) templ.Component {
	return page("index", data)
}

func AdminPage(data BracketData) templ.Component {
	return page("admin", data)
}

type LoginData struct {
	Providers  []string
	Passphrase bool
	Error      string

	// shared with the layout, always empty on the login page
	ID      string
	Version int64
	Admin   *users.Admin
}

func LoginPage(data LoginData) templ.Component {
	return page("login", data)
}
