package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/internal/usecase"
)

// PageTemplateName is the name gin renders the stats page under.
const PageTemplateName = "index"

//go:embed templates/index.html.tmpl
var pageTemplate string

var pageTmpl = template.Must(
	template.New(PageTemplateName).
		Funcs(template.FuncMap{
			"percent": func(ratio float64) template.CSS {
				return template.CSS(fmt.Sprintf("%.1f%%", ratio*100))
			},
		}).
		Parse(pageTemplate),
)

// PageTemplate returns the parsed page template, ready for gin's SetHTMLTemplate.
func PageTemplate() *template.Template {
	return pageTmpl
}

// PageView is everything the page template shows.
type PageView struct {
	Theme      Theme
	ThemeQuery string

	Username string
	Pending  bool
	Error    string

	HasReport   bool
	Profile     *domain.Profile
	DisplayName string
	ProfileURL  string
	From        string
	GeneratedAt string
	Cards       []Card
}

// NewPageView maps the tracker slot onto the page. themeQuery is echoed back into the form
// so a theme chosen by query string survives a submission.
func NewPageView(snap usecase.Snapshot, theme Theme, themeQuery string) PageView {
	view := PageView{
		Theme:      theme,
		ThemeQuery: themeQuery,
		Username:   snap.Username,
		Pending:    snap.Pending,
		Error:      snap.Error,
	}
	if r := snap.Report; r != nil && r.Stats != nil {
		view.HasReport = true
		view.Profile = r.Profile
		view.DisplayName = r.Username
		if name := r.Profile.DisplayName(); name != "" {
			view.DisplayName = name
		}
		if r.Profile != nil {
			view.ProfileURL = r.Profile.HTMLURL
		}
		view.From = r.From.Format("January 2, 2006")
		view.GeneratedAt = r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")
		view.Cards = Cards(r.Stats)
	}
	return view
}

// RenderPage writes the stats page.
func RenderPage(w io.Writer, view PageView) error {
	if err := pageTmpl.ExecuteTemplate(w, PageTemplateName, view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
