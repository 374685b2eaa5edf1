package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"vera/app/models"
)

//go:embed layout.html posts shared
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render.
const (
	PageIndex  = "index"
	PageShow   = "show"
	PageDelete = "delete"
)

var pageFiles = map[string][]string{
	PageIndex:  {"layout.html", "shared/stars.html", "posts/index.html"},
	PageShow:   {"layout.html", "shared/stars.html", "shared/comments.html", "posts/show.html"},
	PageDelete: {"layout.html", "posts/delete.html"},
}

// PostForm echoes a rejected post submission back into the form.
type PostForm struct {
	Title   string
	Author  string
	Type    string
	Content string
}

// CommentForm echoes a rejected comment back into the form.
type CommentForm struct {
	Author string
	Text   string
}

type IndexPage struct {
	Posts []*models.Post
	Form  PostForm
	Error string
}

type ShowPage struct {
	Post         *models.Post
	Form         CommentForm
	Rated        bool
	RatingError  string
	CommentError string
}

type DeletePage struct {
	Post *models.Post
}

// Renderer executes the board's HTML pages.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page. excerptLength bounds the post previews on the board page.
func New(excerptLength int) (*Renderer, error) {
	funcs := template.FuncMap{
		"plural":        Plural,
		"ratingSummary": RatingSummary,
		"postDate":      PostDate,
		"commentDate":   CommentDate,
		"starGlyph":     StarGlyph,
		"postTypes":     func() []string { return PostTypes },
		"stars":         func(p *models.Post) [models.StarSlots]models.Star { return p.Stars() },
		"average":       func(p *models.Post) string { return FormatAverage(p.AverageRating()) },
		"excerpt":       func(s string) string { return Truncate(s, excerptLength) },
		"ratingValues": func() []int {
			values := make([]int, 0, models.MaxRating)
			for v := models.MinRating; v <= models.MaxRating; v++ {
				values = append(values, v)
			}
			return values
		},
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for name, files := range pageFiles {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s page: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes a full page with the given status. The page is rendered before anything is
// written, so a template error leaves the response untouched.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
