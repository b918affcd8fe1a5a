// Package render turns an extracted recipe into display formats: an HTML
// card and the Markdown conversion of that card.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/use-agent/dinnermenu/models"
)

var cardTmpl = template.Must(template.New("card").Parse(`<article class="recipe-card">
<h1>{{.Title}}</h1>
{{- if .ImageURL}}
<p><img src="{{.ImageURL}}" alt="{{.Title}}"></p>
{{- end}}
{{- if .Facts}}
<p>{{range $i, $f := .Facts}}{{if $i}} · {{end}}{{$f}}{{end}}</p>
{{- end}}
<h2>Ingredients</h2>
<ul>
{{- range .Ingredients}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- if .Instructions}}
<h2>Instructions</h2>
<ol>
{{- range .Instructions}}
<li>{{.}}</li>
{{- end}}
</ol>
{{- end}}
<p>Source: <a href="{{.SourceURL}}">{{.SourceURL}}</a></p>
</article>
`))

type cardView struct {
	Title        string
	ImageURL     string
	Facts        []string
	Ingredients  []string
	Instructions []string
	SourceURL    string
}

// Renderer is goroutine-safe; one instance serves every request.
type Renderer struct {
	conv *converter.Converter
}

// New creates a Renderer with a Markdown converter using the base and
// commonmark plugins.
func New() *Renderer {
	return &Renderer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// HTML renders rec as a self-contained recipe card fragment.
func (r *Renderer) HTML(rec *models.ScrapedRecipe) (string, error) {
	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, newCardView(rec)); err != nil {
		return "", fmt.Errorf("render: html card: %w", err)
	}
	return buf.String(), nil
}

// Markdown renders rec as Markdown. Relative image and link URLs are
// resolved against the recipe's source URL.
func (r *Renderer) Markdown(rec *models.ScrapedRecipe) (string, error) {
	card, err := r.HTML(rec)
	if err != nil {
		return "", err
	}
	md, err := r.conv.ConvertString(card, converter.WithDomain(rec.SourceURL))
	if err != nil {
		return "", fmt.Errorf("render: markdown: %w", err)
	}
	return md, nil
}

func newCardView(rec *models.ScrapedRecipe) cardView {
	v := cardView{
		Title:       rec.Title,
		ImageURL:    rec.ImageURL,
		Ingredients: rec.Ingredients,
		SourceURL:   rec.SourceURL,
	}
	for _, step := range rec.Instructions {
		if step != "" {
			v.Instructions = append(v.Instructions, step)
		}
	}
	if rec.PrepTime != nil {
		v.Facts = append(v.Facts, "Prep: "+minutes(*rec.PrepTime))
	}
	if rec.CookTime != nil {
		v.Facts = append(v.Facts, "Cook: "+minutes(*rec.CookTime))
	}
	if rec.Servings != nil {
		v.Facts = append(v.Facts, fmt.Sprintf("Serves: %d", *rec.Servings))
	}
	return v
}

// minutes formats a duration as "45 min" or "1 h 30 min".
func minutes(total int) string {
	h, m := total/60, total%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}
