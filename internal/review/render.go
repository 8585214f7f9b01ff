package review

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/nikolayk812/storefront-demo/internal/domain"
)

const (
	placeholderHTML = `<p class="text-muted text-center">No reviews yet. Be the first!</p>`
	loadErrorHTML   = `<p class="text-danger">Could not load reviews.</p>`
)

// Review names and texts are untrusted user input. They only ever reach
// markup through html/template, which escapes them for the text context.
var listTemplate = template.Must(template.New("reviews").Parse(
	`{{range .}}<div class="card mb-2 p-3 shadow-sm">` +
		`<div class="d-flex justify-content-between align-items-center mb-1">` +
		`<strong>{{.Name}}</strong>` +
		`<span class="review-stars" style="color:#f59e0b; font-size:1.1rem;">{{.Stars}}</span>` +
		`</div>` +
		`<p class="mb-0 text-muted" style="font-size:0.95rem;">{{.Text}}</p>` +
		`</div>{{end}}`))

type card struct {
	Name  string
	Stars string
	Text  string
}

// Stars renders the rating as filled and empty star symbols out of five.
func Stars(r domain.Review) string {
	filled, empty := r.Stars()
	return strings.Repeat("★", filled) + strings.Repeat("☆", empty)
}

// RenderList renders reviews in the order given, or the placeholder when
// there are none.
func RenderList(reviews []domain.Review) (string, error) {
	if len(reviews) == 0 {
		return placeholderHTML, nil
	}

	cards := make([]card, 0, len(reviews))
	for _, r := range reviews {
		cards = append(cards, card{Name: r.Name, Stars: Stars(r), Text: r.Text})
	}

	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, cards); err != nil {
		return "", fmt.Errorf("listTemplate.Execute: %w", err)
	}

	return buf.String(), nil
}
